// internal/workers/submission/create-application-record/handler.go
package createapplicationrecord

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"boreal-workers/internal/common/logger"
	"boreal-workers/internal/common/metrics"
	"boreal-workers/internal/common/staff"
	"boreal-workers/internal/engine/dedupe"
	"boreal-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "create-application-record"
)

var (
	ErrDatabaseInsertFailed = errors.New("DATABASE_INSERT_FAILED")
	ErrMissingContact       = errors.New("MISSING_CONTACT")
)

// ApplicationSubmitter forwards the packaged application to the staff-side
// origination system. *staff.Client satisfies it; nil disables forwarding.
type ApplicationSubmitter interface {
	CreateApplication(ctx context.Context, record *staff.ApplicationRecord) (*staff.CreateApplicationResponse, error)
}

type Handler struct {
	config *Config
	db     *sql.DB
	keys   *dedupe.KeyIssuer
	staff  ApplicationSubmitter
	logger logger.Logger
}

func NewHandler(config *Config, db *sql.DB, keys *dedupe.KeyIssuer, submitter ApplicationSubmitter, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		db:     db,
		keys:   keys,
		staff:  submitter,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err), 0)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		errorCode := "DATABASE_INSERT_FAILED"
		retries := int32(3)
		if errors.Is(err, ErrMissingContact) {
			errorCode = "INTAKE_VALIDATION_FAILED"
			retries = 0
		}
		h.failJob(client, job, errorCode, err.Error(), retries)
		return
	}

	h.completeJob(client, job, output)
}

// execute creates the application row keyed by an idempotency token derived
// from the contact fingerprint. A repeat submission of the same draft reuses
// the token and resolves to the original record instead of a second row.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.ContactEmail == "" {
		return nil, fmt.Errorf("%w: contact email is required", ErrMissingContact)
	}

	fingerprint := dedupe.Fingerprint(input.ContactEmail, input.ContactPhone)
	idempotencyKey := h.keys.GetOrCreate(ctx, "submission:"+fingerprint)

	// If this key already produced an application, hand back the original.
	var existingID, existingStatus, existingCreatedAt string
	err := h.db.QueryRowContext(ctx, `
		SELECT id, status, created_at FROM applications
		WHERE idempotency_key = $1`, idempotencyKey).
		Scan(&existingID, &existingStatus, &existingCreatedAt)
	if err == nil {
		metrics.DuplicateSubmissions.Inc()
		h.logger.Info("duplicate submission collapsed", map[string]interface{}{
			"applicationId":  existingID,
			"idempotencyKey": idempotencyKey,
		})
		return &Output{
			ApplicationID:  existingID,
			IdempotencyKey: idempotencyKey,
			Status:         models.ApplicationStatusDuplicate,
			Duplicate:      true,
			CreatedAt:      existingCreatedAt,
		}, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: duplicate check failed: %v", ErrDatabaseInsertFailed, err)
	}

	appID := uuid.New().String()
	createdAt := time.Now().UTC().Format(time.RFC3339)

	intakeJSON, err := json.Marshal(input.Intake)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal intake: %v", ErrDatabaseInsertFailed, err)
	}

	matchedIDs := make([]string, 0, len(input.MatchedProducts))
	for _, p := range input.MatchedProducts {
		matchedIDs = append(matchedIDs, p.ID)
	}
	matchedJSON, err := json.Marshal(matchedIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal matched products: %v", ErrDatabaseInsertFailed, err)
	}

	documentsJSON, err := json.Marshal(input.RequiredDocuments)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal documents: %v", ErrDatabaseInsertFailed, err)
	}

	_, err = h.db.ExecContext(ctx, `
		INSERT INTO applications (
			id, idempotency_key, contact_email, contact_phone,
			intake, matched_product_ids, required_documents,
			status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)`,
		appID,
		idempotencyKey,
		input.ContactEmail,
		input.ContactPhone,
		intakeJSON,
		matchedJSON,
		documentsJSON,
		models.ApplicationStatusSubmitted,
		createdAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: insert failed: %v", ErrDatabaseInsertFailed, err)
	}

	// Audit trail entry is best-effort; a failed write never blocks submission.
	auditJSON, err := json.Marshal(map[string]interface{}{
		"contactEmail":   input.ContactEmail,
		"matchedCount":   len(matchedIDs),
		"documentCount":  len(input.RequiredDocuments),
		"idempotencyKey": idempotencyKey,
	})
	if err != nil {
		auditJSON = []byte("{}")
	}
	_, err = h.db.ExecContext(ctx, `
		INSERT INTO audit_log (event_type, resource_type, resource_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		"application_created",
		"application",
		appID,
		auditJSON,
		createdAt,
	)
	if err != nil {
		h.logger.Warn("audit log insert failed", map[string]interface{}{
			"error":         err,
			"applicationId": appID,
		})
	}

	h.logger.Info("application record created", map[string]interface{}{
		"applicationId":  appID,
		"idempotencyKey": idempotencyKey,
		"matchedCount":   len(matchedIDs),
	})

	return &Output{
		ApplicationID:      appID,
		IdempotencyKey:     idempotencyKey,
		Status:             models.ApplicationStatusSubmitted,
		Duplicate:          false,
		CreatedAt:          createdAt,
		StaffApplicationID: h.forwardToStaff(ctx, input, idempotencyKey, matchedIDs),
	}, nil
}

// forwardToStaff hands the packaged application to the staff origination
// system, keyed so a replay collapses server-side. The Postgres row is the
// local source of truth; a transport failure is logged, not fatal. A 409
// still yields the original staff-side id.
func (h *Handler) forwardToStaff(ctx context.Context, input *Input, idempotencyKey string, matchedIDs []string) string {
	if h.staff == nil {
		return ""
	}

	resp, err := h.staff.CreateApplication(ctx, &staff.ApplicationRecord{
		IdempotencyKey:    idempotencyKey,
		ContactEmail:      input.ContactEmail,
		ContactPhone:      input.ContactPhone,
		Intake:            input.Intake,
		MatchedProductIDs: matchedIDs,
		RequiredDocuments: input.RequiredDocuments,
	})
	if err != nil {
		if resp != nil && resp.Duplicate {
			h.logger.Info("staff side already holds this application", map[string]interface{}{
				"staffApplicationId": resp.ID,
				"idempotencyKey":     idempotencyKey,
			})
			return resp.ID
		}
		h.logger.Warn("staff forward failed", map[string]interface{}{
			"error":          err,
			"idempotencyKey": idempotencyKey,
		})
		return ""
	}

	h.logger.Info("application forwarded to staff system", map[string]interface{}{
		"staffApplicationId": resp.ID,
		"idempotencyKey":     idempotencyKey,
	})
	return resp.ID
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	if _, err = cmd.Send(context.Background()); err != nil {
		h.logger.Error("failed to complete job", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string, retries int32) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
	})

	_, _ = client.NewFailJobCommand().
		JobKey(job.Key).
		Retries(retries).
		ErrorMessage(fmt.Sprintf("[%s] %s", errorCode, errorMessage)).
		Send(context.Background())
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
