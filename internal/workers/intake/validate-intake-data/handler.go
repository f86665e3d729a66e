// internal/workers/intake/validate-intake-data/handler.go
package validateintakedata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"boreal-workers/internal/common/logger"
	"boreal-workers/internal/common/staff"
	"boreal-workers/internal/common/validation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "validate-intake-data"
)

var (
	ErrIntakeValidationFailed = errors.New("INTAKE_VALIDATION_FAILED")

	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	// E.164-ish: optional +, 7-15 digits, no leading zero
	phoneRegex = regexp.MustCompile(`^[\+]?[1-9][\d]{6,14}$`)
)

// LeadRegistrar records a follow-up lead with the staff CRM once contact
// details pass validation. *staff.Client satisfies it; nil disables it.
type LeadRegistrar interface {
	CreateLead(ctx context.Context, lead *staff.Lead) (string, error)
}

type Handler struct {
	config *Config
	leads  LeadRegistrar
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

// NewHandlerWithLeads also registers a CRM lead for every valid intake.
func NewHandlerWithLeads(config *Config, leads LeadRegistrar, log logger.Logger) *Handler {
	h := NewHandler(config, log)
	h.leads = leads
	return h
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(client, job, "INTAKE_VALIDATION_FAILED", err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	var validationErrors []ValidationError

	// Contact details are the only hard requirement at this stage. The rest
	// of the payload only needs to be shaped like an intake; the normalizer
	// tolerates everything else.
	email := strings.ToLower(strings.TrimSpace(input.ContactEmail))
	if email == "" {
		validationErrors = append(validationErrors, ValidationError{
			Field:   "contactEmail",
			Code:    "MISSING_REQUIRED",
			Message: "Contact email is required",
		})
	} else if !emailRegex.MatchString(email) {
		validationErrors = append(validationErrors, ValidationError{
			Field:   "contactEmail",
			Code:    "INVALID_FORMAT",
			Message: "Invalid email format",
		})
	}

	phone := regexp.MustCompile(`[^\d\+]`).ReplaceAllString(strings.TrimSpace(input.ContactPhone), "")
	if phone != "" && !phoneRegex.MatchString(phone) {
		validationErrors = append(validationErrors, ValidationError{
			Field:   "contactPhone",
			Code:    "INVALID_FORMAT",
			Message: "Invalid phone format (E.164 recommended)",
		})
	}

	if input.IntakeData == nil {
		validationErrors = append(validationErrors, ValidationError{
			Field:   "intakeData",
			Code:    "MISSING_REQUIRED",
			Message: "intakeData is required",
		})
	} else {
		result, err := validation.ValidateInput(input.IntakeData, intakeSchema)
		if err != nil {
			return nil, fmt.Errorf("%w: schema check failed: %v", ErrIntakeValidationFailed, err)
		}
		for _, schemaErr := range result.Errors {
			validationErrors = append(validationErrors, ValidationError{
				Field:   schemaErr.Field,
				Code:    schemaErr.Code,
				Message: schemaErr.Message,
			})
		}
	}

	isValid := len(validationErrors) == 0
	h.logger.Info("validation completed", map[string]interface{}{
		"isValid":    isValid,
		"errorCount": len(validationErrors),
	})

	if !isValid {
		return nil, fmt.Errorf("%w: %d validation errors", ErrIntakeValidationFailed, len(validationErrors))
	}

	output := &Output{
		IsValid:          true,
		SanitizedContact: map[string]string{"email": email, "phone": phone},
		IntakeData:       input.IntakeData,
		ValidationErrors: []ValidationError{},
	}

	// Lead registration is best-effort; the wizard keeps moving even when
	// the CRM is down.
	if h.leads != nil {
		leadID, err := h.leads.CreateLead(ctx, &staff.Lead{
			Email:  email,
			Phone:  phone,
			Source: "intake-wizard",
		})
		if err != nil {
			h.logger.Warn("lead registration failed", map[string]interface{}{
				"error": err,
			})
		} else {
			output.LeadID = leadID
		}
	}

	return output, nil
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

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
	})

	_, _ = client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
