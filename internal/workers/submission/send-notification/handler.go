// internal/workers/submission/send-notification/handler.go
package sendnotification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	commonaws "boreal-workers/internal/common/aws"
	"boreal-workers/internal/common/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "send-notification"
)

var (
	ErrNotificationSendFailed = errors.New("NOTIFICATION_SEND_FAILED")
)

type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type Handler struct {
	config    *Config
	logger    logger.Logger
	sesClient SESService
	snsClient SNSService
}

func NewHandler(config *Config, log logger.Logger) (*Handler, error) {
	ctx := context.Background()

	sesClient, err := commonaws.NewSESClient(ctx, config.AWSRegion)
	if err != nil {
		return nil, fmt.Errorf("create SES client: %w", err)
	}
	snsClient, err := commonaws.NewSNSClient(ctx, config.AWSRegion)
	if err != nil {
		return nil, fmt.Errorf("create SNS client: %w", err)
	}

	return &Handler{
		config:    config,
		logger:    log.WithFields(map[string]interface{}{"taskType": TaskType}),
		sesClient: sesClient,
		snsClient: snsClient,
	}, nil
}

// NewHandlerWithClients injects SES/SNS implementations. Used in tests.
func NewHandlerWithClients(config *Config, sesClient SESService, snsClient SNSService, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		logger:    log.WithFields(map[string]interface{}{"taskType": TaskType}),
		sesClient: sesClient,
		snsClient: snsClient,
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
		retries := int32(0)
		if errors.Is(err, ErrNotificationSendFailed) {
			retries = 3
		}
		h.failJob(client, job, "NOTIFICATION_SEND_FAILED", err.Error(), retries)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	tmpl, exists := templates[input.NotificationType]
	if !exists {
		return nil, fmt.Errorf("template not found for type: %s", input.NotificationType)
	}

	if !h.config.EmailEnabled && !h.config.SMSEnabled {
		return &Output{
			NotificationID: uuid.New().String(),
			Status:         StatusDisabled,
			Channels:       []string{},
			SentAt:         time.Now().UTC().Format(time.RFC3339),
		}, nil
	}

	data := map[string]interface{}{
		"applicationId": input.ApplicationID,
	}
	for k, v := range input.Metadata {
		data[k] = v
	}

	var channels []string

	if h.config.EmailEnabled && input.ContactEmail != "" {
		if err := h.sendEmail(ctx, input.ContactEmail, tmpl, data); err != nil {
			return nil, fmt.Errorf("%w: email: %v", ErrNotificationSendFailed, err)
		}
		channels = append(channels, "email")
	}

	if h.config.SMSEnabled && input.ContactPhone != "" {
		if err := h.sendSMS(ctx, input.ContactPhone, tmpl, data); err != nil {
			// SMS is a secondary channel: log and continue when email went out.
			if len(channels) == 0 {
				return nil, fmt.Errorf("%w: sms: %v", ErrNotificationSendFailed, err)
			}
			h.logger.Warn("sms send failed after email succeeded", map[string]interface{}{
				"error": err,
			})
		} else {
			channels = append(channels, "sms")
		}
	}

	status := StatusSent
	if len(channels) == 0 {
		status = StatusSkipped
	}

	output := &Output{
		NotificationID: uuid.New().String(),
		Status:         status,
		Channels:       channels,
		SentAt:         time.Now().UTC().Format(time.RFC3339),
	}

	h.logger.Info("notification processed", map[string]interface{}{
		"notificationId": output.NotificationID,
		"status":         status,
		"channels":       channels,
	})

	return output, nil
}

func (h *Handler) sendEmail(ctx context.Context, to string, tmpl template, data map[string]interface{}) error {
	subject := render(tmpl.Subject, data)
	body := render(tmpl.Body, data)

	_, err := h.sesClient.SendEmail(ctx, &ses.SendEmailInput{
		Source:      aws.String(h.config.FromEmail),
		Destination: &types.Destination{ToAddresses: []string{to}},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
	})
	return err
}

func (h *Handler) sendSMS(ctx context.Context, phone string, tmpl template, data map[string]interface{}) error {
	message := render(tmpl.SMS, data)

	_, err := h.snsClient.Publish(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(phone),
		Message:     aws.String(message),
	})
	return err
}

// render substitutes {{key}} placeholders from the data map.
func render(text string, data map[string]interface{}) string {
	for k, v := range data {
		text = strings.ReplaceAll(text, "{{"+k+"}}", fmt.Sprintf("%v", v))
	}
	return text
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
