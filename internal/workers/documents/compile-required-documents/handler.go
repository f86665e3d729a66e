// internal/workers/documents/compile-required-documents/handler.go
package compilerequireddocuments

import (
	"context"
	"encoding/json"
	"fmt"

	"boreal-workers/internal/common/logger"
	"boreal-workers/internal/engine/documents"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "compile-required-documents"
)

type Handler struct {
	config  *Config
	ruleSet documents.RuleSet
	logger  logger.Logger
}

// NewHandler loads the document rule set once at startup. A missing or broken
// rules file falls back to the built-in defaults.
func NewHandler(config *Config, log logger.Logger) *Handler {
	wlog := log.WithFields(map[string]interface{}{"taskType": TaskType})

	ruleSet := documents.DefaultRuleSet()
	if config.RulesPath != "" {
		loaded, err := documents.LoadRuleSet(config.RulesPath)
		if err != nil {
			wlog.Warn("failed to load document rules, using defaults", map[string]interface{}{
				"rulesPath": config.RulesPath,
				"error":     err,
			})
		} else {
			ruleSet = loaded
		}
	}

	return &Handler{
		config:  config,
		ruleSet: ruleSet,
		logger:  wlog,
	}
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
		h.failJob(client, job, "DOCUMENT_COMPILE_FAILED", err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	docs := documents.Compile(input.MatchedProducts, input.Intake, h.ruleSet)

	h.logger.Info("documents compiled", map[string]interface{}{
		"documentCount": len(docs),
		"productCount":  len(input.MatchedProducts),
	})

	return &Output{
		RequiredDocuments: docs,
		DocumentCount:     len(docs),
	}, nil
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
