// internal/workers/matching/filter-eligible-products/handler.go
package filtereligibleproducts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"boreal-workers/internal/common/logger"
	"boreal-workers/internal/common/metrics"
	"boreal-workers/internal/engine/eligibility"
	"boreal-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"
)

const (
	TaskType = "filter-eligible-products"
)

var (
	ErrCatalogCacheMissing = errors.New("CATALOG_CACHE_MISSING")
)

type Handler struct {
	config *Config
	redis  *redis.Client
	logger logger.Logger
}

func NewHandler(config *Config, redisClient *redis.Client, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		redis:  redisClient,
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
		// A missing cache heals once the sync worker runs; let the engine retry.
		retries := int32(0)
		if errors.Is(err, ErrCatalogCacheMissing) {
			retries = 3
		}
		h.failJob(client, job, "ELIGIBILITY_FILTER_FAILED", err.Error(), retries)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	products := input.Products
	if len(products) == 0 {
		cached, err := h.loadCatalog(ctx)
		if err != nil {
			return nil, err
		}
		products = cached
	}

	matched := eligibility.Filter(products, input.Intake)

	// Exclusion reasons for the products that did not pass, keyed by id.
	// The wizard surfaces these in its debug view.
	exclusions := make(map[string]string)
	for _, p := range products {
		if reason := eligibility.Exclusion(p, input.Intake); reason != "" {
			exclusions[p.ID] = reason
		}
	}

	metrics.EligibleProductsMatched.Observe(float64(len(matched)))
	h.logger.Info("eligibility filter completed", map[string]interface{}{
		"candidates": len(products),
		"matched":    len(matched),
	})

	return &Output{
		MatchedProducts: matched,
		MatchedCount:    len(matched),
		Exclusions:      exclusions,
	}, nil
}

func (h *Handler) loadCatalog(ctx context.Context) ([]models.Product, error) {
	raw, err := h.redis.Get(ctx, h.config.CacheKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: key %s", ErrCatalogCacheMissing, h.config.CacheKey)
	}
	if err != nil {
		return nil, fmt.Errorf("catalog cache read failed: %w", err)
	}

	var cached cachedCatalog
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		return nil, fmt.Errorf("%w: corrupt cache document: %v", ErrCatalogCacheMissing, err)
	}
	return cached.Products, nil
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
