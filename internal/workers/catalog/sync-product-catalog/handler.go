// internal/workers/catalog/sync-product-catalog/handler.go
package syncproductcatalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"boreal-workers/internal/common/logger"
	"boreal-workers/internal/common/metrics"
	"boreal-workers/internal/engine/dedupe"
	"boreal-workers/internal/engine/normalize"
	"boreal-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
)

const (
	TaskType = "sync-product-catalog"
)

var (
	ErrCatalogFetchFailed = errors.New("CATALOG_FETCH_FAILED")
	ErrCatalogSyncFailed  = errors.New("CATALOG_SYNC_FAILED")
)

type Handler struct {
	config   *Config
	source   CatalogSource
	redis    *redis.Client
	esClient *elasticsearch.Client
	logger   logger.Logger
}

// NewHandler wires the sync worker. esClient may be nil; the search index is
// a secondary read model and sync succeeds without it.
func NewHandler(config *Config, source CatalogSource, redisClient *redis.Client, esClient *elasticsearch.Client, log logger.Logger) *Handler {
	return &Handler{
		config:   config,
		source:   source,
		redis:    redisClient,
		esClient: esClient,
		logger:   log.WithFields(map[string]interface{}{"taskType": TaskType}),
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
		errorCode := "CATALOG_SYNC_FAILED"
		retries := int32(3)
		if errors.Is(err, ErrCatalogFetchFailed) {
			errorCode = "CATALOG_FETCH_FAILED"
		}
		h.failJob(client, job, errorCode, err.Error(), retries)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, _ *Input) (*Output, error) {
	rawRecords, err := h.source.FetchCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogFetchFailed, err)
	}

	products := make([]models.Product, 0, len(rawRecords))
	skipped := 0
	for _, raw := range rawRecords {
		product := normalize.Product(raw)

		if product.ID == "" {
			h.logger.Warn("skipping catalog record without id", map[string]interface{}{
				"name": product.Name,
			})
			skipped++
			continue
		}

		// A min above max can never match any amount. Keep it out of the
		// cache rather than failing the whole sync.
		if !product.HasValidRange() {
			h.logger.Warn("skipping product with inverted amount range", map[string]interface{}{
				"productId": product.ID,
				"minAmount": product.MinAmount,
				"maxAmount": product.MaxAmount,
			})
			skipped++
			continue
		}

		products = append(products, product)
	}
	metrics.CatalogSkippedRecords.Add(float64(skipped))

	products = dedupe.By(products, func(p models.Product) string { return p.ID })

	syncedAt := time.Now().UTC().Format(time.RFC3339)
	if err := h.storeCache(ctx, products, syncedAt); err != nil {
		return nil, fmt.Errorf("%w: cache write failed: %v", ErrCatalogSyncFailed, err)
	}

	h.indexProducts(ctx, products)

	metrics.CatalogProductsSynced.Set(float64(len(products)))
	h.logger.Info("catalog synced", map[string]interface{}{
		"productCount": len(products),
		"skippedCount": skipped,
	})

	return &Output{
		ProductCount: len(products),
		SkippedCount: skipped,
		SyncedAt:     syncedAt,
	}, nil
}

func (h *Handler) storeCache(ctx context.Context, products []models.Product, syncedAt string) error {
	doc, err := json.Marshal(cachedCatalog{Products: products, SyncedAt: syncedAt})
	if err != nil {
		return err
	}
	return h.redis.Set(ctx, h.config.CacheKey, doc, h.config.CacheTTL).Err()
}

// indexProducts mirrors the catalog into Elasticsearch for ad-hoc queries.
// Index failures are logged, not fatal; the Redis cache is authoritative.
func (h *Handler) indexProducts(ctx context.Context, products []models.Product) {
	if h.esClient == nil {
		return
	}

	for _, product := range products {
		doc, err := json.Marshal(product)
		if err != nil {
			continue
		}

		res, err := h.esClient.Index(
			h.config.Index,
			bytes.NewReader(doc),
			h.esClient.Index.WithDocumentID(product.ID),
			h.esClient.Index.WithContext(ctx),
		)
		if err != nil {
			h.logger.Warn("product index failed", map[string]interface{}{
				"productId": product.ID,
				"error":     err,
			})
			continue
		}
		res.Body.Close()
	}
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
