// internal/workers/catalog/sync-product-catalog/models.go
package syncproductcatalog

import (
	"context"

	"boreal-workers/internal/models"
)

type Input struct {
	// Force bypasses the TTL check and re-syncs even when the cache is warm.
	Force bool `json:"force"`
}

type Output struct {
	ProductCount int    `json:"productCount"`
	SkippedCount int    `json:"skippedCount"`
	SyncedAt     string `json:"syncedAt"`
}

// CatalogSource yields raw lender product records. The staff client is the
// production implementation.
type CatalogSource interface {
	FetchCatalog(ctx context.Context) ([]map[string]interface{}, error)
}

// cachedCatalog is the JSON document stored under the Redis cache key.
type cachedCatalog struct {
	Products []models.Product `json:"products"`
	SyncedAt string           `json:"syncedAt"`
}
