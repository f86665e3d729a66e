// internal/workers/catalog/sync-product-catalog/config.go
package syncproductcatalog

import (
	"time"

	"boreal-workers/internal/common/config"
)

type Config struct {
	CacheKey string
	CacheTTL time.Duration
	Index    string
	Timeout  time.Duration
}

func LoadConfig(catalogCfg config.CatalogConfig) *Config {
	return &Config{
		CacheKey: catalogCfg.CacheKey,
		CacheTTL: time.Duration(catalogCfg.CacheTTL) * time.Second,
		Index:    catalogCfg.Index,
		Timeout:  60 * time.Second,
	}
}
