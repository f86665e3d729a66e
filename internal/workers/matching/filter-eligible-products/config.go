// internal/workers/matching/filter-eligible-products/config.go
package filtereligibleproducts

import (
	"time"

	"boreal-workers/internal/common/config"
)

type Config struct {
	CacheKey string
	Timeout  time.Duration
}

func LoadConfig(catalogCfg config.CatalogConfig) *Config {
	return &Config{
		CacheKey: catalogCfg.CacheKey,
		Timeout:  10 * time.Second,
	}
}
