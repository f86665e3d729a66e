// internal/workers/catalog/query-products/config.go
package queryproducts

import (
	"time"

	"boreal-workers/internal/common/config"
)

type Config struct {
	Index   string
	Timeout time.Duration
}

func LoadConfig(catalogCfg config.CatalogConfig) *Config {
	return &Config{
		Index:   catalogCfg.Index,
		Timeout: 30 * time.Second,
	}
}
