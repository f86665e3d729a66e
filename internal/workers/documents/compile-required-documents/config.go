// internal/workers/documents/compile-required-documents/config.go
package compilerequireddocuments

import (
	"time"

	"boreal-workers/internal/common/config"
)

type Config struct {
	RulesPath string
	Timeout   time.Duration
}

func LoadConfig(docsCfg config.DocumentsConfig) *Config {
	return &Config{
		RulesPath: docsCfg.RulesPath,
		Timeout:   10 * time.Second,
	}
}
