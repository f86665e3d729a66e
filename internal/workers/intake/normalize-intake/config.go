// internal/workers/intake/normalize-intake/config.go
package normalizeintake

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}
