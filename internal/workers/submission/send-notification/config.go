// internal/workers/submission/send-notification/config.go
package sendnotification

import (
	"time"

	"boreal-workers/internal/common/config"
)

type Config struct {
	EmailEnabled bool
	SMSEnabled   bool
	AWSRegion    string
	FromEmail    string
	Timeout      time.Duration
}

func LoadConfig(notifCfg config.NotificationConfig) *Config {
	region := notifCfg.Email.Region
	if region == "" {
		region = notifCfg.SMS.Region
	}
	return &Config{
		EmailEnabled: notifCfg.Email.Enabled,
		SMSEnabled:   notifCfg.SMS.Enabled,
		AWSRegion:    region,
		FromEmail:    notifCfg.Email.FromEmail,
		Timeout:      15 * time.Second,
	}
}
