package payment

import "time"

// Config holds the payment module configuration.
type Config struct {
	Enabled        bool          `mapstructure:"enabled"`
	DevMode        bool          `mapstructure:"dev_mode"`
	ProcessDelay   time.Duration `mapstructure:"process_delay"`
	SuccessRate    float64       `mapstructure:"success_rate"`
	WebhookURL     string        `mapstructure:"webhook_url"`
	WebhookTimeout time.Duration `mapstructure:"webhook_timeout"`
	ServerKey      string        `mapstructure:"server_key"`
}

// DefaultConfig returns the default configuration for the payment module.
func DefaultConfig() Config {
	return Config{
		Enabled:        true,
		ProcessDelay:   3 * time.Second,
		SuccessRate:    0.95,
		WebhookTimeout: 10 * time.Second,
	}
}
