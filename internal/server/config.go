package server

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the HTTP server configuration.
type Config struct {
	Host       string `mapstructure:"host"`
	Port       int    `mapstructure:"port"`
	DevMode    bool   `mapstructure:"dev_mode"`
	SiteOrigin string `mapstructure:"site_origin"`
}

// Addr returns the listen address as host:port.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LoadConfig reads configuration from file and environment variables.
func LoadConfig(configPath string) (*viper.Viper, error) {
	v := viper.New()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.dev_mode", false)
	v.SetDefault("server.site_origin", "http://localhost:5173")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("database.path", "./data/forzashop.db")
	v.SetDefault("urls.api_base", "http://localhost:8080/api/v1")
	v.SetDefault("urls.upload_base", "http://localhost:8080")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.access_token_ttl", "12h")
	v.SetDefault("auth.admin_username", "admin")
	v.SetDefault("auth.admin_password_hash", "")

	// Module defaults
	v.SetDefault("plugins.studio.debounce", "500ms")
	v.SetDefault("plugins.studio.saved_clear_after", "2s")
	v.SetDefault("plugins.studio.session_idle_timeout", "30m")
	v.SetDefault("plugins.studio.reap_schedule", "@every 1m")
	v.SetDefault("plugins.studio.presets_dir", "")
	v.SetDefault("plugins.media.dir", "./data/uploads")
	v.SetDefault("plugins.media.max_bytes", 5<<20)
	v.SetDefault("plugins.payment.enabled", true)
	v.SetDefault("plugins.payment.process_delay", "3s")
	v.SetDefault("plugins.payment.success_rate", 0.95)
	v.SetDefault("plugins.payment.webhook_url", "")
	v.SetDefault("plugins.payment.webhook_timeout", "10s")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("forzashop")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/forzashop")
	}

	// Environment variable support: FS_SERVER_PORT=9090
	v.SetEnvPrefix("FS")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	return v, nil
}
