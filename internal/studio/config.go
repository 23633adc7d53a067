package studio

import "time"

// Config holds the studio module configuration.
type Config struct {
	Debounce           time.Duration `mapstructure:"debounce"`
	SavedClearAfter    time.Duration `mapstructure:"saved_clear_after"`
	HistoryLimit       int           `mapstructure:"history_limit"`
	SessionIdleTimeout time.Duration `mapstructure:"session_idle_timeout"`
	ReapSchedule       string        `mapstructure:"reap_schedule"`
	PresetsDir         string        `mapstructure:"presets_dir"`
	SiteOrigin         string        `mapstructure:"site_origin"`
	MaxSessions        int           `mapstructure:"max_sessions"`
}

// DefaultConfig returns the default configuration for the studio module.
func DefaultConfig() Config {
	return Config{
		Debounce:           500 * time.Millisecond,
		SavedClearAfter:    2 * time.Second,
		HistoryLimit:       200,
		SessionIdleTimeout: 30 * time.Minute,
		ReapSchedule:       "@every 1m",
		MaxSessions:        32,
	}
}
