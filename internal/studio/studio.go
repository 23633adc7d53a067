// Package studio runs theme editor sessions: each session owns a draft with
// undo history, saves through the settings module and streams its draft to
// the storefront preview frames over WebSocket.
package studio

import (
	"context"
	"errors"
	"fmt"

	"github.com/Muhfaizr21/warungforzaSaas-sub001/internal/settings"
	"github.com/Muhfaizr21/warungforzaSaas-sub001/internal/theme"
	"github.com/Muhfaizr21/warungforzaSaas-sub001/pkg/plugin"
	"github.com/Muhfaizr21/warungforzaSaas-sub001/pkg/roles"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Compile-time interface guards.
var (
	_ plugin.Plugin          = (*Module)(nil)
	_ plugin.HTTPProvider    = (*Module)(nil)
	_ plugin.Validator       = (*Module)(nil)
	_ plugin.EventSubscriber = (*Module)(nil)
)

// Module implements the theme studio plugin.
type Module struct {
	logger  *zap.Logger
	cfg     Config
	manager *Manager
	catalog *theme.PresetCatalog
	cron    *cron.Cron
}

// New creates a new studio plugin instance.
func New() *Module {
	return &Module{}
}

func (m *Module) Info() plugin.PluginInfo {
	return plugin.PluginInfo{
		Name:         "studio",
		Version:      "0.1.0",
		Description:  "Theme editor sessions with live storefront preview",
		Dependencies: []string{"settings"},
		Roles:        []string{roles.RoleThemeEditor},
		APIVersion:   plugin.APIVersionCurrent,
	}
}

func (m *Module) Init(_ context.Context, deps plugin.Dependencies) error {
	m.logger = deps.Logger

	m.cfg = DefaultConfig()
	if deps.Config != nil {
		if d := deps.Config.GetDuration("debounce"); d > 0 {
			m.cfg.Debounce = d
		}
		if d := deps.Config.GetDuration("saved_clear_after"); d > 0 {
			m.cfg.SavedClearAfter = d
		}
		if v := deps.Config.GetInt("history_limit"); v > 0 {
			m.cfg.HistoryLimit = v
		}
		if deps.Config.IsSet("session_idle_timeout") {
			m.cfg.SessionIdleTimeout = deps.Config.GetDuration("session_idle_timeout")
		}
		if s := deps.Config.GetString("reap_schedule"); s != "" {
			m.cfg.ReapSchedule = s
		}
		if v := deps.Config.GetInt("max_sessions"); v > 0 {
			m.cfg.MaxSessions = v
		}
		m.cfg.PresetsDir = deps.Config.GetString("presets_dir")
		m.cfg.SiteOrigin = deps.Config.GetString("site_origin")
	}

	backend, err := resolveBackend(deps.Plugins)
	if err != nil {
		return err
	}

	m.catalog = theme.NewPresetCatalog(m.cfg.PresetsDir, m.logger.Named("presets"))
	if err := m.catalog.Reload(); err != nil {
		m.logger.Warn("preset directory not loaded, serving built-ins only",
			zap.String("dir", m.cfg.PresetsDir), zap.Error(err))
	}
	m.manager = NewManager(backend, m.cfg, m.logger)

	if m.cfg.SiteOrigin == "" {
		m.logger.Warn("site_origin is not set, preview frames will be refused")
	}
	m.logger.Info("studio module initialized",
		zap.Duration("debounce", m.cfg.Debounce),
		zap.Duration("session_idle_timeout", m.cfg.SessionIdleTimeout),
	)
	return nil
}

func resolveBackend(resolver plugin.PluginResolver) (SettingsBackend, error) {
	if resolver == nil {
		return nil, errors.New("studio: plugin resolver is required")
	}
	for _, p := range resolver.ResolveByRole(settings.RoleSettingsStore) {
		if b, ok := p.(SettingsBackend); ok {
			return b, nil
		}
	}
	return nil, fmt.Errorf("studio: no plugin fills role %q", settings.RoleSettingsStore)
}

// ValidateConfig implements plugin.Validator.
func (m *Module) ValidateConfig() error {
	if _, err := cron.ParseStandard(m.cfg.ReapSchedule); err != nil {
		return fmt.Errorf("studio: invalid reap_schedule %q: %w", m.cfg.ReapSchedule, err)
	}
	if m.cfg.Debounce < 0 || m.cfg.SavedClearAfter < 0 {
		return errors.New("studio: durations must not be negative")
	}
	return nil
}

func (m *Module) Start(_ context.Context) error {
	m.cron = cron.New()
	if _, err := m.cron.AddFunc(m.cfg.ReapSchedule, func() {
		if n := m.manager.Reap(); n > 0 {
			m.logger.Debug("session reaper ran", zap.Int("closed", n))
		}
	}); err != nil {
		return fmt.Errorf("schedule session reaper: %w", err)
	}
	m.cron.Start()

	if m.cfg.PresetsDir != "" {
		if err := m.catalog.Watch(); err != nil {
			m.logger.Warn("preset hot reload disabled", zap.Error(err))
		}
	}

	m.logger.Info("studio module started")
	return nil
}

func (m *Module) Stop(ctx context.Context) error {
	if m.cron != nil {
		done := m.cron.Stop()
		select {
		case <-done.Done():
		case <-ctx.Done():
			m.logger.Warn("session reaper still running at shutdown")
		}
	}
	if m.catalog != nil {
		if err := m.catalog.Close(); err != nil {
			m.logger.Warn("closing preset watcher", zap.Error(err))
		}
	}
	if m.manager != nil {
		m.manager.CloseAll()
	}
	if m.logger != nil {
		m.logger.Info("studio module stopped")
	}
	return nil
}

// Subscriptions implements plugin.EventSubscriber.
func (m *Module) Subscriptions() []plugin.Subscription {
	return []plugin.Subscription{
		{Topic: settings.TopicSettingsSaved, Handler: m.onSettingsSaved},
	}
}

func (m *Module) onSettingsSaved(_ context.Context, e plugin.Event) {
	ev, ok := e.Payload.(settings.SavedEvent)
	if !ok || m.manager == nil {
		return
	}
	m.manager.AdvanceBaselines(ev.Origin, ev.Settings)
}

// Manager returns the session manager.
func (m *Module) Manager() *Manager {
	return m.manager
}
