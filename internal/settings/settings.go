// Package settings owns the storefront key/value settings: the persisted
// theme tokens and content, their audit trail and the public theme CSS.
package settings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Muhfaizr21/warungforzaSaas-sub001/internal/services"
	"github.com/Muhfaizr21/warungforzaSaas-sub001/pkg/models"
	"github.com/Muhfaizr21/warungforzaSaas-sub001/pkg/plugin"
	"github.com/Muhfaizr21/warungforzaSaas-sub001/pkg/roles"
	"go.uber.org/zap"
)

// RoleSettingsStore is filled by the module that persists settings.
const RoleSettingsStore = roles.RoleSettingsStore

// Compile-time interface guards.
var (
	_ plugin.Plugin       = (*Module)(nil)
	_ plugin.HTTPProvider = (*Module)(nil)
	_ roles.SettingsStore = (*Module)(nil)
)

// Module implements the settings plugin.
type Module struct {
	logger  *zap.Logger
	repo    services.SettingsRepository
	bus     plugin.Publisher
	handler *Handler
}

// New creates a new settings plugin instance.
func New() *Module {
	return &Module{}
}

func (m *Module) Info() plugin.PluginInfo {
	return plugin.PluginInfo{
		Name:        "settings",
		Version:     "0.1.0",
		Description: "Storefront settings, theme tokens and audit log",
		Required:    true,
		Roles:       []string{RoleSettingsStore},
		APIVersion:  plugin.APIVersionCurrent,
	}
}

func (m *Module) Init(ctx context.Context, deps plugin.Dependencies) error {
	if deps.Store == nil {
		return errors.New("settings: store is required")
	}
	m.logger = deps.Logger
	if deps.Bus != nil {
		m.bus = deps.Bus
	}

	repo, err := services.NewSQLiteSettingsRepository(ctx, deps.Store)
	if err != nil {
		return fmt.Errorf("settings: %w", err)
	}
	m.repo = repo
	m.handler = NewHandler(m, m.logger)

	m.logger.Info("settings module initialized")
	return nil
}

func (m *Module) Start(_ context.Context) error {
	m.logger.Info("settings module started")
	return nil
}

func (m *Module) Stop(_ context.Context) error {
	if m.logger != nil {
		m.logger.Info("settings module stopped")
	}
	return nil
}

// Routes implements plugin.HTTPProvider.
func (m *Module) Routes() []plugin.Route {
	return m.handler.Routes()
}

// Repository returns the underlying repository for read access.
func (m *Module) Repository() services.SettingsRepository {
	return m.repo
}

// List returns every persisted setting.
func (m *Module) List(ctx context.Context) ([]models.Setting, error) {
	return m.repo.List(ctx)
}

// Save writes settings in one transaction and announces the write on the
// bus. origin identifies the studio session that made the write, if any.
func (m *Module) Save(ctx context.Context, actor, origin string, settings []models.Setting) ([]models.SettingChange, error) {
	changes, err := m.repo.BulkUpsert(ctx, actor, settings)
	if err != nil {
		return nil, err
	}
	m.logger.Info("settings saved",
		zap.String("actor", actor),
		zap.Int("written", len(settings)),
		zap.Int("changed", len(changes)),
	)
	if m.bus != nil {
		payload := SavedEvent{Actor: actor, Origin: origin, Settings: settings, Changes: changes}
		if err := m.bus.Publish(context.WithoutCancel(ctx), plugin.Event{
			Topic:     TopicSettingsSaved,
			Source:    "settings",
			Timestamp: time.Now().UTC(),
			Payload:   payload,
		}); err != nil {
			m.logger.Warn("failed to publish settings.saved", zap.Error(err))
		}
	}
	return changes, nil
}
