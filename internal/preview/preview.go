// Package preview renders storefront and email templates with the current
// theme so the studio can show them in an iframe.
package preview

import (
	"context"
	"fmt"

	"github.com/Muhfaizr21/warungforzaSaas-sub001/internal/theme"
	"github.com/Muhfaizr21/warungforzaSaas-sub001/pkg/plugin"
	"github.com/Muhfaizr21/warungforzaSaas-sub001/pkg/roles"
	"go.uber.org/zap"
)

// Compile-time interface guards.
var (
	_ plugin.Plugin       = (*Module)(nil)
	_ plugin.HTTPProvider = (*Module)(nil)
)

// ThemeSource lists persisted settings.
type ThemeSource = roles.SettingsReader

// Module implements the preview plugin.
type Module struct {
	logger   *zap.Logger
	renderer *Renderer
	source   ThemeSource
}

// New creates a new preview plugin instance.
func New() *Module {
	return &Module{}
}

func (m *Module) Info() plugin.PluginInfo {
	return plugin.PluginInfo{
		Name:         "preview",
		Version:      "0.1.0",
		Description:  "Email and storefront template previews",
		Dependencies: []string{"settings"},
		APIVersion:   plugin.APIVersionCurrent,
	}
}

func (m *Module) Init(_ context.Context, deps plugin.Dependencies) error {
	m.logger = deps.Logger
	r, err := NewRenderer()
	if err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	m.renderer = r

	if deps.Plugins != nil {
		for _, p := range deps.Plugins.ResolveByRole(roles.RoleSettingsStore) {
			if src, ok := p.(ThemeSource); ok {
				m.source = src
				break
			}
		}
	}
	if m.source == nil {
		m.logger.Warn("no settings store resolved; previews use default tokens")
	}
	m.logger.Info("preview module initialized", zap.Int("templates", len(r.templates)))
	return nil
}

func (m *Module) Start(_ context.Context) error { return nil }

func (m *Module) Stop(_ context.Context) error { return nil }

// Tokens returns the persisted theme merged over the defaults, then
// overrides. Fetch failures fall back to the defaults.
func (m *Module) Tokens(ctx context.Context, overrides theme.Tokens) theme.Tokens {
	var records []theme.Record
	if m.source != nil {
		list, err := m.source.List(ctx)
		if err != nil {
			m.logger.Warn("failed to load settings for preview", zap.Error(err))
		} else {
			records = list
		}
	}
	return theme.Merge(records).Overlay(overrides)
}
