// Package roles defines typed contracts for plugin roles.
// Plugins that fill a role (declared via PluginInfo.Roles) should implement
// the corresponding interface so callers can use type-safe access via
// PluginResolver.ResolveByRole followed by a type assertion.
package roles

import (
	"context"

	"github.com/Muhfaizr21/warungforzaSaas-sub001/pkg/models"
)

// Role name constants match the strings used in PluginInfo.Roles.
const (
	RoleSettingsStore = "settings_store"
	RoleThemeEditor   = "theme_editor"
	RoleMedia         = "media"
	RolePayment       = "payment"
)

// SettingsReader is implemented by plugins that expose persisted settings.
type SettingsReader interface {
	// List returns every persisted setting ordered by key.
	List(ctx context.Context) ([]models.Setting, error)
}

// SettingsStore is implemented by the plugin that owns settings writes.
// Resolve via PluginResolver.ResolveByRole(RoleSettingsStore) then type-assert.
type SettingsStore interface {
	SettingsReader

	// Save upserts settings atomically on behalf of actor. origin names the
	// editor session that produced the write, or is empty.
	Save(ctx context.Context, actor, origin string, settings []models.Setting) ([]models.SettingChange, error)
}

// MediaStore is implemented by plugins that host uploaded files.
type MediaStore interface {
	// URL returns the absolute link for a stored path.
	URL(path string) string
}
