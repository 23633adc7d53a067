// Package services holds the repositories shared by more than one module.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Muhfaizr21/warungforzaSaas-sub001/pkg/models"
	"github.com/Muhfaizr21/warungforzaSaas-sub001/pkg/plugin"
)

// Repository errors.
var (
	ErrNotFound   = errors.New("not found")
	ErrInvalidKey = errors.New("invalid setting key")
)

// SettingsRepository persists the storefront key/value settings.
type SettingsRepository interface {
	// List returns every setting ordered by key.
	List(ctx context.Context) ([]models.Setting, error)
	// Get returns one setting or ErrNotFound.
	Get(ctx context.Context, key string) (models.Setting, error)
	// BulkUpsert writes all settings in one transaction and returns the
	// changes it recorded. Unchanged values are written but not audited.
	BulkUpsert(ctx context.Context, actor string, settings []models.Setting) ([]models.SettingChange, error)
	// Audit returns the most recent changes, newest first.
	Audit(ctx context.Context, limit int) ([]models.SettingChange, error)
}

// Compile-time interface guard.
var _ SettingsRepository = (*SQLiteSettingsRepository)(nil)

const maxKeyLen = 128

// SQLiteSettingsRepository implements SettingsRepository on the shared store.
type SQLiteSettingsRepository struct {
	store plugin.Store
	now   func() time.Time
}

func settingsMigrations() []plugin.Migration {
	return []plugin.Migration{
		{
			Version:     1,
			Description: "create settings table",
			Up: func(tx *sql.Tx) error {
				_, err := tx.Exec(`CREATE TABLE IF NOT EXISTS settings (
					key        TEXT PRIMARY KEY,
					value      TEXT NOT NULL,
					updated_at TEXT NOT NULL
				)`)
				return err
			},
		},
		{
			Version:     2,
			Description: "create settings_audit table",
			Up: func(tx *sql.Tx) error {
				if _, err := tx.Exec(`CREATE TABLE IF NOT EXISTS settings_audit (
					id         INTEGER PRIMARY KEY AUTOINCREMENT,
					actor      TEXT NOT NULL,
					key        TEXT NOT NULL,
					old_value  TEXT NOT NULL,
					new_value  TEXT NOT NULL,
					changed_at TEXT NOT NULL
				)`); err != nil {
					return err
				}
				_, err := tx.Exec(`CREATE INDEX IF NOT EXISTS idx_settings_audit_changed ON settings_audit(changed_at)`)
				return err
			},
		},
	}
}

// NewSQLiteSettingsRepository runs the settings migrations and returns a
// repository over store.
func NewSQLiteSettingsRepository(ctx context.Context, store plugin.Store) (*SQLiteSettingsRepository, error) {
	if err := store.Migrate(ctx, "settings", settingsMigrations()); err != nil {
		return nil, fmt.Errorf("migrate settings: %w", err)
	}
	return &SQLiteSettingsRepository{store: store, now: time.Now}, nil
}

// List returns every setting ordered by key.
func (r *SQLiteSettingsRepository) List(ctx context.Context) ([]models.Setting, error) {
	rows, err := r.store.DB().QueryContext(ctx, "SELECT key, value FROM settings ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	result := make([]models.Setting, 0)
	for rows.Next() {
		var s models.Setting
		if err := rows.Scan(&s.Key, &s.Value); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// Get returns the setting stored under key.
func (r *SQLiteSettingsRepository) Get(ctx context.Context, key string) (models.Setting, error) {
	s := models.Setting{Key: key}
	err := r.store.DB().QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", key).Scan(&s.Value)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Setting{}, ErrNotFound
	}
	if err != nil {
		return models.Setting{}, fmt.Errorf("get setting %q: %w", key, err)
	}
	return s, nil
}

// ValidateKey rejects keys that cannot be stored.
func ValidateKey(key string) error {
	switch {
	case strings.TrimSpace(key) == "":
		return fmt.Errorf("%w: empty", ErrInvalidKey)
	case len(key) > maxKeyLen:
		return fmt.Errorf("%w: %q longer than %d bytes", ErrInvalidKey, key[:16]+"...", maxKeyLen)
	}
	return nil
}

// BulkUpsert writes settings atomically. A later entry for the same key
// wins over an earlier one.
func (r *SQLiteSettingsRepository) BulkUpsert(ctx context.Context, actor string, settings []models.Setting) ([]models.SettingChange, error) {
	for _, s := range settings {
		if err := ValidateKey(s.Key); err != nil {
			return nil, err
		}
	}
	now := r.now().UTC()
	stamp := now.Format(time.RFC3339Nano)

	var changes []models.SettingChange
	err := r.store.Tx(ctx, func(tx *sql.Tx) error {
		for _, s := range settings {
			var old string
			err := tx.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", s.Key).Scan(&old)
			if err != nil && !errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("read %q: %w", s.Key, err)
			}
			existed := err == nil

			if _, err := tx.ExecContext(ctx, `
				INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
				ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
				s.Key, s.Value, stamp,
			); err != nil {
				return fmt.Errorf("upsert %q: %w", s.Key, err)
			}

			if existed && old == s.Value {
				continue
			}
			res, err := tx.ExecContext(ctx,
				"INSERT INTO settings_audit (actor, key, old_value, new_value, changed_at) VALUES (?, ?, ?, ?, ?)",
				actor, s.Key, old, s.Value, stamp,
			)
			if err != nil {
				return fmt.Errorf("audit %q: %w", s.Key, err)
			}
			id, _ := res.LastInsertId()
			changes = append(changes, models.SettingChange{
				ID:        id,
				Actor:     actor,
				Key:       s.Key,
				OldValue:  old,
				NewValue:  s.Value,
				ChangedAt: now,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return changes, nil
}

// Audit returns up to limit changes, newest first. limit <= 0 means 50.
func (r *SQLiteSettingsRepository) Audit(ctx context.Context, limit int) ([]models.SettingChange, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.store.DB().QueryContext(ctx, `
		SELECT id, actor, key, old_value, new_value, changed_at
		FROM settings_audit ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit: %w", err)
	}
	defer rows.Close()

	result := make([]models.SettingChange, 0)
	for rows.Next() {
		var (
			c     models.SettingChange
			stamp string
		)
		if err := rows.Scan(&c.ID, &c.Actor, &c.Key, &c.OldValue, &c.NewValue, &stamp); err != nil {
			return nil, fmt.Errorf("scan audit: %w", err)
		}
		c.ChangedAt, err = time.Parse(time.RFC3339Nano, stamp)
		if err != nil {
			return nil, fmt.Errorf("parse audit time %q: %w", stamp, err)
		}
		result = append(result, c)
	}
	return result, rows.Err()
}
