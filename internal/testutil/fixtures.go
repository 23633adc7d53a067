package testutil

import (
	"sort"

	"github.com/Muhfaizr21/warungforzaSaas-sub001/pkg/models"
)

// Settings builds records from alternating key/value arguments. A trailing
// key without a value is ignored.
func Settings(kv ...string) []models.Setting {
	out := make([]models.Setting, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		out = append(out, models.Setting{Key: kv[i], Value: kv[i+1]})
	}
	return out
}

// ThemeSettings returns a small persisted theme sorted by key, suitable for
// seeding a store. Override individual values with opts.
func ThemeSettings(opts ...func(map[string]string)) []models.Setting {
	values := map[string]string{
		"theme_accent_color":     "#0ea5e9",
		"theme_background_color": "#0b0b0f",
		"theme_store_name":       "Warung Forza",
		"theme_hero_title":       "Koleksi Terbaru",
	}
	for _, opt := range opts {
		opt(values)
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]models.Setting, 0, len(keys))
	for _, k := range keys {
		out = append(out, models.Setting{Key: k, Value: values[k]})
	}
	return out
}

// WithValue sets one key in ThemeSettings.
func WithValue(key, value string) func(map[string]string) {
	return func(m map[string]string) { m[key] = value }
}

// Without removes one key from ThemeSettings.
func Without(key string) func(map[string]string) {
	return func(m map[string]string) { delete(m, key) }
}
