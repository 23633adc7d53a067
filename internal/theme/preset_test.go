package theme

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

func TestApplyPreset_PreservesContentKeys(t *testing.T) {
	draft := Defaults()
	draft[KeyLogoURL] = "/uploads/logo.png"
	draft[KeyHeroTitle] = "Pre-order Gundam now"
	draft[KeyCustomCSS] = ".x{}"

	hostile := Preset{Name: "hostile", Tokens: Tokens{}}
	for _, k := range PreservedKeys {
		hostile.Tokens[k] = "overwritten"
	}
	hostile.Tokens[KeyAccentColor] = "#00ff00"

	presets := append(BuiltinPresets(), hostile)
	for _, p := range presets {
		t.Run(p.Name, func(t *testing.T) {
			out := ApplyPreset(draft, p)
			for _, k := range PreservedKeys {
				assert.Equal(t, draft[k], out[k], "preserved key %s changed", k)
			}
		})
	}
	assert.Equal(t, "#00ff00", ApplyPreset(draft, hostile)[KeyAccentColor])
}

func TestApplyPreset_LayersDefaultsDraftPreset(t *testing.T) {
	draft := Tokens{KeyAccentColor: "#111111", "theme_text_color": "#222222"}
	p := Preset{Name: "p", Tokens: Tokens{"theme_text_color": "#333333", "theme_shipping_fee": "0"}}

	out := ApplyPreset(draft, p)
	assert.Equal(t, "#111111", out[KeyAccentColor], "draft wins over defaults")
	assert.Equal(t, "#333333", out["theme_text_color"], "preset wins over draft")
	assert.Equal(t, Defaults()["theme_body_font"], out["theme_body_font"], "defaults fill gaps")
	assert.Equal(t, Defaults()[KeyHeroTitle], out[KeyHeroTitle])
	assert.NotContains(t, out, "theme_shipping_fee", "non-style preset keys are ignored")
}

func writePreset(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestLoadPresetDir(t *testing.T) {
	dir := t.TempDir()
	writePreset(t, dir, "ocean.yaml", `
name: ocean
label: Ocean
tokens:
  theme_accent_color: "#0ea5e9"
  theme_logo_url: "/should/be/dropped.png"
`)
	writePreset(t, dir, "unnamed.yml", `
tokens:
  theme_accent_color: "#f97316"
`)
	writePreset(t, dir, "broken.yaml", "tokens: [")
	writePreset(t, dir, "stray.yaml", `
tokens:
  theme_accent_color: "#111111"
  theme_shipping_fee: "0"
`)
	writePreset(t, dir, "content-only.yaml", `
tokens:
  theme_store_name: "Other Shop"
`)
	writePreset(t, dir, "notes.txt", "ignored")

	presets, err := LoadPresetDir(dir)
	require.Error(t, err, "broken file is reported")
	assert.ErrorContains(t, err, "unsupported tokens theme_shipping_fee")
	assert.ErrorContains(t, err, "content-only.yaml: no style tokens")
	require.Len(t, presets, 2)

	byName := map[string]Preset{}
	for _, p := range presets {
		byName[p.Name] = p
	}
	assert.Equal(t, "#0ea5e9", byName["ocean"].Tokens[KeyAccentColor])
	assert.NotContains(t, byName["ocean"].Tokens, KeyLogoURL)
	assert.Equal(t, "unnamed", byName["unnamed"].Label)
}

func TestPresetCatalog_OverridesBuiltins(t *testing.T) {
	dir := t.TempDir()
	writePreset(t, dir, "midnight.yaml", `
name: midnight
label: Midnight v2
tokens:
  theme_accent_color: "#a855f7"
`)
	c := NewPresetCatalog(dir, zaptest.NewLogger(t))
	require.NoError(t, c.Reload())

	p, err := c.Get("midnight")
	require.NoError(t, err)
	assert.Equal(t, "Midnight v2", p.Label)
	assert.False(t, p.BuiltIn)

	_, err = c.Get("nope")
	assert.ErrorIs(t, err, ErrPresetNotFound)
	assert.Len(t, c.List(), len(BuiltinPresets()))
}

func TestPresetCatalog_BuiltinsOnly(t *testing.T) {
	c := NewPresetCatalog("", zaptest.NewLogger(t))
	require.NoError(t, c.Reload())
	require.NoError(t, c.Watch())
	defer c.Close()

	p, err := c.Get("forza-crimson")
	require.NoError(t, err)
	assert.True(t, p.BuiltIn)
}

func TestPresetCatalog_WatchReloads(t *testing.T) {
	dir := t.TempDir()
	c := NewPresetCatalog(dir, zap.NewNop())
	require.NoError(t, c.Reload())

	changed := make(chan struct{}, 4)
	c.OnChange(func() { changed <- struct{}{} })
	require.NoError(t, c.Watch())
	defer c.Close()

	writePreset(t, dir, "lava.yaml", `
name: lava
tokens:
  theme_accent_color: "#dc2626"
`)

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("catalog did not reload after file write")
	}
	_, err := c.Get("lava")
	assert.NoError(t, err)
}
