// Package theme implements the storefront design-token pipeline: the default
// token table, merging persisted settings over it, projecting tokens onto CSS
// custom properties, presets, undo/redo history and the draft editor that
// ties them together.
package theme

import (
	"maps"
	"slices"

	"github.com/Muhfaizr21/warungforzaSaas-sub001/pkg/models"
)

// Tokens is a flat mapping of token key to value. Keys follow the
// theme_<area>_<property> convention; values are untyped strings.
type Tokens map[string]string

// Record is one settings row as returned by the settings API.
type Record = models.Setting

// Well-known token keys.
const (
	KeyAccentColor      = "theme_accent_color"
	KeyCustomCSS        = "theme_custom_css"
	KeyLogoURL          = "theme_logo_url"
	KeyStoreName        = "theme_store_name"
	KeyHeroTitle        = "theme_hero_title"
	KeyHeroSubtitle     = "theme_hero_subtitle"
	KeyHeroImageURL     = "theme_hero_image_url"
	KeyFooterText       = "theme_footer_text"
	KeyAnnouncementHTML = "theme_announcement_html"
)

type tokenDef struct {
	key    string
	value  string
	cssVar string // empty for content tokens
}

var tokenTable = []tokenDef{
	{"theme_primary_color", "#0f172a", "--color-primary"},
	{KeyAccentColor, "#e11d48", "--color-accent"},
	{"theme_background_color", "#ffffff", "--color-background"},
	{"theme_surface_color", "#f8fafc", "--color-surface"},
	{"theme_text_color", "#0f172a", "--color-text"},
	{"theme_muted_color", "#64748b", "--color-muted"},
	{"theme_border_color", "#e2e8f0", "--color-border"},
	{"theme_button_bg_color", "#e11d48", "--button-bg"},
	{"theme_button_text_color", "#ffffff", "--button-text"},
	{"theme_button_radius", "0.5rem", "--button-radius"},
	{"theme_header_bg_color", "#0f172a", "--header-bg"},
	{"theme_header_text_color", "#ffffff", "--header-text"},
	{"theme_footer_bg_color", "#0f172a", "--footer-bg"},
	{"theme_footer_text_color", "#cbd5e1", "--footer-text"},
	{"theme_badge_bg_color", "#facc15", "--badge-bg"},
	{"theme_badge_text_color", "#0f172a", "--badge-text"},
	{"theme_heading_font", "'Oswald', sans-serif", "--font-heading"},
	{"theme_body_font", "'Inter', sans-serif", "--font-body"},
	{"theme_base_font_size", "16px", "--font-size-base"},
	{"theme_card_radius", "0.75rem", "--card-radius"},
	{"theme_card_shadow", "0 1px 3px rgba(0,0,0,0.12)", "--card-shadow"},
	{"theme_container_width", "1280px", "--container-width"},

	{KeyStoreName, "Warung Forza Shop", ""},
	{KeyLogoURL, "", ""},
	{KeyHeroTitle, "Collectible Figures, Delivered", ""},
	{KeyHeroSubtitle, "Pre-orders and ready stock from trusted makers.", ""},
	{KeyHeroImageURL, "", ""},
	{KeyFooterText, "© Warung Forza Shop", ""},
	{KeyAnnouncementHTML, "", ""},
	{KeyCustomCSS, "", ""},
}

var cssVars = func() map[string]string {
	m := make(map[string]string, len(tokenTable))
	for _, d := range tokenTable {
		if d.cssVar != "" {
			m[d.key] = d.cssVar
		}
	}
	return m
}()

// Defaults returns a fresh copy of the default token table.
func Defaults() Tokens {
	t := make(Tokens, len(tokenTable))
	for _, d := range tokenTable {
		t[d.key] = d.value
	}
	return t
}

// CSSVar returns the custom property a token projects onto, if any.
func CSSVar(key string) (string, bool) {
	v, ok := cssVars[key]
	return v, ok
}

// Merge overlays the non-empty values of records onto the defaults. Keys
// missing or empty in records keep their default; unknown keys with a value
// are carried through.
func Merge(records []Record) Tokens {
	out := Defaults()
	for _, r := range records {
		if r.Key == "" || r.Value == "" {
			continue
		}
		out[r.Key] = r.Value
	}
	return out
}

// Clone returns a copy of t. A nil mapping clones to an empty one.
func (t Tokens) Clone() Tokens {
	if t == nil {
		return Tokens{}
	}
	return maps.Clone(t)
}

// Overlay returns a copy of t with every entry of over applied on top.
func (t Tokens) Overlay(over Tokens) Tokens {
	out := t.Clone()
	maps.Copy(out, over)
	return out
}

// Keys returns the token keys in sorted order.
func (t Tokens) Keys() []string {
	return slices.Sorted(maps.Keys(t))
}

// DirtySet returns the sorted keys whose draft value differs from baseline.
func DirtySet(draft, baseline Tokens) []string {
	var dirty []string
	for k, v := range draft {
		if bv, ok := baseline[k]; !ok || bv != v {
			dirty = append(dirty, k)
		}
	}
	for k := range baseline {
		if _, ok := draft[k]; !ok {
			dirty = append(dirty, k)
		}
	}
	slices.Sort(dirty)
	return dirty
}

// Records returns the draft values for keys as settings records.
func Records(draft Tokens, keys []string) []Record {
	out := make([]Record, 0, len(keys))
	for _, k := range keys {
		out = append(out, Record{Key: k, Value: draft[k]})
	}
	return out
}
