package theme

import (
	"slices"
)

// PreservedKeys are content tokens a preset never overwrites.
var PreservedKeys = []string{
	KeyStoreName,
	KeyLogoURL,
	KeyHeroTitle,
	KeyHeroSubtitle,
	KeyHeroImageURL,
	KeyFooterText,
	KeyAnnouncementHTML,
	KeyCustomCSS,
}

// IsPreserved reports whether key is on the content allow-list.
func IsPreserved(key string) bool {
	return slices.Contains(PreservedKeys, key)
}

// Preset is a named bundle of color and typography tokens.
type Preset struct {
	Name        string `json:"name" yaml:"name"`
	Label       string `json:"label" yaml:"label"`
	Description string `json:"description,omitempty" yaml:"description"`
	Tokens      Tokens `json:"tokens" yaml:"tokens"`
	BuiltIn     bool   `json:"built_in" yaml:"-"`
}

// ApplyPreset layers defaults, the current draft and the preset's style
// tokens, then puts the draft's content keys back so they always win.
// Preset keys without a CSS variable are ignored.
func ApplyPreset(draft Tokens, p Preset) Tokens {
	defaults := Defaults()
	out := defaults.Overlay(draft)
	for k, v := range p.Tokens {
		if _, ok := CSSVar(k); ok {
			out[k] = v
		}
	}
	for _, k := range PreservedKeys {
		if v, ok := draft[k]; ok {
			out[k] = v
		} else {
			out[k] = defaults[k]
		}
	}
	return out
}

// BuiltinPresets returns the presets shipped with the binary.
func BuiltinPresets() []Preset {
	return []Preset{
		{
			Name:        "forza-crimson",
			Label:       "Forza Crimson",
			Description: "House style: slate chrome with a crimson accent.",
			Tokens: Tokens{
				"theme_primary_color":    "#0f172a",
				KeyAccentColor:           "#e11d48",
				"theme_background_color": "#ffffff",
				"theme_button_bg_color":  "#e11d48",
				"theme_header_bg_color":  "#0f172a",
				"theme_footer_bg_color":  "#0f172a",
				"theme_heading_font":     "'Oswald', sans-serif",
				"theme_body_font":        "'Inter', sans-serif",
			},
			BuiltIn: true,
		},
		{
			Name:        "midnight",
			Label:       "Midnight",
			Description: "Dark storefront for showcase photography.",
			Tokens: Tokens{
				"theme_primary_color":     "#e2e8f0",
				KeyAccentColor:            "#38bdf8",
				"theme_background_color":  "#020617",
				"theme_surface_color":     "#0f172a",
				"theme_text_color":        "#e2e8f0",
				"theme_muted_color":       "#94a3b8",
				"theme_border_color":      "#1e293b",
				"theme_button_bg_color":   "#38bdf8",
				"theme_button_text_color": "#020617",
				"theme_header_bg_color":   "#020617",
				"theme_footer_bg_color":   "#020617",
			},
			BuiltIn: true,
		},
		{
			Name:        "sakura",
			Label:       "Sakura",
			Description: "Soft pink palette for anime figure drops.",
			Tokens: Tokens{
				KeyAccentColor:           "#db2777",
				"theme_background_color": "#fff1f2",
				"theme_surface_color":    "#ffe4e6",
				"theme_button_bg_color":  "#db2777",
				"theme_header_bg_color":  "#831843",
				"theme_footer_bg_color":  "#831843",
				"theme_heading_font":     "'M PLUS Rounded 1c', sans-serif",
				"theme_button_radius":    "9999px",
			},
			BuiltIn: true,
		},
		{
			Name:        "emerald",
			Label:       "Emerald",
			Description: "Green accent for sale and restock campaigns.",
			Tokens: Tokens{
				KeyAccentColor:           "#059669",
				"theme_button_bg_color":  "#059669",
				"theme_badge_bg_color":   "#a7f3d0",
				"theme_badge_text_color": "#064e3b",
				"theme_header_bg_color":  "#064e3b",
				"theme_footer_bg_color":  "#064e3b",
			},
			BuiltIn: true,
		},
		{
			Name:        "mono",
			Label:       "Mono",
			Description: "Black and white, square corners.",
			Tokens: Tokens{
				"theme_primary_color":     "#000000",
				KeyAccentColor:            "#000000",
				"theme_background_color":  "#ffffff",
				"theme_button_bg_color":   "#000000",
				"theme_button_text_color": "#ffffff",
				"theme_button_radius":     "0",
				"theme_card_radius":       "0",
				"theme_heading_font":      "'Space Grotesk', sans-serif",
			},
			BuiltIn: true,
		},
	}
}
