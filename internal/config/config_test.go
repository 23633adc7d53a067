package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestViperConfig_Sub(t *testing.T) {
	v := viper.New()
	v.Set("plugins.studio.debounce", "750ms")
	v.Set("plugins.studio.presets_dir", "./presets")
	v.Set("plugins.payment.success_rate", 0.95)

	cfg := New(v)

	studio := cfg.Sub("plugins.studio")
	if got := studio.GetDuration("debounce"); got != 750*time.Millisecond {
		t.Errorf("debounce = %v, want 750ms", got)
	}
	if got := studio.GetString("presets_dir"); got != "./presets" {
		t.Errorf("presets_dir = %q, want ./presets", got)
	}

	payment := cfg.Sub("plugins.payment")
	if got := payment.GetFloat64("success_rate"); got != 0.95 {
		t.Errorf("success_rate = %v, want 0.95", got)
	}
}

func TestViperConfig_SubMissingReturnsEmpty(t *testing.T) {
	cfg := New(nil)

	sub := cfg.Sub("plugins.nothing")
	if sub == nil {
		t.Fatal("Sub() returned nil for missing key")
	}
	if sub.IsSet("anything") {
		t.Error("empty sub config reports keys as set")
	}
}

func TestViperConfig_SubKeepsDefaultsUnderPartialOverride(t *testing.T) {
	v := viper.New()
	v.SetDefault("plugins.studio.debounce", "500ms")
	v.SetDefault("plugins.studio.reap_schedule", "@every 1m")
	v.Set("plugins.studio.site_origin", "https://shop.example")

	studio := New(v).Sub("plugins.studio")
	if got := studio.GetString("site_origin"); got != "https://shop.example" {
		t.Errorf("site_origin = %q", got)
	}
	if got := studio.GetDuration("debounce"); got != 500*time.Millisecond {
		t.Errorf("debounce = %v, want default 500ms", got)
	}
	if got := studio.GetString("reap_schedule"); got != "@every 1m" {
		t.Errorf("reap_schedule = %q, want default", got)
	}
}
