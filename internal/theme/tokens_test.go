package theme

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaults_AccentColor(t *testing.T) {
	if got := Defaults()[KeyAccentColor]; got != "#e11d48" {
		t.Errorf("default accent = %q, want #e11d48", got)
	}
}

func TestDefaults_FreshCopy(t *testing.T) {
	a := Defaults()
	a[KeyAccentColor] = "#000000"
	if Defaults()[KeyAccentColor] != "#e11d48" {
		t.Error("mutating a Defaults() result must not affect later calls")
	}
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name    string
		records []Record
		key     string
		want    string
	}{
		{"no records keeps default", nil, KeyAccentColor, "#e11d48"},
		{"override", []Record{{Key: KeyAccentColor, Value: "#111111"}}, KeyAccentColor, "#111111"},
		{"empty value falls back", []Record{{Key: KeyAccentColor, Value: ""}}, KeyAccentColor, "#e11d48"},
		{"unknown key kept", []Record{{Key: "theme_promo_color", Value: "#abcdef"}}, "theme_promo_color", "#abcdef"},
		{"last record wins", []Record{
			{Key: KeyAccentColor, Value: "#222222"},
			{Key: KeyAccentColor, Value: "#333333"},
		}, KeyAccentColor, "#333333"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Merge(tt.records)[tt.key]; got != tt.want {
				t.Errorf("Merge()[%q] = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestMerge_NeverBlanksDefaults(t *testing.T) {
	// Backend sends every known key with an empty value.
	var records []Record
	for k := range Defaults() {
		records = append(records, Record{Key: k, Value: ""})
	}
	merged := Merge(records)
	for k, def := range Defaults() {
		if def != "" && merged[k] == "" {
			t.Errorf("key %q resolved to empty, default is %q", k, def)
		}
	}
}

func TestDirtySet(t *testing.T) {
	base := Tokens{"a": "1", "b": "2"}
	tests := []struct {
		name  string
		draft Tokens
		want  []string
	}{
		{"identical", Tokens{"a": "1", "b": "2"}, nil},
		{"changed value", Tokens{"a": "1", "b": "3"}, []string{"b"}},
		{"added key", Tokens{"a": "1", "b": "2", "c": ""}, []string{"c"}},
		{"removed key", Tokens{"a": "1"}, []string{"b"}},
		{"sorted", Tokens{"a": "x", "b": "y"}, []string{"a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, DirtySet(tt.draft, base)); diff != "" {
				t.Errorf("DirtySet mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRecords(t *testing.T) {
	got := Records(Tokens{"a": "1", "b": "2"}, []string{"b"})
	want := []Record{{Key: "b", Value: "2"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Records mismatch (-want +got):\n%s", diff)
	}
}

func TestOverlay_DoesNotMutate(t *testing.T) {
	base := Tokens{"a": "1"}
	out := base.Overlay(Tokens{"a": "2", "b": "3"})
	if base["a"] != "1" || len(base) != 1 {
		t.Errorf("base mutated: %v", base)
	}
	if diff := cmp.Diff(Tokens{"a": "2", "b": "3"}, out); diff != "" {
		t.Errorf("Overlay mismatch (-want +got):\n%s", diff)
	}
}
