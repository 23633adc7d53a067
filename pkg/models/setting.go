package models

import "time"

// Setting is a single persisted key/value pair. Values are untyped strings;
// their meaning depends on the key.
type Setting struct {
	Key   string `json:"key" example:"theme_accent_color"`
	Value string `json:"value" example:"#e11d48"`
}

// SettingChange is one audited settings write.
type SettingChange struct {
	ID        int64     `json:"id" example:"42"`
	Actor     string    `json:"actor" example:"admin"`
	Key       string    `json:"key" example:"theme_accent_color"`
	OldValue  string    `json:"old_value" example:"#e11d48"`
	NewValue  string    `json:"new_value" example:"#111111"`
	ChangedAt time.Time `json:"changed_at" example:"2026-01-15T10:30:00Z"`
}
