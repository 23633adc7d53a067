package settings

import "github.com/Muhfaizr21/warungforzaSaas-sub001/pkg/models"

// TopicSettingsSaved is published after every successful bulk write.
const TopicSettingsSaved = "settings.saved"

// SavedEvent is the payload for TopicSettingsSaved. Settings holds every
// pair that was written, Changes only the ones whose value differed.
type SavedEvent struct {
	Actor    string                 `json:"actor"`
	Origin   string                 `json:"origin,omitempty"` // studio session id, if any
	Settings []models.Setting       `json:"settings"`
	Changes  []models.SettingChange `json:"changes"`
}
