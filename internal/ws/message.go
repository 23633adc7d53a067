package ws

import (
	"fmt"

	"github.com/Muhfaizr21/warungforzaSaas-sub001/internal/theme"
)

// MessageType discriminates WebSocket messages.
type MessageType string

// MessageThemePreview carries a full token mapping to or from a preview frame.
const MessageThemePreview MessageType = "THEME_PREVIEW"

// ProtocolVersion is the payload version this server speaks.
const ProtocolVersion = 1

// Message is the envelope exchanged with preview frames. Seq increases per
// hub and is informational; receivers apply messages in arrival order.
type Message struct {
	Type    MessageType  `json:"type"`
	Version int          `json:"version"`
	Seq     uint64       `json:"seq"`
	Theme   theme.Tokens `json:"theme"`
}

// Validate checks the tag and version of an inbound message.
func (m Message) Validate() error {
	if m.Type != MessageThemePreview {
		return fmt.Errorf("unsupported message type %q", m.Type)
	}
	if m.Version != ProtocolVersion {
		return fmt.Errorf("unsupported protocol version %d", m.Version)
	}
	return nil
}
