package models

import (
	"time"

	"github.com/google/uuid"
)

// Message senders
const (
	SenderUser = "user"
	SenderBot  = "bot"
)

// Message types
const (
	TypeText  = "text"
	TypeAudio = "audio"
)

// Message is one chat bubble.
type Message struct {
	ID        uuid.UUID `json:"id"`
	Text      string    `json:"text"`
	Sender    string    `json:"sender"`
	Type      string    `json:"type"`
	AudioURL  string    `json:"audio_url,omitempty"`
	Timestamp time.Time `json:"timestamp"`

	// Set on bot replies produced by the responder.
	Urgency     string   `json:"urgency,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// IsFromBot returns true if the assistant sent the message.
func (m *Message) IsFromBot() bool {
	return m.Sender == SenderBot
}

// IsAudio returns true for recorded voice messages.
func (m *Message) IsAudio() bool {
	return m.Type == TypeAudio
}
