package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sender tags for chat messages.
const (
	SenderUser = "user"
	SenderAI   = "ai"
)

// ChatMessage is one conversational turn. The table is append-only.
type ChatMessage struct {
	ID          uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID      uuid.UUID `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Message     string    `gorm:"type:text;not null" json:"message"`
	Sender      string    `gorm:"size:10;not null" json:"sender"`
	MessageType string    `gorm:"size:20;default:'text'" json:"message_type"`
	Metadata    JSONBMap  `gorm:"type:jsonb;default:'{}'" json:"metadata"`
	CreatedAt   time.Time `json:"created_at"`
}

func (m *ChatMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
