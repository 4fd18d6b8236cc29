package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Profile struct {
	ID           uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID       uuid.UUID      `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	DisplayName  string         `gorm:"size:255" json:"display_name"`
	Age          int            `json:"age"`
	FitnessLevel string         `gorm:"size:50;default:'beginner'" json:"fitness_level"`
	AvatarURL    string         `gorm:"size:255" json:"avatar_url"`
	Preferences  JSONBMap       `gorm:"type:jsonb;default:'{}'" json:"preferences"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
