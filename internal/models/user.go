package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// ParentChildLink connects a parent account to a child account it monitors.
type ParentChildLink struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	ParentID  uuid.UUID `gorm:"type:varchar(36);not null;index;uniqueIndex:idx_parent_child" json:"parent_id"`
	ChildID   uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_parent_child" json:"child_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (l *ParentChildLink) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
