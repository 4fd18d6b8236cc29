package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TodoItem struct {
	ID            uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID        uuid.UUID      `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Task          string         `gorm:"type:text;not null" json:"task"`
	Description   string         `gorm:"type:text" json:"description"`
	Category      string         `gorm:"size:50" json:"category"`
	Priority      int            `gorm:"default:0" json:"priority"`
	DueDate       *time.Time     `json:"due_date"`
	DayOfWeek     *int           `json:"day_of_week"`
	WorkoutType   string         `gorm:"size:50" json:"workout_type"`
	ProteinAmount float64        `json:"protein_amount"`
	Completed     bool           `gorm:"default:false" json:"completed"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (t *TodoItem) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
