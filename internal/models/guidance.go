package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DailyGuidance is the per-day structured bundle of suggestions generated
// for a user. The (user_id, date) unique index guarantees at most one row
// per user per calendar day even under concurrent generation.
type DailyGuidance struct {
	ID                uuid.UUID        `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID            uuid.UUID        `gorm:"type:varchar(36);not null;uniqueIndex:idx_daily_guidance_user_date" json:"user_id"`
	Date              string           `gorm:"type:date;not null;uniqueIndex:idx_daily_guidance_user_date" json:"date"`
	MorningRoutine    JSONBMap         `gorm:"type:jsonb;default:'{}'" json:"morning_routine"`
	WellnessTips      JSONBMap         `gorm:"type:jsonb;default:'{}'" json:"wellness_tips"`
	WorkoutSuggestion string           `gorm:"type:text" json:"workout_suggestion"`
	NutritionAdvice   string           `gorm:"type:text" json:"nutrition_advice"`
	MoodCheck         JSONBMap         `gorm:"type:jsonb;default:'{}'" json:"mood_check"`
	CompletedTasks    JSONBStringArray `gorm:"type:jsonb;default:'[]'" json:"completed_tasks"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

func (g *DailyGuidance) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// AfterFind keeps Date in YYYY-MM-DD form. PostgreSQL scans a date column
// into a string as an RFC3339 timestamp, which would otherwise leak into
// the API payload and be written back on save.
func (g *DailyGuidance) AfterFind(tx *gorm.DB) error {
	if len(g.Date) > 10 {
		if parsed, err := time.Parse(time.RFC3339, g.Date); err == nil {
			g.Date = parsed.Format("2006-01-02")
		}
	}
	return nil
}
