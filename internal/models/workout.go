package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Exercise is one entry in a workout plan's ordered exercise list.
type Exercise struct {
	Name string `json:"name"`
	Sets int    `json:"sets"`
	Reps int    `json:"reps"`
}

// ExerciseList is a custom type for handling exercise arrays in JSONB
type ExerciseList []Exercise

// Value implements the driver.Valuer interface
func (e ExerciseList) Value() (driver.Value, error) {
	if len(e) == 0 {
		return "[]", nil
	}
	return json.Marshal(e)
}

// Scan implements the sql.Scanner interface
func (e *ExerciseList) Scan(value interface{}) error {
	if value == nil {
		*e = ExerciseList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, e)
}

// WorkoutPlan is a user-authored workout template.
type WorkoutPlan struct {
	ID              uuid.UUID        `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID          uuid.UUID        `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Title           string           `gorm:"size:255;not null" json:"title"`
	Description     string           `gorm:"type:text" json:"description"`
	Difficulty      string           `gorm:"size:50;default:'beginner'" json:"difficulty"`
	DurationMinutes int              `json:"duration_minutes"`
	Exercises       ExerciseList     `gorm:"type:jsonb;not null;default:'[]'" json:"exercises"`
	Tags            JSONBStringArray `gorm:"type:jsonb;default:'[]'" json:"tags"`
	IsActive        bool             `gorm:"default:true" json:"is_active"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
	DeletedAt       gorm.DeletedAt   `gorm:"index" json:"-"`
}

func (p *WorkoutPlan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// WorkoutSession records one started workout. A session with a nil
// CompletedAt is "open"; the service layer allows at most one open
// session per user.
type WorkoutSession struct {
	ID              uuid.UUID  `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID          uuid.UUID  `gorm:"type:varchar(36);not null;index" json:"user_id"`
	WorkoutPlanID   *uuid.UUID `gorm:"type:varchar(36)" json:"workout_plan_id"`
	StartedAt       time.Time  `gorm:"not null" json:"started_at"`
	CompletedAt     *time.Time `json:"completed_at"`
	DurationMinutes int        `json:"duration_minutes"`
	Rating          int        `gorm:"check:rating >= 0 AND rating <= 5" json:"rating"`
	CaloriesBurned  int        `json:"calories_burned"`
	Notes           string     `gorm:"type:text" json:"notes"`
	CreatedAt       time.Time  `json:"created_at"`
}

func (s *WorkoutSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
