package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Risk levels derived from a checkup score.
const (
	RiskLow      = "low"
	RiskModerate = "moderate"
	RiskHigh     = "high"
	RiskSafety   = "safety"
)

// WellnessCheckup stores one completed questionnaire. Rows are immutable
// once written; there is no update path.
type WellnessCheckup struct {
	ID              uuid.UUID        `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID          uuid.UUID        `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Responses       JSONBMap         `gorm:"type:jsonb;not null;default:'{}'" json:"responses"`
	Score           int              `json:"score"`
	RiskLevel       string           `gorm:"size:20" json:"risk_level"`
	Recommendations JSONBStringArray `gorm:"type:jsonb;default:'[]'" json:"recommendations"`
	CreatedAt       time.Time        `json:"created_at"`
}

func (c *WellnessCheckup) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
