package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Scan types accepted by the health scanner.
const (
	ScanTypeFood   = "food"
	ScanTypeSelfie = "selfie"
)

// ScanResult is the persisted record of one image-analysis invocation.
type ScanResult struct {
	ID              uuid.UUID        `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID          uuid.UUID        `gorm:"type:varchar(36);not null;index" json:"user_id"`
	ScanType        string           `gorm:"size:20;not null" json:"scan_type"`
	AnalysisData    JSONBMap         `gorm:"type:jsonb;not null;default:'{}'" json:"analysis_data"`
	Recommendations JSONBStringArray `gorm:"type:jsonb;default:'[]'" json:"recommendations"`
	ImageURL        string           `gorm:"size:255" json:"image_url"`
	CreatedAt       time.Time        `json:"created_at"`
}

func (s *ScanResult) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
