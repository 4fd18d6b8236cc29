package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/balanceai/wellness-backend/internal/models"
)

// The questionnaire has a fixed shape: questions 1..7, answers 0..3, with
// question 7 as the safety question.
const (
	checkupQuestionCount = 7
	safetyQuestionID     = 7
	maxAnswerValue       = 3
)

var (
	ErrIncompleteCheckup = errors.New("all questions must be answered")
	ErrInvalidAnswer     = errors.New("answer value out of range")
)

// CheckupResult is the outcome of a submitted questionnaire.
type CheckupResult struct {
	Checkup     *models.WellnessCheckup `json:"checkup"`
	SafetyAlert bool                    `json:"safety_alert"`
}

// CheckupService derives scores, risk levels and recommendations from
// questionnaire answers and stores the immutable checkup rows.
type CheckupService struct {
	db *gorm.DB
}

// NewCheckupService creates a new CheckupService instance
func NewCheckupService(db *gorm.DB) *CheckupService {
	return &CheckupService{db: db}
}

// Submit validates and stores one completed questionnaire. A positive
// answer to the safety question short-circuits scoring: the attempt is
// recorded with the safety risk tag and the caller is pointed at help
// resources instead of a score.
func (s *CheckupService) Submit(ctx context.Context, userID uuid.UUID, answers map[int]int) (*CheckupResult, error) {
	if len(answers) != checkupQuestionCount {
		return nil, ErrIncompleteCheckup
	}
	responses := models.JSONBMap{}
	for q := 1; q <= checkupQuestionCount; q++ {
		value, ok := answers[q]
		if !ok {
			return nil, ErrIncompleteCheckup
		}
		if value < 0 || value > maxAnswerValue {
			return nil, fmt.Errorf("question %d: %w", q, ErrInvalidAnswer)
		}
		responses[fmt.Sprintf("%d", q)] = value
	}

	if answers[safetyQuestionID] > 0 {
		checkup := models.WellnessCheckup{
			UserID:          userID,
			Responses:       responses,
			RiskLevel:       models.RiskSafety,
			Recommendations: safetyRecommendations,
		}
		if err := s.db.WithContext(ctx).Create(&checkup).Error; err != nil {
			return nil, fmt.Errorf("failed to store checkup: %w", err)
		}
		return &CheckupResult{Checkup: &checkup, SafetyAlert: true}, nil
	}

	score := 0
	for q := 1; q <= checkupQuestionCount; q++ {
		score += answers[q]
	}

	riskLevel := RiskLevelForScore(score)
	checkup := models.WellnessCheckup{
		UserID:          userID,
		Responses:       responses,
		Score:           score,
		RiskLevel:       riskLevel,
		Recommendations: recommendationsForRisk(riskLevel),
	}
	if err := s.db.WithContext(ctx).Create(&checkup).Error; err != nil {
		return nil, fmt.Errorf("failed to store checkup: %w", err)
	}

	return &CheckupResult{Checkup: &checkup}, nil
}

// List returns the most recent checkups for a user, newest first.
func (s *CheckupService) List(ctx context.Context, userID uuid.UUID, limit int) ([]models.WellnessCheckup, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	var checkups []models.WellnessCheckup
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&checkups).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load checkups: %w", err)
	}
	return checkups, nil
}

// RiskLevelForScore maps a tallied score to a risk tag.
func RiskLevelForScore(score int) string {
	switch {
	case score <= 5:
		return models.RiskLow
	case score <= 10:
		return models.RiskModerate
	default:
		return models.RiskHigh
	}
}

var safetyRecommendations = models.JSONBStringArray{
	"Please reach out to someone you trust about how you're feeling",
	"Contact a crisis helpline - you don't have to go through this alone",
	"Speak with a mental health professional as soon as you can",
}

func recommendationsForRisk(riskLevel string) models.JSONBStringArray {
	switch riskLevel {
	case models.RiskLow:
		return models.JSONBStringArray{
			"Keep up your current wellness habits",
			"Try adding a short daily mindfulness practice",
			"Stay connected with friends and activities you enjoy",
		}
	case models.RiskModerate:
		return models.JSONBStringArray{
			"Consider talking to someone you trust about recent stress",
			"Build a consistent sleep routine and limit late-night screens",
			"Schedule regular breaks and light exercise during the week",
		}
	default:
		return models.JSONBStringArray{
			"Talking to a counselor or therapist could really help right now",
			"Reach out to a trusted adult or friend about how you're feeling",
			"Prioritize rest and reduce commitments where you can",
		}
	}
}
