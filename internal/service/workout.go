package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/balanceai/wellness-backend/internal/models"
)

var (
	ErrSessionAlreadyOpen = errors.New("a workout session is already in progress")
	ErrSessionNotFound    = errors.New("workout session not found")
	ErrSessionCompleted   = errors.New("workout session already completed")
	ErrPlanNotFound       = errors.New("workout plan not found")
	ErrInvalidRating      = errors.New("rating must be between 1 and 5")
)

// WorkoutService manages workout plans and the sessions run against them.
type WorkoutService struct {
	db *gorm.DB
}

// NewWorkoutService creates a new WorkoutService instance
func NewWorkoutService(db *gorm.DB) *WorkoutService {
	return &WorkoutService{db: db}
}

// CreatePlan stores a new workout template.
func (s *WorkoutService) CreatePlan(ctx context.Context, plan *models.WorkoutPlan) error {
	if err := s.db.WithContext(ctx).Create(plan).Error; err != nil {
		return fmt.Errorf("failed to create workout plan: %w", err)
	}
	return nil
}

// ListPlans returns the user's active workout plans.
func (s *WorkoutService) ListPlans(ctx context.Context, userID uuid.UUID) ([]models.WorkoutPlan, error) {
	var plans []models.WorkoutPlan
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at DESC").
		Find(&plans).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load workout plans: %w", err)
	}
	return plans, nil
}

// UpdatePlan saves changes to an existing plan owned by the user.
func (s *WorkoutService) UpdatePlan(ctx context.Context, userID uuid.UUID, plan *models.WorkoutPlan) error {
	var existing models.WorkoutPlan
	if err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", plan.ID, userID).
		First(&existing).Error; err != nil {
		return ErrPlanNotFound
	}

	existing.Title = plan.Title
	existing.Description = plan.Description
	existing.Difficulty = plan.Difficulty
	existing.DurationMinutes = plan.DurationMinutes
	existing.Exercises = plan.Exercises
	existing.Tags = plan.Tags
	if err := s.db.WithContext(ctx).Save(&existing).Error; err != nil {
		return fmt.Errorf("failed to update workout plan: %w", err)
	}
	*plan = existing
	return nil
}

// DeletePlan soft-deletes a plan owned by the user.
func (s *WorkoutService) DeletePlan(ctx context.Context, userID, planID uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", planID, userID).
		Delete(&models.WorkoutPlan{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete workout plan: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrPlanNotFound
	}
	return nil
}

// StartSession opens a new workout session. A user may have at most one
// open session; the check happens here rather than in the UI.
func (s *WorkoutService) StartSession(ctx context.Context, userID uuid.UUID, planID *uuid.UUID) (*models.WorkoutSession, error) {
	var open models.WorkoutSession
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND completed_at IS NULL", userID).
		First(&open).Error
	if err == nil {
		return nil, ErrSessionAlreadyOpen
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check open sessions: %w", err)
	}

	if planID != nil {
		var plan models.WorkoutPlan
		if err := s.db.WithContext(ctx).
			Where("id = ? AND user_id = ?", *planID, userID).
			First(&plan).Error; err != nil {
			return nil, ErrPlanNotFound
		}
	}

	session := models.WorkoutSession{
		UserID:        userID,
		WorkoutPlanID: planID,
		StartedAt:     time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&session).Error; err != nil {
		return nil, fmt.Errorf("failed to start workout session: %w", err)
	}
	return &session, nil
}

// CompleteSession closes an open session with its outcome details.
func (s *WorkoutService) CompleteSession(ctx context.Context, userID, sessionID uuid.UUID, rating, calories int, notes string) (*models.WorkoutSession, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	var session models.WorkoutSession
	if err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", sessionID, userID).
		First(&session).Error; err != nil {
		return nil, ErrSessionNotFound
	}
	if session.CompletedAt != nil {
		return nil, ErrSessionCompleted
	}

	now := time.Now().UTC()
	session.CompletedAt = &now
	session.DurationMinutes = int(now.Sub(session.StartedAt).Minutes())
	session.Rating = rating
	session.CaloriesBurned = calories
	session.Notes = notes

	if err := s.db.WithContext(ctx).Save(&session).Error; err != nil {
		return nil, fmt.Errorf("failed to complete workout session: %w", err)
	}
	return &session, nil
}

// ListSessions returns the user's most recent sessions, newest first.
func (s *WorkoutService) ListSessions(ctx context.Context, userID uuid.UUID, limit int) ([]models.WorkoutSession, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	var sessions []models.WorkoutSession
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&sessions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load workout sessions: %w", err)
	}
	return sessions, nil
}
