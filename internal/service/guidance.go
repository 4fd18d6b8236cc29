package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/balanceai/wellness-backend/internal/models"
)

var ErrGuidanceNotFound = errors.New("no guidance for today")

// GuidanceService reads the per-day guidance records and tracks task
// completion. Creation happens inside the chat pipeline.
type GuidanceService struct {
	db *gorm.DB
}

// NewGuidanceService creates a new GuidanceService instance
func NewGuidanceService(db *gorm.DB) *GuidanceService {
	return &GuidanceService{db: db}
}

// Today returns the guidance record for the current calendar date.
func (s *GuidanceService) Today(ctx context.Context, userID uuid.UUID) (*models.DailyGuidance, error) {
	var guidance models.DailyGuidance
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, todayDate()).
		First(&guidance).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrGuidanceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load guidance: %w", err)
	}
	return &guidance, nil
}

// ToggleTask adds or removes a task ID from today's completed-task list.
func (s *GuidanceService) ToggleTask(ctx context.Context, userID uuid.UUID, taskID string) (*models.DailyGuidance, error) {
	guidance, err := s.Today(ctx, userID)
	if err != nil {
		return nil, err
	}

	tasks := make(models.JSONBStringArray, 0, len(guidance.CompletedTasks)+1)
	found := false
	for _, t := range guidance.CompletedTasks {
		if t == taskID {
			found = true
			continue
		}
		tasks = append(tasks, t)
	}
	if !found {
		tasks = append(tasks, taskID)
	}

	guidance.CompletedTasks = tasks
	if err := s.db.WithContext(ctx).Save(guidance).Error; err != nil {
		return nil, fmt.Errorf("failed to update completed tasks: %w", err)
	}
	return guidance, nil
}
