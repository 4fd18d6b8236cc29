package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/balanceai/wellness-backend/internal/models"
)

var ErrTodoNotFound = errors.New("todo item not found")

// TodoService manages the user's task list.
type TodoService struct {
	db *gorm.DB
}

// NewTodoService creates a new TodoService instance
func NewTodoService(db *gorm.DB) *TodoService {
	return &TodoService{db: db}
}

// Create stores a new todo item.
func (s *TodoService) Create(ctx context.Context, item *models.TodoItem) error {
	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("failed to create todo item: %w", err)
	}
	return nil
}

// List returns the user's todo items, incomplete first, newest within each
// group.
func (s *TodoService) List(ctx context.Context, userID uuid.UUID) ([]models.TodoItem, error) {
	var items []models.TodoItem
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("completed ASC, created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load todo items: %w", err)
	}
	return items, nil
}

// Update saves changes to an item owned by the user.
func (s *TodoService) Update(ctx context.Context, userID uuid.UUID, item *models.TodoItem) error {
	var existing models.TodoItem
	if err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", item.ID, userID).
		First(&existing).Error; err != nil {
		return ErrTodoNotFound
	}

	existing.Task = item.Task
	existing.Description = item.Description
	existing.Category = item.Category
	existing.Priority = item.Priority
	existing.DueDate = item.DueDate
	existing.DayOfWeek = item.DayOfWeek
	existing.WorkoutType = item.WorkoutType
	existing.ProteinAmount = item.ProteinAmount
	existing.Completed = item.Completed
	if err := s.db.WithContext(ctx).Save(&existing).Error; err != nil {
		return fmt.Errorf("failed to update todo item: %w", err)
	}
	*item = existing
	return nil
}

// ToggleComplete flips the completion flag of an item.
func (s *TodoService) ToggleComplete(ctx context.Context, userID, itemID uuid.UUID) (*models.TodoItem, error) {
	var item models.TodoItem
	if err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, userID).
		First(&item).Error; err != nil {
		return nil, ErrTodoNotFound
	}

	item.Completed = !item.Completed
	if err := s.db.WithContext(ctx).Save(&item).Error; err != nil {
		return nil, fmt.Errorf("failed to toggle todo item: %w", err)
	}
	return &item, nil
}

// Delete removes an item owned by the user.
func (s *TodoService) Delete(ctx context.Context, userID, itemID uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, userID).
		Delete(&models.TodoItem{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete todo item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTodoNotFound
	}
	return nil
}
