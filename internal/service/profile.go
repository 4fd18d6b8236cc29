package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/balanceai/wellness-backend/internal/models"
)

var ErrProfileNotFound = errors.New("profile not found")

// ProfileService manages the per-user profile row.
type ProfileService struct {
	db *gorm.DB
}

// NewProfileService creates a new ProfileService instance
func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// GetProfile returns the profile for a user.
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return &profile, nil
}

// UpdateProfile saves user-editable profile fields.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, displayName string, age int, fitnessLevel string, preferences models.JSONBMap) (*models.Profile, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile.DisplayName = displayName
	profile.Age = age
	if fitnessLevel != "" {
		profile.FitnessLevel = fitnessLevel
	}
	if preferences != nil {
		profile.Preferences = preferences
	}

	if err := s.db.WithContext(ctx).Save(profile).Error; err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return profile, nil
}
