package integration_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm/clause"

	"github.com/balanceai/wellness-backend/internal/models"
	"github.com/balanceai/wellness-backend/internal/service"
	"github.com/balanceai/wellness-backend/internal/testhelpers"
)

func TestPostgresSchemaRoundTrip(t *testing.T) {
	db := testhelpers.SetupPostgresDatabase(t)
	auth := service.NewAuthService(db, "test-secret")

	token, err := auth.Register(context.Background(), "pg@example.com", "password123", "PG User", 28, "intermediate")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := auth.ValidateToken(token)
	assert.NoError(t, err)

	checkups := service.NewCheckupService(db)
	answers := map[int]int{1: 1, 2: 2, 3: 1, 4: 0, 5: 1, 6: 2, 7: 0}
	result, err := checkups.Submit(context.Background(), claims.UserID, answers)
	assert.NoError(t, err)
	assert.Equal(t, 7, result.Checkup.Score)
	assert.Equal(t, models.RiskModerate, result.Checkup.RiskLevel)

	// JSONB columns survive the round trip.
	var stored models.WellnessCheckup
	assert.NoError(t, db.Where("user_id = ?", claims.UserID).First(&stored).Error)
	assert.Equal(t, float64(2), stored.Responses["2"])
	assert.Len(t, stored.Recommendations, 3)
}

func TestGuidanceUniquePerDayUnderConcurrency(t *testing.T) {
	db := testhelpers.SetupPostgresDatabase(t)
	userID := uuid.New()
	date := time.Now().UTC().Format("2006-01-02")

	// Simulate concurrent generation passes racing on the same day.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			guidance := models.DailyGuidance{
				UserID:         userID,
				Date:           date,
				CompletedTasks: models.JSONBStringArray{},
			}
			db.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
				DoNothing: true,
			}).Create(&guidance)
		}()
	}
	wg.Wait()

	var count int64
	db.Model(&models.DailyGuidance{}).Where("user_id = ?", userID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestGuidanceDateStableOnPostgres(t *testing.T) {
	db := testhelpers.SetupPostgresDatabase(t)
	userID := uuid.New()
	date := time.Now().UTC().Format("2006-01-02")

	assert.NoError(t, db.Create(&models.DailyGuidance{
		UserID:         userID,
		Date:           date,
		CompletedTasks: models.JSONBStringArray{},
	}).Error)

	guidanceService := service.NewGuidanceService(db)

	// The date column must come back in YYYY-MM-DD form, not as the
	// RFC3339 timestamp Postgres scans into a string.
	guidance, err := guidanceService.Today(context.Background(), userID)
	assert.NoError(t, err)
	assert.Equal(t, date, guidance.Date)

	// Toggling writes the row back; the stored date must stay queryable
	// by its plain form.
	toggled, err := guidanceService.ToggleTask(context.Background(), userID, "meditation")
	assert.NoError(t, err)
	assert.Equal(t, date, toggled.Date)

	again, err := guidanceService.Today(context.Background(), userID)
	assert.NoError(t, err)
	assert.Equal(t, date, again.Date)
	assert.Equal(t, models.JSONBStringArray{"meditation"}, again.CompletedTasks)
}
