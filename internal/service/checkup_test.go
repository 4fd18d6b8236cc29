package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/balanceai/wellness-backend/internal/models"
	"github.com/balanceai/wellness-backend/internal/service"
	"github.com/balanceai/wellness-backend/internal/testhelpers"
)

func allAnswers(value int) map[int]int {
	answers := make(map[int]int, 7)
	for q := 1; q <= 7; q++ {
		answers[q] = value
	}
	return answers
}

func TestSubmitCheckupLowRisk(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewCheckupService(db)
	userID := uuid.New()

	answers := allAnswers(0)
	answers[1] = 2
	answers[2] = 1

	result, err := svc.Submit(context.Background(), userID, answers)
	assert.NoError(t, err)
	assert.False(t, result.SafetyAlert)
	assert.Equal(t, 3, result.Checkup.Score)
	assert.Equal(t, models.RiskLow, result.Checkup.RiskLevel)
	assert.NotEmpty(t, result.Checkup.Recommendations)
}

func TestSubmitCheckupRiskBoundaries(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewCheckupService(db)

	cases := []struct {
		answers map[int]int
		score   int
		risk    string
	}{
		{map[int]int{1: 2, 2: 3, 3: 0, 4: 0, 5: 0, 6: 0, 7: 0}, 5, models.RiskLow},
		{map[int]int{1: 3, 2: 3, 3: 0, 4: 0, 5: 0, 6: 0, 7: 0}, 6, models.RiskModerate},
		{map[int]int{1: 3, 2: 3, 3: 3, 4: 1, 5: 0, 6: 0, 7: 0}, 10, models.RiskModerate},
		{map[int]int{1: 3, 2: 3, 3: 3, 4: 2, 5: 0, 6: 0, 7: 0}, 11, models.RiskHigh},
	}

	for _, tc := range cases {
		result, err := svc.Submit(context.Background(), uuid.New(), tc.answers)
		if err != nil {
			t.Fatalf("submit failed for score %d: %v", tc.score, err)
		}
		assert.Equal(t, tc.score, result.Checkup.Score)
		assert.Equal(t, tc.risk, result.Checkup.RiskLevel)
	}
}

func TestSubmitCheckupSafetyAlert(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewCheckupService(db)
	userID := uuid.New()

	// High scores everywhere, but the safety question dominates.
	answers := allAnswers(3)

	result, err := svc.Submit(context.Background(), userID, answers)
	assert.NoError(t, err)
	assert.True(t, result.SafetyAlert)
	assert.Equal(t, models.RiskSafety, result.Checkup.RiskLevel)
	assert.Equal(t, 0, result.Checkup.Score)
	assert.NotEmpty(t, result.Checkup.Recommendations)

	var stored models.WellnessCheckup
	if err := db.Where("user_id = ?", userID).First(&stored).Error; err != nil {
		t.Fatalf("safety checkup not persisted: %v", err)
	}
	assert.Equal(t, models.RiskSafety, stored.RiskLevel)
}

func TestSubmitCheckupIncomplete(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewCheckupService(db)
	userID := uuid.New()

	_, err := svc.Submit(context.Background(), userID, map[int]int{1: 1, 2: 2})
	assert.ErrorIs(t, err, service.ErrIncompleteCheckup)

	// Question numbers outside 1..7 don't count as answers.
	answers := map[int]int{1: 1, 2: 1, 3: 1, 4: 1, 5: 1, 6: 1, 9: 1}
	_, err = svc.Submit(context.Background(), userID, answers)
	assert.ErrorIs(t, err, service.ErrIncompleteCheckup)

	var count int64
	db.Model(&models.WellnessCheckup{}).Where("user_id = ?", userID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestSubmitCheckupInvalidAnswer(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewCheckupService(db)
	userID := uuid.New()

	answers := allAnswers(0)
	answers[3] = 4
	_, err := svc.Submit(context.Background(), userID, answers)
	assert.ErrorIs(t, err, service.ErrInvalidAnswer)

	answers[3] = -1
	_, err = svc.Submit(context.Background(), userID, answers)
	assert.ErrorIs(t, err, service.ErrInvalidAnswer)

	var count int64
	db.Model(&models.WellnessCheckup{}).Where("user_id = ?", userID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestRiskLevelForScore(t *testing.T) {
	assert.Equal(t, models.RiskLow, service.RiskLevelForScore(0))
	assert.Equal(t, models.RiskLow, service.RiskLevelForScore(5))
	assert.Equal(t, models.RiskModerate, service.RiskLevelForScore(6))
	assert.Equal(t, models.RiskModerate, service.RiskLevelForScore(10))
	assert.Equal(t, models.RiskHigh, service.RiskLevelForScore(11))
	assert.Equal(t, models.RiskHigh, service.RiskLevelForScore(18))
}

func TestListCheckups(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewCheckupService(db)
	userID := uuid.New()

	for i := 0; i < 3; i++ {
		if _, err := svc.Submit(context.Background(), userID, allAnswers(0)); err != nil {
			t.Fatalf("submit failed: %v", err)
		}
	}
	// Another user's checkups must not leak in.
	if _, err := svc.Submit(context.Background(), uuid.New(), allAnswers(0)); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	checkups, err := svc.List(context.Background(), userID, 10)
	assert.NoError(t, err)
	assert.Len(t, checkups, 3)

	limited, err := svc.List(context.Background(), userID, 2)
	assert.NoError(t, err)
	assert.Len(t, limited, 2)
}
