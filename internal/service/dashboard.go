package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/balanceai/wellness-backend/internal/models"
)

const dashboardCacheTTL = 5 * time.Minute

// Metric is one dashboard wellness metric tile.
type Metric struct {
	Name    string  `json:"name"`
	Current float64 `json:"current"`
	Goal    float64 `json:"goal"`
	Unit    string  `json:"unit"`
	Trend   string  `json:"trend"`
	Icon    string  `json:"icon"`
}

// Achievement is one dashboard achievement badge.
type Achievement struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Emoji       string `json:"emoji"`
	Unlocked    bool   `json:"unlocked"`
}

// WeeklyEntry is one day in the weekly wellness series.
type WeeklyEntry struct {
	Day      string  `json:"day"`
	Wellness float64 `json:"wellness"`
	Mood     float64 `json:"mood"`
	Sleep    float64 `json:"sleep"`
}

// DashboardData is the composed dashboard payload.
type DashboardData struct {
	WellnessScore int           `json:"wellnessScore"`
	PreviousScore int           `json:"previousScore"`
	Metrics       []Metric      `json:"metrics"`
	Achievements  []Achievement `json:"achievements"`
	WeeklyData    []WeeklyEntry `json:"weeklyData"`
}

// ChildSummary is one linked child's profile plus latest checkup.
type ChildSummary struct {
	Profile     models.Profile          `json:"profile"`
	LastCheckup *models.WellnessCheckup `json:"last_checkup"`
}

// Placeholder metrics, achievements and weekly series; real historical
// aggregation is not derived yet.
var (
	placeholderMetrics = []Metric{
		{Name: "Sleep Quality", Current: 7.5, Goal: 8.0, Unit: "hours", Trend: "up", Icon: "Moon"},
		{Name: "Stress Level", Current: 3.2, Goal: 2.5, Unit: "/10", Trend: "down", Icon: "Brain"},
		{Name: "Mood Balance", Current: 8.1, Goal: 8.5, Unit: "/10", Trend: "up", Icon: "Heart"},
		{Name: "Activity Level", Current: 6.8, Goal: 7.5, Unit: "/10", Trend: "up", Icon: "Zap"},
	}
	placeholderAchievements = []Achievement{
		{Name: "Mind Aware", Description: "Completed first wellness checkup", Emoji: "🧘", Unlocked: true},
		{Name: "Week Warrior", Description: "7 days of consistent tracking", Emoji: "💪", Unlocked: true},
		{Name: "Balance Master", Description: "Maintained 70%+ balance for 2 weeks", Emoji: "⚖️", Unlocked: true},
		{Name: "Sleep Champion", Description: "Achieved sleep goals 5 nights running", Emoji: "😴", Unlocked: false},
		{Name: "Wellness Guru", Description: "30 days of wellness tracking", Emoji: "🌟", Unlocked: false},
		{Name: "AI Explorer", Description: "Used all AI scanner features", Emoji: "🔍", Unlocked: false},
	}
	placeholderWeekly = []WeeklyEntry{
		{Day: "Mon", Wellness: 65, Mood: 7, Sleep: 7},
		{Day: "Tue", Wellness: 70, Mood: 8, Sleep: 6.5},
		{Day: "Wed", Wellness: 68, Mood: 7.5, Sleep: 8},
		{Day: "Thu", Wellness: 75, Mood: 8.5, Sleep: 7.5},
		{Day: "Fri", Wellness: 78, Mood: 8, Sleep: 7},
		{Day: "Sat", Wellness: 82, Mood: 9, Sleep: 8.5},
		{Day: "Sun", Wellness: 80, Mood: 8.5, Sleep: 8},
	}
)

// DashboardService composes the read-aggregation payloads for the
// dashboard and parent views.
type DashboardService struct {
	db    *gorm.DB
	redis *redis.Client
}

// NewDashboardService creates a new DashboardService instance. redis may be
// nil, in which case caching is disabled.
func NewDashboardService(db *gorm.DB, redisClient *redis.Client) *DashboardService {
	return &DashboardService{db: db, redis: redisClient}
}

// GetDashboard returns the composed dashboard payload for a user, served
// from cache when fresh.
func (s *DashboardService) GetDashboard(ctx context.Context, userID uuid.UUID) (*DashboardData, error) {
	cacheKey := fmt.Sprintf("dashboard:%s", userID)
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Bytes(); err == nil {
			var data DashboardData
			if err := json.Unmarshal(cached, &data); err == nil {
				return &data, nil
			}
		}
	}

	var checkups []models.WellnessCheckup
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(2).
		Find(&checkups).Error; err != nil {
		return nil, fmt.Errorf("failed to load checkups: %w", err)
	}

	data := &DashboardData{
		Metrics:      placeholderMetrics,
		Achievements: placeholderAchievements,
		WeeklyData:   placeholderWeekly,
	}
	if len(checkups) > 0 {
		data.WellnessScore = checkups[0].Score
		// With a single checkup the previous score falls back to the
		// current one.
		data.PreviousScore = data.WellnessScore
		if len(checkups) > 1 {
			data.PreviousScore = checkups[1].Score
		}
	}

	if s.redis != nil {
		if encoded, err := json.Marshal(data); err == nil {
			if err := s.redis.Set(ctx, cacheKey, encoded, dashboardCacheTTL).Err(); err != nil {
				log.Printf("[DashboardService] Failed to cache dashboard: %v", err)
			}
		}
	}

	return data, nil
}

// GetChildrenData returns each linked child's profile with its latest
// checkup.
func (s *DashboardService) GetChildrenData(ctx context.Context, parentID uuid.UUID) ([]ChildSummary, error) {
	var links []models.ParentChildLink
	if err := s.db.WithContext(ctx).
		Where("parent_id = ?", parentID).
		Find(&links).Error; err != nil {
		return nil, fmt.Errorf("failed to load child links: %w", err)
	}

	children := make([]ChildSummary, 0, len(links))
	for _, link := range links {
		var profile models.Profile
		if err := s.db.WithContext(ctx).
			Where("user_id = ?", link.ChildID).
			First(&profile).Error; err != nil {
			return nil, fmt.Errorf("failed to load child profile: %w", err)
		}

		summary := ChildSummary{Profile: profile}
		var checkup models.WellnessCheckup
		if err := s.db.WithContext(ctx).
			Where("user_id = ?", link.ChildID).
			Order("created_at DESC").
			First(&checkup).Error; err == nil {
			summary.LastCheckup = &checkup
		}
		children = append(children, summary)
	}

	return children, nil
}
