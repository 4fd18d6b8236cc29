package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/balanceai/wellness-backend/internal/models"
)

var ErrMissingMessage = errors.New("message is required")

const chatSystemPromptTemplate = `You are BalanceAI, a compassionate wellness assistant and personal trainer. You help users with:

1. **Wellness Guidance**: Daily wellness tips, stress management, mental health support
2. **Workout Planning**: Create personalized workout plans based on fitness level and goals
3. **Progress Tracking**: Analyze wellness checkups and workout performance
4. **Daily Goals**: Set achievable daily wellness and fitness goals
5. **Motivation**: Provide encouraging, supportive responses

User Context:
- Profile: %s
- Recent Wellness Scores: %s
- Recent Workouts: %s
- Today's Guidance: %s

Guidelines:
- Be warm, encouraging, and professional
- Provide actionable, specific advice
- Consider user's fitness level and wellness history
- Keep responses concise but helpful (max 200 words)
- If asked about workout plans, suggest specific exercises with sets/reps
- For wellness concerns, provide practical coping strategies
- Always encourage progress, no matter how small`

const guidanceSystemPrompt = "You are a wellness expert. Respond only with valid JSON."

const guidancePromptTemplate = `Based on this user's wellness data, create personalized daily guidance:

User Context: %s

Generate a JSON response with:
{
  "morning_routine": {
    "meditation_minutes": number,
    "affirmation": "string",
    "breathing_exercise": "string"
  },
  "wellness_tips": [
    {"category": "string", "tip": "string", "priority": "high|medium|low"}
  ],
  "workout_suggestion": "detailed workout plan with exercises, sets, reps",
  "nutrition_advice": "specific nutrition guidance",
  "mood_check": {
    "prompt": "How are you feeling today?",
    "suggested_activities": ["activity1", "activity2"]
  }
}

Make it specific to their fitness level and recent wellness scores.`

// userContext bundles the stored history the assistant prompt is built from.
type userContext struct {
	Profile        *models.Profile          `json:"profile"`
	RecentCheckups []models.WellnessCheckup `json:"recent_checkups"`
	RecentWorkouts []models.WorkoutSession  `json:"recent_workouts"`
	TodaysGuidance *models.DailyGuidance    `json:"todays_guidance"`
}

// ChatService runs the assistant pipeline: gather context, persist the
// inbound turn, call the completion API, persist the reply and conditionally
// generate the day's guidance record.
type ChatService struct {
	db *gorm.DB
	ai *OpenAIService
}

// NewChatService creates a new ChatService instance
func NewChatService(db *gorm.DB, ai *OpenAIService) *ChatService {
	return &ChatService{db: db, ai: ai}
}

// SendMessage handles one inbound user message and returns the assistant's
// reply text.
func (s *ChatService) SendMessage(ctx context.Context, userID uuid.UUID, message, messageType string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", ErrMissingMessage
	}
	if messageType == "" {
		messageType = "text"
	}

	uc := s.gatherContext(ctx, userID)
	systemPrompt := buildSystemPrompt(uc)

	// The inbound turn is stored before the completion call so the message
	// survives an upstream failure.
	inbound := models.ChatMessage{
		UserID:      userID,
		Message:     message,
		Sender:      models.SenderUser,
		MessageType: messageType,
		Metadata:    models.JSONBMap{"timestamp": time.Now().UTC().Format(time.RFC3339)},
	}
	if err := s.db.WithContext(ctx).Create(&inbound).Error; err != nil {
		return "", fmt.Errorf("failed to store user message: %w", err)
	}

	result, err := s.ai.ChatCompletion(ctx, []Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: message},
	}, 300, 0.7)
	if err != nil {
		return "", fmt.Errorf("failed to get AI response: %w", err)
	}

	outbound := models.ChatMessage{
		UserID:      userID,
		Message:     result.Content,
		Sender:      models.SenderAI,
		MessageType: "text",
		Metadata: models.JSONBMap{
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
			"model":       s.ai.Model(),
			"tokens_used": result.TokensUsed,
		},
	}
	if err := s.db.WithContext(ctx).Create(&outbound).Error; err != nil {
		return "", fmt.Errorf("failed to store AI message: %w", err)
	}

	// Guidance generation is best-effort: a failure here is logged and the
	// chat reply still returns successfully.
	if uc.TodaysGuidance == nil && mentionsDailyGoals(message) {
		if err := s.generateDailyGuidance(ctx, userID, uc); err != nil {
			log.Printf("[ChatService] Error generating daily guidance: %v", err)
		}
	}

	return result.Content, nil
}

// History returns the most recent chat messages for a user, newest first.
func (s *ChatService) History(ctx context.Context, userID uuid.UUID, limit int) ([]models.ChatMessage, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var messages []models.ChatMessage
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load chat history: %w", err)
	}
	return messages, nil
}

// gatherContext reads the user's profile, recent checkups and workouts and
// today's guidance. All reads are independent; missing rows are tolerated.
func (s *ChatService) gatherContext(ctx context.Context, userID uuid.UUID) *userContext {
	uc := &userContext{}

	var profile models.Profile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err == nil {
		uc.Profile = &profile
	}

	s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(3).
		Find(&uc.RecentCheckups)

	s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(5).
		Find(&uc.RecentWorkouts)

	var guidance models.DailyGuidance
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, todayDate()).
		First(&guidance).Error; err == nil {
		uc.TodaysGuidance = &guidance
	}

	return uc
}

func buildSystemPrompt(uc *userContext) string {
	profileJSON := "{}"
	if uc.Profile != nil {
		if data, err := json.Marshal(uc.Profile); err == nil {
			profileJSON = string(data)
		}
	}

	scores := make([]string, 0, len(uc.RecentCheckups))
	for _, c := range uc.RecentCheckups {
		scores = append(scores, fmt.Sprintf("Score: %d, Risk: %s", c.Score, c.RiskLevel))
	}

	workouts := make([]string, 0, len(uc.RecentWorkouts))
	for _, w := range uc.RecentWorkouts {
		workouts = append(workouts, fmt.Sprintf("%dmin, Rating: %d/5", w.DurationMinutes, w.Rating))
	}

	guidanceStatus := "Not yet provided"
	if uc.TodaysGuidance != nil {
		guidanceStatus = "Already provided"
	}

	return fmt.Sprintf(chatSystemPromptTemplate,
		profileJSON,
		strings.Join(scores, "; "),
		strings.Join(workouts, "; "),
		guidanceStatus,
	)
}

// mentionsDailyGoals reports whether the message should trigger the
// secondary guidance-generation pass.
func mentionsDailyGoals(message string) bool {
	lower := strings.ToLower(message)
	return strings.Contains(lower, "daily") || strings.Contains(lower, "goals")
}

func (s *ChatService) generateDailyGuidance(ctx context.Context, userID uuid.UUID, uc *userContext) error {
	contextJSON, err := json.Marshal(uc)
	if err != nil {
		return fmt.Errorf("failed to serialize user context: %w", err)
	}

	result, err := s.ai.ChatCompletionJSON(ctx, []Message{
		{Role: "system", Content: guidanceSystemPrompt},
		{Role: "user", Content: fmt.Sprintf(guidancePromptTemplate, string(contextJSON))},
	}, 500, 0.7)
	if err != nil {
		return err
	}

	var parsed struct {
		MorningRoutine    models.JSONBMap `json:"morning_routine"`
		WellnessTips      json.RawMessage `json:"wellness_tips"`
		WorkoutSuggestion string          `json:"workout_suggestion"`
		NutritionAdvice   string          `json:"nutrition_advice"`
		MoodCheck         models.JSONBMap `json:"mood_check"`
	}
	if err := json.Unmarshal([]byte(result.Content), &parsed); err != nil {
		return fmt.Errorf("failed to parse guidance JSON: %w", err)
	}

	tips := models.JSONBMap{}
	if len(parsed.WellnessTips) > 0 {
		var tipList []interface{}
		if err := json.Unmarshal(parsed.WellnessTips, &tipList); err == nil {
			tips["tips"] = tipList
		}
	}

	guidance := models.DailyGuidance{
		UserID:            userID,
		Date:              todayDate(),
		MorningRoutine:    parsed.MorningRoutine,
		WellnessTips:      tips,
		WorkoutSuggestion: parsed.WorkoutSuggestion,
		NutritionAdvice:   parsed.NutritionAdvice,
		MoodCheck:         parsed.MoodCheck,
		CompletedTasks:    models.JSONBStringArray{},
	}

	// The unique (user_id, date) index plus DO NOTHING keeps concurrent
	// requests from creating two rows for the same day.
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
			DoNothing: true,
		}).
		Create(&guidance).Error
}

func todayDate() string {
	return time.Now().UTC().Format("2006-01-02")
}
