package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/balanceai/wellness-backend/internal/models"
)

// userIDFromContext pulls the authenticated user ID set by the auth
// middleware. A missing or malformed value aborts with 401.
func userIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return uuid.Nil, false
	}
	userID, ok := value.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return uuid.Nil, false
	}
	return userID, true
}

// RegisterRequest is the signup payload.
type RegisterRequest struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	DisplayName  string `json:"display_name" binding:"required"`
	Age          int    `json:"age"`
	FitnessLevel string `json:"fitness_level"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LinkChildRequest connects a child account to the calling parent.
type LinkChildRequest struct {
	ChildEmail string `json:"child_email" binding:"required,email"`
}

// ChatRequest is one inbound assistant message.
type ChatRequest struct {
	Message     string `json:"message" binding:"required"`
	MessageType string `json:"message_type"`
}

// CheckupRequest carries the questionnaire answers keyed by question number.
type CheckupRequest struct {
	Answers map[int]int `json:"answers" binding:"required"`
}

// ScanRequest is one image-analysis invocation.
type ScanRequest struct {
	Image    string `json:"image" binding:"required"`
	ScanType string `json:"scan_type" binding:"required"`
}

// VoiceRequest selects one of the two speech conversion modes.
type VoiceRequest struct {
	Action string `json:"action" binding:"required"`
	Text   string `json:"text"`
	Audio  string `json:"audio"`
	Voice  string `json:"voice"`
}

// ToggleTaskRequest flips one guidance task's completion state.
type ToggleTaskRequest struct {
	TaskID string `json:"task_id" binding:"required"`
}

// WorkoutPlanRequest creates or updates a workout template.
type WorkoutPlanRequest struct {
	Title           string            `json:"title" binding:"required"`
	Description     string            `json:"description"`
	Difficulty      string            `json:"difficulty"`
	DurationMinutes int               `json:"duration_minutes"`
	Exercises       []models.Exercise `json:"exercises"`
	Tags            []string          `json:"tags"`
}

// StartSessionRequest opens a workout session, optionally against a plan.
type StartSessionRequest struct {
	WorkoutPlanID *uuid.UUID `json:"workout_plan_id"`
}

// CompleteSessionRequest closes an open session with its outcome.
type CompleteSessionRequest struct {
	Rating         int    `json:"rating" binding:"required"`
	CaloriesBurned int    `json:"calories_burned"`
	Notes          string `json:"notes"`
}

// TodoRequest creates or updates a task-list item.
type TodoRequest struct {
	Task          string     `json:"task" binding:"required"`
	Description   string     `json:"description"`
	Category      string     `json:"category"`
	Priority      int        `json:"priority"`
	DueDate       *time.Time `json:"due_date"`
	DayOfWeek     *int       `json:"day_of_week"`
	WorkoutType   string     `json:"workout_type"`
	ProteinAmount float64    `json:"protein_amount"`
	Completed     bool       `json:"completed"`
}

// UpdateProfileRequest carries the user-editable profile fields.
type UpdateProfileRequest struct {
	DisplayName  string          `json:"display_name" binding:"required"`
	Age          int             `json:"age"`
	FitnessLevel string          `json:"fitness_level"`
	Preferences  models.JSONBMap `json:"preferences"`
}
