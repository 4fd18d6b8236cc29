package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/balanceai/wellness-backend/internal/models"
	"github.com/balanceai/wellness-backend/internal/service"
)

// WorkoutHandler handles workout plan and session requests.
type WorkoutHandler struct {
	workouts *service.WorkoutService
}

// NewWorkoutHandler creates a new WorkoutHandler instance
func NewWorkoutHandler(workouts *service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workouts: workouts}
}

// CreatePlan stores a new workout template.
func (h *WorkoutHandler) CreatePlan(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	var req WorkoutPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plan := models.WorkoutPlan{
		UserID:          userID,
		Title:           req.Title,
		Description:     req.Description,
		Difficulty:      req.Difficulty,
		DurationMinutes: req.DurationMinutes,
		Exercises:       models.ExerciseList(req.Exercises),
		Tags:            models.JSONBStringArray(req.Tags),
		IsActive:        true,
	}
	if err := h.workouts.CreatePlan(c.Request.Context(), &plan); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, plan)
}

// ListPlans returns the user's active workout plans.
func (h *WorkoutHandler) ListPlans(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	plans, err := h.workouts.ListPlans(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"plans": plans})
}

// UpdatePlan saves changes to a plan owned by the user.
func (h *WorkoutHandler) UpdatePlan(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	planID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid plan ID"})
		return
	}

	var req WorkoutPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plan := models.WorkoutPlan{
		Title:           req.Title,
		Description:     req.Description,
		Difficulty:      req.Difficulty,
		DurationMinutes: req.DurationMinutes,
		Exercises:       models.ExerciseList(req.Exercises),
		Tags:            models.JSONBStringArray(req.Tags),
	}
	plan.ID = planID

	if err := h.workouts.UpdatePlan(c.Request.Context(), userID, &plan); err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, plan)
}

// DeletePlan soft-deletes a plan owned by the user.
func (h *WorkoutHandler) DeletePlan(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	planID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid plan ID"})
		return
	}

	if err := h.workouts.DeletePlan(c.Request.Context(), userID, planID); err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "workout plan deleted"})
}

// StartSession opens a new workout session.
func (h *WorkoutHandler) StartSession(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	var req StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.workouts.StartSession(c.Request.Context(), userID, req.WorkoutPlanID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionAlreadyOpen):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrPlanNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, session)
}

// CompleteSession closes an open session with its outcome details.
func (h *WorkoutHandler) CompleteSession(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session ID"})
		return
	}

	var req CompleteSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.workouts.CompleteSession(c.Request.Context(), userID, sessionID, req.Rating, req.CaloriesBurned, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRating):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrSessionCompleted):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, session)
}

// ListSessions returns recent workout sessions, newest first.
func (h *WorkoutHandler) ListSessions(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	sessions, err := h.workouts.ListSessions(c.Request.Context(), userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}
