package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/balanceai/wellness-backend/internal/service"
)

// GuidanceHandler serves the per-day guidance records.
type GuidanceHandler struct {
	guidance *service.GuidanceService
}

// NewGuidanceHandler creates a new GuidanceHandler instance
func NewGuidanceHandler(guidance *service.GuidanceService) *GuidanceHandler {
	return &GuidanceHandler{guidance: guidance}
}

// Today returns the guidance record for the current calendar date.
func (h *GuidanceHandler) Today(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	guidance, err := h.guidance.Today(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrGuidanceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, guidance)
}

// ToggleTask flips one task's completion state on today's guidance.
func (h *GuidanceHandler) ToggleTask(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	var req ToggleTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	guidance, err := h.guidance.ToggleTask(c.Request.Context(), userID, req.TaskID)
	if err != nil {
		if errors.Is(err, service.ErrGuidanceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, guidance)
}
