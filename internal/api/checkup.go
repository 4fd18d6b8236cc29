package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/balanceai/wellness-backend/internal/service"
)

// CheckupHandler handles wellness questionnaire submissions.
type CheckupHandler struct {
	checkups *service.CheckupService
}

// NewCheckupHandler creates a new CheckupHandler instance
func NewCheckupHandler(checkups *service.CheckupService) *CheckupHandler {
	return &CheckupHandler{checkups: checkups}
}

// Submit stores one completed questionnaire and returns the derived result.
func (h *CheckupHandler) Submit(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	var req CheckupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.checkups.Submit(c.Request.Context(), userID, req.Answers)
	if err != nil {
		if errors.Is(err, service.ErrIncompleteCheckup) || errors.Is(err, service.ErrInvalidAnswer) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, result)
}

// List returns recent checkups, newest first.
func (h *CheckupHandler) List(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	checkups, err := h.checkups.List(c.Request.Context(), userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"checkups": checkups})
}
