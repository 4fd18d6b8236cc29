package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/balanceai/wellness-backend/internal/service"
)

// DashboardHandler serves the composed dashboard and parent views.
type DashboardHandler struct {
	dashboard *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler instance
func NewDashboardHandler(dashboard *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// GetDashboard returns the dashboard payload for the calling user.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	data, err := h.dashboard.GetDashboard(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, data)
}

// GetChildren returns each linked child's profile with its latest checkup.
func (h *DashboardHandler) GetChildren(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	children, err := h.dashboard.GetChildrenData(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"children": children})
}
