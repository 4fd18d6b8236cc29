package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/balanceai/wellness-backend/internal/service"
)

// ScannerHandler handles image-analysis requests.
type ScannerHandler struct {
	scanner *service.ScannerService
}

// NewScannerHandler creates a new ScannerHandler instance
func NewScannerHandler(scanner *service.ScannerService) *ScannerHandler {
	return &ScannerHandler{scanner: scanner}
}

// Analyze classifies an uploaded image under one of the fixed scan modes.
func (h *ScannerHandler) Analyze(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	var req ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	analysis, err := h.scanner.Analyze(c.Request.Context(), userID, req.Image, req.ScanType)
	if err != nil {
		if errors.Is(err, service.ErrMissingImage) || errors.Is(err, service.ErrInvalidScanType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, analysis)
}

// History returns recent scan results, newest first.
func (h *ScannerHandler) History(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	scans, err := h.scanner.History(c.Request.Context(), userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"scans": scans})
}
