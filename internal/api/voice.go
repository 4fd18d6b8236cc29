package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/balanceai/wellness-backend/internal/service"
)

// VoiceHandler handles speech conversion requests.
type VoiceHandler struct {
	voice *service.VoiceService
}

// NewVoiceHandler creates a new VoiceHandler instance
func NewVoiceHandler(voice *service.VoiceService) *VoiceHandler {
	return &VoiceHandler{voice: voice}
}

// Convert dispatches to transcription or synthesis based on the action tag.
func (h *VoiceHandler) Convert(c *gin.Context) {
	if _, ok := userIDFromContext(c); !ok {
		return
	}

	var req VoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	switch req.Action {
	case service.ActionSpeechToText:
		text, err := h.voice.Transcribe(c.Request.Context(), req.Audio)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, service.ErrMissingAudio) {
				status = http.StatusBadRequest
			}
			c.JSON(status, gin.H{"error": err.Error(), "success": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{"text": text, "success": true})

	case service.ActionTextToSpeech:
		audio, err := h.voice.Synthesize(c.Request.Context(), req.Text, req.Voice)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, service.ErrMissingText) {
				status = http.StatusBadRequest
			}
			c.JSON(status, gin.H{"error": err.Error(), "success": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{"audioContent": audio, "success": true})

	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": service.ErrInvalidAction.Error(), "success": false})
	}
}
