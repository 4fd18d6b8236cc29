package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/balanceai/wellness-backend/internal/service"
)

// ChatHandler handles assistant conversation requests.
type ChatHandler struct {
	chat *service.ChatService
}

// NewChatHandler creates a new ChatHandler instance
func NewChatHandler(chat *service.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// SendMessage runs the assistant pipeline for one inbound message.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	reply, err := h.chat.SendMessage(c.Request.Context(), userID, req.Message, req.MessageType)
	if err != nil {
		if errors.Is(err, service.ErrMissingMessage) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": reply, "success": true})
}

// History returns recent chat messages, newest first.
func (h *ChatHandler) History(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	messages, err := h.chat.History(c.Request.Context(), userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}
