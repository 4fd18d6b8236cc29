package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/balanceai/wellness-backend/internal/models"
	"github.com/balanceai/wellness-backend/internal/service"
)

// TodoHandler handles task-list requests.
type TodoHandler struct {
	todos *service.TodoService
}

// NewTodoHandler creates a new TodoHandler instance
func NewTodoHandler(todos *service.TodoService) *TodoHandler {
	return &TodoHandler{todos: todos}
}

// Create stores a new todo item.
func (h *TodoHandler) Create(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	var req TodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item := models.TodoItem{
		UserID:        userID,
		Task:          req.Task,
		Description:   req.Description,
		Category:      req.Category,
		Priority:      req.Priority,
		DueDate:       req.DueDate,
		DayOfWeek:     req.DayOfWeek,
		WorkoutType:   req.WorkoutType,
		ProteinAmount: req.ProteinAmount,
	}
	if err := h.todos.Create(c.Request.Context(), &item); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, item)
}

// List returns the user's todo items, incomplete first.
func (h *TodoHandler) List(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	items, err := h.todos.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"todos": items})
}

// Update saves changes to an item owned by the user.
func (h *TodoHandler) Update(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid todo ID"})
		return
	}

	var req TodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item := models.TodoItem{
		Task:          req.Task,
		Description:   req.Description,
		Category:      req.Category,
		Priority:      req.Priority,
		DueDate:       req.DueDate,
		DayOfWeek:     req.DayOfWeek,
		WorkoutType:   req.WorkoutType,
		ProteinAmount: req.ProteinAmount,
		Completed:     req.Completed,
	}
	item.ID = itemID

	if err := h.todos.Update(c.Request.Context(), userID, &item); err != nil {
		if errors.Is(err, service.ErrTodoNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, item)
}

// ToggleComplete flips the completion flag of an item.
func (h *TodoHandler) ToggleComplete(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid todo ID"})
		return
	}

	item, err := h.todos.ToggleComplete(c.Request.Context(), userID, itemID)
	if err != nil {
		if errors.Is(err, service.ErrTodoNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, item)
}

// Delete removes an item owned by the user.
func (h *TodoHandler) Delete(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid todo ID"})
		return
	}

	if err := h.todos.Delete(c.Request.Context(), userID, itemID); err != nil {
		if errors.Is(err, service.ErrTodoNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "todo item deleted"})
}
