package router

import (
	"github.com/gin-gonic/gin"

	"github.com/balanceai/wellness-backend/internal/api"
	"github.com/balanceai/wellness-backend/internal/middleware"
	"github.com/balanceai/wellness-backend/internal/service"
)

// Handlers bundles the API handlers the router mounts.
type Handlers struct {
	Auth      *api.AuthHandler
	Profile   *api.ProfileHandler
	Checkup   *api.CheckupHandler
	Chat      *api.ChatHandler
	Guidance  *api.GuidanceHandler
	Scanner   *api.ScannerHandler
	Voice     *api.VoiceHandler
	Workout   *api.WorkoutHandler
	Todo      *api.TodoHandler
	Dashboard *api.DashboardHandler
}

// SetupRouter configures the application routes. aiLimiter may be nil, in
// which case the AI-backed endpoints run unthrottled.
func SetupRouter(h Handlers, authService service.IAuthService, aiLimiter *middleware.RateLimiter) *gin.Engine {
	router := gin.Default()

	// CORS middleware
	router.Use(middleware.CORS())

	// API v1 routes
	v1 := router.Group("/api/v1")

	// Auth routes
	auth := v1.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
	}

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authService))
	{
		protected.POST("/auth/link-child", h.Auth.LinkChild)

		// Profile routes
		profile := protected.Group("/profile")
		{
			profile.GET("", h.Profile.GetProfile)
			profile.PUT("", h.Profile.UpdateProfile)
		}

		// Checkup routes
		checkups := protected.Group("/checkups")
		{
			checkups.POST("", h.Checkup.Submit)
			checkups.GET("", h.Checkup.List)
		}

		// Guidance routes
		guidance := protected.Group("/guidance")
		{
			guidance.GET("/today", h.Guidance.Today)
			guidance.POST("/toggle-task", h.Guidance.ToggleTask)
		}

		// Workout routes
		workouts := protected.Group("/workouts")
		{
			workouts.POST("/plans", h.Workout.CreatePlan)
			workouts.GET("/plans", h.Workout.ListPlans)
			workouts.PUT("/plans/:id", h.Workout.UpdatePlan)
			workouts.DELETE("/plans/:id", h.Workout.DeletePlan)
			workouts.POST("/sessions", h.Workout.StartSession)
			workouts.POST("/sessions/:id/complete", h.Workout.CompleteSession)
			workouts.GET("/sessions", h.Workout.ListSessions)
		}

		// Todo routes
		todos := protected.Group("/todos")
		{
			todos.POST("", h.Todo.Create)
			todos.GET("", h.Todo.List)
			todos.PUT("/:id", h.Todo.Update)
			todos.POST("/:id/toggle", h.Todo.ToggleComplete)
			todos.DELETE("/:id", h.Todo.Delete)
		}

		// Dashboard routes
		dashboard := protected.Group("/dashboard")
		{
			dashboard.GET("", h.Dashboard.GetDashboard)
			dashboard.GET("/children", h.Dashboard.GetChildren)
		}

		// History reads stay outside the AI limiter
		protected.GET("/chat/history", h.Chat.History)
		protected.GET("/scanner/history", h.Scanner.History)

		// AI-backed routes, each costing an upstream completion call
		ai := protected.Group("")
		if aiLimiter != nil {
			ai.Use(aiLimiter.RateLimitMiddleware())
		}
		{
			ai.POST("/chat", h.Chat.SendMessage)
			ai.POST("/scanner/analyze", h.Scanner.Analyze)
			ai.POST("/voice", h.Voice.Convert)
		}
	}

	return router
}
