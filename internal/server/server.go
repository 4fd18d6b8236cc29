package server

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/balanceai/wellness-backend/config"
	"github.com/balanceai/wellness-backend/internal/api"
	"github.com/balanceai/wellness-backend/internal/database"
	"github.com/balanceai/wellness-backend/internal/middleware"
	"github.com/balanceai/wellness-backend/internal/router"
	"github.com/balanceai/wellness-backend/internal/service"
)

// Server wires configuration, storage and services into one HTTP server.
type Server struct {
	cfg    *config.Config
	db     *gorm.DB
	engine *gin.Engine
	http   *http.Server
}

// New builds a fully wired server from configuration. Redis and S3 are
// optional at runtime; their absence disables caching, rate limiting and
// image archival but not the core API.
func New(cfg *config.Config) (*Server, error) {
	db, err := database.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.RunMigrations(db, cfg.MigrationsDir); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Redis unavailable, continuing without cache and rate limiting: %v", err)
		redisClient = nil
	}

	var storage *service.StorageService
	if s3Cfg, err := config.NewS3Config(context.Background(), cfg.S3Bucket); err != nil {
		log.Printf("S3 unavailable, continuing without image archival: %v", err)
	} else {
		storage = service.NewStorageService(s3Cfg)
	}

	ai, err := service.NewOpenAIService(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
	}

	authService := service.NewAuthService(db, cfg.JWTSecret)

	handlers := router.Handlers{
		Auth:      api.NewAuthHandler(authService),
		Profile:   api.NewProfileHandler(service.NewProfileService(db)),
		Checkup:   api.NewCheckupHandler(service.NewCheckupService(db)),
		Chat:      api.NewChatHandler(service.NewChatService(db, ai)),
		Guidance:  api.NewGuidanceHandler(service.NewGuidanceService(db)),
		Scanner:   api.NewScannerHandler(service.NewScannerService(db, ai, storage)),
		Voice:     api.NewVoiceHandler(service.NewVoiceService(ai)),
		Workout:   api.NewWorkoutHandler(service.NewWorkoutService(db)),
		Todo:      api.NewTodoHandler(service.NewTodoService(db)),
		Dashboard: api.NewDashboardHandler(service.NewDashboardService(db, redisClient)),
	}

	var aiLimiter *middleware.RateLimiter
	if redisClient != nil {
		aiLimiter = middleware.NewAIRequestRateLimiter(redisClient)
	}

	engine := router.SetupRouter(handlers, authService, aiLimiter)

	return &Server{
		cfg:    cfg,
		db:     db,
		engine: engine,
	}, nil
}

// Start runs the HTTP server until it fails or is shut down.
func (s *Server) Start() error {
	s.http = &http.Server{
		Addr:    fmt.Sprintf("%s:%s", s.cfg.ServerHost, s.cfg.ServerPort),
		Handler: s.engine,
	}

	log.Printf("Listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http != nil {
		return s.http.Shutdown(ctx)
	}
	return nil
}
