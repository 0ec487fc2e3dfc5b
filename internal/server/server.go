package server

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/nutriday/backend/config"
	"github.com/nutriday/backend/internal/api"
	"github.com/nutriday/backend/internal/database"
	"github.com/nutriday/backend/internal/middleware"
	"github.com/nutriday/backend/internal/router"
	"github.com/nutriday/backend/internal/service"
)

// Server wires the services together and owns the HTTP listener.
type Server struct {
	cfg  *config.Config
	http *http.Server
}

// New builds a fully wired server from configuration: database, Redis,
// S3 and the AI upstream, then the handlers and router on top.
func New(cfg *config.Config) (*Server, error) {
	db, err := database.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	s3Config, err := config.NewS3Config(context.Background(), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to configure S3: %w", err)
	}

	aiService, err := service.NewAIService(cfg.GeminiAPIKey, cfg.GeminiAPIURL)
	if err != nil {
		return nil, fmt.Errorf("failed to configure AI service: %w", err)
	}

	authService := service.NewAuthService(db, cfg.JWTSecret)
	recordService := service.NewRecordService(redisClient)
	photoService := service.NewPhotoService(s3Config)

	engine := router.SetupRouter(
		api.NewAuthHandler(authService),
		api.NewRecordHandler(recordService),
		api.NewAIHandler(aiService, recordService),
		api.NewPhotoHandler(photoService),
		authService,
		middleware.NewAIQueryRateLimiter(redisClient),
	)

	return &Server{
		cfg: cfg,
		http: &http.Server{
			Addr:    ":" + cfg.ServerPort,
			Handler: engine,
		},
	}, nil
}

// Start runs the HTTP server until it is shut down.
func (s *Server) Start() error {
	log.Printf("Listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
