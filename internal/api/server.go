// Package api exposes the HTTP surface of the mileage backend.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/hms-dev/mileage-backend/internal/api/handlers"
	"github.com/hms-dev/mileage-backend/internal/api/middleware"
	"github.com/hms-dev/mileage-backend/internal/application/service"
	"github.com/hms-dev/mileage-backend/internal/infrastructure/storage"
)

// Config holds API server configuration.
type Config struct {
	Port           int
	AllowedOrigins []string
	Username       string
	Password       string
}

// DefaultConfig returns sensible defaults for local development.
func DefaultConfig() Config {
	return Config{
		Port:           3004,
		AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
		Username:       "highland",
		Password:       "changeme",
	}
}

// Server is the HTTP API server.
type Server struct {
	config      Config
	engine      *gin.Engine
	httpServer  *http.Server
	logger      *slog.Logger
	repo        storage.Repository
	syncService *service.SyncService
	sessions    *middleware.SessionStore
}

// NewServer creates a new API server. If syncService is nil, the sync
// endpoints are not registered.
func NewServer(cfg Config, repo storage.Repository, syncService *service.SyncService, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		config:      cfg,
		engine:      gin.New(),
		logger:      logger,
		repo:        repo,
		syncService: syncService,
		sessions:    middleware.NewSessionStore(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.engine.Use(gin.Recovery())
	s.engine.Use(middleware.Logging(s.logger))

	if len(s.config.AllowedOrigins) > 0 {
		s.engine.Use(cors.New(cors.Config{
			AllowOrigins:     s.config.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
}

func (s *Server) setupRoutes() {
	healthHandler := handlers.NewHealthHandler()
	s.engine.GET("/health", healthHandler.Get)

	authHandler := handlers.NewAuthHandler(s.sessions, s.config.Username, s.config.Password)
	s.engine.POST("/api/login", authHandler.Login)
	s.engine.POST("/api/logout", authHandler.Logout)
	s.engine.GET("/api/check-auth", authHandler.Check)

	// Everything else under /api requires a session.
	api := s.engine.Group("/api")
	api.Use(middleware.RequireSession(s.sessions))

	jobsHandler := handlers.NewJobsHandler(s.repo)
	api.GET("/jobs", jobsHandler.List)
	api.POST("/jobs", jobsHandler.Create)
	api.PATCH("/jobs/:id", jobsHandler.Update)
	api.DELETE("/jobs/:id", jobsHandler.Delete)

	routesHandler := handlers.NewRoutesHandler(s.repo)
	api.GET("/saved-routes", routesHandler.List)
	api.POST("/saved-routes", routesHandler.Upsert)
	api.DELETE("/saved-routes/:key", routesHandler.Delete)

	pendingHandler := handlers.NewPendingHandler(s.repo)
	api.GET("/pending", pendingHandler.List)
	api.PATCH("/pending/:id", pendingHandler.Update)
	api.POST("/pending/:id/approve", pendingHandler.Approve)
	api.POST("/pending/:id/dismiss", pendingHandler.Dismiss)
	api.POST("/pending/approve-all", pendingHandler.ApproveAll)
	api.POST("/pending/dismiss-all", pendingHandler.DismissAll)

	statsHandler := handlers.NewStatsHandler(s.repo)
	api.GET("/stats", statsHandler.Get)

	if s.syncService != nil {
		syncHandler := handlers.NewSyncHandler(s.syncService)
		api.POST("/sync", syncHandler.Run)
		api.GET("/sync/status", syncHandler.Status)
	}
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("starting API server", "addr", addr)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down API server")
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// Router returns the underlying engine for tests.
func (s *Server) Router() http.Handler {
	return s.engine
}

// Sessions returns the session store, exposed for tests.
func (s *Server) Sessions() *middleware.SessionStore {
	return s.sessions
}
