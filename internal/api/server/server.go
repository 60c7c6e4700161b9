package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jfbenitezz/Tutorly-Backend/internal/api/middleware"
	"github.com/jfbenitezz/Tutorly-Backend/internal/api/v1/routes"
	"github.com/jfbenitezz/Tutorly-Backend/internal/config"
)

// Server wraps the HTTP server and its router.
type Server struct {
	router *gin.Engine
	server *http.Server
	logger *slog.Logger
}

// New assembles the router with the full middleware chain and mounts the v1
// API plus the health and metrics endpoints.
func New(cfg *config.Config, h routes.Handlers, logger *slog.Logger) *Server {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogging(logger))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	routes.Register(router, h)

	return &Server{
		router: router,
		server: &http.Server{
			Addr:         cfg.Addr(),
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
		logger: logger,
	}
}

// Router exposes the underlying engine, used by tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start blocks serving requests until the server is shut down.
func (s *Server) Start() error {
	s.logger.Info("server listening", slog.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("server shutting down")
	return s.server.Shutdown(ctx)
}
