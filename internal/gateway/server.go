// ABOUTME: Reference answering and directory service for the radar chat client
// ABOUTME: gin engine serving /institutions, /states, /chat, /healthz and /metrics
package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/harper/radar-oficial/internal/logging"
)

// Config holds gateway settings
type Config struct {
	Port           string
	Production     bool
	AllowedOrigins []string
	RateLimit      float64 // requests per second per client
	RateBurst      int
	Agent          AgentSettings
}

// Server is the gateway HTTP server
type Server struct {
	catalog    *Catalog
	agents     *AgentPool
	metrics    *Metrics
	engine     *gin.Engine
	httpServer *http.Server
	logger     *log.Logger
	startTime  time.Time
}

// Option customizes a Server
type Option func(*Server)

// WithAgentFactory replaces how agent clients are built
func WithAgentFactory(factory AgentFactory) Option {
	return func(s *Server) {
		s.agents = NewAgentPool(s.catalog, factory)
	}
}

// NewServer builds the engine and routes
func NewServer(cfg Config, catalog *Catalog, opts ...Option) (*Server, error) {
	if catalog == nil {
		return nil, errors.New("gateway catalog is required")
	}
	metrics, err := NewMetrics()
	if err != nil {
		return nil, err
	}

	if cfg.Production {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = 5
	}
	if cfg.RateBurst < 1 {
		cfg.RateBurst = 10
	}

	s := &Server{
		catalog:   catalog,
		agents:    NewAgentPool(catalog, NewAgentFactory(cfg.Agent)),
		metrics:   metrics,
		engine:    gin.New(),
		logger:    logging.Component("gateway"),
		startTime: time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.engine.Use(gin.Recovery())
	s.engine.Use(observeMiddleware(metrics, s.logger))
	s.engine.Use(corsMiddleware(cfg.Production, cfg.AllowedOrigins))
	s.registerRoutes(newRateLimiter(cfg.RateLimit, cfg.RateBurst))

	port := cfg.Port
	if port == "" {
		port = "8080"
	}
	s.httpServer = &http.Server{
		Addr:              ":" + port,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

func (s *Server) registerRoutes(limiter *rateLimiter) {
	s.engine.GET("/healthz", s.handleHealth)
	s.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{})))

	api := s.engine.Group("/")
	api.Use(rateLimitMiddleware(limiter, s.metrics))
	api.GET("/institutions", s.handleInstitutions)
	api.GET("/states", s.handleStates)
	api.POST("/chat", s.handleChat)
}

// Handler exposes the engine for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start listens until Shutdown is called
func (s *Server) Start() error {
	s.logger.Info("gateway listening", "addr", s.httpServer.Addr, "states", s.catalog.States())
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("gateway server: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server within 10 seconds
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("gateway shutdown initiated")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}
