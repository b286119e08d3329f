package server

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/arcks/internal/api/middleware"
	"github.com/GriffinCanCode/arcks/internal/infrastructure/config"
	"github.com/GriffinCanCode/arcks/internal/infrastructure/logging"
	"github.com/GriffinCanCode/arcks/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/arcks/internal/providers/gemini"
	"github.com/GriffinCanCode/arcks/internal/relay"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router  *gin.Engine
	http    *http.Server
	relay   *relay.Relay
	logger  *logging.Logger
	config  *config.Config
	metrics *monitoring.Metrics
}

// NewServer creates a new relay server. A nil generator means the Gemini
// client configured by cfg.Upstream; a nil logger is derived from cfg.Logging.
func NewServer(cfg *config.Config, logger *logging.Logger, gen relay.Generator) *Server {
	if logger == nil {
		logger = logging.NewFromLevel(cfg.Logging.Level, cfg.Logging.Development)
	}

	logger.Info("Initializing relay",
		zap.String("port", cfg.Server.Port),
		zap.String("path", cfg.Relay.Path),
		zap.Strings("allowed_origins", cfg.Relay.AllowedOrigins),
		zap.String("model", cfg.Upstream.Model),
	)

	metrics := monitoring.NewMetrics()

	if gen == nil {
		if cfg.Upstream.APIKey == "" {
			logger.Warn("GEMINI_API_KEY is not set; every summary request will fail")
		}
		gen = gemini.New(gemini.Config{
			APIKey:          cfg.Upstream.APIKey,
			Model:           cfg.Upstream.Model,
			BaseURL:         cfg.Upstream.BaseURL,
			Temperature:     cfg.Upstream.Temperature,
			MaxOutputTokens: cfg.Upstream.MaxOutputTokens,
			Timeout:         cfg.Upstream.Timeout,
		})
	}
	rl := relay.New(gen, logger, metrics)
	handler := relay.NewHandler(rl, cfg.Relay.MaxBodyBytes, logger, metrics)

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logging(logger))
	router.Use(monitoring.Middleware(metrics))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"breaker": rl.Breaker().State().String(),
		})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Origin check first so refused origins never see CORS headers.
	origins := middleware.NewOrigins(cfg.Relay.AllowedOrigins)
	group := router.Group(cfg.Relay.Path,
		middleware.OriginGuard(origins, metrics.RecordRejection),
		middleware.CORS(middleware.DefaultCORSConfig(origins)),
	)
	group.Any("", handler.Handle)

	logger.Info("Relay initialized successfully")

	return &Server{
		router: router,
		http: &http.Server{
			Addr:    net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
			Handler: router,
		},
		relay:   rl,
		logger:  logger,
		config:  cfg,
		metrics: metrics,
	}
}

// Router exposes the HTTP handler, mostly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Metrics returns the server's metrics collector.
func (s *Server) Metrics() *monitoring.Metrics {
	return s.metrics
}

// Run starts the HTTP server and blocks until it stops.
func (s *Server) Run() error {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	err := s.http.Shutdown(ctx)
	if err != nil {
		s.logger.Error("Graceful shutdown failed", zap.Error(err))
	}

	// Sync logger before exit
	_ = s.logger.Sync()
	return err
}
