package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/klauspost/compress/gzhttp"
	"go.uber.org/zap"

	handlers "github.com/GriffinCanCode/numerics/internal/api/http"
	"github.com/GriffinCanCode/numerics/internal/api/middleware"
	"github.com/GriffinCanCode/numerics/internal/api/ws"
	"github.com/GriffinCanCode/numerics/internal/infrastructure/config"
	"github.com/GriffinCanCode/numerics/internal/infrastructure/logging"
	"github.com/GriffinCanCode/numerics/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/numerics/internal/infrastructure/tracing"
	mathProvider "github.com/GriffinCanCode/numerics/internal/providers/math"
	"github.com/GriffinCanCode/numerics/internal/service"
	"github.com/GriffinCanCode/numerics/pkg/numeric"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router     *gin.Engine
	handler    http.Handler
	httpServer *http.Server
	registry   *service.Registry
	dispatcher *numeric.Dispatcher
	logger     *logging.Logger
	config     *config.Config
	metrics    *monitoring.Metrics
	tracer     *tracing.Tracer
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, logger *logging.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	kind, _ := cfg.Kind()
	policy, _ := cfg.Policy()

	logger.Info("Initializing numerics server",
		zap.String("addr", cfg.Addr()),
		zap.String("kind", kind.String()),
		zap.Uint32("precision", policy.Precision),
		zap.String("rounding", policy.Rounding.String()),
	)

	dispatcher, err := numeric.NewDispatcher(numeric.WithPolicy(policy))
	if err != nil {
		return nil, fmt.Errorf("failed to create dispatcher: %w", err)
	}

	// Initialize metrics first (needed by other components)
	metrics := monitoring.NewMetrics()
	tracer := tracing.New("numerics", logger.Logger)

	registry := service.NewRegistry()
	if err := registry.Register(mathProvider.NewProvider(dispatcher, kind)); err != nil {
		tracer.Close()
		return nil, fmt.Errorf("failed to register math provider: %w", err)
	}
	stats := registry.Stats()
	logger.Info("Registered service providers",
		zap.Any("services", stats["total_services"]),
		zap.Any("tools", stats["total_tools"]),
	)

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(middleware.Logger(logger))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		rl := middleware.DefaultRateLimitConfig()
		rl.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
		rl.Burst = cfg.RateLimit.Burst
		router.Use(middleware.RateLimit(rl))
	}

	// Register routes
	h := handlers.NewHandlers(registry, metrics, tracer, logger, kind)
	h.RegisterRoutes(router)
	router.GET("/stream", ws.NewHandler(h, logger).HandleConnection)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	handler := compress(router)

	logger.Info("Server initialized successfully")

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &Server{
		router:     router,
		handler:    handler,
		httpServer: httpServer,
		registry:   registry,
		dispatcher: dispatcher,
		logger:     logger,
		config:     cfg,
		metrics:    metrics,
		tracer:     tracer,
	}, nil
}

// Router exposes the served handler for in-process tests
func (s *Server) Router() http.Handler {
	return s.handler
}

// compress gzips responses for clients that accept it. Upgrade requests
// bypass the wrapper so the stream can hijack the connection.
func compress(router http.Handler) http.Handler {
	gz := gzhttp.GzipHandler(router)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if websocket.IsWebSocketUpgrade(r) {
			router.ServeHTTP(w, r)
			return
		}
		gz.ServeHTTP(w, r)
	})
}

// Run serves HTTP until Shutdown is called
func (s *Server) Run() error {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests, then flushes spans and logs
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")

	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		s.logger.Error("Failed to shut down HTTP server", zap.Error(err))
	}
	s.tracer.Close()

	// Sync logger before exit
	_ = s.logger.Sync()

	return err
}
