package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"cosmossdk.io/log"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/handlers"
	"github.com/rs/cors"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/cpamm/x/amm/types"
)

// Querier runs read-only queries against committed pool state.
type Querier interface {
	Query(ctx context.Context, fn func(sdk.Context, types.QueryServer) error) error
	LastHeight() int64
}

// Server represents the read-only pool API server
type Server struct {
	router  *gin.Engine
	handler http.Handler
	querier Querier
	config  *Config
	logger  log.Logger
}

// Config holds server configuration
type Config struct {
	Address         string
	CORSOrigins     []string
	RateLimitRPS    int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	RequestTimeout  time.Duration
}

// DefaultConfig returns default server configuration
func DefaultConfig() *Config {
	return &Config{
		Address:         "127.0.0.1:1318",
		CORSOrigins:     []string{"http://localhost:3000"},
		RateLimitRPS:    100,
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    15 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		RequestTimeout:  30 * time.Second,
	}
}

// NewServer creates a new API server instance
func NewServer(querier Querier, config *Config, logger log.Logger) *Server {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}

	server := &Server{
		querier: querier,
		config:  config,
		logger:  logger.With("module", "api"),
	}
	server.setupRouter()
	return server
}

// setupRouter configures the Gin router with all routes and middleware
func (s *Server) setupRouter() {
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	s.router = gin.New()

	// Global middleware - ORDER MATTERS!
	// 1. Recovery (must be first to catch panics)
	s.router.Use(RecoveryMiddleware(s.logger))

	// 2. Security headers (set early)
	s.router.Use(SecurityHeadersMiddleware())

	// 3. Request ID (for tracing)
	s.router.Use(RequestIDMiddleware())

	// 4. Logging
	s.router.Use(LoggerMiddleware(s.logger))

	// 5. Rate limiting (before expensive operations)
	if s.config.RateLimitRPS > 0 {
		s.router.Use(RateLimitMiddleware(s.config.RateLimitRPS))
	}

	// 6. Timeout (prevent hanging requests)
	if s.config.RequestTimeout > 0 {
		s.router.Use(TimeoutMiddleware(s.config.RequestTimeout))
	}

	s.registerRoutes()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: s.config.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
	})
	s.handler = handlers.CompressHandler(corsHandler.Handler(s.router))
}

// Handler returns the fully wrapped HTTP handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// healthCheck returns server health status
func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Height:    s.querier.LastHeight(),
		Timestamp: time.Now().Unix(),
	})
}

// readinessCheck reports ready once the pool has been initialized
func (s *Server) readinessCheck(c *gin.Context) {
	err := s.querier.Query(c.Request.Context(), func(ctx sdk.Context, qs types.QueryServer) error {
		_, err := qs.Config(ctx, &types.QueryConfigRequest{})
		return err
	})
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, HealthResponse{
			Status:    "not_ready",
			Height:    s.querier.LastHeight(),
			Timestamp: time.Now().Unix(),
			Details:   err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ready",
		Height:    s.querier.LastHeight(),
		Timestamp: time.Now().Unix(),
	})
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:           s.config.Address,
		Handler:        s.handler,
		ReadTimeout:    s.config.ReadTimeout,
		WriteTimeout:   s.config.WriteTimeout,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting API server", "address", s.config.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}
