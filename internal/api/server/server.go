package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"meeting-transcriber/internal/api/handlers"
	"meeting-transcriber/internal/api/middleware"
	"meeting-transcriber/internal/app/metrics"
	"meeting-transcriber/internal/config"
	"meeting-transcriber/web"
)

// Server represents the HTTP front end
type Server struct {
	config     config.ServerSettings
	router     *gin.Engine
	httpServer *http.Server
	logger     *zap.Logger
}

// Options carries the collaborators of NewServer. Gatherer defaults to the
// prometheus default registry.
type Options struct {
	Settings  *config.Settings
	Processor handlers.Processor
	Metrics   *metrics.Metrics
	Gatherer  prometheus.Gatherer
	Logger    *zap.Logger
}

// NewServer creates the gin router and the HTTP server around it
func NewServer(opts Options) *Server {
	settings := opts.Settings.Server
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	// Set Gin mode based on environment
	if settings.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.MaxMultipartMemory = 32 << 20
	router.SetHTMLTemplate(web.Templates())

	// Apply global middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogging(logger, opts.Metrics))
	router.Use(middleware.ErrorHandler(logger))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	router.StaticFS("/static", web.Static())

	transcribe := handlers.NewTranscribeHandler(opts.Processor, opts.Settings.UploadDir, logger)
	router.GET("/", transcribe.Index)
	router.POST("/transcribe", middleware.BodyLimit(settings.MaxUploadBytes()), transcribe.Transcribe)

	httpServer := &http.Server{
		Addr:              settings.Addr(),
		Handler:           router,
		ReadHeaderTimeout: settings.ReadHeaderTimeout,
		WriteTimeout:      settings.WriteTimeout,
		IdleTimeout:       settings.IdleTimeout,
	}

	return &Server{
		config:     settings,
		router:     router,
		httpServer: httpServer,
		logger:     logger,
	}
}

// Serve accepts connections on listener until Shutdown is called. It returns
// nil after a clean shutdown.
func (s *Server) Serve(listener net.Listener) error {
	s.logger.Info("Starting HTTP server",
		zap.String("address", listener.Addr().String()),
		zap.String("environment", s.config.Environment),
	)

	if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Error("HTTP server failed", zap.Error(err))
		return err
	}
	return nil
}

// ListenAndServe listens on the configured host and port
func (s *Server) ListenAndServe() error {
	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	return s.Serve(listener)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("Server forced to shutdown", zap.Error(err))
		return err
	}

	s.logger.Info("HTTP server shutdown complete")
	return nil
}

// Router returns the Gin router (useful for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}
