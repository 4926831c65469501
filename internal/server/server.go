package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/osa911/formintake/internal/api/handlers"
	"github.com/osa911/formintake/internal/api/middleware"
	"github.com/osa911/formintake/internal/api/validation"
	"github.com/osa911/formintake/internal/config"
	"github.com/osa911/formintake/internal/logging"
	"github.com/osa911/formintake/internal/metrics"
	"github.com/osa911/formintake/internal/repository"
	"github.com/osa911/formintake/internal/server/routes"
	"github.com/osa911/formintake/internal/service"
)

// Dependencies are the collaborators the server is built from. Verifier and
// Notifier default to the reCAPTCHA and Telegram services built from config.
type Dependencies struct {
	Repo     repository.SubmissionRepository
	Verifier handlers.Verifier
	Notifier handlers.Notifier
	Metrics  *metrics.Metrics
	Logger   *logging.Logger
}

// Server represents the HTTP server
type Server struct {
	cfg        *config.Config
	router     *gin.Engine
	httpServer *http.Server
	logger     *logging.Logger
	cancel     context.CancelFunc
}

// NewServer creates a new server instance with all routes registered
func NewServer(cfg *config.Config, deps Dependencies) (*Server, error) {
	if deps.Repo == nil {
		return nil, errors.New("submission repository is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Disable Gin's default logger entirely because we're using our custom logger
	gin.DisableConsoleColor()
	gin.DefaultWriter = io.Discard

	router := gin.New()

	var proxies []string
	if len(cfg.TrustedProxies) > 0 {
		proxies = cfg.TrustedProxies
	}
	if err := router.SetTrustedProxies(proxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}

	m := deps.Metrics
	if !cfg.MetricsEnabled {
		m = nil
	}

	verifier := deps.Verifier
	if verifier == nil {
		verifier = service.NewRecaptchaService(service.RecaptchaConfig{
			SecretKey: cfg.RecaptchaSecret,
			VerifyURL: cfg.RecaptchaVerifyURL,
			Timeout:   cfg.RecaptchaTimeout,
			MinScore:  cfg.RecaptchaMinScore,
		}, logger, m)
	}

	notifier := deps.Notifier
	if notifier == nil {
		notifier = service.NewTelegramService(cfg.TelegramBotToken, cfg.TelegramChatID)
	}

	// The rate limiter cleanup goroutine lives as long as the server
	ctx, cancel := context.WithCancel(context.Background())

	submissionDeps := handlers.SubmissionDeps{
		Repo:     deps.Repo,
		Verifier: verifier,
		Notifier: notifier,
		Validate: validation.New(),
		Logger:   logger,
		Metrics:  m,
	}

	h := &routes.Handlers{
		Help:    handlers.NewHelpHandler(submissionDeps),
		Contact: handlers.NewContactHandler(submissionDeps),
		Health:  handlers.NewHealthHandler(deps.Repo, logger),
	}

	mw := &routes.Middleware{
		Validation: middleware.NewValidationMiddleware(logger, m, cfg.LogRequestBodies),
		RateLimit: middleware.NewRateLimiter(ctx, middleware.RateLimitConfig{
			Max:    cfg.RateLimitMax,
			Window: cfg.RateLimitWindow,
		}, logger, m),
	}

	opts := routes.GlobalOptions{
		FrameAncestors: cfg.FrameAncestors,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		MaxBodyBytes:   cfg.MaxBodyBytes,
		Tracing:        cfg.OTLPEndpoint != "",
		Metrics:        m,
	}

	routes.SetupGlobalMiddleware(router, opts, logger)
	routes.Setup(router, h, mw, opts, logger)

	return &Server{
		cfg:    cfg,
		router: router,
		logger: logger,
		cancel: cancel,
		httpServer: &http.Server{
			Addr:              net.JoinHostPort("", cfg.Port),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
	}, nil
}

// Handler returns the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on the configured port and blocks until the server stops.
// A graceful shutdown is not reported as an error.
func (s *Server) Start() error {
	s.logger.Info("Server listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones until ctx
// expires.
func (s *Server) Shutdown(ctx context.Context) error {
	defer s.cancel()
	s.logger.Info("Shutting down server...")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
