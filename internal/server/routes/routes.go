package routes

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/osa911/formintake/internal/api/middleware"
	"github.com/osa911/formintake/internal/logging"
	"github.com/osa911/formintake/internal/telemetry"
)

// Setup configures all routes
func Setup(router *gin.Engine, h *Handlers, m *Middleware, opts GlobalOptions, logger *logging.Logger) {
	SetupHealthRoutes(router, h.Health)
	SetupHelpRoutes(router, h.Help, m)
	SetupContactRoutes(router, h.Contact, m)

	if opts.Metrics != nil {
		SetupMetricsRoutes(router, opts.Metrics)
	}

	logger.Info("All routes have been set up successfully")
}

// SetupGlobalMiddleware configures middleware that applies to all routes
func SetupGlobalMiddleware(router *gin.Engine, opts GlobalOptions, logger *logging.Logger) {
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))
	if opts.Tracing {
		router.Use(otelgin.Middleware(telemetry.ServiceName))
	}
	router.Use(middleware.Metrics(opts.Metrics))
	router.Use(middleware.SecurityHeaders(opts.FrameAncestors))
	router.Use(middleware.CORS(opts.AllowedOrigins))
	router.Use(middleware.BodyLimit(opts.MaxBodyBytes))
	router.Use(middleware.Sanitize(logger))
}
