package routes

import (
	"github.com/osa911/formintake/internal/api/handlers"
	"github.com/osa911/formintake/internal/api/middleware"
	"github.com/osa911/formintake/internal/metrics"
)

// Handlers contains all the route handlers
type Handlers struct {
	Help    *handlers.HelpHandler
	Contact *handlers.ContactHandler
	Health  *handlers.HealthHandler
}

// Middleware contains the route-scoped middleware
type Middleware struct {
	Validation *middleware.ValidationMiddleware
	RateLimit  *middleware.RateLimiter
}

// GlobalOptions configure the middleware applied to every route
type GlobalOptions struct {
	FrameAncestors []string
	AllowedOrigins []string
	MaxBodyBytes   int64
	Tracing        bool
	Metrics        *metrics.Metrics
}
