package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/osa911/formintake/internal/api/handlers"
	"github.com/osa911/formintake/internal/metrics"
)

// SetupHealthRoutes configures health check endpoints
func SetupHealthRoutes(router *gin.Engine, health *handlers.HealthHandler) {
	router.GET("/health", health.Check)
}

// SetupMetricsRoutes exposes the Prometheus registry
func SetupMetricsRoutes(router *gin.Engine, m *metrics.Metrics) {
	router.GET("/metrics", gin.WrapH(m.Handler()))
}
