package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/osa911/formintake/internal/api/handlers"
)

// SetupHelpRoutes configures the help form route
func SetupHelpRoutes(router *gin.Engine, help *handlers.HelpHandler, m *Middleware) {
	router.POST("/help",
		m.RateLimit.Middleware(),
		m.Validation.BindHelpRequest(),
		help.Submit,
	)
}
