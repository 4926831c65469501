package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/osa911/formintake/internal/api/handlers"
)

// SetupContactRoutes configures the contact form route. It shares the
// rate limiter with /help.
func SetupContactRoutes(router *gin.Engine, contact *handlers.ContactHandler, m *Middleware) {
	router.POST("/contact",
		m.RateLimit.Middleware(),
		m.Validation.BindContactRequest(),
		contact.Submit,
	)
}
