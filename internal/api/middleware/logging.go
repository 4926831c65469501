package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/osa911/formintake/internal/api/constants"
	"github.com/osa911/formintake/internal/logging"
)

// RequestLogger is a middleware that logs request information.
// Output is gated by the logger's LOG_REQUESTS setting.
func RequestLogger(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		latency := time.Since(start)
		logger.LogHTTPRequest(
			method,
			path,
			c.ClientIP(),
			c.GetString(constants.ContextKeyRequestID),
			c.Writer.Status(),
			c.Writer.Size(),
			latency.String(),
		)
	}
}
