package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/osa911/formintake/internal/api/dto/common"
	"github.com/osa911/formintake/internal/api/validation"
	"github.com/osa911/formintake/internal/logging"
)

// HandleAPIError logs err with the request line and answers with message
// only. Error details never reach the client.
func HandleAPIError(c *gin.Context, logger *logging.Logger, err error, status int, message string) {
	if logger != nil {
		logger.LogHTTPError(
			c.Request.Method,
			c.Request.URL.Path,
			c.ClientIP(),
			status,
			message,
			err,
		)
	}
	HandleError(c, status, message)
}

// HandleValidationError answers 400 with the failing fields listed
func HandleValidationError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, common.ErrorResponse{
		Error:  common.MsgInvalidSubmission,
		Fields: validation.FormatValidationError(err),
	})
}
