package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/osa911/formintake/internal/api/dto/common"
)

// HandleSuccess sends a 200 response with data as the JSON body
func HandleSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// HandleMessage sends a 200 response with just a message
func HandleMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, common.NewMessageResponse(message))
}

// HandleError aborts the request with a {"error": message} body
func HandleError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, common.NewErrorResponse(message))
}
