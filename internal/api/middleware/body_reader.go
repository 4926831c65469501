package middleware

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/osa911/formintake/internal/api/constants"
	"github.com/osa911/formintake/internal/api/dto/common"
	"github.com/osa911/formintake/internal/api/sanitization"
	"github.com/osa911/formintake/internal/logging"
	"github.com/osa911/formintake/internal/utils"
)

// DefaultMaxBodySize caps JSON bodies at 10kb
const DefaultMaxBodySize int64 = 10 * 1024

// BodyLimit rejects bodies larger than maxBytes with 413. Declared lengths
// are checked up front; chunked bodies fail when read.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodySize
	}

	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			utils.HandleError(c, http.StatusRequestEntityTooLarge, common.MsgBodyTooLarge)
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}

// Sanitize reads the request body once, strips HTML and query-operator keys
// from JSON bodies and query parameters, and restores the cleaned body for
// the rest of the chain. The cleaned bytes are also stored in the context.
func Sanitize(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.RawQuery != "" {
			c.Request.URL.RawQuery = sanitization.SanitizeQuery(c.Request.URL.Query()).Encode()
		}

		if c.Request.Body == nil || c.Request.Body == http.NoBody {
			c.Next()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				utils.HandleError(c, http.StatusRequestEntityTooLarge, common.MsgBodyTooLarge)
				return
			}
			utils.HandleAPIError(c, logger, err, http.StatusInternalServerError, common.MsgInternalServer)
			return
		}

		// Not JSON: leave it for the handler to reject
		if clean, err := sanitization.SanitizeJSON(body); err == nil {
			body = clean
		}

		c.Set(constants.ContextKeyRawBody, body)
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
		c.Request.ContentLength = int64(len(body))

		c.Next()
	}
}

// requestBody returns the body stored by Sanitize, or reads it when
// Sanitize did not run
func requestBody(c *gin.Context) ([]byte, error) {
	if raw, ok := c.Get(constants.ContextKeyRawBody); ok {
		if body, ok := raw.([]byte); ok {
			return body, nil
		}
	}
	if c.Request.Body == nil {
		return nil, nil
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, err
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(body))
	return body, nil
}
