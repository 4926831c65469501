package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/osa911/formintake/internal/api/constants"
	"github.com/osa911/formintake/internal/api/dto/common"
	"github.com/osa911/formintake/internal/api/dto/v1/contact"
	"github.com/osa911/formintake/internal/api/dto/v1/help"
	"github.com/osa911/formintake/internal/logging"
	"github.com/osa911/formintake/internal/metrics"
	"github.com/osa911/formintake/internal/models"
	"github.com/osa911/formintake/internal/utils"
)

var errTrailingData = errors.New("unexpected data after top-level JSON value")

// ValidationMiddleware decodes submission bodies into their DTOs. Field rules
// are checked by the handlers, after the captcha.
type ValidationMiddleware struct {
	logger    *logging.Logger
	metrics   *metrics.Metrics
	logBodies bool
}

// NewValidationMiddleware creates a new validation middleware. With logBodies
// set the raw body is logged at debug level.
func NewValidationMiddleware(logger *logging.Logger, m *metrics.Metrics, logBodies bool) *ValidationMiddleware {
	return &ValidationMiddleware{
		logger:    logger,
		metrics:   m,
		logBodies: logBodies,
	}
}

// BindHelpRequest decodes POST /help bodies
func (m *ValidationMiddleware) BindHelpRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req help.HelpRequest
		if !m.bind(c, models.CollectionHelp, &req) {
			return
		}
		c.Set(constants.ContextKeyHelp, req)
		c.Next()
	}
}

// BindContactRequest decodes POST /contact bodies
func (m *ValidationMiddleware) BindContactRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req contact.ContactRequest
		if !m.bind(c, models.CollectionContact, &req) {
			return
		}
		c.Set(constants.ContextKeyContact, req)
		c.Next()
	}
}

// bind aborts the request and returns false when the body cannot be decoded.
// Unreadable or malformed JSON is a 500, keys or types outside the DTO are a 400.
func (m *ValidationMiddleware) bind(c *gin.Context, kind string, dst interface{}) bool {
	body, err := requestBody(c)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			utils.HandleError(c, http.StatusRequestEntityTooLarge, common.MsgBodyTooLarge)
			return false
		}
		m.metrics.IncSubmission(kind, metrics.OutcomeBadBody)
		utils.HandleAPIError(c, m.logger, err, http.StatusInternalServerError, common.MsgInternalServer)
		return false
	}

	if m.logBodies {
		m.logger.Debug("%s request body [%s]: %s", kind, c.GetString(constants.ContextKeyRequestID), body)
	}

	if err := decodeStrict(body, dst); err != nil {
		m.metrics.IncSubmission(kind, metrics.OutcomeBadBody)
		if isShapeError(err) {
			utils.HandleAPIError(c, m.logger, err, http.StatusBadRequest, common.MsgInvalidBody)
			return false
		}
		utils.HandleAPIError(c, m.logger, err, http.StatusInternalServerError, common.MsgInternalServer)
		return false
	}

	return true
}

// decodeStrict decodes exactly one JSON value, rejecting unknown keys. An
// empty body decodes as an empty object.
func decodeStrict(body []byte, dst interface{}) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return errTrailingData
	}
	return nil
}

// isShapeError reports whether err is valid JSON of the wrong shape
func isShapeError(err error) bool {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return true
	}
	return strings.HasPrefix(err.Error(), "json: unknown field ")
}
