package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/osa911/formintake/internal/api/constants"
	"github.com/osa911/formintake/internal/api/dto/common"
	"github.com/osa911/formintake/internal/api/dto/v1/contact"
	"github.com/osa911/formintake/internal/metrics"
	"github.com/osa911/formintake/internal/models"
	"github.com/osa911/formintake/internal/utils"
)

type ContactHandler struct {
	deps SubmissionDeps
}

func NewContactHandler(deps SubmissionDeps) *ContactHandler {
	return &ContactHandler{deps: deps}
}

// Submit handles POST /contact
func (h *ContactHandler) Submit(c *gin.Context) {
	// Get contact data from context (set by validation middleware)
	data, exists := c.Get(constants.ContextKeyContact)
	req, ok := data.(contact.ContactRequest)
	if !exists || !ok {
		h.deps.Logger.Error("Contact data not found in context")
		utils.HandleError(c, http.StatusInternalServerError, common.MsgInternalServer)
		return
	}

	if !h.deps.Verifier.Verify(c.Request.Context(), req.Recaptcha, c.ClientIP()) {
		h.deps.Metrics.IncSubmission(models.CollectionContact, metrics.OutcomeCaptchaRejected)
		utils.HandleError(c, http.StatusBadRequest, common.MsgInvalidRecaptcha)
		return
	}

	if err := h.deps.Validate.Struct(&req); err != nil {
		h.deps.Metrics.IncSubmission(models.CollectionContact, metrics.OutcomeInvalid)
		utils.HandleValidationError(c, err)
		return
	}

	record := req.ToModel()
	if err := h.deps.Repo.CreateContact(c.Request.Context(), record); err != nil {
		h.deps.Metrics.IncSubmission(models.CollectionContact, metrics.OutcomeStoreError)
		utils.HandleAPIError(c, h.deps.Logger, err, http.StatusInternalServerError, common.MsgInternalServer)
		return
	}
	h.deps.Metrics.IncSubmission(models.CollectionContact, metrics.OutcomeAccepted)

	notified := *record
	h.deps.notify(models.CollectionContact, func(ctx context.Context) error {
		return h.deps.Notifier.NotifyContact(ctx, &notified)
	})

	utils.HandleSuccess(c, contact.ContactResponse{
		Message:    common.MsgContactAdded,
		NewContact: record,
	})
}
