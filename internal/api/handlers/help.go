package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/osa911/formintake/internal/api/constants"
	"github.com/osa911/formintake/internal/api/dto/common"
	"github.com/osa911/formintake/internal/api/dto/v1/help"
	"github.com/osa911/formintake/internal/metrics"
	"github.com/osa911/formintake/internal/models"
	"github.com/osa911/formintake/internal/utils"
)

type HelpHandler struct {
	deps SubmissionDeps
}

func NewHelpHandler(deps SubmissionDeps) *HelpHandler {
	return &HelpHandler{deps: deps}
}

// Submit handles POST /help
func (h *HelpHandler) Submit(c *gin.Context) {
	// Get help data from context (set by validation middleware)
	data, exists := c.Get(constants.ContextKeyHelp)
	req, ok := data.(help.HelpRequest)
	if !exists || !ok {
		h.deps.Logger.Error("Help data not found in context")
		utils.HandleError(c, http.StatusInternalServerError, common.MsgInternalServer)
		return
	}

	if !h.deps.Verifier.Verify(c.Request.Context(), req.Recaptcha, c.ClientIP()) {
		h.deps.Metrics.IncSubmission(models.CollectionHelp, metrics.OutcomeCaptchaRejected)
		utils.HandleError(c, http.StatusBadRequest, common.MsgInvalidRecaptcha)
		return
	}

	if err := h.deps.Validate.Struct(&req); err != nil {
		h.deps.Metrics.IncSubmission(models.CollectionHelp, metrics.OutcomeInvalid)
		utils.HandleValidationError(c, err)
		return
	}

	record := req.ToModel()
	if err := h.deps.Repo.CreateHelp(c.Request.Context(), record); err != nil {
		h.deps.Metrics.IncSubmission(models.CollectionHelp, metrics.OutcomeStoreError)
		utils.HandleAPIError(c, h.deps.Logger, err, http.StatusInternalServerError, common.MsgInternalServer)
		return
	}
	h.deps.Metrics.IncSubmission(models.CollectionHelp, metrics.OutcomeAccepted)

	notified := *record
	h.deps.notify(models.CollectionHelp, func(ctx context.Context) error {
		return h.deps.Notifier.NotifyHelp(ctx, &notified)
	})

	utils.HandleSuccess(c, help.HelpResponse{
		Message: common.MsgHelpAdded,
		NewHelp: record,
	})
}
