package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/osa911/formintake/internal/api/dto/common"
	"github.com/osa911/formintake/internal/logging"
	"github.com/osa911/formintake/internal/repository"
	"github.com/osa911/formintake/internal/utils"
)

const healthPingTimeout = 3 * time.Second

type HealthHandler struct {
	repo   repository.SubmissionRepository
	logger *logging.Logger
}

func NewHealthHandler(repo repository.SubmissionRepository, logger *logging.Logger) *HealthHandler {
	return &HealthHandler{repo: repo, logger: logger}
}

func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
	defer cancel()

	// Test store connection
	if err := h.repo.Ping(ctx); err != nil {
		utils.HandleAPIError(c, h.logger, err, http.StatusServiceUnavailable, common.MsgDatabaseConnection)
		return
	}

	c.JSON(http.StatusOK, common.NewMessageResponse(common.MsgHealthOK))
}
