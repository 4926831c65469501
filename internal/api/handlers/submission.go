package handlers

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/osa911/formintake/internal/logging"
	"github.com/osa911/formintake/internal/metrics"
	"github.com/osa911/formintake/internal/models"
	"github.com/osa911/formintake/internal/repository"
)

// DefaultNotifyTimeout bounds a single notification attempt
const DefaultNotifyTimeout = 10 * time.Second

// Verifier checks a captcha token. Any failure is reported as false.
type Verifier interface {
	Verify(ctx context.Context, token, remoteIP string) bool
}

// Notifier announces stored submissions. Delivery is best effort.
type Notifier interface {
	Enabled() bool
	NotifyHelp(ctx context.Context, h *models.HelpRequest) error
	NotifyContact(ctx context.Context, c *models.ContactRequest) error
}

// SubmissionDeps are shared by the help and contact handlers
type SubmissionDeps struct {
	Repo          repository.SubmissionRepository
	Verifier      Verifier
	Notifier      Notifier
	Validate      *validator.Validate
	Logger        *logging.Logger
	Metrics       *metrics.Metrics
	NotifyTimeout time.Duration
}

func (d *SubmissionDeps) notify(kind string, send func(ctx context.Context) error) {
	if d.Notifier == nil || !d.Notifier.Enabled() {
		return
	}

	timeout := d.NotifyTimeout
	if timeout <= 0 {
		timeout = DefaultNotifyTimeout
	}

	// Runs after the response, detached from the request context
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := send(ctx); err != nil {
			d.Metrics.IncNotification("error")
			d.Logger.Warn("Failed to send %s notification: %v", kind, err)
			return
		}
		d.Metrics.IncNotification("sent")
	}()
}
