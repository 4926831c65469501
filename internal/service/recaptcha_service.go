package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/osa911/formintake/internal/logging"
	"github.com/osa911/formintake/internal/metrics"
)

// DefaultRecaptchaVerifyURL is Google's siteverify endpoint
const DefaultRecaptchaVerifyURL = "https://www.google.com/recaptcha/api/siteverify"

// Verification results, used as metric labels
const (
	verifyResultSuccess = "success"
	verifyResultMissing = "missing_token"
	verifyResultFailed  = "failed"
	verifyResultError   = "error"
)

// RecaptchaConfig configures the verification client
type RecaptchaConfig struct {
	SecretKey string
	VerifyURL string
	Timeout   time.Duration
	// MinScore rejects reCAPTCHA v3 responses scoring below it. Zero disables the check.
	MinScore float64
}

// RecaptchaService handles reCAPTCHA verification
type RecaptchaService struct {
	config  RecaptchaConfig
	client  *http.Client
	logger  *logging.Logger
	metrics *metrics.Metrics
}

// NewRecaptchaService creates a new reCAPTCHA service
func NewRecaptchaService(config RecaptchaConfig, logger *logging.Logger, m *metrics.Metrics) *RecaptchaService {
	if config.VerifyURL == "" {
		config.VerifyURL = DefaultRecaptchaVerifyURL
	}
	if config.Timeout <= 0 {
		config.Timeout = 5 * time.Second
	}
	return &RecaptchaService{
		config: config,
		client: &http.Client{
			Timeout:   config.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger:  logger,
		metrics: m,
	}
}

// recaptchaResponse represents the response from Google's reCAPTCHA API
type recaptchaResponse struct {
	Success     bool     `json:"success"`
	Score       float64  `json:"score"`
	Action      string   `json:"action"`
	ChallengeTS string   `json:"challenge_ts"`
	Hostname    string   `json:"hostname"`
	ErrorCodes  []string `json:"error-codes,omitempty"`
}

// Verify reports whether token is accepted by the verification service.
// Every failure, including transport errors and timeouts, yields false.
func (s *RecaptchaService) Verify(ctx context.Context, token, remoteIP string) bool {
	if token == "" {
		s.metrics.IncVerification(verifyResultMissing)
		return false
	}

	ok, err := s.verify(ctx, token, remoteIP)
	switch {
	case err != nil:
		s.metrics.IncVerification(verifyResultError)
		s.logger.Warn("reCAPTCHA verification error: %v", err)
	case !ok:
		s.metrics.IncVerification(verifyResultFailed)
	default:
		s.metrics.IncVerification(verifyResultSuccess)
	}
	return ok && err == nil
}

func (s *RecaptchaService) verify(ctx context.Context, token, remoteIP string) (bool, error) {
	if s.config.SecretKey == "" {
		return false, fmt.Errorf("reCAPTCHA secret key: %w", ErrNotConfigured)
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	data := url.Values{}
	data.Set("secret", s.config.SecretKey)
	data.Set("response", token)
	if remoteIP != "" {
		data.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.VerifyURL, strings.NewReader(data.Encode()))
	if err != nil {
		return false, fmt.Errorf("failed to create reCAPTCHA request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("failed to verify reCAPTCHA: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false, fmt.Errorf("reCAPTCHA API returned status %d", resp.StatusCode)
	}

	var result recaptchaResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, fmt.Errorf("failed to parse reCAPTCHA response: %w", err)
	}

	if !result.Success {
		s.logger.Debug("reCAPTCHA rejected token: %v", result.ErrorCodes)
		return false, nil
	}

	// Check score (for reCAPTCHA v3)
	if s.config.MinScore > 0 && result.Score < s.config.MinScore {
		s.logger.Debug("reCAPTCHA score too low: %.2f < %.2f", result.Score, s.config.MinScore)
		return false, nil
	}

	return true, nil
}
