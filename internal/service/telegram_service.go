package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/osa911/formintake/internal/models"
)

const defaultTelegramAPIURL = "https://api.telegram.org"

// TelegramService posts new submissions to a Telegram chat
type TelegramService struct {
	botToken string
	chatID   string
	apiURL   string
	client   *http.Client
}

// NewTelegramService creates a new Telegram service. It is disabled when
// either botToken or chatID is empty.
func NewTelegramService(botToken, chatID string) *TelegramService {
	return &TelegramService{
		botToken: botToken,
		chatID:   chatID,
		apiURL:   defaultTelegramAPIURL,
		client: &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// Enabled reports whether the bot token and chat are configured
func (s *TelegramService) Enabled() bool {
	return s != nil && s.botToken != "" && s.chatID != ""
}

// telegramMessage represents a Telegram API message
type telegramMessage struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

// NotifyHelp sends a help request summary
func (s *TelegramService) NotifyHelp(ctx context.Context, h *models.HelpRequest) error {
	return s.send(ctx, formatMessage("New Help Request", h.ID, [][2]string{
		{"Name", h.Name},
		{"Email", h.Email},
		{"Phone", h.Phone},
		{"Company", h.CompanyName},
		{"Query", h.Query},
	}))
}

// NotifyContact sends a contact request summary
func (s *TelegramService) NotifyContact(ctx context.Context, c *models.ContactRequest) error {
	return s.send(ctx, formatMessage("New Contact Request", c.ID, [][2]string{
		{"Name", c.Name},
		{"Email", c.Email},
		{"Phone", c.Phone},
		{"Subject", c.Subject},
		{"Message", c.Message},
	}))
}

func formatMessage(title, id string, fields [][2]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>%s</b> <code>%s</code>\n", title, html.EscapeString(id))
	for _, f := range fields {
		if f[1] == "" {
			continue
		}
		fmt.Fprintf(&b, "\n<b>%s:</b> %s", f[0], html.EscapeString(f[1]))
	}
	return b.String()
}

func (s *TelegramService) send(ctx context.Context, text string) error {
	if !s.Enabled() {
		return fmt.Errorf("telegram bot token or chat ID: %w", ErrNotConfigured)
	}

	jsonData, err := json.Marshal(telegramMessage{
		ChatID:    s.chatID,
		Text:      text,
		ParseMode: "HTML",
	})
	if err != nil {
		return fmt.Errorf("failed to marshal telegram message: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", s.apiURL, s.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram API returned status %d", resp.StatusCode)
	}

	return nil
}
