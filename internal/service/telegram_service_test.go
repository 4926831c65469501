package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa911/formintake/internal/models"
)

func TestTelegramEnabled(t *testing.T) {
	var nilService *TelegramService
	assert.False(t, nilService.Enabled())
	assert.False(t, NewTelegramService("", "chat").Enabled())
	assert.False(t, NewTelegramService("token", "").Enabled())
	assert.True(t, NewTelegramService("token", "chat").Enabled())
}

func TestTelegramNotConfigured(t *testing.T) {
	err := NewTelegramService("", "").NotifyHelp(context.Background(), &models.HelpRequest{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestTelegramNotifyContact(t *testing.T) {
	var path string
	var msg telegramMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&msg))
		w.Write([]byte(`{"ok": true}`))
	}))
	defer srv.Close()

	s := NewTelegramService("bot-token", "42")
	s.apiURL = srv.URL

	err := s.NotifyContact(context.Background(), &models.ContactRequest{
		ID:      "abc123",
		Name:    "Ann <admin>",
		Email:   "a@x.com",
		Subject: "Pricing",
		Message: "How much?",
	})
	require.NoError(t, err)

	assert.Equal(t, "/botbot-token/sendMessage", path)
	assert.Equal(t, "42", msg.ChatID)
	assert.Equal(t, "HTML", msg.ParseMode)
	assert.Contains(t, msg.Text, "abc123")
	assert.Contains(t, msg.Text, "Ann &lt;admin&gt;")
	assert.Contains(t, msg.Text, "How much?")
	assert.NotContains(t, msg.Text, "Phone", "empty fields are omitted")
}

func TestTelegramNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	s := NewTelegramService("bot-token", "42")
	s.apiURL = srv.URL

	err := s.NotifyHelp(context.Background(), &models.HelpRequest{Name: "Ann"})
	assert.ErrorContains(t, err, "status 403")
}
