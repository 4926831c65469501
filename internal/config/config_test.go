package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	t.Setenv("ENV", "development")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, 100, cfg.RateLimitMax)
	assert.Equal(t, 60*time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, int64(10240), cfg.MaxBodyBytes)
	assert.Equal(t, 5*time.Second, cfg.RecaptchaTimeout)
	assert.Equal(t, []string{"'self'"}, cfg.FrameAncestors)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "memory://", cfg.StoreURL())
}

func TestStoreURLPrecedence(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017/forms")
	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, "mongodb://localhost:27017/forms", cfg.StoreURL())

	t.Setenv("DATABASE_URL", "postgres://localhost/forms")
	cfg, err = Parse()
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/forms", cfg.StoreURL())
}

func TestProductionRequiresSecretAndStore(t *testing.T) {
	t.Setenv("ENV", "production")

	_, err := Parse()
	assert.ErrorContains(t, err, "RECAPTCHA_SECRET_KEY")

	t.Setenv("RECAPTCHA_SECRET_KEY", "s3cret")
	_, err = Parse()
	assert.ErrorContains(t, err, "DATABASE_URL")

	t.Setenv("MONGO_URI", "mongodb://db:27017/forms")
	cfg, err := Parse()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"zero rate limit", "RATE_LIMIT_MAX", "0"},
		{"negative window", "RATE_LIMIT_WINDOW", "-1m"},
		{"zero body", "MAX_BODY_BYTES", "0"},
		{"score above one", "RECAPTCHA_MIN_SCORE", "1.5"},
		{"bad log level", "LOG_LEVEL", "chatty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Parse()
			assert.Error(t, err)
		})
	}
}

func TestListValuesAreSplit(t *testing.T) {
	t.Setenv("FRAME_ANCESTORS", "'self',https://example.com")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.1,10.0.0.2")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, []string{"'self'", "https://example.com"}, cfg.FrameAncestors)
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, cfg.TrustedProxies)
}
