package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"github.com/osa911/formintake/internal/logging"
)

// Config holds all configuration for the application
type Config struct {
	// Server Configuration
	Environment     string        `env:"ENV" envDefault:"development"`
	Port            string        `env:"PORT" envDefault:"3000"`
	TrustedProxies  []string      `env:"TRUSTED_PROXIES" envSeparator:","`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Logging Configuration
	LogLevel         string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile          string `env:"LOG_FILE"`
	LogMaxSize       int    `env:"LOG_MAX_SIZE" envDefault:"100"`
	LogMaxBackups    int    `env:"LOG_MAX_BACKUPS" envDefault:"3"`
	LogMaxAge        int    `env:"LOG_MAX_AGE" envDefault:"7"`
	LogRequests      bool   `env:"LOG_REQUESTS" envDefault:"false"`
	LogRequestBodies bool   `env:"LOG_REQUEST_BODIES" envDefault:"false"`

	// Database Configuration
	DatabaseURL             string `env:"DATABASE_URL"`
	MongoURI                string `env:"MONGO_URI"`
	FirebaseCredentialsFile string `env:"FIREBASE_CREDENTIALS_FILE"`

	// reCAPTCHA Configuration
	RecaptchaSecret    string        `env:"RECAPTCHA_SECRET_KEY"`
	RecaptchaVerifyURL string        `env:"RECAPTCHA_VERIFY_URL" envDefault:"https://www.google.com/recaptcha/api/siteverify"`
	RecaptchaTimeout   time.Duration `env:"RECAPTCHA_TIMEOUT" envDefault:"5s"`
	RecaptchaMinScore  float64       `env:"RECAPTCHA_MIN_SCORE" envDefault:"0"`

	// Ingress Configuration
	RateLimitMax       int           `env:"RATE_LIMIT_MAX" envDefault:"100"`
	RateLimitWindow    time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"60m"`
	MaxBodyBytes       int64         `env:"MAX_BODY_BYTES" envDefault:"10240"`
	FrameAncestors     []string      `env:"FRAME_ANCESTORS" envSeparator:"," envDefault:"'self'"`
	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	// Telemetry Configuration
	MetricsEnabled bool    `env:"METRICS_ENABLED" envDefault:"true"`
	OTLPEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPInsecure   bool    `env:"OTEL_EXPORTER_OTLP_INSECURE" envDefault:"true"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATIO" envDefault:"1"`

	// Telegram Configuration
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID   string `env:"TELEGRAM_CHAT_ID"`
}

// Load loads the configuration from environment variables and .env files
func Load() (*Config, error) {
	// godotenv.Load never overrides variables already set, so the more
	// specific file goes first
	envLocations := []string{".env"}
	if envName := os.Getenv("ENV"); envName != "" {
		envLocations = append([]string{fmt.Sprintf(".env.%s", envName)}, envLocations...)
	}
	for _, loc := range envLocations {
		_ = godotenv.Load(loc)
	}

	return Parse()
}

// Parse builds the configuration from the current environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsProduction reports whether ENV is production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// StoreURL returns the submission store connection string. DATABASE_URL wins
// over MONGO_URI; outside production an unset value means the in-memory store.
func (c *Config) StoreURL() string {
	switch {
	case c.DatabaseURL != "":
		return c.DatabaseURL
	case c.MongoURI != "":
		return c.MongoURI
	case !c.IsProduction():
		return "memory://"
	}
	return ""
}

// Validate checks cross-field constraints env tags cannot express
func (c *Config) Validate() error {
	if c.IsProduction() {
		if c.RecaptchaSecret == "" {
			return fmt.Errorf("RECAPTCHA_SECRET_KEY is required in production")
		}
		if c.StoreURL() == "" {
			return fmt.Errorf("DATABASE_URL or MONGO_URI is required in production")
		}
	}

	if c.RateLimitMax <= 0 {
		return fmt.Errorf("RATE_LIMIT_MAX must be positive, got %d", c.RateLimitMax)
	}
	if c.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %s", c.RateLimitWindow)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("MAX_BODY_BYTES must be positive, got %d", c.MaxBodyBytes)
	}
	if c.RecaptchaTimeout <= 0 {
		return fmt.Errorf("RECAPTCHA_TIMEOUT must be positive, got %s", c.RecaptchaTimeout)
	}
	if c.RecaptchaMinScore < 0 || c.RecaptchaMinScore > 1 {
		return fmt.Errorf("RECAPTCHA_MIN_SCORE must be within [0,1], got %v", c.RecaptchaMinScore)
	}
	if c.OTELSampleRate < 0 || c.OTELSampleRate > 1 {
		return fmt.Errorf("OTEL_SAMPLE_RATIO must be within [0,1], got %v", c.OTELSampleRate)
	}

	return c.LogConfig().Validate()
}

// LogConfig maps the logging fields onto the logging package configuration
func (c *Config) LogConfig() *logging.LogConfig {
	return &logging.LogConfig{
		Level:      c.LogLevel,
		File:       c.LogFile,
		MaxSize:    c.LogMaxSize,
		MaxBackups: c.LogMaxBackups,
		MaxAge:     c.LogMaxAge,
		Requests:   c.LogRequests,
	}
}
