package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/osa911/formintake/internal/api/dto/common"
	"github.com/osa911/formintake/internal/logging"
	"github.com/osa911/formintake/internal/metrics"
)

// RateLimitConfig defines configuration for the rate limiter
type RateLimitConfig struct {
	// Max requests per client per window
	Max int
	// Window over which Max requests are allowed
	Window time.Duration
	// Message is the plain-text body of a 429 response
	Message string
}

// DefaultRateLimitConfig allows 100 requests per hour per client
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Max:     100,
		Window:  60 * time.Minute,
		Message: common.MsgTooManyRequests,
	}
}

type visitor struct {
	limiter     *rate.Limiter
	windowStart time.Time
	logged      bool
}

// RateLimiter gives each client IP Max requests per Window. A client's
// window opens with its first request and its bucket never refills; the
// next window starts with a fresh bucket.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	config   RateLimitConfig
	logger   *logging.Logger
	metrics  *metrics.Metrics
	now      func() time.Time
}

// NewRateLimiter creates a limiter. Expired windows are evicted until ctx is done.
func NewRateLimiter(ctx context.Context, config RateLimitConfig, logger *logging.Logger, m *metrics.Metrics) *RateLimiter {
	defaults := DefaultRateLimitConfig()
	if config.Max <= 0 {
		config.Max = defaults.Max
	}
	if config.Window <= 0 {
		config.Window = defaults.Window
	}
	if config.Message == "" {
		config.Message = defaults.Message
	}

	l := &RateLimiter{
		visitors: make(map[string]*visitor),
		config:   config,
		logger:   logger,
		metrics:  m,
		now:      time.Now,
	}

	go l.cleanupLoop(ctx)
	return l
}

func (l *RateLimiter) cleanupLoop(ctx context.Context) {
	interval := l.config.Window / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.evictExpired()
		}
	}
}

// evictExpired drops clients whose window has ended. Their next request
// would open a new window anyway.
func (l *RateLimiter) evictExpired() {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()
	for key, v := range l.visitors {
		if l.expired(v, now) {
			delete(l.visitors, key)
		}
	}
}

func (l *RateLimiter) expired(v *visitor, now time.Time) bool {
	return now.Sub(v.windowStart) >= l.config.Window
}

// allow consumes one request for key. It reports the requests left in the
// window and, when denied, how long until the window ends.
func (l *RateLimiter) allow(key string) (bool, int, time.Duration) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	v, ok := l.visitors[key]
	if !ok || l.expired(v, now) {
		// Zero refill rate: the bucket only holds the window's allowance
		v = &visitor{
			limiter:     rate.NewLimiter(0, l.config.Max),
			windowStart: now,
		}
		l.visitors[key] = v
	}

	if v.limiter.AllowN(now, 1) {
		return true, int(math.Floor(v.limiter.TokensAt(now))), 0
	}

	if !v.logged {
		v.logged = true
		l.logger.Warn("Rate limit exceeded for %s", key)
	}

	return false, 0, v.windowStart.Add(l.config.Window).Sub(now)
}

// Middleware returns the gin handler. Clients are keyed by c.ClientIP, which
// honours the engine's trusted proxies.
func (l *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, remaining, wait := l.allow(c.ClientIP())

		c.Header("X-RateLimit-Limit", strconv.Itoa(l.config.Max))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			l.metrics.IncRateLimited()
			retryAfter := int(math.Ceil(wait.Seconds()))
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.String(http.StatusTooManyRequests, l.config.Message)
			c.Abort()
			return
		}

		c.Next()
	}
}

// Clients returns the number of tracked clients
func (l *RateLimiter) Clients() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.visitors)
}
