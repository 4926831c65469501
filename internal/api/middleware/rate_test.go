package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa911/formintake/internal/logging"
	"github.com/osa911/formintake/internal/metrics"
)

func newTestLimiter(t *testing.T, max int, window time.Duration) (*RateLimiter, *gin.Engine) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	limiter := NewRateLimiter(ctx, RateLimitConfig{Max: max, Window: window}, logging.Nop(), metrics.New())
	router := gin.New()
	router.POST("/help", limiter.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })
	router.POST("/contact", limiter.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })
	return limiter, router
}

func postFrom(router *gin.Engine, path, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, nil)
	req.RemoteAddr = ip + ":40000"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimiter_BlocksAfterMax(t *testing.T) {
	_, router := newTestLimiter(t, 100, time.Hour)

	for i := 0; i < 100; i++ {
		w := postFrom(router, "/help", "203.0.113.7")
		require.Equal(t, http.StatusOK, w.Code, "request %d", i+1)
	}

	w := postFrom(router, "/help", "203.0.113.7")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "Too many requests, please try again later.", w.Body.String())
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "100", w.Header().Get("X-RateLimit-Limit"))

	retryAfter, err := strconv.Atoi(w.Header().Get("Retry-After"))
	require.NoError(t, err)
	assert.Greater(t, retryAfter, 0)
	assert.LessOrEqual(t, retryAfter, 3600)
}

func TestRateLimiter_SharedAcrossRoutes(t *testing.T) {
	_, router := newTestLimiter(t, 3, time.Hour)

	assert.Equal(t, http.StatusOK, postFrom(router, "/help", "203.0.113.8").Code)
	assert.Equal(t, http.StatusOK, postFrom(router, "/contact", "203.0.113.8").Code)
	assert.Equal(t, http.StatusOK, postFrom(router, "/help", "203.0.113.8").Code)
	assert.Equal(t, http.StatusTooManyRequests, postFrom(router, "/contact", "203.0.113.8").Code)
}

func TestRateLimiter_PerClient(t *testing.T) {
	_, router := newTestLimiter(t, 1, time.Hour)

	assert.Equal(t, http.StatusOK, postFrom(router, "/help", "203.0.113.9").Code)
	assert.Equal(t, http.StatusTooManyRequests, postFrom(router, "/help", "203.0.113.9").Code)
	assert.Equal(t, http.StatusOK, postFrom(router, "/help", "198.51.100.1").Code)
}

func TestRateLimiter_RemainingHeader(t *testing.T) {
	_, router := newTestLimiter(t, 5, time.Hour)

	w := postFrom(router, "/help", "203.0.113.10")
	assert.Equal(t, "4", w.Header().Get("X-RateLimit-Remaining"))
	w = postFrom(router, "/help", "203.0.113.10")
	assert.Equal(t, "3", w.Header().Get("X-RateLimit-Remaining"))
}

func TestRateLimiter_NoRefillWithinWindow(t *testing.T) {
	limiter, _ := newTestLimiter(t, 100, 60*time.Minute)
	start := time.Now()
	now := start
	limiter.now = func() time.Time { return now }

	// 101 requests spread evenly over 59 minutes
	step := 59 * time.Minute / 100
	allowed := 0
	for i := 0; i < 101; i++ {
		now = start.Add(time.Duration(i) * step)
		ok, _, wait := limiter.allow("a")
		if ok {
			allowed++
			continue
		}
		assert.Equal(t, 100, i, "only the 101st request is denied")
		assert.Equal(t, start.Add(60*time.Minute).Sub(now), wait)
	}
	assert.Equal(t, 100, allowed)

	// Further requests stay denied until the window closes
	now = start.Add(60*time.Minute - time.Second)
	ok, _, wait := limiter.allow("a")
	assert.False(t, ok)
	assert.Equal(t, time.Second, wait)
}

func TestRateLimiter_NewWindowAfterExpiry(t *testing.T) {
	limiter, _ := newTestLimiter(t, 2, time.Minute)
	start := time.Now()
	now := start
	limiter.now = func() time.Time { return now }

	ok, _, _ := limiter.allow("a")
	assert.True(t, ok)
	ok, _, _ = limiter.allow("a")
	assert.True(t, ok)
	ok, _, _ = limiter.allow("a")
	assert.False(t, ok)

	now = start.Add(time.Minute)
	ok, remaining, _ := limiter.allow("a")
	assert.True(t, ok)
	assert.Equal(t, 1, remaining)
}

func TestRateLimiter_RetryAfterHeaderFromWindowEnd(t *testing.T) {
	limiter, router := newTestLimiter(t, 1, time.Hour)
	start := time.Now()
	now := start
	limiter.now = func() time.Time { return now }

	require.Equal(t, http.StatusOK, postFrom(router, "/help", "203.0.113.11").Code)

	now = start.Add(50 * time.Minute)
	w := postFrom(router, "/help", "203.0.113.11")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "600", w.Header().Get("Retry-After"))
}

func TestRateLimiter_EvictsExpiredWindows(t *testing.T) {
	limiter, _ := newTestLimiter(t, 2, time.Minute)
	now := time.Now()
	limiter.now = func() time.Time { return now }

	limiter.allow("a")
	now = now.Add(30 * time.Second)
	limiter.allow("b")
	require.Equal(t, 2, limiter.Clients())

	now = now.Add(45 * time.Second)
	limiter.evictExpired()

	assert.Equal(t, 1, limiter.Clients())
}

func TestRateLimiter_Defaults(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	limiter := NewRateLimiter(ctx, RateLimitConfig{}, logging.Nop(), nil)
	assert.Equal(t, DefaultRateLimitConfig(), limiter.config)
}
