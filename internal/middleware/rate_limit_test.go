package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/balanceai/wellness-backend/internal/middleware"
	"github.com/balanceai/wellness-backend/internal/testhelpers"
)

func limiterTestRouter(limiter *middleware.RateLimiter, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != "" {
			c.Set("user_id", userID)
		}
		c.Next()
	})
	r.Use(limiter.RateLimitMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	return r
}

func TestIsAllowedWindowAccounting(t *testing.T) {
	client := testhelpers.SetupRedisClient(t)
	limiter := middleware.NewRateLimiter(client, middleware.RateLimitConfig{
		Window:    time.Minute,
		Limit:     3,
		KeyPrefix: "rate_limit:test",
	})

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		allowed, remaining, _, err := limiter.IsAllowed(ctx, "user-1")
		assert.NoError(t, err)
		assert.True(t, allowed)
		assert.Equal(t, 2-i, remaining)
	}

	allowed, remaining, resetTime, err := limiter.IsAllowed(ctx, "user-1")
	assert.NoError(t, err)
	assert.False(t, allowed)
	assert.Equal(t, 0, remaining)
	assert.True(t, resetTime.After(time.Now()))

	// Other users have their own window.
	allowed, _, _, err = limiter.IsAllowed(ctx, "user-2")
	assert.NoError(t, err)
	assert.True(t, allowed)
}

func TestGetRemainingRequests(t *testing.T) {
	client := testhelpers.SetupRedisClient(t)
	limiter := middleware.NewRateLimiter(client, middleware.RateLimitConfig{
		Window:    time.Minute,
		Limit:     5,
		KeyPrefix: "rate_limit:test",
	})

	ctx := context.Background()

	remaining, _, err := limiter.GetRemainingRequests(ctx, "fresh-user")
	assert.NoError(t, err)
	assert.Equal(t, 5, remaining)

	_, _, _, err = limiter.IsAllowed(ctx, "fresh-user")
	assert.NoError(t, err)
	_, _, _, err = limiter.IsAllowed(ctx, "fresh-user")
	assert.NoError(t, err)

	remaining, _, err = limiter.GetRemainingRequests(ctx, "fresh-user")
	assert.NoError(t, err)
	assert.Equal(t, 3, remaining)
}

func TestRateLimitMiddlewareBlocksAfterLimit(t *testing.T) {
	client := testhelpers.SetupRedisClient(t)
	limiter := middleware.NewRateLimiter(client, middleware.RateLimitConfig{
		Window:    time.Minute,
		Limit:     2,
		KeyPrefix: "rate_limit:http",
	})
	router := limiterTestRouter(limiter, "user-http")

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Contains(t, w.Body.String(), "rate limit exceeded")
}

func TestRateLimitMiddlewareRequiresUser(t *testing.T) {
	client := testhelpers.SetupRedisClient(t)
	limiter := middleware.NewAIRequestRateLimiter(client)
	router := limiterTestRouter(limiter, "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRateLimitMiddlewareFailsOpen(t *testing.T) {
	// A client pointed at nothing makes every check error; requests must
	// still pass through.
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
	})
	t.Cleanup(func() { _ = client.Close() })

	limiter := middleware.NewAIRequestRateLimiter(client)
	router := limiterTestRouter(limiter, "user-down")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "rate limit check failed", w.Header().Get("X-RateLimit-Error"))
}
