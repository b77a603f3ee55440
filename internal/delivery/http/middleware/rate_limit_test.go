package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"candidate-tracker-backend/internal/delivery/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimitInMemoryFallback(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/login", middleware.RateLimit(middleware.RateLimitConfig{
		Limit:     3,
		Window:    time.Minute,
		KeyPrefix: "rl:test:",
	}), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	// Redis is not initialized in tests, so the in-memory counter applies.
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		assert.Equal(t, http.StatusOK, w.Code, "request %d should pass", i+1)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}
