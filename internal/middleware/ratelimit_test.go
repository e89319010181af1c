package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestNilLimiterAllowsEverything(t *testing.T) {
	var limiter *RedisLimiter

	for i := 0; i < 100; i++ {
		if !limiter.Allow("rl:test:127.0.0.1", 1, time.Second) {
			t.Fatal("a nil limiter must never block")
		}
	}
}

func TestNewRedisLimiterNilClient(t *testing.T) {
	if NewRedisLimiter(nil) != nil {
		t.Error("expected a nil limiter for a nil client")
	}
}

func TestRateLimitMiddlewarePassesWithoutRedis(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/login", RateLimit(nil, "login", 5, time.Minute), func(ctx *gin.Context) {
		ctx.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 without Redis configured, got %d", w.Code)
	}
}
