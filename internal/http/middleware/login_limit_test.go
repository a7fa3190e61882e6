package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/kazlearn-backend/internal/platform/logger"
)

type countingLimiter struct {
	limit int
	seen  map[string]int
}

func (l *countingLimiter) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	l.seen[key]++
	return l.seen[key] <= l.limit, 30 * time.Second, nil
}

func (l *countingLimiter) Close() error { return nil }

func TestLoginLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/login", LoginLimit(logger.Nop(), &countingLimiter{limit: 2, seen: map[string]int{}}), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	codes := []int{}
	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/login", nil)
		req.RemoteAddr = "10.1.1.1:5555"
		last = httptest.NewRecorder()
		r.ServeHTTP(last, req)
		codes = append(codes, last.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("codes: want=[200 200 429] got=%v", codes)
	}
	if got := last.Header().Get("Retry-After"); got != "30" {
		t.Fatalf("Retry-After: want=30 got=%q", got)
	}
}
