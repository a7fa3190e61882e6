package redis

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/kazlearn-backend/internal/platform/logger"
)

func TestNoopLimiterWithoutAddr(t *testing.T) {
	l, err := NewLoginLimiter(logger.Nop(), LoginLimiterConfig{})
	if err != nil {
		t.Fatalf("NewLoginLimiter: %v", err)
	}
	for i := 0; i < 100; i++ {
		ok, _, err := l.Allow(context.Background(), "1.2.3.4")
		if !ok || err != nil {
			t.Fatalf("noop limiter: ok=%v err=%v", ok, err)
		}
	}
}

func TestLoginLimiterThrottles(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	l, err := NewLoginLimiter(logger.Nop(), LoginLimiterConfig{
		Addr:   addr,
		Limit:  3,
		Window: time.Minute,
		Prefix: fmt.Sprintf("kazlearn:test:%s", uuid.NewString()),
	})
	if err != nil {
		t.Fatalf("NewLoginLimiter: %v", err)
	}
	t.Cleanup(func() { _ = l.Close() })

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		ok, _, err := l.Allow(ctx, "10.0.0.1")
		if err != nil || !ok {
			t.Fatalf("attempt %d: ok=%v err=%v", i+1, ok, err)
		}
	}
	ok, retry, err := l.Allow(ctx, "10.0.0.1")
	if err != nil || ok {
		t.Fatalf("4th attempt: want throttled got ok=%v err=%v", ok, err)
	}
	if retry <= 0 || retry > time.Minute {
		t.Fatalf("retryAfter: got=%v", retry)
	}
	if ok, _, _ := l.Allow(ctx, "10.0.0.2"); !ok {
		t.Fatalf("other key must not be throttled")
	}
}
