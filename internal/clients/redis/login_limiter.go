package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/kazlearn-backend/internal/platform/logger"
)

type LoginLimiterConfig struct {
	Addr     string
	Password string
	DB       int
	// Limit is the number of login attempts allowed per key within Window.
	Limit  int
	Window time.Duration
	Prefix string
}

type LoginLimiter interface {
	// Allow counts one attempt for key and reports whether it is within the
	// limit. When it is not, retryAfter is the remaining window.
	Allow(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error)
	Close() error
}

type loginLimiter struct {
	log    *logger.Logger
	rdb    *goredis.Client
	limit  int
	window time.Duration
	prefix string
}

// NewLoginLimiter returns a limiter that always allows when no address is
// configured.
func NewLoginLimiter(log *logger.Logger, cfg LoginLimiterConfig) (LoginLimiter, error) {
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		log.Info("login limiter disabled (no redis addr)")
		return noopLimiter{}, nil
	}
	if cfg.Limit <= 0 {
		cfg.Limit = 10
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	if cfg.Prefix == "" {
		cfg.Prefix = "kazlearn:login"
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &loginLimiter{
		log:    log.With("client", "RedisLoginLimiter"),
		rdb:    rdb,
		limit:  cfg.Limit,
		window: cfg.Window,
		prefix: cfg.Prefix,
	}, nil
}

func (l *loginLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	k := l.prefix + ":" + key
	pipe := l.rdb.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.ExpireNX(ctx, k, l.window)
	ttl := pipe.PTTL(ctx, k)
	if _, err := pipe.Exec(ctx); err != nil {
		return true, 0, fmt.Errorf("login limiter: %w", err)
	}
	if incr.Val() <= int64(l.limit) {
		return true, 0, nil
	}
	retry := ttl.Val()
	if retry < 0 {
		retry = l.window
	}
	l.log.Warn("login attempts throttled", "key", key, "attempts", incr.Val())
	return false, retry, nil
}

func (l *loginLimiter) Close() error {
	return l.rdb.Close()
}

type noopLimiter struct{}

func (noopLimiter) Allow(context.Context, string) (bool, time.Duration, error) { return true, 0, nil }
func (noopLimiter) Close() error                                               { return nil }
