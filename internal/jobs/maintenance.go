package jobs

import (
	"context"
	"time"

	"github.com/yungbote/kazlearn-backend/internal/platform/logger"
	"github.com/yungbote/kazlearn-backend/internal/services"
)

const (
	JobStreakRefresh = "streak_refresh"
	JobTokenPurge    = "token_purge"
)

// StreakRefreshJob zeroes streaks that lapsed since the last activity.
func StreakRefreshJob(log *logger.Logger, streaks services.StreakService, cron string) Job {
	return Job{
		Name:    JobStreakRefresh,
		Cron:    cron,
		Timeout: 10 * time.Minute,
		Run: func(ctx context.Context) error {
			reset, err := streaks.RefreshAll(ctx)
			if err != nil {
				return err
			}
			log.Info("Streaks refreshed", "reset", reset)
			return nil
		},
	}
}

// TokenPurgeJob deletes token rows whose refresh token has expired.
func TokenPurgeJob(log *logger.Logger, auth services.AuthService, cron string) Job {
	return Job{
		Name:    JobTokenPurge,
		Cron:    cron,
		Timeout: 5 * time.Minute,
		Run: func(ctx context.Context) error {
			n, err := auth.PurgeExpiredTokens(ctx)
			if err != nil {
				return err
			}
			log.Info("Expired tokens purged", "deleted", n)
			return nil
		},
	}
}
