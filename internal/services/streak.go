package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/kazlearn-backend/internal/data/repos"
	types "github.com/yungbote/kazlearn-backend/internal/domain"
	"github.com/yungbote/kazlearn-backend/internal/platform/dbctx"
	"github.com/yungbote/kazlearn-backend/internal/platform/logger"
)

type StreakService interface {
	// Touch records today as an activity day, recomputes streak_days and
	// evaluates streak trophies. Must run inside the caller's transaction.
	Touch(dbc dbctx.Context, userID uuid.UUID) ([]*types.Trophy, error)
	// RefreshAll recomputes the streak of every user whose stored streak is
	// non-zero, so lapsed streaks fall back to 0.
	RefreshAll(ctx context.Context) (int, error)
}

type streakService struct {
	db           *gorm.DB
	log          *logger.Logger
	userRepo     repos.UserRepo
	activityRepo repos.ActivityDayRepo
	counters     CounterService
	achievements AchievementService
	now          func() time.Time
}

func NewStreakService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	activityRepo repos.ActivityDayRepo,
	counters CounterService,
	achievements AchievementService,
) StreakService {
	return &streakService{
		db:           db,
		log:          log.With("service", "StreakService"),
		userRepo:     userRepo,
		activityRepo: activityRepo,
		counters:     counters,
		achievements: achievements,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *streakService) Touch(dbc dbctx.Context, userID uuid.UUID) ([]*types.Trophy, error) {
	now := s.now()
	if err := s.activityRepo.Record(dbc, userID, now); err != nil {
		return nil, fmt.Errorf("record activity: %w", err)
	}
	streak, err := s.counters.RecountStreak(dbc, userID, now)
	if err != nil {
		return nil, err
	}
	return s.achievements.Evaluate(dbc, userID, AchievementEvent{Kind: types.RequirementStreakDays, Magnitude: streak})
}

func (s *streakService) RefreshAll(ctx context.Context) (int, error) {
	ids, err := s.userRepo.ListIDsWithStreak(dbctx.Context{Ctx: ctx})
	if err != nil {
		return 0, fmt.Errorf("list streak users: %w", err)
	}
	now := s.now()
	reset := 0
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return reset, err
		}
		var streak int
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var err error
			streak, err = s.counters.RecountStreak(dbctx.Context{Ctx: ctx, Tx: tx}, id, now)
			return err
		})
		if err != nil {
			s.log.Warn("streak refresh failed", "user_id", id, "error", err)
			continue
		}
		if streak == 0 {
			reset++
		}
	}
	s.log.Info("streaks refreshed", "users", len(ids), "reset", reset)
	return reset, nil
}
