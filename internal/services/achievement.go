package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"gorm.io/gorm"

	"github.com/yungbote/kazlearn-backend/internal/data/repos"
	types "github.com/yungbote/kazlearn-backend/internal/domain"
	"github.com/yungbote/kazlearn-backend/internal/domain/achievement"
	"github.com/yungbote/kazlearn-backend/internal/platform/apierr"
	"github.com/yungbote/kazlearn-backend/internal/platform/dbctx"
	"github.com/yungbote/kazlearn-backend/internal/platform/logger"
)

// AchievementEvent is one qualifying event: a requirement kind and the
// magnitude reached (word total, streak length, completed course count, or
// 1 for a perfect test).
type AchievementEvent struct {
	Kind      types.RequirementType
	Magnitude int
}

type AchievementService interface {
	// Evaluate grants every trophy the event satisfies and returns those
	// newly granted. Runs inside dbc.Tx when set, otherwise in its own
	// transaction.
	Evaluate(dbc dbctx.Context, userID uuid.UUID, ev AchievementEvent) ([]*types.Trophy, error)
}

type achievementService struct {
	db             *gorm.DB
	log            *logger.Logger
	trophyRepo     repos.TrophyRepo
	userTrophyRepo repos.UserTrophyRepo
	counters       CounterService
	now            func() time.Time
}

func NewAchievementService(
	db *gorm.DB,
	log *logger.Logger,
	trophyRepo repos.TrophyRepo,
	userTrophyRepo repos.UserTrophyRepo,
	counters CounterService,
) AchievementService {
	return &achievementService{
		db:             db,
		log:            log.With("service", "AchievementService"),
		trophyRepo:     trophyRepo,
		userTrophyRepo: userTrophyRepo,
		counters:       counters,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

func (s *achievementService) Evaluate(dbc dbctx.Context, userID uuid.UUID, ev AchievementEvent) ([]*types.Trophy, error) {
	if userID == uuid.Nil {
		return nil, apierr.Unauthenticated("user required")
	}
	if _, err := achievement.ParseRequirementType(string(ev.Kind)); err != nil {
		return nil, apierr.Validation(err.Error())
	}
	if dbc.Tx != nil {
		return s.evaluate(dbc, userID, ev)
	}

	var granted []*types.Trophy
	err := s.db.WithContext(dbc.Ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		granted, err = s.evaluate(dbctx.Context{Ctx: dbc.Ctx, Tx: tx}, userID, ev)
		return err
	})
	if err != nil {
		return nil, err
	}
	return granted, nil
}

func (s *achievementService) evaluate(dbc dbctx.Context, userID uuid.UUID, ev AchievementEvent) ([]*types.Trophy, error) {
	candidates, err := s.trophyRepo.GetByRequirementType(dbc, ev.Kind)
	if err != nil {
		return nil, fmt.Errorf("load %s trophies: %w", ev.Kind, err)
	}
	qualifying := lo.Filter(candidates, func(t *types.Trophy, _ int) bool {
		return t.SatisfiedBy(ev.Magnitude)
	})
	if len(qualifying) == 0 {
		return nil, nil
	}

	at := s.now()
	granted := make([]*types.Trophy, 0, len(qualifying))
	for _, t := range qualifying {
		inserted, err := s.userTrophyRepo.Grant(dbc, userID, t.ID, at)
		if err != nil {
			return nil, fmt.Errorf("grant trophy %s: %w", t.ID, err)
		}
		if inserted {
			granted = append(granted, t)
		}
	}

	if _, err := s.counters.RecountTrophies(dbc, userID); err != nil {
		return nil, err
	}
	if len(granted) > 0 {
		s.log.Info("trophies granted",
			"user_id", userID,
			"kind", ev.Kind,
			"magnitude", ev.Magnitude,
			"count", len(granted),
		)
	}
	return granted, nil
}
