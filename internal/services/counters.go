package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/kazlearn-backend/internal/data/repos"
	"github.com/yungbote/kazlearn-backend/internal/platform/apierr"
	"github.com/yungbote/kazlearn-backend/internal/platform/dbctx"
	"github.com/yungbote/kazlearn-backend/internal/platform/logger"
)

// CounterService owns the derived user counters. Each recount reads the
// event table it summarises and writes the single column it owns, so a
// counter always equals the row count it describes.
type CounterService interface {
	RecountWordsLearned(dbc dbctx.Context, userID uuid.UUID) (int, error)
	RecountCoursesCompleted(dbc dbctx.Context, userID uuid.UUID) (int, error)
	RecountTrophies(dbc dbctx.Context, userID uuid.UUID) (int, error)
	RecountStreak(dbc dbctx.Context, userID uuid.UUID, now time.Time) (int, error)
}

type counterService struct {
	log            *logger.Logger
	userRepo       repos.UserRepo
	learnedRepo    repos.LearnedWordRepo
	resultRepo     repos.QuizResultRepo
	userTrophyRepo repos.UserTrophyRepo
	activityRepo   repos.ActivityDayRepo
}

func NewCounterService(
	log *logger.Logger,
	userRepo repos.UserRepo,
	learnedRepo repos.LearnedWordRepo,
	resultRepo repos.QuizResultRepo,
	userTrophyRepo repos.UserTrophyRepo,
	activityRepo repos.ActivityDayRepo,
) CounterService {
	return &counterService{
		log:            log.With("service", "CounterService"),
		userRepo:       userRepo,
		learnedRepo:    learnedRepo,
		resultRepo:     resultRepo,
		userTrophyRepo: userTrophyRepo,
		activityRepo:   activityRepo,
	}
}

func (s *counterService) RecountWordsLearned(dbc dbctx.Context, userID uuid.UUID) (int, error) {
	if err := s.lock(dbc, userID); err != nil {
		return 0, err
	}
	n, err := s.learnedRepo.CountByUserID(dbc, userID)
	if err != nil {
		return 0, fmt.Errorf("count learned words: %w", err)
	}
	return s.store(dbc, userID, "total_words_learned", int(n))
}

func (s *counterService) RecountCoursesCompleted(dbc dbctx.Context, userID uuid.UUID) (int, error) {
	if err := s.lock(dbc, userID); err != nil {
		return 0, err
	}
	n, err := s.resultRepo.CountPassedCourses(dbc, userID)
	if err != nil {
		return 0, fmt.Errorf("count passed courses: %w", err)
	}
	return s.store(dbc, userID, "total_courses_completed", int(n))
}

func (s *counterService) RecountTrophies(dbc dbctx.Context, userID uuid.UUID) (int, error) {
	if err := s.lock(dbc, userID); err != nil {
		return 0, err
	}
	n, err := s.userTrophyRepo.CountByUserID(dbc, userID)
	if err != nil {
		return 0, fmt.Errorf("count trophies: %w", err)
	}
	return s.store(dbc, userID, "total_trophies", int(n))
}

func (s *counterService) RecountStreak(dbc dbctx.Context, userID uuid.UUID, now time.Time) (int, error) {
	if err := s.lock(dbc, userID); err != nil {
		return 0, err
	}
	days, err := s.activityRepo.RecentDays(dbc, userID, maxStreakScan)
	if err != nil {
		return 0, fmt.Errorf("load activity days: %w", err)
	}
	return s.store(dbc, userID, "streak_days", streakLength(days, now))
}

// lock serialises recounts for one user. Without it two transactions can
// each count before the other's insert is visible and the later write
// leaves the counter one short.
func (s *counterService) lock(dbc dbctx.Context, userID uuid.UUID) error {
	if dbc.Tx == nil || userID == uuid.Nil {
		return nil
	}
	if err := s.userRepo.LockForUpdate(dbc, userID); err != nil {
		return fmt.Errorf("lock user: %w", apierr.FromDB(err, "user not found"))
	}
	return nil
}

func (s *counterService) store(dbc dbctx.Context, userID uuid.UUID, column string, value int) (int, error) {
	if err := s.userRepo.SetCounter(dbc, userID, column, value); err != nil {
		return 0, fmt.Errorf("store %s: %w", column, err)
	}
	s.log.Debug("counter recomputed", "user_id", userID, "column", column, "value", value)
	return value, nil
}
