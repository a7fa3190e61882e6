package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/kazlearn-backend/internal/data/repos"
	types "github.com/yungbote/kazlearn-backend/internal/domain"
	"github.com/yungbote/kazlearn-backend/internal/domain/progress"
	"github.com/yungbote/kazlearn-backend/internal/platform/apierr"
	"github.com/yungbote/kazlearn-backend/internal/platform/dbctx"
	"github.com/yungbote/kazlearn-backend/internal/platform/logger"
)

type LessonCompletion struct {
	LessonID    uuid.UUID       `json:"lesson_id"`
	CourseID    uuid.UUID       `json:"course_id"`
	CompletedAt time.Time       `json:"completed_at"`
	NewTrophies []*types.Trophy `json:"new_trophies"`
}

type WordLearned struct {
	WordID            uuid.UUID       `json:"word_id"`
	Proficiency       int             `json:"proficiency"`
	TotalWordsLearned int             `json:"total_words_learned"`
	NewTrophies       []*types.Trophy `json:"new_trophies"`
}

type LearnedWordView struct {
	*types.Word
	Proficiency int       `json:"proficiency"`
	LearnedAt   time.Time `json:"learned_at"`
}

type ProgressService interface {
	CompleteLesson(ctx context.Context, userID, lessonID uuid.UUID) (*LessonCompletion, error)
	// LearnWord upserts the learned-word record. proficiency 0 means the
	// default level.
	LearnWord(ctx context.Context, userID, wordID uuid.UUID, proficiency int) (*WordLearned, error)
	ListLearnedWords(ctx context.Context, userID uuid.UUID) ([]*LearnedWordView, error)
}

type progressService struct {
	db           *gorm.DB
	log          *logger.Logger
	lessonRepo   repos.LessonRepo
	wordRepo     repos.WordRepo
	progressRepo repos.LessonProgressRepo
	learnedRepo  repos.LearnedWordRepo
	counters     CounterService
	achievements AchievementService
	streaks      StreakService
	now          func() time.Time
}

func NewProgressService(
	db *gorm.DB,
	log *logger.Logger,
	lessonRepo repos.LessonRepo,
	wordRepo repos.WordRepo,
	progressRepo repos.LessonProgressRepo,
	learnedRepo repos.LearnedWordRepo,
	counters CounterService,
	achievements AchievementService,
	streaks StreakService,
) ProgressService {
	return &progressService{
		db:           db,
		log:          log.With("service", "ProgressService"),
		lessonRepo:   lessonRepo,
		wordRepo:     wordRepo,
		progressRepo: progressRepo,
		learnedRepo:  learnedRepo,
		counters:     counters,
		achievements: achievements,
		streaks:      streaks,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *progressService) CompleteLesson(ctx context.Context, userID, lessonID uuid.UUID) (*LessonCompletion, error) {
	if userID == uuid.Nil {
		return nil, apierr.Unauthenticated("login required")
	}
	var out *LessonCompletion
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		lessons, err := s.lessonRepo.GetByIDs(dbc, []uuid.UUID{lessonID})
		if err != nil {
			return fmt.Errorf("load lesson: %w", err)
		}
		if len(lessons) == 0 {
			return apierr.NotFound("lesson not found")
		}
		lesson := lessons[0]

		row, err := s.progressRepo.MarkCompleted(dbc, userID, lesson.ID, lesson.CourseID, s.now())
		if err != nil {
			return fmt.Errorf("mark lesson completed: %w", err)
		}
		trophies, err := s.streaks.Touch(dbc, userID)
		if err != nil {
			return err
		}
		completedAt := s.now()
		if row != nil && row.CompletedAt != nil {
			completedAt = *row.CompletedAt
		}
		out = &LessonCompletion{
			LessonID:    lesson.ID,
			CourseID:    lesson.CourseID,
			CompletedAt: completedAt,
			NewTrophies: nonNilTrophies(trophies),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Debug("lesson completed", "user_id", userID, "lesson_id", lessonID)
	return out, nil
}

func (s *progressService) LearnWord(ctx context.Context, userID, wordID uuid.UUID, proficiency int) (*WordLearned, error) {
	if userID == uuid.Nil {
		return nil, apierr.Unauthenticated("login required")
	}
	if wordID == uuid.Nil {
		return nil, apierr.Validation("word_id is required")
	}
	if proficiency == 0 {
		proficiency = progress.MinProficiency
	}
	if proficiency < progress.MinProficiency || proficiency > progress.MaxProficiency {
		return nil, apierr.Validation(fmt.Sprintf("proficiency must be between %d and %d", progress.MinProficiency, progress.MaxProficiency))
	}

	var out *WordLearned
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		words, err := s.wordRepo.GetByIDs(dbc, []uuid.UUID{wordID})
		if err != nil {
			return fmt.Errorf("load word: %w", err)
		}
		if len(words) == 0 {
			return apierr.NotFound("word not found")
		}
		if err := s.learnedRepo.Upsert(dbc, userID, wordID, proficiency, s.now()); err != nil {
			return fmt.Errorf("upsert learned word: %w", err)
		}
		total, err := s.counters.RecountWordsLearned(dbc, userID)
		if err != nil {
			return err
		}
		granted, err := s.achievements.Evaluate(dbc, userID, AchievementEvent{Kind: types.RequirementWordsLearned, Magnitude: total})
		if err != nil {
			return err
		}
		streakTrophies, err := s.streaks.Touch(dbc, userID)
		if err != nil {
			return err
		}
		out = &WordLearned{
			WordID:            wordID,
			Proficiency:       proficiency,
			TotalWordsLearned: total,
			NewTrophies:       nonNilTrophies(append(granted, streakTrophies...)),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *progressService) ListLearnedWords(ctx context.Context, userID uuid.UUID) ([]*LearnedWordView, error) {
	if userID == uuid.Nil {
		return nil, apierr.Unauthenticated("login required")
	}
	dbc := dbctx.Context{Ctx: ctx}
	learned, err := s.learnedRepo.GetByUserID(dbc, userID)
	if err != nil {
		return nil, fmt.Errorf("load learned words: %w", err)
	}
	if len(learned) == 0 {
		return []*LearnedWordView{}, nil
	}
	ids := make([]uuid.UUID, 0, len(learned))
	for _, lw := range learned {
		ids = append(ids, lw.WordID)
	}
	words, err := s.wordRepo.GetByIDs(dbc, ids)
	if err != nil {
		return nil, fmt.Errorf("load words: %w", err)
	}
	byID := make(map[uuid.UUID]*types.Word, len(words))
	for _, w := range words {
		byID[w.ID] = w
	}

	out := make([]*LearnedWordView, 0, len(learned))
	for _, lw := range learned {
		w, ok := byID[lw.WordID]
		if !ok {
			continue
		}
		out = append(out, &LearnedWordView{Word: w, Proficiency: lw.Proficiency, LearnedAt: lw.LearnedAt})
	}
	return out, nil
}

func nonNilTrophies(in []*types.Trophy) []*types.Trophy {
	if in == nil {
		return []*types.Trophy{}
	}
	return in
}
