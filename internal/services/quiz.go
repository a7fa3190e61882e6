package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"gorm.io/gorm"

	"github.com/yungbote/kazlearn-backend/internal/data/repos"
	types "github.com/yungbote/kazlearn-backend/internal/domain"
	"github.com/yungbote/kazlearn-backend/internal/platform/apierr"
	"github.com/yungbote/kazlearn-backend/internal/platform/dbctx"
	"github.com/yungbote/kazlearn-backend/internal/platform/logger"
)

// PublicQuestion is a quiz question as shown before grading. It has no
// correct answer field.
type PublicQuestion struct {
	ID             uuid.UUID          `json:"id"`
	QuestionTextEn string             `json:"question_text_en"`
	QuestionTextKk string             `json:"question_text_kk"`
	QuestionTextRu string             `json:"question_text_ru"`
	QuestionType   types.QuestionType `json:"question_type"`
	Options        []string           `json:"options"`
	Points         int                `json:"points"`
}

type QuizSubmission struct {
	ResultID    uuid.UUID        `json:"result_id"`
	Score       int              `json:"score"`
	TotalPoints int              `json:"total_points"`
	Percentage  float64          `json:"percentage"`
	Passed      bool             `json:"passed"`
	Results     []QuestionResult `json:"results"`
	NewTrophies []*types.Trophy  `json:"new_trophies"`
}

type QuizService interface {
	ListQuestions(ctx context.Context, courseID uuid.UUID) ([]PublicQuestion, error)
	Submit(ctx context.Context, userID, courseID uuid.UUID, answers map[string]string) (*QuizSubmission, error)
}

type quizService struct {
	db           *gorm.DB
	log          *logger.Logger
	courseRepo   repos.CourseRepo
	questionRepo repos.QuizQuestionRepo
	resultRepo   repos.QuizResultRepo
	counters     CounterService
	achievements AchievementService
	streaks      StreakService
	now          func() time.Time
}

func NewQuizService(
	db *gorm.DB,
	log *logger.Logger,
	courseRepo repos.CourseRepo,
	questionRepo repos.QuizQuestionRepo,
	resultRepo repos.QuizResultRepo,
	counters CounterService,
	achievements AchievementService,
	streaks StreakService,
) QuizService {
	return &quizService{
		db:           db,
		log:          log.With("service", "QuizService"),
		courseRepo:   courseRepo,
		questionRepo: questionRepo,
		resultRepo:   resultRepo,
		counters:     counters,
		achievements: achievements,
		streaks:      streaks,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *quizService) ListQuestions(ctx context.Context, courseID uuid.UUID) ([]PublicQuestion, error) {
	dbc := dbctx.Context{Ctx: ctx}
	if err := s.requireCourse(dbc, courseID); err != nil {
		return nil, err
	}
	questions, err := s.questionRepo.GetByCourseID(dbc, courseID)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	return lo.Map(questions, func(q *types.QuizQuestion, _ int) PublicQuestion {
		return PublicQuestion{
			ID:             q.ID,
			QuestionTextEn: q.QuestionTextEn,
			QuestionTextKk: q.QuestionTextKk,
			QuestionTextRu: q.QuestionTextRu,
			QuestionType:   q.QuestionType,
			Options:        decodeOptions(q.Options),
			Points:         q.Points,
		}
	}), nil
}

// Submit grades answers against every question of the course and applies
// the downstream effects in one transaction: the result row, the streak,
// a perfect_tests event on 100%, and a courses_completed event on the first
// passing result for the course.
func (s *quizService) Submit(ctx context.Context, userID, courseID uuid.UUID, answers map[string]string) (*QuizSubmission, error) {
	if userID == uuid.Nil {
		return nil, apierr.Unauthenticated("login required")
	}

	var out *QuizSubmission
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if err := s.requireCourse(dbc, courseID); err != nil {
			return err
		}
		questions, err := s.questionRepo.GetByCourseID(dbc, courseID)
		if err != nil {
			return fmt.Errorf("load questions: %w", err)
		}
		g := grade(questions, answers)

		hadPass, err := s.resultRepo.HasPassed(dbc, userID, courseID)
		if err != nil {
			return fmt.Errorf("check prior pass: %w", err)
		}

		created, err := s.resultRepo.Create(dbc, []*types.QuizResult{{
			UserID:      userID,
			CourseID:    courseID,
			Score:       g.Score,
			TotalPoints: g.TotalPoints,
			Percentage:  g.Percentage,
			Passed:      g.Passed,
			CompletedAt: s.now(),
		}})
		if err != nil {
			return fmt.Errorf("store result: %w", err)
		}

		trophies, err := s.streaks.Touch(dbc, userID)
		if err != nil {
			return err
		}
		if g.Perfect {
			granted, err := s.achievements.Evaluate(dbc, userID, AchievementEvent{Kind: types.RequirementPerfectTests, Magnitude: 1})
			if err != nil {
				return err
			}
			trophies = append(trophies, granted...)
		}
		if g.Passed && !hadPass {
			completed, err := s.counters.RecountCoursesCompleted(dbc, userID)
			if err != nil {
				return err
			}
			granted, err := s.achievements.Evaluate(dbc, userID, AchievementEvent{Kind: types.RequirementCoursesCompleted, Magnitude: completed})
			if err != nil {
				return err
			}
			trophies = append(trophies, granted...)
		}

		out = &QuizSubmission{
			ResultID:    created[0].ID,
			Score:       g.Score,
			TotalPoints: g.TotalPoints,
			Percentage:  roundPercentage(g.Percentage),
			Passed:      g.Passed,
			Results:     g.Results,
			NewTrophies: nonNilTrophies(trophies),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("quiz submitted",
		"user_id", userID,
		"course_id", courseID,
		"score", out.Score,
		"total_points", out.TotalPoints,
		"passed", out.Passed,
	)
	return out, nil
}

func (s *quizService) requireCourse(dbc dbctx.Context, courseID uuid.UUID) error {
	courses, err := s.courseRepo.GetByIDs(dbc, []uuid.UUID{courseID})
	if err != nil {
		return fmt.Errorf("load course: %w", err)
	}
	if len(courses) == 0 {
		return apierr.NotFound("course not found")
	}
	return nil
}

func decodeOptions(raw []byte) []string {
	out := []string{}
	if len(raw) == 0 {
		return out
	}
	if err := json.Unmarshal(raw, &out); err != nil || out == nil {
		return []string{}
	}
	return out
}
