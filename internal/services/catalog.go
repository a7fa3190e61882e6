package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/yungbote/kazlearn-backend/internal/data/repos"
	types "github.com/yungbote/kazlearn-backend/internal/domain"
	"github.com/yungbote/kazlearn-backend/internal/domain/content"
	"github.com/yungbote/kazlearn-backend/internal/platform/apierr"
	"github.com/yungbote/kazlearn-backend/internal/platform/dbctx"
	"github.com/yungbote/kazlearn-backend/internal/platform/logger"
)

// CourseView carries the viewer's progress only when a viewer is known.
type CourseView struct {
	*types.Course
	CompletedLessons *int `json:"completed_lessons,omitempty"`
	Progress         *int `json:"progress,omitempty"`
}

type CourseDetail struct {
	*types.Course
	Lessons []*types.Lesson `json:"lessons"`
}

type LessonDetail struct {
	*types.Lesson
	Words []*types.Word `json:"words"`
}

type GrammarRuleView struct {
	*types.GrammarRule
	Examples any `json:"examples"`
}

type TrophyView struct {
	*types.Trophy
	Earned bool `json:"earned"`
}

type CatalogService interface {
	ListCourses(ctx context.Context, viewerID uuid.UUID) ([]CourseView, error)
	GetCourse(ctx context.Context, courseID uuid.UUID) (*CourseDetail, error)
	GetLesson(ctx context.Context, lessonID uuid.UUID) (*LessonDetail, error)
	ListGrammar(ctx context.Context, difficulty string) ([]GrammarRuleView, error)
	GetGrammarRule(ctx context.Context, ruleID uuid.UUID) (*GrammarRuleView, error)
	ListTrophies(ctx context.Context, viewerID uuid.UUID) ([]TrophyView, error)
}

type catalogService struct {
	log            *logger.Logger
	courseRepo     repos.CourseRepo
	lessonRepo     repos.LessonRepo
	wordRepo       repos.WordRepo
	grammarRepo    repos.GrammarRuleRepo
	trophyRepo     repos.TrophyRepo
	userTrophyRepo repos.UserTrophyRepo
	progressRepo   repos.LessonProgressRepo
}

func NewCatalogService(
	log *logger.Logger,
	courseRepo repos.CourseRepo,
	lessonRepo repos.LessonRepo,
	wordRepo repos.WordRepo,
	grammarRepo repos.GrammarRuleRepo,
	trophyRepo repos.TrophyRepo,
	userTrophyRepo repos.UserTrophyRepo,
	progressRepo repos.LessonProgressRepo,
) CatalogService {
	return &catalogService{
		log:            log.With("service", "CatalogService"),
		courseRepo:     courseRepo,
		lessonRepo:     lessonRepo,
		wordRepo:       wordRepo,
		grammarRepo:    grammarRepo,
		trophyRepo:     trophyRepo,
		userTrophyRepo: userTrophyRepo,
		progressRepo:   progressRepo,
	}
}

func (s *catalogService) ListCourses(ctx context.Context, viewerID uuid.UUID) ([]CourseView, error) {
	dbc := dbctx.Context{Ctx: ctx}
	courses, err := s.courseRepo.List(dbc)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	out := lo.Map(courses, func(c *types.Course, _ int) CourseView { return CourseView{Course: c} })
	if viewerID == uuid.Nil {
		return out, nil
	}

	completed, err := s.progressRepo.CountCompletedByCourse(dbc, viewerID)
	if err != nil {
		return nil, fmt.Errorf("count completed lessons: %w", err)
	}
	for i := range out {
		done := completed[out[i].ID]
		pct := lessonProgress(done, out[i].TotalLessons)
		out[i].CompletedLessons = &done
		out[i].Progress = &pct
	}
	return out, nil
}

func lessonProgress(done, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(done) / float64(total)))
}

func (s *catalogService) GetCourse(ctx context.Context, courseID uuid.UUID) (*CourseDetail, error) {
	dbc := dbctx.Context{Ctx: ctx}
	courses, err := s.courseRepo.GetByIDs(dbc, []uuid.UUID{courseID})
	if err != nil {
		return nil, fmt.Errorf("load course: %w", err)
	}
	if len(courses) == 0 {
		return nil, apierr.NotFound("course not found")
	}
	lessons, err := s.lessonRepo.GetByCourseID(dbc, courseID)
	if err != nil {
		return nil, fmt.Errorf("load lessons: %w", err)
	}
	return &CourseDetail{Course: courses[0], Lessons: lessons}, nil
}

func (s *catalogService) GetLesson(ctx context.Context, lessonID uuid.UUID) (*LessonDetail, error) {
	dbc := dbctx.Context{Ctx: ctx}
	lessons, err := s.lessonRepo.GetByIDs(dbc, []uuid.UUID{lessonID})
	if err != nil {
		return nil, fmt.Errorf("load lesson: %w", err)
	}
	if len(lessons) == 0 {
		return nil, apierr.NotFound("lesson not found")
	}
	words, err := s.wordRepo.GetByLessonID(dbc, lessonID)
	if err != nil {
		return nil, fmt.Errorf("load words: %w", err)
	}
	return &LessonDetail{Lesson: lessons[0], Words: words}, nil
}

func (s *catalogService) ListGrammar(ctx context.Context, difficulty string) ([]GrammarRuleView, error) {
	var filter *types.Level
	if strings.TrimSpace(difficulty) != "" {
		lvl, err := content.ParseLevel(difficulty)
		if err != nil {
			return nil, apierr.Validation(err.Error())
		}
		filter = &lvl
	}
	rules, err := s.grammarRepo.List(dbctx.Context{Ctx: ctx}, filter)
	if err != nil {
		return nil, fmt.Errorf("list grammar rules: %w", err)
	}
	return lo.Map(rules, func(r *types.GrammarRule, _ int) GrammarRuleView { return grammarView(r) }), nil
}

func (s *catalogService) GetGrammarRule(ctx context.Context, ruleID uuid.UUID) (*GrammarRuleView, error) {
	rules, err := s.grammarRepo.GetByIDs(dbctx.Context{Ctx: ctx}, []uuid.UUID{ruleID})
	if err != nil {
		return nil, fmt.Errorf("load grammar rule: %w", err)
	}
	if len(rules) == 0 {
		return nil, apierr.NotFound("grammar rule not found")
	}
	v := grammarView(rules[0])
	return &v, nil
}

func grammarView(r *types.GrammarRule) GrammarRuleView {
	var examples any = map[string]any{}
	if len(r.Examples) > 0 {
		var decoded any
		if err := json.Unmarshal(r.Examples, &decoded); err == nil && decoded != nil {
			examples = decoded
		}
	}
	return GrammarRuleView{GrammarRule: r, Examples: examples}
}

func (s *catalogService) ListTrophies(ctx context.Context, viewerID uuid.UUID) ([]TrophyView, error) {
	dbc := dbctx.Context{Ctx: ctx}
	trophies, err := s.trophyRepo.List(dbc)
	if err != nil {
		return nil, fmt.Errorf("list trophies: %w", err)
	}
	earned := map[uuid.UUID]bool{}
	if viewerID != uuid.Nil {
		grants, err := s.userTrophyRepo.GetByUserID(dbc, viewerID)
		if err != nil {
			return nil, fmt.Errorf("load grants: %w", err)
		}
		for _, g := range grants {
			earned[g.TrophyID] = true
		}
	}
	return lo.Map(trophies, func(t *types.Trophy, _ int) TrophyView {
		return TrophyView{Trophy: t, Earned: earned[t.ID]}
	}), nil
}
