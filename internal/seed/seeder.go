package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/kazlearn-backend/internal/data/repos"
	types "github.com/yungbote/kazlearn-backend/internal/domain"
	"github.com/yungbote/kazlearn-backend/internal/platform/apierr"
	"github.com/yungbote/kazlearn-backend/internal/platform/dbctx"
	"github.com/yungbote/kazlearn-backend/internal/platform/logger"
	"github.com/yungbote/kazlearn-backend/internal/services"
)

type Summary struct {
	Courses   int
	Lessons   int
	Words     int
	Questions int
	Grammar   int
	Trophies  int
	// DemoUser is set when the demo account was created by this run.
	DemoUser bool
}

type Seeder struct {
	db           *gorm.DB
	log          *logger.Logger
	courseRepo   repos.CourseRepo
	lessonRepo   repos.LessonRepo
	wordRepo     repos.WordRepo
	grammarRepo  repos.GrammarRuleRepo
	questionRepo repos.QuizQuestionRepo
	trophyRepo   repos.TrophyRepo
	userRepo     repos.UserRepo
	auth         services.AuthService
}

func NewSeeder(
	db *gorm.DB,
	baseLog *logger.Logger,
	courseRepo repos.CourseRepo,
	lessonRepo repos.LessonRepo,
	wordRepo repos.WordRepo,
	grammarRepo repos.GrammarRuleRepo,
	questionRepo repos.QuizQuestionRepo,
	trophyRepo repos.TrophyRepo,
	userRepo repos.UserRepo,
	auth services.AuthService,
) *Seeder {
	return &Seeder{
		db:           db,
		log:          baseLog.With("component", "Seeder"),
		courseRepo:   courseRepo,
		lessonRepo:   lessonRepo,
		wordRepo:     wordRepo,
		grammarRepo:  grammarRepo,
		questionRepo: questionRepo,
		trophyRepo:   trophyRepo,
		userRepo:     userRepo,
		auth:         auth,
	}
}

// Apply upserts the catalogue in one transaction and recounts
// total_lessons afterwards. The demo user, if any, is registered through
// the auth service once the catalogue is committed.
func (s *Seeder) Apply(ctx context.Context, cat *Catalogue) (*Summary, error) {
	if cat == nil {
		return nil, errors.New("nil catalogue")
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	rows, err := buildRows(cat)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if err := s.courseRepo.Upsert(dbc, rows.courses); err != nil {
			return fmt.Errorf("upsert courses: %w", err)
		}
		if err := s.lessonRepo.Upsert(dbc, rows.lessons); err != nil {
			return fmt.Errorf("upsert lessons: %w", err)
		}
		if err := s.wordRepo.Upsert(dbc, rows.words); err != nil {
			return fmt.Errorf("upsert words: %w", err)
		}
		if err := s.questionRepo.Upsert(dbc, rows.questions); err != nil {
			return fmt.Errorf("upsert questions: %w", err)
		}
		if err := s.grammarRepo.Upsert(dbc, rows.grammar); err != nil {
			return fmt.Errorf("upsert grammar rules: %w", err)
		}
		if err := s.trophyRepo.Upsert(dbc, rows.trophies); err != nil {
			return fmt.Errorf("upsert trophies: %w", err)
		}
		if err := s.courseRepo.RecountLessons(dbc); err != nil {
			return fmt.Errorf("recount lessons: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sum := &Summary{
		Courses:   len(rows.courses),
		Lessons:   len(rows.lessons),
		Words:     len(rows.words),
		Questions: len(rows.questions),
		Grammar:   len(rows.grammar),
		Trophies:  len(rows.trophies),
	}
	if cat.DemoUser != nil && s.auth != nil {
		created, err := s.ensureDemoUser(ctx, cat.DemoUser)
		if err != nil {
			return nil, err
		}
		sum.DemoUser = created
	}
	s.log.Info("Catalogue seeded",
		"courses", sum.Courses,
		"lessons", sum.Lessons,
		"words", sum.Words,
		"questions", sum.Questions,
		"grammar", sum.Grammar,
		"trophies", sum.Trophies,
		"demo_user_created", sum.DemoUser,
	)
	return sum, nil
}

func (s *Seeder) ensureDemoUser(ctx context.Context, du *DemoUserSpec) (bool, error) {
	existing, err := s.userRepo.GetByUsername(dbctx.Context{Ctx: ctx}, du.Username)
	if err != nil {
		return false, fmt.Errorf("lookup demo user: %w", err)
	}
	if existing != nil {
		return false, nil
	}
	_, err = s.auth.Register(ctx, services.RegisterInput{
		Username: du.Username,
		Email:    du.Email,
		Password: du.Password,
	})
	if errors.Is(err, apierr.ErrConflict) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("register demo user: %w", err)
	}
	return true, nil
}

type catalogueRows struct {
	courses   []*types.Course
	lessons   []*types.Lesson
	words     []*types.Word
	questions []*types.QuizQuestion
	grammar   []*types.GrammarRule
	trophies  []*types.Trophy
}

// buildRows assumes the catalogue already passed Validate.
func buildRows(cat *Catalogue) (*catalogueRows, error) {
	out := &catalogueRows{}
	for _, cs := range cat.Courses {
		level, _ := types.ParseLevel(cs.Level)
		course := &types.Course{
			ID:            ID("course", cs.Key),
			TitleEn:       cs.TitleEn,
			TitleKk:       cs.TitleKk,
			TitleRu:       cs.TitleRu,
			DescriptionEn: cs.DescriptionEn,
			DescriptionKk: cs.DescriptionKk,
			DescriptionRu: cs.DescriptionRu,
			Level:         level,
			OrderIndex:    cs.OrderIndex,
		}
		out.courses = append(out.courses, course)

		for _, ls := range cs.Lessons {
			lesson := &types.Lesson{
				ID:          ID("lesson", ls.Key),
				CourseID:    course.ID,
				TitleEn:     ls.TitleEn,
				TitleKk:     ls.TitleKk,
				TitleRu:     ls.TitleRu,
				ContentEn:   ls.ContentEn,
				ContentKk:   ls.ContentKk,
				ContentRu:   ls.ContentRu,
				LessonOrder: ls.LessonOrder,
			}
			out.lessons = append(out.lessons, lesson)
			for _, ws := range ls.Words {
				out.words = append(out.words, &types.Word{
					ID:                ID("word", ls.Key+"/"+ws.Kazakh),
					LessonID:          lesson.ID,
					Kazakh:            ws.Kazakh,
					English:           ws.English,
					Russian:           ws.Russian,
					Pronunciation:     ws.Pronunciation,
					ExampleSentenceKk: ws.ExampleKk,
					ExampleSentenceEn: ws.ExampleEn,
					ExampleSentenceRu: ws.ExampleRu,
					WordType:          ws.WordType,
				})
			}
		}

		for _, qs := range cs.Questions {
			qt, _ := types.ParseQuestionType(qs.Type)
			opts := qs.Options
			if opts == nil {
				opts = []string{}
			}
			raw, err := json.Marshal(opts)
			if err != nil {
				return nil, fmt.Errorf("question %q options: %w", qs.Key, err)
			}
			out.questions = append(out.questions, &types.QuizQuestion{
				ID:             ID("question", qs.Key),
				CourseID:       course.ID,
				QuestionTextEn: qs.TextEn,
				QuestionTextKk: qs.TextKk,
				QuestionTextRu: qs.TextRu,
				QuestionType:   qt,
				CorrectAnswer:  qs.CorrectAnswer,
				Options:        datatypes.JSON(raw),
				Points:         qs.Points,
				OrderIndex:     qs.OrderIndex,
			})
		}
	}

	for _, gs := range cat.Grammar {
		difficulty, _ := types.ParseLevel(gs.Difficulty)
		examples := gs.Examples
		if examples == nil {
			examples = map[string]string{}
		}
		raw, err := json.Marshal(examples)
		if err != nil {
			return nil, fmt.Errorf("grammar %q examples: %w", gs.Key, err)
		}
		out.grammar = append(out.grammar, &types.GrammarRule{
			ID:            ID("grammar", gs.Key),
			Category:      gs.Category,
			TitleEn:       gs.TitleEn,
			TitleKk:       gs.TitleKk,
			TitleRu:       gs.TitleRu,
			ExplanationEn: gs.ExplanationEn,
			ExplanationKk: gs.ExplanationKk,
			ExplanationRu: gs.ExplanationRu,
			Examples:      datatypes.JSON(raw),
			Difficulty:    difficulty,
			OrderIndex:    gs.OrderIndex,
		})
	}

	for _, ts := range cat.Trophies {
		rt, _ := types.ParseRequirementType(ts.RequirementType)
		out.trophies = append(out.trophies, &types.Trophy{
			ID:               ID("trophy", ts.Key),
			NameEn:           ts.NameEn,
			NameKk:           ts.NameKk,
			NameRu:           ts.NameRu,
			DescriptionEn:    ts.DescriptionEn,
			DescriptionKk:    ts.DescriptionKk,
			DescriptionRu:    ts.DescriptionRu,
			Icon:             ts.Icon,
			RequirementType:  rt,
			RequirementValue: ts.RequirementValue,
		})
	}
	return out, nil
}
