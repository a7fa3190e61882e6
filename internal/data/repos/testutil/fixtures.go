package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/yungbote/kazlearn-backend/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, username string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        username + "@example.kz",
		PasswordHash: "pw",
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedCourse(tb testing.TB, ctx context.Context, tx *gorm.DB, order int) *types.Course {
	tb.Helper()
	c := &types.Course{
		ID:         uuid.New(),
		TitleEn:    fmt.Sprintf("Course %d", order),
		TitleKk:    fmt.Sprintf("Курс %d", order),
		TitleRu:    fmt.Sprintf("Курс %d", order),
		Level:      types.LevelBeginner,
		OrderIndex: order,
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed course: %v", err)
	}
	return c
}

func SeedLesson(tb testing.TB, ctx context.Context, tx *gorm.DB, courseID uuid.UUID, order int) *types.Lesson {
	tb.Helper()
	l := &types.Lesson{
		ID:          uuid.New(),
		CourseID:    courseID,
		TitleEn:     fmt.Sprintf("Lesson %d", order),
		TitleKk:     fmt.Sprintf("Сабақ %d", order),
		TitleRu:     fmt.Sprintf("Урок %d", order),
		LessonOrder: order,
	}
	if err := tx.WithContext(ctx).Create(l).Error; err != nil {
		tb.Fatalf("seed lesson: %v", err)
	}
	return l
}

func SeedWord(tb testing.TB, ctx context.Context, tx *gorm.DB, lessonID uuid.UUID, kazakh, english string) *types.Word {
	tb.Helper()
	w := &types.Word{
		ID:       uuid.New(),
		LessonID: lessonID,
		Kazakh:   kazakh,
		English:  english,
		Russian:  english,
		WordType: "noun",
	}
	if err := tx.WithContext(ctx).Create(w).Error; err != nil {
		tb.Fatalf("seed word: %v", err)
	}
	return w
}

func SeedQuestion(tb testing.TB, ctx context.Context, tx *gorm.DB, courseID uuid.UUID, correct string, points, order int) *types.QuizQuestion {
	tb.Helper()
	q := &types.QuizQuestion{
		ID:             uuid.New(),
		CourseID:       courseID,
		QuestionTextEn: fmt.Sprintf("Question %d", order),
		QuestionType:   types.QuestionTranslation,
		CorrectAnswer:  correct,
		Options:        datatypes.JSON([]byte("[]")),
		Points:         points,
		OrderIndex:     order,
	}
	if err := tx.WithContext(ctx).Create(q).Error; err != nil {
		tb.Fatalf("seed question: %v", err)
	}
	return q
}

func SeedTrophy(tb testing.TB, ctx context.Context, tx *gorm.DB, rt types.RequirementType, value int) *types.Trophy {
	tb.Helper()
	tr := &types.Trophy{
		ID:               uuid.New(),
		NameEn:           fmt.Sprintf("%s %d", rt, value),
		NameKk:           fmt.Sprintf("%s %d", rt, value),
		NameRu:           fmt.Sprintf("%s %d", rt, value),
		Icon:             "🏆",
		RequirementType:  rt,
		RequirementValue: value,
	}
	if err := tx.WithContext(ctx).Create(tr).Error; err != nil {
		tb.Fatalf("seed trophy: %v", err)
	}
	return tr
}
