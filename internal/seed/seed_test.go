package seed

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yungbote/kazlearn-backend/internal/data/repos"
	"github.com/yungbote/kazlearn-backend/internal/data/repos/testutil"
	types "github.com/yungbote/kazlearn-backend/internal/domain"
	"github.com/yungbote/kazlearn-backend/internal/services"
)

func newSeeder(t *testing.T) (*Seeder, *gorm.DB) {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	userRepo := repos.NewUserRepo(db, log)
	auth := services.NewAuthService(db, log, userRepo, repos.NewUserTokenRepo(db, log), "seed-secret", time.Minute, time.Hour)
	s := NewSeeder(db, log,
		repos.NewCourseRepo(db, log),
		repos.NewLessonRepo(db, log),
		repos.NewWordRepo(db, log),
		repos.NewGrammarRuleRepo(db, log),
		repos.NewQuizQuestionRepo(db, log),
		repos.NewTrophyRepo(db, log),
		userRepo,
		auth,
	)
	return s, db
}

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestDefaultCatalogueParses(t *testing.T) {
	cat, err := Default()
	require.NoError(t, err)
	assert.Len(t, cat.Courses, 6)
	assert.Len(t, cat.Grammar, 3)
	assert.Len(t, cat.Trophies, 8)
	require.NotNil(t, cat.DemoUser)
	assert.Equal(t, "Student123", cat.DemoUser.Username)
}

func TestApplyIsIdempotent(t *testing.T) {
	s, db := newSeeder(t)
	ctx := context.Background()
	cat, err := Default()
	require.NoError(t, err)

	first, err := s.Apply(ctx, cat)
	require.NoError(t, err)
	assert.True(t, first.DemoUser)
	assert.Equal(t, 6, first.Words)

	second, err := s.Apply(ctx, cat)
	require.NoError(t, err)
	assert.False(t, second.DemoUser)

	assert.EqualValues(t, 6, countRows(t, db, &types.Course{}))
	assert.EqualValues(t, 3, countRows(t, db, &types.Lesson{}))
	assert.EqualValues(t, 6, countRows(t, db, &types.Word{}))
	assert.EqualValues(t, 3, countRows(t, db, &types.QuizQuestion{}))
	assert.EqualValues(t, 3, countRows(t, db, &types.GrammarRule{}))
	assert.EqualValues(t, 8, countRows(t, db, &types.Trophy{}))
	assert.EqualValues(t, 1, countRows(t, db, &types.User{}))
}

func TestApplyRecountsLessons(t *testing.T) {
	s, db := newSeeder(t)
	cat, err := Default()
	require.NoError(t, err)
	_, err = s.Apply(context.Background(), cat)
	require.NoError(t, err)

	var alphabet, greetings types.Course
	require.NoError(t, db.First(&alphabet, "id = ?", ID("course", "alphabet")).Error)
	require.NoError(t, db.First(&greetings, "id = ?", ID("course", "greetings")).Error)
	assert.Equal(t, 3, alphabet.TotalLessons)
	assert.Equal(t, 0, greetings.TotalLessons)
}

func TestApplyUpdatesInPlace(t *testing.T) {
	s, db := newSeeder(t)
	ctx := context.Background()
	cat, err := Default()
	require.NoError(t, err)
	cat.DemoUser = nil
	_, err = s.Apply(ctx, cat)
	require.NoError(t, err)

	cat.Courses[0].TitleEn = "Alphabet (revised)"
	_, err = s.Apply(ctx, cat)
	require.NoError(t, err)

	var c types.Course
	require.NoError(t, db.First(&c, "id = ?", ID("course", "alphabet")).Error)
	assert.Equal(t, "Alphabet (revised)", c.TitleEn)
	assert.EqualValues(t, 0, countRows(t, db, &types.User{}))
}

func TestIDIsDeterministic(t *testing.T) {
	assert.Equal(t, ID("course", "alphabet"), ID("course", "alphabet"))
	assert.NotEqual(t, ID("course", "alphabet"), ID("lesson", "alphabet"))
	assert.NotEqual(t, uuid.Nil, ID("trophy", "legend"))
}

func TestParseRejectsInvalidCatalogues(t *testing.T) {
	cases := map[string]string{
		"duplicate course": `
courses:
  - {key: a, title_en: A, title_kk: A, title_ru: A, level: beginner}
  - {key: a, title_en: B, title_kk: B, title_ru: B, level: beginner}
`,
		"unknown level": `
courses:
  - {key: a, title_en: A, title_kk: A, title_ru: A, level: expert}
`,
		"unknown requirement": `
trophies:
  - {key: t, name_en: T, name_kk: T, name_ru: T, requirement_type: logins, requirement_value: 1}
`,
		"unknown question type": `
courses:
  - key: a
    title_en: A
    title_kk: A
    title_ru: A
    level: beginner
    questions:
      - {key: q, text_en: Q, type: essay, correct_answer: x, points: 1}
`,
		"unknown field": `
courses:
  - {key: a, title: A, level: beginner}
`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(doc))
			assert.Error(t, err)
		})
	}
}
