package services

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/yungbote/kazlearn-backend/internal/data/repos/testutil"
	types "github.com/yungbote/kazlearn-backend/internal/domain"
	"github.com/yungbote/kazlearn-backend/internal/platform/apierr"
	"github.com/yungbote/kazlearn-backend/internal/platform/dbctx"
)

func (h *harness) reloadUser(t *testing.T, id uuid.UUID) *types.User {
	t.Helper()
	users, err := h.userRepo.GetByIDs(dbctx.Context{Ctx: h.ctx}, []uuid.UUID{id})
	require.NoError(t, err)
	require.Len(t, users, 1)
	return users[0]
}

func (h *harness) countGrants(t *testing.T, id uuid.UUID) int64 {
	t.Helper()
	n, err := h.userTrophyRepo.CountByUserID(dbctx.Context{Ctx: h.ctx}, id)
	require.NoError(t, err)
	return n
}

func threeQuestionCourse(t *testing.T, h *harness) (*types.Course, []*types.QuizQuestion) {
	t.Helper()
	c := testutil.SeedCourse(t, h.ctx, h.db, 1)
	qs := []*types.QuizQuestion{
		testutil.SeedQuestion(t, h.ctx, h.db, c.ID, "42", 1, 1),
		testutil.SeedQuestion(t, h.ctx, h.db, c.ID, "Сәлем", 1, 2),
		testutil.SeedQuestion(t, h.ctx, h.db, c.ID, "9", 1, 3),
	}
	return c, qs
}

func allCorrect(qs []*types.QuizQuestion) map[string]string {
	out := map[string]string{}
	for _, q := range qs {
		out[q.ID.String()] = q.CorrectAnswer
	}
	return out
}

func TestSubmitTwoOfThree(t *testing.T) {
	h := newHarness(t)
	u := testutil.SeedUser(t, h.ctx, h.db, "aidana")
	c, qs := threeQuestionCourse(t, h)

	res, err := h.quiz.Submit(h.ctx, u.ID, c.ID, map[string]string{
		qs[0].ID.String(): "42",
		qs[1].ID.String(): "  СӘЛЕМ\t",
		qs[2].ID.String(): "7",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Score)
	assert.Equal(t, 3, res.TotalPoints)
	assert.Equal(t, 66.67, res.Percentage)
	assert.False(t, res.Passed)
	require.Len(t, res.Results, 3)
	assert.True(t, res.Results[1].Correct)
	assert.False(t, res.Results[2].Correct)
	assert.Equal(t, "9", res.Results[2].CorrectAnswer)

	history, err := h.resultRepo.GetByUserID(dbctx.Context{Ctx: h.ctx}, u.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.False(t, history[0].Passed)
	assert.Equal(t, 0, h.reloadUser(t, u.ID).TotalCoursesCompleted)
}

func TestSubmitZeroPointCourse(t *testing.T) {
	h := newHarness(t)
	u := testutil.SeedUser(t, h.ctx, h.db, "berik")
	c := testutil.SeedCourse(t, h.ctx, h.db, 1)
	testutil.SeedTrophy(t, h.ctx, h.db, types.RequirementPerfectTests, 1)

	res, err := h.quiz.Submit(h.ctx, u.ID, c.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Percentage)
	assert.False(t, res.Passed)
	assert.Empty(t, res.NewTrophies)
	assert.Equal(t, int64(0), h.countGrants(t, u.ID))
}

func TestSubmitPerfectGrantsOnce(t *testing.T) {
	h := newHarness(t)
	u := testutil.SeedUser(t, h.ctx, h.db, "dana")
	perfect := testutil.SeedTrophy(t, h.ctx, h.db, types.RequirementPerfectTests, 1)
	c1, qs1 := threeQuestionCourse(t, h)
	c2 := testutil.SeedCourse(t, h.ctx, h.db, 2)
	q2 := testutil.SeedQuestion(t, h.ctx, h.db, c2.ID, "иә", 2, 1)

	first, err := h.quiz.Submit(h.ctx, u.ID, c1.ID, allCorrect(qs1))
	require.NoError(t, err)
	assert.Equal(t, 100.0, first.Percentage)
	require.Len(t, first.NewTrophies, 1)
	assert.Equal(t, perfect.ID, first.NewTrophies[0].ID)

	again, err := h.quiz.Submit(h.ctx, u.ID, c1.ID, allCorrect(qs1))
	require.NoError(t, err)
	assert.Empty(t, again.NewTrophies)

	other, err := h.quiz.Submit(h.ctx, u.ID, c2.ID, map[string]string{q2.ID.String(): "Иә"})
	require.NoError(t, err)
	assert.True(t, other.Passed)
	assert.Empty(t, other.NewTrophies)

	assert.Equal(t, int64(1), h.countGrants(t, u.ID))
	assert.Equal(t, 1, h.reloadUser(t, u.ID).TotalTrophies)
}

func TestSubmitFirstPassPerCourse(t *testing.T) {
	h := newHarness(t)
	u := testutil.SeedUser(t, h.ctx, h.db, "erlan")
	master := testutil.SeedTrophy(t, h.ctx, h.db, types.RequirementCoursesCompleted, 2)
	x, qx := threeQuestionCourse(t, h)
	y := testutil.SeedCourse(t, h.ctx, h.db, 2)
	qy := testutil.SeedQuestion(t, h.ctx, h.db, y.ID, "бар", 1, 1)

	_, err := h.quiz.Submit(h.ctx, u.ID, x.ID, map[string]string{qx[0].ID.String(): "42"})
	require.NoError(t, err)
	assert.Equal(t, 0, h.reloadUser(t, u.ID).TotalCoursesCompleted, "failed attempt")

	_, err = h.quiz.Submit(h.ctx, u.ID, x.ID, allCorrect(qx))
	require.NoError(t, err)
	assert.Equal(t, 1, h.reloadUser(t, u.ID).TotalCoursesCompleted, "first pass")

	_, err = h.quiz.Submit(h.ctx, u.ID, x.ID, allCorrect(qx))
	require.NoError(t, err)
	assert.Equal(t, 1, h.reloadUser(t, u.ID).TotalCoursesCompleted, "second pass")

	_, err = h.quiz.Submit(h.ctx, u.ID, x.ID, allCorrect(qx))
	require.NoError(t, err)
	assert.Equal(t, 1, h.reloadUser(t, u.ID).TotalCoursesCompleted, "third pass")

	res, err := h.quiz.Submit(h.ctx, u.ID, y.ID, map[string]string{qy.ID.String(): "бар"})
	require.NoError(t, err)
	assert.Equal(t, 2, h.reloadUser(t, u.ID).TotalCoursesCompleted, "other course")
	require.Len(t, res.NewTrophies, 1)
	assert.Equal(t, master.ID, res.NewTrophies[0].ID)

	history, err := h.resultRepo.GetByUserID(dbctx.Context{Ctx: h.ctx}, u.ID)
	require.NoError(t, err)
	assert.Len(t, history, 5)
}

func TestSubmitRejectsAnonymousAndUnknownCourse(t *testing.T) {
	h := newHarness(t)
	u := testutil.SeedUser(t, h.ctx, h.db, "gulnar")

	_, err := h.quiz.Submit(h.ctx, uuid.Nil, uuid.New(), nil)
	assert.True(t, errors.Is(err, apierr.ErrUnauthenticated))

	_, err = h.quiz.Submit(h.ctx, u.ID, uuid.New(), nil)
	assert.True(t, errors.Is(err, apierr.ErrNotFound))

	history, err := h.resultRepo.GetByUserID(dbctx.Context{Ctx: h.ctx}, u.ID)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestListQuestionsHidesCorrectAnswer(t *testing.T) {
	h := newHarness(t)
	c := testutil.SeedCourse(t, h.ctx, h.db, 1)
	q := &types.QuizQuestion{
		CourseID:       c.ID,
		QuestionTextEn: "How many vowels are in the Kazakh alphabet?",
		QuestionType:   types.QuestionMultipleChoice,
		CorrectAnswer:  "9",
		Options:        datatypes.JSON(`["7","8","9","10"]`),
		Points:         1,
		OrderIndex:     1,
	}
	require.NoError(t, h.questionRepo.Upsert(dbctx.Context{Ctx: h.ctx}, []*types.QuizQuestion{q}))

	list, err := h.quiz.ListQuestions(h.ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, []string{"7", "8", "9", "10"}, list[0].Options)

	raw, err := json.Marshal(list)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "correct_answer")

	_, err = h.quiz.ListQuestions(h.ctx, uuid.New())
	assert.True(t, errors.Is(err, apierr.ErrNotFound))
}
