package services

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/kazlearn-backend/internal/data/repos/testutil"
	types "github.com/yungbote/kazlearn-backend/internal/domain"
	"github.com/yungbote/kazlearn-backend/internal/platform/apierr"
	"github.com/yungbote/kazlearn-backend/internal/platform/dbctx"
)

func TestGetStats(t *testing.T) {
	h := newHarness(t)
	u := testutil.SeedUser(t, h.ctx, h.db, "madina")
	for i := 1; i <= 4; i++ {
		testutil.SeedCourse(t, h.ctx, h.db, 10+i)
	}
	c, qs := threeQuestionCourse(t, h)
	testutil.SeedTrophy(t, h.ctx, h.db, types.RequirementCoursesCompleted, 1)
	testutil.SeedTrophy(t, h.ctx, h.db, types.RequirementPerfectTests, 1)

	_, err := h.quiz.Submit(h.ctx, u.ID, c.ID, allCorrect(qs))
	require.NoError(t, err)

	stats, err := h.users.GetStats(h.ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalCoursesCompleted)
	assert.Equal(t, 2, stats.TotalTrophies)
	assert.Equal(t, 1, stats.StreakDays)
	assert.Equal(t, 20, stats.OverallProgress)
	assert.Len(t, stats.EarnedTrophies, 2)

	_, err = h.users.GetStats(h.ctx, uuid.Nil)
	assert.True(t, errors.Is(err, apierr.ErrUnauthenticated))
}

func TestGetStatsNewestTrophyFirst(t *testing.T) {
	h := newHarness(t)
	u := testutil.SeedUser(t, h.ctx, h.db, "nazym")
	older := testutil.SeedTrophy(t, h.ctx, h.db, types.RequirementGamesWon, 1)
	newer := testutil.SeedTrophy(t, h.ctx, h.db, types.RequirementGamesWon, 2)
	dbc := dbctx.Context{Ctx: h.ctx}
	_, err := h.userTrophyRepo.Grant(dbc, u.ID, older.ID, h.now)
	require.NoError(t, err)
	_, err = h.userTrophyRepo.Grant(dbc, u.ID, newer.ID, h.now.Add(time.Hour))
	require.NoError(t, err)

	stats, err := h.users.GetStats(h.ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, stats.EarnedTrophies, 2)
	assert.Equal(t, newer.ID, stats.EarnedTrophies[0].ID)
	assert.Equal(t, 0, stats.OverallProgress)
}

func TestUpdateProfile(t *testing.T) {
	h := newHarness(t)
	u := testutil.SeedUser(t, h.ctx, h.db, "rustem")
	testutil.SeedUser(t, h.ctx, h.db, "taken")

	theme := " Blue "
	out, err := h.users.Update(h.ctx, u.ID, ProfileUpdate{CurrentTheme: &theme})
	require.NoError(t, err)
	assert.Equal(t, "blue", out.CurrentTheme)
	assert.Equal(t, "rustem", out.Username)

	dup := "taken"
	_, err = h.users.Update(h.ctx, u.ID, ProfileUpdate{Username: &dup})
	assert.True(t, errors.Is(err, apierr.ErrConflict))

	same := "rustem"
	_, err = h.users.Update(h.ctx, u.ID, ProfileUpdate{Username: &same})
	assert.NoError(t, err, "keeping own username is not a conflict")

	empty := "  "
	_, err = h.users.Update(h.ctx, u.ID, ProfileUpdate{Username: &empty})
	assert.True(t, errors.Is(err, apierr.ErrValidation))

	_, err = h.users.Update(h.ctx, uuid.New(), ProfileUpdate{})
	assert.True(t, errors.Is(err, apierr.ErrNotFound))
}

func TestUpdateIdentityRevokesOtherSessions(t *testing.T) {
	h := newHarness(t)
	u, err := h.auth.Register(h.ctx, RegisterInput{Username: "dana", Email: "dana@kazakh.learn", Password: "password123"})
	require.NoError(t, err)
	phone, err := h.auth.Login(h.ctx, "dana", "password123")
	require.NoError(t, err)
	laptop, err := h.auth.Login(h.ctx, "dana", "password123")
	require.NoError(t, err)

	reqCtx, err := h.auth.SetContextFromToken(h.ctx, laptop.AccessToken)
	require.NoError(t, err)

	theme := "green"
	_, err = h.users.Update(reqCtx, u.ID, ProfileUpdate{CurrentTheme: &theme})
	require.NoError(t, err)
	_, err = h.auth.SetContextFromToken(h.ctx, phone.AccessToken)
	require.NoError(t, err, "theme change keeps sessions")

	email := "dana@new.kz"
	_, err = h.users.Update(reqCtx, u.ID, ProfileUpdate{Email: &email})
	require.NoError(t, err)

	_, err = h.auth.SetContextFromToken(h.ctx, phone.AccessToken)
	assert.True(t, errors.Is(err, apierr.ErrUnauthenticated), "other session revoked")
	_, err = h.auth.SetContextFromToken(h.ctx, laptop.AccessToken)
	assert.NoError(t, err, "current session kept")

	rows, err := h.userTokenRepo.GetByUserIDs(dbctx.Context{Ctx: h.ctx}, []uuid.UUID{u.ID})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
