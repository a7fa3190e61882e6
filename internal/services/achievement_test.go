package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/kazlearn-backend/internal/data/repos/testutil"
	types "github.com/yungbote/kazlearn-backend/internal/domain"
	"github.com/yungbote/kazlearn-backend/internal/platform/apierr"
	"github.com/yungbote/kazlearn-backend/internal/platform/dbctx"
)

func TestEvaluateThresholds(t *testing.T) {
	h := newHarness(t)
	u := testutil.SeedUser(t, h.ctx, h.db, "marat")
	hundred := testutil.SeedTrophy(t, h.ctx, h.db, types.RequirementWordsLearned, 100)
	testutil.SeedTrophy(t, h.ctx, h.db, types.RequirementWordsLearned, 1000)
	testutil.SeedTrophy(t, h.ctx, h.db, types.RequirementStreakDays, 7)

	dbc := dbctx.Context{Ctx: h.ctx}
	granted, err := h.achievements.Evaluate(dbc, u.ID, AchievementEvent{Kind: types.RequirementWordsLearned, Magnitude: 99})
	require.NoError(t, err)
	assert.Empty(t, granted)
	assert.Equal(t, int64(0), h.countGrants(t, u.ID))

	granted, err = h.achievements.Evaluate(dbc, u.ID, AchievementEvent{Kind: types.RequirementWordsLearned, Magnitude: 100})
	require.NoError(t, err)
	require.Len(t, granted, 1)
	assert.Equal(t, hundred.ID, granted[0].ID)
	assert.Equal(t, 1, h.reloadUser(t, u.ID).TotalTrophies)
}

func TestEvaluateIsIdempotent(t *testing.T) {
	h := newHarness(t)
	u := testutil.SeedUser(t, h.ctx, h.db, "nurlan")
	testutil.SeedTrophy(t, h.ctx, h.db, types.RequirementStreakDays, 7)
	dbc := dbctx.Context{Ctx: h.ctx}

	for i := 0; i < 3; i++ {
		_, err := h.achievements.Evaluate(dbc, u.ID, AchievementEvent{Kind: types.RequirementStreakDays, Magnitude: 10})
		require.NoError(t, err)
	}
	assert.Equal(t, int64(1), h.countGrants(t, u.ID))
	assert.Equal(t, 1, h.reloadUser(t, u.ID).TotalTrophies)
}

func TestEvaluatePerfectIsAFlag(t *testing.T) {
	h := newHarness(t)
	u := testutil.SeedUser(t, h.ctx, h.db, "olzhas")
	testutil.SeedTrophy(t, h.ctx, h.db, types.RequirementPerfectTests, 1)
	testutil.SeedTrophy(t, h.ctx, h.db, types.RequirementPerfectTests, 5)

	granted, err := h.achievements.Evaluate(dbctx.Context{Ctx: h.ctx}, u.ID, AchievementEvent{Kind: types.RequirementPerfectTests, Magnitude: 1})
	require.NoError(t, err)
	assert.Len(t, granted, 2)
}

func TestEvaluateGamesWonWithoutProducer(t *testing.T) {
	h := newHarness(t)
	u := testutil.SeedUser(t, h.ctx, h.db, "saule")
	testutil.SeedTrophy(t, h.ctx, h.db, types.RequirementGamesWon, 1)

	granted, err := h.achievements.Evaluate(dbctx.Context{Ctx: h.ctx}, u.ID, AchievementEvent{Kind: types.RequirementGamesWon, Magnitude: 1})
	require.NoError(t, err)
	assert.Len(t, granted, 1)
}

func TestEvaluateRejectsBadInput(t *testing.T) {
	h := newHarness(t)
	u := testutil.SeedUser(t, h.ctx, h.db, "timur")
	dbc := dbctx.Context{Ctx: h.ctx}

	_, err := h.achievements.Evaluate(dbc, uuid.Nil, AchievementEvent{Kind: types.RequirementWordsLearned, Magnitude: 1})
	assert.True(t, errors.Is(err, apierr.ErrUnauthenticated))

	_, err = h.achievements.Evaluate(dbc, u.ID, AchievementEvent{Kind: "games_lost", Magnitude: 1})
	assert.True(t, errors.Is(err, apierr.ErrValidation))
}

func TestEvaluateRollsBackWithCallerTx(t *testing.T) {
	h := newHarness(t)
	u := testutil.SeedUser(t, h.ctx, h.db, "ulan")
	testutil.SeedTrophy(t, h.ctx, h.db, types.RequirementWordsLearned, 1)

	tx := h.db.Begin()
	require.NoError(t, tx.Error)
	granted, err := h.achievements.Evaluate(dbctx.Context{Ctx: h.ctx, Tx: tx}, u.ID, AchievementEvent{Kind: types.RequirementWordsLearned, Magnitude: 1})
	require.NoError(t, err)
	require.Len(t, granted, 1)
	require.NoError(t, tx.Rollback().Error)

	assert.Equal(t, int64(0), h.countGrants(t, u.ID))
	assert.Equal(t, 0, h.reloadUser(t, u.ID).TotalTrophies)
}
