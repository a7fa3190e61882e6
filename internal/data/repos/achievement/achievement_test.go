package achievement

import (
	"context"
	"testing"
	"time"

	"github.com/yungbote/kazlearn-backend/internal/data/repos/testutil"
	types "github.com/yungbote/kazlearn-backend/internal/domain"
	"github.com/yungbote/kazlearn-backend/internal/platform/dbctx"
)

func TestUserTrophyGrantIsIdempotent(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewUserTrophyRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "granted")
	tr := testutil.SeedTrophy(t, ctx, tx, types.RequirementPerfectTests, 1)

	inserted, err := repo.Grant(dbc, u.ID, tr.ID, time.Now())
	if err != nil || !inserted {
		t.Fatalf("Grant(first): err=%v inserted=%v", err, inserted)
	}
	inserted, err = repo.Grant(dbc, u.ID, tr.ID, time.Now())
	if err != nil || inserted {
		t.Fatalf("Grant(repeat): err=%v inserted=%v", err, inserted)
	}
	if n, err := repo.CountByUserID(dbc, u.ID); err != nil || n != 1 {
		t.Fatalf("CountByUserID: err=%v want=1 got=%d", err, n)
	}
}

func TestUserTrophyGetByUserIDNewestFirst(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewUserTrophyRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "collector")
	older := testutil.SeedTrophy(t, ctx, tx, types.RequirementWordsLearned, 1)
	newer := testutil.SeedTrophy(t, ctx, tx, types.RequirementWordsLearned, 10)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	if _, err := repo.Grant(dbc, u.ID, older.ID, base); err != nil {
		t.Fatalf("Grant(older): %v", err)
	}
	if _, err := repo.Grant(dbc, u.ID, newer.ID, base.Add(time.Hour)); err != nil {
		t.Fatalf("Grant(newer): %v", err)
	}

	rows, err := repo.GetByUserID(dbc, u.ID)
	if err != nil || len(rows) != 2 {
		t.Fatalf("GetByUserID: err=%v len=%d", err, len(rows))
	}
	if rows[0].TrophyID != newer.ID {
		t.Fatalf("order: want first=%v got=%v", newer.ID, rows[0].TrophyID)
	}
}

func TestTrophyRepoByRequirementType(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewTrophyRepo(db, testutil.Logger(t))

	testutil.SeedTrophy(t, ctx, tx, types.RequirementWordsLearned, 50)
	testutil.SeedTrophy(t, ctx, tx, types.RequirementWordsLearned, 10)
	testutil.SeedTrophy(t, ctx, tx, types.RequirementStreakDays, 7)

	rows, err := repo.GetByRequirementType(dbc, types.RequirementWordsLearned)
	if err != nil || len(rows) != 2 {
		t.Fatalf("GetByRequirementType: err=%v len=%d", err, len(rows))
	}
	if rows[0].RequirementValue != 10 {
		t.Fatalf("order: want first value=10 got=%d", rows[0].RequirementValue)
	}
	if all, err := repo.List(dbc); err != nil || len(all) != 3 {
		t.Fatalf("List: err=%v len=%d", err, len(all))
	}
}
