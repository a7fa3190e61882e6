package user

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/kazlearn-backend/internal/data/repos/testutil"
	types "github.com/yungbote/kazlearn-backend/internal/domain"
	"github.com/yungbote/kazlearn-backend/internal/platform/dbctx"
)

func TestUserRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewUserRepo(db, testutil.Logger(t))

	u := &types.User{Username: "aigerim", Email: "aigerim@example.kz", PasswordHash: "x"}
	if _, err := repo.Create(dbc, []*types.User{u}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.ID == uuid.Nil {
		t.Fatalf("Create: id not assigned")
	}

	rows, err := repo.GetByIDs(dbc, []uuid.UUID{u.ID})
	if err != nil || len(rows) != 1 {
		t.Fatalf("GetByIDs: err=%v len=%d", err, len(rows))
	}
	if rows[0].CurrentTheme != "purple" {
		t.Fatalf("default theme: want=purple got=%q", rows[0].CurrentTheme)
	}

	got, err := repo.GetByUsername(dbc, "aigerim")
	if err != nil || got == nil || got.ID != u.ID {
		t.Fatalf("GetByUsername: err=%v got=%v", err, got)
	}
	if missing, err := repo.GetByUsername(dbc, "nobody"); err != nil || missing != nil {
		t.Fatalf("GetByUsername(missing): err=%v got=%v", err, missing)
	}

	if taken, err := repo.UsernameOrEmailTaken(dbc, uuid.Nil, "aigerim", ""); err != nil || !taken {
		t.Fatalf("UsernameOrEmailTaken(username): err=%v taken=%v", err, taken)
	}
	if taken, err := repo.UsernameOrEmailTaken(dbc, u.ID, "aigerim", "aigerim@example.kz"); err != nil || taken {
		t.Fatalf("UsernameOrEmailTaken(self): err=%v taken=%v", err, taken)
	}

	if err := repo.UpdateProfile(dbc, u.ID, map[string]interface{}{
		"current_theme":  "blue",
		"total_trophies": 99,
	}); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if err := repo.SetCounter(dbc, u.ID, "streak_days", 3); err != nil {
		t.Fatalf("SetCounter: %v", err)
	}
	if err := repo.SetCounter(dbc, u.ID, "username", 3); err == nil {
		t.Fatalf("SetCounter(username): expected error")
	}

	rows, _ = repo.GetByIDs(dbc, []uuid.UUID{u.ID})
	if rows[0].CurrentTheme != "blue" {
		t.Fatalf("theme: want=blue got=%q", rows[0].CurrentTheme)
	}
	if rows[0].TotalTrophies != 0 {
		t.Fatalf("counter must not change via profile update: got=%d", rows[0].TotalTrophies)
	}
	if rows[0].StreakDays != 3 {
		t.Fatalf("streak_days: want=3 got=%d", rows[0].StreakDays)
	}

	ids, err := repo.ListIDsWithStreak(dbc)
	if err != nil || len(ids) != 1 || ids[0] != u.ID {
		t.Fatalf("ListIDsWithStreak: err=%v ids=%v", err, ids)
	}
}

func TestUserRepoLockForUpdate(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
	repo := NewUserRepo(db, testutil.Logger(t))

	u := &types.User{Username: "erlan", Email: "erlan@example.kz", PasswordHash: "x"}
	if _, err := repo.Create(dbc, []*types.User{u}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.LockForUpdate(dbc, u.ID); err != nil {
		t.Fatalf("LockForUpdate: %v", err)
	}
	if err := repo.SetCounter(dbc, u.ID, "total_words_learned", 2); err != nil {
		t.Fatalf("SetCounter after lock: %v", err)
	}
	if err := repo.LockForUpdate(dbc, uuid.New()); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("LockForUpdate(missing): want=%v got=%v", gorm.ErrRecordNotFound, err)
	}
}
