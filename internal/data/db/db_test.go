package db

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/yungbote/kazlearn-backend/internal/platform/logger"
)

func TestPostgresDSN(t *testing.T) {
	cfg := Config{Host: "localhost", Port: 5432, User: "kaz", Password: "pw", Name: "kazlearn"}
	want := "postgres://kaz:pw@localhost:5432/kazlearn?sslmode=disable"
	if got := cfg.PostgresDSN(); got != want {
		t.Fatalf("PostgresDSN: want=%q got=%q", want, got)
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	if _, err := Open(Config{Driver: "mysql"}, logger.Nop()); err == nil {
		t.Fatalf("expected error for unsupported driver")
	}
}

func TestOpenSQLiteAndMigrate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kaz.db")
	gdb, err := Open(Config{Driver: DriverSQLite, SQLitePath: path, LogLevel: "silent"}, logger.Nop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = Close(gdb) })

	if err := AutoMigrateAll(gdb); err != nil {
		t.Fatalf("AutoMigrateAll: %v", err)
	}
	// idempotent
	if err := AutoMigrateAll(gdb); err != nil {
		t.Fatalf("AutoMigrateAll (second run): %v", err)
	}
	for _, table := range []string{"user", "course", "quiz_result", "user_trophy", "learned_word", "activity_day"} {
		if !gdb.Migrator().HasTable(table) {
			t.Fatalf("missing table %s", table)
		}
	}
	if !strings.HasPrefix(Config{SQLitePath: path}.SQLiteDSN(), "file:") {
		t.Fatalf("sqlite dsn must be a file uri")
	}
}
