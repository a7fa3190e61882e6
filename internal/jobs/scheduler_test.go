package jobs

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	types "github.com/yungbote/kazlearn-backend/internal/domain"
	"github.com/yungbote/kazlearn-backend/internal/observability"
	"github.com/yungbote/kazlearn-backend/internal/platform/dbctx"
	"github.com/yungbote/kazlearn-backend/internal/platform/logger"
)

type fakeStreaks struct {
	calls int
	reset int
	err   error
}

func (f *fakeStreaks) Touch(dbctx.Context, uuid.UUID) ([]*types.Trophy, error) { return nil, nil }
func (f *fakeStreaks) RefreshAll(context.Context) (int, error) {
	f.calls++
	return f.reset, f.err
}

func metricsText(t *testing.T, m *observability.Metrics) string {
	t.Helper()
	var buf bytes.Buffer
	if err := m.WritePrometheus(&buf); err != nil {
		t.Fatalf("WritePrometheus: %v", err)
	}
	return buf.String()
}

func TestRunNowRecordsOutcome(t *testing.T) {
	m := observability.NewMetrics()
	s := NewScheduler(logger.Nop(), m, time.UTC)
	streaks := &fakeStreaks{reset: 3}

	if err := s.RunNow(context.Background(), StreakRefreshJob(logger.Nop(), streaks, "5 0 * * *")); err != nil {
		t.Fatalf("RunNow: %v", err)
	}
	if streaks.calls != 1 {
		t.Fatalf("RefreshAll calls: want=1 got=%d", streaks.calls)
	}

	streaks.err = errors.New("db down")
	if err := s.RunNow(context.Background(), StreakRefreshJob(logger.Nop(), streaks, "5 0 * * *")); err == nil {
		t.Fatalf("RunNow: want error")
	}

	out := metricsText(t, m)
	for _, want := range []string{
		`kl_job_runs_total{job="streak_refresh",status="ok"} 1`,
		`kl_job_runs_total{job="streak_refresh",status="error"} 1`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("metrics missing %q:\n%s", want, out)
		}
	}
}

func TestRunNowRecoversPanic(t *testing.T) {
	s := NewScheduler(logger.Nop(), nil, nil)
	err := s.RunNow(context.Background(), Job{
		Name: "boom",
		Run:  func(context.Context) error { panic("kaput") },
	})
	if err == nil || !strings.Contains(err.Error(), "kaput") {
		t.Fatalf("RunNow: want panic error got=%v", err)
	}
}

func TestRunNowHonoursTimeout(t *testing.T) {
	s := NewScheduler(logger.Nop(), nil, nil)
	err := s.RunNow(context.Background(), Job{
		Name:    "slow",
		Timeout: 10 * time.Millisecond,
		Run: func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		},
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("RunNow: want deadline exceeded got=%v", err)
	}
}

func TestRunRejectsBadCron(t *testing.T) {
	s := NewScheduler(logger.Nop(), nil, nil)
	s.Register(Job{Name: "bad", Cron: "not a cron", Run: func(context.Context) error { return nil }})
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.Run(ctx); err == nil {
		t.Fatalf("Run: want error for invalid cron expression")
	}
}
