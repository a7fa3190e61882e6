package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/yungbote/kazlearn-backend/internal/observability"
	"github.com/yungbote/kazlearn-backend/internal/platform/logger"
)

// Job is one unit of scheduled maintenance.
type Job struct {
	Name string
	// Cron is a standard five field cron expression.
	Cron    string
	Timeout time.Duration
	Run     func(ctx context.Context) error
}

type Scheduler struct {
	log     *logger.Logger
	metrics *observability.Metrics
	cron    *gocron.Scheduler
	jobs    []Job
}

func NewScheduler(baseLog *logger.Logger, metrics *observability.Metrics, loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	s := gocron.NewScheduler(loc)
	s.SingletonModeAll()
	return &Scheduler{
		log:     baseLog.With("component", "JobScheduler"),
		metrics: metrics,
		cron:    s,
	}
}

func (s *Scheduler) Register(j Job) {
	s.jobs = append(s.jobs, j)
}

// Run schedules every registered job and blocks until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	for _, j := range s.jobs {
		j := j
		if _, err := s.cron.Cron(j.Cron).Do(func() { s.RunNow(ctx, j) }); err != nil {
			return fmt.Errorf("schedule %s (%q): %w", j.Name, j.Cron, err)
		}
		s.log.Info("Job scheduled", "job", j.Name, "cron", j.Cron)
	}
	s.cron.StartAsync()
	<-ctx.Done()
	s.cron.Stop()
	s.log.Info("Job scheduler stopped")
	return nil
}

// RunNow executes one job synchronously. Panics are recovered and
// reported as failures.
func (s *Scheduler) RunNow(ctx context.Context, j Job) (err error) {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if j.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.Timeout)
		defer cancel()
	}
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("Job panic", "job", j.Name, "panic", r)
			err = fmt.Errorf("job %s panicked: %v", j.Name, r)
		}
		s.metrics.ObserveJob(j.Name, err, time.Since(start))
		if err != nil {
			s.log.Warn("Job failed", "job", j.Name, "error", err, "duration_ms", time.Since(start).Milliseconds())
			return
		}
		s.log.Info("Job finished", "job", j.Name, "duration_ms", time.Since(start).Milliseconds())
	}()
	return j.Run(ctx)
}
