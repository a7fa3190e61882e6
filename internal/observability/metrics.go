package observability

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yungbote/kazlearn-backend/internal/platform/logger"
)

// Metrics is nil-safe: every method on a nil *Metrics is a no-op, so
// callers never branch on whether metrics are enabled.
type Metrics struct {
	apiRequests *CounterVec
	apiLatency  *HistogramVec
	apiInflight *Gauge

	quizSubmissions *CounterVec
	quizPercentage  *HistogramVec
	trophiesGranted *CounterVec
	lessonsDone     *Counter
	wordsLearned    *Counter

	jobRuns     *CounterVec
	jobDuration *HistogramVec

	dbUp      *Gauge
	redisUp   *Gauge
	redisPing *Gauge
}

func NewMetrics() *Metrics {
	return &Metrics{
		apiRequests: NewCounterVec("kl_api_requests_total", "API requests by method/route/status.", []string{"method", "route", "status"}),
		apiLatency: NewHistogramVec(
			"kl_api_request_duration_seconds",
			"API request latency in seconds by method/route.",
			[]string{"method", "route"},
			[]float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		),
		apiInflight: NewGauge("kl_api_inflight_requests", "In-flight API requests."),

		quizSubmissions: NewCounterVec("kl_quiz_submissions_total", "Graded quiz submissions by outcome.", []string{"outcome"}),
		quizPercentage: NewHistogramVec(
			"kl_quiz_percentage",
			"Distribution of graded quiz percentages.",
			nil,
			[]float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		),
		trophiesGranted: NewCounterVec("kl_trophies_granted_total", "Trophies granted by requirement type.", []string{"requirement_type"}),
		lessonsDone:     NewCounter("kl_lessons_completed_total", "Lesson completion events."),
		wordsLearned:    NewCounter("kl_words_learned_total", "Word learned events."),

		jobRuns: NewCounterVec("kl_job_runs_total", "Scheduled job runs by job/status.", []string{"job", "status"}),
		jobDuration: NewHistogramVec(
			"kl_job_duration_seconds",
			"Scheduled job duration in seconds.",
			[]string{"job"},
			[]float64{0.1, 0.5, 1, 5, 15, 60, 300},
		),

		dbUp:      NewGauge("kl_db_up", "1 when the last database ping succeeded."),
		redisUp:   NewGauge("kl_redis_up", "1 when the last redis ping succeeded."),
		redisPing: NewGauge("kl_redis_ping_seconds", "Latency of the last redis ping."),
	}
}

func (m *Metrics) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m == nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "text/plain; version=0.0.4")
		_ = m.WritePrometheus(w)
	})
}

func (m *Metrics) WritePrometheus(w io.Writer) error {
	if m == nil {
		return nil
	}
	for _, c := range []collector{
		m.apiRequests, m.apiLatency, m.apiInflight,
		m.quizSubmissions, m.quizPercentage, m.trophiesGranted, m.lessonsDone, m.wordsLearned,
		m.jobRuns, m.jobDuration,
		m.dbUp, m.redisUp, m.redisPing,
	} {
		if err := c.WritePrometheus(w); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) ObserveAPI(method, route string, status int, dur time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unknown"
	}
	method = strings.ToUpper(method)
	m.apiRequests.Inc(method, route, strconv.Itoa(status))
	m.apiLatency.Observe(dur.Seconds(), method, route)
}

func (m *Metrics) APIInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) APIInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

func (m *Metrics) ObserveQuiz(passed bool, percentage float64) {
	if m == nil {
		return
	}
	outcome := "failed"
	if passed {
		outcome = "passed"
	}
	m.quizSubmissions.Inc(outcome)
	m.quizPercentage.Observe(percentage)
}

func (m *Metrics) IncTrophyGranted(requirementType string) {
	if m == nil {
		return
	}
	m.trophiesGranted.Inc(requirementType)
}

func (m *Metrics) IncLessonCompleted() {
	if m == nil {
		return
	}
	m.lessonsDone.Inc()
}

func (m *Metrics) IncWordLearned() {
	if m == nil {
		return
	}
	m.wordsLearned.Inc()
}

func (m *Metrics) ObserveJob(job string, err error, dur time.Duration) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.jobRuns.Inc(job, status)
	m.jobDuration.Observe(dur.Seconds(), job)
}

// StartCollectors pings the database and, when addr is set, redis on every
// interval until ctx is done.
func (m *Metrics) StartCollectors(ctx context.Context, log *logger.Logger, db *gorm.DB, redisAddr string, interval time.Duration) {
	if m == nil {
		return
	}
	if interval <= 0 {
		interval = 15 * time.Second
	}
	var rdb *redis.Client
	if addr := strings.TrimSpace(redisAddr); addr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: addr})
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		defer func() {
			if rdb != nil {
				_ = rdb.Close()
			}
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.collectDB(ctx, log, db)
				m.collectRedis(ctx, log, rdb)
			}
		}
	}()
}

func (m *Metrics) collectDB(ctx context.Context, log *logger.Logger, db *gorm.DB) {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		m.dbUp.Set(0)
		if log != nil {
			log.Warn("metrics: db ping failed", "error", err)
		}
		return
	}
	m.dbUp.Set(1)
}

func (m *Metrics) collectRedis(ctx context.Context, log *logger.Logger, rdb *redis.Client) {
	if rdb == nil {
		return
	}
	start := time.Now()
	if err := rdb.Ping(ctx).Err(); err != nil {
		m.redisUp.Set(0)
		if log != nil {
			log.Warn("metrics: redis ping failed", "error", err)
		}
		return
	}
	m.redisUp.Set(1)
	m.redisPing.Set(time.Since(start).Seconds())
}
