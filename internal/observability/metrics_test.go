package observability

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "/api/courses", 200, time.Millisecond)
	m.ObserveQuiz(true, 100)
	m.IncTrophyGranted("perfect_tests")
	m.ObserveJob("streak_refresh", nil, time.Second)
	var buf bytes.Buffer
	if err := m.WritePrometheus(&buf); err != nil || buf.Len() != 0 {
		t.Fatalf("nil metrics: err=%v len=%d", err, buf.Len())
	}
}

func TestWritePrometheus(t *testing.T) {
	m := NewMetrics()
	m.ObserveAPI("get", "/api/courses/:id", 200, 20*time.Millisecond)
	m.ObserveAPI("get", "/api/courses/:id", 200, 30*time.Millisecond)
	m.ObserveQuiz(false, 66.67)
	m.ObserveQuiz(true, 100)
	m.IncTrophyGranted("perfect_tests")
	m.ObserveJob("streak_refresh", errors.New("boom"), time.Second)

	var buf bytes.Buffer
	if err := m.WritePrometheus(&buf); err != nil {
		t.Fatalf("WritePrometheus: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`kl_api_requests_total{method="GET",route="/api/courses/:id",status="200"} 2`,
		`kl_api_request_duration_seconds_bucket{method="GET",route="/api/courses/:id",le="0.025"} 1`,
		`kl_api_request_duration_seconds_count{method="GET",route="/api/courses/:id"} 2`,
		`kl_quiz_submissions_total{outcome="passed"} 1`,
		`kl_quiz_percentage_bucket{le="70"} 1`,
		`kl_quiz_percentage_bucket{le="+Inf"} 2`,
		`kl_trophies_granted_total{requirement_type="perfect_tests"} 1`,
		`kl_job_runs_total{job="streak_refresh",status="error"} 1`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing line %q in:\n%s", want, out)
		}
	}
}

func TestLabelEscaping(t *testing.T) {
	if got := labelString([]string{"a"}, []string{"x\"y"}); got != `{a="x\"y"}` {
		t.Fatalf("labelString: got=%s", got)
	}
	if got := labelString([]string{"a", "b"}, []string{"1"}); got != `{a="1",b="unknown"}` {
		t.Fatalf("missing value: got=%s", got)
	}
}
