package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordHTTPRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector("speak", reg)

	c.RecordHTTPRequest("GET", "GET /api/categories", 200, 20*time.Millisecond)
	c.RecordHTTPRequest("GET", "GET /api/categories", 200, 30*time.Millisecond)
	c.RecordHTTPRequest("POST", "POST /api/conversation", 429, time.Second)

	if got := testutil.ToFloat64(c.httpRequestsTotal.WithLabelValues("GET", "GET /api/categories", "200")); got != 2 {
		t.Errorf("expected 2 requests, got %v", got)
	}
	if got := testutil.CollectAndCount(c.httpRequestsTotal); got != 2 {
		t.Errorf("expected 2 label sets, got %d", got)
	}
}

func TestRecordScore(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector("speak", reg)

	c.RecordScore("line", "excellent")
	c.RecordScore("line", "excellent")
	c.RecordScore("practice", "retry")

	expected := `
# HELP speak_scoring_attempts_total Scored pronunciation attempts by surface and feedback tier
# TYPE speak_scoring_attempts_total counter
speak_scoring_attempts_total{surface="line",tier="excellent"} 2
speak_scoring_attempts_total{surface="practice",tier="retry"} 1
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "speak_scoring_attempts_total"); err != nil {
		t.Error(err)
	}
}

func TestRecordLLMRequestAndSessions(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector("speak", reg)

	c.RecordLLMRequest("reply", "ok", 800*time.Millisecond)
	c.RecordLLMRequest("grammar", "error", 2*time.Second)
	c.SetActiveSessions(4)

	if got := testutil.ToFloat64(c.llmRequestsTotal.WithLabelValues("grammar", "error")); got != 1 {
		t.Errorf("expected 1 failed grammar request, got %v", got)
	}
	if got := testutil.ToFloat64(c.activeSessions); got != 4 {
		t.Errorf("expected 4 active sessions, got %v", got)
	}
}

func TestCollectorsAreIsolatedPerRegistry(t *testing.T) {
	// Registering twice on one registry panics; separate registries must not.
	NewCollector("speak", prometheus.NewRegistry())
	NewCollector("speak", prometheus.NewRegistry())
}
