package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.ParseFailure()
	m.SchemaFailure()
	m.SchemaFailure()
	m.Repair()
	m.RateLimitRetry()
	m.ReplyCacheHit()
	m.ReferenceReused()

	if got := testutil.ToFloat64(m.parseFailures); got != 1 {
		t.Errorf("expected 1 parse failure, got %v", got)
	}
	if got := testutil.ToFloat64(m.schemaFailures); got != 2 {
		t.Errorf("expected 2 schema failures, got %v", got)
	}
	if got := testutil.ToFloat64(m.repairs); got != 1 {
		t.Errorf("expected 1 repair, got %v", got)
	}
	if got := testutil.ToFloat64(m.referenceReuse); got != 1 {
		t.Errorf("expected 1 reuse, got %v", got)
	}
}

func TestMetrics_Vectors(t *testing.T) {
	m := New()
	m.ExtractionDone("ok", 1500*time.Millisecond)
	m.ExtractionDone("timeout", 30*time.Second)
	m.TargetResolved("region", "validated")
	m.TargetResolved("region", "validated")

	if got := testutil.ToFloat64(m.extractions.WithLabelValues("ok")); got != 1 {
		t.Errorf("expected 1 ok extraction, got %v", got)
	}
	if got := testutil.ToFloat64(m.resolved.WithLabelValues("region", "validated")); got != 2 {
		t.Errorf("expected 2 validated regions, got %v", got)
	}
}

func TestMetrics_IsolatedRegistries(t *testing.T) {
	a, b := New(), New()
	a.Repair()
	if got := testutil.ToFloat64(b.repairs); got != 0 {
		t.Errorf("expected separate registries, got %v", got)
	}
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.CandidatesReady(3)
	m.Repair()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "geolens_validate_repairs_total 1") {
		t.Errorf("expected repairs counter in output, got:\n%s", body)
	}
	if !strings.Contains(string(body), "geolens_pipeline_candidates_count 1") {
		t.Errorf("expected candidates histogram in output")
	}
}
