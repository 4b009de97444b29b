// Package metrics exposes pipeline counters and latencies to Prometheus
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "geolens"

// Metrics owns a registry and every collector geolens reports.
// Each instance has its own registry so tests never collide.
type Metrics struct {
	registry *prometheus.Registry

	parseFailures  prometheus.Counter
	schemaFailures prometheus.Counter
	repairs        prometheus.Counter

	extractions       *prometheus.CounterVec // by outcome
	extractionLatency prometheus.Histogram
	llmRetries        prometheus.Counter
	replyCacheHits    prometheus.Counter

	referenceReuse prometheus.Counter
	resolved       *prometheus.CounterVec // by kind and verdict
	candidates     prometheus.Histogram
}

// New creates and registers all collectors
func New() *Metrics {
	reg := prometheus.NewRegistry()
	auto := promauto.With(reg)

	m := &Metrics{registry: reg}

	m.parseFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "validate",
		Name:      "parse_failures_total",
		Help:      "Replies that could not be parsed even after repair",
	})
	m.schemaFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "validate",
		Name:      "schema_failures_total",
		Help:      "Structural checks that failed",
	})
	m.repairs = auto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "validate",
		Name:      "repairs_total",
		Help:      "Replies fixed by the JSON repair pipeline",
	})

	m.extractions = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "extract",
		Name:      "runs_total",
		Help:      "Extraction runs by outcome",
	}, []string{"outcome"})
	m.extractionLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "extract",
		Name:      "duration_seconds",
		Help:      "Wall time of the text-understanding call including retries",
		Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
	})
	m.llmRetries = auto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "extract",
		Name:      "rate_limit_retries_total",
		Help:      "Retries caused by rate-limit responses",
	})
	m.replyCacheHits = auto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "extract",
		Name:      "reply_cache_hits_total",
		Help:      "Extractions answered from the reply cache",
	})

	m.referenceReuse = auto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "pipeline",
		Name:      "reference_reuse_total",
		Help:      "Analyses that reused a stored reference instead of extracting",
	})
	m.resolved = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "resolve",
		Name:      "targets_total",
		Help:      "Resolved targets by kind and verdict",
	}, []string{"kind", "verdict"})
	m.candidates = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "pipeline",
		Name:      "candidates",
		Help:      "Candidates surviving filtering and dedupe per analysis",
		Buckets:   prometheus.LinearBuckets(0, 2, 10),
	})

	return m
}

// Registry returns the registry backing m
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ParseFailure implements validate.Observer
func (m *Metrics) ParseFailure() { m.parseFailures.Inc() }

// SchemaFailure implements validate.Observer
func (m *Metrics) SchemaFailure() { m.schemaFailures.Inc() }

// Repair implements validate.Observer
func (m *Metrics) Repair() { m.repairs.Inc() }

// ExtractionDone records one extraction attempt
func (m *Metrics) ExtractionDone(outcome string, elapsed time.Duration) {
	m.extractions.WithLabelValues(outcome).Inc()
	m.extractionLatency.Observe(elapsed.Seconds())
}

// RateLimitRetry records one backoff retry
func (m *Metrics) RateLimitRetry() { m.llmRetries.Inc() }

// ReplyCacheHit records an extraction served from cache
func (m *Metrics) ReplyCacheHit() { m.replyCacheHits.Inc() }

// ReferenceReused records an analysis that skipped extraction
func (m *Metrics) ReferenceReused() { m.referenceReuse.Inc() }

// TargetResolved records a resolution verdict
func (m *Metrics) TargetResolved(kind, verdict string) {
	m.resolved.WithLabelValues(kind, verdict).Inc()
}

// CandidatesReady records how many candidates an analysis produced
func (m *Metrics) CandidatesReady(n int) { m.candidates.Observe(float64(n)) }
