package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RequestSize     *prometheus.HistogramVec

	// Relay metrics
	Rejections       *prometheus.CounterVec
	UpstreamCalls    *prometheus.CounterVec
	UpstreamDuration prometheus.Histogram
	Fallbacks        *prometheus.CounterVec
	BreakerState     prometheus.Gauge

	// Client metrics
	PopupsOpened    prometheus.Counter
	SummaryOutcomes *prometheus.CounterVec
	StaleResponses  prometheus.Counter
	PageFetches     *prometheus.CounterVec
}

// NewMetrics creates a metrics collector backed by its own registry so that
// several collectors can coexist in one process (tests, relay plus CLI).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "arcks_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "arcks_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"method", "path"},
		),
		RequestSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "arcks_http_request_size_bytes",
				Help:    "HTTP request size in bytes",
				Buckets: []float64{100, 500, 1000, 2500, 5000, 10000, 100000},
			},
			[]string{"method", "path"},
		),

		Rejections: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "arcks_relay_rejections_total",
				Help: "Relay requests rejected before reaching the upstream API",
			},
			[]string{"reason"},
		),
		UpstreamCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "arcks_relay_upstream_calls_total",
				Help: "Calls to the summarization API by outcome",
			},
			[]string{"outcome"},
		),
		UpstreamDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "arcks_relay_upstream_duration_seconds",
				Help:    "Summarization API call duration in seconds",
				Buckets: []float64{.1, .25, .5, 1, 2, 4, 8, 16, 32},
			},
		),
		Fallbacks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "arcks_relay_fallbacks_total",
				Help: "Summaries answered from a fallback instead of model JSON",
			},
			[]string{"kind"},
		),
		BreakerState: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "arcks_relay_breaker_state",
				Help: "Upstream circuit breaker state (0 closed, 1 half-open, 2 open)",
			},
		),

		PopupsOpened: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "arcks_popups_opened_total",
				Help: "Preview popups created",
			},
		),
		SummaryOutcomes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "arcks_summary_outcomes_total",
				Help: "Summary results rendered by outcome",
			},
			[]string{"outcome"},
		),
		StaleResponses: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "arcks_stale_responses_total",
				Help: "Summary responses dropped because their session was superseded",
			},
		),
		PageFetches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "arcks_page_fetches_total",
				Help: "Linked page fetches by outcome",
			},
			[]string{"outcome"},
		),
	}
}

// Registry exposes the underlying registry, mostly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration, reqSize int64) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.RequestSize.WithLabelValues(method, path).Observe(float64(reqSize))
}

// RecordRejection records a request refused by a relay guard.
func (m *Metrics) RecordRejection(reason string) {
	m.Rejections.WithLabelValues(reason).Inc()
}

// RecordUpstreamCall records one summarization API call.
func (m *Metrics) RecordUpstreamCall(outcome string, duration time.Duration) {
	m.UpstreamCalls.WithLabelValues(outcome).Inc()
	m.UpstreamDuration.Observe(duration.Seconds())
}

// RecordFallback records a normalized answer that did not come from model JSON.
func (m *Metrics) RecordFallback(kind string) {
	m.Fallbacks.WithLabelValues(kind).Inc()
}

// SetBreakerState publishes the upstream breaker state.
func (m *Metrics) SetBreakerState(state int) {
	m.BreakerState.Set(float64(state))
}

// IncPopupsOpened increments the popup counter.
func (m *Metrics) IncPopupsOpened() {
	m.PopupsOpened.Inc()
}

// RecordSummaryOutcome records how a popup resolved ("content" or "error").
func (m *Metrics) RecordSummaryOutcome(outcome string) {
	m.SummaryOutcomes.WithLabelValues(outcome).Inc()
}

// IncStaleResponses increments the dropped-response counter.
func (m *Metrics) IncStaleResponses() {
	m.StaleResponses.Inc()
}

// RecordPageFetch records a linked page fetch outcome.
func (m *Metrics) RecordPageFetch(outcome string) {
	m.PageFetches.WithLabelValues(outcome).Inc()
}
