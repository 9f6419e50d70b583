// Package metrics provides Prometheus metrics for the dynasty trade analyzer.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager manages all Prometheus metrics for the analyzer service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	registry         prometheus.Registerer

	// Core business metrics.
	valuationsComputed  prometheus.Counter
	tradesEvaluated     prometheus.Counter
	invalidProposals    prometheus.Counter
	suggestionsReturned prometheus.Counter
	missingProjections  prometheus.Counter
	snapshotLoads       prometheus.Counter

	// Timing metrics.
	valuationDuration  prometheus.Histogram
	suggestionDuration prometheus.Histogram
	snapshotDuration   prometheus.Histogram

	// Snapshot state gauges.
	playersTracked prometheus.Gauge
	teamsTracked   prometheus.Gauge

	// HTTP metrics.
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorsByEndpoint    *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "dynasty",
		subsystem:        "analyzer",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.valuationsComputed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "valuations_computed_total",
		Help:      "Total number of player valuations computed",
	})

	m.tradesEvaluated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "trades_evaluated_total",
		Help:      "Total number of trade proposals evaluated",
	})

	m.invalidProposals = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "invalid_proposals_total",
		Help:      "Total number of trade proposals rejected as invalid",
	})

	m.suggestionsReturned = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "suggestions_returned_total",
		Help:      "Total number of trade suggestions returned to callers",
	})

	m.missingProjections = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "missing_projections_total",
		Help:      "Total number of projection categories absent during valuation",
	})

	m.snapshotLoads = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_loads_total",
		Help:      "Total number of league snapshots loaded",
	})

	m.valuationDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "valuation_duration_milliseconds",
		Help:      "Histogram of full-roster valuation pass duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.suggestionDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "suggestion_search_duration_milliseconds",
		Help:      "Histogram of suggestion search duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.snapshotDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_load_duration_milliseconds",
		Help:      "Histogram of snapshot load duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.playersTracked = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "players_tracked",
		Help:      "Number of players in the current league snapshot",
	})

	m.teamsTracked = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "teams_tracked",
		Help:      "Number of teams in the current league snapshot",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorsByEndpoint = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_endpoint_total",
			Help:      "Total number of errors by endpoint",
		},
		[]string{"endpoint", "method", "error_type"},
	)
}

// RecordValuation increments the valuations computed counter.
func RecordValuation() {
	globalManager.valuationsComputed.Inc()
}

// RecordTradeEvaluated increments the trades evaluated counter.
func RecordTradeEvaluated() {
	globalManager.tradesEvaluated.Inc()
}

// RecordInvalidProposal increments the invalid proposal counter.
func RecordInvalidProposal() {
	globalManager.invalidProposals.Inc()
}

// RecordSuggestions adds to the suggestions returned counter.
func RecordSuggestions(n int) {
	globalManager.suggestionsReturned.Add(float64(n))
}

// RecordMissingProjection increments the missing projection counter.
func RecordMissingProjection() {
	globalManager.missingProjections.Inc()
}

// RecordSnapshotLoad increments the snapshot load counter.
func RecordSnapshotLoad() {
	globalManager.snapshotLoads.Inc()
}

// RecordValuationDuration records a full-roster valuation pass duration.
func RecordValuationDuration(latencyMs float64) {
	globalManager.valuationDuration.Observe(latencyMs)
}

// RecordSuggestionDuration records a suggestion search duration.
func RecordSuggestionDuration(latencyMs float64) {
	globalManager.suggestionDuration.Observe(latencyMs)
}

// RecordSnapshotDuration records a snapshot load duration.
func RecordSnapshotDuration(latencyMs float64) {
	globalManager.snapshotDuration.Observe(latencyMs)
}

// UpdatePlayersTracked sets the players tracked gauge.
func UpdatePlayersTracked(count int) {
	globalManager.playersTracked.Set(float64(count))
}

// UpdateTeamsTracked sets the teams tracked gauge.
func UpdateTeamsTracked(count int) {
	globalManager.teamsTracked.Set(float64(count))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
