// Package metrics provides Prometheus metrics for the agora community
// scoring service.
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

// Manager manages all Prometheus metrics for the agora service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	registry         prometheus.Registerer

	// Ranking pipeline
	rankingComputes        prometheus.Counter
	rankingComputeDuration prometheus.Histogram
	subjectsTracked        prometheus.Gauge

	// Cache behavior
	cacheHits          prometheus.Counter
	cacheMisses        prometheus.Counter
	cacheEvictions     prometheus.Counter
	singleflightShared prometheus.Counter
	cacheDegraded      prometheus.Counter

	// Matching engine
	matchComputes        prometheus.Counter
	matchComputeDuration prometheus.Histogram

	// Decay batch job
	decayRuns      prometheus.Counter
	decayDuration  prometheus.Histogram
	decayUpdated   prometheus.Counter
	decayUnchanged prometheus.Counter
	decayFailed    prometheus.Counter

	// HTTP surface
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// System health
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// GetRegistry returns the registry the global manager registers on.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "agora",
		subsystem:        "community",
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

	m.rankingComputes = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ranking_computes_total",
		Help:      "Total number of full ranking set computations",
	})

	m.rankingComputeDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ranking_compute_duration_seconds",
		Help:      "Duration of full ranking set computations",
		Buckets:   m.histogramBuckets,
	})

	m.subjectsTracked = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "subjects_tracked",
		Help:      "Number of subjects with recorded activity",
	})

	m.cacheHits = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cache_hits_total",
		Help:      "Total number of cache hits",
	})

	m.cacheMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cache_misses_total",
		Help:      "Total number of cache misses, expired entries included",
	})

	m.cacheEvictions = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cache_evictions_total",
		Help:      "Total number of expired entries discarded on read",
	})

	m.singleflightShared = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "singleflight_shared_total",
		Help:      "Total number of computations shared between concurrent cache misses",
	})

	m.cacheDegraded = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cache_degraded_total",
		Help:      "Total number of requests served fresh because the cache was unavailable",
	})

	m.matchComputes = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "match_computes_total",
		Help:      "Total number of full match list computations",
	})

	m.matchComputeDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "match_compute_duration_seconds",
		Help:      "Duration of full match list computations",
		Buckets:   m.histogramBuckets,
	})

	m.decayRuns = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "decay_runs_total",
		Help:      "Total number of hotness decay runs",
	})

	m.decayDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "decay_run_duration_seconds",
		Help:      "Duration of hotness decay runs",
		Buckets:   m.histogramBuckets,
	})

	m.decayUpdated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "decay_items_updated_total",
		Help:      "Total number of content items whose hotness was rewritten",
	})

	m.decayUnchanged = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "decay_items_unchanged_total",
		Help:      "Total number of content items skipped under the epsilon guard",
	})

	m.decayFailed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "decay_items_failed_total",
		Help:      "Total number of content items that failed to update",
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

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_usage_bytes",
		Help:      "System memory usage in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutine_count",
		Help:      "Number of goroutines",
	})
}

// RecordRankingCompute records one full ranking computation.
func RecordRankingCompute(seconds float64) {
	globalManager.rankingComputes.Inc()
	globalManager.rankingComputeDuration.Observe(seconds)
}

// UpdateSubjectsTracked updates the subjects gauge.
func UpdateSubjectsTracked(count int) {
	globalManager.subjectsTracked.Set(float64(count))
}

// RecordCacheHit increments the cache hit counter.
func RecordCacheHit() {
	globalManager.cacheHits.Inc()
}

// RecordCacheMiss increments the cache miss counter.
func RecordCacheMiss() {
	globalManager.cacheMisses.Inc()
}

// RecordCacheEviction increments the expired-entry counter.
func RecordCacheEviction() {
	globalManager.cacheEvictions.Inc()
}

// RecordSingleflightShared counts a computation shared with another caller.
func RecordSingleflightShared() {
	globalManager.singleflightShared.Inc()
}

// RecordCacheDegraded counts a request served without the cache.
func RecordCacheDegraded() {
	globalManager.cacheDegraded.Inc()
}

// RecordMatchCompute records one full match list computation.
func RecordMatchCompute(seconds float64) {
	globalManager.matchComputes.Inc()
	globalManager.matchComputeDuration.Observe(seconds)
}

// RecordDecayRun records the outcome of one decay run.
func RecordDecayRun(seconds float64, updated, unchanged, failed int) {
	globalManager.decayRuns.Inc()
	globalManager.decayDuration.Observe(seconds)
	globalManager.decayUpdated.Add(float64(updated))
	globalManager.decayUnchanged.Add(float64(unchanged))
	globalManager.decayFailed.Add(float64(failed))
}

// RecordHTTPRequest records an HTTP request with its response status.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// UpdateSystemMemoryUsage updates the memory usage gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount updates the goroutine count gauge.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}
