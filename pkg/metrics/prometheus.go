// Package metrics provides Prometheus metrics for the award service.
package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager manages all Prometheus metrics for the award service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Workflow metrics
	adminWrites          *prometheus.CounterVec
	validationRejections *prometheus.CounterVec
	autoPlacements       prometheus.Counter
	categoryRotations    prometheus.Counter
	submissionDuplicates prometheus.Counter

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Record store client metrics
	storeRequestLatency *prometheus.HistogramVec
	storeErrors         *prometheus.CounterVec

	// Snapshot cache metrics
	cacheHits         *prometheus.CounterVec
	cacheMisses       *prometheus.CounterVec
	cacheStaleCommits *prometheus.CounterVec
	cacheSnapshots    prometheus.Gauge
	snapshotRecords   *prometheus.GaugeVec

	// Refresh queue metrics
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge
	queueUtilization   prometheus.Gauge
	queueEnqueueRate   prometheus.Counter
	queueDequeueRate   prometheus.Counter
	queueEnqueueErrors prometheus.Counter

	// Refresh worker metrics
	workerCount             prometheus.Gauge
	workerActiveCount       prometheus.Gauge
	workerProcessingLatency prometheus.Histogram
	workerErrorRate         prometheus.Counter

	// Error metrics
	errorRateByComponent *prometheus.CounterVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
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
		namespace:        "laurel",
		subsystem:        "awards",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) name(n string) string {
	if m.metricPrefix == "" {
		return n
	}
	return m.metricPrefix + "_" + n
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: m.name(name), Help: help, ConstLabels: m.customLabels,
	})
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: m.name(name), Help: help, ConstLabels: m.customLabels,
	}, labels)
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: m.name(name), Help: help, ConstLabels: m.customLabels,
	})
}

func (m *Manager) gaugeVec(name, help string, labels ...string) *prometheus.GaugeVec {
	return promauto.With(m.registry).NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: m.name(name), Help: help, ConstLabels: m.customLabels,
	}, labels)
}

func (m *Manager) histogram(name, help string, buckets []float64) prometheus.Histogram {
	return promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: m.name(name), Help: help, ConstLabels: m.customLabels, Buckets: buckets,
	})
}

func (m *Manager) histogramVec(name, help string, labels ...string) *prometheus.HistogramVec {
	return promauto.With(m.registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: m.name(name), Help: help, ConstLabels: m.customLabels, Buckets: m.histogramBuckets,
	}, labels)
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	m.adminWrites = m.counterVec("admin_writes_total",
		"Total number of accepted admin writes by program and operation", "kind", "op")
	m.validationRejections = m.counterVec("validation_rejections_total",
		"Total number of submissions refused by validation", "kind", "rule")
	m.autoPlacements = m.counter("auto_placements_total",
		"Total number of Hall of Fame creations that were auto-assigned first place")
	m.categoryRotations = m.counter("category_rotations_total",
		"Total number of times the admin category advanced after a creation")
	m.submissionDuplicates = m.counter("submission_duplicates_total",
		"Total number of create requests refused for a reused idempotency key")

	m.httpRequests = m.counterVec("http_requests_total",
		"Total number of HTTP requests by endpoint and method", "endpoint", "method", "status_code")
	m.httpRequestDuration = m.histogramVec("http_request_duration_milliseconds",
		"HTTP request duration in milliseconds", "endpoint", "method", "status_code")

	m.storeRequestLatency = m.histogramVec("store_request_latency_milliseconds",
		"Record store call latency in milliseconds by operation", "op")
	m.storeErrors = m.counterVec("store_errors_total",
		"Total number of failed record store calls by operation and status", "op", "status")

	m.cacheHits = m.counterVec("snapshot_cache_hits_total",
		"Total number of snapshot reads served from cache", "kind")
	m.cacheMisses = m.counterVec("snapshot_cache_misses_total",
		"Total number of snapshot reads that went to the record store", "kind")
	m.cacheStaleCommits = m.counterVec("snapshot_stale_commits_total",
		"Total number of fetched snapshots discarded because a newer fetch had committed", "kind")
	m.cacheSnapshots = m.gauge("snapshot_cache_entries",
		"Number of snapshots currently cached")
	m.snapshotRecords = m.gaugeVec("snapshot_records",
		"Number of records in the last committed unfiltered snapshot", "kind")

	m.queueSize = m.gauge("refresh_queue_size", "Current size of the refresh queue")
	m.queueCapacity = m.gauge("refresh_queue_capacity", "Maximum refresh queue capacity")
	m.queueUtilization = m.gauge("refresh_queue_utilization_ratio",
		"Refresh queue utilization ratio (current size / capacity)")
	m.queueEnqueueRate = m.counter("refresh_queue_enqueue_total", "Total number of refresh jobs enqueued")
	m.queueDequeueRate = m.counter("refresh_queue_dequeue_total", "Total number of refresh jobs dequeued")
	m.queueEnqueueErrors = m.counter("refresh_queue_enqueue_errors_total", "Total number of refresh jobs dropped on enqueue")

	m.workerCount = m.gauge("refresh_worker_count", "Configured number of refresh workers")
	m.workerActiveCount = m.gauge("refresh_worker_active_count", "Number of refresh workers currently running")
	m.workerProcessingLatency = m.histogram("refresh_worker_latency_milliseconds",
		"Refresh job processing latency in milliseconds", m.histogramBuckets)
	m.workerErrorRate = m.counter("refresh_worker_errors_total", "Total number of failed refresh jobs")

	m.errorRateByComponent = m.counterVec("errors_by_component_total",
		"Total number of errors by component", "component", "error_type")

	m.systemMemoryUsage = m.gauge("system_memory_usage_bytes", "System memory usage in bytes")
	m.systemGoroutineCount = m.gauge("system_goroutine_count", "Number of goroutines")
	m.systemGCPauseTime = m.histogram("system_gc_pause_time_milliseconds", "GC pause time in milliseconds",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000})
}

// Workflow Metrics Functions.

// RecordAdminWrite counts an accepted create, update, placement or delete.
func RecordAdminWrite(kind, op string) {
	globalManager.adminWrites.WithLabelValues(kind, op).Inc()
}

// RecordValidationRejection counts a refused submission.
func RecordValidationRejection(kind, rule string) {
	globalManager.validationRejections.WithLabelValues(kind, rule).Inc()
}

// RecordAutoPlacement counts a creation that received first place automatically.
func RecordAutoPlacement() {
	globalManager.autoPlacements.Inc()
}

// RecordCategoryRotation counts an advance of the admin category.
func RecordCategoryRotation() {
	globalManager.categoryRotations.Inc()
}

// RecordSubmissionDuplicate counts a create refused for a reused idempotency key.
func RecordSubmissionDuplicate() {
	globalManager.submissionDuplicates.Inc()
}

// HTTP Metrics Functions.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// Record Store Metrics Functions.

// RecordStoreLatency records the latency of a record store call.
func RecordStoreLatency(op string, latencyMs float64) {
	globalManager.storeRequestLatency.WithLabelValues(op).Observe(latencyMs)
}

// RecordStoreError counts a failed record store call. Status is the HTTP
// status code or "transport" when no response arrived.
func RecordStoreError(op, status string) {
	globalManager.storeErrors.WithLabelValues(op, status).Inc()
}

// Snapshot Cache Metrics Functions.

// RecordCacheHit counts a snapshot read served from cache.
func RecordCacheHit(kind string) {
	globalManager.cacheHits.WithLabelValues(kind).Inc()
}

// RecordCacheMiss counts a snapshot read that needed a fetch.
func RecordCacheMiss(kind string) {
	globalManager.cacheMisses.WithLabelValues(kind).Inc()
}

// RecordStaleCommit counts a fetched snapshot discarded as stale.
func RecordStaleCommit(kind string) {
	globalManager.cacheStaleCommits.WithLabelValues(kind).Inc()
}

// UpdateCacheEntries sets the number of cached snapshots.
func UpdateCacheEntries(count int) {
	globalManager.cacheSnapshots.Set(float64(count))
}

// UpdateSnapshotRecords sets the record count of the latest unfiltered snapshot.
func UpdateSnapshotRecords(kind string, count int) {
	globalManager.snapshotRecords.WithLabelValues(kind).Set(float64(count))
}

// Queue Metrics Functions.

// UpdateQueueSize sets the current queue size.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateQueueCapacity sets the maximum queue capacity.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// UpdateQueueUtilization sets the queue utilization ratio.
func UpdateQueueUtilization(utilization float64) {
	globalManager.queueUtilization.Set(utilization)
}

// RecordQueueEnqueue increments the enqueue counter.
func RecordQueueEnqueue() {
	globalManager.queueEnqueueRate.Inc()
}

// RecordQueueDequeue increments the dequeue counter.
func RecordQueueDequeue() {
	globalManager.queueDequeueRate.Inc()
}

// RecordQueueEnqueueError increments the enqueue error counter.
func RecordQueueEnqueueError() {
	globalManager.queueEnqueueErrors.Inc()
}

// Worker Metrics Functions.

// UpdateWorkerCount sets the configured worker count.
func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// UpdateWorkerActiveCount sets the number of running workers.
func UpdateWorkerActiveCount(count int) {
	globalManager.workerActiveCount.Set(float64(count))
}

// RecordWorkerProcessingLatency records worker processing latency.
func RecordWorkerProcessingLatency(latencyMs float64) {
	globalManager.workerProcessingLatency.Observe(latencyMs)
}

// RecordWorkerError increments the worker error counter.
func RecordWorkerError() {
	globalManager.workerErrorRate.Inc()
}

// Error Metrics Functions.

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// System Metrics Functions.

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// CollectSystem samples runtime memory, goroutine and GC figures.
func CollectSystem() {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	UpdateSystemMemoryUsage(ms.Alloc)
	UpdateSystemGoroutineCount(runtime.NumGoroutine())
	if ms.NumGC > 0 {
		last := ms.PauseNs[(ms.NumGC+255)%256]
		RecordSystemGCPauseTime(float64(last) / float64(time.Millisecond))
	}
}

// RefreshInterval returns how often the global manager expects gauges to be sampled.
func RefreshInterval() time.Duration {
	return globalManager.refreshInterval
}

// Enabled reports whether the global manager collects metrics.
func Enabled() bool {
	return globalManager.enabled
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
