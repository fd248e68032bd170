package prometheus

import (
	"strconv"
	"time"
)

// AppMetrics holds every instrument the service records.
type AppMetrics struct {
	// HTTP layer
	HTTPRequestsTotal   CounterVec
	HTTPRequestDuration HistogramVec
	HTTPActiveRequests  GaugeVec

	// Scoring pipeline
	PipelineRunsTotal    CounterVec
	PipelineRunDuration  HistogramVec
	ListingsScoredTotal  CounterVec
	ListingsSnapshotSize GaugeVec
	FinanceParseFailures CounterVec

	// Infrastructure
	CacheHitsTotal       CounterVec
	CacheMissesTotal     CounterVec
	DBQueryDuration      HistogramVec
	KafkaMessagesTotal   CounterVec
	KafkaProcessDuration HistogramVec
}

var (
	// DefaultHTTPDurationBuckets covers sub-millisecond cache reads up to
	// slow full-pipeline refreshes.
	DefaultHTTPDurationBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

	// DefaultPipelineDurationBuckets covers in-memory runs over small sets
	// through store-backed runs over large ones.
	DefaultPipelineDurationBuckets = []float64{.001, .005, .01, .05, .1, .5, 1, 5, 30}

	// DefaultDBDurationBuckets covers pooled query latencies.
	DefaultDBDurationBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 5}
)

// NewAppMetrics registers every service metric on the collector.
func NewAppMetrics(collector MetricsCollector) *AppMetrics {
	m := &AppMetrics{}

	m.HTTPRequestsTotal = collector.RegisterCounter("http_requests_total",
		"Total HTTP requests", "method", "path", "status_code")
	m.HTTPRequestDuration = collector.RegisterHistogram("http_request_duration_seconds",
		"HTTP request duration", DefaultHTTPDurationBuckets, "method", "path")
	m.HTTPActiveRequests = collector.RegisterGauge("http_active_requests",
		"In-flight HTTP requests", "method")

	m.PipelineRunsTotal = collector.RegisterCounter("pipeline_runs_total",
		"Scoring pipeline runs", "source", "status")
	m.PipelineRunDuration = collector.RegisterHistogram("pipeline_run_duration_seconds",
		"Scoring pipeline run duration", DefaultPipelineDurationBuckets, "source")
	m.ListingsScoredTotal = collector.RegisterCounter("listings_scored_total",
		"Listings scored across all pipeline runs", "source")
	m.ListingsSnapshotSize = collector.RegisterGauge("listings_snapshot_size",
		"Listings in the current ranked snapshot", "source")
	m.FinanceParseFailures = collector.RegisterCounter("finance_parse_failures_total",
		"Listings whose price or cash flow failed currency parsing", "field")

	m.CacheHitsTotal = collector.RegisterCounter("cache_hits_total",
		"Snapshot cache hits", "cache")
	m.CacheMissesTotal = collector.RegisterCounter("cache_misses_total",
		"Snapshot cache misses", "cache")
	m.DBQueryDuration = collector.RegisterHistogram("db_query_duration_seconds",
		"Listing store query duration", DefaultDBDurationBuckets, "operation")
	m.KafkaMessagesTotal = collector.RegisterCounter("kafka_messages_total",
		"Ingest feed messages consumed", "topic", "status")
	m.KafkaProcessDuration = collector.RegisterHistogram("kafka_process_duration_seconds",
		"Ingest message handling duration", DefaultHTTPDurationBuckets, "topic")

	return m
}

// RecordHTTPRequest records one completed HTTP request.
func (m *AppMetrics) RecordHTTPRequest(method, path string, statusCode int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordPipelineRun records a completed scoring pipeline pass.
func (m *AppMetrics) RecordPipelineRun(sourceName string, scored int, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	m.PipelineRunsTotal.WithLabelValues(sourceName, status).Inc()
	m.PipelineRunDuration.WithLabelValues(sourceName).Observe(duration.Seconds())
	if err == nil {
		m.ListingsScoredTotal.WithLabelValues(sourceName).Add(float64(scored))
		m.ListingsSnapshotSize.WithLabelValues(sourceName).Set(float64(scored))
	}
}

// RecordCacheAccess records one snapshot cache lookup.
func (m *AppMetrics) RecordCacheAccess(cache string, hit bool) {
	if hit {
		m.CacheHitsTotal.WithLabelValues(cache).Inc()
		return
	}
	m.CacheMissesTotal.WithLabelValues(cache).Inc()
}

// RecordKafkaMessage records one ingest feed message outcome.
func (m *AppMetrics) RecordKafkaMessage(topic string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	m.KafkaMessagesTotal.WithLabelValues(topic, status).Inc()
	m.KafkaProcessDuration.WithLabelValues(topic).Observe(duration.Seconds())
}
