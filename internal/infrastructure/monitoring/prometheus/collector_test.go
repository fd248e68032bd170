package prometheus

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marty-droid/laundromat-app-v3/internal/infrastructure/monitoring/logging"
)

func newTestCollector() MetricsCollector {
	return NewMetricsCollector(CollectorConfig{
		Namespace: "test",
		Subsystem: "unit",
	}, logging.NewNopLogger())
}

func scrapeMetrics(t *testing.T, collector MetricsCollector) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	collector.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestRegisterCounter(t *testing.T) {
	c := newTestCollector()

	vec := c.RegisterCounter("listings_total", "Listings seen", "source")
	vec.WithLabelValues("static").Inc()
	vec.WithLabelValues("static").Add(2)

	output := scrapeMetrics(t, c)
	assert.Contains(t, output, `test_unit_listings_total{source="static"} 3`)
}

func TestRegisterGauge(t *testing.T) {
	c := newTestCollector()

	vec := c.RegisterGauge("snapshot_size", "Snapshot size", "source")
	vec.WithLabelValues("file").Set(6)
	vec.WithLabelValues("file").Dec()

	output := scrapeMetrics(t, c)
	assert.Contains(t, output, `test_unit_snapshot_size{source="file"} 5`)
}

func TestRegisterHistogram(t *testing.T) {
	c := newTestCollector()

	vec := c.RegisterHistogram("run_seconds", "Run duration", []float64{0.1, 1, 10}, "source")
	vec.WithLabelValues("static").Observe(0.5)

	output := scrapeMetrics(t, c)
	assert.Contains(t, output, `test_unit_run_seconds_count{source="static"} 1`)
	assert.Contains(t, output, `test_unit_run_seconds_bucket{source="static",le="1"} 1`)
}

func TestRegisterCounter_DuplicateReturnsExisting(t *testing.T) {
	c := newTestCollector()

	first := c.RegisterCounter("dup_total", "Duplicate", "k")
	second := c.RegisterCounter("dup_total", "Duplicate", "k")

	first.WithLabelValues("a").Inc()
	second.WithLabelValues("a").Inc()

	output := scrapeMetrics(t, c)
	assert.Contains(t, output, `test_unit_dup_total{k="a"} 2`)
}

func TestRegisterCounter_ConflictDegradesToNoop(t *testing.T) {
	c := newTestCollector()

	// Same name with a different label set conflicts at the registry.
	c.RegisterCounter("conflict_total", "First", "a")
	vec := c.RegisterGauge("conflict_total", "Second", "b")

	assert.NotPanics(t, func() {
		vec.WithLabelValues("x").Set(1)
	})
}

func TestHandler_ServesExposition(t *testing.T) {
	c := newTestCollector()
	c.RegisterCounter("exposed_total", "Exposed", "k").WithLabelValues("v").Inc()

	output := scrapeMetrics(t, c)
	assert.Contains(t, output, "# HELP test_unit_exposed_total Exposed")
	assert.Contains(t, output, "# TYPE test_unit_exposed_total counter")
}

func TestTimer(t *testing.T) {
	c := newTestCollector()
	vec := c.RegisterHistogram("timed_seconds", "Timed", nil, "op")

	timer := NewTimer(vec.WithLabelValues("fetch"))
	time.Sleep(10 * time.Millisecond)
	timer.ObserveDuration()

	output := scrapeMetrics(t, c)
	assert.Contains(t, output, `test_unit_timed_seconds_count{op="fetch"} 1`)
}

func TestTimer_NilHistogram(t *testing.T) {
	timer := NewTimer(nil)
	assert.NotPanics(t, timer.ObserveDuration)
}
