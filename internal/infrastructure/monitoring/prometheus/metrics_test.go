package prometheus

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewAppMetrics_RegistersEverything(t *testing.T) {
	c := newTestCollector()
	m := NewAppMetrics(c)

	m.RecordHTTPRequest("GET", "/api/v1/listings", 200, 12*time.Millisecond)
	m.RecordPipelineRun("static", 6, 3*time.Millisecond, nil)
	m.RecordCacheAccess("snapshot", true)
	m.RecordCacheAccess("snapshot", false)
	m.RecordKafkaMessage("listings.raw", time.Millisecond, nil)
	m.FinanceParseFailures.WithLabelValues("price").Inc()

	output := scrapeMetrics(t, c)
	assert.Contains(t, output, `test_unit_http_requests_total{method="GET",path="/api/v1/listings",status_code="200"} 1`)
	assert.Contains(t, output, `test_unit_pipeline_runs_total{source="static",status="success"} 1`)
	assert.Contains(t, output, `test_unit_listings_scored_total{source="static"} 6`)
	assert.Contains(t, output, `test_unit_listings_snapshot_size{source="static"} 6`)
	assert.Contains(t, output, `test_unit_cache_hits_total{cache="snapshot"} 1`)
	assert.Contains(t, output, `test_unit_cache_misses_total{cache="snapshot"} 1`)
	assert.Contains(t, output, `test_unit_kafka_messages_total{status="success",topic="listings.raw"} 1`)
	assert.Contains(t, output, `test_unit_finance_parse_failures_total{field="price"} 1`)
}

func TestRecordPipelineRun_Failure(t *testing.T) {
	c := newTestCollector()
	m := NewAppMetrics(c)

	m.RecordPipelineRun("file", 0, time.Millisecond, errors.New("source unavailable"))

	output := scrapeMetrics(t, c)
	assert.Contains(t, output, `test_unit_pipeline_runs_total{source="file",status="failure"} 1`)
	// Failed runs never update the scored totals or snapshot size.
	assert.NotContains(t, output, `test_unit_listings_scored_total{source="file"}`)
}

func TestRecordKafkaMessage_Failure(t *testing.T) {
	c := newTestCollector()
	m := NewAppMetrics(c)

	m.RecordKafkaMessage("listings.raw", time.Millisecond, errors.New("decode failed"))

	output := scrapeMetrics(t, c)
	assert.Contains(t, output, `test_unit_kafka_messages_total{status="failure",topic="listings.raw"} 1`)
}
