package pipeline

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marty-droid/laundromat-app-v3/internal/domain/listing"
	"github.com/marty-droid/laundromat-app-v3/internal/domain/scoring"
	"github.com/marty-droid/laundromat-app-v3/internal/infrastructure/monitoring/logging"
	"github.com/marty-droid/laundromat-app-v3/internal/infrastructure/monitoring/prometheus"
	"github.com/marty-droid/laundromat-app-v3/internal/infrastructure/source"
	apperrors "github.com/marty-droid/laundromat-app-v3/pkg/errors"
)

// stubSource serves a fixed listing set or a fixed error.
type stubSource struct {
	listings []listing.Raw
	err      error
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) Fetch(_ context.Context) ([]listing.Raw, error) {
	return s.listings, s.err
}

func newTestPipeline(src source.Source, opts ...Option) *Pipeline {
	return New(src, scoring.NewDefaultScorer(), logging.NewNopLogger(), opts...)
}

func TestPipelineEnrich_FullMatchListing(t *testing.T) {
	p := newTestPipeline(&stubSource{})

	scored := p.Enrich(listing.Raw{
		Title:       "Profitable Laundromat, Owner Retiring",
		Price:       "$750,000",
		CashFlow:    "$150,000",
		Description: "High volume store with old equipment. Real estate included. Owner retiring after 35 years.",
		Latitude:    41.933,
		Longitude:   -87.712,
	})

	assert.Equal(t, "Logan Square", scored.Classification.Neighborhood)
	assert.Equal(t, 1.0, scored.Classification.MatchScore)
	assert.True(t, scored.Signals.RealEstateIncluded)
	assert.True(t, scored.Signals.SellerMotivation)
	assert.True(t, scored.Signals.OldEquipment)
	assert.Equal(t, 100.0, scored.OpportunityScore)
	assert.Equal(t, 750000.0, scored.Financials.Price)
	assert.Equal(t, 20.0, scored.Financials.CapRate)
	assert.False(t, scored.ID.IsZero())
	assert.NotEmpty(t, scored.Geohash)
}

func TestPipelineEnrich_OutsideTarget(t *testing.T) {
	p := newTestPipeline(&stubSource{})

	scored := p.Enrich(listing.Raw{
		Title:       "Wash & Fold Opportunity in North Suburb",
		Price:       "$300,000",
		CashFlow:    "$60,000",
		Description: "Small store focused on wash and fold. Not in target area.",
		Latitude:    42.045,
		Longitude:   -87.687,
	})

	assert.Equal(t, "Outside Target", scored.Classification.Neighborhood)
	assert.Equal(t, 0.0, scored.OpportunityScore)
	assert.Equal(t, 20.0, scored.Financials.CapRate)
}

func TestPipelineEnrich_UnparseablePrice(t *testing.T) {
	p := newTestPipeline(&stubSource{})

	scored := p.Enrich(listing.Raw{
		Title:    "Mystery Pricing",
		Price:    "Contact broker",
		CashFlow: "$50,000",
		Latitude: 41.933, Longitude: -87.712,
	})

	assert.Equal(t, 0.0, scored.Financials.Price)
	assert.Equal(t, 50000.0, scored.Financials.CashFlow)
	assert.Equal(t, 0.0, scored.Financials.CapRate)
}

func TestPipelineRun_RanksReferenceData(t *testing.T) {
	p := newTestPipeline(source.NewStaticSource())

	engine, err := p.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 6, engine.Len())

	all := engine.All()
	// The Logan Square full-match listing outranks everything.
	assert.Equal(t, "Profitable Laundromat, Owner Retiring", all[0].Title)
	assert.Equal(t, 100.0, all[0].OpportunityScore)

	for i := 1; i < len(all); i++ {
		assert.GreaterOrEqual(t, all[i-1].OpportunityScore, all[i].OpportunityScore)
	}
}

func TestPipelineRun_EmptySourceYieldsEmptyEngine(t *testing.T) {
	p := newTestPipeline(&stubSource{})

	engine, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, engine.Len())
}

func TestPipelineRun_SourceFailure(t *testing.T) {
	p := newTestPipeline(&stubSource{err: errors.New("connection refused")})

	_, err := p.Run(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodePipelineFailed))
}

func TestPipelineRun_RecordsMetrics(t *testing.T) {
	collector := prometheus.NewMetricsCollector(prometheus.CollectorConfig{
		Namespace: "test",
	}, logging.NewNopLogger())
	metrics := prometheus.NewAppMetrics(collector)

	src := &stubSource{listings: []listing.Raw{
		{Title: "A", Price: "$100,000", CashFlow: "$20,000", Latitude: 41.933, Longitude: -87.712},
		{Title: "B", Price: "N/A", CashFlow: "$10,000", Latitude: 42.0, Longitude: -87.6},
	}}
	p := newTestPipeline(src, WithMetrics(metrics))

	_, err := p.Run(context.Background())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	collector.Handler().ServeHTTP(w, req)
	body := w.Body.String()

	assert.Contains(t, body, `test_pipeline_runs_total{source="stub",status="success"} 1`)
	assert.Contains(t, body, `test_listings_scored_total{source="stub"} 2`)
	assert.Contains(t, body, `test_finance_parse_failures_total{field="price"} 1`)
}
