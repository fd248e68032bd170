package listing

import (
	"testing"

	gh "github.com/mmcloughlin/geohash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marty-droid/laundromat-app-v3/internal/domain/finance"
	"github.com/marty-droid/laundromat-app-v3/internal/domain/geo"
	"github.com/marty-droid/laundromat-app-v3/internal/domain/textfeat"
)

func TestBuilder_AssemblesScoredRecord(t *testing.T) {
	raw := Raw{
		Title:       "Profitable Laundromat, Owner Retiring",
		Location:    "2800 N. Milwaukee Ave, Chicago, IL",
		Price:       "$750,000",
		CashFlow:    "$150,000",
		Description: "Real estate included. Owner retiring. Old equipment.",
		Latitude:    41.933,
		Longitude:   -87.712,
	}

	scored := NewBuilder(raw).
		WithClassification(geo.Classification{Neighborhood: "Logan Square", MatchScore: 1.0}).
		WithSignals(textfeat.Signals{RealEstateIncluded: true, SellerMotivation: true, OldEquipment: true}).
		WithFinancials(finance.Metrics{Price: 750000, CashFlow: 150000, CapRate: 20.00}).
		WithScore(100.00).
		Build()

	require.False(t, scored.ID.IsZero())
	assert.Equal(t, raw, scored.Raw)
	assert.Equal(t, "Logan Square", scored.Classification.Neighborhood)
	assert.True(t, scored.Signals.RealEstateIncluded)
	assert.Equal(t, 20.00, scored.Financials.CapRate)
	assert.Equal(t, 100.00, scored.OpportunityScore)
}

func TestBuilder_GeohashMatchesCoordinates(t *testing.T) {
	scored := NewBuilder(Raw{Latitude: 41.933, Longitude: -87.712}).Build()

	require.Len(t, scored.Geohash, 7)
	lat, lon := gh.DecodeCenter(scored.Geohash)
	assert.InDelta(t, 41.933, lat, 0.001)
	assert.InDelta(t, -87.712, lon, 0.001)
}

func TestBuilder_FreshIDPerBuild(t *testing.T) {
	raw := Raw{Latitude: 41.9, Longitude: -87.7}
	a := NewBuilder(raw).Build()
	b := NewBuilder(raw).Build()
	assert.NotEqual(t, a.ID, b.ID)
}

func TestBuilder_BuildReturnsValue(t *testing.T) {
	b := NewBuilder(Raw{Title: "A", Latitude: 41.9, Longitude: -87.7})
	first := b.Build()
	b.WithScore(55)
	assert.Zero(t, first.OpportunityScore, "earlier Build result must not observe later mutation")
}
