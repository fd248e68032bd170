package source

import (
	"context"

	"github.com/marty-droid/laundromat-app-v3/internal/domain/listing"
)

// referenceListings is the bundled Chicago acquisition dataset. It covers
// every enrichment path: each target neighborhood, a non-target suburb, all
// four signal groups, and both real-estate outcomes.
var referenceListings = []listing.Raw{
	{
		Title:       "Profitable Laundromat, Owner Retiring",
		Location:    "2800 N. Milwaukee Ave, Chicago, IL",
		Price:       "$750,000",
		CashFlow:    "$150,000",
		Description: "High volume store with old equipment. Real estate included. Owner retiring after 35 years. Great for a new concept build-out. 3,000 sq ft.",
		Latitude:    41.933,
		Longitude:   -87.712,
	},
	{
		Title:       "Coin Laundry Business Only - Great Lease",
		Location:    "3500 W. Fullerton Ave, Chicago, IL",
		Price:       "$200,000",
		CashFlow:    "$80,000",
		Description: "Lease only. High traffic area near Avondale border. Equipment is 10 years old. No real estate. Absentee owner needs quick sale.",
		Latitude:    41.924,
		Longitude:   -87.724,
	},
	{
		Title:       "Modern Washateria near Cicero",
		Location:    "5000 W. North Ave, Chicago, IL",
		Price:       "$900,000",
		CashFlow:    "$180,000",
		Description: "Fully updated store with high-capacity washers. Seller moving out of state. No real estate. Good cash flow.",
		Latitude:    41.910,
		Longitude:   -87.749,
	},
	{
		Title:       "Established Laundry in Logan Square",
		Location:    "2500 N. Central Park Ave, Chicago, IL",
		Price:       "$450,000",
		CashFlow:    "$100,000",
		Description: "Solid neighborhood business. Real estate included. Older machines, but reliable. Strong local customer base.",
		Latitude:    41.921,
		Longitude:   -87.715,
	},
	{
		Title:       "Wash & Fold Opportunity in North Suburb",
		Location:    "Evanston, IL",
		Price:       "$300,000",
		CashFlow:    "$60,000",
		Description: "Small store focused on wash and fold. Not in target area. Real estate not included.",
		Latitude:    42.045,
		Longitude:   -87.687,
	},
	{
		Title:       "Prime Hermosa Corner Lot Laundromat",
		Location:    "4000 W. Diversey Ave, Chicago, IL",
		Price:       "$1,200,000",
		CashFlow:    "$200,000",
		Description: "Massive potential. Real estate included. Owner needs quick exit due to health. Older, inefficient machines. Perfect for new concept.",
		Latitude:    41.932,
		Longitude:   -87.730,
	},
}

// StaticSource serves the bundled reference dataset. It is the default source
// mode, useful for demos and for exercising the full pipeline without any
// external dependency.
type StaticSource struct {
	listings []listing.Raw
}

// NewStaticSource returns a source backed by the bundled reference dataset.
func NewStaticSource() *StaticSource {
	return &StaticSource{listings: referenceListings}
}

// Name implements Source.
func (s *StaticSource) Name() string { return "static" }

// Fetch returns a copy of the reference dataset so callers can never mutate
// the bundled data.
func (s *StaticSource) Fetch(_ context.Context) ([]listing.Raw, error) {
	out := make([]listing.Raw, len(s.listings))
	copy(out, s.listings)
	return out, nil
}
