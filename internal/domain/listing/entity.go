// Package listing defines the listing aggregate: the raw record supplied by a
// listing source and the scored composite produced by the pipeline. The
// scored record is assembled once through a builder and is immutable
// thereafter; filtering downstream produces views, never new records.
package listing

import (
	"github.com/mmcloughlin/geohash"

	"github.com/marty-droid/laundromat-app-v3/internal/domain/finance"
	"github.com/marty-droid/laundromat-app-v3/internal/domain/geo"
	"github.com/marty-droid/laundromat-app-v3/internal/domain/textfeat"
	"github.com/marty-droid/laundromat-app-v3/pkg/types/common"
)

// geohashPrecision is the cell size used for map clustering keys. Seven
// characters is ~150m × 150m, block-level for an urban map.
const geohashPrecision = 7

// Raw is one acquisition target as supplied by a listing source. Latitude and
// longitude are always present and numeric; the classifier has no fallback
// path for missing coordinates.
type Raw struct {
	// Title is the listing headline.
	Title string `json:"title"`

	// Location is the display-only address text.
	Location string `json:"location"`

	// Price is the currency-formatted asking price, e.g. "$750,000".
	Price string `json:"price"`

	// CashFlow is the currency-formatted annual cash flow.
	CashFlow string `json:"cash_flow"`

	// Description is the broker's free text, input to keyword extraction.
	Description string `json:"description"`

	// Latitude and Longitude are decimal degrees.
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Scored is the canonical ranked record: the raw listing plus the
// classification, extracted signals, and derived financials. Created once
// during a pipeline pass; never mutated afterwards.
type Scored struct {
	ID common.ID `json:"id"`

	Raw

	Classification geo.Classification `json:"classification"`
	Signals        textfeat.Signals   `json:"signals"`
	Financials     finance.Metrics    `json:"financials"`

	// OpportunityScore is the weighted rubric score, in [0, 100] under the
	// default weights.
	OpportunityScore float64 `json:"opportunity_score"`

	// Geohash is the cell key of (Latitude, Longitude) for map clustering.
	Geohash string `json:"geohash"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Builder
// ─────────────────────────────────────────────────────────────────────────────

// Builder assembles a Scored record from the independent enrichment results.
// It replaces the mutable merge-into-a-map step of ad-hoc pipelines with an
// explicit aggregate-construction step.
type Builder struct {
	scored Scored
}

// NewBuilder starts a build from the raw listing, assigning a fresh ID and
// the coordinate geohash.
func NewBuilder(raw Raw) *Builder {
	return &Builder{scored: Scored{
		ID:      common.NewID(),
		Raw:     raw,
		Geohash: geohash.EncodeWithPrecision(raw.Latitude, raw.Longitude, geohashPrecision),
	}}
}

// WithClassification attaches the location classifier result.
func (b *Builder) WithClassification(c geo.Classification) *Builder {
	b.scored.Classification = c
	return b
}

// WithSignals attaches the extracted text signals.
func (b *Builder) WithSignals(s textfeat.Signals) *Builder {
	b.scored.Signals = s
	return b
}

// WithFinancials attaches the normalized financial metrics.
func (b *Builder) WithFinancials(m finance.Metrics) *Builder {
	b.scored.Financials = m
	return b
}

// WithScore attaches the opportunity score.
func (b *Builder) WithScore(score float64) *Builder {
	b.scored.OpportunityScore = score
	return b
}

// Build returns the assembled record by value; the builder holds no reference
// callers can use to mutate it afterwards.
func (b *Builder) Build() Scored {
	return b.scored
}
