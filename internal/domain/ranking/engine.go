// Package ranking holds the scored result set and exposes pure filtering,
// deterministic ordering, and summary statistics over it. The engine never
// mutates its records: filters return views and summaries are computed on
// demand, so re-filtering on every dashboard control change is safe and
// side-effect free.
package ranking

import (
	"sort"

	"github.com/marty-droid/laundromat-app-v3/internal/domain/finance"
	"github.com/marty-droid/laundromat-app-v3/internal/domain/listing"
)

// Criteria is the predicate conjunction applied by Filter. The zero value
// matches every listing.
type Criteria struct {
	// Neighborhoods restricts results to the named set; nil or empty means
	// no neighborhood constraint.
	Neighborhoods []string `json:"neighborhoods"`

	// MinScore is the inclusive opportunity-score floor.
	MinScore float64 `json:"min_score"`

	// RealEstateOnly keeps only listings whose sale includes real estate.
	RealEstateOnly bool `json:"real_estate_only"`

	// MinCapRate is the inclusive cap-rate floor, in percent.
	MinCapRate float64 `json:"min_cap_rate"`
}

// Summary is the KPI row computed over a filtered subset.
type Summary struct {
	// Count is the number of qualified targets.
	Count int `json:"count"`

	// MaxScore is the highest opportunity score in the subset; 0 when empty.
	MaxScore float64 `json:"max_score"`

	// MeanCapRate is the average cap rate rounded to 2 decimals, or nil when
	// the subset is empty (rendered as JSON null / "N/A").
	MeanCapRate *float64 `json:"mean_cap_rate"`

	// RealEstateCount is the number of listings that include real estate.
	RealEstateCount int `json:"real_estate_count"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Engine
// ─────────────────────────────────────────────────────────────────────────────

// Engine holds one pipeline pass's scored listings in priority order. It is
// immutable after construction and safe for concurrent readers.
type Engine struct {
	scored []listing.Scored
}

// NewEngine copies the scored set and sorts it by (opportunity score
// descending, cap rate descending). The sort is stable, so listings with
// identical score and cap rate retain their input order across runs.
func NewEngine(scored []listing.Scored) *Engine {
	ordered := make([]listing.Scored, len(scored))
	copy(ordered, scored)

	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].OpportunityScore != ordered[j].OpportunityScore {
			return ordered[i].OpportunityScore > ordered[j].OpportunityScore
		}
		return ordered[i].Financials.CapRate > ordered[j].Financials.CapRate
	})

	return &Engine{scored: ordered}
}

// Len returns the size of the full unfiltered set.
func (e *Engine) Len() int {
	return len(e.scored)
}

// All returns the full set in priority order. The returned slice is a copy;
// mutating it does not affect the engine.
func (e *Engine) All() []listing.Scored {
	out := make([]listing.Scored, len(e.scored))
	copy(out, e.scored)
	return out
}

// Filter returns the listings matching every predicate in c, preserving the
// engine's priority order. Predicates are conjunctive and independent, so
// filter application order cannot change the result.
func (e *Engine) Filter(c Criteria) []listing.Scored {
	var hoods map[string]bool
	if len(c.Neighborhoods) > 0 {
		hoods = make(map[string]bool, len(c.Neighborhoods))
		for _, n := range c.Neighborhoods {
			hoods[n] = true
		}
	}

	out := make([]listing.Scored, 0, len(e.scored))
	for _, l := range e.scored {
		if hoods != nil && !hoods[l.Classification.Neighborhood] {
			continue
		}
		if l.OpportunityScore < c.MinScore {
			continue
		}
		if c.RealEstateOnly && !l.Signals.RealEstateIncluded {
			continue
		}
		if l.Financials.CapRate < c.MinCapRate {
			continue
		}
		out = append(out, l)
	}
	return out
}

// Summarize computes the KPI row for a subset (typically a Filter result).
// An empty subset yields Count 0, MaxScore 0, nil MeanCapRate, and
// RealEstateCount 0 rather than an error.
func Summarize(subset []listing.Scored) Summary {
	s := Summary{Count: len(subset)}
	if len(subset) == 0 {
		return s
	}

	capRateSum := 0.0
	for _, l := range subset {
		if l.OpportunityScore > s.MaxScore {
			s.MaxScore = l.OpportunityScore
		}
		capRateSum += l.Financials.CapRate
		if l.Signals.RealEstateIncluded {
			s.RealEstateCount++
		}
	}

	mean := finance.Round2(capRateSum / float64(len(subset)))
	s.MeanCapRate = &mean
	return s
}
