// Package scoring computes the opportunity score: a weighted sum of location,
// real-estate, seller-motivation, and equipment contributions under a fixed
// rubric. Weights are configurable by contribution name and default to a set
// that sums to 100, giving a natural [0, 100] range under full match.
package scoring

import (
	"fmt"
	"math"

	"github.com/marty-droid/laundromat-app-v3/internal/domain/geo"
	"github.com/marty-droid/laundromat-app-v3/internal/domain/textfeat"
	"github.com/marty-droid/laundromat-app-v3/pkg/errors"
)

// Contribution names, used as keys in external weight configuration.
const (
	WeightLocation   = "location"
	WeightRealEstate = "real_estate"
	WeightMotivation = "motivation"
	WeightCapacity   = "capacity"
)

// DefaultTargetNeighborhoods is the reference target set for the roll-up
// thesis.
func DefaultTargetNeighborhoods() []string {
	return []string{"Logan Square", "Avondale", "Hermosa"}
}

// ─────────────────────────────────────────────────────────────────────────────
// Weights
// ─────────────────────────────────────────────────────────────────────────────

// Weights holds the four contribution weights.
type Weights struct {
	// Location multiplies the classifier match score, gated on target
	// neighborhood membership.
	Location float64 `json:"location" mapstructure:"location"`

	// RealEstate is added fully when the listing includes real estate. The
	// highest default weight: owned property is what makes a roll-up asset.
	RealEstate float64 `json:"real_estate" mapstructure:"real_estate"`

	// Motivation is added fully for a motivated seller.
	Motivation float64 `json:"motivation" mapstructure:"motivation"`

	// Capacity is added fully when the equipment is either old (fresh-concept
	// potential) or high-capacity — the two signals are OR'd, never summed.
	Capacity float64 `json:"capacity" mapstructure:"capacity"`
}

// DefaultWeights returns the reference rubric: 30/40/20/10.
func DefaultWeights() Weights {
	return Weights{
		Location:   30,
		RealEstate: 40,
		Motivation: 20,
		Capacity:   10,
	}
}

// Validate rejects negative weights. Weights need not sum to 100; callers
// that change the total accept a different score ceiling.
func (w Weights) Validate() error {
	for name, v := range map[string]float64{
		WeightLocation:   w.Location,
		WeightRealEstate: w.RealEstate,
		WeightMotivation: w.Motivation,
		WeightCapacity:   w.Capacity,
	} {
		if v < 0 {
			return errors.New(errors.ErrCodeInvalidWeights,
				fmt.Sprintf("weight %q must be ≥ 0, got %v", name, v))
		}
	}
	return nil
}

// Max returns the highest score the rubric can produce (all contributions at
// full value with match score 1.0).
func (w Weights) Max() float64 {
	return w.Location + w.RealEstate + w.Motivation + w.Capacity
}

// WeightsFromMap builds Weights from a name→value mapping, starting from the
// defaults so partial overrides work. Unknown names are rejected.
func WeightsFromMap(m map[string]float64) (Weights, error) {
	w := DefaultWeights()
	for name, v := range m {
		switch name {
		case WeightLocation:
			w.Location = v
		case WeightRealEstate:
			w.RealEstate = v
		case WeightMotivation:
			w.Motivation = v
		case WeightCapacity:
			w.Capacity = v
		default:
			return Weights{}, errors.New(errors.ErrCodeInvalidWeights,
				fmt.Sprintf("unknown weight name %q", name))
		}
	}
	if err := w.Validate(); err != nil {
		return Weights{}, err
	}
	return w, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Scorer
// ─────────────────────────────────────────────────────────────────────────────

// Scorer combines a classification and text signals into one opportunity
// score. It is immutable after construction and safe for concurrent use.
type Scorer struct {
	weights Weights
	targets map[string]bool
}

// NewScorer constructs a Scorer with the given weights and target
// neighborhood set. An empty target list falls back to the defaults.
func NewScorer(weights Weights, targetNeighborhoods []string) (*Scorer, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	if len(targetNeighborhoods) == 0 {
		targetNeighborhoods = DefaultTargetNeighborhoods()
	}
	targets := make(map[string]bool, len(targetNeighborhoods))
	for _, n := range targetNeighborhoods {
		targets[n] = true
	}
	return &Scorer{weights: weights, targets: targets}, nil
}

// NewDefaultScorer constructs a Scorer with the reference rubric and targets.
func NewDefaultScorer() *Scorer {
	s, err := NewScorer(DefaultWeights(), DefaultTargetNeighborhoods())
	if err != nil {
		// Defaults are statically valid.
		panic(err)
	}
	return s
}

// Score computes the weighted sum, rounded to 2 decimals:
//
//	location   × matchScore   (only for target neighborhoods)
//	realEstate                (full, if real-estate-included)
//	motivation                (full, if seller-motivated)
//	capacity                  (full, if old-equipment OR high-capacity)
//
// The target-membership gate is checked even though the shipped rule table
// never produces a non-target name with a positive match score; a custom rule
// table can, and such listings must contribute zero location score.
func (s *Scorer) Score(c geo.Classification, sig textfeat.Signals) float64 {
	score := 0.0

	if s.targets[c.Neighborhood] {
		score += s.weights.Location * c.MatchScore
	}
	if sig.RealEstateIncluded {
		score += s.weights.RealEstate
	}
	if sig.SellerMotivation {
		score += s.weights.Motivation
	}
	if sig.OldEquipment || sig.HighCapacity {
		score += s.weights.Capacity
	}

	return math.Round(score*100) / 100
}

// Weights returns the scorer's rubric.
func (s *Scorer) Weights() Weights {
	return s.weights
}

// IsTarget reports whether the neighborhood is in the configured target set.
func (s *Scorer) IsTarget(neighborhood string) bool {
	return s.targets[neighborhood]
}
