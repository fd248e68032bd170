// Package geo implements the location classifier: it maps a coordinate pair
// to a named neighborhood and a match score using an ordered table of
// bounding-box rules. All business rules about location verification live
// here; the rule table is data, not behavior, so rules can be added,
// reordered, and tested independently of scoring.
package geo

// OutsideTarget is the sentinel neighborhood name returned when no rule box
// contains the point.
const OutsideTarget = "Outside Target"

// Classification is the classifier's result for a single coordinate pair.
// Produced once per listing, never mutated.
type Classification struct {
	// Neighborhood is the matched rule's neighborhood name, or OutsideTarget.
	Neighborhood string `json:"neighborhood"`

	// MatchScore is the rule's fixed confidence in [0.0, 1.0]; 0.0 when no
	// rule matched.
	MatchScore float64 `json:"match_score"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Bounding-box rule table
// ─────────────────────────────────────────────────────────────────────────────

// Box is a latitude/longitude bounding box with inclusive bounds on all four
// edges.
type Box struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// Contains reports whether the point lies inside the box. Boundaries are
// inclusive on both ends, so a point exactly on an edge is inside.
func (b Box) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat &&
		lon >= b.MinLon && lon <= b.MaxLon
}

// Rule pairs a bounding box with the classification it yields.
type Rule struct {
	Neighborhood string
	MatchScore   float64
	Box          Box
}

// DefaultRules returns the reference rule table for the Chicago northwest-side
// target area. Order is significant: boxes may overlap, and the first
// matching rule wins, so the Logan Square box shadows the Avondale box where
// they share the lat [41.92, 41.93] × lon [-87.73, -87.72] band.
func DefaultRules() []Rule {
	return []Rule{
		{
			Neighborhood: "Logan Square",
			MatchScore:   1.0,
			Box:          Box{MinLat: 41.92, MaxLat: 41.94, MinLon: -87.73, MaxLon: -87.70},
		},
		{
			Neighborhood: "Avondale",
			MatchScore:   0.9,
			Box:          Box{MinLat: 41.92, MaxLat: 41.93, MinLon: -87.74, MaxLon: -87.72},
		},
		{
			Neighborhood: "Hermosa",
			MatchScore:   0.85,
			Box:          Box{MinLat: 41.90, MaxLat: 41.92, MinLon: -87.75, MaxLon: -87.73},
		},
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Classifier
// ─────────────────────────────────────────────────────────────────────────────

// Classifier evaluates an ordered rule list with first-match-wins semantics.
// It is immutable after construction and safe for concurrent use.
type Classifier struct {
	rules []Rule
}

// NewClassifier constructs a Classifier over the given ordered rules. Passing
// no rules yields a classifier that returns OutsideTarget for every point.
func NewClassifier(rules ...Rule) *Classifier {
	cloned := make([]Rule, len(rules))
	copy(cloned, rules)
	return &Classifier{rules: cloned}
}

// NewDefaultClassifier constructs a Classifier over DefaultRules.
func NewDefaultClassifier() *Classifier {
	return NewClassifier(DefaultRules()...)
}

// Classify returns exactly one Classification for the point: the result of
// the first rule whose box contains it, or (OutsideTarget, 0.0) when none
// does. Coordinates outside any plausible range simply fail every box test,
// so degraded input degrades the result without an error.
func (c *Classifier) Classify(lat, lon float64) Classification {
	for _, r := range c.rules {
		if r.Box.Contains(lat, lon) {
			return Classification{Neighborhood: r.Neighborhood, MatchScore: r.MatchScore}
		}
	}
	return Classification{Neighborhood: OutsideTarget, MatchScore: 0.0}
}

// Rules returns a copy of the classifier's rule table, in evaluation order.
func (c *Classifier) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}
