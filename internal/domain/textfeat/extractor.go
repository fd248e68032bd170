// Package textfeat implements keyword extraction of acquisition signals from
// free-text listing descriptions. The matcher is deliberately naive: four
// fixed pattern groups, case-insensitive substring matching, no stemming, no
// negation handling ("not real estate included" still sets the real-estate
// signal). The groups must stay as shipped so scores remain reproducible
// against the reference data.
package textfeat

import (
	"regexp"
	"strings"
)

// Signals is the set of boolean acquisition signals extracted from one
// description. The four signals are independent; a text may set any subset.
type Signals struct {
	// RealEstateIncluded is true when the sale includes the building.
	RealEstateIncluded bool `json:"real_estate_included"`

	// SellerMotivation is true when the text suggests a motivated seller.
	SellerMotivation bool `json:"seller_motivation"`

	// OldEquipment is true when the machines are described as aged, which
	// favors a fresh concept build-out.
	OldEquipment bool `json:"old_equipment"`

	// HighCapacity is true when the store is described as modern or
	// high-throughput.
	HighCapacity bool `json:"high_capacity"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Pattern group table
// ─────────────────────────────────────────────────────────────────────────────

// Group names, used for inspection and test output.
const (
	GroupRealEstate = "real_estate_included"
	GroupMotivation = "seller_motivation"
	GroupOldEquip   = "old_equipment"
	GroupHighCap    = "high_capacity"
)

// group binds one compiled phrase disjunction to the signal field it sets.
type group struct {
	name    string
	pattern *regexp.Regexp
	set     func(*Signals)
}

// defaultGroups is the reference pattern table. Each entry is a disjunction
// of phrases matched as substrings against the lower-cased description.
// Evaluation order is irrelevant since the groups set independent fields.
var defaultGroups = []group{
	{
		name:    GroupRealEstate,
		pattern: regexp.MustCompile(`real estate included|building included|property included`),
		set:     func(s *Signals) { s.RealEstateIncluded = true },
	},
	{
		name:    GroupMotivation,
		pattern: regexp.MustCompile(`owner retiring|needs quick sale|moving out of state|must sell|quick exit`),
		set:     func(s *Signals) { s.SellerMotivation = true },
	},
	{
		name:    GroupOldEquip,
		pattern: regexp.MustCompile(`old equipment|older machines|ready for upgrade|inefficient machines`),
		set:     func(s *Signals) { s.OldEquipment = true },
	},
	{
		name:    GroupHighCap,
		pattern: regexp.MustCompile(`high-capacity|modern equipment|fully updated`),
		set:     func(s *Signals) { s.HighCapacity = true },
	},
}

// ─────────────────────────────────────────────────────────────────────────────
// Extractor
// ─────────────────────────────────────────────────────────────────────────────

// Extractor scans description text against the pattern group table. It is
// stateless and safe for concurrent use.
type Extractor struct {
	groups []group
}

// NewExtractor constructs an Extractor over the reference pattern groups.
func NewExtractor() *Extractor {
	return &Extractor{groups: defaultGroups}
}

// Extract lower-cases the description and independently tests every pattern
// group. A signal is true iff the text matches any phrase in its group.
func (e *Extractor) Extract(description string) Signals {
	lower := strings.ToLower(description)

	var s Signals
	for _, g := range e.groups {
		if g.pattern.MatchString(lower) {
			g.set(&s)
		}
	}
	return s
}

// GroupNames returns the names of the configured pattern groups.
func (e *Extractor) GroupNames() []string {
	names := make([]string, len(e.groups))
	for i, g := range e.groups {
		names[i] = g.name
	}
	return names
}
