// Package finance normalizes currency-formatted listing text into numeric
// values and derives the capitalization rate. Parsing failure is non-fatal by
// design: a malformed price or cash-flow degrades the cap rate to 0.0 and the
// listing is still ranked.
package finance

import (
	"math"
	"strconv"
	"strings"

	"github.com/marty-droid/laundromat-app-v3/pkg/errors"
)

// Metrics is the derived financial view of one listing.
type Metrics struct {
	// Price is the asking price in dollars; 0 when the text failed to parse.
	Price float64 `json:"price"`

	// CashFlow is the annual cash flow in dollars; 0 when unparseable.
	CashFlow float64 `json:"cash_flow"`

	// CapRate is cash flow as a percentage of price, rounded to 2 decimals.
	// 0.0 when either input failed to parse or price is zero.
	CapRate float64 `json:"cap_rate"`
}

// ParseCurrency strips "$" and "," formatting from s and parses the remainder
// as a float. Surrounding whitespace is tolerated; anything else is an error.
func ParseCurrency(s string) (float64, error) {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, errors.Wrap(err, errors.ErrCodeValidation, "unparseable currency text").
			WithDetail("input=" + s)
	}
	return v, nil
}

// Normalize parses the currency-formatted price and cash-flow strings and
// computes capRate = (cashFlow / price) × 100 rounded to 2 decimals.
//
// Failure policy: a parse error on either field, or a zero price, yields
// Metrics with CapRate 0.0 and no error. Degradation is silent at this level;
// callers that want to log it can compare CapRate against the inputs.
func Normalize(price, cashFlow string) Metrics {
	p, perr := ParseCurrency(price)
	cf, cferr := ParseCurrency(cashFlow)

	m := Metrics{}
	if perr == nil {
		m.Price = p
	}
	if cferr == nil {
		m.CashFlow = cf
	}
	if perr != nil || cferr != nil || p == 0 {
		return m
	}

	m.CapRate = Round2(cf / p * 100)
	return m
}

// Round2 rounds v half-away-from-zero to 2 decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
