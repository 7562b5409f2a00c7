// Package plan defines the domain types shared by the recommendation
// engine, the catalog sources, and the API layer.
package plan

import (
	"sort"

	"github.com/shopspring/decimal"
)

// PriceKey is the spec entry that carries the monthly price of a package.
// Every catalog package must provide it; the validator enforces this at the
// catalog boundary rather than the engine.
const PriceKey = "price"

// NeedSet maps an attribute name (open set: "data", "calls", "sms", ...) to
// the quantity the user requires. Values are non-negative.
type NeedSet map[string]float64

// Keys returns the attribute names in ascending order. The engine uses this
// everywhere it iterates a NeedSet so that output is deterministic.
func (n NeedSet) Keys() []string {
	keys := make([]string, 0, len(n))
	for k := range n {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Spec maps the same attribute namespace to the quantity a package offers,
// plus the mandatory "price" entry.
type Spec map[string]float64

// Value returns the offered quantity for an attribute. Absent attributes
// are treated as 0.
func (s Spec) Value(key string) float64 {
	return s[key]
}

// Price returns the package price as a decimal. A missing price entry
// yields zero; the catalog validator reports that as a data error.
func (s Spec) Price() decimal.Decimal {
	return decimal.NewFromFloat(s[PriceKey])
}

// Product is an immutable catalog record. The engine only reads it.
type Product struct {
	Name     string   `json:"name"`
	Specs    Spec     `json:"specs"`
	Features []string `json:"features,omitempty"`
	Type     string   `json:"type,omitempty"`
	Carrier  string   `json:"carrier,omitempty"`
}
