package engine

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"plan-advisor/pkg/plan"
)

// Diagnosis explains why a recommendation run produced nothing and proposes
// relaxations. It is recomputed fresh on every call.
type Diagnosis struct {
	// OverBudgetProducts satisfy every requested attribute but cost more
	// than the tolerated budget.
	OverBudgetProducts []plan.Product `json:"over_budget_products"`
	// InsufficientSpecs maps an attribute to the products that are within
	// budget tolerance but fall short on that attribute.
	InsufficientSpecs map[string][]plan.Product `json:"insufficient_specs"`
	// Suggestions are human-readable relaxation proposals.
	Suggestions []string `json:"suggestions"`
}

// AnalyzeNoMatch re-scans the catalog against the eligibility sub-checks
// and buckets the rejection causes. It is intended to run when Recommend
// returned an empty list but is well-defined for any input, including an
// empty catalog.
func (e *Engine) AnalyzeNoMatch(needs plan.NeedSet, budget decimal.Decimal, products []plan.Product) Diagnosis {
	diag := Diagnosis{
		OverBudgetProducts: make([]plan.Product, 0),
		InsufficientSpecs:  make(map[string][]plan.Product),
		Suggestions:        make([]string, 0),
	}

	tolerated := budget.Mul(decimal.NewFromFloat(e.cfg.Thresholds.BudgetTolerance))

	for _, product := range products {
		price := product.Specs.Price()

		if specsSatisfy(needs, product.Specs) && price.GreaterThan(tolerated) {
			diag.OverBudgetProducts = append(diag.OverBudgetProducts, product)
		}

		if price.LessThanOrEqual(tolerated) {
			for key, needed := range needs {
				if product.Specs.Value(key) < needed {
					diag.InsufficientSpecs[key] = append(diag.InsufficientSpecs[key], product)
				}
			}
		}
	}

	diag.Suggestions = e.suggestions(diag)
	return diag
}

// specsSatisfy reports whether every requested attribute is met or
// exceeded, ignoring price.
func specsSatisfy(needs plan.NeedSet, spec plan.Spec) bool {
	for key, needed := range needs {
		if spec.Value(key) < needed {
			return false
		}
	}
	return true
}

// suggestions proposes the smallest budget raise that unlocks a
// spec-satisfying product, and per insufficient attribute the best
// attainable value within tolerance.
func (e *Engine) suggestions(diag Diagnosis) []string {
	suggestions := make([]string, 0)

	if len(diag.OverBudgetProducts) > 0 {
		minPrice := diag.OverBudgetProducts[0].Specs.Price()
		for _, product := range diag.OverBudgetProducts[1:] {
			if price := product.Specs.Price(); price.LessThan(minPrice) {
				minPrice = price
			}
		}
		suggestions = append(suggestions, fmt.Sprintf("适当提高预算至%s元", minPrice.String()))
	}

	keys := make([]string, 0, len(diag.InsufficientSpecs))
	for key := range diag.InsufficientSpecs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		var maxSpec float64
		for _, product := range diag.InsufficientSpecs[key] {
			if v := product.Specs.Value(key); v > maxSpec {
				maxSpec = v
			}
		}
		suggestions = append(suggestions, fmt.Sprintf("降低%s需求至%s%s",
			displayName(key), formatQuantity(maxSpec), displayUnit(key)))
	}
	return suggestions
}
