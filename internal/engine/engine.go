// Package engine implements the recommendation core: eligibility checks,
// usage/price scoring, ranking, human-readable match reasons, and the
// no-match diagnostics. Every operation is a pure function of its inputs
// and the Config snapshot the engine was built with; the engine performs no
// I/O and keeps no state between calls.
package engine

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"plan-advisor/pkg/plan"
)

// Recommendation is one entry of the ranked shortlist. Scores are rounded
// to two decimal places.
type Recommendation struct {
	Product     plan.Product `json:"product"`
	Score       float64      `json:"score"`
	UsageScore  float64      `json:"usage_score"`
	PriceScore  float64      `json:"price_score"`
	MatchReason string       `json:"match_reason"`
}

// Engine evaluates catalog products against user needs and a budget.
type Engine struct {
	cfg Config
}

// New creates an engine with the given configuration snapshot.
func New(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Recommend scores every eligible product and returns the shortlist sorted
// by descending score, truncated to MaxRecommendations. Ties keep catalog
// input order.
func (e *Engine) Recommend(needs plan.NeedSet, budget decimal.Decimal, products []plan.Product) []Recommendation {
	recs := make([]Recommendation, 0, len(products))

	for _, product := range products {
		if rec, ok := e.evaluate(needs, budget, product); ok {
			recs = append(recs, rec)
		}
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Score > recs[j].Score
	})

	if len(recs) > e.cfg.MaxRecommendations {
		recs = recs[:e.cfg.MaxRecommendations]
	}
	return recs
}

// evaluate runs a single product through eligibility, scoring, and reason
// generation. The second return is false for ineligible products.
func (e *Engine) evaluate(needs plan.NeedSet, budget decimal.Decimal, product plan.Product) (Recommendation, bool) {
	if !e.isEligible(needs, product.Specs, budget) {
		return Recommendation{}, false
	}

	usageScore := e.UsageScore(needs, product.Specs)
	priceScore := PriceScore(budget, product.Specs.Price())
	score := usageScore*e.cfg.ScoreWeights.UsageMatch + priceScore*e.cfg.ScoreWeights.PriceAdvantage

	return Recommendation{
		Product:     product,
		Score:       round2(score),
		UsageScore:  round2(usageScore),
		PriceScore:  round2(priceScore),
		MatchReason: e.explain(needs, budget, product),
	}, true
}

// isEligible reports whether a product is considered at all: the price must
// be within the tolerated budget and every requested attribute must be met
// or exceeded. Attributes the product offers but the user never asked for
// carry no penalty here.
func (e *Engine) isEligible(needs plan.NeedSet, spec plan.Spec, budget decimal.Decimal) bool {
	tolerated := budget.Mul(decimal.NewFromFloat(e.cfg.Thresholds.BudgetTolerance))
	if spec.Price().GreaterThan(tolerated) {
		return false
	}

	for key, needed := range needs {
		if spec.Value(key) < needed {
			return false
		}
	}
	return true
}

// round2 rounds to two decimal places, the precision all reported scores
// carry.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
