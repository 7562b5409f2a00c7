package engine

import (
	"github.com/shopspring/decimal"

	"plan-advisor/pkg/plan"
)

// satisfactionCap limits how much credit one attribute can earn. A product
// is at most 2x as good per attribute, so a single over-provisioned
// attribute cannot dominate the score.
const satisfactionCap = 2.0

// UsageScore computes the usage-fit score for a product spec against the
// user's needs: the average per-attribute satisfaction ratio minus a scaled
// average waste penalty, floored at zero.
func (e *Engine) UsageScore(needs plan.NeedSet, spec plan.Spec) float64 {
	var (
		scoreSum     float64
		scoreCount   int
		penaltySum   float64
		penaltyCount int
	)

	// Sorted keys keep float summation order, and with it the score, fixed
	// for identical inputs.
	for _, key := range needs.Keys() {
		needed := needs[key]
		offered := spec.Value(key)

		if needed > 0 {
			satisfaction := offered / needed
			if satisfaction > satisfactionCap {
				satisfaction = satisfactionCap
			}
			scoreSum += satisfaction
		} else {
			// No demand on this attribute; neutral credit.
			scoreSum += 1.0
		}
		scoreCount++

		if needed > 0 && offered > needed {
			penaltySum += (offered - needed) / needed
			penaltyCount++
		}
	}

	var avgScore, avgPenalty float64
	if scoreCount > 0 {
		avgScore = scoreSum / float64(scoreCount)
	}
	if penaltyCount > 0 {
		avgPenalty = penaltySum / float64(penaltyCount)
	}

	score := avgScore - avgPenalty*e.cfg.Thresholds.WastePenalty
	if score < 0 {
		return 0
	}
	return score
}

// PriceScore is the budget-to-price ratio: larger means more budget
// headroom per unit price. A zero or negative price yields no credit
// rather than an undefined value.
func PriceScore(budget, price decimal.Decimal) float64 {
	if !price.IsPositive() {
		return 0
	}
	return budget.Div(price).InexactFloat64()
}
