package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"plan-advisor/pkg/plan"
)

// reasonSeparator joins the individual clauses of a match reason.
const reasonSeparator = "；"

// savingsThreshold is the minimum saving, in currency units, worth calling
// out explicitly instead of a plain "within budget" clause.
var savingsThreshold = decimal.NewFromInt(20)

// attributeNames maps attribute keys to display names. Unknown keys fall
// back to the raw key.
var attributeNames = map[string]string{
	"data":  "流量",
	"calls": "通话",
	"sms":   "短信",
}

// attributeUnits maps attribute keys to display units. Unknown keys fall
// back to an empty unit.
var attributeUnits = map[string]string{
	"data":  "GB",
	"calls": "分钟",
	"sms":   "条",
}

func displayName(key string) string {
	if name, ok := attributeNames[key]; ok {
		return name
	}
	return key
}

func displayUnit(key string) string {
	return attributeUnits[key]
}

// explain builds the human-readable justification for recommending a
// product: one clause per satisfied attribute, in ascending attribute key
// order, followed by a price clause.
func (e *Engine) explain(needs plan.NeedSet, budget decimal.Decimal, product plan.Product) string {
	clauses := e.attributeClauses(needs, product.Specs)
	if priceClause := e.priceClause(budget, product.Specs.Price()); priceClause != "" {
		clauses = append(clauses, priceClause)
	}
	return strings.Join(clauses, reasonSeparator)
}

func (e *Engine) attributeClauses(needs plan.NeedSet, spec plan.Spec) []string {
	clauses := make([]string, 0, len(needs))

	for _, key := range needs.Keys() {
		offered, ok := spec[key]
		if !ok {
			continue
		}
		needed := needs[key]
		if offered < needed {
			continue
		}

		name := displayName(key)
		unit := displayUnit(key)

		if offered <= needed*e.cfg.Thresholds.PerfectMatchRatio {
			clauses = append(clauses, fmt.Sprintf("%s%s%s完全满足您%s%s的需求",
				name, formatQuantity(offered), unit, formatQuantity(needed), unit))
		} else {
			clauses = append(clauses, fmt.Sprintf("%s%s%s充足，比需求多%.1f%s",
				name, formatQuantity(offered), unit, offered-needed, unit))
		}
	}
	return clauses
}

func (e *Engine) priceClause(budget, price decimal.Decimal) string {
	if price.LessThanOrEqual(budget) {
		savings := budget.Sub(price)
		if savings.GreaterThanOrEqual(savingsThreshold) {
			return fmt.Sprintf("价格%s元，比预算节省%s元", price.String(), savings.String())
		}
		return fmt.Sprintf("价格%s元，在预算范围内", price.String())
	}

	tolerated := budget.Mul(decimal.NewFromFloat(e.cfg.Thresholds.BudgetTolerance))
	if price.LessThanOrEqual(tolerated) {
		excess := price.Sub(budget)
		return fmt.Sprintf("价格%s元，超预算%s元但性价比高", price.String(), excess.String())
	}
	return ""
}

// formatQuantity renders an attribute quantity without trailing zeros, so
// 30 prints as "30" and 0.3 as "0.3".
func formatQuantity(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
