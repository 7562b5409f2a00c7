package engine

import (
	"reflect"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"plan-advisor/pkg/plan"
)

func budget(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

func TestRecommendMatchingScenario(t *testing.T) {
	eng := New(DefaultConfig())
	needs := plan.NeedSet{"data": 30, "calls": 500}
	products := []plan.Product{
		{Name: "5G套餐A", Specs: plan.Spec{"data": 30, "calls": 500, "price": 100}},
	}

	recs := eng.Recommend(needs, budget(150), products)
	if len(recs) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(recs))
	}

	rec := recs[0]
	if rec.UsageScore != 1.0 {
		t.Errorf("usage score = %v, want 1.0", rec.UsageScore)
	}
	if rec.PriceScore != 1.5 {
		t.Errorf("price score = %v, want 1.5", rec.PriceScore)
	}
	// 1.0*0.7 + 1.5*0.3 = 1.15
	if rec.Score != 1.15 {
		t.Errorf("score = %v, want 1.15", rec.Score)
	}
	if !strings.Contains(rec.MatchReason, "节省50") {
		t.Errorf("match reason %q missing savings clause", rec.MatchReason)
	}
}

func TestRecommendExcludesOverToleratedBudget(t *testing.T) {
	eng := New(DefaultConfig())
	needs := plan.NeedSet{"data": 30}
	products := []plan.Product{
		{Name: "贵套餐", Specs: plan.Spec{"data": 30, "price": 200}},
	}

	// 200 > 50 * 1.2, never recommended regardless of scores.
	recs := eng.Recommend(needs, budget(50), products)
	if len(recs) != 0 {
		t.Fatalf("expected no recommendations, got %d", len(recs))
	}
}

func TestRecommendExcludesInsufficientSpecs(t *testing.T) {
	eng := New(DefaultConfig())
	needs := plan.NeedSet{"data": 100}
	products := []plan.Product{
		{Name: "小套餐", Specs: plan.Spec{"data": 10, "price": 50}},
	}

	recs := eng.Recommend(needs, budget(500), products)
	if len(recs) != 0 {
		t.Fatalf("expected no recommendations, got %d", len(recs))
	}
}

func TestRecommendExcludesMissingRequestedAttribute(t *testing.T) {
	eng := New(DefaultConfig())
	needs := plan.NeedSet{"data": 30, "sms": 100}
	products := []plan.Product{
		{Name: "无短信套餐", Specs: plan.Spec{"data": 50, "price": 40}},
	}

	recs := eng.Recommend(needs, budget(100), products)
	if len(recs) != 0 {
		t.Fatalf("missing requested attribute must be ineligible, got %d recommendations", len(recs))
	}
}

func TestRecommendWithinToleranceOverBudget(t *testing.T) {
	eng := New(DefaultConfig())
	needs := plan.NeedSet{"data": 30}
	products := []plan.Product{
		{Name: "略超套餐", Specs: plan.Spec{"data": 30, "price": 110}},
	}

	// 110 <= 100 * 1.2, eligible although over the raw budget.
	recs := eng.Recommend(needs, budget(100), products)
	if len(recs) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(recs))
	}
	if !strings.Contains(recs[0].MatchReason, "超预算") {
		t.Errorf("match reason %q missing over-budget clause", recs[0].MatchReason)
	}
}

func TestRecommendSortedDescendingAndBounded(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxRecommendations = 2
	eng := New(cfg)

	needs := plan.NeedSet{"data": 10}
	products := []plan.Product{
		{Name: "中", Specs: plan.Spec{"data": 10, "price": 80}},
		{Name: "优", Specs: plan.Spec{"data": 10, "price": 50}},
		{Name: "差", Specs: plan.Spec{"data": 10, "price": 100}},
	}

	recs := eng.Recommend(needs, budget(100), products)
	if len(recs) != 2 {
		t.Fatalf("expected truncation to 2, got %d", len(recs))
	}
	for i := 0; i+1 < len(recs); i++ {
		if recs[i].Score < recs[i+1].Score {
			t.Errorf("recommendations not sorted: score[%d]=%v < score[%d]=%v",
				i, recs[i].Score, i+1, recs[i+1].Score)
		}
	}
	if recs[0].Product.Name != "优" {
		t.Errorf("best product = %s, want 优", recs[0].Product.Name)
	}
}

func TestRecommendStableTieBreakKeepsCatalogOrder(t *testing.T) {
	eng := New(DefaultConfig())
	needs := plan.NeedSet{"data": 20}
	products := []plan.Product{
		{Name: "先到", Specs: plan.Spec{"data": 20, "price": 60}},
		{Name: "后到", Specs: plan.Spec{"data": 20, "price": 60}},
	}

	recs := eng.Recommend(needs, budget(90), products)
	if len(recs) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(recs))
	}
	if recs[0].Product.Name != "先到" || recs[1].Product.Name != "后到" {
		t.Errorf("equal scores must keep catalog order, got %s then %s",
			recs[0].Product.Name, recs[1].Product.Name)
	}
}

func TestRecommendIdempotent(t *testing.T) {
	eng := New(DefaultConfig())
	needs := plan.NeedSet{"data": 30, "calls": 500}
	products := []plan.Product{
		{Name: "A", Specs: plan.Spec{"data": 30, "calls": 500, "price": 100}},
		{Name: "B", Specs: plan.Spec{"data": 40, "calls": 700, "price": 158}},
	}

	first := eng.Recommend(needs, budget(150), products)
	second := eng.Recommend(needs, budget(150), products)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("identical inputs produced different outputs:\n%v\n%v", first, second)
	}
}

func TestRecommendScoreBoundsNonNegative(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Thresholds.WastePenalty = 5.0
	eng := New(cfg)

	needs := plan.NeedSet{"data": 1}
	products := []plan.Product{
		{Name: "过剩套餐", Specs: plan.Spec{"data": 100, "price": 10}},
	}

	recs := eng.Recommend(needs, budget(30), products)
	if len(recs) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(recs))
	}
	if recs[0].UsageScore < 0 {
		t.Errorf("usage score = %v, must be non-negative", recs[0].UsageScore)
	}
	if recs[0].PriceScore < 0 {
		t.Errorf("price score = %v, must be non-negative", recs[0].PriceScore)
	}
}

func TestRecommendEmptyCatalog(t *testing.T) {
	eng := New(DefaultConfig())
	recs := eng.Recommend(plan.NeedSet{"data": 10}, budget(50), nil)
	if len(recs) != 0 {
		t.Fatalf("expected no recommendations for empty catalog, got %d", len(recs))
	}
}
