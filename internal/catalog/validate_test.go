package catalog

import (
	"math"
	"strings"
	"testing"

	"plan-advisor/pkg/plan"
)

func TestValidateCleanCatalog(t *testing.T) {
	packages := []plan.Product{
		{Name: "好套餐", Specs: plan.Spec{"data": 30, "calls": 500, "price": 100}},
	}
	if errs := Validate(packages); len(errs) != 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestValidateProblems(t *testing.T) {
	tests := []struct {
		name    string
		pkg     plan.Product
		wantSub string
	}{
		{
			name:    "missing name",
			pkg:     plan.Product{Specs: plan.Spec{"data": 1, "calls": 0, "price": 10}},
			wantSub: "缺少字段 'name'",
		},
		{
			name:    "missing specs",
			pkg:     plan.Product{Name: "无规格"},
			wantSub: "缺少字段 'specs'",
		},
		{
			name:    "missing price",
			pkg:     plan.Product{Name: "无价格", Specs: plan.Spec{"data": 1, "calls": 0}},
			wantSub: "specs缺少字段 'price'",
		},
		{
			name:    "missing data",
			pkg:     plan.Product{Name: "无流量", Specs: plan.Spec{"calls": 0, "price": 10}},
			wantSub: "specs缺少字段 'data'",
		},
		{
			name:    "negative value",
			pkg:     plan.Product{Name: "负价", Specs: plan.Spec{"data": 1, "calls": 0, "price": -10}},
			wantSub: "specs.price 不能为负数",
		},
		{
			name:    "non-finite value",
			pkg:     plan.Product{Name: "坏数", Specs: plan.Spec{"data": math.NaN(), "calls": 0, "price": 10}},
			wantSub: "specs.data 应为数字类型",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Validate([]plan.Product{tt.pkg})
			if len(errs) == 0 {
				t.Fatalf("expected an error containing %q", tt.wantSub)
			}
			found := false
			for _, e := range errs {
				if strings.Contains(e, tt.wantSub) {
					found = true
				}
			}
			if !found {
				t.Errorf("no error contains %q: %v", tt.wantSub, errs)
			}
		})
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	packages := []plan.Product{
		{Specs: plan.Spec{"data": -1, "calls": 0, "price": 10}}, // no name, negative data
		{Name: "正常", Specs: plan.Spec{"data": 1, "calls": 0, "price": 10}},
		{Name: "缺项", Specs: plan.Spec{"price": 10}}, // missing data and calls
	}

	errs := Validate(packages)
	if len(errs) != 4 {
		t.Errorf("expected 4 problems, got %d: %v", len(errs), errs)
	}
	// Indices in messages refer to the package position.
	if !strings.Contains(errs[0], "套餐 0") {
		t.Errorf("first error should name package 0: %q", errs[0])
	}
}
