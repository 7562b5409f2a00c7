package main

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseNeeds(t *testing.T) {
	needs, err := parseNeeds([]string{"data=30", "calls=500", "sms=0.5"})
	if err != nil {
		t.Fatalf("parseNeeds() error: %v", err)
	}
	if needs["data"] != 30 || needs["calls"] != 500 || needs["sms"] != 0.5 {
		t.Errorf("parseNeeds() = %v", needs)
	}
}

func TestParseNeedsRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"no separator", "data30"},
		{"empty key", "=30"},
		{"non-numeric value", "data=abc"},
		{"negative value", "data=-5"},
		{"nan value", "data=NaN"},
		{"inf value", "data=Inf"},
		{"negative inf value", "data=-Inf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseNeeds([]string{tt.raw}); err == nil {
				t.Errorf("parseNeeds(%q) should fail", tt.raw)
			}
		})
	}
}

func TestParseBudget(t *testing.T) {
	budget, err := parseBudget(150)
	if err != nil {
		t.Fatalf("parseBudget(150) error: %v", err)
	}
	if !budget.Equal(decimal.NewFromInt(150)) {
		t.Errorf("parseBudget(150) = %s", budget)
	}

	if _, err := parseBudget(0); err != nil {
		t.Errorf("zero budget is valid input: %v", err)
	}
}

func TestParseBudgetRejectsBadInput(t *testing.T) {
	// ParseFloat, which backs the budget flag, accepts "NaN" and "Inf";
	// they must be caught here instead of panicking in the decimal
	// conversion.
	tests := []struct {
		name  string
		value float64
	}{
		{"negative", -1},
		{"nan", math.NaN()},
		{"positive inf", math.Inf(1)},
		{"negative inf", math.Inf(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseBudget(tt.value); err == nil {
				t.Errorf("parseBudget(%v) should fail", tt.value)
			}
		})
	}
}
