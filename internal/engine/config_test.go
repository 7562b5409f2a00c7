package engine

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.ScoreWeights.UsageMatch != 0.7 || cfg.ScoreWeights.PriceAdvantage != 0.3 {
		t.Errorf("unexpected default weights: %+v", cfg.ScoreWeights)
	}
	if cfg.MaxRecommendations != 10 {
		t.Errorf("unexpected default max_recommendations: %d", cfg.MaxRecommendations)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative usage weight", func(c *Config) { c.ScoreWeights.UsageMatch = -0.1 }},
		{"negative price weight", func(c *Config) { c.ScoreWeights.PriceAdvantage = -1 }},
		{"tolerance below one", func(c *Config) { c.Thresholds.BudgetTolerance = 0.9 }},
		{"negative waste penalty", func(c *Config) { c.Thresholds.WastePenalty = -0.5 }},
		{"perfect match ratio below one", func(c *Config) { c.Thresholds.PerfectMatchRatio = 0.5 }},
		{"zero max recommendations", func(c *Config) { c.MaxRecommendations = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("expected validation error for %+v", cfg)
			}
		})
	}
}

func TestConfigPatchApplyPartial(t *testing.T) {
	var patch ConfigPatch
	if err := json.Unmarshal([]byte(`{"thresholds": {"waste_penalty": 0.5}}`), &patch); err != nil {
		t.Fatal(err)
	}

	cfg := patch.Apply(DefaultConfig())

	if cfg.Thresholds.WastePenalty != 0.5 {
		t.Errorf("waste_penalty not applied: %v", cfg.Thresholds.WastePenalty)
	}
	// Untouched fields keep their defaults.
	if cfg.Thresholds.BudgetTolerance != 1.2 {
		t.Errorf("budget_tolerance changed unexpectedly: %v", cfg.Thresholds.BudgetTolerance)
	}
	if cfg.ScoreWeights.UsageMatch != 0.7 {
		t.Errorf("usage_match changed unexpectedly: %v", cfg.ScoreWeights.UsageMatch)
	}
}

func TestLoadConfigMergesOntoDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"score_weights": {"usage_match": 0.6, "price_advantage": 0.4}, "max_recommendations": 5}`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.ScoreWeights.UsageMatch != 0.6 || cfg.ScoreWeights.PriceAdvantage != 0.4 {
		t.Errorf("weights not merged: %+v", cfg.ScoreWeights)
	}
	if cfg.MaxRecommendations != 5 {
		t.Errorf("max_recommendations not merged: %d", cfg.MaxRecommendations)
	}
	if cfg.Thresholds != DefaultConfig().Thresholds {
		t.Errorf("thresholds should stay at defaults: %+v", cfg.Thresholds)
	}
}

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("missing file should not be an error: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"max_recommendations": 0}`), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected an error for an invalid merged config")
	}
}

func TestLoadConfigRejectsMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{not json`), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected a parse error")
	}
}
