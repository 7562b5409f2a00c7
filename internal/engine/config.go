package engine

import (
	"encoding/json"
	"fmt"
	"os"
)

// Weights controls how the two sub-scores combine into the final score.
// They are non-negative and need not sum to 1.
type Weights struct {
	UsageMatch     float64 `json:"usage_match"`
	PriceAdvantage float64 `json:"price_advantage"`
}

// Thresholds holds the tunable decision thresholds.
type Thresholds struct {
	// BudgetTolerance is the multiplier on the budget that defines the
	// maximum price still considered in range (>= 1.0).
	BudgetTolerance float64 `json:"budget_tolerance"`
	// WastePenalty scales the average over-provisioning ratio subtracted
	// from the usage score (>= 0).
	WastePenalty float64 `json:"waste_penalty"`
	// PerfectMatchRatio is the surplus ratio below which a match is phrased
	// as fully satisfying rather than exceeding (>= 1.0).
	PerfectMatchRatio float64 `json:"perfect_match_ratio"`
}

// Config holds the engine weights and thresholds. It is plain data; callers
// that mutate a shared Config concurrently with reads must synchronize
// externally (the engine itself is a pure function of its inputs and a
// Config snapshot).
type Config struct {
	ScoreWeights       Weights    `json:"score_weights"`
	Thresholds         Thresholds `json:"thresholds"`
	MaxRecommendations int        `json:"max_recommendations"`
}

// DefaultConfig returns the reference configuration.
func DefaultConfig() Config {
	return Config{
		ScoreWeights: Weights{
			UsageMatch:     0.7,
			PriceAdvantage: 0.3,
		},
		Thresholds: Thresholds{
			BudgetTolerance:   1.2,
			WastePenalty:      0.1,
			PerfectMatchRatio: 1.5,
		},
		MaxRecommendations: 10,
	}
}

// Validate checks the configuration invariants.
func (c Config) Validate() error {
	if c.ScoreWeights.UsageMatch < 0 {
		return fmt.Errorf("score_weights.usage_match must be non-negative, got %v", c.ScoreWeights.UsageMatch)
	}
	if c.ScoreWeights.PriceAdvantage < 0 {
		return fmt.Errorf("score_weights.price_advantage must be non-negative, got %v", c.ScoreWeights.PriceAdvantage)
	}
	if c.Thresholds.BudgetTolerance < 1.0 {
		return fmt.Errorf("thresholds.budget_tolerance must be >= 1.0, got %v", c.Thresholds.BudgetTolerance)
	}
	if c.Thresholds.WastePenalty < 0 {
		return fmt.Errorf("thresholds.waste_penalty must be non-negative, got %v", c.Thresholds.WastePenalty)
	}
	if c.Thresholds.PerfectMatchRatio < 1.0 {
		return fmt.Errorf("thresholds.perfect_match_ratio must be >= 1.0, got %v", c.Thresholds.PerfectMatchRatio)
	}
	if c.MaxRecommendations < 1 {
		return fmt.Errorf("max_recommendations must be positive, got %d", c.MaxRecommendations)
	}
	return nil
}

// ConfigPatch is a partial configuration update. Only non-nil fields are
// applied, so callers can update a single threshold without restating the
// rest.
type ConfigPatch struct {
	ScoreWeights *struct {
		UsageMatch     *float64 `json:"usage_match"`
		PriceAdvantage *float64 `json:"price_advantage"`
	} `json:"score_weights"`
	Thresholds *struct {
		BudgetTolerance   *float64 `json:"budget_tolerance"`
		WastePenalty      *float64 `json:"waste_penalty"`
		PerfectMatchRatio *float64 `json:"perfect_match_ratio"`
	} `json:"thresholds"`
	MaxRecommendations *int `json:"max_recommendations"`
}

// Apply merges the patch onto a config and returns the result.
func (p ConfigPatch) Apply(c Config) Config {
	if p.ScoreWeights != nil {
		if p.ScoreWeights.UsageMatch != nil {
			c.ScoreWeights.UsageMatch = *p.ScoreWeights.UsageMatch
		}
		if p.ScoreWeights.PriceAdvantage != nil {
			c.ScoreWeights.PriceAdvantage = *p.ScoreWeights.PriceAdvantage
		}
	}
	if p.Thresholds != nil {
		if p.Thresholds.BudgetTolerance != nil {
			c.Thresholds.BudgetTolerance = *p.Thresholds.BudgetTolerance
		}
		if p.Thresholds.WastePenalty != nil {
			c.Thresholds.WastePenalty = *p.Thresholds.WastePenalty
		}
		if p.Thresholds.PerfectMatchRatio != nil {
			c.Thresholds.PerfectMatchRatio = *p.Thresholds.PerfectMatchRatio
		}
	}
	if p.MaxRecommendations != nil {
		c.MaxRecommendations = *p.MaxRecommendations
	}
	return c
}

// LoadConfig reads a JSON config file and merges it onto the defaults, so a
// file may specify only the keys it wants to change. A missing file is not
// an error; the defaults are returned.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file: %w", err)
	}

	var patch ConfigPatch
	if err := json.Unmarshal(data, &patch); err != nil {
		return cfg, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	cfg = patch.Apply(cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}
