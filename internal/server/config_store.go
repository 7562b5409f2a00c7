package server

import (
	"sync"

	"plan-advisor/internal/engine"
)

// ConfigStore guards the process-wide engine configuration. The engine is a
// pure function of a Config snapshot, so the store hands out copies: a
// request holds a consistent view for its whole scan even while another
// request is updating the configuration.
type ConfigStore struct {
	mu  sync.RWMutex
	cfg engine.Config
}

// NewConfigStore creates a store seeded with the given configuration.
func NewConfigStore(cfg engine.Config) *ConfigStore {
	return &ConfigStore{cfg: cfg}
}

// Snapshot returns a copy of the current configuration.
func (s *ConfigStore) Snapshot() engine.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Update applies a partial patch read-modify-write under the lock. The
// merged result is validated before it replaces the current configuration,
// so a bad patch leaves the store untouched.
func (s *ConfigStore) Update(patch engine.ConfigPatch) (engine.Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := patch.Apply(s.cfg)
	if err := merged.Validate(); err != nil {
		return s.cfg, err
	}
	s.cfg = merged
	return merged, nil
}
