// Package catalog manages the product catalog behind the recommendation
// engine. Providers plug in through the Source interface; the Manager
// aggregates them. Source registration order is significant: it fixes the
// catalog order the engine uses as ranking tie-break.
package catalog

import (
	"context"
	"fmt"

	"plan-advisor/pkg/plan"
)

// Source produces the packages of a single carrier.
type Source interface {
	// Carrier returns the provider label stamped onto the packages.
	Carrier() string
	// Packages returns the carrier's packages in catalog order.
	Packages(ctx context.Context) ([]plan.Product, error)
}

// Manager aggregates registered sources into one catalog.
type Manager struct {
	sources []Source
}

// NewManager creates a manager with the given sources, in order.
func NewManager(sources ...Source) *Manager {
	return &Manager{sources: sources}
}

// DefaultManager returns a manager with the built-in carrier sources.
func DefaultManager() *Manager {
	return NewManager(NewChinaMobile())
}

// Register appends a source to the catalog.
func (m *Manager) Register(source Source) {
	m.sources = append(m.sources, source)
}

// Carriers lists the registered carrier names in registration order.
func (m *Manager) Carriers() []string {
	carriers := make([]string, 0, len(m.sources))
	for _, source := range m.sources {
		carriers = append(carriers, source.Carrier())
	}
	return carriers
}

// All returns every package of every source, in registration order.
func (m *Manager) All(ctx context.Context) ([]plan.Product, error) {
	all := make([]plan.Product, 0)
	for _, source := range m.sources {
		packages, err := source.Packages(ctx)
		if err != nil {
			return nil, fmt.Errorf("loading packages from %s: %w", source.Carrier(), err)
		}
		all = append(all, packages...)
	}
	return all, nil
}

// ByCarrier returns the packages of the named carrier, or an empty list
// when the carrier is unknown.
func (m *Manager) ByCarrier(ctx context.Context, carrier string) ([]plan.Product, error) {
	for _, source := range m.sources {
		if source.Carrier() == carrier {
			return source.Packages(ctx)
		}
	}
	return []plan.Product{}, nil
}
