package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"plan-advisor/pkg/plan"
)

// JSONSource loads packages from a JSON file holding an array of products.
// The configured carrier name is stamped onto every package, overriding
// whatever the file says.
type JSONSource struct {
	carrier string
	path    string
}

// NewJSONSource creates a file-backed source. The file is read on every
// Packages call so edits are picked up without a restart.
func NewJSONSource(path, carrier string) *JSONSource {
	return &JSONSource{carrier: carrier, path: path}
}

func (s *JSONSource) Carrier() string { return s.carrier }

func (s *JSONSource) Packages(_ context.Context) ([]plan.Product, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading package file: %w", err)
	}

	var packages []plan.Product
	if err := json.Unmarshal(data, &packages); err != nil {
		return nil, fmt.Errorf("parsing package file %s: %w", s.path, err)
	}

	for i := range packages {
		packages[i].Carrier = s.carrier
	}
	return packages, nil
}
