// Package api defines the wire contracts shared by the HTTP server and the
// CLI. The engine itself mandates no wire format; these types are the
// transport layer's concern.
package api

import (
	"plan-advisor/internal/engine"
	"plan-advisor/pkg/plan"
)

// RecommendRequest asks for a ranked shortlist. UserBudget is a pointer so
// a missing budget can be told apart from a zero one.
type RecommendRequest struct {
	UserNeeds  map[string]float64 `json:"user_needs"`
	UserBudget *float64           `json:"user_budget"`
	Carrier    string             `json:"carrier,omitempty"`
}

// RecommendResponse carries the shortlist, or the no-match analysis when
// the shortlist is empty.
type RecommendResponse struct {
	Success   bool                    `json:"success"`
	Data      []engine.Recommendation `json:"data"`
	Count     int                     `json:"count"`
	Analysis  *engine.Diagnosis       `json:"analysis,omitempty"`
	Message   string                  `json:"message,omitempty"`
	RequestID string                  `json:"request_id,omitempty"`
}

// BatchRecommendRequest bundles several recommendation requests into one
// call over a shared catalog snapshot.
type BatchRecommendRequest struct {
	Requests []RecommendRequest `json:"requests"`
}

// BatchRecommendResult is the outcome of a single request in a batch.
type BatchRecommendResult struct {
	Success bool                    `json:"success"`
	Data    []engine.Recommendation `json:"data,omitempty"`
	Count   int                     `json:"count"`
	Error   string                  `json:"error,omitempty"`
}

// BatchRecommendResponse carries per-request results in request order.
type BatchRecommendResponse struct {
	Success   bool                   `json:"success"`
	Results   []BatchRecommendResult `json:"results"`
	RequestID string                 `json:"request_id,omitempty"`
}

// CarriersResponse lists the registered carriers.
type CarriersResponse struct {
	Success bool     `json:"success"`
	Data    []string `json:"data"`
	Count   int      `json:"count"`
}

// PackagesResponse lists catalog packages.
type PackagesResponse struct {
	Success bool           `json:"success"`
	Data    []plan.Product `json:"data"`
	Count   int            `json:"count"`
}

// ConfigResponse returns the current engine configuration.
type ConfigResponse struct {
	Success bool          `json:"success"`
	Data    engine.Config `json:"data"`
	Message string        `json:"message,omitempty"`
}

// ValidateRequest asks for a data-quality check over a package list.
type ValidateRequest struct {
	Packages []plan.Product `json:"packages"`
}

// ValidateResponse reports validation findings.
type ValidateResponse struct {
	Success bool     `json:"success"`
	Valid   bool     `json:"valid"`
	Errors  []string `json:"errors"`
}

// ErrorResponse is the uniform error shape.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
