package common

// Shared types for research providers. Defined here to avoid import cycles
// between the provider packages, the factory, and the services layer.

import "github.com/brandpulse-ai/brandpulse-workflows/internal/models"

// Response contains the raw outcome of one provider call. Manual is set
// only by the manual workflow strategy, in which case RawText is empty.
type Response struct {
	RawText      string
	Citations    []string
	InputTokens  int
	OutputTokens int
	Cost         float64
	Manual       *models.ManualWorkflow
}

// CostService calculates provider call costs. Implemented in the services
// layer; declared here so provider packages can depend on it without a
// cycle.
type CostService interface {
	CalculateCost(provider string, model string, inputTokens int, outputTokens int, websearch bool) float64
}
