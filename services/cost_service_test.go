package services_test

import (
	"math"
	"testing"

	"github.com/brandpulse-ai/brandpulse-workflows/services"
)

func TestCalculateCost(t *testing.T) {
	costService := services.NewCostService()

	tests := []struct {
		name         string
		provider     string
		model        string
		inputTokens  int
		outputTokens int
		websearch    bool
		expected     float64
	}{
		{
			"gpt-4.1 tokens only",
			"openai", "gpt-4.1", 1_000_000, 1_000_000, false,
			3.00 + 12.00,
		},
		{
			"perplexity with search",
			"perplexity", "sonar", 100_000, 100_000, true,
			0.10 + 0.10 + 0.008,
		},
		{
			"anthropic tokens only",
			"anthropic", "claude-sonnet-4-20250514", 500_000, 100_000, false,
			1.50 + 1.50,
		},
		{
			"deep research search is bundled",
			"deep_research", "o3-deep-research", 0, 0, true,
			0.0,
		},
		{
			"unknown model falls back to gpt-4.1 pricing",
			"openai", "mystery-model", 1_000_000, 0, false,
			3.00,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := costService.CalculateCost(tt.provider, tt.model, tt.inputTokens, tt.outputTokens, tt.websearch)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Expected cost %v, got %v", tt.expected, got)
			}
		})
	}
}
