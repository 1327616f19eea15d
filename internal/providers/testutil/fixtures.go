package testutil

import (
	"github.com/brandpulse-ai/brandpulse-workflows/internal/config"
	"github.com/brandpulse-ai/brandpulse-workflows/internal/models"
	"github.com/google/uuid"
)

// SampleConfig returns a config with every provider credential set, for
// factory tests.
func SampleConfig() *config.Config {
	return &config.Config{
		Port:        "8080",
		Environment: "test",

		OpenAIAPIKey:    "sk-test-openai",
		OpenAIModel:     "gpt-4.1",
		AnthropicAPIKey: "sk-test-anthropic",
		AnthropicModel:  "claude-sonnet-4-20250514",

		PerplexityAPIKey:  "pplx-test",
		PerplexityModel:   "sonar",
		PerplexityBaseURL: "https://api.perplexity.ai",

		DeepResearchAPIKey:  "sk-test-deep",
		DeepResearchBaseURL: "https://api.openai.com/v1",
		DeepResearchModel:   "o3-deep-research",
	}
}

// SampleRequest returns a valid research request for the given provider
func SampleRequest(kind models.ProviderKind) models.ResearchRequest {
	return models.ResearchRequest{
		RequestID: uuid.New(),
		Brand:     "Acme Coffee",
		Category:  "specialty coffee",
		Timeframe: "last 90 days",
		Markets:   []string{"US", "UK"},
		Purpose:   "brand health review",
		Provider:  kind,
	}
}

// SampleReportJSON is a well-formed structured report payload
const SampleReportJSON = `{
  "brand": "Acme Coffee",
  "category": "specialty coffee",
  "executive_snapshot": {
    "summary": "Acme Coffee holds a strong position in specialty coffee.",
    "brand_position": "Premium challenger with cult loyalty",
    "key_findings": ["Growing direct-to-consumer sales"],
    "market_share": {"value": 4.2, "unit": "percent", "confidence": 0.7, "status": "estimated"}
  },
  "business_challenge": {
    "primary": "Rising bean costs pressure margins.",
    "secondary": ["retail shelf competition"],
    "market_dynamics": "Specialty segment growing 8% annually."
  },
  "audience_personas": [
    {"name": "Urban Professional", "description": "Buys premium beans weekly", "motivations": ["quality"], "channels": ["instagram"]}
  ],
  "competitive_set": [
    {"name": "Beanhouse", "positioning": "mass premium", "strengths": ["distribution"], "weaknesses": ["brand heat"], "share_of_voice": {"value": 12, "unit": "percent", "confidence": 0.6, "status": "estimated"}}
  ],
  "cultural_context": {
    "summary": "Third-wave coffee culture keeps expanding.",
    "trends": ["home brewing content"],
    "tensions": [],
    "moments": []
  },
  "strategic_opportunities": [
    {"title": "Subscription push", "rationale": "High repeat purchase intent", "horizon": "6 months"}
  ],
  "methodology": {
    "approach": "Synthesized from public web research.",
    "citations": ["industry press"],
    "confidence": "medium"
  }
}`

// SampleProseResponse is a provider response with no JSON in it at all
const SampleProseResponse = `Acme Coffee is performing well this quarter. Consumer sentiment
remains positive across its core markets, and the brand continues to lead on
quality perception among specialty roasters.`

// SampleFencedResponse wraps the report JSON in markdown the way chat
// models tend to
const SampleFencedResponse = "Here is the report you asked for:\n\n```json\n" + SampleReportJSON + "\n```\n\nLet me know if you need anything else."
