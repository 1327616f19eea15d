package providers

import (
	"fmt"

	"github.com/brandpulse-ai/brandpulse-workflows/internal/config"
	"github.com/brandpulse-ai/brandpulse-workflows/internal/models"
	"github.com/brandpulse-ai/brandpulse-workflows/internal/providers/chatgpt"
	"github.com/brandpulse-ai/brandpulse-workflows/internal/providers/claude"
	"github.com/brandpulse-ai/brandpulse-workflows/internal/providers/common"
	"github.com/brandpulse-ai/brandpulse-workflows/internal/providers/deepresearch"
	"github.com/brandpulse-ai/brandpulse-workflows/internal/providers/manual"
	"github.com/brandpulse-ai/brandpulse-workflows/internal/providers/sonar"
)

// New creates the provider for a kind. A kind whose credentials are not
// configured returns ErrProviderUnavailable; the dispatcher recovers that
// by falling through to the fallback synthesizer.
func New(kind models.ProviderKind, cfg *config.Config, costService common.CostService) (ResearchProvider, error) {
	if cfg == nil {
		cfg = &config.Config{}
	}

	switch kind {
	case models.ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("%w: no OpenAI API key configured", models.ErrProviderUnavailable)
		}
		return chatgpt.NewProvider(cfg, costService), nil

	case models.ProviderAnthropic:
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("%w: no Anthropic API key configured", models.ErrProviderUnavailable)
		}
		return claude.NewProvider(cfg, costService), nil

	case models.ProviderPerplexity:
		if cfg.PerplexityAPIKey == "" {
			return nil, fmt.Errorf("%w: no Perplexity API key configured", models.ErrProviderUnavailable)
		}
		return sonar.NewProvider(cfg, costService), nil

	case models.ProviderDeepResearch:
		if cfg.DeepResearchAPIKey == "" || cfg.DeepResearchBaseURL == "" {
			return nil, fmt.Errorf("%w: deep research API not configured", models.ErrProviderUnavailable)
		}
		return deepresearch.NewProvider(cfg, costService), nil

	case models.ProviderManual:
		return manual.NewProvider(), nil
	}

	return nil, fmt.Errorf("unsupported provider kind: %q", kind)
}

// NewAvailable constructs every provider whose credentials are configured.
// Called once at process start so clients are built once and injected.
func NewAvailable(cfg *config.Config, costService common.CostService) map[models.ProviderKind]ResearchProvider {
	available := make(map[models.ProviderKind]ResearchProvider)
	for _, kind := range models.AllProviderKinds {
		provider, err := New(kind, cfg, costService)
		if err != nil {
			fmt.Printf("[ProviderFactory] ⚠️ Skipping %s: %v\n", kind, err)
			continue
		}
		fmt.Printf("[ProviderFactory] 🎯 Registered %s provider\n", kind)
		available[kind] = provider
	}
	return available
}
