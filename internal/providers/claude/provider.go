package claude

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/brandpulse-ai/brandpulse-workflows/internal/config"
	"github.com/brandpulse-ai/brandpulse-workflows/internal/models"
	"github.com/brandpulse-ai/brandpulse-workflows/internal/providers/common"
)

// Provider implements the synchronous Anthropic chat strategy.
type Provider struct {
	client      *anthropic.Client
	model       string
	costService common.CostService
}

// NewProvider creates an Anthropic provider.
func NewProvider(cfg *config.Config, costService common.CostService) *Provider {
	if cfg == nil {
		cfg = &config.Config{}
	}

	client := anthropic.NewClient(option.WithAPIKey(cfg.AnthropicAPIKey))
	return &Provider{
		client:      &client,
		model:       cfg.AnthropicModel,
		costService: costService,
	}
}

func (p *Provider) Kind() models.ProviderKind {
	return models.ProviderAnthropic
}

func (p *Provider) Run(ctx context.Context, req *models.ResearchRequest) (*common.Response, error) {
	prompt := common.BuildResearchPrompt(req)

	messages := []anthropic.MessageParam{{
		Content: []anthropic.ContentBlockParamUnion{{
			OfText: &anthropic.TextBlockParam{Text: prompt},
		}},
		Role: anthropic.MessageParamRoleUser,
	}}

	response, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(p.model),
		MaxTokens:   8000,
		Messages:    messages,
		Temperature: anthropic.Float(0.2),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: message request failed: %v", models.ErrProviderRequestFailed, err)
	}

	rawText := extractResponseText(response)
	if rawText == "" {
		return nil, fmt.Errorf("%w: empty response body", models.ErrProviderRequestFailed)
	}

	inputTokens := int(response.Usage.InputTokens)
	outputTokens := int(response.Usage.OutputTokens)

	var cost float64
	if p.costService != nil {
		cost = p.costService.CalculateCost("anthropic", p.model, inputTokens, outputTokens, false)
	}

	return &common.Response{
		RawText:      rawText,
		InputTokens:  inputTokens,
		OutputTokens: outputTokens,
		Cost:         cost,
	}, nil
}

func extractResponseText(response *anthropic.Message) string {
	var textParts []string
	for _, block := range response.Content {
		switch variant := block.AsAny().(type) {
		case anthropic.TextBlock:
			textParts = append(textParts, variant.Text)
		}
	}
	return strings.Join(textParts, "")
}
