package chatgpt

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/brandpulse-ai/brandpulse-workflows/internal/config"
	"github.com/brandpulse-ai/brandpulse-workflows/internal/models"
	"github.com/brandpulse-ai/brandpulse-workflows/internal/providers/common"
)

// ReportSchema is generated once at init for structured outputs.
var ReportSchema = common.GenerateSchema[models.StructuredReport]()

// Provider implements the synchronous OpenAI chat strategy with structured
// outputs.
type Provider struct {
	client      *openai.Client
	model       string
	costService common.CostService
}

// NewProvider creates an OpenAI chat provider.
func NewProvider(cfg *config.Config, costService common.CostService) *Provider {
	if cfg == nil {
		cfg = &config.Config{}
	}

	client := openai.NewClient(option.WithAPIKey(cfg.OpenAIAPIKey))
	return &Provider{
		client:      &client,
		model:       cfg.OpenAIModel,
		costService: costService,
	}
}

func (p *Provider) Kind() models.ProviderKind {
	return models.ProviderOpenAI
}

// Run issues one chat completion and returns the text body. The schema in
// the response format nudges the model toward the report shape, but the
// body is still treated as free text by the extraction engine.
func (p *Provider) Run(ctx context.Context, req *models.ResearchRequest) (*common.Response, error) {
	prompt := common.BuildResearchPrompt(req)

	schemaParam := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:        "brand_research_report",
		Description: openai.String("Structured brand intelligence report"),
		Schema:      ReportSchema,
		Strict:      openai.Bool(false),
	}

	response, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage("You are a senior brand strategist producing rigorous, citation-backed brand intelligence reports."),
			openai.UserMessage(prompt),
		},
		Model: openai.ChatModel(p.model),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{JSONSchema: schemaParam},
		},
		Temperature: openai.Float(0.2),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: chat completion failed: %v", models.ErrProviderRequestFailed, err)
	}

	if len(response.Choices) == 0 {
		return nil, fmt.Errorf("%w: no response choices returned", models.ErrProviderRequestFailed)
	}

	inputTokens := int(response.Usage.PromptTokens)
	outputTokens := int(response.Usage.CompletionTokens)

	var cost float64
	if p.costService != nil {
		cost = p.costService.CalculateCost("openai", p.model, inputTokens, outputTokens, false)
	}

	return &common.Response{
		RawText:      response.Choices[0].Message.Content,
		InputTokens:  inputTokens,
		OutputTokens: outputTokens,
		Cost:         cost,
	}, nil
}
