package sonar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/brandpulse-ai/brandpulse-workflows/internal/config"
	"github.com/brandpulse-ai/brandpulse-workflows/internal/models"
	"github.com/brandpulse-ai/brandpulse-workflows/internal/providers/common"
)

// Provider implements the synchronous Perplexity Sonar strategy over plain
// HTTP: one call, read the text body.
type Provider struct {
	apiKey      string
	baseURL     string
	model       string
	costService common.CostService
	httpClient  *http.Client
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Citations []string `json:"citations"`
	Usage     struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

// NewProvider creates a Perplexity Sonar provider.
func NewProvider(cfg *config.Config, costService common.CostService) *Provider {
	if cfg == nil {
		cfg = &config.Config{}
	}

	baseURL := cfg.PerplexityBaseURL
	if baseURL == "" {
		baseURL = "https://api.perplexity.ai"
	}

	return &Provider{
		apiKey:      cfg.PerplexityAPIKey,
		baseURL:     baseURL,
		model:       cfg.PerplexityModel,
		costService: costService,
		httpClient: &http.Client{
			Timeout: 5 * time.Minute,
		},
	}
}

func (p *Provider) Kind() models.ProviderKind {
	return models.ProviderPerplexity
}

func (p *Provider) Run(ctx context.Context, req *models.ResearchRequest) (*common.Response, error) {
	payload := chatRequest{
		Model: p.model,
		Messages: []chatMessage{
			{Role: "system", Content: "You are a senior brand strategist producing rigorous, citation-backed brand intelligence reports."},
			{Role: "user", Content: common.BuildResearchPrompt(req)},
		},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", p.baseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrProviderRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: Perplexity returned status %d", models.ErrProviderRequestFailed, resp.StatusCode)
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no response choices returned", models.ErrProviderRequestFailed)
	}

	var cost float64
	if p.costService != nil {
		cost = p.costService.CalculateCost("perplexity", p.model,
			chatResp.Usage.PromptTokens, chatResp.Usage.CompletionTokens, true)
	}

	return &common.Response{
		RawText:      chatResp.Choices[0].Message.Content,
		Citations:    chatResp.Citations,
		InputTokens:  chatResp.Usage.PromptTokens,
		OutputTokens: chatResp.Usage.CompletionTokens,
		Cost:         cost,
	}, nil
}
