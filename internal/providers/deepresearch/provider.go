package deepresearch

import (
	"context"
	"fmt"

	"github.com/brandpulse-ai/brandpulse-workflows/internal/config"
	"github.com/brandpulse-ai/brandpulse-workflows/internal/models"
	"github.com/brandpulse-ai/brandpulse-workflows/internal/providers/common"
)

// Provider implements the asynchronous deep research strategy: submit a
// job, hand control to the poller, and return the final text payload.
type Provider struct {
	client      *Client
	poller      *Poller
	model       string
	costService common.CostService
}

// NewProvider creates a deep research provider.
func NewProvider(cfg *config.Config, costService common.CostService) *Provider {
	if cfg == nil {
		cfg = &config.Config{}
	}

	client := NewClient(cfg.DeepResearchAPIKey, cfg.DeepResearchBaseURL, cfg.DeepResearchModel)
	return &Provider{
		client:      client,
		poller:      NewPoller(client),
		model:       cfg.DeepResearchModel,
		costService: costService,
	}
}

func (p *Provider) Kind() models.ProviderKind {
	return models.ProviderDeepResearch
}

// Run submits the research job and blocks on the poller until it reaches a
// terminal state. This wait dominates the request's wall-clock lifetime;
// if the caller abandons the request the remote job keeps running
// server-side, no cancellation is attempted.
func (p *Provider) Run(ctx context.Context, req *models.ResearchRequest) (*common.Response, error) {
	prompt := common.BuildResearchPrompt(req)

	jobID, err := p.client.SubmitJob(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to submit deep research job: %w", err)
	}
	fmt.Printf("[DeepResearchProvider] 📋 Job submitted with ID: %s\n", jobID)

	job := &models.ResearchJob{
		ID:       jobID,
		Provider: models.ProviderDeepResearch,
		Status:   models.JobSubmitted,
	}
	if err := p.poller.Wait(ctx, job); err != nil {
		return nil, err
	}

	var cost float64
	if p.costService != nil {
		cost = p.costService.CalculateCost("deep_research", p.model, 0, 0, true)
	}

	return &common.Response{
		RawText: job.RawPayload,
		Cost:    cost,
	}, nil
}
