package manual

import (
	"context"

	"github.com/brandpulse-ai/brandpulse-workflows/internal/models"
	"github.com/brandpulse-ai/brandpulse-workflows/internal/providers/common"
)

// DefaultProviderURL is where the operator runs the prepared prompt.
const DefaultProviderURL = "https://gemini.google.com/app"

// Provider implements the manual human-in-the-loop strategy: instead of
// calling a network service it returns a prepared prompt plus ordered
// operator instructions. This is a terminal, user-facing branch, not a
// failure; the operator's output comes back later as a pre-supplied
// RawResult on a new request.
type Provider struct {
	providerURL string
}

// NewProvider creates a manual workflow provider.
func NewProvider() *Provider {
	return &Provider{providerURL: DefaultProviderURL}
}

func (p *Provider) Kind() models.ProviderKind {
	return models.ProviderManual
}

func (p *Provider) Run(_ context.Context, req *models.ResearchRequest) (*common.Response, error) {
	return &common.Response{
		Manual: &models.ManualWorkflow{
			Prompt: common.BuildResearchPrompt(req),
			Instructions: []string{
				"Open the deep research provider linked below and start a new research session.",
				"Paste the prepared prompt verbatim and run it to completion.",
				"Copy the full response text, including any JSON block, without editing it.",
				"Resubmit this research request with the copied text attached as the raw result.",
			},
			ProviderURL: p.providerURL,
		},
	}, nil
}
