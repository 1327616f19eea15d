package providers

import (
	"context"

	"github.com/brandpulse-ai/brandpulse-workflows/internal/models"
	"github.com/brandpulse-ai/brandpulse-workflows/internal/providers/common"
)

// ResearchProvider is the single strategy interface every provider kind
// implements: synchronous chat APIs, the asynchronous deep research job
// API, and the manual human-in-the-loop workflow.
type ResearchProvider interface {
	Kind() models.ProviderKind
	Run(ctx context.Context, req *models.ResearchRequest) (*common.Response, error)
}
