// services/interfaces.go
package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/brandpulse-ai/brandpulse-workflows/internal/models"
	"github.com/brandpulse-ai/brandpulse-workflows/internal/social"
)

// ResearchService is the top-level dispatcher: it turns a ResearchRequest
// into a ResearchResult, never failing for provider-side reasons. Only
// request validation errors propagate to the caller.
type ResearchService interface {
	GenerateReport(ctx context.Context, req *models.ResearchRequest) (*models.ResearchResult, error)
}

// ReportStore is the persistence sink for completed reports. A store
// failure is never treated as a failure of the research core; callers log
// and continue.
type ReportStore interface {
	EnsureSchema(ctx context.Context) error
	SaveReport(ctx context.Context, req *models.ResearchRequest, result *models.ResearchResult) (uuid.UUID, error)
	GetReport(ctx context.Context, reportID uuid.UUID) (*StoredReport, error)
}

// StoredReport is one persisted report row.
type StoredReport struct {
	ReportID  uuid.UUID `db:"report_id"`
	Brand     string    `db:"brand"`
	Category  string    `db:"category"`
	Provider  string    `db:"provider"`
	Source    string    `db:"source"`
	Strategy  string    `db:"strategy"`
	Cost      float64   `db:"cost"`
	Report    []byte    `db:"report"`
	CreatedAt time.Time `db:"created_at"`
}

// IndexService pushes completed reports into the search and similarity
// indexes consumed by the dashboard. Index failures are logged, never
// fatal.
type IndexService interface {
	EnsureCollections(ctx context.Context) error
	IndexReport(ctx context.Context, reportID uuid.UUID, report *models.StructuredReport) error
}

// CostService calculates provider call costs. It also satisfies the
// provider-side common.CostService interface.
type CostService interface {
	CalculateCost(provider string, model string, inputTokens int, outputTokens int, websearch bool) float64
}

// Enricher attaches social-listening metrics to a report. Satisfied by
// social.Manager; declared here so tests can substitute a stub.
type Enricher interface {
	Enrich(ctx context.Context, brand, category string, window social.TimeWindow) models.SocialMetrics
}
