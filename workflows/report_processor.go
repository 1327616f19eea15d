// workflows/report_processor.go
package workflows

import (
	"context"
	"fmt"

	"github.com/inngest/inngestgo"
	"github.com/inngest/inngestgo/step"

	"github.com/brandpulse-ai/brandpulse-workflows/internal/config"
	"github.com/brandpulse-ai/brandpulse-workflows/internal/models"
	"github.com/brandpulse-ai/brandpulse-workflows/services"
	"github.com/google/uuid"
)

// ReportGenerateEvent triggers the report generation pipeline.
type ReportGenerateEvent struct {
	Brand     string   `json:"brand"`
	Category  string   `json:"category"`
	Timeframe string   `json:"timeframe,omitempty"`
	Markets   []string `json:"markets,omitempty"`
	Purpose   string   `json:"purpose"`
	Provider  string   `json:"provider,omitempty"`
	RawResult string   `json:"raw_result,omitempty"`

	TriggeredBy string `json:"triggered_by,omitempty"`
	UserID      string `json:"user_id,omitempty"`
}

type ReportProcessor struct {
	researchService services.ResearchService
	reportStore     services.ReportStore
	indexService    services.IndexService
	client          inngestgo.Client
	cfg             *config.Config
}

func NewReportProcessor(
	researchService services.ResearchService,
	reportStore services.ReportStore,
	indexService services.IndexService,
	cfg *config.Config,
) *ReportProcessor {
	return &ReportProcessor{
		researchService: researchService,
		reportStore:     reportStore,
		indexService:    indexService,
		cfg:             cfg,
	}
}

func (p *ReportProcessor) SetClient(client inngestgo.Client) {
	p.client = client
}

// GenerateReport runs the full brand research pipeline as a durable
// workflow: dispatch research, persist the report, index it for search.
// The research step itself never fails for provider-side reasons, so
// retries here only cover infrastructure errors.
func (p *ReportProcessor) GenerateReport() inngestgo.ServableFunction {
	fn, err := inngestgo.CreateFunction(
		p.client,
		inngestgo.FunctionOpts{
			ID:      "generate-brand-report",
			Name:    "Generate Brand Intelligence Report",
			Retries: inngestgo.IntPtr(2),
		},
		inngestgo.EventTrigger("report.generate", nil),
		func(ctx context.Context, input inngestgo.Input[ReportGenerateEvent]) (any, error) {
			event := input.Event.Data
			fmt.Printf("[GenerateReport] Starting research pipeline for brand: %s\n", event.Brand)

			req := &models.ResearchRequest{
				RequestID: uuid.New(),
				Brand:     event.Brand,
				Category:  event.Category,
				Timeframe: event.Timeframe,
				Markets:   event.Markets,
				Purpose:   event.Purpose,
				Provider:  models.ProviderKind(event.Provider),
				RawResult: event.RawResult,
			}

			// Step 1: Dispatch research and build the report.
			result, err := step.Run(ctx, "run-research", func(ctx context.Context) (*models.ResearchResult, error) {
				fmt.Printf("[GenerateReport] Step 1: Dispatching research via provider %q\n", req.Provider)
				return p.researchService.GenerateReport(ctx, req)
			})
			if err != nil {
				return nil, fmt.Errorf("step 1 failed: %w", err)
			}

			// Manual strategy: hand the workflow payload back to the caller,
			// nothing to persist yet.
			if result.IsManual() {
				fmt.Printf("[GenerateReport] Manual workflow prepared for %s\n", event.Brand)
				return map[string]interface{}{
					"status": "manual_workflow",
					"brand":  event.Brand,
					"manual": result.Manual,
				}, nil
			}

			// Step 2: Persist the report. Store failure must not fail the
			// research request; the report is still returned to the caller.
			reportID, err := step.Run(ctx, "persist-report", func(ctx context.Context) (uuid.UUID, error) {
				id, saveErr := p.reportStore.SaveReport(ctx, req, result)
				if saveErr != nil {
					fmt.Printf("[GenerateReport] ⚠️ Failed to persist report for %s: %v\n", event.Brand, saveErr)
					return uuid.Nil, nil
				}
				fmt.Printf("[GenerateReport] Persisted report %s\n", id)
				return id, nil
			})
			if err != nil {
				return nil, fmt.Errorf("step 2 failed: %w", err)
			}

			// Step 3: Index for search and similarity. Also best-effort.
			if p.indexService != nil && reportID != uuid.Nil {
				_, err = step.Run(ctx, "index-report", func(ctx context.Context) (any, error) {
					if indexErr := p.indexService.IndexReport(ctx, reportID, result.Report); indexErr != nil {
						fmt.Printf("[GenerateReport] ⚠️ Failed to index report %s: %v\n", reportID, indexErr)
					}
					return nil, nil
				})
				if err != nil {
					return nil, fmt.Errorf("step 3 failed: %w", err)
				}
			}

			fmt.Printf("[GenerateReport] ✅ Pipeline complete for %s (source: %s)\n", event.Brand, result.Source)
			return map[string]interface{}{
				"status":    "completed",
				"brand":     event.Brand,
				"report_id": reportID,
				"source":    result.Source,
				"strategy":  result.Strategy,
				"cost":      result.Cost,
			}, nil
		},
	)
	if err != nil {
		panic(fmt.Errorf("failed to create GenerateReport function: %w", err))
	}
	return fn
}
