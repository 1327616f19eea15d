package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/brandpulse-ai/brandpulse-workflows/internal/extract"
	"github.com/brandpulse-ai/brandpulse-workflows/internal/models"
	"github.com/brandpulse-ai/brandpulse-workflows/internal/providers"
	"github.com/brandpulse-ai/brandpulse-workflows/internal/providers/common"
	"github.com/brandpulse-ai/brandpulse-workflows/internal/providers/testutil"
	"github.com/brandpulse-ai/brandpulse-workflows/internal/social"
	"github.com/brandpulse-ai/brandpulse-workflows/services"
)

// stubProvider returns a canned response or error.
type stubProvider struct {
	kind models.ProviderKind
	resp *common.Response
	err  error
}

func (s *stubProvider) Kind() models.ProviderKind { return s.kind }

func (s *stubProvider) Run(ctx context.Context, req *models.ResearchRequest) (*common.Response, error) {
	return s.resp, s.err
}

// stubEnricher returns fixed social metrics and records the window it saw.
type stubEnricher struct {
	metrics models.SocialMetrics
	calls   int
	window  social.TimeWindow
}

func (s *stubEnricher) Enrich(ctx context.Context, brand, category string, window social.TimeWindow) models.SocialMetrics {
	s.calls++
	s.window = window
	return s.metrics
}

func newService(p providers.ResearchProvider, enricher services.Enricher) services.ResearchService {
	available := map[models.ProviderKind]providers.ResearchProvider{}
	if p != nil {
		available[p.Kind()] = p
	}
	return services.NewResearchService(available, enricher)
}

func TestGenerateReportExtractsStructuredResponse(t *testing.T) {
	provider := &stubProvider{
		kind: models.ProviderOpenAI,
		resp: &common.Response{RawText: testutil.SampleFencedResponse, Cost: 0.12},
	}
	service := newService(provider, nil)
	req := testutil.SampleRequest(models.ProviderOpenAI)

	result, err := service.GenerateReport(context.Background(), &req)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if result.Source != models.SourceExtracted {
		t.Errorf("Expected extracted source, got %s", result.Source)
	}
	if result.Strategy != extract.StrategyFencedJSON {
		t.Errorf("Expected fenced_json strategy, got %s", result.Strategy)
	}
	if result.Cost != 0.12 {
		t.Errorf("Expected cost 0.12, got %v", result.Cost)
	}
	if result.Report.Brand != req.Brand {
		t.Errorf("Expected brand %s, got %s", req.Brand, result.Report.Brand)
	}
	if result.Report.ExecutiveSnapshot.Summary == models.PlaceholderText {
		t.Error("Extracted report should carry the provider summary")
	}
}

func TestGenerateReportFallsBackOnProse(t *testing.T) {
	provider := &stubProvider{
		kind: models.ProviderOpenAI,
		resp: &common.Response{RawText: testutil.SampleProseResponse},
	}
	service := newService(provider, nil)
	req := testutil.SampleRequest(models.ProviderOpenAI)

	result, err := service.GenerateReport(context.Background(), &req)
	if err != nil {
		t.Fatalf("Provider prose must never fail the request: %v", err)
	}

	if result.Source != models.SourceFallback {
		t.Errorf("Expected fallback source, got %s", result.Source)
	}
	if result.Strategy != "" {
		t.Errorf("Fallback result should carry no extraction strategy, got %q", result.Strategy)
	}
	if result.Report.Brand != req.Brand || result.Report.Category != req.Category {
		t.Errorf("Request identity not threaded: %s / %s", result.Report.Brand, result.Report.Category)
	}
}

func TestGenerateReportFallsBackOnProviderError(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"transport failure", fmt.Errorf("%w: connection refused", models.ErrProviderRequestFailed)},
		{"poll timeout", fmt.Errorf("%w: job x not terminal", models.ErrPollTimeout)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &stubProvider{kind: models.ProviderOpenAI, err: tt.err}
			service := newService(provider, nil)
			req := testutil.SampleRequest(models.ProviderOpenAI)

			result, err := service.GenerateReport(context.Background(), &req)
			if err != nil {
				t.Fatalf("Provider errors must be recovered, got %v", err)
			}
			if result.Source != models.SourceFallback {
				t.Errorf("Expected fallback source, got %s", result.Source)
			}
			if result.Report == nil {
				t.Fatal("Expected a synthesized report")
			}
		})
	}
}

func TestGenerateReportUnavailableProviderFallsBack(t *testing.T) {
	service := newService(nil, nil) // nothing registered
	req := testutil.SampleRequest(models.ProviderAnthropic)

	result, err := service.GenerateReport(context.Background(), &req)
	if err != nil {
		t.Fatalf("Unavailable provider must be recovered, got %v", err)
	}
	if result.Source != models.SourceFallback {
		t.Errorf("Expected fallback source, got %s", result.Source)
	}
	if result.Provider != models.ProviderAnthropic {
		t.Errorf("Result should record the requested provider, got %s", result.Provider)
	}
}

func TestGenerateReportInvalidRequest(t *testing.T) {
	tests := []struct {
		name string
		req  models.ResearchRequest
	}{
		{"missing brand", models.ResearchRequest{Category: "coffee", Purpose: "review"}},
		{"missing category", models.ResearchRequest{Brand: "Acme", Purpose: "review"}},
		{"missing purpose", models.ResearchRequest{Brand: "Acme", Category: "coffee"}},
		{"unknown provider", models.ResearchRequest{Brand: "Acme", Category: "coffee", Purpose: "review", Provider: "gemini"}},
	}

	service := newService(nil, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.GenerateReport(context.Background(), &tt.req)
			if !errors.Is(err, models.ErrRequestInvalid) {
				t.Errorf("Expected ErrRequestInvalid, got %v", err)
			}
		})
	}
}

func TestGenerateReportRawResultBypassesProvider(t *testing.T) {
	// A registered provider that would fail proves the bypass: the raw
	// result goes straight to extraction.
	provider := &stubProvider{kind: models.ProviderOpenAI, err: errors.New("must not be called")}
	service := newService(provider, nil)

	req := testutil.SampleRequest(models.ProviderOpenAI)
	req.RawResult = testutil.SampleFencedResponse

	result, err := service.GenerateReport(context.Background(), &req)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Source != models.SourceExtracted {
		t.Errorf("Expected extracted source from raw result, got %s", result.Source)
	}
}

func TestGenerateReportManualWorkflow(t *testing.T) {
	provider := &stubProvider{
		kind: models.ProviderManual,
		resp: &common.Response{Manual: &models.ManualWorkflow{
			Prompt:       "research Acme Coffee",
			Instructions: []string{"open the research tool"},
			ProviderURL:  "https://gemini.google.com/app",
		}},
	}
	service := newService(provider, nil)

	req := testutil.SampleRequest(models.ProviderManual)
	result, err := service.GenerateReport(context.Background(), &req)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !result.IsManual() {
		t.Fatal("Expected a manual workflow result")
	}
	if result.Report != nil {
		t.Error("Manual result must carry no report")
	}
	if result.Manual.Prompt == "" || result.Manual.ProviderURL == "" {
		t.Errorf("Manual workflow incomplete: %+v", result.Manual)
	}
}

func TestGenerateReportDefaultsToOpenAI(t *testing.T) {
	provider := &stubProvider{
		kind: models.ProviderOpenAI,
		resp: &common.Response{RawText: testutil.SampleFencedResponse},
	}
	service := newService(provider, nil)

	req := testutil.SampleRequest("")
	result, err := service.GenerateReport(context.Background(), &req)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Provider != models.ProviderOpenAI {
		t.Errorf("Expected default openai provider, got %s", result.Provider)
	}
	if result.Source != models.SourceExtracted {
		t.Errorf("Expected extraction via the default provider, got %s", result.Source)
	}
}

func TestGenerateReportAppliesEnrichment(t *testing.T) {
	provider := &stubProvider{
		kind: models.ProviderOpenAI,
		resp: &common.Response{RawText: testutil.SampleFencedResponse},
	}
	enricher := &stubEnricher{metrics: models.SocialMetrics{
		Source:        models.SocialSourceLive,
		TotalMentions: models.Metric{Value: 42, Unit: "mentions", Confidence: 0.9, Status: models.MetricMeasured},
		Sentiment:     models.Metric{Value: 0.5, Unit: "score", Confidence: 0.9, Status: models.MetricMeasured},
		PositiveShare: models.Metric{Value: 60, Unit: "percent", Confidence: 0.9, Status: models.MetricMeasured},
		NegativeShare: models.Metric{Value: 10, Unit: "percent", Confidence: 0.9, Status: models.MetricMeasured},
		TopSources:    []string{"twitter"},
	}}
	service := newService(provider, enricher)

	req := testutil.SampleRequest(models.ProviderOpenAI)
	req.Timeframe = "last 6 months"

	result, err := service.GenerateReport(context.Background(), &req)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if enricher.calls != 1 {
		t.Fatalf("Expected 1 enrichment call, got %d", enricher.calls)
	}
	if result.Report.SocialMetrics.Source != models.SocialSourceLive {
		t.Errorf("Expected live social metrics on the report, got %s", result.Report.SocialMetrics.Source)
	}
	if result.Report.SocialMetrics.TotalMentions.Value != 42 {
		t.Errorf("Expected 42 mentions, got %v", result.Report.SocialMetrics.TotalMentions.Value)
	}

	// "last 6 months" should produce roughly a 180 day window.
	days := enricher.window.End.Sub(enricher.window.Start).Hours() / 24
	if days < 179 || days > 181 {
		t.Errorf("Expected ~180 day window, got %.1f days", days)
	}
}

func TestGenerateReportProviderCitationsThreaded(t *testing.T) {
	provider := &stubProvider{
		kind: models.ProviderPerplexity,
		resp: &common.Response{
			RawText:   testutil.SampleProseResponse,
			Citations: []string{"https://example.com/a", "https://example.com/b"},
		},
	}
	service := newService(provider, nil)

	req := testutil.SampleRequest(models.ProviderPerplexity)
	result, err := service.GenerateReport(context.Background(), &req)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(result.Report.Methodology.Citations) != 2 {
		t.Errorf("Expected provider citations threaded into methodology, got %v", result.Report.Methodology.Citations)
	}
}
