// services/research_service.go
package services

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/brandpulse-ai/brandpulse-workflows/internal/extract"
	"github.com/brandpulse-ai/brandpulse-workflows/internal/fallback"
	"github.com/brandpulse-ai/brandpulse-workflows/internal/models"
	"github.com/brandpulse-ai/brandpulse-workflows/internal/providers"
	"github.com/brandpulse-ai/brandpulse-workflows/internal/social"
)

type researchService struct {
	providers map[models.ProviderKind]providers.ResearchProvider
	enricher  Enricher // nil when social listening is not configured
}

// NewResearchService creates the research dispatcher. Provider clients are
// constructed once at process start and injected here, never lazily.
func NewResearchService(
	available map[models.ProviderKind]providers.ResearchProvider,
	enricher Enricher,
) ResearchService {
	return &researchService{
		providers: available,
		enricher:  enricher,
	}
}

// GenerateReport runs the full pipeline for one request: provider call (or
// pre-supplied raw result), extraction, fallback synthesis, and social
// enrichment. It returns an error only for an invalid request; every
// provider-side failure is recovered into a schema-valid report.
func (s *researchService) GenerateReport(ctx context.Context, req *models.ResearchRequest) (*models.ResearchResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	kind := req.Provider
	if kind == "" {
		kind = models.ProviderOpenAI
	}

	raw := req.RawResult
	var cost float64
	var citations []string

	if raw != "" {
		fmt.Printf("[ResearchService] Using pre-supplied raw result for %s (%d characters)\n", req.Brand, len(raw))
	} else {
		provider, ok := s.providers[kind]
		if !ok {
			fmt.Printf("[ResearchService] ⚠️ Provider %s unavailable, proceeding to fallback: %v\n",
				kind, models.ErrProviderUnavailable)
		} else {
			resp, err := provider.Run(ctx, req)
			switch {
			case err != nil:
				// Transport errors, non-success statuses, job failures and
				// poll timeouts all land here and are recovered by the
				// fallback synthesizer below.
				fmt.Printf("[ResearchService] ⚠️ Provider %s failed, proceeding to fallback: %v\n", kind, err)
			case resp.Manual != nil:
				fmt.Printf("[ResearchService] Manual workflow prepared for %s\n", req.Brand)
				return &models.ResearchResult{Manual: resp.Manual, Provider: kind}, nil
			default:
				raw = resp.RawText
				cost = resp.Cost
				citations = resp.Citations
			}
		}
	}

	result := &models.ResearchResult{Provider: kind, Cost: cost}

	if raw != "" {
		parsed, attempts, err := extract.Parse(raw)
		if err != nil {
			fmt.Printf("[ResearchService] ⚠️ Extraction failed for %s after %d strategies: %v\n",
				req.Brand, len(attempts), err)
		} else {
			report, convErr := extract.ToReport(parsed.Object)
			if convErr != nil {
				fmt.Printf("[ResearchService] ⚠️ Extracted object rejected by schema: %v\n", convErr)
			} else {
				result.Report = report
				result.Source = models.SourceExtracted
				result.Strategy = parsed.Strategy
				fmt.Printf("[ResearchService] ✅ Extracted report for %s via %s\n", req.Brand, parsed.Strategy)
			}
		}
	}

	if result.Report == nil {
		result.Report = fallback.Synthesize(raw, req)
		result.Source = models.SourceFallback
		fmt.Printf("[ResearchService] Synthesized fallback report for %s\n", req.Brand)
	}

	// Thread request identity and provider citations through regardless of
	// how the report was produced.
	result.Report.Brand = req.Brand
	result.Report.Category = req.Category
	if len(result.Report.Methodology.Citations) == 0 && len(citations) > 0 {
		result.Report.Methodology.Citations = citations
	}

	// Enrichment runs independently of extraction success and can never
	// fail the request; without it the section keeps its default payload.
	if s.enricher != nil {
		window := windowFromTimeframe(req.Timeframe, time.Now())
		result.Report.SocialMetrics = s.enricher.Enrich(ctx, req.Brand, req.Category, window)
	}

	result.Report.Normalize()
	return result, nil
}

var timeframeRe = regexp.MustCompile(`(\d+)\s*(day|week|month|year)`)

// windowFromTimeframe turns a free-text timeframe like "last 6 months"
// into a concrete fetch window, defaulting to the last 90 days.
func windowFromTimeframe(timeframe string, now time.Time) social.TimeWindow {
	days := 90
	if m := timeframeRe.FindStringSubmatch(strings.ToLower(timeframe)); m != nil {
		n, _ := strconv.Atoi(m[1])
		switch m[2] {
		case "day":
			days = n
		case "week":
			days = n * 7
		case "month":
			days = n * 30
		case "year":
			days = n * 365
		}
	}
	return social.TimeWindow{Start: now.AddDate(0, 0, -days), End: now}
}
