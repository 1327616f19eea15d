package fallback_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/brandpulse-ai/brandpulse-workflows/internal/fallback"
	"github.com/brandpulse-ai/brandpulse-workflows/internal/models"
	"github.com/brandpulse-ai/brandpulse-workflows/internal/providers/testutil"
)

func TestSynthesizeFromEmptyText(t *testing.T) {
	req := testutil.SampleRequest(models.ProviderOpenAI)

	report := fallback.Synthesize("", &req)

	if report.Brand != req.Brand {
		t.Errorf("Expected brand %s, got %s", req.Brand, report.Brand)
	}
	if report.Category != req.Category {
		t.Errorf("Expected category %s, got %s", req.Category, report.Category)
	}
	if !strings.Contains(report.ExecutiveSnapshot.Summary, req.Brand) {
		t.Errorf("Summary should reference the brand, got %q", report.ExecutiveSnapshot.Summary)
	}
	if report.BusinessChallenge.Primary != models.PlaceholderText {
		t.Errorf("Expected placeholder challenge, got %q", report.BusinessChallenge.Primary)
	}
	assertFullCoverage(t, report)
}

func TestSynthesizeExtractsMatchingSentences(t *testing.T) {
	raw := `Acme Coffee remains a strong brand. The main challenge is declining foot traffic in retail locations.
The specialty coffee market keeps growing steadily. Its core consumer is the urban professional who values quality.
The biggest competitor is Beanhouse with wider distribution. There is a clear opportunity in subscriptions.`
	req := testutil.SampleRequest(models.ProviderOpenAI)

	report := fallback.Synthesize(raw, &req)

	if !strings.Contains(report.BusinessChallenge.Primary, "declining foot traffic") {
		t.Errorf("Expected the challenge sentence, got %q", report.BusinessChallenge.Primary)
	}
	if !strings.Contains(report.BusinessChallenge.MarketDynamics, "market keeps growing") {
		t.Errorf("Expected the market sentence, got %q", report.BusinessChallenge.MarketDynamics)
	}
	if len(report.AudiencePersonas) != 1 {
		t.Fatalf("Expected 1 persona, got %d", len(report.AudiencePersonas))
	}
	if !strings.Contains(report.AudiencePersonas[0].Description, "urban professional") {
		t.Errorf("Expected the audience sentence, got %q", report.AudiencePersonas[0].Description)
	}
	if len(report.CompetitiveSet) != 1 {
		t.Fatalf("Expected 1 competitor, got %d", len(report.CompetitiveSet))
	}
	if !strings.Contains(report.CompetitiveSet[0].Positioning, "Beanhouse") {
		t.Errorf("Expected the competitor sentence, got %q", report.CompetitiveSet[0].Positioning)
	}
	if len(report.StrategicOpportunities) == 0 {
		t.Fatal("Expected at least one opportunity")
	}
	assertFullCoverage(t, report)
}

func TestSynthesizeIsDeterministic(t *testing.T) {
	raw := "Acme Coffee faces a pricing challenge. The market is growing. Consumers love the brand."
	req := testutil.SampleRequest(models.ProviderOpenAI)

	first := fallback.Synthesize(raw, &req)
	second := fallback.Synthesize(raw, &req)

	if !reflect.DeepEqual(first, second) {
		t.Error("Synthesize is not deterministic for identical inputs")
	}
}

func TestSynthesizeMarksEstimates(t *testing.T) {
	req := testutil.SampleRequest(models.ProviderOpenAI)
	report := fallback.Synthesize("Some unstructured research text about the brand.", &req)

	if report.ExecutiveSnapshot.MarketShare.Status != models.MetricMissing {
		t.Errorf("Expected missing market share, got %s", report.ExecutiveSnapshot.MarketShare.Status)
	}
	if report.Methodology.Confidence != "low" {
		t.Errorf("Expected low confidence, got %q", report.Methodology.Confidence)
	}
	if !strings.Contains(strings.ToLower(report.Methodology.Approach), "heuristic") {
		t.Errorf("Approach should disclose heuristic synthesis, got %q", report.Methodology.Approach)
	}
}

// assertFullCoverage checks the invariant every synthesized report must
// satisfy: no nil slices, no empty required strings, no untagged metrics.
func assertFullCoverage(t *testing.T, r *models.StructuredReport) {
	t.Helper()

	for name, s := range map[string]string{
		"brand":                  r.Brand,
		"category":               r.Category,
		"executive summary":      r.ExecutiveSnapshot.Summary,
		"brand position":         r.ExecutiveSnapshot.BrandPosition,
		"primary challenge":      r.BusinessChallenge.Primary,
		"market dynamics":        r.BusinessChallenge.MarketDynamics,
		"cultural summary":       r.CulturalContext.Summary,
		"methodology approach":   r.Methodology.Approach,
		"methodology confidence": r.Methodology.Confidence,
	} {
		if s == "" {
			t.Errorf("Field %s is empty", name)
		}
	}

	for name, slice := range map[string]any{
		"key findings":            r.ExecutiveSnapshot.KeyFindings,
		"secondary challenges":    r.BusinessChallenge.Secondary,
		"audience personas":       r.AudiencePersonas,
		"competitive set":         r.CompetitiveSet,
		"trends":                  r.CulturalContext.Trends,
		"tensions":                r.CulturalContext.Tensions,
		"moments":                 r.CulturalContext.Moments,
		"strategic opportunities": r.StrategicOpportunities,
		"citations":               r.Methodology.Citations,
		"top sources":             r.SocialMetrics.TopSources,
	} {
		if reflect.ValueOf(slice).IsNil() {
			t.Errorf("Slice %s is nil", name)
		}
	}

	for name, m := range map[string]models.Metric{
		"market share":   r.ExecutiveSnapshot.MarketShare,
		"total mentions": r.SocialMetrics.TotalMentions,
		"sentiment":      r.SocialMetrics.Sentiment,
		"positive share": r.SocialMetrics.PositiveShare,
		"negative share": r.SocialMetrics.NegativeShare,
	} {
		if m.Status == "" {
			t.Errorf("Metric %s has no status", name)
		}
		if m.Unit == "" {
			t.Errorf("Metric %s has no unit", name)
		}
	}

	if r.SocialMetrics.Source == "" {
		t.Error("Social metrics section has no source label")
	}
}
