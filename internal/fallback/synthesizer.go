// internal/fallback/synthesizer.go
//
// Deterministic construction of a schema-valid report when no extraction
// strategy recovered one. Pure functions only: identical inputs always
// produce field-for-field identical output, so no clocks, no randomness.
package fallback

import (
	"fmt"
	"strings"

	"github.com/brandpulse-ai/brandpulse-workflows/internal/models"
)

// sentenceTerminators splits raw prose into candidate sentences.
var sentenceTerminators = []string{". ", "! ", "? ", ".\n", "!\n", "?\n", "\n"}

// Keyword sets per schema field. The nearest sentence containing a keyword
// becomes the best-effort value for that field.
var (
	challengeKeywords   = []string{"challenge", "problem", "struggle", "declining", "pressure", "threat"}
	dynamicsKeywords    = []string{"market", "industry", "sector", "landscape", "growth"}
	positionKeywords    = []string{"position", "known for", "perceived", "reputation", "leader"}
	audienceKeywords    = []string{"audience", "consumer", "customer", "demographic", "shopper", "buyer"}
	competitorKeywords  = []string{"competitor", "rival", "competes", "versus", "alternative"}
	culturalKeywords    = []string{"culture", "cultural", "trend", "social", "movement", "zeitgeist"}
	opportunityKeywords = []string{"opportunity", "potential", "could", "should", "recommend", "growth"}
	strengthKeywords    = []string{"strength", "strong", "advantage", "loyal", "distinctive"}
)

// Synthesize builds a fully populated report from whatever raw text exists
// (possibly empty) plus the request context. Every schema field path is
// present afterwards; fields with no heuristic match carry an explicit
// neutral placeholder of the correct type.
func Synthesize(raw string, req *models.ResearchRequest) *models.StructuredReport {
	sentences := splitSentences(raw)

	report := &models.StructuredReport{
		Brand:    req.Brand,
		Category: req.Category,
	}

	report.ExecutiveSnapshot = models.ExecutiveSnapshot{
		Summary:       summaryFor(req, sentences),
		BrandPosition: nearestSentence(sentences, positionKeywords),
		KeyFindings:   collectSentences(sentences, strengthKeywords, 3),
		MarketShare:   missingMetric("percent"),
	}

	report.BusinessChallenge = models.BusinessChallenge{
		Primary:        nearestSentence(sentences, challengeKeywords),
		Secondary:      []string{},
		MarketDynamics: nearestSentence(sentences, dynamicsKeywords),
	}

	if audience := nearestSentence(sentences, audienceKeywords); audience != models.PlaceholderText {
		report.AudiencePersonas = []models.Persona{{
			Name:        fmt.Sprintf("%s core audience", req.Brand),
			Description: audience,
			Motivations: []string{},
			Channels:    []string{},
		}}
	} else {
		report.AudiencePersonas = []models.Persona{}
	}

	if competitor := nearestSentence(sentences, competitorKeywords); competitor != models.PlaceholderText {
		report.CompetitiveSet = []models.Competitor{{
			Name:         models.PlaceholderText,
			Positioning:  competitor,
			Strengths:    []string{},
			Weaknesses:   []string{},
			ShareOfVoice: missingMetric("percent"),
		}}
	} else {
		report.CompetitiveSet = []models.Competitor{}
	}

	report.CulturalContext = models.CulturalContext{
		Summary:  nearestSentence(sentences, culturalKeywords),
		Trends:   collectSentences(sentences, culturalKeywords, 3),
		Tensions: []string{},
		Moments:  []string{},
	}

	opportunities := collectSentences(sentences, opportunityKeywords, 3)
	report.StrategicOpportunities = make([]models.Opportunity, 0, len(opportunities))
	for _, o := range opportunities {
		report.StrategicOpportunities = append(report.StrategicOpportunities, models.Opportunity{
			Title:     o,
			Rationale: models.PlaceholderText,
			Horizon:   models.PlaceholderText,
		})
	}

	report.Methodology = models.Methodology{
		Approach:   "Heuristic synthesis from unstructured research output; fields are best-effort estimates",
		Citations:  []string{},
		Confidence: "low",
	}

	report.SocialMetrics = models.DefaultSocialMetrics()

	report.Normalize()
	return report
}

func summaryFor(req *models.ResearchRequest, sentences []string) string {
	if len(sentences) > 0 {
		return sentences[0]
	}
	return fmt.Sprintf("Structured research for %s in the %s category is unavailable; %s",
		req.Brand, req.Category, models.PlaceholderText)
}

// nearestSentence returns the first sentence containing any keyword, or the
// neutral placeholder when nothing matches.
func nearestSentence(sentences []string, keywords []string) string {
	for _, s := range sentences {
		lower := strings.ToLower(s)
		for _, k := range keywords {
			if strings.Contains(lower, k) {
				return s
			}
		}
	}
	return models.PlaceholderText
}

// collectSentences gathers up to max distinct sentences matching any
// keyword, in text order.
func collectSentences(sentences []string, keywords []string, max int) []string {
	var out []string
	for _, s := range sentences {
		lower := strings.ToLower(s)
		for _, k := range keywords {
			if strings.Contains(lower, k) {
				out = append(out, s)
				break
			}
		}
		if len(out) == max {
			break
		}
	}
	if out == nil {
		return []string{}
	}
	return out
}

func splitSentences(raw string) []string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return nil
	}

	parts := []string{text}
	for _, term := range sentenceTerminators {
		var next []string
		for _, p := range parts {
			for _, piece := range strings.Split(p, term) {
				next = append(next, piece)
			}
		}
		parts = next
	}

	var sentences []string
	for _, p := range parts {
		s := strings.TrimSpace(strings.Trim(p, "*#-• \t"))
		if len(s) >= 12 {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

func missingMetric(unit string) models.Metric {
	return models.Metric{Value: 0, Unit: unit, Confidence: 0, Status: models.MetricMissing}
}
