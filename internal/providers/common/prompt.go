package common

import (
	"fmt"
	"strings"

	"github.com/brandpulse-ai/brandpulse-workflows/internal/models"
)

// BuildResearchPrompt assembles the research request payload sent to every
// provider. The wording is deliberately plain; the report schema in the
// prompt mirrors internal/models.StructuredReport.
func BuildResearchPrompt(req *models.ResearchRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Research the brand %q in the %s category.\n\n", req.Brand, req.Category)
	if req.Timeframe != "" {
		fmt.Fprintf(&b, "Timeframe: %s\n", req.Timeframe)
	}
	if len(req.Markets) > 0 {
		fmt.Fprintf(&b, "Target markets (in priority order): %s\n", strings.Join(req.Markets, ", "))
	}
	fmt.Fprintf(&b, "Purpose: %s\n\n", req.Purpose)

	b.WriteString(`Return a single JSON object with these top-level keys:
executive_snapshot, business_challenge, audience_personas, competitive_set,
cultural_context, strategic_opportunities, methodology.

Every numeric value must be an object with "value", "unit", "confidence"
and "status" ("measured", "estimated" or "missing"). Cite sources in
methodology.citations as an array of strings. Return only the JSON object.`)

	return b.String()
}
