// internal/extract/extractor.go
package extract

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/brandpulse-ai/brandpulse-workflows/internal/models"
)

// Extraction strategy identifiers, in the fixed order they are attempted.
const (
	StrategyDirect           = "direct_parse"
	StrategyFencedJSON       = "fenced_json"
	StrategyFencedUntagged   = "fenced_untagged"
	StrategyLargestCandidate = "largest_candidate"
)

// Attempt records one strategy outcome. Attempts are transient: the trace
// is used only for logging and to decide whether to fall through to the
// fallback synthesizer.
type Attempt struct {
	Strategy string
	Err      error
}

// Result is a successfully recovered JSON object plus the strategy that
// produced it.
type Result struct {
	Object   map[string]any
	Strategy string
}

// expectedTopLevelKeys is the structural sniff used by the largest-candidate
// scan: a candidate object must carry at least one of these keys to be
// accepted as report-shaped.
var expectedTopLevelKeys = []string{
	"executive_snapshot",
	"business_challenge",
	"audience_personas",
	"competitive_set",
	"cultural_context",
	"strategic_opportunities",
	"methodology",
	"brand",
}

var fencedBlockRe = regexp.MustCompile("(?s)```([a-zA-Z]*)[ \t]*\r?\n(.*?)```")

// Parse recovers a JSON object from free-form provider text. Strategies are
// tried strictly in order and the first success wins; on total failure the
// attempted-strategy trace is returned along with ErrExtractionFailed.
func Parse(raw string) (*Result, []Attempt, error) {
	var attempts []Attempt

	// Strategy 1: strip leading markup and parse the text as one object,
	// truncating at the balancing brace when trailing prose follows it.
	if obj, err := parseDirect(raw); err == nil {
		return &Result{Object: obj, Strategy: StrategyDirect}, attempts, nil
	} else {
		attempts = append(attempts, Attempt{Strategy: StrategyDirect, Err: err})
	}

	// Strategy 2: fenced block tagged as JSON.
	if obj, err := parseFenced(raw, true); err == nil {
		return &Result{Object: obj, Strategy: StrategyFencedJSON}, attempts, nil
	} else {
		attempts = append(attempts, Attempt{Strategy: StrategyFencedJSON, Err: err})
	}

	// Strategy 3: fenced block without a language tag.
	if obj, err := parseFenced(raw, false); err == nil {
		return &Result{Object: obj, Strategy: StrategyFencedUntagged}, attempts, nil
	} else {
		attempts = append(attempts, Attempt{Strategy: StrategyFencedUntagged, Err: err})
	}

	// Strategy 4: scan for balanced {...} candidates, largest first, and
	// accept the first one that sniffs as report-shaped.
	if obj, err := parseLargestCandidate(raw); err == nil {
		return &Result{Object: obj, Strategy: StrategyLargestCandidate}, attempts, nil
	} else {
		attempts = append(attempts, Attempt{Strategy: StrategyLargestCandidate, Err: err})
	}

	return nil, attempts, fmt.Errorf("%w: no strategy recovered an object from %d characters", models.ErrExtractionFailed, len(raw))
}

// ToReport converts a recovered object into the canonical report schema.
// Unknown fields are dropped and every missing field is normalized to its
// placeholder shape.
func ToReport(object map[string]any) (*models.StructuredReport, error) {
	data, err := json.Marshal(object)
	if err != nil {
		return nil, fmt.Errorf("failed to re-encode extracted object: %w", err)
	}

	var report models.StructuredReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("extracted object does not fit report schema: %w", err)
	}

	report.Normalize()
	return &report, nil
}

func parseDirect(raw string) (map[string]any, error) {
	trimmed := StripLeadingMarkup(raw)
	obj, err := parseObject(trimmed)
	if err == nil {
		return obj, nil
	}
	// Text that opens with an object but carries trailing prose is still a
	// direct parse: truncate at the balancing brace and retry. An object
	// embedded mid-prose is left to the candidate scan.
	if strings.HasPrefix(strings.TrimSpace(trimmed), "{") {
		return parseObject(Repair(trimmed))
	}
	return nil, err
}

func parseFenced(raw string, wantJSONTag bool) (map[string]any, error) {
	matches := fencedBlockRe.FindAllStringSubmatch(raw, -1)
	if len(matches) == 0 {
		return nil, fmt.Errorf("no fenced block found")
	}

	var lastErr error
	for _, m := range matches {
		tag, body := strings.ToLower(m[1]), m[2]
		if wantJSONTag && tag != "json" {
			continue
		}
		if !wantJSONTag && tag != "" {
			continue
		}

		obj, err := parseObject(Repair(body))
		if err == nil {
			return obj, nil
		}
		lastErr = err
	}

	if lastErr == nil {
		if wantJSONTag {
			return nil, fmt.Errorf("no json-tagged fenced block found")
		}
		return nil, fmt.Errorf("no untagged fenced block found")
	}
	return nil, lastErr
}

func parseLargestCandidate(raw string) (map[string]any, error) {
	candidates := balancedCandidates(raw)
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no balanced object candidates found")
	}

	// Largest first; stable so equal-length candidates keep text order.
	sort.SliceStable(candidates, func(i, j int) bool {
		return len(candidates[i]) > len(candidates[j])
	})

	for _, c := range candidates {
		obj, err := parseObject(Repair(c))
		if err != nil {
			continue
		}
		if hasExpectedKey(obj) {
			return obj, nil
		}
	}
	return nil, fmt.Errorf("no candidate carried an expected top-level key")
}

func parseObject(text string) (map[string]any, error) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &obj); err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, fmt.Errorf("parsed value is not an object")
	}
	return obj, nil
}

// StripLeadingMarkup drops leading bold/header markdown lines (and
// horizontal rules) so a response that opens with "**REPORT**" or a heading
// can still be parsed directly as JSON.
func StripLeadingMarkup(raw string) string {
	text := strings.TrimSpace(raw)
	for {
		line, rest, found := strings.Cut(text, "\n")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" ||
			strings.HasPrefix(trimmed, "#") ||
			strings.HasPrefix(trimmed, "---") ||
			(strings.HasPrefix(trimmed, "**") && strings.HasSuffix(trimmed, "**")) {
			if !found {
				return ""
			}
			text = strings.TrimSpace(rest)
			continue
		}
		return text
	}
}

// balancedCandidates returns every substring of raw that forms a balanced
// {...} object, string-aware so braces inside values are ignored.
func balancedCandidates(raw string) []string {
	var candidates []string
	for i := 0; i < len(raw); i++ {
		if raw[i] != '{' {
			continue
		}
		if end := balancePoint(raw, i); end > i {
			candidates = append(candidates, raw[i:end+1])
		}
	}
	return candidates
}

// balancePoint returns the index of the brace balancing the opening brace
// at start, or -1 when the object never closes.
func balancePoint(raw string, start int) int {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(raw); i++ {
		c := raw[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return i
				}
			}
		}
	}
	return -1
}

func hasExpectedKey(obj map[string]any) bool {
	for _, key := range expectedTopLevelKeys {
		if _, ok := obj[key]; ok {
			return true
		}
	}
	return false
}
