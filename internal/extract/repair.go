// internal/extract/repair.go
package extract

import (
	"fmt"
	"regexp"
	"strings"
)

// citationTokensRe matches a "citations" field written as concatenated
// bracket-number tokens, e.g. "citations": [1][2][3], which some deep
// research providers emit instead of a JSON array.
var citationTokensRe = regexp.MustCompile(`("citations"\s*:\s*)((?:\s*\[\s*\d+\s*\])+)`)

var bracketNumberRe = regexp.MustCompile(`\[\s*(\d+)\s*\]`)

// Repair applies the full repair pass to a JSON candidate: truncate at the
// brace balancing the first opening brace, then rewrite malformed citation
// tokens. Pure function, safe to call on already-valid JSON.
func Repair(candidate string) string {
	repaired := TruncateBalanced(candidate)
	return RepairCitations(repaired)
}

// TruncateBalanced returns the substring from the first opening brace
// through the brace that balances it, discarding any trailing prose. String
// literals and escapes are respected so braces inside values do not count.
// If no balancing brace is found the input is returned trimmed.
func TruncateBalanced(candidate string) string {
	start := strings.IndexByte(candidate, '{')
	if start < 0 {
		return strings.TrimSpace(candidate)
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(candidate); i++ {
		c := candidate[i]
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
					return candidate[start : i+1]
				}
			}
		}
	}
	return strings.TrimSpace(candidate[start:])
}

// RepairCitations rewrites a citations field written as concatenated
// bracket-number tokens into a proper JSON array of strings:
//
//	"citations": [1][2][3]  →  "citations": ["Citation 1","Citation 2","Citation 3"]
func RepairCitations(candidate string) string {
	return citationTokensRe.ReplaceAllStringFunc(candidate, func(match string) string {
		groups := citationTokensRe.FindStringSubmatch(match)
		prefix, tokens := groups[1], groups[2]

		var labels []string
		for _, num := range bracketNumberRe.FindAllStringSubmatch(tokens, -1) {
			labels = append(labels, fmt.Sprintf("%q", "Citation "+num[1]))
		}
		return prefix + "[" + strings.Join(labels, ",") + "]"
	})
}
