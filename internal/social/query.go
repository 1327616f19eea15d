// internal/social/query.go
package social

import (
	"fmt"
	"strings"
	"time"
)

// queryNamePrefix scopes the ephemeral queries this service creates so the
// reuse search never picks up a human-managed saved search.
const queryNamePrefix = "brandpulse_tmp"

// BuildBooleanQuery generates a scoped boolean query from brand name
// variants (quoted phrase, hashtag, mention) plus category terms.
func BuildBooleanQuery(brand, category string) string {
	compact := strings.ReplaceAll(strings.TrimSpace(brand), " ", "")

	variants := []string{fmt.Sprintf("%q", strings.TrimSpace(brand))}
	if compact != "" {
		variants = append(variants, "#"+compact, "@"+compact)
	}

	query := "(" + strings.Join(variants, " OR ") + ")"
	if terms := categoryTerms(category); len(terms) > 0 {
		query += " AND (" + strings.Join(terms, " OR ") + ")"
	}
	return query
}

func categoryTerms(category string) []string {
	var terms []string
	for _, t := range strings.Fields(strings.ToLower(category)) {
		t = strings.Trim(t, ",&/")
		if len(t) > 2 {
			terms = append(terms, t)
		}
	}
	return terms
}

// QueryName builds a time-stamped, provider-scoped unique name for an
// ephemeral query.
func QueryName(brand string, now time.Time) string {
	slug := strings.ToLower(strings.TrimSpace(brand))
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, slug)
	return fmt.Sprintf("%s_%s_%d", queryNamePrefix, slug, now.UnixMilli())
}

// IsEphemeralName reports whether a saved search name was generated by this
// service, i.e. is safe to reuse as a temporary resource.
func IsEphemeralName(name string) bool {
	return strings.HasPrefix(name, queryNamePrefix)
}
