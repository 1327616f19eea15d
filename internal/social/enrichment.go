// internal/social/enrichment.go
package social

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/brandpulse-ai/brandpulse-workflows/internal/models"
)

// DefaultSettleDelay is how long a freshly created query needs before the
// provider makes it queryable.
const DefaultSettleDelay = 10 * time.Second

// Manager drives the create→wait→fetch→delete lifecycle of an ephemeral
// social-listening query. Any query the manager itself creates is deleted
// by the time Enrich returns, on every exit path; queries that were merely
// reused are left alone.
type Manager struct {
	client      SocialClient
	settleDelay time.Duration
	now         func() time.Time
}

// NewManager creates an enrichment manager backed by the given client.
func NewManager(client SocialClient) *Manager {
	return &Manager{
		client:      client,
		settleDelay: DefaultSettleDelay,
		now:         time.Now,
	}
}

// NewManagerWithDelay is NewManager with an explicit settle delay, used by
// tests to avoid real waiting.
func NewManagerWithDelay(client SocialClient, settleDelay time.Duration) *Manager {
	m := NewManager(client)
	m.settleDelay = settleDelay
	return m
}

// Enrich fetches volume/sentiment metrics for a brand. It never returns an
// error: any failure along the way yields the labeled default payload so a
// report's enrichment section is always present.
func (m *Manager) Enrich(ctx context.Context, brand, category string, window TimeWindow) models.SocialMetrics {
	booleanQuery := BuildBooleanQuery(brand, category)
	name := QueryName(brand, m.now())

	query, created, err := m.acquireQuery(ctx, name, booleanQuery)
	if err != nil {
		fmt.Printf("[SocialEnrichment] ⚠️ Could not acquire query for %s: %v\n", brand, err)
		return models.DefaultSocialMetrics()
	}

	// Guaranteed release: only queries we created ourselves, and exactly
	// once, regardless of how the fetch below exits.
	if created {
		defer func() {
			if delErr := m.client.DeleteQuery(context.WithoutCancel(ctx), query.ID); delErr != nil {
				fmt.Printf("[SocialEnrichment] ⚠️ Failed to delete ephemeral query %s: %v\n", query.ID, delErr)
			}
		}()

		// Freshly created queries need a settle delay before they are
		// queryable; reused ones are already live.
		select {
		case <-time.After(m.settleDelay):
		case <-ctx.Done():
			return models.DefaultSocialMetrics()
		}
	}

	mentions, err := m.client.FetchMentions(ctx, query.ID, window)
	if err != nil {
		fmt.Printf("[SocialEnrichment] ⚠️ Mention fetch failed for query %s: %v\n", query.ID, err)
		return models.DefaultSocialMetrics()
	}
	if len(mentions) == 0 {
		fmt.Printf("[SocialEnrichment] No mentions found for %s, returning default payload\n", brand)
		return models.DefaultSocialMetrics()
	}

	return computeMetrics(mentions)
}

// acquireQuery creates an ephemeral query, falling back to reusing an
// existing ephemeral query when the provider quota is exhausted. The
// returned flag is true only when this call created the query.
func (m *Manager) acquireQuery(ctx context.Context, name, booleanQuery string) (*Query, bool, error) {
	query, err := m.client.CreateQuery(ctx, name, booleanQuery)
	if err == nil {
		return query, true, nil
	}
	if !errors.Is(err, models.ErrResourceQuotaExceeded) {
		return nil, false, err
	}

	fmt.Printf("[SocialEnrichment] Query quota exhausted, searching for a reusable query\n")
	existing, listErr := m.client.ListQueries(ctx)
	if listErr != nil {
		return nil, false, fmt.Errorf("quota exhausted and list failed: %w", listErr)
	}
	for i := range existing {
		if IsEphemeralName(existing[i].Name) {
			fmt.Printf("[SocialEnrichment] Reusing ephemeral query %s (%s)\n", existing[i].ID, existing[i].Name)
			return &existing[i], false, nil
		}
	}
	return nil, false, fmt.Errorf("quota exhausted and no reusable query found: %w", err)
}

func computeMetrics(mentions []Mention) models.SocialMetrics {
	total := len(mentions)
	var positive, negative int
	sourceCounts := map[string]int{}
	for _, mention := range mentions {
		switch mention.Sentiment {
		case "positive":
			positive++
		case "negative":
			negative++
		}
		if mention.Source != "" {
			sourceCounts[mention.Source]++
		}
	}

	sentiment := float64(positive-negative) / float64(total)

	return models.SocialMetrics{
		Source:        models.SocialSourceLive,
		TotalMentions: measuredMetric(float64(total), "mentions"),
		Sentiment:     measuredMetric(sentiment, "score"),
		PositiveShare: measuredMetric(100*float64(positive)/float64(total), "percent"),
		NegativeShare: measuredMetric(100*float64(negative)/float64(total), "percent"),
		TopSources:    topSources(sourceCounts, 3),
	}
}

func measuredMetric(value float64, unit string) models.Metric {
	return models.Metric{Value: value, Unit: unit, Confidence: 0.9, Status: models.MetricMeasured}
}

// topSources returns up to max source names by mention count, ties broken
// alphabetically for deterministic output.
func topSources(counts map[string]int, max int) []string {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})
	if len(names) > max {
		names = names[:max]
	}
	return names
}
