// internal/social/client.go
package social

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/brandpulse-ai/brandpulse-workflows/internal/models"
)

// SocialClient is the contract the ephemeral query manager needs from a
// social-listening provider. Satisfied by Client; test code substitutes a
// fake.
type SocialClient interface {
	CreateQuery(ctx context.Context, name, booleanQuery string) (*Query, error)
	ListQueries(ctx context.Context) ([]Query, error)
	FetchMentions(ctx context.Context, queryID string, window TimeWindow) ([]Mention, error)
	DeleteQuery(ctx context.Context, queryID string) error
}

// Query is a provider-side saved search.
type Query struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	BooleanQuery string `json:"boolean_query"`
}

// Mention is one social-listening record.
type Mention struct {
	Text      string `json:"text"`
	Sentiment string `json:"sentiment"` // positive, negative, neutral
	Source    string `json:"source"`    // e.g. twitter, reddit, news
	Date      string `json:"date"`
}

// TimeWindow scopes a mention fetch.
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

type createQueryRequest struct {
	Name         string `json:"name"`
	BooleanQuery string `json:"boolean_query"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type listQueriesResponse struct {
	Queries []Query `json:"queries"`
}

type mentionsResponse struct {
	Mentions []Mention `json:"mentions"`
}

// Client talks to the social-listening provider's HTTP API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a social-listening API client.
func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 2 * time.Minute,
		},
	}
}

// CreateQuery creates a saved search under the given boolean query. A
// provider-side quota rejection is returned as ErrResourceQuotaExceeded so
// the caller can fall back to reusing an existing query.
func (c *Client) CreateQuery(ctx context.Context, name, booleanQuery string) (*Query, error) {
	body, err := json.Marshal(createQueryRequest{Name: name, BooleanQuery: booleanQuery})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal create query request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/queries", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrProviderRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		bodyBytes, _ := io.ReadAll(resp.Body)
		var errResp errorResponse
		_ = json.Unmarshal(bodyBytes, &errResp)
		if resp.StatusCode == http.StatusForbidden && errResp.Code == "quota_exceeded" {
			return nil, fmt.Errorf("%w: %s", models.ErrResourceQuotaExceeded, errResp.Error)
		}
		return nil, fmt.Errorf("%w: create query returned status %d", models.ErrProviderRequestFailed, resp.StatusCode)
	}

	var query Query
	if err := json.NewDecoder(resp.Body).Decode(&query); err != nil {
		return nil, fmt.Errorf("failed to decode create query response: %w", err)
	}
	return &query, nil
}

// ListQueries returns the saved searches visible to this account.
func (c *Client) ListQueries(ctx context.Context) ([]Query, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/queries", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrProviderRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: list queries returned status %d", models.ErrProviderRequestFailed, resp.StatusCode)
	}

	var listResp listQueriesResponse
	if err := json.NewDecoder(resp.Body).Decode(&listResp); err != nil {
		return nil, fmt.Errorf("failed to decode list queries response: %w", err)
	}
	return listResp.Queries, nil
}

// FetchMentions retrieves mention records for a query scoped to a time
// window.
func (c *Client) FetchMentions(ctx context.Context, queryID string, window TimeWindow) ([]Mention, error) {
	url := fmt.Sprintf("%s/queries/%s/mentions?start=%s&end=%s",
		c.baseURL, queryID,
		window.Start.UTC().Format(time.RFC3339),
		window.End.UTC().Format(time.RFC3339))

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrProviderRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: fetch mentions returned status %d", models.ErrProviderRequestFailed, resp.StatusCode)
	}

	var mentionsResp mentionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&mentionsResp); err != nil {
		return nil, fmt.Errorf("failed to decode mentions response: %w", err)
	}
	return mentionsResp.Mentions, nil
}

// DeleteQuery removes a saved search.
func (c *Client) DeleteQuery(ctx context.Context, queryID string) error {
	req, err := http.NewRequestWithContext(ctx, "DELETE", c.baseURL+"/queries/"+queryID, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrProviderRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("%w: delete query returned status %d", models.ErrProviderRequestFailed, resp.StatusCode)
	}
	return nil
}
