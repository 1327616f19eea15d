package deepresearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/brandpulse-ai/brandpulse-workflows/internal/models"
)

// Client handles all HTTP interactions with the deep research job API.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewClient creates a deep research API client.
func NewClient(apiKey, baseURL, model string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
		httpClient: &http.Client{
			Timeout: 2 * time.Minute, // per call; the poller owns the long wait
		},
	}
}

// SubmitJob submits a research job and returns the provider-assigned job
// identifier.
func (c *Client) SubmitJob(ctx context.Context, prompt string) (string, error) {
	jsonData, err := json.Marshal(submitRequest{Model: c.model, Prompt: prompt})
	if err != nil {
		return "", fmt.Errorf("failed to marshal submit request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/research/jobs", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create submit request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrProviderRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return "", fmt.Errorf("%w: submit returned status %d", models.ErrProviderRequestFailed, resp.StatusCode)
	}

	var submitResp submitResponse
	if err := json.NewDecoder(resp.Body).Decode(&submitResp); err != nil {
		return "", fmt.Errorf("failed to decode submit response: %w", err)
	}
	if submitResp.JobID == "" {
		return "", fmt.Errorf("%w: submit returned no job id", models.ErrProviderRequestFailed)
	}

	return submitResp.JobID, nil
}

// RetrieveJob fetches the current status of a job by identifier, plus the
// final text payload once the job has completed.
func (c *Client) RetrieveJob(ctx context.Context, jobID string) (*JobState, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/research/jobs/"+jobID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create retrieve request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrProviderRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: retrieve returned status %d", models.ErrProviderRequestFailed, resp.StatusCode)
	}

	var retrieveResp retrieveResponse
	if err := json.NewDecoder(resp.Body).Decode(&retrieveResp); err != nil {
		return nil, fmt.Errorf("failed to decode retrieve response: %w", err)
	}

	state := &JobState{Status: retrieveResp.Status, Error: retrieveResp.Error}
	if retrieveResp.Result != nil {
		state.Text = retrieveResp.Result.Text
	}
	return state, nil
}
