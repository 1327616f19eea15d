// internal/models/models.go
package models

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ProviderKind identifies which research provider strategy handles a request.
type ProviderKind string

const (
	ProviderOpenAI       ProviderKind = "openai"
	ProviderAnthropic    ProviderKind = "anthropic"
	ProviderPerplexity   ProviderKind = "perplexity"
	ProviderDeepResearch ProviderKind = "deep_research"
	ProviderManual       ProviderKind = "manual"
)

// AllProviderKinds lists every supported provider kind.
var AllProviderKinds = []ProviderKind{
	ProviderOpenAI,
	ProviderAnthropic,
	ProviderPerplexity,
	ProviderDeepResearch,
	ProviderManual,
}

// Valid reports whether k is a known provider kind.
func (k ProviderKind) Valid() bool {
	switch k {
	case ProviderOpenAI, ProviderAnthropic, ProviderPerplexity, ProviderDeepResearch, ProviderManual:
		return true
	}
	return false
}

// Async reports whether k submits a long-running job that must be polled.
func (k ProviderKind) Async() bool {
	return k == ProviderDeepResearch
}

// ResearchRequest is a single brand research request. Immutable once issued.
type ResearchRequest struct {
	RequestID uuid.UUID    `json:"request_id"`
	Brand     string       `json:"brand"`
	Category  string       `json:"category"`
	Timeframe string       `json:"timeframe"`
	Markets   []string     `json:"markets"`
	Purpose   string       `json:"purpose"`
	Provider  ProviderKind `json:"provider"`

	// RawResult, when set, bypasses the provider call entirely and goes
	// straight to extraction. Used to resubmit manual workflow output.
	RawResult string `json:"raw_result,omitempty"`
}

// Validate checks the required request fields. A validation failure is the
// only error kind surfaced to the caller as a hard failure.
func (r *ResearchRequest) Validate() error {
	var missing []string
	if strings.TrimSpace(r.Brand) == "" {
		missing = append(missing, "brand")
	}
	if strings.TrimSpace(r.Category) == "" {
		missing = append(missing, "category")
	}
	if strings.TrimSpace(r.Purpose) == "" {
		missing = append(missing, "purpose")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrRequestInvalid, strings.Join(missing, ", "))
	}
	if r.Provider != "" && !r.Provider.Valid() {
		return fmt.Errorf("%w: unknown provider %q", ErrRequestInvalid, r.Provider)
	}
	return nil
}

// JobStatus is the state of an asynchronous research job.
type JobStatus string

const (
	JobSubmitted JobStatus = "submitted"
	JobPolling   JobStatus = "polling"
	JobCompleted JobStatus = "completed"
	JobFailed    JobStatus = "failed"
	JobTimedOut  JobStatus = "timed_out"
)

// ResearchJob tracks one asynchronous provider job for the duration of its
// poll loop. The job poller owns it exclusively; it is discarded once the
// raw payload has been extracted or the job times out.
type ResearchJob struct {
	ID         string       `json:"id"`
	Provider   ProviderKind `json:"provider"`
	Status     JobStatus    `json:"status"`
	RawPayload string       `json:"raw_payload,omitempty"`
	Attempts   int          `json:"attempts"`
}

// ManualWorkflow is the terminal result of the manual provider strategy: a
// prepared prompt plus human instructions. The caller presents it to an
// operator and later resubmits the operator's output as a RawResult.
type ManualWorkflow struct {
	Prompt       string   `json:"prompt"`
	Instructions []string `json:"instructions"`
	ProviderURL  string   `json:"provider_url"`
}

// ResultSource records how a StructuredReport was produced.
type ResultSource string

const (
	SourceExtracted ResultSource = "extracted"
	SourceFallback  ResultSource = "fallback"
)

// ResearchResult is what the dispatcher hands back to its caller: either a
// fully populated report or, for the manual strategy, a workflow payload.
type ResearchResult struct {
	Report   *StructuredReport `json:"report,omitempty"`
	Manual   *ManualWorkflow   `json:"manual,omitempty"`
	Source   ResultSource      `json:"source,omitempty"`
	Provider ProviderKind      `json:"provider"`
	Cost     float64           `json:"cost"`

	// Strategy is the extraction strategy that recovered the report, empty
	// when the fallback synthesizer produced it.
	Strategy string `json:"strategy,omitempty"`
}

// IsManual reports whether the result is a manual workflow payload rather
// than a report.
func (r *ResearchResult) IsManual() bool {
	return r.Manual != nil
}
