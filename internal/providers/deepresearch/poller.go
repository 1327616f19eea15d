package deepresearch

import (
	"context"
	"fmt"
	"time"

	"github.com/brandpulse-ai/brandpulse-workflows/internal/models"
)

// Poll budget: 240 attempts x 30s ≈ 2 hours, the ceiling for a deep
// research job before it is declared timed out.
const (
	DefaultPollInterval = 30 * time.Second
	DefaultMaxAttempts  = 240
)

// JobRetriever is the slice of the client the poller needs.
type JobRetriever interface {
	RetrieveJob(ctx context.Context, jobID string) (*JobState, error)
}

// Poller drives the blocking wait/retrieve loop for one research job. It
// owns the job exclusively for the duration of Wait: the state machine is
// submitted → polling → {completed | failed | timed_out}.
type Poller struct {
	client      JobRetriever
	interval    time.Duration
	maxAttempts int
}

// NewPoller creates a poller with the default interval and attempt budget.
func NewPoller(client JobRetriever) *Poller {
	return &Poller{
		client:      client,
		interval:    DefaultPollInterval,
		maxAttempts: DefaultMaxAttempts,
	}
}

// NewPollerWithBudget creates a poller with an explicit interval and
// attempt budget, used by tests.
func NewPollerWithBudget(client JobRetriever, interval time.Duration, maxAttempts int) *Poller {
	return &Poller{client: client, interval: interval, maxAttempts: maxAttempts}
}

// Wait blocks until the job reaches a terminal state or the attempt budget
// is exhausted, updating the job in place. A retrieval attempt that itself
// errors counts toward the budget and the loop continues. On completion the
// job carries the final text payload; on failure or timeout Wait returns
// the corresponding error and the job carries no payload.
func (p *Poller) Wait(ctx context.Context, job *models.ResearchJob) error {
	job.Status = models.JobPolling

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for job.Attempts < p.maxAttempts {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		job.Attempts++
		state, err := p.client.RetrieveJob(ctx, job.ID)
		if err != nil {
			fmt.Printf("[JobPoller] ⚠️ Retrieve failed for job %s (attempt %d/%d): %v\n",
				job.ID, job.Attempts, p.maxAttempts, err)
			continue
		}

		switch state.Status {
		case "completed":
			job.Status = models.JobCompleted
			job.RawPayload = state.Text
			fmt.Printf("[JobPoller] ✅ Job %s completed after %d attempts\n", job.ID, job.Attempts)
			return nil
		case "failed":
			job.Status = models.JobFailed
			return fmt.Errorf("%w: job %s reported failure: %s", models.ErrProviderRequestFailed, job.ID, state.Error)
		default:
			// pending / in_progress: stay in polling.
		}
	}

	job.Status = models.JobTimedOut
	return fmt.Errorf("%w: job %s not terminal after %d attempts", models.ErrPollTimeout, job.ID, p.maxAttempts)
}
