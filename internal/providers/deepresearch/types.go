package deepresearch

// Deep research job API structures.

// submitRequest is the payload for submitting a research job.
type submitRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

// submitResponse is returned immediately on submission.
type submitResponse struct {
	JobID string `json:"job_id"`
}

// retrieveResponse contains the status of a research job and, once the job
// has completed, its final text payload.
type retrieveResponse struct {
	JobID  string     `json:"job_id"`
	Status string     `json:"status"` // pending, in_progress, completed, failed
	Result *jobResult `json:"result,omitempty"`
	Error  string     `json:"error,omitempty"`
}

type jobResult struct {
	Text string `json:"text"`
}

// JobState is one retrieval snapshot handed to the poller.
type JobState struct {
	Status string
	Text   string
	Error  string
}
