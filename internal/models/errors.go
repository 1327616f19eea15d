// internal/models/errors.go
package models

import "errors"

// Error kinds for the research core. Only ErrRequestInvalid is surfaced to
// the caller as a hard failure; every other kind is recovered locally by
// falling through to the fallback synthesizer or a default payload.
var (
	// ErrRequestInvalid means required request fields are missing.
	ErrRequestInvalid = errors.New("research request invalid")

	// ErrProviderUnavailable means no credentials are configured for the
	// selected provider.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrProviderRequestFailed means a provider call failed in transport or
	// returned a non-success status.
	ErrProviderRequestFailed = errors.New("provider request failed")

	// ErrExtractionFailed means no extraction strategy recovered a
	// structurally plausible object from the raw text.
	ErrExtractionFailed = errors.New("extraction failed")

	// ErrResourceQuotaExceeded means the social-listening provider rejected
	// a query creation because its quota is exhausted.
	ErrResourceQuotaExceeded = errors.New("resource quota exceeded")

	// ErrPollTimeout means an asynchronous job never reached a terminal
	// state within the attempt budget.
	ErrPollTimeout = errors.New("poll timeout")
)
