package llm

import "errors"

var (
	// ErrProviderUnavailable indicates the completion provider is unreachable.
	ErrProviderUnavailable = errors.New("llm provider unavailable")

	// ErrTimeout indicates the request exceeded the configured task timeout.
	ErrTimeout = errors.New("llm request timed out")

	// ErrInvalidOutput indicates the response could not be parsed into the
	// expected structured format.
	ErrInvalidOutput = errors.New("invalid llm output format")

	// ErrRequestFailed indicates the provider rejected or failed the call
	// for a reason other than a timeout or an unreachable endpoint.
	ErrRequestFailed = errors.New("llm request failed")

	// ErrNotConfigured indicates the provider settings are incomplete.
	ErrNotConfigured = errors.New("llm provider not configured")
)
