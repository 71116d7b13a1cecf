package export

import (
	"errors"
	"fmt"
)

// Extraction pipeline errors. Only these propagate to the batch orchestrator;
// field-level anomalies resolve to nil cells and provenance failures are
// logged and discarded at the call site.
var (
	ErrNotConfigured       = errors.New("export: api client not configured")
	ErrUpstreamUnavailable = errors.New("export: upstream api unavailable")
	ErrRequestFailed       = errors.New("export: upstream request failed")
	ErrInvalidResponse     = errors.New("export: invalid upstream response")
	ErrUnknownExport       = errors.New("export: unknown export key")
)

// UpstreamError carries the status code and response body of a non-2xx
// upstream reply. It unwraps to ErrRequestFailed for errors.Is matching.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("export: upstream request failed: HTTP %d", e.StatusCode)
}

func (e *UpstreamError) Unwrap() error {
	return ErrRequestFailed
}
