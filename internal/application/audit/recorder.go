package audit

import (
	"context"

	"github.com/erp/exporter/internal/domain/provenance"
)

// Recorder persists the raw JSON response of one endpoint call under a run.
// Capture returns its error instead of swallowing it so the best-effort
// policy lives in the caller, visible at the call site: the orchestrator
// logs the error and continues.
type Recorder struct {
	payloads provenance.RawPayloadRepository
}

// NewRecorder creates a Recorder over the given repository.
func NewRecorder(payloads provenance.RawPayloadRepository) *Recorder {
	return &Recorder{payloads: payloads}
}

// CaptureInput describes one endpoint call to record.
type CaptureInput struct {
	RunID      string
	CompanyID  string
	Endpoint   string
	HTTPStatus *int
	RequestURL string
	PageNumber int
	APICursor  string
	Payload    any
}

// Capture serializes the payload canonically, hashes it, and appends an
// immutable audit row.
func (r *Recorder) Capture(ctx context.Context, in CaptureInput) error {
	if r == nil || r.payloads == nil {
		return provenance.ErrStoreNotConfigured
	}
	payload, err := provenance.NewRawPayload(
		in.RunID, in.CompanyID, in.Endpoint,
		in.HTTPStatus, in.Payload, in.RequestURL, in.PageNumber, in.APICursor,
	)
	if err != nil {
		return err
	}
	return r.payloads.Insert(ctx, payload)
}
