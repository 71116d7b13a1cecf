// Package provenance defines the run-tracking and raw-payload audit domain:
// every upstream API response is attributable to an extraction run and
// replayable byte-for-byte from its stored serialization.
package provenance

import (
	"time"

	"github.com/google/uuid"
)

// RunStatus is the lifecycle state of an extraction run.
type RunStatus string

const (
	RunStatusRunning RunStatus = "RUNNING"
	RunStatusSuccess RunStatus = "SUCCESS"
	RunStatusFailed  RunStatus = "FAILED"
)

// Run is one batch extraction attempt. It is created RUNNING and transitions
// exactly once to SUCCESS or FAILED. A run is owned by the extraction
// invocation that created it; no concurrent writer mutates the same RunID.
type Run struct {
	RunID      string
	CompanyID  *string
	Status     RunStatus
	StartedAt  time.Time
	FinishedAt *time.Time
	Notes      *string
}

// NewRun creates a RUNNING run with a fresh identifier. An empty companyID is
// stored as NULL.
func NewRun(companyID string) *Run {
	run := &Run{
		RunID:     uuid.NewString(),
		Status:    RunStatusRunning,
		StartedAt: time.Now().UTC(),
	}
	if companyID != "" {
		run.CompanyID = &companyID
	}
	return run
}

// Finish records the terminal status and completion time. Last write wins;
// callers uphold the one-finish-per-run invariant.
func (r *Run) Finish(status RunStatus, notes *string) {
	now := time.Now().UTC()
	r.Status = status
	r.FinishedAt = &now
	r.Notes = notes
}
