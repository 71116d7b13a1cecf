package provenance

import (
	"context"
	"errors"
	"time"
)

// Store errors. Unavailable means a configured store could not be reached;
// NotConfigured means no store was wired at all. Both degrade run tracking
// and payload capture to no-ops, but they stay distinguishable so monitoring
// can tell an outage from an intentional single-node setup.
var (
	ErrStoreUnavailable   = errors.New("provenance: store unavailable")
	ErrStoreNotConfigured = errors.New("provenance: store not configured")
)

// RunRepository persists extraction run metadata.
type RunRepository interface {
	// Create inserts a new run in its initial state.
	Create(ctx context.Context, run *Run) error
	// Finish sets the terminal status, completion time, and optional notes.
	// Calling it twice overwrites the terminal fields without error.
	Finish(ctx context.Context, runID string, status RunStatus, finishedAt time.Time, notes *string) error
}

// RawPayloadRepository appends immutable raw payload rows. This subsystem
// never updates or deletes them; retention is out of scope.
type RawPayloadRepository interface {
	Insert(ctx context.Context, payload *RawPayload) error
}
