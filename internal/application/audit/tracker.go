// Package audit provides the run-tracking and raw-payload capture services.
// Both are best-effort: a missing or unreachable provenance store degrades
// them to no-ops and never affects export correctness.
package audit

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/erp/exporter/internal/domain/provenance"
)

// Tracker opens and closes extraction runs. A nil repository disables
// tracking entirely.
type Tracker struct {
	runs provenance.RunRepository
	log  *zap.Logger
}

// NewTracker creates a Tracker. runs may be nil when no store is configured.
func NewTracker(runs provenance.RunRepository, log *zap.Logger) *Tracker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Tracker{runs: runs, log: log}
}

// StartRun opens a RUNNING run and returns its identifier. When the store is
// absent or unreachable it returns an empty string and the extraction
// proceeds untracked.
func (t *Tracker) StartRun(ctx context.Context, companyID string) string {
	if t.runs == nil {
		return ""
	}
	run := provenance.NewRun(companyID)
	if err := t.runs.Create(ctx, run); err != nil {
		t.log.Warn("run tracking degraded to no-op for this batch", zap.Error(err))
		return ""
	}
	t.log.Debug("extraction run started", zap.String("run_id", run.RunID))
	return run.RunID
}

// FinishRun records the terminal status. A no-op for an empty runID.
// Every run that was started must be finished exactly once, including on the
// failure path; the batch orchestrator upholds that.
func (t *Tracker) FinishRun(ctx context.Context, runID string, status provenance.RunStatus, notes string) {
	if t.runs == nil || runID == "" {
		return
	}
	var n *string
	if notes != "" {
		n = &notes
	}
	if err := t.runs.Finish(ctx, runID, status, time.Now().UTC(), n); err != nil {
		t.log.Warn("failed to record run completion",
			zap.String("run_id", runID),
			zap.String("status", string(status)),
			zap.Error(err))
		return
	}
	t.log.Debug("extraction run finished",
		zap.String("run_id", runID),
		zap.String("status", string(status)))
}
