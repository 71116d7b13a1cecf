package exports

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/erp/exporter/internal/application/audit"
	"github.com/erp/exporter/internal/domain/export"
	"github.com/erp/exporter/internal/domain/provenance"
)

// Service orchestrates multi-export batches under a single tracked run.
type Service struct {
	registry *Registry
	tracker  *audit.Tracker
	log      *zap.Logger
}

// NewService creates the batch service.
func NewService(registry *Registry, tracker *audit.Tracker, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{registry: registry, tracker: tracker, log: log}
}

// RunBatch generates the requested exports in order under one run. The first
// failing export aborts the batch: the run is finished FAILED with a note
// naming the export, and the error is returned. A fully successful batch
// finishes the run SUCCESS.
func (s *Service) RunBatch(ctx context.Context, keys []string, companyID string) ([]export.Result, error) {
	runID := s.tracker.StartRun(ctx, companyID)

	results := make([]export.Result, 0, len(keys))
	for _, key := range keys {
		result, err := s.registry.Run(ctx, key, runID, companyID)
		if err != nil {
			s.tracker.FinishRun(ctx, runID, provenance.RunStatusFailed, fmt.Sprintf("%s: %v", key, err))
			s.log.Error("batch aborted",
				zap.String("run_id", runID),
				zap.String("export", key),
				zap.Error(err))
			return nil, err
		}
		results = append(results, result)
		s.log.Info("export generated",
			zap.String("run_id", runID),
			zap.String("export", key),
			zap.Int("rows", len(result.Rows)))
	}

	s.tracker.FinishRun(ctx, runID, provenance.RunStatusSuccess, "")
	return results, nil
}
