package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/erp/exporter/internal/domain/provenance"
	"github.com/erp/exporter/internal/infrastructure/persistence/models"
)

// GormRunRepository implements provenance.RunRepository using GORM
type GormRunRepository struct {
	db *gorm.DB
}

// NewGormRunRepository creates a new GormRunRepository
func NewGormRunRepository(db *gorm.DB) *GormRunRepository {
	return &GormRunRepository{db: db}
}

// Create inserts a new run in its initial state.
func (r *GormRunRepository) Create(ctx context.Context, run *provenance.Run) error {
	var model models.RunModel
	model.FromDomain(run)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("%w: create run: %v", provenance.ErrStoreUnavailable, err)
	}
	return nil
}

// Finish sets the terminal status, completion time, and optional notes.
// Last write wins; a second Finish on the same run overwrites without error.
func (r *GormRunRepository) Finish(ctx context.Context, runID string, status provenance.RunStatus, finishedAt time.Time, notes *string) error {
	err := r.db.WithContext(ctx).
		Model(&models.RunModel{}).
		Where("run_id = ?", runID).
		Updates(map[string]any{
			"status":      string(status),
			"finished_at": finishedAt,
			"notes":       notes,
		}).Error
	if err != nil {
		return fmt.Errorf("%w: finish run: %v", provenance.ErrStoreUnavailable, err)
	}
	return nil
}

// FindByID returns a run by its identifier.
func (r *GormRunRepository) FindByID(ctx context.Context, runID string) (*provenance.Run, error) {
	var model models.RunModel
	if err := r.db.WithContext(ctx).First(&model, "run_id = ?", runID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: find run: %v", provenance.ErrStoreUnavailable, err)
	}
	return model.ToDomain(), nil
}

// Ensure GormRunRepository implements the repository interface
var _ provenance.RunRepository = (*GormRunRepository)(nil)
