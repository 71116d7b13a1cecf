package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/erp/exporter/internal/domain/provenance"
	"github.com/erp/exporter/internal/infrastructure/persistence/models"
)

// GormRawPayloadRepository implements provenance.RawPayloadRepository using GORM
type GormRawPayloadRepository struct {
	db *gorm.DB
}

// NewGormRawPayloadRepository creates a new GormRawPayloadRepository
func NewGormRawPayloadRepository(db *gorm.DB) *GormRawPayloadRepository {
	return &GormRawPayloadRepository{db: db}
}

// Insert appends one immutable raw payload row.
func (r *GormRawPayloadRepository) Insert(ctx context.Context, payload *provenance.RawPayload) error {
	var model models.RawPayloadModel
	model.FromDomain(payload)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("%w: insert raw payload: %v", provenance.ErrStoreUnavailable, err)
	}
	payload.PayloadID = model.PayloadID
	return nil
}

// FindByRunID returns all payloads captured under a run, oldest first.
// Used by audit/replay tooling, not by the extraction path.
func (r *GormRawPayloadRepository) FindByRunID(ctx context.Context, runID string) ([]provenance.RawPayload, error) {
	var rows []models.RawPayloadModel
	err := r.db.WithContext(ctx).
		Where("run_id = ?", runID).
		Order("payload_id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("%w: find raw payloads: %v", provenance.ErrStoreUnavailable, err)
	}

	payloads := make([]provenance.RawPayload, len(rows))
	for i, row := range rows {
		payloads[i] = *row.ToDomain()
	}
	return payloads, nil
}

// Ensure GormRawPayloadRepository implements the repository interface
var _ provenance.RawPayloadRepository = (*GormRawPayloadRepository)(nil)
