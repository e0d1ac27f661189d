package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/analytics"
	"github.com/vendorhub/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSnapshotRepository stores the analytics cache, one row per supplier
type GormSnapshotRepository struct {
	db *gorm.DB
}

// NewGormSnapshotRepository creates a new GormSnapshotRepository
func NewGormSnapshotRepository(db *gorm.DB) *GormSnapshotRepository {
	return &GormSnapshotRepository{db: db}
}

// FindBySupplier returns the cached snapshot
func (r *GormSnapshotRepository) FindBySupplier(ctx context.Context, supplierID uuid.UUID) (*analytics.Snapshot, error) {
	var model models.SupplierAnalyticsModel
	if err := r.db.WithContext(ctx).First(&model, "supplier_id = ?", supplierID).Error; err != nil {
		return nil, translateError(err, "snapshot")
	}
	return model.ToDomain(), nil
}

// Upsert replaces the supplier's cached snapshot
func (r *GormSnapshotRepository) Upsert(ctx context.Context, snapshot *analytics.Snapshot) error {
	var model models.SupplierAnalyticsModel
	model.FromDomain(snapshot)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "supplier_id"}},
			UpdateAll: true,
		}).
		Create(&model).Error
}

var _ analytics.SnapshotRepository = (*GormSnapshotRepository)(nil)
