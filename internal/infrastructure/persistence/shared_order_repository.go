package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vendorhub/backend/internal/domain/ledger"
	"github.com/vendorhub/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSharedOrderRepository implements SharedOrderRepository using GORM
type GormSharedOrderRepository struct {
	db *gorm.DB
}

// NewGormSharedOrderRepository creates a new GormSharedOrderRepository
func NewGormSharedOrderRepository(db *gorm.DB) *GormSharedOrderRepository {
	return &GormSharedOrderRepository{db: db}
}

// FindByIDForSupplier finds a shared order addressed to the supplier
func (r *GormSharedOrderRepository) FindByIDForSupplier(ctx context.Context, supplierID, id uuid.UUID) (*ledger.SharedOrder, error) {
	var model models.SharedOrderModel
	if err := r.db.WithContext(ctx).
		Where("id = ? AND supplier_id = ?", id, supplierID).
		First(&model).Error; err != nil {
		return nil, translateError(err, "shared order")
	}
	return model.ToDomain(), nil
}

// FindBySupplier lists the supplier's shared orders, newest first
func (r *GormSharedOrderRepository) FindBySupplier(ctx context.Context, supplierID uuid.UUID) ([]*ledger.SharedOrder, error) {
	return r.find(r.db.WithContext(ctx).
		Where("supplier_id = ?", supplierID).
		Order("date DESC, id ASC"))
}

// FindBySupplierSince lists shared orders dated at or after since, oldest first
func (r *GormSharedOrderRepository) FindBySupplierSince(ctx context.Context, supplierID uuid.UUID, since time.Time) ([]*ledger.SharedOrder, error) {
	return r.find(r.db.WithContext(ctx).
		Where("supplier_id = ? AND date >= ?", supplierID, since).
		Order("date ASC, id ASC"))
}

func (r *GormSharedOrderRepository) find(query *gorm.DB) ([]*ledger.SharedOrder, error) {
	var rows []models.SharedOrderModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	orders := make([]*ledger.SharedOrder, len(rows))
	for i := range rows {
		orders[i] = rows[i].ToDomain()
	}
	return orders, nil
}

// CountBySupplier counts the supplier's shared orders
func (r *GormSharedOrderRepository) CountBySupplier(ctx context.Context, supplierID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.SharedOrderModel{}).
		Where("supplier_id = ?", supplierID).
		Count(&count).Error
	return count, err
}

// SumAmountBySupplier totals the supplier's shared order amounts, zero when
// none. The amounts are added in Go: SUM on sqlite yields a float.
func (r *GormSharedOrderRepository) SumAmountBySupplier(ctx context.Context, supplierID uuid.UUID) (decimal.Decimal, error) {
	var amounts []decimal.Decimal
	if err := r.db.WithContext(ctx).
		Model(&models.SharedOrderModel{}).
		Where("supplier_id = ?", supplierID).
		Pluck("amount", &amounts).Error; err != nil {
		return decimal.Zero, err
	}
	return decimal.Sum(decimal.Zero, amounts...), nil
}

// Create inserts a new shared order
func (r *GormSharedOrderRepository) Create(ctx context.Context, order *ledger.SharedOrder) error {
	var model models.SharedOrderModel
	model.FromDomain(order)
	return translateError(r.db.WithContext(ctx).Create(&model).Error, "shared order")
}

// SaveWithLock saves with optimistic locking (checks version)
func (r *GormSharedOrderRepository) SaveWithLock(ctx context.Context, order *ledger.SharedOrder) error {
	result := r.db.WithContext(ctx).
		Model(&models.SharedOrderModel{}).
		Where("id = ? AND version = ?", order.ID, order.Version-1).
		Updates(map[string]any{
			"progress":   order.Progress,
			"version":    order.Version,
			"updated_at": order.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return conflictError("Shared order")
	}
	return nil
}

var _ ledger.SharedOrderRepository = (*GormSharedOrderRepository)(nil)
