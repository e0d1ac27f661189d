package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/ledger"
	"github.com/vendorhub/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByIDForVendor finds an order placed by the vendor
func (r *GormOrderRepository) FindByIDForVendor(ctx context.Context, vendorID, id uuid.UUID) (*ledger.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Where("id = ? AND vendor_id = ?", id, vendorID).
		First(&model).Error; err != nil {
		return nil, translateError(err, "order")
	}
	return model.ToDomain(), nil
}

// FindByVendor lists the vendor's orders, newest first
func (r *GormOrderRepository) FindByVendor(ctx context.Context, vendorID uuid.UUID) ([]*ledger.Order, error) {
	var rows []models.OrderModel
	if err := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("date DESC, order_number DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	orders := make([]*ledger.Order, len(rows))
	for i := range rows {
		orders[i] = rows[i].ToDomain()
	}
	return orders, nil
}

// CreateBatch inserts all orders in one statement
func (r *GormOrderRepository) CreateBatch(ctx context.Context, orders []*ledger.Order) error {
	if len(orders) == 0 {
		return nil
	}
	rows := make([]*models.OrderModel, len(orders))
	for i, o := range orders {
		rows[i] = models.OrderModelFromDomain(o)
	}
	return translateError(r.db.WithContext(ctx).Create(&rows).Error, "order number")
}

// HighestSequence returns the numeric part of the highest stored order
// number, or 0 when there are no orders.
func (r *GormOrderRepository) HighestSequence(ctx context.Context) (int64, error) {
	var number string
	err := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Select("order_number").
		Order("LENGTH(order_number) DESC, order_number DESC").
		Limit(1).
		Scan(&number).Error
	if err != nil || number == "" {
		return 0, err
	}
	return ledger.ParseOrderNumber(number)
}

// SaveWithLock saves with optimistic locking (checks version)
func (r *GormOrderRepository) SaveWithLock(ctx context.Context, order *ledger.Order) error {
	result := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
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
		return conflictError("Order")
	}
	return nil
}

var _ ledger.OrderRepository = (*GormOrderRepository)(nil)
