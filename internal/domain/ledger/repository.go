package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderRepository defines persistence operations for vendor orders
type OrderRepository interface {
	FindByIDForVendor(ctx context.Context, vendorID, id uuid.UUID) (*Order, error)
	// FindByVendor returns the vendor's orders, newest first
	FindByVendor(ctx context.Context, vendorID uuid.UUID) ([]*Order, error)
	CreateBatch(ctx context.Context, orders []*Order) error
	SaveWithLock(ctx context.Context, order *Order) error
}

// SharedOrderRepository defines persistence operations for shared orders
type SharedOrderRepository interface {
	FindByIDForSupplier(ctx context.Context, supplierID, id uuid.UUID) (*SharedOrder, error)
	// FindBySupplier returns the supplier's shared orders, newest first
	FindBySupplier(ctx context.Context, supplierID uuid.UUID) ([]*SharedOrder, error)
	// FindBySupplierSince returns shared orders dated at or after since, oldest first
	FindBySupplierSince(ctx context.Context, supplierID uuid.UUID, since time.Time) ([]*SharedOrder, error)
	CountBySupplier(ctx context.Context, supplierID uuid.UUID) (int64, error)
	SumAmountBySupplier(ctx context.Context, supplierID uuid.UUID) (decimal.Decimal, error)
	Create(ctx context.Context, order *SharedOrder) error
	SaveWithLock(ctx context.Context, order *SharedOrder) error
}
