package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ProductFilter narrows a product listing. An empty CategoryKey lists all.
type ProductFilter struct {
	CategoryKey string
}

// ProductRepository defines persistence operations for products
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*Product, error)
	FindByExternalID(ctx context.Context, externalID int64) (*Product, error)
	FindAll(ctx context.Context, filter ProductFilter) ([]*Product, error)
	Create(ctx context.Context, product *Product) error
	Save(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// InventoryRepository defines persistence operations for inventory entries
type InventoryRepository interface {
	// FindByIDForSupplier returns ErrNotFound both for a missing entry and for
	// an entry owned by another supplier.
	FindByIDForSupplier(ctx context.Context, supplierID, id uuid.UUID) (*InventoryEntry, error)
	FindBySupplier(ctx context.Context, supplierID uuid.UUID) ([]*InventoryEntry, error)
	ExistsForProduct(ctx context.Context, supplierID, productID uuid.UUID) (bool, error)
	CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error)
	CountBySupplier(ctx context.Context, supplierID uuid.UUID) (int64, error)
	// CategoryBreakdown counts the supplier's entries per product category,
	// skipping entries whose product no longer exists.
	CategoryBreakdown(ctx context.Context, supplierID uuid.UUID) ([]CategoryCount, error)
	Create(ctx context.Context, entry *InventoryEntry) error
	// SaveWithLock persists an entry whose version was incremented in memory,
	// failing with ErrConcurrencyConflict if the stored version moved.
	SaveWithLock(ctx context.Context, entry *InventoryEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
}
