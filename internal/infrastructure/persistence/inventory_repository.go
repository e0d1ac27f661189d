package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/catalog"
	"github.com/vendorhub/backend/internal/domain/shared"
	"github.com/vendorhub/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormInventoryRepository implements InventoryRepository using GORM
type GormInventoryRepository struct {
	db *gorm.DB
}

// NewGormInventoryRepository creates a new GormInventoryRepository
func NewGormInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

// FindByIDForSupplier finds an entry owned by the supplier
func (r *GormInventoryRepository) FindByIDForSupplier(ctx context.Context, supplierID, id uuid.UUID) (*catalog.InventoryEntry, error) {
	var model models.InventoryEntryModel
	if err := r.db.WithContext(ctx).
		Where("id = ? AND supplier_id = ?", id, supplierID).
		First(&model).Error; err != nil {
		return nil, translateError(err, "inventory entry")
	}
	return model.ToDomain(), nil
}

// FindBySupplier lists the supplier's entries, newest first
func (r *GormInventoryRepository) FindBySupplier(ctx context.Context, supplierID uuid.UUID) ([]*catalog.InventoryEntry, error) {
	var rows []models.InventoryEntryModel
	if err := r.db.WithContext(ctx).
		Where("supplier_id = ?", supplierID).
		Order("added_on DESC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	entries := make([]*catalog.InventoryEntry, len(rows))
	for i := range rows {
		entries[i] = rows[i].ToDomain()
	}
	return entries, nil
}

// ExistsForProduct checks whether the supplier already stocks the product
func (r *GormInventoryRepository) ExistsForProduct(ctx context.Context, supplierID, productID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.InventoryEntryModel{}).
		Where("supplier_id = ? AND product_id = ?", supplierID, productID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountByProduct counts entries of any supplier that reference the product
func (r *GormInventoryRepository) CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.InventoryEntryModel{}).
		Where("product_id = ?", productID).
		Count(&count).Error
	return count, err
}

// CountBySupplier counts the supplier's entries
func (r *GormInventoryRepository) CountBySupplier(ctx context.Context, supplierID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.InventoryEntryModel{}).
		Where("supplier_id = ?", supplierID).
		Count(&count).Error
	return count, err
}

// CategoryBreakdown counts the supplier's entries per product category
func (r *GormInventoryRepository) CategoryBreakdown(ctx context.Context, supplierID uuid.UUID) ([]catalog.CategoryCount, error) {
	var rows []catalog.CategoryCount
	if err := r.db.WithContext(ctx).
		Table("supplier_inventory AS si").
		Select("p.category AS category, COUNT(*) AS count").
		Joins("JOIN products p ON p.id = si.product_id").
		Where("si.supplier_id = ?", supplierID).
		Group("p.category").
		Order("count DESC, p.category ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []catalog.CategoryCount{}
	}
	return rows, nil
}

// Create inserts a new entry. A second entry for the same supplier and
// product fails with ErrAlreadyExists.
func (r *GormInventoryRepository) Create(ctx context.Context, entry *catalog.InventoryEntry) error {
	return translateError(r.db.WithContext(ctx).Create(models.InventoryEntryModelFromDomain(entry)).Error, "inventory entry")
}

// SaveWithLock saves with optimistic locking (checks version)
func (r *GormInventoryRepository) SaveWithLock(ctx context.Context, entry *catalog.InventoryEntry) error {
	result := r.db.WithContext(ctx).
		Model(&models.InventoryEntryModel{}).
		Where("id = ? AND version = ?", entry.ID, entry.Version-1).
		Updates(map[string]any{
			"stock_quantity": entry.StockQuantity,
			"custom_price":   entry.CustomPrice,
			"version":        entry.Version,
			"updated_at":     entry.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return conflictError("Inventory item")
	}
	return nil
}

// Delete removes an entry
func (r *GormInventoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.InventoryEntryModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ catalog.InventoryRepository = (*GormInventoryRepository)(nil)
