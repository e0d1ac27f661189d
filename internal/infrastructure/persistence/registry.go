package persistence

import (
	"github.com/vendorhub/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// AllModels lists every persistence model, in dependency order
func AllModels() []any {
	return []any{
		&models.AccountModel{},
		&models.VendorProfileModel{},
		&models.SupplierProfileModel{},
		&models.ProductModel{},
		&models.InventoryEntryModel{},
		&models.OrderModel{},
		&models.SharedOrderModel{},
		&models.OrderSequenceModel{},
		&models.SupplierAnalyticsModel{},
	}
}

// Repositories bundles the non-transactional repositories built on one connection
type Repositories struct {
	Accounts     *GormAccountRepository
	Vendors      *GormVendorRepository
	Suppliers    *GormSupplierRepository
	Products     *GormProductRepository
	Inventory    *GormInventoryRepository
	Orders       *GormOrderRepository
	SharedOrders *GormSharedOrderRepository
	Snapshots    *GormSnapshotRepository
}

// NewRepositories builds every repository on db
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Accounts:     NewGormAccountRepository(db),
		Vendors:      NewGormVendorRepository(db),
		Suppliers:    NewGormSupplierRepository(db),
		Products:     NewGormProductRepository(db),
		Inventory:    NewGormInventoryRepository(db),
		Orders:       NewGormOrderRepository(db),
		SharedOrders: NewGormSharedOrderRepository(db),
		Snapshots:    NewGormSnapshotRepository(db),
	}
}
