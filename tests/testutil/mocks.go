package testutil

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/vendorhub/backend/internal/domain/analytics"
	"github.com/vendorhub/backend/internal/domain/catalog"
	"github.com/vendorhub/backend/internal/domain/identity"
	"github.com/vendorhub/backend/internal/domain/ledger"
	"github.com/vendorhub/backend/internal/domain/profile"
	"github.com/vendorhub/backend/internal/domain/shared"
)

// MockAccountRepository is a mock implementation of identity.AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByUsername(ctx context.Context, username string) (*identity.Account, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Account), args.Error(1)
}

func (m *MockAccountRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) Create(ctx context.Context, account *identity.Account) error {
	return m.Called(ctx, account).Error(0)
}

func (m *MockAccountRepository) Save(ctx context.Context, account *identity.Account) error {
	return m.Called(ctx, account).Error(0)
}

// MockVendorRepository is a mock implementation of profile.VendorRepository
type MockVendorRepository struct {
	mock.Mock
}

func (m *MockVendorRepository) FindByID(ctx context.Context, id uuid.UUID) (*profile.VendorProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profile.VendorProfile), args.Error(1)
}

func (m *MockVendorRepository) FindByAccountID(ctx context.Context, accountID uuid.UUID) (*profile.VendorProfile, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profile.VendorProfile), args.Error(1)
}

func (m *MockVendorRepository) Create(ctx context.Context, v *profile.VendorProfile) error {
	return m.Called(ctx, v).Error(0)
}

func (m *MockVendorRepository) Save(ctx context.Context, v *profile.VendorProfile) error {
	return m.Called(ctx, v).Error(0)
}

// MockSupplierRepository is a mock implementation of profile.SupplierRepository
type MockSupplierRepository struct {
	mock.Mock
}

func (m *MockSupplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*profile.SupplierProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profile.SupplierProfile), args.Error(1)
}

func (m *MockSupplierRepository) FindByAccountID(ctx context.Context, accountID uuid.UUID) (*profile.SupplierProfile, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profile.SupplierProfile), args.Error(1)
}

func (m *MockSupplierRepository) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockSupplierRepository) Create(ctx context.Context, s *profile.SupplierProfile) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockSupplierRepository) Save(ctx context.Context, s *profile.SupplierProfile) error {
	return m.Called(ctx, s).Error(0)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*catalog.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByExternalID(ctx context.Context, externalID int64) (*catalog.Product, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter catalog.ProductFilter) ([]*catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, product *catalog.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockInventoryRepository is a mock implementation of catalog.InventoryRepository
type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) FindByIDForSupplier(ctx context.Context, supplierID, id uuid.UUID) (*catalog.InventoryEntry, error) {
	args := m.Called(ctx, supplierID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.InventoryEntry), args.Error(1)
}

func (m *MockInventoryRepository) FindBySupplier(ctx context.Context, supplierID uuid.UUID) ([]*catalog.InventoryEntry, error) {
	args := m.Called(ctx, supplierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.InventoryEntry), args.Error(1)
}

func (m *MockInventoryRepository) ExistsForProduct(ctx context.Context, supplierID, productID uuid.UUID) (bool, error) {
	args := m.Called(ctx, supplierID, productID)
	return args.Bool(0), args.Error(1)
}

func (m *MockInventoryRepository) CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInventoryRepository) CountBySupplier(ctx context.Context, supplierID uuid.UUID) (int64, error) {
	args := m.Called(ctx, supplierID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInventoryRepository) CategoryBreakdown(ctx context.Context, supplierID uuid.UUID) ([]catalog.CategoryCount, error) {
	args := m.Called(ctx, supplierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.CategoryCount), args.Error(1)
}

func (m *MockInventoryRepository) Create(ctx context.Context, entry *catalog.InventoryEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockInventoryRepository) SaveWithLock(ctx context.Context, entry *catalog.InventoryEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockInventoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockOrderRepository is a mock implementation of ledger.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByIDForVendor(ctx context.Context, vendorID, id uuid.UUID) (*ledger.Order, error) {
	args := m.Called(ctx, vendorID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByVendor(ctx context.Context, vendorID uuid.UUID) ([]*ledger.Order, error) {
	args := m.Called(ctx, vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledger.Order), args.Error(1)
}

func (m *MockOrderRepository) CreateBatch(ctx context.Context, orders []*ledger.Order) error {
	return m.Called(ctx, orders).Error(0)
}

func (m *MockOrderRepository) SaveWithLock(ctx context.Context, order *ledger.Order) error {
	return m.Called(ctx, order).Error(0)
}

// MockSharedOrderRepository is a mock implementation of ledger.SharedOrderRepository
type MockSharedOrderRepository struct {
	mock.Mock
}

func (m *MockSharedOrderRepository) FindByIDForSupplier(ctx context.Context, supplierID, id uuid.UUID) (*ledger.SharedOrder, error) {
	args := m.Called(ctx, supplierID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.SharedOrder), args.Error(1)
}

func (m *MockSharedOrderRepository) FindBySupplier(ctx context.Context, supplierID uuid.UUID) ([]*ledger.SharedOrder, error) {
	args := m.Called(ctx, supplierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledger.SharedOrder), args.Error(1)
}

func (m *MockSharedOrderRepository) FindBySupplierSince(ctx context.Context, supplierID uuid.UUID, since time.Time) ([]*ledger.SharedOrder, error) {
	args := m.Called(ctx, supplierID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledger.SharedOrder), args.Error(1)
}

func (m *MockSharedOrderRepository) CountBySupplier(ctx context.Context, supplierID uuid.UUID) (int64, error) {
	args := m.Called(ctx, supplierID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSharedOrderRepository) SumAmountBySupplier(ctx context.Context, supplierID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, supplierID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockSharedOrderRepository) Create(ctx context.Context, order *ledger.SharedOrder) error {
	return m.Called(ctx, order).Error(0)
}

func (m *MockSharedOrderRepository) SaveWithLock(ctx context.Context, order *ledger.SharedOrder) error {
	return m.Called(ctx, order).Error(0)
}

// MockSnapshotRepository is a mock implementation of analytics.SnapshotRepository
type MockSnapshotRepository struct {
	mock.Mock
}

func (m *MockSnapshotRepository) FindBySupplier(ctx context.Context, supplierID uuid.UUID) (*analytics.Snapshot, error) {
	args := m.Called(ctx, supplierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*analytics.Snapshot), args.Error(1)
}

func (m *MockSnapshotRepository) Upsert(ctx context.Context, snapshot *analytics.Snapshot) error {
	return m.Called(ctx, snapshot).Error(0)
}

// CountingSequence is an in-memory ledger.OrderNumberSequence
type CountingSequence struct {
	Value int64
}

// Next increments and returns the counter
func (s *CountingSequence) Next(context.Context) (int64, error) {
	s.Value++
	return s.Value, nil
}

// MockEventPublisher is a mock implementation of shared.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

var (
	_ identity.AccountRepository   = (*MockAccountRepository)(nil)
	_ profile.VendorRepository     = (*MockVendorRepository)(nil)
	_ profile.SupplierRepository   = (*MockSupplierRepository)(nil)
	_ catalog.ProductRepository    = (*MockProductRepository)(nil)
	_ catalog.InventoryRepository  = (*MockInventoryRepository)(nil)
	_ ledger.OrderRepository       = (*MockOrderRepository)(nil)
	_ ledger.SharedOrderRepository = (*MockSharedOrderRepository)(nil)
	_ analytics.SnapshotRepository = (*MockSnapshotRepository)(nil)
	_ ledger.OrderNumberSequence   = (*CountingSequence)(nil)
	_ shared.EventPublisher        = (*MockEventPublisher)(nil)
)
