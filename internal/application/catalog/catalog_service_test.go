package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vendorhub/backend/internal/application/txn"
	"github.com/vendorhub/backend/internal/domain/catalog"
	"github.com/vendorhub/backend/internal/domain/profile"
	"github.com/vendorhub/backend/internal/domain/shared"
	"github.com/vendorhub/backend/tests/testutil"
)

type catalogFixture struct {
	products  *testutil.MockProductRepository
	inventory *testutil.MockInventoryRepository
	suppliers *testutil.MockSupplierRepository
	publisher *testutil.MockEventPublisher
	svc       *CatalogService
}

func newCatalogFixture() *catalogFixture {
	f := &catalogFixture{
		products:  new(testutil.MockProductRepository),
		inventory: new(testutil.MockInventoryRepository),
		suppliers: new(testutil.MockSupplierRepository),
		publisher: new(testutil.MockEventPublisher),
	}
	scope := txn.NewNoOpTransactionScope(txn.Repositories{
		Products:  f.products,
		Inventory: f.inventory,
		Suppliers: f.suppliers,
	})
	f.svc = NewCatalogService(scope, f.products, f.inventory, f.suppliers, zap.NewNop())
	f.svc.SetEventPublisher(f.publisher)
	return f
}

func eventOfType(eventType string) interface{} {
	return mock.MatchedBy(func(events []shared.DomainEvent) bool {
		return len(events) == 1 && events[0].EventType() == eventType
	})
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func intPtr(i int) *int { return &i }

func newSupplier(t *testing.T) *profile.SupplierProfile {
	t.Helper()
	s, err := profile.NewSupplierProfile(uuid.New(), profile.SupplierDetails{OrganizationName: "Bolt Works"})
	require.NoError(t, err)
	return s
}

func TestCatalogService_AddProduct(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()
	supplier := newSupplier(t)

	f.suppliers.On("FindByID", mock.Anything, supplier.ID).Return(supplier, nil)
	f.products.On("Create", mock.Anything, mock.MatchedBy(func(p *catalog.Product) bool {
		return p.Name == "Widget" && p.SupplierName == "Bolt Works" && p.Origin == catalog.ProductOriginSupplier
	})).Return(nil)
	f.inventory.On("Create", mock.Anything, mock.MatchedBy(func(e *catalog.InventoryEntry) bool {
		return e.SupplierID == supplier.ID && e.StockQuantity == 20 && e.CustomPrice == nil
	})).Return(nil)
	f.publisher.On("Publish", mock.Anything, eventOfType(catalog.EventTypeProductAdded)).Return(nil)

	item, err := f.svc.AddProduct(ctx, supplier.ID, AddProductRequest{
		Name:          "Widget",
		Category:      "Hardware",
		Price:         decPtr("5"),
		StockQuantity: intPtr(20),
	})
	require.NoError(t, err)

	assert.Equal(t, "Widget", item.ProductName)
	assert.Equal(t, 20, item.StockQuantity)
	assert.True(t, decimal.NewFromInt(5).Equal(item.Price))
	assert.Equal(t, catalog.DefaultProductImage, item.Image)
	f.products.AssertExpectations(t)
	f.inventory.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}

func TestCatalogService_AddProduct_RequiredFields(t *testing.T) {
	supplierID := uuid.New()
	tests := []struct {
		name string
		req  AddProductRequest
	}{
		{"missing price", AddProductRequest{Name: "Widget", Category: "Hardware", StockQuantity: intPtr(1)}},
		{"missing stock", AddProductRequest{Name: "Widget", Category: "Hardware", Price: decPtr("1")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCatalogFixture()
			_, err := f.svc.AddProduct(context.Background(), supplierID, tt.req)
			assert.True(t, errors.Is(err, shared.ErrValidation))
			f.suppliers.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
		})
	}

	t.Run("empty name", func(t *testing.T) {
		f := newCatalogFixture()
		ctx := context.Background()
		supplier := newSupplier(t)
		f.suppliers.On("FindByID", mock.Anything, supplier.ID).Return(supplier, nil)

		_, err := f.svc.AddProduct(ctx, supplier.ID, AddProductRequest{Category: "Hardware", Price: decPtr("1"), StockQuantity: intPtr(1)})
		assert.True(t, errors.Is(err, shared.ErrValidation))
		f.products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestCatalogService_AttachProduct(t *testing.T) {
	ctx := context.Background()
	supplierID := uuid.New()
	product, err := catalog.NewFeedProduct(7, catalog.ProductDetails{Name: "Nut", Category: "Hardware", Price: decimal.NewFromInt(2)})
	require.NoError(t, err)

	t.Run("stocks an existing product", func(t *testing.T) {
		f := newCatalogFixture()
		f.products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		f.inventory.On("ExistsForProduct", mock.Anything, supplierID, product.ID).Return(false, nil)
		f.inventory.On("Create", mock.Anything, mock.Anything).Return(nil)
		f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

		item, err := f.svc.AttachProduct(ctx, supplierID, AttachProductRequest{ProductID: product.ID, StockQuantity: 4, CustomPrice: decPtr("1.5")})
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("1.5").Equal(item.Price))
		assert.True(t, decimal.NewFromInt(2).Equal(item.BasePrice))
	})

	t.Run("already stocked", func(t *testing.T) {
		f := newCatalogFixture()
		f.products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		f.inventory.On("ExistsForProduct", mock.Anything, supplierID, product.ID).Return(true, nil)

		_, err := f.svc.AttachProduct(ctx, supplierID, AttachProductRequest{ProductID: product.ID})
		assert.True(t, errors.Is(err, shared.ErrValidation))
	})

	t.Run("unknown product", func(t *testing.T) {
		f := newCatalogFixture()
		missing := uuid.New()
		f.products.On("FindByID", mock.Anything, missing).Return(nil, shared.ErrNotFound)

		_, err := f.svc.AttachProduct(ctx, supplierID, AttachProductRequest{ProductID: missing})
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})
}

func TestCatalogService_UpdateInventory(t *testing.T) {
	ctx := context.Background()
	supplierID := uuid.New()
	product, err := catalog.NewSupplierProduct(supplierID, catalog.ProductDetails{Name: "Widget", Category: "Hardware", Price: decimal.NewFromInt(5)})
	require.NoError(t, err)

	newEntry := func() *catalog.InventoryEntry {
		e, err := catalog.NewInventoryEntry(supplierID, product.ID, 10, decPtr("9"))
		require.NoError(t, err)
		return e
	}

	t.Run("stock only keeps price", func(t *testing.T) {
		f := newCatalogFixture()
		entry := newEntry()
		f.inventory.On("FindByIDForSupplier", mock.Anything, supplierID, entry.ID).Return(entry, nil)
		f.inventory.On("SaveWithLock", mock.Anything, entry).Return(nil)
		f.products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		f.publisher.On("Publish", mock.Anything, eventOfType(catalog.EventTypeInventoryUpdated)).Return(nil)

		item, err := f.svc.UpdateInventory(ctx, supplierID, entry.ID, UpdateInventoryRequest{StockQuantity: intPtr(3)})
		require.NoError(t, err)
		assert.Equal(t, 3, item.StockQuantity)
		assert.True(t, decimal.NewFromInt(9).Equal(item.Price))
		assert.Equal(t, 2, item.Version)
		assert.Empty(t, entry.GetDomainEvents())
	})

	t.Run("explicit zero price is applied", func(t *testing.T) {
		f := newCatalogFixture()
		entry := newEntry()
		f.inventory.On("FindByIDForSupplier", mock.Anything, supplierID, entry.ID).Return(entry, nil)
		f.inventory.On("SaveWithLock", mock.Anything, entry).Return(nil)
		f.products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

		item, err := f.svc.UpdateInventory(ctx, supplierID, entry.ID, UpdateInventoryRequest{Price: decPtr("0")})
		require.NoError(t, err)
		assert.True(t, item.Price.IsZero())
		assert.Equal(t, 10, item.StockQuantity)
	})

	t.Run("empty update does not save", func(t *testing.T) {
		f := newCatalogFixture()
		entry := newEntry()
		f.inventory.On("FindByIDForSupplier", mock.Anything, supplierID, entry.ID).Return(entry, nil)
		f.products.On("FindByID", mock.Anything, product.ID).Return(product, nil)

		_, err := f.svc.UpdateInventory(ctx, supplierID, entry.ID, UpdateInventoryRequest{})
		require.NoError(t, err)
		f.inventory.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
		f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("foreign entry is not found", func(t *testing.T) {
		f := newCatalogFixture()
		itemID := uuid.New()
		f.inventory.On("FindByIDForSupplier", mock.Anything, supplierID, itemID).Return(nil, shared.ErrNotFound)

		_, err := f.svc.UpdateInventory(ctx, supplierID, itemID, UpdateInventoryRequest{StockQuantity: intPtr(1)})
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrNotFound))
		assert.Equal(t, "Item not found or unauthorized.", err.Error())
	})

	t.Run("stale version is a conflict", func(t *testing.T) {
		f := newCatalogFixture()
		entry := newEntry()
		f.inventory.On("FindByIDForSupplier", mock.Anything, supplierID, entry.ID).Return(entry, nil)
		f.inventory.On("SaveWithLock", mock.Anything, entry).Return(shared.ErrConcurrencyConflict)

		_, err := f.svc.UpdateInventory(ctx, supplierID, entry.ID, UpdateInventoryRequest{StockQuantity: intPtr(1)})
		assert.True(t, errors.Is(err, shared.ErrConcurrencyConflict))
		f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("negative stock", func(t *testing.T) {
		f := newCatalogFixture()
		entry := newEntry()
		f.inventory.On("FindByIDForSupplier", mock.Anything, supplierID, entry.ID).Return(entry, nil)

		_, err := f.svc.UpdateInventory(ctx, supplierID, entry.ID, UpdateInventoryRequest{StockQuantity: intPtr(-1)})
		assert.True(t, errors.Is(err, shared.ErrValidation))
	})
}

func TestCatalogService_DeleteInventory(t *testing.T) {
	ctx := context.Background()
	supplierID := uuid.New()

	setup := func(t *testing.T, product *catalog.Product) (*catalogFixture, *catalog.InventoryEntry) {
		f := newCatalogFixture()
		entry, err := catalog.NewInventoryEntry(supplierID, product.ID, 5, nil)
		require.NoError(t, err)
		f.inventory.On("FindByIDForSupplier", mock.Anything, supplierID, entry.ID).Return(entry, nil)
		f.inventory.On("Delete", mock.Anything, entry.ID).Return(nil)
		f.products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		f.publisher.On("Publish", mock.Anything, eventOfType(catalog.EventTypeInventoryRemoved)).Return(nil)
		return f, entry
	}

	t.Run("last reference deletes supplier product", func(t *testing.T) {
		product, _ := catalog.NewSupplierProduct(supplierID, catalog.ProductDetails{Name: "Widget", Category: "Hardware"})
		f, entry := setup(t, product)
		f.inventory.On("CountByProduct", mock.Anything, product.ID).Return(int64(0), nil)
		f.products.On("Delete", mock.Anything, product.ID).Return(nil)

		res, err := f.svc.DeleteInventory(ctx, supplierID, entry.ID)
		require.NoError(t, err)
		assert.True(t, res.ProductDeleted)
		f.products.AssertExpectations(t)
	})

	t.Run("product stocked elsewhere survives", func(t *testing.T) {
		product, _ := catalog.NewSupplierProduct(supplierID, catalog.ProductDetails{Name: "Widget", Category: "Hardware"})
		f, entry := setup(t, product)
		f.inventory.On("CountByProduct", mock.Anything, product.ID).Return(int64(2), nil)

		res, err := f.svc.DeleteInventory(ctx, supplierID, entry.ID)
		require.NoError(t, err)
		assert.False(t, res.ProductDeleted)
		f.products.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("feed product survives", func(t *testing.T) {
		product, _ := catalog.NewFeedProduct(1, catalog.ProductDetails{Name: "Nut", Category: "Hardware"})
		f, entry := setup(t, product)

		res, err := f.svc.DeleteInventory(ctx, supplierID, entry.ID)
		require.NoError(t, err)
		assert.False(t, res.ProductDeleted)
		f.inventory.AssertNotCalled(t, "CountByProduct", mock.Anything, mock.Anything)
	})

	t.Run("foreign entry mutates nothing", func(t *testing.T) {
		f := newCatalogFixture()
		itemID := uuid.New()
		f.inventory.On("FindByIDForSupplier", mock.Anything, supplierID, itemID).Return(nil, shared.ErrNotFound)

		_, err := f.svc.DeleteInventory(ctx, supplierID, itemID)
		assert.True(t, errors.Is(err, shared.ErrNotFound))
		f.inventory.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
		f.products.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
		f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})
}

func TestCatalogService_ListInventory(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()
	supplierID := uuid.New()

	widget, _ := catalog.NewSupplierProduct(supplierID, catalog.ProductDetails{Name: "Widget", Category: "Hardware", Price: decimal.NewFromInt(5)})
	e1, _ := catalog.NewInventoryEntry(supplierID, widget.ID, 20, nil)
	orphan, _ := catalog.NewInventoryEntry(supplierID, uuid.New(), 1, nil)

	f.inventory.On("FindBySupplier", mock.Anything, supplierID).Return([]*catalog.InventoryEntry{e1, orphan}, nil)
	f.products.On("FindByIDs", mock.Anything, []uuid.UUID{widget.ID, orphan.ProductID}).Return([]*catalog.Product{widget}, nil)

	items, err := f.svc.ListInventory(ctx, supplierID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Widget", items[0].ProductName)
	assert.True(t, decimal.NewFromInt(5).Equal(items[0].Price))
}

func TestCatalogService_ListInventory_Empty(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()
	supplierID := uuid.New()
	f.inventory.On("FindBySupplier", mock.Anything, supplierID).Return([]*catalog.InventoryEntry{}, nil)

	items, err := f.svc.ListInventory(ctx, supplierID)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestCatalogService_ListProducts(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()

	f.products.On("FindAll", mock.Anything, catalog.ProductFilter{CategoryKey: "hardware"}).Return([]*catalog.Product{}, nil)
	f.products.On("FindAll", mock.Anything, catalog.ProductFilter{}).Return([]*catalog.Product{}, nil)

	_, err := f.svc.ListProducts(ctx, "HARDWARE")
	require.NoError(t, err)
	_, err = f.svc.ListProducts(ctx, "")
	require.NoError(t, err)
	f.products.AssertExpectations(t)
}
