package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vendorhub/backend/internal/domain/catalog"
	"github.com/vendorhub/backend/internal/domain/shared"
)

func newProduct(t *testing.T, supplierID uuid.UUID, name, category string, price string) *catalog.Product {
	t.Helper()
	p, err := catalog.NewSupplierProduct(supplierID, catalog.ProductDetails{
		Name:     name,
		Category: category,
		Price:    decimal.RequireFromString(price),
	})
	require.NoError(t, err)
	return p
}

func TestGormProductRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()
	supplierID := uuid.New()

	bolt := newProduct(t, supplierID, "Bolt", "Hardware", "10.50")
	drill := newProduct(t, supplierID, "Drill", "Tools", "99")
	nut := newProduct(t, supplierID, "Nut", "HARDWARE", "1")
	for _, p := range []*catalog.Product{bolt, drill, nut} {
		require.NoError(t, repo.Create(ctx, p))
	}

	t.Run("category filter ignores case", func(t *testing.T) {
		got, err := repo.FindAll(ctx, catalog.ProductFilter{CategoryKey: catalog.CategoryKey("hardware")})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.ElementsMatch(t, []uuid.UUID{bolt.ID, nut.ID}, []uuid.UUID{got[0].ID, got[1].ID})
	})

	t.Run("no filter lists all", func(t *testing.T) {
		got, err := repo.FindAll(ctx, catalog.ProductFilter{})
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("find by ids skips missing", func(t *testing.T) {
		got, err := repo.FindByIDs(ctx, []uuid.UUID{drill.ID, uuid.New()})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.True(t, decimal.NewFromInt(99).Equal(got[0].Price))
	})

	t.Run("feed product by external id", func(t *testing.T) {
		feed, err := catalog.NewFeedProduct(77, catalog.ProductDetails{Name: "Saw", Category: "Tools", Price: decimal.NewFromInt(20)})
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, feed))

		got, err := repo.FindByExternalID(ctx, 77)
		require.NoError(t, err)
		assert.Equal(t, catalog.ProductOriginFeed, got.Origin)

		_, err = repo.FindByExternalID(ctx, 78)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		require.NoError(t, got.ApplyFeed(catalog.ProductDetails{Name: "Hand Saw", Category: "Tools", Price: decimal.NewFromInt(25)}))
		require.NoError(t, repo.Save(ctx, got))
		again, err := repo.FindByID(ctx, feed.ID)
		require.NoError(t, err)
		assert.Equal(t, "Hand Saw", again.Name)
		assert.Equal(t, 2, again.Version)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, drill.ID))
		assert.ErrorIs(t, repo.Delete(ctx, drill.ID), shared.ErrNotFound)
	})
}

func TestGormInventoryRepository(t *testing.T) {
	db := newTestDB(t)
	products := NewGormProductRepository(db)
	repo := NewGormInventoryRepository(db)
	ctx := context.Background()

	supplierID, otherSupplier := uuid.New(), uuid.New()
	bolt := newProduct(t, supplierID, "Bolt", "Hardware", "10")
	nut := newProduct(t, supplierID, "Nut", "Hardware", "1")
	drill := newProduct(t, supplierID, "Drill", "Tools", "99")
	for _, p := range []*catalog.Product{bolt, nut, drill} {
		require.NoError(t, products.Create(ctx, p))
	}

	entries := make(map[string]*catalog.InventoryEntry)
	for name, p := range map[string]*catalog.Product{"bolt": bolt, "nut": nut, "drill": drill} {
		e, err := catalog.NewInventoryEntry(supplierID, p.ID, 5, nil)
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, e))
		entries[name] = e
	}
	shared2, err := catalog.NewInventoryEntry(otherSupplier, bolt.ID, 1, nil)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, shared2))

	t.Run("one entry per supplier and product", func(t *testing.T) {
		dup, err := catalog.NewInventoryEntry(supplierID, bolt.ID, 1, nil)
		require.NoError(t, err)
		assert.ErrorIs(t, repo.Create(ctx, dup), shared.ErrAlreadyExists)

		exists, err := repo.ExistsForProduct(ctx, supplierID, bolt.ID)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("ownership", func(t *testing.T) {
		_, err := repo.FindByIDForSupplier(ctx, otherSupplier, entries["bolt"].ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		got, err := repo.FindByIDForSupplier(ctx, supplierID, entries["bolt"].ID)
		require.NoError(t, err)
		assert.Equal(t, bolt.ID, got.ProductID)
	})

	t.Run("counts", func(t *testing.T) {
		n, err := repo.CountByProduct(ctx, bolt.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		n, err = repo.CountBySupplier(ctx, supplierID)
		require.NoError(t, err)
		assert.Equal(t, int64(3), n)

		list, err := repo.FindBySupplier(ctx, supplierID)
		require.NoError(t, err)
		assert.Len(t, list, 3)
	})

	t.Run("category breakdown", func(t *testing.T) {
		got, err := repo.CategoryBreakdown(ctx, supplierID)
		require.NoError(t, err)
		assert.Equal(t, []catalog.CategoryCount{
			{Category: "Hardware", Count: 2},
			{Category: "Tools", Count: 1},
		}, got)

		empty, err := repo.CategoryBreakdown(ctx, uuid.New())
		require.NoError(t, err)
		assert.NotNil(t, empty)
		assert.Empty(t, empty)
	})

	t.Run("save with lock", func(t *testing.T) {
		entry, err := repo.FindByIDForSupplier(ctx, supplierID, entries["nut"].ID)
		require.NoError(t, err)
		stale, err := repo.FindByIDForSupplier(ctx, supplierID, entries["nut"].ID)
		require.NoError(t, err)

		stock := 0
		price := decimal.RequireFromString("0.5")
		require.NoError(t, entry.Apply(catalog.InventoryUpdate{Stock: &stock, Price: &price}))
		require.NoError(t, repo.SaveWithLock(ctx, entry))

		got, err := repo.FindByIDForSupplier(ctx, supplierID, entry.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, got.StockQuantity)
		require.NotNil(t, got.CustomPrice)
		assert.True(t, price.Equal(*got.CustomPrice))

		other := 9
		require.NoError(t, stale.Apply(catalog.InventoryUpdate{Stock: &other}))
		assert.ErrorIs(t, repo.SaveWithLock(ctx, stale), shared.ErrConcurrencyConflict)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, entries["drill"].ID))
		assert.ErrorIs(t, repo.Delete(ctx, entries["drill"].ID), shared.ErrNotFound)
	})
}

func TestGormInventoryRepository_SaveWithLockConflict(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormInventoryRepository(db)

	entry, err := catalog.NewInventoryEntry(uuid.New(), uuid.New(), 1, nil)
	require.NoError(t, err)
	entry.IncrementVersion()

	mock.ExpectExec(`UPDATE "supplier_inventory" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.SaveWithLock(context.Background(), entry)
	assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}
