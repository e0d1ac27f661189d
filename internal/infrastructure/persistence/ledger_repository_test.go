package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vendorhub/backend/internal/application/txn"
	"github.com/vendorhub/backend/internal/domain/analytics"
	"github.com/vendorhub/backend/internal/domain/catalog"
	"github.com/vendorhub/backend/internal/domain/ledger"
	"github.com/vendorhub/backend/internal/domain/shared"
)

func TestGormOrderRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()
	vendorID := uuid.New()

	base := time.Date(2024, time.May, 1, 10, 0, 0, 0, time.UTC)
	var orders []*ledger.Order
	for i := 1; i <= 3; i++ {
		o, err := ledger.NewOrder(ledger.FormatOrderNumber(int64(i)), vendorID, "Acme",
			ledger.LineItem{Name: "Bolt", Price: decimal.NewFromInt(10), Quantity: i})
		require.NoError(t, err)
		o.Date = base.Add(time.Duration(i) * time.Hour)
		orders = append(orders, o)
	}
	require.NoError(t, repo.CreateBatch(ctx, orders))

	got, err := repo.FindByVendor(ctx, vendorID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "ORD003", got[0].OrderNumber)
	assert.Equal(t, "ORD001", got[2].OrderNumber)
	assert.True(t, decimal.NewFromInt(30).Equal(got[0].Amount))

	t.Run("highest sequence", func(t *testing.T) {
		n, err := repo.HighestSequence(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(3), n)

		empty, err := NewGormOrderRepository(newTestDB(t)).HighestSequence(ctx)
		require.NoError(t, err)
		assert.Zero(t, empty)
	})

	t.Run("order numbers are unique", func(t *testing.T) {
		dup, err := ledger.NewOrder("ORD001", vendorID, "Acme", ledger.LineItem{Name: "Nut", Price: decimal.NewFromInt(1), Quantity: 1})
		require.NoError(t, err)
		assert.ErrorIs(t, repo.CreateBatch(ctx, []*ledger.Order{dup}), shared.ErrAlreadyExists)
	})

	t.Run("advance with lock", func(t *testing.T) {
		o, err := repo.FindByIDForVendor(ctx, vendorID, orders[0].ID)
		require.NoError(t, err)
		require.NoError(t, o.Advance())
		require.NoError(t, repo.SaveWithLock(ctx, o))

		again, err := repo.FindByIDForVendor(ctx, vendorID, o.ID)
		require.NoError(t, err)
		assert.Equal(t, ledger.ProgressProcessing, again.Progress)

		_, err = repo.FindByIDForVendor(ctx, uuid.New(), o.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormSharedOrderRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormSharedOrderRepository(db)
	ctx := context.Background()
	supplierID, vendorID := uuid.New(), uuid.New()

	total, err := repo.SumAmountBySupplier(ctx, supplierID)
	require.NoError(t, err)
	assert.True(t, total.IsZero())

	jan, err := ledger.NewSharedOrder(supplierID, vendorID, "ORD001", "Bolt", 1, decimal.RequireFromString("10.25"))
	require.NoError(t, err)
	jan.Date = time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)
	mar, err := ledger.NewSharedOrder(supplierID, vendorID, "ORD002", "Nut", 3, decimal.NewFromInt(30))
	require.NoError(t, err)
	mar.Date = time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, jan))
	require.NoError(t, repo.Create(ctx, mar))

	count, err := repo.CountBySupplier(ctx, supplierID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	total, err = repo.SumAmountBySupplier(ctx, supplierID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("40.25").Equal(total), total.String())

	list, err := repo.FindBySupplier(ctx, supplierID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "ORD002", list[0].OrderNumber)

	since, err := repo.FindBySupplierSince(ctx, supplierID, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, since, 1)
	assert.Equal(t, "Nut", since[0].ItemName)

	require.NoError(t, list[0].Advance())
	require.NoError(t, repo.SaveWithLock(ctx, list[0]))
	got, err := repo.FindByIDForSupplier(ctx, supplierID, mar.ID)
	require.NoError(t, err)
	assert.Equal(t, ledger.ProgressProcessing, got.Progress)
}

func TestGormSharedOrderRepository_SumAmountIsExact(t *testing.T) {
	repo := NewGormSharedOrderRepository(newTestDB(t))
	ctx := context.Background()
	supplierID, vendorID := uuid.New(), uuid.New()

	for i, amount := range []string{"0.10", "0.20", "0.01"} {
		o, err := ledger.NewSharedOrder(supplierID, vendorID, ledger.FormatOrderNumber(int64(i+1)), "Washer", 1, decimal.RequireFromString(amount))
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, o))
	}

	total, err := repo.SumAmountBySupplier(ctx, supplierID)
	require.NoError(t, err)
	assert.Equal(t, "0.31", total.String())
}

func TestGormSnapshotRepository_Upsert(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormSnapshotRepository(db)
	ctx := context.Background()
	supplierID := uuid.New()

	_, err := repo.FindBySupplier(ctx, supplierID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	snap := &analytics.Snapshot{
		SupplierID:        supplierID,
		NewOrders:         1,
		Revenue:           decimal.NewFromInt(5),
		CategoryBreakdown: []catalog.CategoryCount{{Category: "Tools", Count: 1}},
		RevenueChart:      analytics.RevenueSeries{Labels: []string{"Jan"}, Data: []decimal.Decimal{decimal.NewFromInt(5)}},
		ComputedAt:        time.Now().UTC(),
	}
	require.NoError(t, repo.Upsert(ctx, snap))

	snap.NewOrders = 4
	snap.CategoryBreakdown = nil
	require.NoError(t, repo.Upsert(ctx, snap))

	got, err := repo.FindBySupplier(ctx, supplierID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), got.NewOrders)
	assert.Empty(t, got.CategoryBreakdown)
	assert.Equal(t, []string{"Jan"}, got.RevenueChart.Labels)
	require.Len(t, got.RevenueChart.Data, 1)
	assert.True(t, decimal.NewFromInt(5).Equal(got.RevenueChart.Data[0]))
}

func TestGormOrderSequence(t *testing.T) {
	db := newTestDB(t)
	seq := NewGormOrderSequence(db, DefaultOrderSequence)
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		got, err := seq.Next(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	require.NoError(t, seq.Seed(ctx, 41))
	got, err := seq.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(42), got)

	require.NoError(t, seq.Seed(ctx, 10))
	got, err = seq.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(43), got)

	other := NewGormOrderSequence(db, "other")
	got, err = other.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got)
}

func TestGormOrderSequence_SeedFromOrders(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	orders := NewGormOrderRepository(db)

	// orders numbered by another backend while the counter row stayed at zero
	var existing []*ledger.Order
	for _, n := range []int64{7, 12} {
		o, err := ledger.NewOrder(ledger.FormatOrderNumber(n), uuid.New(), "Acme",
			ledger.LineItem{Name: "Bolt", Price: decimal.NewFromInt(1), Quantity: 1})
		require.NoError(t, err)
		existing = append(existing, o)
	}
	require.NoError(t, orders.CreateBatch(ctx, existing))

	seq := NewGormOrderSequence(db, DefaultOrderSequence)
	floor, err := seq.SeedFromOrders(ctx, orders)
	require.NoError(t, err)
	assert.Equal(t, int64(12), floor)

	next, err := seq.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(13), next)

	o, err := ledger.NewOrder(ledger.FormatOrderNumber(next), uuid.New(), "Acme",
		ledger.LineItem{Name: "Nut", Price: decimal.NewFromInt(1), Quantity: 1})
	require.NoError(t, err)
	require.NoError(t, orders.CreateBatch(ctx, []*ledger.Order{o}))

	_, err = seq.SeedFromOrders(ctx, NewGormOrderRepository(db))
	require.NoError(t, err)
	next, err = seq.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(14), next)
}

func TestGormTransactionScope_Rollback(t *testing.T) {
	db := newTestDB(t)
	scope := NewGormTransactionScope(db)
	ctx := context.Background()
	product := newProduct(t, uuid.New(), "Bolt", "Hardware", "1")
	boom := errors.New("boom")

	err := scope.Execute(ctx, func(repos txn.TransactionalRepositories) error {
		if err := repos.ProductRepo().Create(ctx, product); err != nil {
			return err
		}
		if _, err := repos.OrderSequence().Next(ctx); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = NewGormProductRepository(db).FindByID(ctx, product.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	next, err := NewGormOrderSequence(db, DefaultOrderSequence).Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), next, "a rolled back transaction releases its order number")
}

type fixedSequence struct{ n int64 }

func (s *fixedSequence) Next(context.Context) (int64, error) {
	s.n++
	return s.n, nil
}

func TestGormTransactionScope_WithOrderSequence(t *testing.T) {
	db := newTestDB(t)
	seq := &fixedSequence{n: 99}
	scope := NewGormTransactionScope(db, WithOrderSequence(seq))

	var got int64
	err := scope.Execute(context.Background(), func(repos txn.TransactionalRepositories) error {
		var err error
		got, err = repos.OrderSequence().Next(context.Background())
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, int64(100), got)
}
