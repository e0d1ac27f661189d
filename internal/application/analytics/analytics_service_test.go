package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/vendorhub/backend/internal/domain/analytics"
	"github.com/vendorhub/backend/internal/domain/catalog"
	"github.com/vendorhub/backend/internal/domain/ledger"
	"github.com/vendorhub/backend/internal/domain/shared"
	"github.com/vendorhub/backend/tests/testutil"
)

var fixedNow = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

type analyticsFixture struct {
	inventory    *testutil.MockInventoryRepository
	sharedOrders *testutil.MockSharedOrderRepository
	suppliers    *testutil.MockSupplierRepository
	snapshots    *testutil.MockSnapshotRepository
	svc          *AnalyticsService
}

func newAnalyticsFixture(t *testing.T, maxAge time.Duration, logger *zap.Logger) *analyticsFixture {
	t.Helper()
	series, err := analytics.NewStaticRevenueSeries(nil, nil)
	require.NoError(t, err)
	f := &analyticsFixture{
		inventory:    new(testutil.MockInventoryRepository),
		sharedOrders: new(testutil.MockSharedOrderRepository),
		suppliers:    new(testutil.MockSupplierRepository),
		snapshots:    new(testutil.MockSnapshotRepository),
	}
	f.svc = NewAnalyticsService(f.inventory, f.sharedOrders, f.suppliers, f.snapshots, series, maxAge, logger)
	f.svc.now = func() time.Time { return fixedNow }
	return f
}

func (f *analyticsFixture) expectCompute(ctx context.Context, supplierID uuid.UUID, revenue decimal.Decimal) {
	f.sharedOrders.On("CountBySupplier", ctx, supplierID).Return(int64(2), nil)
	f.inventory.On("CountBySupplier", ctx, supplierID).Return(int64(3), nil)
	f.sharedOrders.On("SumAmountBySupplier", ctx, supplierID).Return(revenue, nil)
	f.inventory.On("CategoryBreakdown", ctx, supplierID).Return([]catalog.CategoryCount{
		{Category: "Hardware", Count: 2},
		{Category: "Tools", Count: 1},
	}, nil)
}

func TestAnalyticsService_ComputeSnapshot(t *testing.T) {
	f := newAnalyticsFixture(t, 0, zap.NewNop())
	ctx := context.Background()
	supplierID := uuid.New()
	f.expectCompute(ctx, supplierID, decimal.RequireFromString("40.50"))

	snap, err := f.svc.ComputeSnapshot(ctx, supplierID)
	require.NoError(t, err)

	assert.Equal(t, int64(2), snap.NewOrders)
	assert.Equal(t, int64(3), snap.ActiveProducts)
	assert.True(t, decimal.RequireFromString("40.5").Equal(snap.Revenue))
	assert.Len(t, snap.CategoryBreakdown, 2)
	assert.Equal(t, analytics.DefaultStaticLabels, snap.RevenueChart.Labels)
	assert.Equal(t, fixedNow, snap.ComputedAt)
}

func TestAnalyticsService_ComputeSnapshot_NoOrders(t *testing.T) {
	f := newAnalyticsFixture(t, 0, zap.NewNop())
	ctx := context.Background()
	supplierID := uuid.New()

	f.sharedOrders.On("CountBySupplier", ctx, supplierID).Return(int64(0), nil)
	f.inventory.On("CountBySupplier", ctx, supplierID).Return(int64(0), nil)
	f.sharedOrders.On("SumAmountBySupplier", ctx, supplierID).Return(decimal.Zero, nil)
	f.inventory.On("CategoryBreakdown", ctx, supplierID).Return(nil, nil)

	snap, err := f.svc.ComputeSnapshot(ctx, supplierID)
	require.NoError(t, err)
	assert.True(t, snap.Revenue.IsZero())
	assert.NotNil(t, snap.CategoryBreakdown)
	assert.Empty(t, snap.CategoryBreakdown)
}

func TestAnalyticsService_Dashboard(t *testing.T) {
	ctx := context.Background()

	t.Run("live", func(t *testing.T) {
		f := newAnalyticsFixture(t, 0, zap.NewNop())
		supplierID := uuid.New()
		f.expectCompute(ctx, supplierID, decimal.NewFromInt(10))

		resp, err := f.svc.Dashboard(ctx, supplierID, false)
		require.NoError(t, err)
		assert.Equal(t, SourceLive, resp.Source)
		assert.Equal(t, []string{"Hardware", "Tools"}, resp.CategoryChart.Labels)
		assert.True(t, decimal.NewFromInt(2).Equal(resp.CategoryChart.Data[0]))
		f.snapshots.AssertNotCalled(t, "FindBySupplier", mock.Anything, mock.Anything)
	})

	t.Run("fresh cache", func(t *testing.T) {
		f := newAnalyticsFixture(t, time.Hour, zap.NewNop())
		supplierID := uuid.New()
		cached := &analytics.Snapshot{SupplierID: supplierID, NewOrders: 9, ComputedAt: fixedNow.Add(-time.Minute)}
		f.snapshots.On("FindBySupplier", ctx, supplierID).Return(cached, nil)

		resp, err := f.svc.Dashboard(ctx, supplierID, true)
		require.NoError(t, err)
		assert.Equal(t, SourceCache, resp.Source)
		assert.Equal(t, int64(9), resp.Stats.NewOrders)
	})

	t.Run("missing cache falls back and stores", func(t *testing.T) {
		f := newAnalyticsFixture(t, time.Hour, zap.NewNop())
		supplierID := uuid.New()
		f.snapshots.On("FindBySupplier", ctx, supplierID).Return(nil, shared.ErrNotFound)
		f.expectCompute(ctx, supplierID, decimal.NewFromInt(10))
		f.snapshots.On("Upsert", ctx, mock.AnythingOfType("*analytics.Snapshot")).Return(nil)

		resp, err := f.svc.Dashboard(ctx, supplierID, true)
		require.NoError(t, err)
		assert.Equal(t, SourceLive, resp.Source)
		f.snapshots.AssertExpectations(t)
	})

	t.Run("stale cache is recomputed", func(t *testing.T) {
		f := newAnalyticsFixture(t, time.Hour, zap.NewNop())
		supplierID := uuid.New()
		stale := &analytics.Snapshot{SupplierID: supplierID, ComputedAt: fixedNow.Add(-2 * time.Hour)}
		f.snapshots.On("FindBySupplier", ctx, supplierID).Return(stale, nil)
		f.expectCompute(ctx, supplierID, decimal.NewFromInt(10))
		f.snapshots.On("Upsert", ctx, mock.Anything).Return(nil)

		resp, err := f.svc.Dashboard(ctx, supplierID, true)
		require.NoError(t, err)
		assert.Equal(t, int64(2), resp.Stats.NewOrders)
	})
}

func TestAnalyticsService_RefreshAll(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	f := newAnalyticsFixture(t, 0, zap.New(core))
	ctx := context.Background()

	ok, bad := uuid.New(), uuid.New()
	f.suppliers.On("ListIDs", ctx).Return([]uuid.UUID{bad, ok}, nil)
	f.sharedOrders.On("CountBySupplier", ctx, bad).Return(int64(0), errors.New("db down"))
	f.expectCompute(ctx, ok, decimal.NewFromInt(1))
	f.snapshots.On("Upsert", ctx, mock.MatchedBy(func(s *analytics.Snapshot) bool {
		return s.SupplierID == ok
	})).Return(nil)

	refreshed, err := f.svc.RefreshAll(ctx)
	assert.Equal(t, 1, refreshed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")

	assert.Equal(t, 1, logs.FilterMessage("Failed to refresh supplier analytics").Len())
	summary := logs.FilterMessage("Supplier analytics refreshed").All()
	require.Len(t, summary, 1)
	assert.Equal(t, int64(1), summary[0].ContextMap()["failed"])
}

type refresherFunc func(ctx context.Context, supplierID uuid.UUID) (*analytics.Snapshot, error)

func (f refresherFunc) RefreshSupplier(ctx context.Context, supplierID uuid.UUID) (*analytics.Snapshot, error) {
	return f(ctx, supplierID)
}

func TestRefreshHandler(t *testing.T) {
	var got []uuid.UUID
	h := NewRefreshHandler(refresherFunc(func(_ context.Context, id uuid.UUID) (*analytics.Snapshot, error) {
		got = append(got, id)
		return &analytics.Snapshot{SupplierID: id}, nil
	}), zap.NewNop())

	assert.ElementsMatch(t, []string{
		ledger.EventTypeSharedOrderRecorded,
		catalog.EventTypeProductAdded,
		catalog.EventTypeInventoryRemoved,
	}, h.EventTypes())

	supplierID := uuid.New()
	order, err := ledger.NewSharedOrder(supplierID, uuid.New(), "ORD001", "Bolt", 1, decimal.NewFromInt(5))
	require.NoError(t, err)
	entry, err := catalog.NewInventoryEntry(supplierID, uuid.New(), 1, nil)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, h.Handle(ctx, order.GetDomainEvents()[0]))
	require.NoError(t, h.Handle(ctx, catalog.NewInventoryRemovedEvent(entry, false)))
	assert.Equal(t, []uuid.UUID{supplierID, supplierID}, got)

	assert.Error(t, h.Handle(ctx, testutil.NewTestEvent("Other")))
}
