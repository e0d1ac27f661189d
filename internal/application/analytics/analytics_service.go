// Package analytics computes and caches supplier dashboards.
package analytics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/analytics"
	"github.com/vendorhub/backend/internal/domain/catalog"
	"github.com/vendorhub/backend/internal/domain/ledger"
	"github.com/vendorhub/backend/internal/domain/profile"
	"github.com/vendorhub/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// AnalyticsService derives supplier snapshots from the ledger and catalog
type AnalyticsService struct {
	inventory    catalog.InventoryRepository
	sharedOrders ledger.SharedOrderRepository
	suppliers    profile.SupplierRepository
	snapshots    analytics.SnapshotRepository
	series       analytics.RevenueSeriesSource
	cacheMaxAge  time.Duration
	now          func() time.Time
	logger       *zap.Logger
}

// NewAnalyticsService creates a new AnalyticsService. A zero cacheMaxAge
// keeps cached snapshots until the next refresh.
func NewAnalyticsService(
	inventory catalog.InventoryRepository,
	sharedOrders ledger.SharedOrderRepository,
	suppliers profile.SupplierRepository,
	snapshots analytics.SnapshotRepository,
	series analytics.RevenueSeriesSource,
	cacheMaxAge time.Duration,
	logger *zap.Logger,
) *AnalyticsService {
	return &AnalyticsService{
		inventory:    inventory,
		sharedOrders: sharedOrders,
		suppliers:    suppliers,
		snapshots:    snapshots,
		series:       series,
		cacheMaxAge:  cacheMaxAge,
		now:          time.Now,
		logger:       logger,
	}
}

// ComputeSnapshot builds the supplier's dashboard from current data
func (s *AnalyticsService) ComputeSnapshot(ctx context.Context, supplierID uuid.UUID) (*analytics.Snapshot, error) {
	newOrders, err := s.sharedOrders.CountBySupplier(ctx, supplierID)
	if err != nil {
		return nil, fmt.Errorf("count shared orders: %w", err)
	}
	activeProducts, err := s.inventory.CountBySupplier(ctx, supplierID)
	if err != nil {
		return nil, fmt.Errorf("count inventory: %w", err)
	}
	revenue, err := s.sharedOrders.SumAmountBySupplier(ctx, supplierID)
	if err != nil {
		return nil, fmt.Errorf("sum revenue: %w", err)
	}
	breakdown, err := s.inventory.CategoryBreakdown(ctx, supplierID)
	if err != nil {
		return nil, fmt.Errorf("category breakdown: %w", err)
	}
	if breakdown == nil {
		breakdown = []catalog.CategoryCount{}
	}

	now := s.now().UTC()
	chart, err := s.series.Series(ctx, supplierID, now)
	if err != nil {
		return nil, fmt.Errorf("revenue series: %w", err)
	}

	return &analytics.Snapshot{
		SupplierID:        supplierID,
		NewOrders:         newOrders,
		ActiveProducts:    activeProducts,
		Revenue:           revenue,
		CategoryBreakdown: breakdown,
		RevenueChart:      chart,
		ComputedAt:        now,
	}, nil
}

// Dashboard returns the live snapshot, or the cached one when fromCache is set
func (s *AnalyticsService) Dashboard(ctx context.Context, supplierID uuid.UUID, fromCache bool) (*DashboardResponse, error) {
	if fromCache {
		snapshot, source, err := s.CachedSnapshot(ctx, supplierID)
		if err != nil {
			return nil, err
		}
		return ToDashboardResponse(snapshot, source), nil
	}
	snapshot, err := s.ComputeSnapshot(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	return ToDashboardResponse(snapshot, SourceLive), nil
}

// CachedSnapshot reads the persisted snapshot. A missing or stale one is
// recomputed and stored.
func (s *AnalyticsService) CachedSnapshot(ctx context.Context, supplierID uuid.UUID) (*analytics.Snapshot, string, error) {
	snapshot, err := s.snapshots.FindBySupplier(ctx, supplierID)
	switch {
	case err == nil && !snapshot.IsStale(s.now(), s.cacheMaxAge):
		return snapshot, SourceCache, nil
	case err != nil && !errors.Is(err, shared.ErrNotFound):
		return nil, "", err
	}

	snapshot, err = s.RefreshSupplier(ctx, supplierID)
	if err != nil {
		return nil, "", err
	}
	return snapshot, SourceLive, nil
}

// RefreshSupplier recomputes and stores one supplier's snapshot
func (s *AnalyticsService) RefreshSupplier(ctx context.Context, supplierID uuid.UUID) (*analytics.Snapshot, error) {
	snapshot, err := s.ComputeSnapshot(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	if err := s.snapshots.Upsert(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("store snapshot: %w", err)
	}
	return snapshot, nil
}

// RefreshAll recomputes every supplier's snapshot. A failing supplier does
// not stop the others; all failures are returned joined.
func (s *AnalyticsService) RefreshAll(ctx context.Context) (int, error) {
	ids, err := s.suppliers.ListIDs(ctx)
	if err != nil {
		return 0, err
	}

	var (
		refreshed int
		errs      []error
	)
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if _, err := s.RefreshSupplier(ctx, id); err != nil {
			s.logger.Warn("Failed to refresh supplier analytics",
				zap.String("supplier_id", id.String()),
				zap.Error(err))
			errs = append(errs, fmt.Errorf("supplier %s: %w", id, err))
			continue
		}
		refreshed++
	}

	s.logger.Info("Supplier analytics refreshed",
		zap.Int("refreshed", refreshed),
		zap.Int("failed", len(errs)))
	return refreshed, errors.Join(errs...)
}
