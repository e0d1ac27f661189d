// Package analytics derives the supplier dashboard from the ledger and catalog.
package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vendorhub/backend/internal/domain/catalog"
	"github.com/vendorhub/backend/internal/domain/shared"
)

// RevenueSeries is the labelled revenue chart. Labels and Data always have
// the same length.
type RevenueSeries struct {
	Labels []string          `json:"labels"`
	Data   []decimal.Decimal `json:"data"`
}

// NewRevenueSeries pairs labels with values
func NewRevenueSeries(labels []string, data []decimal.Decimal) (RevenueSeries, error) {
	if len(labels) != len(data) {
		return RevenueSeries{}, shared.NewValidationError("revenue series has %d labels and %d values", len(labels), len(data))
	}
	return RevenueSeries{Labels: labels, Data: data}, nil
}

// RevenueSeriesSource produces the revenue chart for a supplier
type RevenueSeriesSource interface {
	Series(ctx context.Context, supplierID uuid.UUID, now time.Time) (RevenueSeries, error)
}

// Snapshot is the supplier dashboard at a point in time
type Snapshot struct {
	SupplierID        uuid.UUID               `json:"supplier_id"`
	NewOrders         int64                   `json:"new_orders"`
	ActiveProducts    int64                   `json:"active_products"`
	Revenue           decimal.Decimal         `json:"revenue"`
	CategoryBreakdown []catalog.CategoryCount `json:"category_breakdown"`
	RevenueChart      RevenueSeries           `json:"revenue_chart"`
	ComputedAt        time.Time               `json:"computed_at"`
}

// IsStale reports whether the snapshot is older than maxAge at now.
// A zero maxAge never expires.
func (s *Snapshot) IsStale(now time.Time, maxAge time.Duration) bool {
	if maxAge <= 0 {
		return false
	}
	return now.Sub(s.ComputedAt) > maxAge
}

// SnapshotRepository persists the per-supplier analytics cache
type SnapshotRepository interface {
	FindBySupplier(ctx context.Context, supplierID uuid.UUID) (*Snapshot, error)
	Upsert(ctx context.Context, snapshot *Snapshot) error
}
