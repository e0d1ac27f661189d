package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vendorhub/backend/internal/domain/ledger"
)

// DefaultStaticLabels and DefaultStaticData are the placeholder chart shown
// when no real series is configured.
var (
	DefaultStaticLabels = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun"}
	DefaultStaticData   = []int64{15000, 19000, 22000, 18000, 24000, 28000}
)

// StaticRevenueSeries always returns the same configured chart
type StaticRevenueSeries struct {
	series RevenueSeries
}

// NewStaticRevenueSeries returns a source for a fixed chart. Empty labels
// select the defaults.
func NewStaticRevenueSeries(labels []string, data []decimal.Decimal) (*StaticRevenueSeries, error) {
	if len(labels) == 0 && len(data) == 0 {
		labels = DefaultStaticLabels
		data = make([]decimal.Decimal, len(DefaultStaticData))
		for i, v := range DefaultStaticData {
			data[i] = decimal.NewFromInt(v)
		}
	}
	s, err := NewRevenueSeries(labels, data)
	if err != nil {
		return nil, err
	}
	return &StaticRevenueSeries{series: s}, nil
}

// Series returns a copy of the configured chart
func (s *StaticRevenueSeries) Series(_ context.Context, _ uuid.UUID, _ time.Time) (RevenueSeries, error) {
	labels := append([]string(nil), s.series.Labels...)
	data := append([]decimal.Decimal(nil), s.series.Data...)
	return RevenueSeries{Labels: labels, Data: data}, nil
}

// MonthlyRevenueSeries sums shared order amounts per calendar month over the
// last Months months, the current month included.
type MonthlyRevenueSeries struct {
	orders ledger.SharedOrderRepository
	months int
}

// NewMonthlyRevenueSeries creates a monthly source. months below 1 becomes 6.
func NewMonthlyRevenueSeries(orders ledger.SharedOrderRepository, months int) *MonthlyRevenueSeries {
	if months < 1 {
		months = 6
	}
	return &MonthlyRevenueSeries{orders: orders, months: months}
}

// Series groups the supplier's shared orders into monthly buckets, oldest first
func (s *MonthlyRevenueSeries) Series(ctx context.Context, supplierID uuid.UUID, now time.Time) (RevenueSeries, error) {
	now = now.UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(s.months - 1), 0)

	orders, err := s.orders.FindBySupplierSince(ctx, supplierID, start)
	if err != nil {
		return RevenueSeries{}, err
	}

	labels := make([]string, s.months)
	data := make([]decimal.Decimal, s.months)
	for i := range labels {
		labels[i] = start.AddDate(0, i, 0).Format("Jan")
		data[i] = decimal.Zero
	}
	for _, o := range orders {
		d := o.Date.UTC()
		idx := (d.Year()-start.Year())*12 + int(d.Month()) - int(start.Month())
		if idx < 0 || idx >= s.months {
			continue
		}
		data[idx] = data[idx].Add(o.Amount)
	}
	return RevenueSeries{Labels: labels, Data: data}, nil
}
