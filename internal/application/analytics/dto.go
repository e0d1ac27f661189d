package analytics

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vendorhub/backend/internal/domain/analytics"
)

// Dashboard sources
const (
	SourceLive  = "live"
	SourceCache = "cache"
)

// DashboardResponse is the supplier dashboard payload
type DashboardResponse struct {
	SupplierID    uuid.UUID      `json:"supplier_id"`
	Stats         DashboardStats `json:"stats"`
	RevenueChart  ChartData      `json:"revenue_chart"`
	CategoryChart ChartData      `json:"category_chart"`
	ComputedAt    time.Time      `json:"computed_at"`
	Source        string         `json:"source"`
}

// DashboardStats are the headline numbers
type DashboardStats struct {
	NewOrders      int64           `json:"new_orders"`
	ActiveProducts int64           `json:"active_products"`
	Revenue        decimal.Decimal `json:"revenue"`
}

// ChartData is a labelled series
type ChartData struct {
	Labels []string          `json:"labels"`
	Data   []decimal.Decimal `json:"data"`
}

// ToDashboardResponse converts a snapshot
func ToDashboardResponse(s *analytics.Snapshot, source string) *DashboardResponse {
	categories := ChartData{
		Labels: make([]string, len(s.CategoryBreakdown)),
		Data:   make([]decimal.Decimal, len(s.CategoryBreakdown)),
	}
	for i, c := range s.CategoryBreakdown {
		categories.Labels[i] = c.Category
		categories.Data[i] = decimal.NewFromInt(c.Count)
	}
	return &DashboardResponse{
		SupplierID: s.SupplierID,
		Stats: DashboardStats{
			NewOrders:      s.NewOrders,
			ActiveProducts: s.ActiveProducts,
			Revenue:        s.Revenue,
		},
		RevenueChart:  ChartData{Labels: s.RevenueChart.Labels, Data: s.RevenueChart.Data},
		CategoryChart: categories,
		ComputedAt:    s.ComputedAt,
		Source:        source,
	}
}
