package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vendorhub/backend/internal/domain/analytics"
	"github.com/vendorhub/backend/internal/domain/catalog"
)

// SupplierAnalyticsModel is the cached dashboard of one supplier
type SupplierAnalyticsModel struct {
	SupplierID        uuid.UUID               `gorm:"type:uuid;primary_key"`
	NewOrders         int64                   `gorm:"not null;default:0"`
	ActiveProducts    int64                   `gorm:"not null;default:0"`
	Revenue           decimal.Decimal         `gorm:"type:decimal(12,2);not null;default:0"`
	CategoryBreakdown []catalog.CategoryCount `gorm:"type:text;serializer:json"`
	RevenueLabels     []string                `gorm:"type:text;serializer:json"`
	RevenueData       []decimal.Decimal       `gorm:"type:text;serializer:json"`
	ComputedAt        time.Time               `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SupplierAnalyticsModel) TableName() string {
	return "supplier_analytics"
}

// ToDomain converts the persistence model to a domain Snapshot
func (m *SupplierAnalyticsModel) ToDomain() *analytics.Snapshot {
	breakdown := m.CategoryBreakdown
	if breakdown == nil {
		breakdown = []catalog.CategoryCount{}
	}
	return &analytics.Snapshot{
		SupplierID:        m.SupplierID,
		NewOrders:         m.NewOrders,
		ActiveProducts:    m.ActiveProducts,
		Revenue:           m.Revenue,
		CategoryBreakdown: breakdown,
		RevenueChart: analytics.RevenueSeries{
			Labels: m.RevenueLabels,
			Data:   m.RevenueData,
		},
		ComputedAt: m.ComputedAt,
	}
}

// FromDomain populates the persistence model from a domain Snapshot
func (m *SupplierAnalyticsModel) FromDomain(s *analytics.Snapshot) {
	m.SupplierID = s.SupplierID
	m.NewOrders = s.NewOrders
	m.ActiveProducts = s.ActiveProducts
	m.Revenue = s.Revenue
	m.CategoryBreakdown = s.CategoryBreakdown
	m.RevenueLabels = s.RevenueChart.Labels
	m.RevenueData = s.RevenueChart.Data
	m.ComputedAt = s.ComputedAt
}
