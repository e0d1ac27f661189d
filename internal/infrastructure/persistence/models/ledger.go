package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vendorhub/backend/internal/domain/ledger"
)

// OrderModel is the persistence model for vendor orders
type OrderModel struct {
	AggregateModel
	OrderNumber string          `gorm:"type:varchar(20);not null;uniqueIndex:idx_orders_order_number"`
	VendorID    uuid.UUID       `gorm:"type:uuid;not null;index:idx_orders_vendor_date,priority:1"`
	Customer    string          `gorm:"type:varchar(255);not null;default:''"`
	ItemName    string          `gorm:"type:varchar(255);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Date        time.Time       `gorm:"not null;index:idx_orders_vendor_date,priority:2"`
	Progress    ledger.Progress `gorm:"not null;default:1"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order
func (m *OrderModel) ToDomain() *ledger.Order {
	return &ledger.Order{
		BaseAggregateRoot: m.ToAggregateRoot(),
		OrderNumber:       m.OrderNumber,
		VendorID:          m.VendorID,
		Customer:          m.Customer,
		ItemName:          m.ItemName,
		Amount:            m.Amount,
		Date:              m.Date,
		Progress:          m.Progress,
	}
}

// FromDomain populates the persistence model from a domain Order
func (m *OrderModel) FromDomain(o *ledger.Order) {
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	m.OrderNumber = o.OrderNumber
	m.VendorID = o.VendorID
	m.Customer = o.Customer
	m.ItemName = o.ItemName
	m.Amount = o.Amount
	m.Date = o.Date
	m.Progress = o.Progress
}

// OrderModelFromDomain creates a new persistence model from a domain Order
func OrderModelFromDomain(o *ledger.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}

// SharedOrderModel is the persistence model for supplier-visible shared orders
type SharedOrderModel struct {
	AggregateModel
	SupplierID  uuid.UUID       `gorm:"type:uuid;not null;index:idx_shared_orders_supplier_date,priority:1"`
	VendorID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	OrderNumber string          `gorm:"type:varchar(20);not null;default:''"`
	ItemName    string          `gorm:"type:varchar(255);not null"`
	Quantity    int             `gorm:"not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Date        time.Time       `gorm:"not null;index:idx_shared_orders_supplier_date,priority:2"`
	Progress    ledger.Progress `gorm:"not null;default:1"`
}

// TableName returns the table name for GORM
func (SharedOrderModel) TableName() string {
	return "shared_orders"
}

// ToDomain converts the persistence model to a domain SharedOrder
func (m *SharedOrderModel) ToDomain() *ledger.SharedOrder {
	return &ledger.SharedOrder{
		BaseAggregateRoot: m.ToAggregateRoot(),
		SupplierID:        m.SupplierID,
		VendorID:          m.VendorID,
		OrderNumber:       m.OrderNumber,
		ItemName:          m.ItemName,
		Quantity:          m.Quantity,
		Amount:            m.Amount,
		Date:              m.Date,
		Progress:          m.Progress,
	}
}

// FromDomain populates the persistence model from a domain SharedOrder
func (m *SharedOrderModel) FromDomain(o *ledger.SharedOrder) {
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	m.SupplierID = o.SupplierID
	m.VendorID = o.VendorID
	m.OrderNumber = o.OrderNumber
	m.ItemName = o.ItemName
	m.Quantity = o.Quantity
	m.Amount = o.Amount
	m.Date = o.Date
	m.Progress = o.Progress
}

// OrderSequenceModel is a named counter row. The row is locked for the
// duration of the transaction that draws from it.
type OrderSequenceModel struct {
	Name      string    `gorm:"type:varchar(50);primary_key"`
	Value     int64     `gorm:"not null;default:0"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderSequenceModel) TableName() string {
	return "order_sequences"
}
