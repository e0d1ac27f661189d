package ledger

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vendorhub/backend/internal/domain/shared"
)

const (
	AggregateTypeOrder       = "Order"
	AggregateTypeSharedOrder = "SharedOrder"
	aggregateTypeVendorCart  = "VendorCart"
)

const (
	EventTypeOrdersPlaced          = "OrdersPlaced"
	EventTypeSharedOrderRecorded   = "SharedOrderRecorded"
	EventTypeOrderProgressAdvanced = "OrderProgressAdvanced"
)

// OrdersPlacedEvent is published once per checked-out cart
type OrdersPlacedEvent struct {
	shared.BaseDomainEvent
	VendorID     uuid.UUID       `json:"vendor_id"`
	Customer     string          `json:"customer"`
	OrderNumbers []string        `json:"order_numbers"`
	Total        decimal.Decimal `json:"total"`
}

// NewOrdersPlacedEvent summarizes the orders created from one cart
func NewOrdersPlacedEvent(vendorID uuid.UUID, orders []*Order) *OrdersPlacedEvent {
	e := &OrdersPlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrdersPlaced, aggregateTypeVendorCart, vendorID),
		VendorID:        vendorID,
		OrderNumbers:    make([]string, 0, len(orders)),
		Total:           decimal.Zero,
	}
	for _, o := range orders {
		e.Customer = o.Customer
		e.OrderNumbers = append(e.OrderNumbers, o.OrderNumber)
		e.Total = e.Total.Add(o.Amount)
	}
	return e
}

// SharedOrderRecordedEvent is published when a supplier records fulfilment
type SharedOrderRecordedEvent struct {
	shared.BaseDomainEvent
	SupplierID uuid.UUID       `json:"supplier_id"`
	VendorID   uuid.UUID       `json:"vendor_id"`
	Amount     decimal.Decimal `json:"amount"`
}

// NewSharedOrderRecordedEvent creates a SharedOrderRecordedEvent
func NewSharedOrderRecordedEvent(o *SharedOrder) *SharedOrderRecordedEvent {
	return &SharedOrderRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSharedOrderRecorded, AggregateTypeSharedOrder, o.ID),
		SupplierID:      o.SupplierID,
		VendorID:        o.VendorID,
		Amount:          o.Amount,
	}
}

// ProgressAdvancedEvent is published when an order or shared order moves forward.
// OwnerID is the vendor for orders and the supplier for shared orders.
type ProgressAdvancedEvent struct {
	shared.BaseDomainEvent
	OwnerID     uuid.UUID `json:"owner_id"`
	OrderNumber string    `json:"order_number"`
	Progress    Progress  `json:"progress"`
}

// NewProgressAdvancedEvent creates a ProgressAdvancedEvent
func NewProgressAdvancedEvent(aggType string, id, ownerID uuid.UUID, orderNumber string, p Progress) *ProgressAdvancedEvent {
	return &ProgressAdvancedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderProgressAdvanced, aggType, id),
		OwnerID:         ownerID,
		OrderNumber:     orderNumber,
		Progress:        p,
	}
}
