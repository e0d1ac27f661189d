package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vendorhub/backend/internal/domain/shared"
)

const (
	AggregateTypeProduct        = "Product"
	AggregateTypeInventoryEntry = "InventoryEntry"
)

const (
	EventTypeProductAdded     = "ProductAdded"
	EventTypeInventoryUpdated = "InventoryUpdated"
	EventTypeInventoryRemoved = "InventoryRemoved"
)

// ProductAddedEvent is published when a supplier stocks a product
type ProductAddedEvent struct {
	shared.BaseDomainEvent
	SupplierID uuid.UUID `json:"supplier_id"`
	ProductID  uuid.UUID `json:"product_id"`
	EntryID    uuid.UUID `json:"entry_id"`
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	Stock      int       `json:"stock_quantity"`
}

// NewProductAddedEvent creates a ProductAddedEvent
func NewProductAddedEvent(p *Product, e *InventoryEntry) *ProductAddedEvent {
	return &ProductAddedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductAdded, AggregateTypeInventoryEntry, e.ID),
		SupplierID:      e.SupplierID,
		ProductID:       p.ID,
		EntryID:         e.ID,
		Name:            p.Name,
		Category:        p.Category,
		Stock:           e.StockQuantity,
	}
}

// InventoryUpdatedEvent is published when stock or custom price changes
type InventoryUpdatedEvent struct {
	shared.BaseDomainEvent
	SupplierID  uuid.UUID        `json:"supplier_id"`
	ProductID   uuid.UUID        `json:"product_id"`
	Stock       int              `json:"stock_quantity"`
	CustomPrice *decimal.Decimal `json:"custom_price,omitempty"`
}

// NewInventoryUpdatedEvent creates an InventoryUpdatedEvent
func NewInventoryUpdatedEvent(e *InventoryEntry) *InventoryUpdatedEvent {
	return &InventoryUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInventoryUpdated, AggregateTypeInventoryEntry, e.ID),
		SupplierID:      e.SupplierID,
		ProductID:       e.ProductID,
		Stock:           e.StockQuantity,
		CustomPrice:     e.CustomPrice,
	}
}

// InventoryRemovedEvent is published when a supplier stops stocking a product
type InventoryRemovedEvent struct {
	shared.BaseDomainEvent
	SupplierID     uuid.UUID `json:"supplier_id"`
	ProductID      uuid.UUID `json:"product_id"`
	ProductDeleted bool      `json:"product_deleted"`
}

// NewInventoryRemovedEvent creates an InventoryRemovedEvent
func NewInventoryRemovedEvent(e *InventoryEntry, productDeleted bool) *InventoryRemovedEvent {
	return &InventoryRemovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInventoryRemoved, AggregateTypeInventoryEntry, e.ID),
		SupplierID:      e.SupplierID,
		ProductID:       e.ProductID,
		ProductDeleted:  productDeleted,
	}
}
