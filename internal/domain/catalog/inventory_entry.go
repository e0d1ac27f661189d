package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vendorhub/backend/internal/domain/shared"
)

// InventoryEntry is a supplier's stocking record for one product
type InventoryEntry struct {
	shared.BaseAggregateRoot
	SupplierID    uuid.UUID
	ProductID     uuid.UUID
	StockQuantity int
	CustomPrice   *decimal.Decimal
	AddedOn       time.Time
}

// NewInventoryEntry creates a stocking record. customPrice may be nil.
func NewInventoryEntry(supplierID, productID uuid.UUID, stock int, customPrice *decimal.Decimal) (*InventoryEntry, error) {
	if supplierID == uuid.Nil || productID == uuid.Nil {
		return nil, shared.NewValidationError("supplier and product are required")
	}
	if err := validateStock(stock); err != nil {
		return nil, err
	}
	if err := validatePrice(customPrice); err != nil {
		return nil, err
	}

	e := &InventoryEntry{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SupplierID:        supplierID,
		ProductID:         productID,
		StockQuantity:     stock,
		CustomPrice:       customPrice,
	}
	e.AddedOn = e.CreatedAt
	return e, nil
}

// InventoryUpdate is a partial update; nil fields are left unchanged.
// Presence, not value, decides: an explicit zero stock or price is applied.
type InventoryUpdate struct {
	Stock *int
	Price *decimal.Decimal
}

// IsEmpty reports whether the update carries no field
func (u InventoryUpdate) IsEmpty() bool {
	return u.Stock == nil && u.Price == nil
}

// Apply validates and applies the present fields. An empty update is a no-op
// and does not bump the version.
func (e *InventoryEntry) Apply(u InventoryUpdate) error {
	if u.Stock != nil {
		if err := validateStock(*u.Stock); err != nil {
			return err
		}
	}
	if err := validatePrice(u.Price); err != nil {
		return err
	}
	if u.IsEmpty() {
		return nil
	}

	if u.Stock != nil {
		e.StockQuantity = *u.Stock
	}
	if u.Price != nil {
		price := *u.Price
		e.CustomPrice = &price
	}
	e.Touch()
	e.IncrementVersion()
	e.AddDomainEvent(NewInventoryUpdatedEvent(e))
	return nil
}

// EffectivePrice returns the custom price when set, else basePrice
func (e *InventoryEntry) EffectivePrice(basePrice decimal.Decimal) decimal.Decimal {
	if e.CustomPrice != nil {
		return *e.CustomPrice
	}
	return basePrice
}

// EffectivePrice resolves the price a vendor sees for a supplier's entry
func EffectivePrice(e *InventoryEntry, p *Product) decimal.Decimal {
	return e.EffectivePrice(p.Price)
}

func validateStock(stock int) error {
	if stock < 0 {
		return shared.NewValidationError("stock_quantity cannot be negative")
	}
	return nil
}

func validatePrice(price *decimal.Decimal) error {
	if price == nil {
		return nil
	}
	return shared.ValidateMoney("price", *price)
}

// CategoryCount is the number of a supplier's entries in one category
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}
