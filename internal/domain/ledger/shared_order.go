package ledger

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vendorhub/backend/internal/domain/shared"
)

// SharedOrder is the supplier-visible record of a fulfilled line item for
// a vendor. It is denormalized: the order number is free text and is not a
// reference to an Order.
type SharedOrder struct {
	shared.BaseAggregateRoot
	SupplierID  uuid.UUID
	VendorID    uuid.UUID
	OrderNumber string
	ItemName    string
	Quantity    int
	Amount      decimal.Decimal
	Date        time.Time
	Progress    Progress
}

// NewSharedOrder records a fulfilled line item
func NewSharedOrder(supplierID, vendorID uuid.UUID, orderNumber, itemName string, quantity int, amount decimal.Decimal) (*SharedOrder, error) {
	switch {
	case supplierID == uuid.Nil || vendorID == uuid.Nil:
		return nil, shared.NewValidationError("supplier and vendor are required")
	case strings.TrimSpace(itemName) == "":
		return nil, shared.NewValidationError("item name is required")
	case quantity < 1:
		return nil, shared.NewValidationError("quantity must be at least 1")
	}
	if err := shared.ValidateMoney("amount", amount); err != nil {
		return nil, err
	}

	o := &SharedOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SupplierID:        supplierID,
		VendorID:          vendorID,
		OrderNumber:       strings.TrimSpace(orderNumber),
		ItemName:          strings.TrimSpace(itemName),
		Quantity:          quantity,
		Amount:            amount,
		Progress:          ProgressNew,
	}
	o.Date = o.CreatedAt
	o.AddDomainEvent(NewSharedOrderRecordedEvent(o))
	return o, nil
}

// Advance moves the shared order one stage forward
func (o *SharedOrder) Advance() error {
	next, err := o.Progress.Next()
	if err != nil {
		return err
	}
	o.Progress = next
	o.Touch()
	o.IncrementVersion()
	o.AddDomainEvent(NewProgressAdvancedEvent(AggregateTypeSharedOrder, o.ID, o.SupplierID, o.OrderNumber, next))
	return nil
}
