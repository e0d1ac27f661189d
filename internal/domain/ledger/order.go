package ledger

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vendorhub/backend/internal/domain/shared"
)

// RecentOrdersLimit caps the completed orders returned by a vendor listing
const RecentOrdersLimit = 5

// OrderNumberSequence hands out strictly increasing order numbers. Every
// call returns a value no other caller will ever receive.
type OrderNumberSequence interface {
	Next(ctx context.Context) (int64, error)
}

// FormatOrderNumber renders a sequence value as ORD001, ORD002, ... ORD1000
func FormatOrderNumber(seq int64) string {
	return fmt.Sprintf("ORD%03d", seq)
}

// ParseOrderNumber reverses FormatOrderNumber
func ParseOrderNumber(number string) (int64, error) {
	digits, ok := strings.CutPrefix(number, "ORD")
	if !ok || digits == "" {
		return 0, shared.NewValidationError("invalid order number %q", number)
	}
	seq, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || seq < 0 {
		return 0, shared.NewValidationError("invalid order number %q", number)
	}
	return seq, nil
}

// LineItem is one cart row submitted by a vendor
type LineItem struct {
	Name     string
	Price    decimal.Decimal
	Quantity int
}

// Validate checks a cart row
func (li LineItem) Validate() error {
	switch {
	case strings.TrimSpace(li.Name) == "":
		return shared.NewValidationError("item name is required")
	case li.Quantity < 1:
		return shared.NewValidationError("quantity must be at least 1")
	}
	if err := shared.ValidateMoney("price", li.Price); err != nil {
		return err
	}
	return shared.ValidateMoney("amount", li.Amount())
}

// Amount is price times quantity
func (li LineItem) Amount() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Order is a vendor's purchase of one line item
type Order struct {
	shared.BaseAggregateRoot
	OrderNumber string
	VendorID    uuid.UUID
	Customer    string
	ItemName    string
	Amount      decimal.Decimal
	Date        time.Time
	Progress    Progress
}

// NewOrder creates a new order for a validated line item
func NewOrder(orderNumber string, vendorID uuid.UUID, customer string, item LineItem) (*Order, error) {
	if err := item.Validate(); err != nil {
		return nil, err
	}
	if orderNumber == "" || vendorID == uuid.Nil {
		return nil, shared.NewValidationError("order number and vendor are required")
	}

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		VendorID:          vendorID,
		Customer:          customer,
		ItemName:          strings.TrimSpace(item.Name),
		Amount:            item.Amount(),
		Progress:          ProgressNew,
	}
	o.Date = o.CreatedAt
	return o, nil
}

// Advance moves the order one stage forward
func (o *Order) Advance() error {
	next, err := o.Progress.Next()
	if err != nil {
		return err
	}
	o.Progress = next
	o.Touch()
	o.IncrementVersion()
	o.AddDomainEvent(NewProgressAdvancedEvent(AggregateTypeOrder, o.ID, o.VendorID, o.OrderNumber, next))
	return nil
}

// PartitionOrders splits a vendor's orders, sorted newest first, into open
// orders and at most RecentOrdersLimit completed ones. Every input order
// lands in at most one of the two slices.
func PartitionOrders(orders []*Order) (current, recent []*Order) {
	current = make([]*Order, 0)
	recent = make([]*Order, 0, RecentOrdersLimit)
	for _, o := range orders {
		switch {
		case !o.Progress.IsCompleted():
			current = append(current, o)
		case len(recent) < RecentOrdersLimit:
			recent = append(recent, o)
		}
	}
	return current, recent
}
