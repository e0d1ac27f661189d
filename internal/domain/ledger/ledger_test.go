package ledger

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vendorhub/backend/internal/domain/shared"
)

func TestFormatOrderNumber(t *testing.T) {
	assert.Equal(t, "ORD001", FormatOrderNumber(1))
	assert.Equal(t, "ORD042", FormatOrderNumber(42))
	assert.Equal(t, "ORD999", FormatOrderNumber(999))
	assert.Equal(t, "ORD1000", FormatOrderNumber(1000))
}

func TestParseOrderNumber(t *testing.T) {
	n, err := ParseOrderNumber("ORD042")
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)

	n, err = ParseOrderNumber(FormatOrderNumber(1000))
	require.NoError(t, err)
	assert.Equal(t, int64(1000), n)

	for _, bad := range []string{"", "ORD", "ORDx1", "INV001", "ORD-1"} {
		_, err := ParseOrderNumber(bad)
		assert.ErrorIs(t, err, shared.ErrValidation, bad)
	}
}

func TestLineItem_Amount(t *testing.T) {
	tests := []struct {
		price    string
		quantity int
		want     string
	}{
		{"10", 3, "30"},
		{"2", 5, "10"},
		{"0.1", 3, "0.3"},
		{"19.99", 7, "139.93"},
	}
	for _, tt := range tests {
		li := LineItem{Name: "x", Price: decimal.RequireFromString(tt.price), Quantity: tt.quantity}
		assert.True(t, decimal.RequireFromString(tt.want).Equal(li.Amount()), "%s x %d", tt.price, tt.quantity)
	}
}

func TestLineItem_Validate(t *testing.T) {
	assert.Error(t, LineItem{Name: "", Price: decimal.NewFromInt(1), Quantity: 1}.Validate())
	assert.Error(t, LineItem{Name: "Bolt", Price: decimal.NewFromInt(-1), Quantity: 1}.Validate())
	assert.Error(t, LineItem{Name: "Bolt", Price: decimal.NewFromInt(1), Quantity: 0}.Validate())
	assert.NoError(t, LineItem{Name: "Bolt", Price: decimal.Zero, Quantity: 1}.Validate())

	subCent := LineItem{Name: "Tiny", Price: decimal.RequireFromString("0.005"), Quantity: 1}
	assert.ErrorIs(t, subCent.Validate(), shared.ErrValidation)
	overflow := LineItem{Name: "Crane", Price: decimal.RequireFromString("60000000"), Quantity: 2}
	assert.ErrorIs(t, overflow.Validate(), shared.ErrValidation)
}

func TestNewOrder(t *testing.T) {
	vendorID := uuid.New()
	o, err := NewOrder("ORD001", vendorID, "Acme", LineItem{Name: "Bolt", Price: decimal.NewFromInt(10), Quantity: 3})
	require.NoError(t, err)

	assert.Equal(t, ProgressNew, o.Progress)
	assert.True(t, decimal.NewFromInt(30).Equal(o.Amount))
	assert.Equal(t, "Bolt", o.ItemName)
	assert.Equal(t, vendorID, o.VendorID)
	assert.False(t, o.Date.IsZero())
}

func TestProgress_ForwardOnly(t *testing.T) {
	assert.True(t, ProgressNew.CanTransitionTo(ProgressProcessing))
	assert.False(t, ProgressNew.CanTransitionTo(ProgressCompleted))
	assert.False(t, ProgressProcessing.CanTransitionTo(ProgressNew))
	assert.False(t, ProgressCompleted.CanTransitionTo(Progress(4)))
	assert.False(t, Progress(0).IsValid())

	o, _ := NewOrder("ORD001", uuid.New(), "Acme", LineItem{Name: "Nut", Price: decimal.NewFromInt(2), Quantity: 5})
	require.NoError(t, o.Advance())
	assert.Equal(t, ProgressProcessing, o.Progress)
	require.NoError(t, o.Advance())
	assert.Equal(t, ProgressCompleted, o.Progress)
	assert.Equal(t, 3, o.Version)

	err := o.Advance()
	assert.True(t, errors.Is(err, shared.ErrInvalidState))
	assert.Equal(t, ProgressCompleted, o.Progress)
	assert.Len(t, o.GetDomainEvents(), 2)
}

func TestPartitionOrders(t *testing.T) {
	var orders []*Order
	now := time.Now()
	for i := 0; i < 10; i++ {
		o := &Order{OrderNumber: FormatOrderNumber(int64(i + 1)), Progress: ProgressCompleted, Date: now.Add(-time.Duration(i) * time.Hour)}
		if i%3 == 0 {
			o.Progress = ProgressProcessing
		}
		orders = append(orders, o)
	}
	orders = append(orders, &Order{OrderNumber: "ORD011", Progress: ProgressNew})

	current, recent := PartitionOrders(orders)

	assert.Len(t, current, 5)
	for _, o := range current {
		assert.Less(t, int(o.Progress), int(ProgressCompleted))
	}
	require.Len(t, recent, RecentOrdersLimit)
	for _, o := range recent {
		assert.Equal(t, ProgressCompleted, o.Progress)
	}
	assert.Equal(t, "ORD002", recent[0].OrderNumber)

	seen := map[string]bool{}
	for _, o := range append(append([]*Order{}, current...), recent...) {
		assert.False(t, seen[o.OrderNumber], "duplicate %s", o.OrderNumber)
		seen[o.OrderNumber] = true
	}
}

func TestPartitionOrders_Empty(t *testing.T) {
	current, recent := PartitionOrders(nil)
	assert.NotNil(t, current)
	assert.NotNil(t, recent)
	assert.Empty(t, current)
	assert.Empty(t, recent)
}

func TestNewSharedOrder(t *testing.T) {
	_, err := NewSharedOrder(uuid.New(), uuid.New(), "ORD001", "Bolt", 0, decimal.NewFromInt(1))
	assert.True(t, errors.Is(err, shared.ErrValidation))

	o, err := NewSharedOrder(uuid.New(), uuid.New(), " ORD001 ", "Bolt", 3, decimal.NewFromInt(30))
	require.NoError(t, err)
	assert.Equal(t, "ORD001", o.OrderNumber)
	assert.Equal(t, ProgressNew, o.Progress)
	require.Len(t, o.GetDomainEvents(), 1)
	assert.Equal(t, EventTypeSharedOrderRecorded, o.GetDomainEvents()[0].EventType())
}

func TestNewOrdersPlacedEvent(t *testing.T) {
	vendorID := uuid.New()
	a, _ := NewOrder("ORD001", vendorID, "Acme", LineItem{Name: "Bolt", Price: decimal.NewFromInt(10), Quantity: 3})
	b, _ := NewOrder("ORD002", vendorID, "Acme", LineItem{Name: "Nut", Price: decimal.NewFromInt(2), Quantity: 5})

	e := NewOrdersPlacedEvent(vendorID, []*Order{a, b})
	assert.Equal(t, []string{"ORD001", "ORD002"}, e.OrderNumbers)
	assert.True(t, decimal.NewFromInt(40).Equal(e.Total))
	assert.Equal(t, vendorID, e.AggregateID())
}
