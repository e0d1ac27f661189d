package event

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendorhub/backend/internal/domain/ledger"
)

func TestEventSerializer_OrdersPlaced(t *testing.T) {
	s := NewEventSerializer()
	vendorID := uuid.New()
	order, err := ledger.NewOrder("ORD001", vendorID, "Acme", ledger.LineItem{Name: "Bolt", Price: decimal.NewFromInt(3), Quantity: 2})
	require.NoError(t, err)
	event := ledger.NewOrdersPlacedEvent(vendorID, []*ledger.Order{order})

	data, err := s.Serialize(event)
	require.NoError(t, err)

	got, err := s.Deserialize(ledger.EventTypeOrdersPlaced, data)
	require.NoError(t, err)
	placed, ok := got.(*ledger.OrdersPlacedEvent)
	require.True(t, ok)
	assert.Equal(t, event.EventID(), placed.EventID())
	assert.Equal(t, []string{"ORD001"}, placed.OrderNumbers)
	assert.True(t, decimal.NewFromInt(6).Equal(placed.Total))
}

func TestEventSerializer_Unknown(t *testing.T) {
	s := NewEventSerializer()
	assert.False(t, s.IsRegistered("Nope"))
	_, err := s.Deserialize("Nope", []byte(`{}`))
	assert.Error(t, err)
}
