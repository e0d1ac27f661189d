package event

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/vendorhub/backend/internal/domain/shared"
	"github.com/vendorhub/backend/tests/testutil"
)

type panicHandler struct{}

func (panicHandler) EventTypes() []string { return []string{"Boom"} }
func (panicHandler) Handle(context.Context, shared.DomainEvent) error {
	panic("handler exploded")
}

func TestInMemoryEventBus_Publish(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	ctx := context.Background()
	require.NoError(t, bus.Start(ctx))

	placed := testutil.NewMockEventHandler("OrdersPlaced")
	all := testutil.NewMockEventHandler()
	bus.Subscribe(placed)
	bus.Subscribe(all)

	require.NoError(t, bus.Publish(ctx, testutil.NewTestEvent("OrdersPlaced"), testutil.NewTestEvent("ProductAdded")))

	assert.Equal(t, 1, placed.HandledCount())
	assert.Equal(t, 2, all.HandledCount())

	bus.Unsubscribe(placed)
	require.NoError(t, bus.Publish(ctx, testutil.NewTestEvent("OrdersPlaced")))
	assert.Equal(t, 1, placed.HandledCount())
}

func TestInMemoryEventBus_HandlerErrorsAreLogged(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	bus := NewInMemoryEventBus(zap.New(core))
	ctx := context.Background()

	failing := testutil.NewMockEventHandler("X")
	failing.SetError(errors.New("nope"))
	after := testutil.NewMockEventHandler("X")
	bus.Subscribe(failing)
	bus.Subscribe(after)
	bus.Subscribe(panicHandler{})

	assert.NoError(t, bus.Publish(ctx, testutil.NewTestEvent("X"), testutil.NewTestEvent("Boom")))
	assert.Equal(t, 1, after.HandledCount())
	assert.Equal(t, 1, logs.FilterMessage("handler failed to process event").Len())
	assert.Equal(t, 1, logs.FilterMessage("handler panicked").Len())
}

func TestInMemoryEventBus_Async(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop(), WithAsyncDispatch())
	ctx, cancel := context.WithCancel(context.Background())

	h := testutil.NewMockEventHandler("X")
	bus.Subscribe(h)

	require.NoError(t, bus.Publish(ctx, testutil.NewTestEvent("X")))
	assert.Equal(t, 0, h.HandledCount(), "not started")

	require.NoError(t, bus.Start(ctx))
	require.NoError(t, bus.Publish(ctx, testutil.NewTestEvent("X"), testutil.NewTestEvent("X")))
	testutil.AssertEventually(t, func() bool { return h.HandledCount() == 2 }, time.Second, 5*time.Millisecond)
	cancel()

	stopCtx, stopCancel := context.WithTimeout(context.Background(), time.Second)
	defer stopCancel()
	require.NoError(t, bus.Stop(stopCtx))
	assert.Equal(t, 2, h.HandledCount())
}
