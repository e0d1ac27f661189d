package telemetry

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/vendorhub/backend/internal/domain/catalog"
	"github.com/vendorhub/backend/internal/domain/ledger"
	"github.com/vendorhub/backend/internal/domain/shared"
)

// ErrMeterNil is returned when NewBusinessMetrics gets no meter
var ErrMeterNil = errors.New("business metrics: meter cannot be nil")

// BusinessMetrics counts marketplace activity. It subscribes to the event bus
// so services stay free of metric calls.
type BusinessMetrics struct {
	logger *zap.Logger

	ordersPlaced     *Counter
	cartTotal        *Histogram
	sharedOrders     *Counter
	progressAdvanced *Counter
	productsAdded    *Counter
	inventoryUpdates *Counter
	inventoryRemoved *Counter
}

// NewBusinessMetrics registers the instruments on meter
func NewBusinessMetrics(meter metric.Meter, logger *zap.Logger) (*BusinessMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	bm := &BusinessMetrics{logger: logger}

	var errs []error
	counter := func(name, desc, unit string) *Counter {
		c, err := NewCounter(meter, name, desc, unit)
		errs = append(errs, err)
		return c
	}
	bm.ordersPlaced = counter("vh_orders_placed_total", "Vendor orders created at checkout", "{orders}")
	bm.sharedOrders = counter("vh_shared_orders_recorded_total", "Shared orders recorded by suppliers", "{orders}")
	bm.progressAdvanced = counter("vh_order_progress_advanced_total", "Order progress transitions", "{transitions}")
	bm.productsAdded = counter("vh_products_added_total", "Products added by suppliers", "{products}")
	bm.inventoryUpdates = counter("vh_inventory_updates_total", "Inventory stock or price updates", "{updates}")
	bm.inventoryRemoved = counter("vh_inventory_removed_total", "Inventory entries removed", "{entries}")

	var err error
	bm.cartTotal, err = NewHistogram(meter, "vh_cart_total", "Total amount of each checked-out cart", "{currency}", AmountBuckets...)
	errs = append(errs, err)

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return bm, nil
}

// EventTypes returns the event types this handler is interested in
func (bm *BusinessMetrics) EventTypes() []string {
	return []string{
		ledger.EventTypeOrdersPlaced,
		ledger.EventTypeSharedOrderRecorded,
		ledger.EventTypeOrderProgressAdvanced,
		catalog.EventTypeProductAdded,
		catalog.EventTypeInventoryUpdated,
		catalog.EventTypeInventoryRemoved,
	}
}

// Handle records the event. Unknown events are ignored.
func (bm *BusinessMetrics) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *ledger.OrdersPlacedEvent:
		bm.ordersPlaced.Add(ctx, int64(len(e.OrderNumbers)))
		total, _ := e.Total.Float64()
		bm.cartTotal.Record(ctx, total)
	case *ledger.SharedOrderRecordedEvent:
		bm.sharedOrders.Inc(ctx)
	case *ledger.ProgressAdvancedEvent:
		bm.progressAdvanced.Inc(ctx,
			AttrOrderKind.String(e.AggregateType()),
			AttrProgress.String(e.Progress.String()))
	case *catalog.ProductAddedEvent:
		bm.productsAdded.Inc(ctx, AttrCategory.String(e.Category))
	case *catalog.InventoryUpdatedEvent:
		bm.inventoryUpdates.Inc(ctx)
	case *catalog.InventoryRemovedEvent:
		bm.inventoryRemoved.Inc(ctx, AttrProductDeleted.Bool(e.ProductDeleted))
	default:
		bm.logger.Debug("Ignoring event for business metrics", zap.String("event_type", event.EventType()))
	}
	return nil
}

var _ shared.EventHandler = (*BusinessMetrics)(nil)
