package analytics

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/analytics"
	"github.com/vendorhub/backend/internal/domain/catalog"
	"github.com/vendorhub/backend/internal/domain/ledger"
	"github.com/vendorhub/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// SnapshotRefresher recomputes one supplier's cached snapshot
type SnapshotRefresher interface {
	RefreshSupplier(ctx context.Context, supplierID uuid.UUID) (*analytics.Snapshot, error)
}

// RefreshHandler keeps the analytics cache current when a supplier's
// orders or inventory change
type RefreshHandler struct {
	refresher SnapshotRefresher
	logger    *zap.Logger
}

// NewRefreshHandler creates a new RefreshHandler
func NewRefreshHandler(refresher SnapshotRefresher, logger *zap.Logger) *RefreshHandler {
	return &RefreshHandler{refresher: refresher, logger: logger}
}

// EventTypes returns the event types this handler is interested in
func (h *RefreshHandler) EventTypes() []string {
	return []string{
		ledger.EventTypeSharedOrderRecorded,
		catalog.EventTypeProductAdded,
		catalog.EventTypeInventoryRemoved,
	}
}

// Handle refreshes the supplier named by the event
func (h *RefreshHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	var supplierID uuid.UUID
	switch e := event.(type) {
	case *ledger.SharedOrderRecordedEvent:
		supplierID = e.SupplierID
	case *catalog.ProductAddedEvent:
		supplierID = e.SupplierID
	case *catalog.InventoryRemovedEvent:
		supplierID = e.SupplierID
	default:
		return fmt.Errorf("unexpected event type %T", event)
	}

	if _, err := h.refresher.RefreshSupplier(ctx, supplierID); err != nil {
		h.logger.Error("Failed to refresh analytics after event",
			zap.String("event_type", event.EventType()),
			zap.String("supplier_id", supplierID.String()),
			zap.Error(err))
		return err
	}
	h.logger.Debug("Analytics refreshed",
		zap.String("event_type", event.EventType()),
		zap.String("supplier_id", supplierID.String()))
	return nil
}

var _ shared.EventHandler = (*RefreshHandler)(nil)
