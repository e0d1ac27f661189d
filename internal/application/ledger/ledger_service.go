// Package ledger implements vendor checkout and order tracking.
package ledger

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/application/txn"
	"github.com/vendorhub/backend/internal/domain/identity"
	"github.com/vendorhub/backend/internal/domain/ledger"
	"github.com/vendorhub/backend/internal/domain/profile"
	"github.com/vendorhub/backend/internal/domain/shared"
	"github.com/vendorhub/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// LedgerService handles vendor orders and supplier shared orders
type LedgerService struct {
	scope          txn.TransactionScope
	accounts       identity.AccountRepository
	vendors        profile.VendorRepository
	orders         ledger.OrderRepository
	sharedOrders   ledger.SharedOrderRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(
	scope txn.TransactionScope,
	accounts identity.AccountRepository,
	vendors profile.VendorRepository,
	orders ledger.OrderRepository,
	sharedOrders ledger.SharedOrderRepository,
	logger *zap.Logger,
) *LedgerService {
	return &LedgerService{
		scope:        scope,
		accounts:     accounts,
		vendors:      vendors,
		orders:       orders,
		sharedOrders: sharedOrders,
		logger:       logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *LedgerService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateOrders turns each cart row into an order with its own number. All
// orders of the cart are written in one transaction.
func (s *LedgerService) CreateOrders(ctx context.Context, vendorID uuid.UUID, req CreateOrdersRequest) (_ []OrderResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "ledger", "create_orders",
		telemetry.SpanAttrVendorID, vendorID.String(),
		telemetry.SpanAttrItemCount, len(req.Items))
	defer func() { telemetry.EndSpan(span, err) }()

	if len(req.Items) == 0 {
		return nil, shared.NewValidationError("at least one item is required")
	}
	items := make([]ledger.LineItem, len(req.Items))
	for i, it := range req.Items {
		if it.Price == nil {
			return nil, shared.NewValidationError("items[%d]: price is required", i)
		}
		items[i] = ledger.LineItem{Name: it.Name, Price: *it.Price, Quantity: it.Quantity}
		if err := items[i].Validate(); err != nil {
			return nil, err
		}
	}

	customer, err := s.customerName(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	orders := make([]*ledger.Order, 0, len(items))
	err = s.scope.Execute(ctx, func(repos txn.TransactionalRepositories) error {
		seq := repos.OrderSequence()
		for _, item := range items {
			n, err := seq.Next(ctx)
			if err != nil {
				return err
			}
			order, err := ledger.NewOrder(ledger.FormatOrderNumber(n), vendorID, customer, item)
			if err != nil {
				return err
			}
			orders = append(orders, order)
		}
		return repos.OrderRepo().CreateBatch(ctx, orders)
	})
	if err != nil {
		return nil, err
	}

	placed := ledger.NewOrdersPlacedEvent(vendorID, orders)
	s.logger.Info("Orders placed",
		zap.String("vendor_id", vendorID.String()),
		zap.Strings("order_numbers", placed.OrderNumbers),
		zap.String("total", placed.Total.String()))
	s.publish(ctx, placed)

	return ToOrderResponses(orders), nil
}

// customerName is the vendor's company name, else the account's full name,
// else its username.
func (s *LedgerService) customerName(ctx context.Context, vendorID uuid.UUID) (string, error) {
	vendor, err := s.vendors.FindByID(ctx, vendorID)
	if err != nil {
		return "", err
	}
	if vendor.CompanyName != "" {
		return vendor.CompanyName, nil
	}
	account, err := s.accounts.FindByID(ctx, vendor.AccountID)
	if err != nil {
		return "", err
	}
	return vendor.CustomerName(account.DisplayName()), nil
}

// ListOrders returns the vendor's open orders and up to five completed ones
func (s *LedgerService) ListOrders(ctx context.Context, vendorID uuid.UUID) (*OrderListResponse, error) {
	orders, err := s.orders.FindByVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	current, recent := ledger.PartitionOrders(orders)
	return &OrderListResponse{
		CurrentOrders: ToOrderResponses(current),
		RecentOrders:  ToOrderResponses(recent),
	}, nil
}

// AdvanceOrder moves one of the vendor's orders to its next stage
func (s *LedgerService) AdvanceOrder(ctx context.Context, vendorID, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orders.FindByIDForVendor(ctx, vendorID, orderID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewNotFoundError("Order not found")
		}
		return nil, err
	}
	if err := order.Advance(); err != nil {
		return nil, err
	}
	if err := s.orders.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}

	events := order.GetDomainEvents()
	order.ClearDomainEvents()
	s.publish(ctx, events...)

	resp := ToOrderResponse(order)
	return &resp, nil
}

// ListSharedOrders returns the supplier's shared orders, newest first
func (s *LedgerService) ListSharedOrders(ctx context.Context, supplierID uuid.UUID) ([]SharedOrderResponse, error) {
	orders, err := s.sharedOrders.FindBySupplier(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	return ToSharedOrderResponses(orders), nil
}

// RecordSharedOrder records a line item the supplier fulfilled for a vendor
func (s *LedgerService) RecordSharedOrder(ctx context.Context, supplierID uuid.UUID, req RecordSharedOrderRequest) (*SharedOrderResponse, error) {
	if req.Amount == nil {
		return nil, shared.NewValidationError("amount is required")
	}
	if _, err := s.vendors.FindByID(ctx, req.VendorID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewNotFoundError("Vendor not found")
		}
		return nil, err
	}

	order, err := ledger.NewSharedOrder(supplierID, req.VendorID, req.OrderNumber, req.ItemName, req.Quantity, *req.Amount)
	if err != nil {
		return nil, err
	}
	if err := s.sharedOrders.Create(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("Shared order recorded",
		zap.String("supplier_id", supplierID.String()),
		zap.String("vendor_id", req.VendorID.String()),
		zap.String("amount", order.Amount.String()))

	events := order.GetDomainEvents()
	order.ClearDomainEvents()
	s.publish(ctx, events...)

	resp := ToSharedOrderResponse(order)
	return &resp, nil
}

// AdvanceSharedOrder moves one of the supplier's shared orders to its next stage
func (s *LedgerService) AdvanceSharedOrder(ctx context.Context, supplierID, id uuid.UUID) (*SharedOrderResponse, error) {
	order, err := s.sharedOrders.FindByIDForSupplier(ctx, supplierID, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewNotFoundError("Order not found")
		}
		return nil, err
	}
	if err := order.Advance(); err != nil {
		return nil, err
	}
	if err := s.sharedOrders.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}

	events := order.GetDomainEvents()
	order.ClearDomainEvents()
	s.publish(ctx, events...)

	resp := ToSharedOrderResponse(order)
	return &resp, nil
}

func (s *LedgerService) publish(ctx context.Context, events ...shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("Failed to publish ledger events", zap.Error(err))
	}
}
