package ledger

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vendorhub/backend/internal/domain/ledger"
)

// LineItemRequest is one cart row
type LineItemRequest struct {
	Name     string          `json:"name" binding:"required,max=255"`
	Price    *decimal.Decimal `json:"price" binding:"required"`
	Quantity int              `json:"quantity" binding:"required,min=1"`
}

// CreateOrdersRequest checks out a vendor cart. The rows may be sent under
// "items" or, as older clients do, under "cart".
type CreateOrdersRequest struct {
	Items []LineItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UnmarshalJSON accepts the "cart" key when "items" is absent
func (r *CreateOrdersRequest) UnmarshalJSON(data []byte) error {
	var body struct {
		Items []LineItemRequest `json:"items"`
		Cart  []LineItemRequest `json:"cart"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return err
	}
	r.Items = body.Items
	if r.Items == nil {
		r.Items = body.Cart
	}
	return nil
}

// RecordSharedOrderRequest records a fulfilled line item for a vendor
type RecordSharedOrderRequest struct {
	VendorID    uuid.UUID        `json:"vendor_id" binding:"required"`
	OrderNumber string           `json:"order_number" binding:"max=50"`
	ItemName    string           `json:"item_name" binding:"required,max=255"`
	Quantity    int              `json:"quantity" binding:"required,min=1"`
	Amount      *decimal.Decimal `json:"amount" binding:"required"`
}

// OrderResponse represents a vendor order in API responses
type OrderResponse struct {
	ID          uuid.UUID       `json:"id"`
	OrderNumber string          `json:"order_id"`
	Customer    string          `json:"customer"`
	ItemName    string          `json:"item_name"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Progress    int             `json:"progress"`
	Status      string          `json:"status"`
	Version     int             `json:"version"`
}

// OrderListResponse splits a vendor's orders into open and recently completed
type OrderListResponse struct {
	CurrentOrders []OrderResponse `json:"current_orders"`
	RecentOrders  []OrderResponse `json:"recent_orders"`
}

// SharedOrderResponse represents a shared order in API responses
type SharedOrderResponse struct {
	ID          uuid.UUID       `json:"id"`
	VendorID    uuid.UUID       `json:"vendor_id"`
	OrderNumber string          `json:"order_id"`
	ItemName    string          `json:"item_name"`
	Quantity    int             `json:"quantity"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Progress    int             `json:"progress"`
	Status      string          `json:"status"`
	Version     int             `json:"version"`
}

// ToOrderResponse converts a domain order
func ToOrderResponse(o *ledger.Order) OrderResponse {
	return OrderResponse{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		Customer:    o.Customer,
		ItemName:    o.ItemName,
		Amount:      o.Amount,
		Date:        o.Date,
		Progress:    int(o.Progress),
		Status:      o.Progress.String(),
		Version:     o.Version,
	}
}

// ToOrderResponses converts a slice of domain orders
func ToOrderResponses(orders []*ledger.Order) []OrderResponse {
	out := make([]OrderResponse, len(orders))
	for i, o := range orders {
		out[i] = ToOrderResponse(o)
	}
	return out
}

// ToSharedOrderResponse converts a domain shared order
func ToSharedOrderResponse(o *ledger.SharedOrder) SharedOrderResponse {
	return SharedOrderResponse{
		ID:          o.ID,
		VendorID:    o.VendorID,
		OrderNumber: o.OrderNumber,
		ItemName:    o.ItemName,
		Quantity:    o.Quantity,
		Amount:      o.Amount,
		Date:        o.Date,
		Progress:    int(o.Progress),
		Status:      o.Progress.String(),
		Version:     o.Version,
	}
}

// ToSharedOrderResponses converts a slice of domain shared orders
func ToSharedOrderResponses(orders []*ledger.SharedOrder) []SharedOrderResponse {
	out := make([]SharedOrderResponse, len(orders))
	for i, o := range orders {
		out[i] = ToSharedOrderResponse(o)
	}
	return out
}
