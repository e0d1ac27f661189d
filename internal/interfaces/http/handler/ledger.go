package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/vendorhub/backend/internal/application/ledger"
)

// LedgerHandler serves vendor orders and supplier shared orders
type LedgerHandler struct {
	BaseHandler
	ledgerService *ledger.LedgerService
}

// NewLedgerHandler creates a new ledger handler
func NewLedgerHandler(ledgerService *ledger.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService}
}

// ListOrders godoc
// @Summary      List own orders
// @Description  Open orders plus the five most recent completed ones
// @Tags         orders
// @Produce      json
// @Success      200 {object} APIResponse[ledger.OrderListResponse]
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /orders [get]
func (h *LedgerHandler) ListOrders(c *gin.Context) {
	vendorID, ok := h.VendorID(c)
	if !ok {
		return
	}
	resp, err := h.ledgerService.ListOrders(c.Request.Context(), vendorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// CreateOrders godoc
// @Summary      Check out a cart
// @Description  One order per line item, all or nothing
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        request body ledger.CreateOrdersRequest true "Cart"
// @Success      201 {object} APIResponse[[]ledger.OrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /orders [post]
func (h *LedgerHandler) CreateOrders(c *gin.Context) {
	vendorID, ok := h.VendorID(c)
	if !ok {
		return
	}
	var req ledger.CreateOrdersRequest
	if !h.BindJSON(c, &req) {
		return
	}

	orders, err := h.ledgerService.CreateOrders(c.Request.Context(), vendorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, orders)
}

// AdvanceOrder godoc
// @Summary      Advance order progress
// @Description  new -> processing -> completed
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID"
// @Success      200 {object} APIResponse[ledger.OrderResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /orders/{id}/progress [put]
func (h *LedgerHandler) AdvanceOrder(c *gin.Context) {
	vendorID, ok := h.VendorID(c)
	if !ok {
		return
	}
	orderID, ok := h.PathID(c)
	if !ok {
		return
	}

	order, err := h.ledgerService.AdvanceOrder(c.Request.Context(), vendorID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// ListSharedOrders godoc
// @Summary      List own shared orders
// @Tags         supplier-orders
// @Produce      json
// @Success      200 {object} APIResponse[[]ledger.SharedOrderResponse]
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /supplier/orders [get]
func (h *LedgerHandler) ListSharedOrders(c *gin.Context) {
	supplierID, ok := h.SupplierID(c)
	if !ok {
		return
	}
	orders, err := h.ledgerService.ListSharedOrders(c.Request.Context(), supplierID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, orders, len(orders))
}

// RecordSharedOrder godoc
// @Summary      Record a shared order
// @Tags         supplier-orders
// @Accept       json
// @Produce      json
// @Param        request body ledger.RecordSharedOrderRequest true "Shared order"
// @Success      201 {object} APIResponse[ledger.SharedOrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /supplier/orders [post]
func (h *LedgerHandler) RecordSharedOrder(c *gin.Context) {
	supplierID, ok := h.SupplierID(c)
	if !ok {
		return
	}
	var req ledger.RecordSharedOrderRequest
	if !h.BindJSON(c, &req) {
		return
	}

	order, err := h.ledgerService.RecordSharedOrder(c.Request.Context(), supplierID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// AdvanceSharedOrder godoc
// @Summary      Advance shared order progress
// @Tags         supplier-orders
// @Produce      json
// @Param        id path string true "Shared order ID"
// @Success      200 {object} APIResponse[ledger.SharedOrderResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /supplier/orders/{id}/progress [put]
func (h *LedgerHandler) AdvanceSharedOrder(c *gin.Context) {
	supplierID, ok := h.SupplierID(c)
	if !ok {
		return
	}
	id, ok := h.PathID(c)
	if !ok {
		return
	}

	order, err := h.ledgerService.AdvanceSharedOrder(c.Request.Context(), supplierID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}
