package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/vendorhub/backend/internal/application/catalog"
)

// CatalogHandler serves the product catalog and supplier inventory
type CatalogHandler struct {
	BaseHandler
	catalogService *catalog.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *catalog.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListProducts godoc
// @Summary      List catalog products
// @Description  Category matching ignores case
// @Tags         products
// @Produce      json
// @Param        category query string false "Category filter"
// @Success      200 {object} APIResponse[[]catalog.ProductResponse]
// @Security     BearerAuth
// @Router       /products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	products, err := h.catalogService.ListProducts(c.Request.Context(), c.Query("category"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, products, len(products))
}

// ListInventory godoc
// @Summary      List own inventory
// @Tags         inventory
// @Produce      json
// @Success      200 {object} APIResponse[[]catalog.InventoryItemResponse]
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /supplier/inventory [get]
func (h *CatalogHandler) ListInventory(c *gin.Context) {
	supplierID, ok := h.SupplierID(c)
	if !ok {
		return
	}
	items, err := h.catalogService.ListInventory(c.Request.Context(), supplierID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, items, len(items))
}

// AddProduct godoc
// @Summary      Add a product to own inventory
// @Description  Creates the catalog product and its inventory entry in one step
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        request body catalog.AddProductRequest true "Product and stock"
// @Success      201 {object} APIResponse[catalog.InventoryItemResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /supplier/inventory [post]
func (h *CatalogHandler) AddProduct(c *gin.Context) {
	supplierID, ok := h.SupplierID(c)
	if !ok {
		return
	}
	var req catalog.AddProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	item, err := h.catalogService.AddProduct(c.Request.Context(), supplierID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

// AttachProduct godoc
// @Summary      Stock an existing catalog product
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        request body catalog.AttachProductRequest true "Product and stock"
// @Success      201 {object} APIResponse[catalog.InventoryItemResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /supplier/inventory/attach [post]
func (h *CatalogHandler) AttachProduct(c *gin.Context) {
	supplierID, ok := h.SupplierID(c)
	if !ok {
		return
	}
	var req catalog.AttachProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	item, err := h.catalogService.AttachProduct(c.Request.Context(), supplierID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

// UpdateInventory godoc
// @Summary      Update stock and/or custom price
// @Description  Omitted fields are left unchanged; a price of 0 is applied
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id path string true "Inventory entry ID"
// @Param        request body catalog.UpdateInventoryRequest true "Fields to change"
// @Success      200 {object} APIResponse[catalog.InventoryItemResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /supplier/inventory/{id} [put]
func (h *CatalogHandler) UpdateInventory(c *gin.Context) {
	supplierID, ok := h.SupplierID(c)
	if !ok {
		return
	}
	itemID, ok := h.PathID(c)
	if !ok {
		return
	}
	var req catalog.UpdateInventoryRequest
	if !h.BindJSON(c, &req) {
		return
	}

	item, err := h.catalogService.UpdateInventory(c.Request.Context(), supplierID, itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// DeleteInventory godoc
// @Summary      Remove an inventory entry
// @Description  A supplier-created product goes with its last entry
// @Tags         inventory
// @Produce      json
// @Param        id path string true "Inventory entry ID"
// @Success      200 {object} APIResponse[catalog.DeleteInventoryResult]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /supplier/inventory/{id} [delete]
func (h *CatalogHandler) DeleteInventory(c *gin.Context) {
	supplierID, ok := h.SupplierID(c)
	if !ok {
		return
	}
	itemID, ok := h.PathID(c)
	if !ok {
		return
	}

	result, err := h.catalogService.DeleteInventory(c.Request.Context(), supplierID, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
