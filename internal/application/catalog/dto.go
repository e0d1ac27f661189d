package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vendorhub/backend/internal/domain/catalog"
)

// AddProductRequest creates a product and stocks it in one step.
// Name, category, price and stock_quantity are required.
type AddProductRequest struct {
	Name          string           `json:"name" binding:"required,max=255"`
	Category      string           `json:"category" binding:"required,max=100"`
	Price         *decimal.Decimal `json:"price" binding:"required"`
	StockQuantity *int             `json:"stock_quantity" binding:"required,min=0"`
	CustomPrice   *decimal.Decimal `json:"custom_price"`
	Rating        float64          `json:"rating" binding:"min=0,max=5"`
	RatingCount   int              `json:"rating_count" binding:"min=0"`
	Image         string           `json:"image" binding:"omitempty,url,max=500"`
	Badge         string           `json:"badge" binding:"max=50"`
	SupplierImage string           `json:"supplier_image" binding:"omitempty,url,max=500"`
	Description   string           `json:"description" binding:"max=5000"`
}

// AttachProductRequest stocks an existing catalog product
type AttachProductRequest struct {
	ProductID     uuid.UUID        `json:"product_id" binding:"required"`
	StockQuantity int              `json:"stock_quantity" binding:"min=0"`
	CustomPrice   *decimal.Decimal `json:"custom_price"`
}

// UpdateInventoryRequest is a partial update; omitted fields keep their value
type UpdateInventoryRequest struct {
	StockQuantity *int             `json:"stock_quantity" binding:"omitempty,min=0"`
	Price         *decimal.Decimal `json:"price"`
}

// ProductResponse represents a catalog product in API responses
type ProductResponse struct {
	ID            uuid.UUID       `json:"id"`
	ExternalID    *int64          `json:"external_id,omitempty"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	Rating        float64         `json:"rating"`
	RatingCount   int             `json:"rating_count"`
	Category      string          `json:"category"`
	Image         string          `json:"image"`
	Badge         string          `json:"badge"`
	Supplier      string          `json:"supplier"`
	SupplierImage string          `json:"supplier_image"`
	Description   string          `json:"description"`
}

// InventoryItemResponse is an inventory entry joined with its product.
// Price is the effective price vendors see.
type InventoryItemResponse struct {
	ID            uuid.UUID        `json:"id"`
	ProductID     uuid.UUID        `json:"product_id"`
	ProductName   string           `json:"product_name"`
	Category      string           `json:"category"`
	Price         decimal.Decimal  `json:"price"`
	BasePrice     decimal.Decimal  `json:"base_price"`
	CustomPrice   *decimal.Decimal `json:"custom_price"`
	StockQuantity int              `json:"stock_quantity"`
	Image         string           `json:"image"`
	Description   string           `json:"description"`
	AddedOn       time.Time        `json:"added_on"`
	Version       int              `json:"version"`
}

// DeleteInventoryResult reports what a delete removed
type DeleteInventoryResult struct {
	ID             uuid.UUID `json:"id"`
	ProductID      uuid.UUID `json:"product_id"`
	ProductDeleted bool      `json:"product_deleted"`
}

// ToProductResponse converts a domain product
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		ExternalID:    p.ExternalID,
		Name:          p.Name,
		Price:         p.Price,
		Rating:        p.Rating,
		RatingCount:   p.RatingCount,
		Category:      p.Category,
		Image:         p.ImageURL,
		Badge:         p.Badge,
		Supplier:      p.SupplierName,
		SupplierImage: p.SupplierImage,
		Description:   p.Description,
	}
}

// ToProductResponses converts a slice of domain products
func ToProductResponses(products []*catalog.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i, p := range products {
		out[i] = ToProductResponse(p)
	}
	return out
}

// ToInventoryItemResponse joins an entry with its product
func ToInventoryItemResponse(e *catalog.InventoryEntry, p *catalog.Product) InventoryItemResponse {
	return InventoryItemResponse{
		ID:            e.ID,
		ProductID:     p.ID,
		ProductName:   p.Name,
		Category:      p.Category,
		Price:         catalog.EffectivePrice(e, p),
		BasePrice:     p.Price,
		CustomPrice:   e.CustomPrice,
		StockQuantity: e.StockQuantity,
		Image:         p.ImageURL,
		Description:   p.Description,
		AddedOn:       e.AddedOn,
		Version:       e.Version,
	}
}
