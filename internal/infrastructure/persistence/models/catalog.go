package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vendorhub/backend/internal/domain/catalog"
)

// ProductModel is the persistence model for the Product aggregate
type ProductModel struct {
	AggregateModel
	ExternalID      *int64                `gorm:"uniqueIndex:idx_products_external_id"`
	Name            string                `gorm:"type:varchar(255);not null"`
	Category        string                `gorm:"type:varchar(100);not null"`
	CategoryKey     string                `gorm:"type:varchar(100);not null;index:idx_products_category_key"`
	Price           decimal.Decimal       `gorm:"type:decimal(10,2);not null;default:0"`
	Rating          float64               `gorm:"not null;default:0"`
	RatingCount     int                   `gorm:"not null;default:0"`
	ImageURL        string                `gorm:"column:image_url;type:text;not null;default:''"`
	Badge           string                `gorm:"type:varchar(50);not null;default:''"`
	SupplierName    string                `gorm:"type:varchar(255);not null;default:''"`
	SupplierImage   string                `gorm:"type:text;not null;default:''"`
	Description     string                `gorm:"type:text;not null;default:''"`
	Origin          catalog.ProductOrigin `gorm:"type:varchar(20);not null;default:'feed'"`
	OwnerSupplierID *uuid.UUID            `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseAggregateRoot: m.ToAggregateRoot(),
		ExternalID:        m.ExternalID,
		Name:              m.Name,
		Category:          m.Category,
		CategoryKey:       m.CategoryKey,
		Price:             m.Price,
		Rating:            m.Rating,
		RatingCount:       m.RatingCount,
		ImageURL:          m.ImageURL,
		Badge:             m.Badge,
		SupplierName:      m.SupplierName,
		SupplierImage:     m.SupplierImage,
		Description:       m.Description,
		Origin:            m.Origin,
		OwnerSupplierID:   m.OwnerSupplierID,
	}
}

// FromDomain populates the persistence model from a domain Product
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.ExternalID = p.ExternalID
	m.Name = p.Name
	m.Category = p.Category
	m.CategoryKey = p.CategoryKey
	m.Price = p.Price
	m.Rating = p.Rating
	m.RatingCount = p.RatingCount
	m.ImageURL = p.ImageURL
	m.Badge = p.Badge
	m.SupplierName = p.SupplierName
	m.SupplierImage = p.SupplierImage
	m.Description = p.Description
	m.Origin = p.Origin
	m.OwnerSupplierID = p.OwnerSupplierID
}

// ProductModelFromDomain creates a new persistence model from a domain Product
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}

// InventoryEntryModel is the persistence model for supplier inventory
type InventoryEntryModel struct {
	AggregateModel
	SupplierID    uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_supplier_inventory_supplier_product,priority:1"`
	ProductID     uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_supplier_inventory_supplier_product,priority:2;index"`
	StockQuantity int              `gorm:"not null;default:0"`
	CustomPrice   *decimal.Decimal `gorm:"type:decimal(10,2)"`
	AddedOn       time.Time        `gorm:"not null"`
}

// TableName returns the table name for GORM
func (InventoryEntryModel) TableName() string {
	return "supplier_inventory"
}

// ToDomain converts the persistence model to a domain InventoryEntry
func (m *InventoryEntryModel) ToDomain() *catalog.InventoryEntry {
	return &catalog.InventoryEntry{
		BaseAggregateRoot: m.ToAggregateRoot(),
		SupplierID:        m.SupplierID,
		ProductID:         m.ProductID,
		StockQuantity:     m.StockQuantity,
		CustomPrice:       m.CustomPrice,
		AddedOn:           m.AddedOn,
	}
}

// FromDomain populates the persistence model from a domain InventoryEntry
func (m *InventoryEntryModel) FromDomain(e *catalog.InventoryEntry) {
	m.FromDomainAggregateRoot(e.BaseAggregateRoot)
	m.SupplierID = e.SupplierID
	m.ProductID = e.ProductID
	m.StockQuantity = e.StockQuantity
	m.CustomPrice = e.CustomPrice
	m.AddedOn = e.AddedOn
}

// InventoryEntryModelFromDomain creates a new persistence model from a domain InventoryEntry
func InventoryEntryModelFromDomain(e *catalog.InventoryEntry) *InventoryEntryModel {
	m := &InventoryEntryModel{}
	m.FromDomain(e)
	return m
}
