package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vendorhub/backend/internal/domain/shared"
	"golang.org/x/text/cases"
)

// ProductOrigin records who owns a product's lifecycle
type ProductOrigin string

const (
	// ProductOriginFeed products come from the catalog feed and outlive any inventory entry
	ProductOriginFeed ProductOrigin = "feed"
	// ProductOriginSupplier products were created by a supplier and go away with their last reference
	ProductOriginSupplier ProductOrigin = "supplier"
)

const (
	DefaultProductImage  = "https://cdn-icons-png.flaticon.com/512/3081/3081559.png"
	DefaultSupplierImage = "https://randomuser.me/api/portraits/men/1.jpg"
)

// ProductDetails are the descriptive fields of a product
type ProductDetails struct {
	Name          string
	Category      string
	Price         decimal.Decimal
	Rating        float64
	RatingCount   int
	ImageURL      string
	Badge         string
	SupplierName  string
	SupplierImage string
	Description   string
}

// Product is a global catalog entry visible to every vendor
type Product struct {
	shared.BaseAggregateRoot
	ExternalID      *int64
	Name            string
	Category        string
	CategoryKey     string
	Price           decimal.Decimal
	Rating          float64
	RatingCount     int
	ImageURL        string
	Badge           string
	SupplierName    string
	SupplierImage   string
	Description     string
	Origin          ProductOrigin
	OwnerSupplierID *uuid.UUID
}

// NewSupplierProduct creates a product listed by a supplier
func NewSupplierProduct(supplierID uuid.UUID, details ProductDetails) (*Product, error) {
	if supplierID == uuid.Nil {
		return nil, shared.NewValidationError("supplier is required")
	}
	if details.ImageURL == "" {
		details.ImageURL = DefaultProductImage
	}
	if details.SupplierImage == "" {
		details.SupplierImage = DefaultSupplierImage
	}

	p := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Origin:            ProductOriginSupplier,
		OwnerSupplierID:   &supplierID,
	}
	if err := p.setDetails(details); err != nil {
		return nil, err
	}
	return p, nil
}

// NewFeedProduct creates a product from a catalog feed row
func NewFeedProduct(externalID int64, details ProductDetails) (*Product, error) {
	p := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ExternalID:        &externalID,
		Origin:            ProductOriginFeed,
	}
	if err := p.setDetails(details); err != nil {
		return nil, err
	}
	return p, nil
}

// ApplyFeed overwrites the descriptive fields from a newer feed row
func (p *Product) ApplyFeed(details ProductDetails) error {
	if err := p.setDetails(details); err != nil {
		return err
	}
	p.Touch()
	p.IncrementVersion()
	return nil
}

// DeletableWhenUnreferenced reports whether the product should be removed
// once no inventory entry points at it.
func (p *Product) DeletableWhenUnreferenced() bool {
	return p.Origin == ProductOriginSupplier
}

func (p *Product) setDetails(d ProductDetails) error {
	name := strings.TrimSpace(d.Name)
	category := strings.TrimSpace(d.Category)
	switch {
	case name == "":
		return shared.NewValidationError("name is required")
	case len(name) > 255:
		return shared.NewValidationError("name cannot exceed 255 characters")
	case category == "":
		return shared.NewValidationError("category is required")
	case len(category) > 100:
		return shared.NewValidationError("category cannot exceed 100 characters")
	case d.Rating < 0 || d.RatingCount < 0:
		return shared.NewValidationError("rating cannot be negative")
	}

	if err := shared.ValidateMoney("price", d.Price); err != nil {
		return err
	}

	p.Name = name
	p.Category = category
	p.CategoryKey = CategoryKey(category)
	p.Price = d.Price
	p.Rating = d.Rating
	p.RatingCount = d.RatingCount
	p.ImageURL = strings.TrimSpace(d.ImageURL)
	p.Badge = strings.TrimSpace(d.Badge)
	p.SupplierName = strings.TrimSpace(d.SupplierName)
	p.SupplierImage = strings.TrimSpace(d.SupplierImage)
	p.Description = d.Description
	return nil
}

// CategoryKey returns the case-folded form used for case-insensitive
// category matching. "Hardware", "HARDWARE" and "hardware" share a key.
func CategoryKey(category string) string {
	return cases.Fold().String(strings.TrimSpace(category))
}
