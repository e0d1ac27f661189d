// Package catalog implements the supplier inventory and product listing use cases.
package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/application/txn"
	"github.com/vendorhub/backend/internal/domain/catalog"
	"github.com/vendorhub/backend/internal/domain/profile"
	"github.com/vendorhub/backend/internal/domain/shared"
	"github.com/vendorhub/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

var errItemNotFound = shared.NewNotFoundError("Item not found or unauthorized.")

// CatalogService handles products and supplier inventory
type CatalogService struct {
	scope          txn.TransactionScope
	products       catalog.ProductRepository
	inventory      catalog.InventoryRepository
	suppliers      profile.SupplierRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(
	scope txn.TransactionScope,
	products catalog.ProductRepository,
	inventory catalog.InventoryRepository,
	suppliers profile.SupplierRepository,
	logger *zap.Logger,
) *CatalogService {
	return &CatalogService{
		scope:     scope,
		products:  products,
		inventory: inventory,
		suppliers: suppliers,
		logger:    logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *CatalogService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// AddProduct creates a product owned by the supplier and stocks it
func (s *CatalogService) AddProduct(ctx context.Context, supplierID uuid.UUID, req AddProductRequest) (_ *InventoryItemResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "catalog", "add_product", telemetry.SpanAttrSupplierID, supplierID.String())
	defer func() { telemetry.EndSpan(span, err) }()

	if req.Price == nil {
		return nil, shared.NewValidationError("price is required")
	}
	if req.StockQuantity == nil {
		return nil, shared.NewValidationError("stock_quantity is required")
	}

	supplier, err := s.suppliers.FindByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	product, err := catalog.NewSupplierProduct(supplierID, catalog.ProductDetails{
		Name:          req.Name,
		Category:      req.Category,
		Price:         *req.Price,
		Rating:        req.Rating,
		RatingCount:   req.RatingCount,
		ImageURL:      req.Image,
		Badge:         req.Badge,
		SupplierName:  supplier.DisplayName(),
		SupplierImage: req.SupplierImage,
		Description:   req.Description,
	})
	if err != nil {
		return nil, err
	}
	entry, err := catalog.NewInventoryEntry(supplierID, product.ID, *req.StockQuantity, req.CustomPrice)
	if err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos txn.TransactionalRepositories) error {
		if err := repos.ProductRepo().Create(ctx, product); err != nil {
			return err
		}
		return repos.InventoryRepo().Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Product added to inventory",
		zap.String("supplier_id", supplierID.String()),
		zap.String("product_id", product.ID.String()),
		zap.Int("stock_quantity", entry.StockQuantity))
	s.publish(ctx, catalog.NewProductAddedEvent(product, entry))

	resp := ToInventoryItemResponse(entry, product)
	return &resp, nil
}

// AttachProduct stocks an existing catalog product for the supplier
func (s *CatalogService) AttachProduct(ctx context.Context, supplierID uuid.UUID, req AttachProductRequest) (*InventoryItemResponse, error) {
	product, err := s.products.FindByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewNotFoundError("Product not found")
		}
		return nil, err
	}

	exists, err := s.inventory.ExistsForProduct(ctx, supplierID, product.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewValidationError("Product is already in your inventory")
	}

	entry, err := catalog.NewInventoryEntry(supplierID, product.ID, req.StockQuantity, req.CustomPrice)
	if err != nil {
		return nil, err
	}
	if err := s.inventory.Create(ctx, entry); err != nil {
		return nil, err
	}

	s.publish(ctx, catalog.NewProductAddedEvent(product, entry))

	resp := ToInventoryItemResponse(entry, product)
	return &resp, nil
}

// UpdateInventory applies a partial stock and price update to one of the
// supplier's entries. Entries of other suppliers are reported as not found.
func (s *CatalogService) UpdateInventory(ctx context.Context, supplierID, itemID uuid.UUID, req UpdateInventoryRequest) (*InventoryItemResponse, error) {
	entry, err := s.findEntry(ctx, supplierID, itemID)
	if err != nil {
		return nil, err
	}

	update := catalog.InventoryUpdate{Stock: req.StockQuantity, Price: req.Price}
	if err := entry.Apply(update); err != nil {
		return nil, err
	}

	if !update.IsEmpty() {
		if err := s.inventory.SaveWithLock(ctx, entry); err != nil {
			return nil, err
		}
		s.logger.Info("Inventory updated",
			zap.String("supplier_id", supplierID.String()),
			zap.String("item_id", itemID.String()),
			zap.Int("version", entry.Version))
		s.publishEntryEvents(ctx, entry)
	}

	product, err := s.products.FindByID(ctx, entry.ProductID)
	if err != nil {
		return nil, err
	}
	resp := ToInventoryItemResponse(entry, product)
	return &resp, nil
}

// DeleteInventory removes one of the supplier's entries. The product goes
// with it only when it was created by a supplier and nothing else stocks it.
func (s *CatalogService) DeleteInventory(ctx context.Context, supplierID, itemID uuid.UUID) (_ *DeleteInventoryResult, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "catalog", "delete_inventory", telemetry.SpanAttrSupplierID, supplierID.String())
	defer func() { telemetry.EndSpan(span, err) }()

	var (
		entry          *catalog.InventoryEntry
		productDeleted bool
	)
	err = s.scope.Execute(ctx, func(repos txn.TransactionalRepositories) error {
		var err error
		entry, err = repos.InventoryRepo().FindByIDForSupplier(ctx, supplierID, itemID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return errItemNotFound
			}
			return err
		}
		if err := repos.InventoryRepo().Delete(ctx, entry.ID); err != nil {
			return err
		}

		product, err := repos.ProductRepo().FindByID(ctx, entry.ProductID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil
			}
			return err
		}
		if !product.DeletableWhenUnreferenced() {
			return nil
		}
		refs, err := repos.InventoryRepo().CountByProduct(ctx, product.ID)
		if err != nil {
			return err
		}
		if refs > 0 {
			return nil
		}
		if err := repos.ProductRepo().Delete(ctx, product.ID); err != nil {
			return err
		}
		productDeleted = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Inventory entry deleted",
		zap.String("supplier_id", supplierID.String()),
		zap.String("item_id", itemID.String()),
		zap.Bool("product_deleted", productDeleted))
	s.publish(ctx, catalog.NewInventoryRemovedEvent(entry, productDeleted))

	return &DeleteInventoryResult{
		ID:             entry.ID,
		ProductID:      entry.ProductID,
		ProductDeleted: productDeleted,
	}, nil
}

// ListInventory returns the supplier's entries joined with their products.
// Entries whose product is gone are skipped.
func (s *CatalogService) ListInventory(ctx context.Context, supplierID uuid.UUID) ([]InventoryItemResponse, error) {
	entries, err := s.inventory.FindBySupplier(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return []InventoryItemResponse{}, nil
	}

	ids := make([]uuid.UUID, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ProductID)
	}
	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	items := make([]InventoryItemResponse, 0, len(entries))
	for _, e := range entries {
		p, ok := byID[e.ProductID]
		if !ok {
			continue
		}
		items = append(items, ToInventoryItemResponse(e, p))
	}
	return items, nil
}

// ListProducts returns the catalog, optionally restricted to one category.
// The category match ignores case.
func (s *CatalogService) ListProducts(ctx context.Context, category string) ([]ProductResponse, error) {
	var filter catalog.ProductFilter
	if category != "" {
		filter.CategoryKey = catalog.CategoryKey(category)
	}
	products, err := s.products.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToProductResponses(products), nil
}

func (s *CatalogService) findEntry(ctx context.Context, supplierID, itemID uuid.UUID) (*catalog.InventoryEntry, error) {
	entry, err := s.inventory.FindByIDForSupplier(ctx, supplierID, itemID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, errItemNotFound
		}
		return nil, err
	}
	return entry, nil
}

func (s *CatalogService) publishEntryEvents(ctx context.Context, entry *catalog.InventoryEntry) {
	events := entry.GetDomainEvents()
	entry.ClearDomainEvents()
	s.publish(ctx, events...)
}

func (s *CatalogService) publish(ctx context.Context, events ...shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("Failed to publish catalog events", zap.Error(err))
	}
}
