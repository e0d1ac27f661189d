package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/profile"
	"github.com/vendorhub/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormVendorRepository implements VendorRepository using GORM
type GormVendorRepository struct {
	db *gorm.DB
}

// NewGormVendorRepository creates a new GormVendorRepository
func NewGormVendorRepository(db *gorm.DB) *GormVendorRepository {
	return &GormVendorRepository{db: db}
}

// FindByID finds a vendor profile by its ID
func (r *GormVendorRepository) FindByID(ctx context.Context, id uuid.UUID) (*profile.VendorProfile, error) {
	var model models.VendorProfileModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "vendor")
	}
	return model.ToDomain(), nil
}

// FindByAccountID finds the vendor profile owned by an account
func (r *GormVendorRepository) FindByAccountID(ctx context.Context, accountID uuid.UUID) (*profile.VendorProfile, error) {
	var model models.VendorProfileModel
	if err := r.db.WithContext(ctx).First(&model, "account_id = ?", accountID).Error; err != nil {
		return nil, translateError(err, "vendor")
	}
	return model.ToDomain(), nil
}

// Create inserts a new vendor profile
func (r *GormVendorRepository) Create(ctx context.Context, v *profile.VendorProfile) error {
	var model models.VendorProfileModel
	model.FromDomain(v)
	return translateError(r.db.WithContext(ctx).Create(&model).Error, "vendor profile")
}

// Save updates an existing vendor profile
func (r *GormVendorRepository) Save(ctx context.Context, v *profile.VendorProfile) error {
	var model models.VendorProfileModel
	model.FromDomain(v)
	return r.db.WithContext(ctx).Save(&model).Error
}

// GormSupplierRepository implements SupplierRepository using GORM
type GormSupplierRepository struct {
	db *gorm.DB
}

// NewGormSupplierRepository creates a new GormSupplierRepository
func NewGormSupplierRepository(db *gorm.DB) *GormSupplierRepository {
	return &GormSupplierRepository{db: db}
}

// FindByID finds a supplier profile by its ID
func (r *GormSupplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*profile.SupplierProfile, error) {
	var model models.SupplierProfileModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "supplier")
	}
	return model.ToDomain(), nil
}

// FindByAccountID finds the supplier profile owned by an account
func (r *GormSupplierRepository) FindByAccountID(ctx context.Context, accountID uuid.UUID) (*profile.SupplierProfile, error) {
	var model models.SupplierProfileModel
	if err := r.db.WithContext(ctx).First(&model, "account_id = ?", accountID).Error; err != nil {
		return nil, translateError(err, "supplier")
	}
	return model.ToDomain(), nil
}

// ListIDs returns every supplier profile ID
func (r *GormSupplierRepository) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&models.SupplierProfileModel{}).
		Order("created_at ASC").
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// Create inserts a new supplier profile
func (r *GormSupplierRepository) Create(ctx context.Context, s *profile.SupplierProfile) error {
	var model models.SupplierProfileModel
	model.FromDomain(s)
	return translateError(r.db.WithContext(ctx).Create(&model).Error, "supplier profile")
}

// Save updates an existing supplier profile
func (r *GormSupplierRepository) Save(ctx context.Context, s *profile.SupplierProfile) error {
	var model models.SupplierProfileModel
	model.FromDomain(s)
	return r.db.WithContext(ctx).Save(&model).Error
}

var (
	_ profile.VendorRepository   = (*GormVendorRepository)(nil)
	_ profile.SupplierRepository = (*GormSupplierRepository)(nil)
)
