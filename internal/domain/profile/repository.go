package profile

import (
	"context"

	"github.com/google/uuid"
)

// VendorRepository defines persistence operations for vendor profiles
type VendorRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*VendorProfile, error)
	FindByAccountID(ctx context.Context, accountID uuid.UUID) (*VendorProfile, error)
	Create(ctx context.Context, v *VendorProfile) error
	Save(ctx context.Context, v *VendorProfile) error
}

// SupplierRepository defines persistence operations for supplier profiles
type SupplierRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SupplierProfile, error)
	FindByAccountID(ctx context.Context, accountID uuid.UUID) (*SupplierProfile, error)
	ListIDs(ctx context.Context) ([]uuid.UUID, error)
	Create(ctx context.Context, s *SupplierProfile) error
	Save(ctx context.Context, s *SupplierProfile) error
}
