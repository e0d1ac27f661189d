// Package profile serves the account and business profile of the caller.
package profile

import (
	"context"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/application/txn"
	"github.com/vendorhub/backend/internal/domain/identity"
	"github.com/vendorhub/backend/internal/domain/profile"
	"go.uber.org/zap"
)

// ProfileService reads and edits the caller's profile
type ProfileService struct {
	scope     txn.TransactionScope
	accounts  identity.AccountRepository
	vendors   profile.VendorRepository
	suppliers profile.SupplierRepository
	logger    *zap.Logger
}

// NewProfileService creates a new ProfileService
func NewProfileService(
	scope txn.TransactionScope,
	accounts identity.AccountRepository,
	vendors profile.VendorRepository,
	suppliers profile.SupplierRepository,
	logger *zap.Logger,
) *ProfileService {
	return &ProfileService{
		scope:     scope,
		accounts:  accounts,
		vendors:   vendors,
		suppliers: suppliers,
		logger:    logger,
	}
}

// GetProfile returns the account and the profile its role points at
func (s *ProfileService) GetProfile(ctx context.Context, accountID uuid.UUID, role identity.AccountRole) (*ProfileResponse, error) {
	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	resp := toProfileResponse(account)
	switch role.Kind() {
	case identity.RoleVendor:
		v, err := s.vendors.FindByID(ctx, role.ProfileID())
		if err != nil {
			return nil, err
		}
		resp.Vendor = toVendorResponse(v)
	case identity.RoleSupplier:
		sp, err := s.suppliers.FindByID(ctx, role.ProfileID())
		if err != nil {
			return nil, err
		}
		resp.Supplier = toSupplierResponse(sp)
	}
	return resp, nil
}

// UpdateProfile applies a partial update to the account and its profile in
// one transaction.
func (s *ProfileService) UpdateProfile(ctx context.Context, accountID uuid.UUID, role identity.AccountRole, req UpdateProfileRequest) (*ProfileResponse, error) {
	patch := profile.Patch{
		CompanyName: req.CompanyName,
		Address:     req.Address,
		Phone:       req.Phone,
		Website:     req.Website,
	}

	var resp *ProfileResponse
	err := s.scope.Execute(ctx, func(repos txn.TransactionalRepositories) error {
		account, err := repos.AccountRepo().FindByID(ctx, accountID)
		if err != nil {
			return err
		}
		if req.FullName != nil {
			account.SetFullName(*req.FullName)
			if err := repos.AccountRepo().Save(ctx, account); err != nil {
				return err
			}
		}
		resp = toProfileResponse(account)

		switch role.Kind() {
		case identity.RoleVendor:
			v, err := repos.VendorRepo().FindByID(ctx, role.ProfileID())
			if err != nil {
				return err
			}
			v.Apply(patch)
			if err := repos.VendorRepo().Save(ctx, v); err != nil {
				return err
			}
			resp.Vendor = toVendorResponse(v)
		case identity.RoleSupplier:
			sp, err := repos.SupplierRepo().FindByID(ctx, role.ProfileID())
			if err != nil {
				return err
			}
			sp.Apply(patch)
			if err := repos.SupplierRepo().Save(ctx, sp); err != nil {
				return err
			}
			resp.Supplier = toSupplierResponse(sp)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Profile updated",
		zap.String("account_id", accountID.String()),
		zap.String("role", string(role.Kind())))
	return resp, nil
}
