package identity

import (
	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/shared"
)

// RoleKind names the marketplace side an account belongs to
type RoleKind string

const (
	RoleVendor   RoleKind = "vendor"
	RoleSupplier RoleKind = "supplier"
)

// IsValid returns true if the kind is a known role
func (k RoleKind) IsValid() bool {
	return k == RoleVendor || k == RoleSupplier
}

// ParseRoleKind parses a role name
func ParseRoleKind(s string) (RoleKind, error) {
	k := RoleKind(s)
	if !k.IsValid() {
		return "", shared.NewValidationError("role must be one of: vendor, supplier")
	}
	return k, nil
}

// AccountRole is either Vendor(profileID) or Supplier(profileID).
// It is resolved once when a request is authenticated and then passed
// around by value; the zero value is no role at all.
type AccountRole struct {
	kind      RoleKind
	profileID uuid.UUID
}

// VendorRole builds the vendor variant
func VendorRole(vendorID uuid.UUID) AccountRole {
	return AccountRole{kind: RoleVendor, profileID: vendorID}
}

// SupplierRole builds the supplier variant
func SupplierRole(supplierID uuid.UUID) AccountRole {
	return AccountRole{kind: RoleSupplier, profileID: supplierID}
}

// NewAccountRole builds a role from its serialized parts
func NewAccountRole(kind RoleKind, profileID uuid.UUID) (AccountRole, error) {
	if !kind.IsValid() || profileID == uuid.Nil {
		return AccountRole{}, shared.NewValidationError("invalid account role")
	}
	return AccountRole{kind: kind, profileID: profileID}, nil
}

func (r AccountRole) Kind() RoleKind       { return r.kind }
func (r AccountRole) ProfileID() uuid.UUID { return r.profileID }

// IsZero reports whether no role has been resolved
func (r AccountRole) IsZero() bool {
	return r.kind == ""
}

// Vendor returns the vendor profile ID, or an authorization error for suppliers
func (r AccountRole) Vendor() (uuid.UUID, error) {
	if r.kind != RoleVendor {
		return uuid.Nil, shared.NewAuthorizationError("Only vendors can perform this action")
	}
	return r.profileID, nil
}

// Supplier returns the supplier profile ID, or an authorization error for vendors
func (r AccountRole) Supplier() (uuid.UUID, error) {
	if r.kind != RoleSupplier {
		return uuid.Nil, shared.NewAuthorizationError("Only suppliers can perform this action")
	}
	return r.profileID, nil
}

func (r AccountRole) String() string {
	if r.IsZero() {
		return "none"
	}
	return string(r.kind) + ":" + r.profileID.String()
}
