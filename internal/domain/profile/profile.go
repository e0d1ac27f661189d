// Package profile holds the business identity records attached to accounts.
package profile

import (
	"strings"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/shared"
)

// VendorDetails are the editable fields of a vendor profile
type VendorDetails struct {
	CompanyName  string
	BusinessType string
	Phone        string
	Address      string
	GSTNumber    string
	Website      string
}

// VendorProfile is the buying side of the marketplace
type VendorProfile struct {
	shared.BaseEntity
	AccountID uuid.UUID
	VendorDetails
	IsVerified bool
}

// NewVendorProfile creates a vendor profile for an account
func NewVendorProfile(accountID uuid.UUID, details VendorDetails) (*VendorProfile, error) {
	if accountID == uuid.Nil {
		return nil, shared.NewValidationError("account is required")
	}
	return &VendorProfile{
		BaseEntity:    shared.NewBaseEntity(),
		AccountID:     accountID,
		VendorDetails: trimVendor(details),
	}, nil
}

// CustomerName is the name printed on the vendor's orders: the company
// name, or fallback when the company name is empty.
func (v *VendorProfile) CustomerName(fallback string) string {
	if v.CompanyName != "" {
		return v.CompanyName
	}
	return fallback
}

// SupplierDetails are the editable fields of a supplier profile
type SupplierDetails struct {
	OrganizationName string
	ContactPerson    string
	Phone            string
	Address          string
	GST              string
	PAN              string
	BusinessCategory string
	SupplyCapacity   string
	Certifications   string
	Website          string
}

// SupplierProfile is the selling side of the marketplace
type SupplierProfile struct {
	shared.BaseEntity
	AccountID uuid.UUID
	SupplierDetails
	IsVerified bool
}

// NewSupplierProfile creates a supplier profile for an account
func NewSupplierProfile(accountID uuid.UUID, details SupplierDetails) (*SupplierProfile, error) {
	if accountID == uuid.Nil {
		return nil, shared.NewValidationError("account is required")
	}
	return &SupplierProfile{
		BaseEntity:      shared.NewBaseEntity(),
		AccountID:       accountID,
		SupplierDetails: trimSupplier(details),
	}, nil
}

// DisplayName is the name shown on products the supplier lists
func (s *SupplierProfile) DisplayName() string {
	return s.OrganizationName
}

// Patch is a partial profile update shared by both sides. CompanyName maps
// to the vendor's company or the supplier's organization.
type Patch struct {
	CompanyName *string
	Address     *string
	Phone       *string
	Website     *string
}

// Apply updates the vendor profile with the fields present in p
func (v *VendorProfile) Apply(p Patch) {
	setIfPresent(&v.CompanyName, p.CompanyName)
	setIfPresent(&v.Address, p.Address)
	setIfPresent(&v.Phone, p.Phone)
	setIfPresent(&v.Website, p.Website)
	v.Touch()
}

// Apply updates the supplier profile with the fields present in p
func (s *SupplierProfile) Apply(p Patch) {
	setIfPresent(&s.OrganizationName, p.CompanyName)
	setIfPresent(&s.Address, p.Address)
	setIfPresent(&s.Phone, p.Phone)
	setIfPresent(&s.Website, p.Website)
	s.Touch()
}

func setIfPresent(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

func trimVendor(d VendorDetails) VendorDetails {
	d.CompanyName = strings.TrimSpace(d.CompanyName)
	d.BusinessType = strings.TrimSpace(d.BusinessType)
	d.Phone = strings.TrimSpace(d.Phone)
	d.Address = strings.TrimSpace(d.Address)
	d.GSTNumber = strings.TrimSpace(d.GSTNumber)
	d.Website = strings.TrimSpace(d.Website)
	return d
}

func trimSupplier(d SupplierDetails) SupplierDetails {
	d.OrganizationName = strings.TrimSpace(d.OrganizationName)
	d.ContactPerson = strings.TrimSpace(d.ContactPerson)
	d.Phone = strings.TrimSpace(d.Phone)
	d.Address = strings.TrimSpace(d.Address)
	d.GST = strings.TrimSpace(d.GST)
	d.PAN = strings.TrimSpace(d.PAN)
	d.BusinessCategory = strings.TrimSpace(d.BusinessCategory)
	d.SupplyCapacity = strings.TrimSpace(d.SupplyCapacity)
	d.Certifications = strings.TrimSpace(d.Certifications)
	d.Website = strings.TrimSpace(d.Website)
	return d
}
