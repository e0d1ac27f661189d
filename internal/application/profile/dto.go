package profile

import (
	"time"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/identity"
	"github.com/vendorhub/backend/internal/domain/profile"
)

// UpdateProfileRequest is a partial profile update. CompanyName is the
// vendor's company or the supplier's organization.
type UpdateProfileRequest struct {
	FullName    *string `json:"full_name" binding:"omitempty,max=300"`
	CompanyName *string `json:"company_name" binding:"omitempty,max=255"`
	Address     *string `json:"address" binding:"omitempty,max=1000"`
	Phone       *string `json:"phone" binding:"omitempty,max=20"`
	Website     *string `json:"website" binding:"omitempty,max=255"`
}

// ProfileResponse is an account together with its role-specific profile
type ProfileResponse struct {
	AccountID uuid.UUID                `json:"account_id"`
	Username  string                   `json:"username"`
	Email     string                   `json:"email"`
	FirstName string                   `json:"first_name"`
	LastName  string                   `json:"last_name"`
	Role      string                   `json:"role"`
	Vendor    *VendorProfileResponse   `json:"vendor,omitempty"`
	Supplier  *SupplierProfileResponse `json:"supplier,omitempty"`
}

// VendorProfileResponse represents a vendor profile in API responses
type VendorProfileResponse struct {
	ID           uuid.UUID `json:"id"`
	CompanyName  string    `json:"company_name"`
	BusinessType string    `json:"business_type"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	GSTNumber    string    `json:"gst_number"`
	Website      string    `json:"website"`
	IsVerified   bool      `json:"is_verified"`
	CreatedAt    time.Time `json:"created_at"`
}

// SupplierProfileResponse represents a supplier profile in API responses
type SupplierProfileResponse struct {
	ID               uuid.UUID `json:"id"`
	OrganizationName string    `json:"organization_name"`
	ContactPerson    string    `json:"contact_person"`
	Phone            string    `json:"phone"`
	Address          string    `json:"address"`
	GST              string    `json:"gst"`
	PAN              string    `json:"pan"`
	BusinessCategory string    `json:"business_category"`
	SupplyCapacity   string    `json:"supply_capacity"`
	Certifications   string    `json:"certifications"`
	Website          string    `json:"website"`
	IsVerified       bool      `json:"is_verified"`
	CreatedAt        time.Time `json:"created_at"`
}

func toProfileResponse(a *identity.Account) *ProfileResponse {
	return &ProfileResponse{
		AccountID: a.ID,
		Username:  a.Username,
		Email:     a.Email,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Role:      string(a.Role),
	}
}

func toVendorResponse(v *profile.VendorProfile) *VendorProfileResponse {
	return &VendorProfileResponse{
		ID:           v.ID,
		CompanyName:  v.CompanyName,
		BusinessType: v.BusinessType,
		Phone:        v.Phone,
		Address:      v.Address,
		GSTNumber:    v.GSTNumber,
		Website:      v.Website,
		IsVerified:   v.IsVerified,
		CreatedAt:    v.CreatedAt,
	}
}

func toSupplierResponse(s *profile.SupplierProfile) *SupplierProfileResponse {
	return &SupplierProfileResponse{
		ID:               s.ID,
		OrganizationName: s.OrganizationName,
		ContactPerson:    s.ContactPerson,
		Phone:            s.Phone,
		Address:          s.Address,
		GST:              s.GST,
		PAN:              s.PAN,
		BusinessCategory: s.BusinessCategory,
		SupplyCapacity:   s.SupplyCapacity,
		Certifications:   s.Certifications,
		Website:          s.Website,
		IsVerified:       s.IsVerified,
		CreatedAt:        s.CreatedAt,
	}
}
