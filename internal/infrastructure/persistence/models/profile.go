package models

import (
	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/profile"
)

// VendorProfileModel is the persistence model for vendor profiles
type VendorProfileModel struct {
	BaseModel
	AccountID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_vendor_profiles_account"`
	CompanyName  string    `gorm:"type:varchar(255);not null;default:''"`
	BusinessType string    `gorm:"type:varchar(100);not null;default:''"`
	Phone        string    `gorm:"type:varchar(20);not null;default:''"`
	Address      string    `gorm:"type:text;not null;default:''"`
	GSTNumber    string    `gorm:"column:gst_number;type:varchar(15);not null;default:''"`
	Website      string    `gorm:"type:varchar(200);not null;default:''"`
	IsVerified   bool      `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (VendorProfileModel) TableName() string {
	return "vendor_profiles"
}

// ToDomain converts the persistence model to a domain VendorProfile
func (m *VendorProfileModel) ToDomain() *profile.VendorProfile {
	return &profile.VendorProfile{
		BaseEntity: m.BaseModel.ToDomain(),
		AccountID:  m.AccountID,
		VendorDetails: profile.VendorDetails{
			CompanyName:  m.CompanyName,
			BusinessType: m.BusinessType,
			Phone:        m.Phone,
			Address:      m.Address,
			GSTNumber:    m.GSTNumber,
			Website:      m.Website,
		},
		IsVerified: m.IsVerified,
	}
}

// FromDomain populates the persistence model from a domain VendorProfile
func (m *VendorProfileModel) FromDomain(v *profile.VendorProfile) {
	m.FromDomainBaseEntity(v.BaseEntity)
	m.AccountID = v.AccountID
	m.CompanyName = v.CompanyName
	m.BusinessType = v.BusinessType
	m.Phone = v.Phone
	m.Address = v.Address
	m.GSTNumber = v.GSTNumber
	m.Website = v.Website
	m.IsVerified = v.IsVerified
}

// SupplierProfileModel is the persistence model for supplier profiles
type SupplierProfileModel struct {
	BaseModel
	AccountID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_supplier_profiles_account"`
	OrganizationName string    `gorm:"type:varchar(255);not null;default:''"`
	ContactPerson    string    `gorm:"type:varchar(255);not null;default:''"`
	Phone            string    `gorm:"type:varchar(20);not null;default:''"`
	Address          string    `gorm:"type:text;not null;default:''"`
	GST              string    `gorm:"column:gst;type:varchar(15);not null;default:''"`
	PAN              string    `gorm:"column:pan;type:varchar(10);not null;default:''"`
	BusinessCategory string    `gorm:"type:varchar(100);not null;default:''"`
	SupplyCapacity   string    `gorm:"type:varchar(100);not null;default:''"`
	Certifications   string    `gorm:"type:text;not null;default:''"`
	Website          string    `gorm:"type:varchar(200);not null;default:''"`
	IsVerified       bool      `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (SupplierProfileModel) TableName() string {
	return "supplier_profiles"
}

// ToDomain converts the persistence model to a domain SupplierProfile
func (m *SupplierProfileModel) ToDomain() *profile.SupplierProfile {
	return &profile.SupplierProfile{
		BaseEntity: m.BaseModel.ToDomain(),
		AccountID:  m.AccountID,
		SupplierDetails: profile.SupplierDetails{
			OrganizationName: m.OrganizationName,
			ContactPerson:    m.ContactPerson,
			Phone:            m.Phone,
			Address:          m.Address,
			GST:              m.GST,
			PAN:              m.PAN,
			BusinessCategory: m.BusinessCategory,
			SupplyCapacity:   m.SupplyCapacity,
			Certifications:   m.Certifications,
			Website:          m.Website,
		},
		IsVerified: m.IsVerified,
	}
}

// FromDomain populates the persistence model from a domain SupplierProfile
func (m *SupplierProfileModel) FromDomain(s *profile.SupplierProfile) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.AccountID = s.AccountID
	m.OrganizationName = s.OrganizationName
	m.ContactPerson = s.ContactPerson
	m.Phone = s.Phone
	m.Address = s.Address
	m.GST = s.GST
	m.PAN = s.PAN
	m.BusinessCategory = s.BusinessCategory
	m.SupplyCapacity = s.SupplyCapacity
	m.Certifications = s.Certifications
	m.Website = s.Website
	m.IsVerified = s.IsVerified
}
