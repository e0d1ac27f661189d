package handler

// SignupRequest registers a vendor or supplier account. Vendor signups use
// company_name and business_type; supplier signups use organization_name
// and the supplier fields.
type SignupRequest struct {
	Username  string `json:"username" binding:"required,min=3,max=150"`
	Email     string `json:"email" binding:"required,email,max=254"`
	Password  string `json:"password" binding:"required,min=8,max=128"`
	FirstName string `json:"first_name" binding:"max=150"`
	LastName  string `json:"last_name" binding:"max=150"`
	Role      string `json:"role" binding:"required,oneof=vendor supplier"`

	CompanyName  string `json:"company_name" binding:"max=255"`
	BusinessType string `json:"business_type" binding:"max=100"`
	Phone        string `json:"phone" binding:"max=20"`
	Address      string `json:"address" binding:"max=1000"`
	GSTNumber    string `json:"gst_number" binding:"max=15"`
	Website      string `json:"website" binding:"max=255"`

	OrganizationName string `json:"organization_name" binding:"max=255"`
	ContactPerson    string `json:"contact_person" binding:"max=255"`
	PAN              string `json:"pan" binding:"max=10"`
	BusinessCategory string `json:"business_category" binding:"max=100"`
	SupplyCapacity   string `json:"supply_capacity" binding:"max=100"`
	Certifications   string `json:"certifications" binding:"max=1000"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Username string `json:"username" binding:"required,max=150"`
	Password string `json:"password" binding:"required,max=128"`
}

// RefreshTokenRequest represents the request body for token refresh
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}
