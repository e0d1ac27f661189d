package identity

import (
	"time"

	"github.com/google/uuid"
)

// SignupInput contains the input for account registration. The profile
// fields that do not apply to the chosen role are ignored.
type SignupInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      string

	CompanyName  string
	BusinessType string
	Phone        string
	Address      string
	GSTNumber    string
	Website      string

	OrganizationName string
	ContactPerson    string
	PAN              string
	BusinessCategory string
	SupplyCapacity   string
	Certifications   string
}

// LoginInput contains the input for login
type LoginInput struct {
	Username string
	Password string
}

// LogoutInput identifies the access token to revoke
type LogoutInput struct {
	AccountID uuid.UUID
	TokenJTI  string
	TokenTTL  time.Duration
}

// AuthResult is returned by signup, login and refresh
type AuthResult struct {
	AccessToken           string      `json:"access_token"`
	RefreshToken          string      `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time   `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time   `json:"refresh_token_expires_at"`
	TokenType             string      `json:"token_type"`
	Account               AccountInfo `json:"account"`
}

// AccountInfo is the public part of an account
type AccountInfo struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	ProfileID uuid.UUID `json:"profile_id"`
}
