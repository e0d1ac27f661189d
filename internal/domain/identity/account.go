package identity

import (
	"regexp"
	"strings"

	"github.com/vendorhub/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt cost used for new password hashes
var PasswordCost = bcrypt.DefaultCost

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.@+\-]{3,150}$`)
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// Account is a login identity. Each account owns exactly one vendor or
// supplier profile, named by Role.
type Account struct {
	shared.BaseAggregateRoot
	Username     string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	Role         RoleKind
}

// NewAccount validates the credentials and hashes the password
func NewAccount(username, email, password string, role RoleKind) (*Account, error) {
	username = strings.TrimSpace(username)
	if !usernamePattern.MatchString(username) {
		return nil, shared.NewValidationError("username must be 3-150 letters, digits or @.+-_")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email != "" && !emailPattern.MatchString(email) {
		return nil, shared.NewValidationError("invalid email format")
	}
	if len(password) < 8 {
		return nil, shared.NewValidationError("password must be at least 8 characters")
	}
	if len(password) > 72 {
		return nil, shared.NewValidationError("password cannot exceed 72 bytes")
	}
	if !role.IsValid() {
		return nil, shared.NewValidationError("role must be one of: vendor, supplier")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return nil, err
	}

	return &Account{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Username:          username,
		Email:             email,
		PasswordHash:      string(hash),
		Role:              role,
	}, nil
}

// VerifyPassword reports whether password matches the stored hash
func (a *Account) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) == nil
}

// FullName joins first and last name
func (a *Account) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// DisplayName is the full name, falling back to the username
func (a *Account) DisplayName() string {
	if name := a.FullName(); name != "" {
		return name
	}
	return a.Username
}

// SetFullName splits a full name on its first space into first and last name
func (a *Account) SetFullName(fullName string) {
	first, last, _ := strings.Cut(strings.TrimSpace(fullName), " ")
	a.FirstName = first
	a.LastName = strings.TrimSpace(last)
	a.Touch()
	a.IncrementVersion()
}
