package identity

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vendorhub/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	PasswordCost = bcrypt.MinCost
}

func TestNewAccount(t *testing.T) {
	acc, err := NewAccount("  acme ", "Buyer@Acme.io", "s3cretpass", RoleVendor)
	require.NoError(t, err)

	assert.Equal(t, "acme", acc.Username)
	assert.Equal(t, "buyer@acme.io", acc.Email)
	assert.Equal(t, RoleVendor, acc.Role)
	assert.Equal(t, 1, acc.Version)
	assert.NotEqual(t, "s3cretpass", acc.PasswordHash)
	assert.True(t, acc.VerifyPassword("s3cretpass"))
	assert.False(t, acc.VerifyPassword("wrong"))
}

func TestNewAccount_Validation(t *testing.T) {
	tests := []struct {
		name     string
		username string
		email    string
		password string
		role     RoleKind
	}{
		{"short username", "ab", "", "password1", RoleVendor},
		{"bad email", "alice", "not-an-email", "password1", RoleVendor},
		{"short password", "alice", "", "short", RoleVendor},
		{"unknown role", "alice", "", "password1", RoleKind("admin")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAccount(tt.username, tt.email, tt.password, tt.role)
			assert.True(t, errors.Is(err, shared.ErrValidation))
		})
	}
}

func TestAccount_Names(t *testing.T) {
	acc := &Account{Username: "jdoe"}
	assert.Equal(t, "jdoe", acc.DisplayName())

	acc.SetFullName("Jane van Doe")
	assert.Equal(t, "Jane", acc.FirstName)
	assert.Equal(t, "van Doe", acc.LastName)
	assert.Equal(t, "Jane van Doe", acc.DisplayName())

	acc.SetFullName("Cher")
	assert.Equal(t, "Cher", acc.FirstName)
	assert.Equal(t, "", acc.LastName)
}

func TestAccountRole(t *testing.T) {
	vendorID := uuid.New()
	role := VendorRole(vendorID)

	id, err := role.Vendor()
	require.NoError(t, err)
	assert.Equal(t, vendorID, id)

	_, err = role.Supplier()
	assert.True(t, errors.Is(err, shared.ErrForbidden))

	var none AccountRole
	assert.True(t, none.IsZero())
	_, err = none.Vendor()
	assert.Error(t, err)

	_, err = NewAccountRole(RoleSupplier, uuid.Nil)
	assert.Error(t, err)

	parsed, err := NewAccountRole(RoleSupplier, vendorID)
	require.NoError(t, err)
	assert.Equal(t, RoleSupplier, parsed.Kind())
}

func TestParseRoleKind(t *testing.T) {
	k, err := ParseRoleKind("supplier")
	require.NoError(t, err)
	assert.Equal(t, RoleSupplier, k)

	_, err = ParseRoleKind("admin")
	assert.Error(t, err)
}
