package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_IsMatchesByCode(t *testing.T) {
	err := NewNotFoundError("inventory item %s not found", "abc")

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrValidation))
	assert.Equal(t, "inventory item abc not found", err.Error())
}

func TestDomainError_WrappedStillMatches(t *testing.T) {
	wrapped := fmt.Errorf("saving: %w", NewValidationError("name is required"))

	var domainErr *DomainError
	assert.True(t, errors.As(wrapped, &domainErr))
	assert.Equal(t, CodeValidation, domainErr.Code)
	assert.True(t, errors.Is(wrapped, ErrValidation))
}

func TestNewAuthorizationError(t *testing.T) {
	err := NewAuthorizationError("only suppliers can manage inventory")
	assert.Equal(t, CodeForbidden, err.Code)
	assert.True(t, errors.Is(err, ErrForbidden))
}
