package profile

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVendorProfile(t *testing.T) {
	_, err := NewVendorProfile(uuid.Nil, VendorDetails{})
	assert.Error(t, err)

	v, err := NewVendorProfile(uuid.New(), VendorDetails{CompanyName: "  Acme Retail "})
	require.NoError(t, err)
	assert.Equal(t, "Acme Retail", v.CompanyName)
	assert.Equal(t, "Acme Retail", v.CustomerName("Jane Doe"))

	v.CompanyName = ""
	assert.Equal(t, "Jane Doe", v.CustomerName("Jane Doe"))
}

func TestPatch_MapsCompanyNamePerSide(t *testing.T) {
	name := "Bolt Works"
	addr := "12 Mill Road"

	v, _ := NewVendorProfile(uuid.New(), VendorDetails{Phone: "555"})
	v.Apply(Patch{CompanyName: &name, Address: &addr})
	assert.Equal(t, "Bolt Works", v.CompanyName)
	assert.Equal(t, "12 Mill Road", v.Address)
	assert.Equal(t, "555", v.Phone)

	s, _ := NewSupplierProfile(uuid.New(), SupplierDetails{OrganizationName: "Old"})
	s.Apply(Patch{CompanyName: &name})
	assert.Equal(t, "Bolt Works", s.OrganizationName)
	assert.Equal(t, "Bolt Works", s.DisplayName())
}
