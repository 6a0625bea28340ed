package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsE164(t *testing.T) {
	valid := []string{"+14155552671", "+442071838750", "+5215512345678"}
	for _, n := range valid {
		assert.True(t, IsE164(n), "expected %q to be valid", n)
	}

	invalid := []string{"", "14155552671", "+0123456789", "+1", "555-1234", "+1 415 555 2671"}
	for _, n := range invalid {
		assert.False(t, IsE164(n), "expected %q to be invalid", n)
	}
}

func TestValidatePhoneNumberSyntaxOnly(t *testing.T) {
	ok, err := ValidatePhoneNumber(context.Background(), "+14155552671", false, nil)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = ValidatePhoneNumber(context.Background(), "not-a-number", false, nil)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestValidateEmailRejectsBadSyntax(t *testing.T) {
	ok, err := ValidateEmail(context.Background(), "", "not-an-email", false)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestValidateEmailSyntaxOnlySkipsDNS(t *testing.T) {
	// Deep validation is off, so an address on a domain without MX
	// records (intranets, dev environments) must still pass.
	ok, err := ValidateEmail(context.Background(), "", "marta@crm.intranet.invalid", false)
	require.NoError(t, err)
	assert.True(t, ok)
}
