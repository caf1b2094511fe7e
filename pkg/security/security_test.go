package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jdziat/simple-event-subscribers/pkg/core"
)

func TestValidateEventName_Valid(t *testing.T) {
	validNames := []string{
		"user.created",
		"orderPlaced",
		"payment_failed",
		"UserCreated",
		"a",
		"billing.invoice-paid",
		"Order_Shipped_V2",
	}

	for _, name := range validNames {
		err := ValidateEventName(name)
		assert.NoError(t, err, "Expected %q to be valid", name)
	}
}

func TestValidateEventName_Invalid(t *testing.T) {
	invalidNames := []string{
		"",                    // empty
		"123-event",           // starts with number
		"-event",              // starts with hyphen
		".event",              // starts with dot
		"event with spaces",   // contains spaces
		"event@host",          // contains special char
		"example.com/pkg.Evt", // contains slash
	}

	for _, name := range invalidNames {
		err := ValidateEventName(name)
		assert.ErrorIs(t, err, core.ErrInvalidEventName, "Expected %q to be invalid", name)
	}
}

func TestValidateEventName_TooLong(t *testing.T) {
	err := ValidateEventName(strings.Repeat("a", MaxEventNameLength+1))
	assert.ErrorIs(t, err, core.ErrEventNameTooLong)

	assert.NoError(t, ValidateEventName(strings.Repeat("a", MaxEventNameLength)))
}
