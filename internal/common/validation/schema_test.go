package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
	"type": "object",
	"properties": {
		"country": {"type": ["string", "null"]},
		"amount": {"type": ["number", "string"]}
	},
	"additionalProperties": true
}`

func TestValidateInput(t *testing.T) {
	result, err := ValidateInput(map[string]interface{}{
		"country": "CA",
		"amount":  "45,000",
		"extra":   true,
	}, testSchema)

	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

func TestValidateInput_TypeMismatch(t *testing.T) {
	result, err := ValidateInput(map[string]interface{}{
		"country": 42,
	}, testSchema)

	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.True(t, result.HasErrors("country"))
	assert.NotEmpty(t, result.GetErrorMessages())
}

func TestValidateSchema(t *testing.T) {
	assert.NoError(t, ValidateSchema(testSchema))
	assert.Error(t, ValidateSchema(`{"type": "no-such-type"}`))
}

func TestValidateActivityNaming(t *testing.T) {
	assert.NoError(t, ValidateActivityNaming("validate-intake-data"))
	assert.NoError(t, ValidateActivityNaming("sync"))
	assert.Error(t, ValidateActivityNaming("Validate-Intake"))
	assert.Error(t, ValidateActivityNaming("validate_intake"))
	assert.Error(t, ValidateActivityNaming(""))
}

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("jane@acme.com"))
	assert.False(t, ValidateEmail("jane@"))
	assert.False(t, ValidateEmail("not-an-email"))
}

func TestValidatePhone(t *testing.T) {
	assert.True(t, ValidatePhone("+1 (555) 123-4567"))
	assert.False(t, ValidatePhone("123"))
}
