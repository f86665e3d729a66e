// internal/workers/intake/validate-intake-data/handler_test.go
package validateintakedata

import (
	"context"
	"testing"

	"boreal-workers/internal/common/logger"
	"boreal-workers/internal/common/staff"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHandler(t *testing.T) *Handler {
	return NewHandler(LoadConfig(), logger.NewTestLogger(t))
}

func validIntakeData() map[string]interface{} {
	return map[string]interface{}{
		"country":         "Canada",
		"fundingAmount":   "$40,000",
		"industry":        "construction",
		"yearsInBusiness": "1-3yr",
	}
}

func TestExecute_ValidInput(t *testing.T) {
	h := newHandler(t)

	output, err := h.Execute(context.Background(), &Input{
		IntakeData:   validIntakeData(),
		ContactEmail: " jane@acme.com ",
		ContactPhone: "+1 (555) 123-4567",
	})

	require.NoError(t, err)
	assert.True(t, output.IsValid)
	assert.Equal(t, "jane@acme.com", output.SanitizedContact["email"])
	assert.Equal(t, "+15551234567", output.SanitizedContact["phone"], "phone is stripped to digits")
	assert.Empty(t, output.ValidationErrors)
}

func TestExecute_MissingEmail(t *testing.T) {
	h := newHandler(t)

	_, err := h.Execute(context.Background(), &Input{
		IntakeData: validIntakeData(),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIntakeValidationFailed)
}

func TestExecute_BadEmailFormat(t *testing.T) {
	h := newHandler(t)

	_, err := h.Execute(context.Background(), &Input{
		IntakeData:   validIntakeData(),
		ContactEmail: "not-an-email",
	})

	assert.ErrorIs(t, err, ErrIntakeValidationFailed)
}

func TestExecute_PhoneIsOptional(t *testing.T) {
	h := newHandler(t)

	output, err := h.Execute(context.Background(), &Input{
		IntakeData:   validIntakeData(),
		ContactEmail: "jane@acme.com",
	})

	require.NoError(t, err)
	assert.True(t, output.IsValid)
	assert.Equal(t, "", output.SanitizedContact["phone"])
}

func TestExecute_UnknownIntakeFieldsAllowed(t *testing.T) {
	// The wizard ships extra keys depending on the funding path. They must
	// not fail validation; normalization decides what to keep.
	h := newHandler(t)

	data := validIntakeData()
	data["someLegacyField"] = map[string]interface{}{"nested": true}
	data["arBalance"] = 12000.0

	output, err := h.Execute(context.Background(), &Input{
		IntakeData:   data,
		ContactEmail: "jane@acme.com",
	})

	require.NoError(t, err)
	assert.True(t, output.IsValid)
}

func TestExecute_NilIntakeData(t *testing.T) {
	h := newHandler(t)

	_, err := h.Execute(context.Background(), &Input{
		ContactEmail: "jane@acme.com",
	})

	assert.ErrorIs(t, err, ErrIntakeValidationFailed)
}

type stubLeadRegistrar struct {
	lead *staff.Lead
	id   string
	err  error
}

func (s *stubLeadRegistrar) CreateLead(_ context.Context, lead *staff.Lead) (string, error) {
	s.lead = lead
	return s.id, s.err
}

func TestExecute_RegistersLead(t *testing.T) {
	registrar := &stubLeadRegistrar{id: "lead-42"}
	h := NewHandlerWithLeads(LoadConfig(), registrar, logger.NewTestLogger(t))

	output, err := h.Execute(context.Background(), &Input{
		IntakeData:   validIntakeData(),
		ContactEmail: " Jane@Acme.com ",
		ContactPhone: "+1 (555) 123-4567",
	})

	require.NoError(t, err)
	assert.Equal(t, "lead-42", output.LeadID)

	require.NotNil(t, registrar.lead)
	assert.Equal(t, "jane@acme.com", registrar.lead.Email, "lead carries the sanitized contact")
	assert.Equal(t, "+15551234567", registrar.lead.Phone)
	assert.Equal(t, "intake-wizard", registrar.lead.Source)
}

func TestExecute_LeadOutageDoesNotFailValidation(t *testing.T) {
	registrar := &stubLeadRegistrar{err: assert.AnError}
	h := NewHandlerWithLeads(LoadConfig(), registrar, logger.NewTestLogger(t))

	output, err := h.Execute(context.Background(), &Input{
		IntakeData:   validIntakeData(),
		ContactEmail: "jane@acme.com",
	})

	require.NoError(t, err)
	assert.True(t, output.IsValid)
	assert.Empty(t, output.LeadID)
}

func TestExecute_NoLeadForInvalidInput(t *testing.T) {
	registrar := &stubLeadRegistrar{id: "lead-42"}
	h := NewHandlerWithLeads(LoadConfig(), registrar, logger.NewTestLogger(t))

	_, err := h.Execute(context.Background(), &Input{
		IntakeData:   validIntakeData(),
		ContactEmail: "not-an-email",
	})

	require.Error(t, err)
	assert.Nil(t, registrar.lead)
}
