// internal/workers/intake/normalize-intake/handler_test.go
package normalizeintake

import (
	"context"
	"testing"

	"boreal-workers/internal/common/logger"
	"boreal-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecute_WizardPayload(t *testing.T) {
	h := NewHandler(LoadConfig(), logger.NewTestLogger(t))

	output, err := h.Execute(context.Background(), &Input{
		IntakeData: map[string]interface{}{
			"country":         "Canada",
			"fundingAmount":   "$40,000",
			"industry":        "Construction",
			"yearsInBusiness": "1-3yr",
		},
	})

	require.NoError(t, err)
	assert.Equal(t, models.CountryCA, output.Intake.Country)
	assert.Equal(t, 40000.0, output.Intake.AmountRequested)
	assert.Equal(t, "construction", output.Intake.Industry)
	assert.Equal(t, 2.0, output.Intake.YearsInBusiness)
}

func TestExecute_GarbageNeverFails(t *testing.T) {
	h := NewHandler(LoadConfig(), logger.NewTestLogger(t))

	output, err := h.Execute(context.Background(), &Input{
		IntakeData: map[string]interface{}{
			"country":       []interface{}{"nonsense"},
			"fundingAmount": map[string]interface{}{"oops": true},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, models.CountryUnknown, output.Intake.Country)
	assert.Equal(t, 0.0, output.Intake.AmountRequested)
}

func TestExecute_NilPayload(t *testing.T) {
	h := NewHandler(LoadConfig(), logger.NewTestLogger(t))

	output, err := h.Execute(context.Background(), &Input{})

	require.NoError(t, err)
	assert.Equal(t, models.CountryUnknown, output.Intake.Country)
}
