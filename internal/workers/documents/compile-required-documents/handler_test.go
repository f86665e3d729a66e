// internal/workers/documents/compile-required-documents/handler_test.go
package compilerequireddocuments

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"boreal-workers/internal/common/logger"
	"boreal-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) *Handler {
	return NewHandler(&Config{Timeout: 10 * time.Second}, logger.NewTestLogger(t))
}

func TestExecute_BaseDocumentsAlwaysIncluded(t *testing.T) {
	h := newTestHandler(t)

	output, err := h.Execute(context.Background(), &Input{
		Intake: models.Intake{Country: models.CountryCA, AmountRequested: 40000},
	})

	require.NoError(t, err)
	assert.Equal(t, len(output.RequiredDocuments), output.DocumentCount)

	ids := make([]string, 0, len(output.RequiredDocuments))
	for _, d := range output.RequiredDocuments {
		ids = append(ids, d.ID)
	}
	assert.Contains(t, ids, "bank_statements")
	assert.Contains(t, ids, "void_cheque")
}

func TestExecute_ProductAndRuleDocsMerged(t *testing.T) {
	h := newTestHandler(t)

	output, err := h.Execute(context.Background(), &Input{
		Intake: models.Intake{AmountRequested: 300000},
		MatchedProducts: []models.Product{
			{ID: "lp-1", Category: "invoice_factoring", DocumentIDs: []string{"articles_of_incorporation"}},
		},
	})

	require.NoError(t, err)

	ids := make(map[string]bool)
	for _, d := range output.RequiredDocuments {
		assert.False(t, ids[d.ID], "no duplicate ids")
		ids[d.ID] = true
	}
	assert.True(t, ids["personal_financial_statement"], "large amount rule fired")
	assert.True(t, ids["ar_aging_report"], "factoring rule fired")
	assert.True(t, ids["articles_of_incorporation"], "product doc unioned")
}

func TestNewHandler_CustomRulesFile(t *testing.T) {
	rulesPath := filepath.Join(t.TempDir(), "rules.json")
	rulesJSON := `{
		"baseDocuments": [
			{"id": "photo_id", "label": "Government photo ID", "order": 5}
		],
		"rules": []
	}`
	require.NoError(t, os.WriteFile(rulesPath, []byte(rulesJSON), 0o644))

	h := NewHandler(&Config{RulesPath: rulesPath, Timeout: 10 * time.Second}, logger.NewTestLogger(t))
	output, err := h.Execute(context.Background(), &Input{})

	require.NoError(t, err)
	require.Len(t, output.RequiredDocuments, 1)
	assert.Equal(t, "photo_id", output.RequiredDocuments[0].ID)
}

func TestNewHandler_BrokenRulesFileFallsBack(t *testing.T) {
	rulesPath := filepath.Join(t.TempDir(), "rules.json")
	require.NoError(t, os.WriteFile(rulesPath, []byte("{broken"), 0o644))

	h := NewHandler(&Config{RulesPath: rulesPath, Timeout: 10 * time.Second}, logger.NewTestLogger(t))
	output, err := h.Execute(context.Background(), &Input{})

	require.NoError(t, err)
	assert.NotEmpty(t, output.RequiredDocuments, "defaults still apply")
}
