// internal/engine/documents/compile_test.go
package documents

import (
	"testing"

	"boreal-workers/internal/models"

	"github.com/stretchr/testify/assert"
)

func testRuleSet() RuleSet {
	return DefaultRuleSet()
}

func TestCompile_BaseSetAlwaysPresent(t *testing.T) {
	docs := Compile(nil, models.Intake{}, testRuleSet())

	ids := docIDs(docs)
	assert.Contains(t, ids, "bank_statements")
	assert.Contains(t, ids, "void_cheque")
	assert.NotContains(t, ids, "personal_financial_statement")
}

func TestCompile_AmountThresholdRule(t *testing.T) {
	in := models.Intake{AmountRequested: 250000}
	docs := Compile(nil, in, testRuleSet())
	assert.Contains(t, docIDs(docs), "personal_financial_statement")

	in.AmountRequested = 249999
	docs = Compile(nil, in, testRuleSet())
	assert.NotContains(t, docIDs(docs), "personal_financial_statement")
}

func TestCompile_FactoringCategoryAddsARDocs(t *testing.T) {
	matched := []models.Product{{ID: "lp-1", Category: "Invoice_Factoring", Active: true}}
	docs := Compile(matched, models.Intake{}, testRuleSet())

	ids := docIDs(docs)
	assert.Contains(t, ids, "ar_aging_report")
	assert.Contains(t, ids, "invoice_samples")
}

func TestCompile_ProductDeclaredDocumentsUnioned(t *testing.T) {
	matched := []models.Product{
		{ID: "lp-1", DocumentIDs: []string{"articles_of_incorporation"}},
		{ID: "lp-2", DocumentIDs: []string{"Articles_Of_Incorporation", "equipment_quote"}},
	}
	docs := Compile(matched, models.Intake{}, testRuleSet())

	ids := docIDs(docs)
	assert.Contains(t, ids, "articles_of_incorporation")
	assert.Contains(t, ids, "equipment_quote")

	count := 0
	for _, id := range ids {
		if id == "articles_of_incorporation" || id == "Articles_Of_Incorporation" {
			count++
		}
	}
	assert.Equal(t, 1, count, "case-insensitive union keeps one copy")
}

func TestCompile_NeverDuplicatesIDs(t *testing.T) {
	// Overlap between base set, product docs, and rule add-ons.
	matched := []models.Product{
		{ID: "lp-1", Category: "invoice_factoring", DocumentIDs: []string{"bank_statements", "ar_aging_report"}},
	}
	in := models.Intake{AmountRequested: 300000}
	docs := Compile(matched, in, testRuleSet())

	seen := make(map[string]bool)
	for _, d := range docs {
		assert.False(t, seen[d.ID], "duplicate document id %q", d.ID)
		seen[d.ID] = true
	}
}

func TestCompile_SortedByOrderWithStableTies(t *testing.T) {
	rules := RuleSet{
		BaseDocuments: []models.RequiredDocument{
			{ID: "c", Label: "C", Order: 30},
			{ID: "a1", Label: "A1", Order: 10},
			{ID: "a2", Label: "A2", Order: 10},
			{ID: "b", Label: "B", Order: 20},
		},
	}
	docs := Compile(nil, models.Intake{}, rules)
	assert.Equal(t, []string{"a1", "a2", "b", "c"}, docIDs(docs))
}

func TestCompile_FirstLabelWinsOnConflict(t *testing.T) {
	matched := []models.Product{{ID: "lp-1", DocumentIDs: []string{"bank_statements"}}}
	docs := Compile(matched, models.Intake{}, testRuleSet())

	for _, d := range docs {
		if d.ID == "bank_statements" {
			assert.Equal(t, "Last 6 months of bank statements", d.Label)
		}
	}
}

func TestLabelFor(t *testing.T) {
	assert.Equal(t, "Accounts receivable aging report", labelFor("AR_Aging_Report"))
	assert.Equal(t, "Supplier contracts", labelFor("supplier_contracts"))
}

func docIDs(docs []models.RequiredDocument) []string {
	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	return ids
}
