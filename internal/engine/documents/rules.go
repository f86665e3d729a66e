// internal/engine/documents/rules.go

// Package documents compiles the deduplicated, ordered list of required
// document categories for a matched-product set. Base documents and the
// conditional rule table are configuration data, loadable from JSON, so
// product can extend the requirements without a code change.
package documents

import (
	"encoding/json"
	"os"

	"boreal-workers/internal/models"
)

// Condition describes when a conditional rule fires. Zero-valued fields are
// ignored; set fields are AND-combined.
type Condition struct {
	// MinAmountRequested fires when the intake asks for at least this much.
	MinAmountRequested float64 `json:"minAmountRequested,omitempty"`
	// Categories fires when any matched product's category is in the list
	// (case-insensitive).
	Categories []string `json:"categories,omitempty"`
	// MinARBalance fires when the intake's receivables balance is at least
	// this much.
	MinARBalance float64 `json:"minArBalance,omitempty"`
}

// Rule adds documents when its condition holds.
type Rule struct {
	When Condition                 `json:"when"`
	Add  []models.RequiredDocument `json:"add"`
}

// RuleSet is the full requirement configuration: documents always required
// plus the conditional rule table.
type RuleSet struct {
	BaseDocuments []models.RequiredDocument `json:"baseDocuments"`
	Rules         []Rule                    `json:"rules"`
}

// LoadRuleSet reads a RuleSet from a JSON file.
func LoadRuleSet(path string) (RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RuleSet{}, err
	}
	var rs RuleSet
	if err := json.Unmarshal(data, &rs); err != nil {
		return RuleSet{}, err
	}
	return rs, nil
}

// DefaultRuleSet mirrors the product team's current Step-5 requirements:
// six months of bank statements always; a personal financial statement for
// larger requests; AR aging and invoice samples for factoring-style
// products.
func DefaultRuleSet() RuleSet {
	return RuleSet{
		BaseDocuments: []models.RequiredDocument{
			{ID: "bank_statements", Label: "Last 6 months of bank statements", Order: 10},
			{ID: "void_cheque", Label: "Void cheque or direct-deposit form", Order: 20},
		},
		Rules: []Rule{
			{
				When: Condition{MinAmountRequested: 250000},
				Add: []models.RequiredDocument{
					{ID: "personal_financial_statement", Label: "Personal financial statement", Order: 30},
					{ID: "business_tax_returns", Label: "Business tax returns (2 years)", Order: 40},
				},
			},
			{
				When: Condition{Categories: []string{"invoice_factoring", "purchase_order_financing"}},
				Add: []models.RequiredDocument{
					{ID: "ar_aging_report", Label: "Accounts receivable aging report", Order: 50},
					{ID: "invoice_samples", Label: "Sample customer invoices", Order: 60},
				},
			},
			{
				When: Condition{Categories: []string{"equipment_financing"}},
				Add: []models.RequiredDocument{
					{ID: "equipment_quote", Label: "Equipment quote or invoice", Order: 50},
				},
			},
		},
	}
}
