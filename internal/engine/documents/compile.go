// internal/engine/documents/compile.go
package documents

import (
	"sort"
	"strings"

	"boreal-workers/internal/models"
)

// Compile derives the required-document list for a matched-product set:
//
//  1. start from the configured base set
//  2. union in each matched product's declared document ids
//     (case-insensitive, no duplicates)
//  3. apply the conditional rules against the intake and matched categories
//  4. stable-sort by Order ascending; missing/equal Order keeps first-seen
//     order
//
// Pure: operates only on its inputs and the supplied rule set.
func Compile(matched []models.Product, in models.Intake, rules RuleSet) []models.RequiredDocument {
	seen := make(map[string]bool)
	var out []models.RequiredDocument

	add := func(doc models.RequiredDocument) {
		key := strings.ToLower(doc.ID)
		if key == "" {
			key = strings.ToLower(doc.Label)
		}
		if key == "" || seen[key] {
			return
		}
		seen[key] = true
		out = append(out, doc)
	}

	for _, doc := range rules.BaseDocuments {
		add(doc)
	}

	for _, p := range matched {
		for _, id := range p.DocumentIDs {
			add(models.RequiredDocument{ID: id, Label: labelFor(id), Order: productDocOrder})
		}
	}

	for _, rule := range rules.Rules {
		if rule.When.matches(matched, in) {
			for _, doc := range rule.Add {
				add(doc)
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Order < out[j].Order
	})
	return out
}

// productDocOrder slots lender-declared documents after the base set but
// before most conditional add-ons.
const productDocOrder = 25

func (c Condition) matches(matched []models.Product, in models.Intake) bool {
	if c.MinAmountRequested > 0 && in.AmountRequested < c.MinAmountRequested {
		return false
	}
	if c.MinARBalance > 0 && in.ARBalance < c.MinARBalance {
		return false
	}
	if len(c.Categories) > 0 && !anyCategory(matched, c.Categories) {
		return false
	}
	return true
}

func anyCategory(matched []models.Product, categories []string) bool {
	for _, p := range matched {
		for _, c := range categories {
			if strings.EqualFold(p.Category, c) {
				return true
			}
		}
	}
	return false
}

// labelFor renders a display label for a lender-declared document id
// ("ar_aging_report" -> "Ar aging report"). Known ids get curated labels.
func labelFor(id string) string {
	if label, ok := docLabels[strings.ToLower(id)]; ok {
		return label
	}
	words := strings.ReplaceAll(strings.TrimSpace(id), "_", " ")
	if words == "" {
		return id
	}
	return strings.ToUpper(words[:1]) + words[1:]
}

var docLabels = map[string]string{
	"bank_statements":              "Last 6 months of bank statements",
	"ar_aging_report":              "Accounts receivable aging report",
	"invoice_samples":              "Sample customer invoices",
	"personal_financial_statement": "Personal financial statement",
	"business_tax_returns":         "Business tax returns (2 years)",
	"equipment_quote":              "Equipment quote or invoice",
	"void_cheque":                  "Void cheque or direct-deposit form",
	"articles_of_incorporation":    "Articles of incorporation",
}
