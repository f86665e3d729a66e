// internal/engine/eligibility/filter.go

// Package eligibility implements the product-matching predicate and the
// optional ranking score over canonical Intake and Product records. All
// functions are pure and safe to call concurrently.
package eligibility

import (
	"strings"

	"boreal-workers/internal/models"
)

// Eligible reports whether a product can serve an intake. Checks are
// AND-combined in a fixed order so exclusions short-circuit predictably:
//
//  1. inactive products are excluded
//  2. a set, known product country that differs from the intake country is
//     excluded; CountryUnknown products are country-agnostic and pass
//  3. a non-empty industry list with no case-insensitive match against a
//     set intake industry is excluded
//  4. amount below MinAmount is excluded
//  5. amount above MaxAmount is excluded
//
// The permissive handling of unset country and industries keeps incomplete
// catalog data visible rather than silently hiding it.
func Eligible(p models.Product, in models.Intake) bool {
	return Exclusion(p, in) == ""
}

// Exclusion returns the first failing check as a reason code, or "" when
// the product is eligible. Reason codes surface in worker output for
// debugging unmatched intakes.
func Exclusion(p models.Product, in models.Intake) string {
	if !p.Active {
		return "inactive"
	}
	if p.Country != "" && p.Country != models.CountryUnknown && p.Country != in.Country {
		return "country_mismatch"
	}
	if len(p.Industries) > 0 && in.Industry != "" && !containsFold(p.Industries, in.Industry) {
		return "industry_mismatch"
	}
	if in.AmountRequested < p.MinAmount {
		return "amount_below_minimum"
	}
	if in.AmountRequested > p.MaxAmount {
		return "amount_above_maximum"
	}
	return ""
}

// Filter returns the eligible subset of a catalog, preserving catalog order.
func Filter(products []models.Product, in models.Intake) []models.Product {
	var matched []models.Product
	for _, p := range products {
		if Eligible(p, in) {
			matched = append(matched, p)
		}
	}
	return matched
}

func containsFold(items []string, target string) bool {
	for _, item := range items {
		if strings.EqualFold(strings.TrimSpace(item), strings.TrimSpace(target)) {
			return true
		}
	}
	return false
}
