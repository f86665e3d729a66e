// internal/engine/normalize/product.go
package normalize

import (
	"math"
	"strings"

	"boreal-workers/internal/models"
)

// productFields lists the candidate raw keys per canonical Product field.
// The catalog has shipped several API versions with different casings, so
// the lists are long on purpose.
var productFields = map[string][]string{
	"id":         {"id", "productId", "product_id", "lenderProductId", "externalId"},
	"name":       {"name", "productName", "product_name"},
	"lenderName": {"lenderName", "lender", "lender_name", "lenderDisplayName"},
	"country":    {"country", "countryOffered", "country_offered", "geography", "headquarters"},
	"category":   {"category", "productCategory", "product_category", "productType", "product_type"},
	"minAmount":  {"minAmount", "min_amount", "amountMin", "fundingMin", "minimumLendingAmount"},
	"maxAmount":  {"maxAmount", "max_amount", "amountMax", "fundingMax", "maximumLendingAmount"},
	"minRevenue": {"minRevenue", "min_revenue", "revenueMin", "minimumRevenue", "minAnnualRevenue"},
	"industries": {"industries", "eligibleIndustries", "eligible_industries"},
	"active":     {"active", "isActive", "is_active", "enabled"},
	"documents":  {"requiredDocuments", "required_documents", "docRequirements", "doc_requirements"},
}

// consumedProductKeys is the flattened candidate set, used to decide which
// raw fields go into the Raw passthrough.
var consumedProductKeys = func() map[string]bool {
	keys := make(map[string]bool)
	for _, candidates := range productFields {
		for _, k := range candidates {
			keys[k] = true
		}
	}
	return keys
}()

// Product builds a canonical lender-product record from an arbitrary raw
// catalog payload. A missing or null maxAmount means "no upper bound" and
// maps to +Inf. Unrecognized fields are preserved under Raw for debugging
// but never filtered on. The input map is not mutated.
//
// Product is idempotent over canonical shapes: re-normalizing the decoded
// form of a canonical record yields the same record.
func Product(raw map[string]interface{}) models.Product {
	out := models.Product{
		Country:   models.CountryUnknown,
		MaxAmount: math.Inf(1),
		Active:    true,
	}
	if raw == nil {
		return out
	}

	if v, ok := firstPresent(raw, productFields["id"]); ok {
		out.ID = toText(v)
	}
	if v, ok := firstPresent(raw, productFields["name"]); ok {
		out.Name = toText(v)
	}
	if v, ok := firstPresent(raw, productFields["lenderName"]); ok {
		out.LenderName = toText(v)
	}
	if v, ok := firstPresent(raw, productFields["country"]); ok {
		out.Country = toCountry(v)
	}
	if v, ok := firstPresent(raw, productFields["category"]); ok {
		out.Category = toText(v)
	}
	if v, ok := firstPresent(raw, productFields["minAmount"]); ok {
		out.MinAmount = toNumber(v)
	}
	if v, ok := firstPresent(raw, productFields["maxAmount"]); ok {
		out.MaxAmount = toNumber(v)
	}
	if v, ok := firstPresent(raw, productFields["minRevenue"]); ok {
		out.MinRevenue = toNumber(v)
	}
	if v, ok := firstPresent(raw, productFields["industries"]); ok {
		out.Industries = toStringList(v)
	}
	if v, ok := firstPresent(raw, productFields["active"]); ok {
		out.Active = toActive(v)
	}
	if v, ok := firstPresent(raw, productFields["documents"]); ok {
		out.DocumentIDs = toStringList(v)
	}

	for key, value := range raw {
		if consumedProductKeys[key] {
			continue
		}
		if out.Raw == nil {
			out.Raw = make(map[string]interface{})
		}
		out.Raw[key] = value
	}

	return out
}

// toStringList accepts a []string, a JSON-decoded []interface{}, or a single
// string, dropping empty entries.
func toStringList(v interface{}) []string {
	var out []string
	switch val := v.(type) {
	case []string:
		for _, s := range val {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	case []interface{}:
		for _, item := range val {
			switch entry := item.(type) {
			case string:
				if s := strings.TrimSpace(entry); s != "" {
					out = append(out, s)
				}
			case map[string]interface{}:
				// Some catalog versions ship documents as objects.
				if s := toText(entry["id"]); s != "" {
					out = append(out, s)
				} else if s := toText(entry["label"]); s != "" {
					out = append(out, s)
				}
			}
		}
	case string:
		if s := strings.TrimSpace(val); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// toActive defaults to true; only an explicit negative disables a product.
func toActive(v interface{}) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "false", "inactive", "disabled", "no", "0":
			return false
		}
	case float64:
		return val != 0
	}
	return true
}
