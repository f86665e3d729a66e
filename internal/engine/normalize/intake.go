// internal/engine/normalize/intake.go

// Package normalize maps heterogeneous raw form and catalog payloads onto
// the canonical Intake and Product records. Field-name variance across form
// versions is handled with ordered candidate-key lists per target field, so
// a new legacy alias is a data change, not new code. Normalizers never fail
// on garbage input; they default to zero values and proceed.
package normalize

import "boreal-workers/internal/models"

// intakeFields lists the candidate raw keys per canonical Intake field,
// probed in order, first present non-nil value wins.
var intakeFields = map[string][]string{
	"country":           {"country", "businessCountry", "business_country", "headquarters", "businessLocation", "business_location"},
	"amountRequested":   {"amountRequested", "amount_requested", "fundingAmount", "requestedAmount", "funding_amount", "loanAmount", "amount"},
	"industry":          {"industry", "businessIndustry", "industryType", "industry_type", "business_industry"},
	"capitalUse":        {"capitalUse", "capital_use", "fundsPurpose", "useOfFunds", "use_of_funds", "lookingFor", "funds_purpose"},
	"yearsInBusiness":   {"yearsInBusiness", "businessAge", "years_in_business", "yearsOperating"},
	"revenue12m":        {"revenue12m", "annualRevenue", "revenueLastYear", "annual_revenue", "last12moRevenue"},
	"avgMonthlyRevenue": {"avgMonthlyRevenue", "monthlyRevenue", "averageMonthlyRevenue", "monthly_revenue"},
	"arBalance":         {"arBalance", "accountsReceivableBalance", "accounts_receivable_balance", "arAmount"},
	"fixedAssets":       {"fixedAssets", "fixedAssetsValue", "fixed_assets", "equipmentValue"},
}

// Intake builds the canonical applicant profile from an arbitrary raw form
// payload. Pure: the input map is only read, never mutated.
func Intake(raw map[string]interface{}) models.Intake {
	out := models.Intake{Country: models.CountryUnknown}
	if raw == nil {
		return out
	}

	if v, ok := firstPresent(raw, intakeFields["country"]); ok {
		out.Country = toCountry(v)
	}
	if v, ok := firstPresent(raw, intakeFields["amountRequested"]); ok {
		out.AmountRequested = toNumber(v)
	}
	if v, ok := firstPresent(raw, intakeFields["industry"]); ok {
		out.Industry = toText(v)
	}
	if v, ok := firstPresent(raw, intakeFields["capitalUse"]); ok {
		out.CapitalUse = toText(v)
	}
	if v, ok := firstPresent(raw, intakeFields["yearsInBusiness"]); ok {
		out.YearsInBusiness = toYears(v)
	}
	if v, ok := firstPresent(raw, intakeFields["revenue12m"]); ok {
		out.Revenue12M = toNumber(v)
	}
	if v, ok := firstPresent(raw, intakeFields["avgMonthlyRevenue"]); ok {
		out.AvgMonthlyRevenue = toNumber(v)
	}
	if v, ok := firstPresent(raw, intakeFields["arBalance"]); ok {
		out.ARBalance = toNumber(v)
	}
	if v, ok := firstPresent(raw, intakeFields["fixedAssets"]); ok {
		out.FixedAssets = toNumber(v)
	}

	return out
}
