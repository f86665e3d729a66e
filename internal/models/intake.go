// internal/models/intake.go
package models

// Country codes recognized across the intake pipeline. CountryUnknown marks
// a value that could not be resolved to a supported region; it is never
// silently rewritten to a guessed country.
const (
	CountryUS      = "US"
	CountryCA      = "CA"
	CountryUnknown = "NA"
)

// Intake is the canonical applicant request profile produced by the
// normalizer from a raw step-1 form payload. It is immutable once built;
// later wizard steps re-read it rather than patching it.
type Intake struct {
	Country           string  `json:"country"`
	AmountRequested   float64 `json:"amountRequested"`
	Industry          string  `json:"industry,omitempty"`
	CapitalUse        string  `json:"capitalUse,omitempty"`
	YearsInBusiness   float64 `json:"yearsInBusiness"`
	Revenue12M        float64 `json:"revenue12m"`
	AvgMonthlyRevenue float64 `json:"avgMonthlyRevenue"`
	ARBalance         float64 `json:"arBalance"`
	FixedAssets       float64 `json:"fixedAssets"`
}
