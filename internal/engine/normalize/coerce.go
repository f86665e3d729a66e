// internal/engine/normalize/coerce.go
package normalize

import (
	"strconv"
	"strings"

	"boreal-workers/internal/models"
)

// numericChars keeps digits, decimal point, and sign while stripping
// currency formatting ("$40,000.50 " -> "40000.50").
func stripCurrency(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// toNumber coerces an arbitrary JSON-decoded value into a non-negative
// float64. Unparseable input yields 0; it never fails.
func toNumber(v interface{}) float64 {
	var n float64
	switch val := v.(type) {
	case float64:
		n = val
	case float32:
		n = float64(val)
	case int:
		n = float64(val)
	case int64:
		n = float64(val)
	case string:
		parsed, err := strconv.ParseFloat(stripCurrency(strings.TrimSpace(val)), 64)
		if err != nil {
			return 0
		}
		n = parsed
	default:
		return 0
	}
	if n < 0 {
		return 0
	}
	return n
}

// toText coerces a value to a trimmed string, or "" when absent/non-string.
func toText(v interface{}) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

var countryAliases = map[string]string{
	"CANADA":        models.CountryCA,
	"UNITED STATES": models.CountryUS,
	"USA":           models.CountryUS,
	"U.S.":          models.CountryUS,
	"U.S.A.":        models.CountryUS,
}

// toCountry resolves free-text business-location values to a 2-letter code.
// Unrecognized values become CountryUnknown rather than a guessed country.
func toCountry(v interface{}) string {
	s := strings.ToUpper(toText(v))
	if s == "" {
		return models.CountryUnknown
	}
	if code, ok := countryAliases[s]; ok {
		return code
	}
	if len(s) == 2 && isLetters(s) {
		return s
	}
	return models.CountryUnknown
}

func isLetters(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// yearsBuckets maps the bucketed business-age enum carried by legacy form
// versions onto representative numeric values.
var yearsBuckets = map[string]float64{
	"<1yr":  0.5,
	"1-3yr": 2,
	"3+yr":  4,
}

// toYears accepts either a direct numeric value or a bucketed enum.
func toYears(v interface{}) float64 {
	if s, ok := v.(string); ok {
		key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
		if years, ok := yearsBuckets[key]; ok {
			return years
		}
	}
	return toNumber(v)
}

// firstPresent probes candidate keys in order and returns the first present,
// non-nil value.
func firstPresent(raw map[string]interface{}, candidates []string) (interface{}, bool) {
	for _, key := range candidates {
		if v, ok := raw[key]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}
