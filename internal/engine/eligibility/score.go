// internal/engine/eligibility/score.go
package eligibility

import (
	"sort"
	"strings"

	"boreal-workers/internal/models"
)

// Point values for signals matched beyond the eligibility bar. Scoring only
// orders an already-eligible set; it never excludes.
const (
	pointsCategoryMatch = 40
	pointsIndustryMatch = 30
	pointsRevenueMatch  = 20
	pointsMidRange      = 10
)

// Match pairs an eligible product with its ranking score and the signals
// that contributed to it.
type Match struct {
	Product models.Product `json:"product"`
	Score   int            `json:"score"`
	Reasons []string       `json:"reasons,omitempty"`
}

// Score sums fixed points for each additional signal the product matches.
func Score(p models.Product, in models.Intake) int {
	score, _ := scoreWithReasons(p, in)
	return score
}

func scoreWithReasons(p models.Product, in models.Intake) (int, []string) {
	score := 0
	var reasons []string

	if in.CapitalUse != "" && strings.EqualFold(p.Category, in.CapitalUse) {
		score += pointsCategoryMatch
		reasons = append(reasons, "category matches stated use of funds")
	}
	if in.Industry != "" && containsFold(p.Industries, in.Industry) {
		score += pointsIndustryMatch
		reasons = append(reasons, "lender serves this industry")
	}
	if p.MinRevenue > 0 && in.Revenue12M >= p.MinRevenue {
		score += pointsRevenueMatch
		reasons = append(reasons, "annual revenue clears lender minimum")
	}
	// A request comfortably inside the product range beats one hugging an
	// endpoint.
	if !p.Unbounded() && in.AmountRequested > p.MinAmount && in.AmountRequested < p.MaxAmount {
		score += pointsMidRange
		reasons = append(reasons, "requested amount well within range")
	}

	return score, reasons
}

// Rank filters a catalog down to eligible products and orders them by score
// descending. The sort is stable: ties keep catalog order.
func Rank(products []models.Product, in models.Intake) []Match {
	var matches []Match
	for _, p := range products {
		if !Eligible(p, in) {
			continue
		}
		score, reasons := scoreWithReasons(p, in)
		matches = append(matches, Match{Product: p, Score: score, Reasons: reasons})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}
