// internal/workers/matching/score-product-matches/models.go
package scoreproductmatches

import "boreal-workers/internal/models"

type Input struct {
	Intake   models.Intake    `json:"intake"`
	Products []models.Product `json:"matchedProducts"`
}

type RankedMatch struct {
	Product models.Product `json:"product"`
	Score   int            `json:"score"`
	Reasons []string       `json:"reasons"`
}

type Output struct {
	RankedMatches []RankedMatch `json:"rankedMatches"`
	TopProductID  string        `json:"topProductId,omitempty"`
}
