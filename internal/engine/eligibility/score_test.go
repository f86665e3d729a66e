// internal/engine/eligibility/score_test.go
package eligibility

import (
	"testing"

	"boreal-workers/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestScore_SignalPoints(t *testing.T) {
	p := caProduct()
	p.Industries = []string{"Construction"}
	p.MinRevenue = 500000

	in := caIntake()
	assert.Equal(t, pointsMidRange, Score(p, in), "only mid-range signal with no extra data")

	in.CapitalUse = "working_capital"
	in.Industry = "construction"
	in.Revenue12M = 750000
	assert.Equal(t, pointsCategoryMatch+pointsIndustryMatch+pointsRevenueMatch+pointsMidRange, Score(p, in))
}

func TestScore_NeverExcludes(t *testing.T) {
	// A zero score still ranks; scoring orders, eligibility excludes.
	p := caProduct()
	in := caIntake()
	in.AmountRequested = p.MinAmount // endpoint: no mid-range points

	matches := Rank([]models.Product{p}, in)
	assert.Len(t, matches, 1)
	assert.Equal(t, 0, matches[0].Score)
}

func TestRank_StableOnTies(t *testing.T) {
	a, b, c := caProduct(), caProduct(), caProduct()
	a.ID, b.ID, c.ID = "a", "b", "c"
	// b wins on category; a and c tie and must keep catalog order.
	b.Category = "term_loan"

	in := caIntake()
	in.CapitalUse = "term_loan"

	matches := Rank([]models.Product{a, b, c}, in)
	assert.Equal(t, []string{"b", "a", "c"}, []string{matches[0].Product.ID, matches[1].Product.ID, matches[2].Product.ID})
	assert.Greater(t, matches[0].Score, matches[1].Score)
	assert.Equal(t, matches[1].Score, matches[2].Score)
}

func TestRank_DropsIneligible(t *testing.T) {
	a, b := caProduct(), caProduct()
	a.ID, b.ID = "a", "b"
	b.Country = models.CountryUS

	matches := Rank([]models.Product{a, b}, caIntake())
	assert.Len(t, matches, 1)
	assert.Equal(t, "a", matches[0].Product.ID)
}

func TestRank_ReasonsExplainSignals(t *testing.T) {
	p := caProduct()
	in := caIntake()
	in.CapitalUse = "working_capital"

	matches := Rank([]models.Product{p}, in)
	assert.Len(t, matches, 1)
	assert.Contains(t, matches[0].Reasons, "category matches stated use of funds")
}
