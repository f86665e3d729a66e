// internal/workers/catalog/query-products/queries/builders_test.go
package queries

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildQuery_RequiresIndex(t *testing.T) {
	_, err := BuildQuery(nil, ProductQuery{QueryType: "product_search"})
	assert.ErrorIs(t, err, ErrMissingIndex)
}

func TestBuildQuery_RejectsUnknownType(t *testing.T) {
	_, err := BuildQuery(nil, ProductQuery{Index: "lender-products", QueryType: "nope"})
	assert.ErrorIs(t, err, ErrUnknownQueryType)
}

func TestBuildProductSearchQuery_Filters(t *testing.T) {
	pq := ProductQuery{
		Filters: map[string]interface{}{
			"country":    "CA",
			"category":   "working_capital",
			"activeOnly": true,
			"amount":     40000.0,
		},
	}

	body := BuildProductSearchQuery(pq)
	boolQuery := body["query"].(map[string]interface{})["bool"].(map[string]interface{})
	filters := boolQuery["filter"].([]interface{})

	// country + category + active + two range clauses for the amount
	require.Len(t, filters, 5)
	assert.NotContains(t, boolQuery, "must", "no text clause without keywords")
}

func TestBuildProductSearchQuery_KeywordsUseMultiMatch(t *testing.T) {
	pq := ProductQuery{
		Filters: map[string]interface{}{"keywords": "equipment"},
	}

	body := BuildProductSearchQuery(pq)
	boolQuery := body["query"].(map[string]interface{})["bool"].(map[string]interface{})
	must := boolQuery["must"].([]interface{})

	require.Len(t, must, 1)
	multiMatch := must[0].(map[string]interface{})["multi_match"].(map[string]interface{})
	assert.Equal(t, "equipment", multiMatch["query"])
}

func TestBuildProductSearchQuery_NoFiltersMatchesAll(t *testing.T) {
	body := BuildProductSearchQuery(ProductQuery{Filters: map[string]interface{}{}})
	assert.Contains(t, body["query"].(map[string]interface{}), "match_all")
}

func TestBuildLenderProductsQuery(t *testing.T) {
	body := BuildLenderProductsQuery(ProductQuery{LenderName: "Boreal Capital"})

	boolQuery := body["query"].(map[string]interface{})["bool"].(map[string]interface{})
	filters := boolQuery["filter"].([]interface{})
	require.Len(t, filters, 1)

	term := filters[0].(map[string]interface{})["term"].(map[string]interface{})
	assert.Equal(t, "Boreal Capital", term["lenderName"])
	assert.Contains(t, body, "sort")
}
