// internal/workers/catalog/query-products/queries/builders.go
package queries

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

var (
	ErrUnknownQueryType = errors.New("unknown query type")
	ErrMissingIndex     = errors.New("index name is required")
)

// ProductQuery describes a catalog search request.
type ProductQuery struct {
	Index      string
	QueryType  string
	Filters    map[string]interface{}
	LenderName string
	Pagination struct {
		From int
		Size int
	}
}

// BuildQuery builds an Elasticsearch search request for the product catalog.
func BuildQuery(esClient *elasticsearch.Client, pq ProductQuery) (*esapi.SearchRequest, error) {
	if pq.Index == "" {
		return nil, ErrMissingIndex
	}

	var queryBody map[string]interface{}

	switch pq.QueryType {
	case "product_search":
		queryBody = BuildProductSearchQuery(pq)
	case "products_by_lender":
		queryBody = BuildLenderProductsQuery(pq)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownQueryType, pq.QueryType)
	}

	body, _ := json.Marshal(queryBody)

	req := esapi.SearchRequest{
		Index: []string{pq.Index},
		Body:  strings.NewReader(string(body)),
		From:  &pq.Pagination.From,
		Size:  &pq.Pagination.Size,
	}

	return &req, nil
}

// BuildProductSearchQuery assembles the main catalog search. Text matches on
// name, exact filters on country/category/active, range filter on amount.
func BuildProductSearchQuery(pq ProductQuery) map[string]interface{} {
	mustClauses := []interface{}{}
	filterClauses := []interface{}{}

	if keywords, ok := pq.Filters["keywords"].(string); ok && keywords != "" {
		mustClauses = append(mustClauses, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  keywords,
				"fields": []string{"name^3", "lenderName^2", "category"},
				"type":   "best_fields",
			},
		})
	}

	if country, ok := pq.Filters["country"].(string); ok && country != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"country": country},
		})
	}

	if category, ok := pq.Filters["category"].(string); ok && category != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"category": category},
		})
	}

	if activeOnly, ok := pq.Filters["activeOnly"].(bool); ok && activeOnly {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"active": true},
		})
	}

	// Amount filter: the requested amount must sit inside [minAmount, maxAmount].
	if amount, ok := pq.Filters["amount"].(float64); ok && amount > 0 {
		filterClauses = append(filterClauses, map[string]interface{}{
			"range": map[string]interface{}{"minAmount": map[string]interface{}{"lte": amount}},
		})
		filterClauses = append(filterClauses, map[string]interface{}{
			"range": map[string]interface{}{"maxAmount": map[string]interface{}{"gte": amount}},
		})
	}

	boolQuery := map[string]interface{}{}
	if len(mustClauses) > 0 {
		boolQuery["must"] = mustClauses
	}
	if len(filterClauses) > 0 {
		boolQuery["filter"] = filterClauses
	}
	if len(boolQuery) == 0 {
		return map[string]interface{}{
			"query": map[string]interface{}{"match_all": map[string]interface{}{}},
		}
	}

	return map[string]interface{}{
		"query": map[string]interface{}{"bool": boolQuery},
	}
}

// BuildLenderProductsQuery returns every product for one lender.
func BuildLenderProductsQuery(pq ProductQuery) map[string]interface{} {
	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"filter": []interface{}{
					map[string]interface{}{
						"term": map[string]interface{}{"lenderName": pq.LenderName},
					},
				},
			},
		},
		"sort": []interface{}{
			map[string]interface{}{"minAmount": map[string]interface{}{"order": "asc"}},
		},
	}
}
