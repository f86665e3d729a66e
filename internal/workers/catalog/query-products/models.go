// internal/workers/catalog/query-products/models.go
package queryproducts

type Input struct {
	QueryType  string                 `json:"queryType"`
	Filters    map[string]interface{} `json:"filters"`
	LenderName string                 `json:"lenderName"`
	Pagination map[string]interface{} `json:"pagination"`
}

type Output struct {
	Data      []map[string]interface{} `json:"data"`
	TotalHits int64                    `json:"totalHits"`
	MaxScore  float64                  `json:"maxScore"`
	Took      int64                    `json:"took"`
}
