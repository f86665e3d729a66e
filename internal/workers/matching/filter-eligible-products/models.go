// internal/workers/matching/filter-eligible-products/models.go
package filtereligibleproducts

import "boreal-workers/internal/models"

type Input struct {
	Intake models.Intake `json:"intake"`
	// Products overrides the cached catalog when present. Empty means load
	// from the catalog cache.
	Products []models.Product `json:"products,omitempty"`
}

type Output struct {
	MatchedProducts []models.Product  `json:"matchedProducts"`
	MatchedCount    int               `json:"matchedCount"`
	Exclusions      map[string]string `json:"exclusions"`
}

type cachedCatalog struct {
	Products []models.Product `json:"products"`
	SyncedAt string           `json:"syncedAt"`
}
