// internal/models/application.go
package models

// Application is the packaged submission written to the staff backend's
// system of record once the wizard completes.
type Application struct {
	ID                string             `json:"id"`
	IdempotencyKey    string             `json:"idempotencyKey"`
	ContactEmail      string             `json:"contactEmail"`
	ContactPhone      string             `json:"contactPhone,omitempty"`
	Intake            Intake             `json:"intake"`
	MatchedProductIDs []string           `json:"matchedProductIds"`
	RequiredDocuments []RequiredDocument `json:"requiredDocuments"`
	Status            string             `json:"status"`
	CreatedAt         string             `json:"createdAt"`
	UpdatedAt         string             `json:"updatedAt"`
}

// Application statuses as stored in the applications table.
const (
	ApplicationStatusSubmitted = "submitted"
	ApplicationStatusDuplicate = "duplicate"
)
