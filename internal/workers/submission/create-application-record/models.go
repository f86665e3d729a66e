// internal/workers/submission/create-application-record/models.go
package createapplicationrecord

import "boreal-workers/internal/models"

type Input struct {
	ContactEmail      string                    `json:"contactEmail"`
	ContactPhone      string                    `json:"contactPhone"`
	Intake            models.Intake             `json:"intake"`
	MatchedProducts   []models.Product          `json:"matchedProducts"`
	RequiredDocuments []models.RequiredDocument `json:"requiredDocuments"`
}

type Output struct {
	ApplicationID  string `json:"applicationId"`
	IdempotencyKey string `json:"idempotencyKey"`
	Status         string `json:"status"`
	Duplicate      bool   `json:"duplicate"`
	CreatedAt      string `json:"createdAt"`

	// StaffApplicationID is the id assigned by the staff origination system
	// when forwarding is enabled and succeeded.
	StaffApplicationID string `json:"staffApplicationId,omitempty"`
}
