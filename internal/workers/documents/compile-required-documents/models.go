// internal/workers/documents/compile-required-documents/models.go
package compilerequireddocuments

import "boreal-workers/internal/models"

type Input struct {
	Intake          models.Intake    `json:"intake"`
	MatchedProducts []models.Product `json:"matchedProducts"`
}

type Output struct {
	RequiredDocuments []models.RequiredDocument `json:"requiredDocuments"`
	DocumentCount     int                       `json:"documentCount"`
}
