// internal/models/document.go
package models

// RequiredDocument is one entry in the compiled requirement list shown on
// the document-collection step. Order is a display hint only; ties keep
// first-seen order.
type RequiredDocument struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Optional bool   `json:"optional"`
	Order    int    `json:"order"`
}
