// internal/workers/intake/normalize-intake/models.go
package normalizeintake

import "boreal-workers/internal/models"

type Input struct {
	IntakeData map[string]interface{} `json:"intakeData"`
}

type Output struct {
	Intake models.Intake `json:"intake"`
}
