// internal/workers/intake/validate-intake-data/models.go
package validateintakedata

type Input struct {
	IntakeData   map[string]interface{} `json:"intakeData"`
	ContactEmail string                 `json:"contactEmail"`
	ContactPhone string                 `json:"contactPhone"`
}

type Output struct {
	IsValid          bool                   `json:"isValid"`
	SanitizedContact map[string]string      `json:"sanitizedContact"`
	IntakeData       map[string]interface{} `json:"intakeData"`
	ValidationErrors []ValidationError      `json:"validationErrors"`
	LeadID           string                 `json:"leadId,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// intakeSchema gates the shape of the wizard payload, not its content. Unknown
// fields and odd value types are allowed; the normalizer absorbs those later.
const intakeSchema = `{
	"type": "object",
	"properties": {
		"country": {"type": ["string", "null"]},
		"industry": {"type": ["string", "null"]},
		"capitalUse": {"type": ["string", "null"]},
		"yearsInBusiness": {"type": ["string", "number", "null"]}
	},
	"additionalProperties": true
}`
