package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ValidateInput validates input against a JSON schema document.
func ValidateInput(input map[string]interface{}, schemaJSON string) (*ValidationResult, error) {
	schemaLoader := gojsonschema.NewStringLoader(schemaJSON)
	documentLoader := gojsonschema.NewGoLoader(input)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	validationErrors := make([]ValidationError, 0, len(result.Errors()))
	for _, resultErr := range result.Errors() {
		validationErrors = append(validationErrors, ValidationError{
			Field:   resultErr.Field(),
			Message: resultErr.Description(),
			Code:    strings.ToUpper(resultErr.Type()),
		})
	}

	return &ValidationResult{
		Valid:  result.Valid(),
		Errors: validationErrors,
	}, nil
}

// ValidateSchema checks that a schema document is itself valid JSON schema.
func ValidateSchema(schemaJSON string) error {
	loader := gojsonschema.NewStringLoader(schemaJSON)
	if _, err := gojsonschema.NewSchema(loader); err != nil {
		return fmt.Errorf("invalid JSON schema: %w", err)
	}
	return nil
}

// ValidateActivityNaming validates an activity ID follows the kebab-case
// task-type convention.
func ValidateActivityNaming(activityId string) error {
	namingPattern := regexp.MustCompile(`^[a-z]+(-[a-z]+)*$`)
	if !namingPattern.MatchString(activityId) {
		return fmt.Errorf("activity ID must be kebab-case (e.g., validate-intake-data)")
	}
	return nil
}

// GetErrorMessages returns a simple list of error messages
func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}

// HasErrors checks if validation has errors for specific field
func (vr *ValidationResult) HasErrors(field string) bool {
	for _, err := range vr.Errors {
		if err.Field == field {
			return true
		}
	}
	return false
}

// ValidateEmail validates email format
func ValidateEmail(email string) bool {
	emailPattern := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return emailPattern.MatchString(email)
}

// ValidatePhone validates basic phone number format
func ValidatePhone(phone string) bool {
	phonePattern := regexp.MustCompile(`^\+?[\d\s\-\(\)]{10,}$`)
	return phonePattern.MatchString(phone)
}
