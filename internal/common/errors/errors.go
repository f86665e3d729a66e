// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

// Intake pipeline error codes.
const (
	ErrCodeIntakeValidationFailed ErrorCode = "INTAKE_VALIDATION_FAILED"
	ErrCodeIntakeNormalizeFailed  ErrorCode = "INTAKE_NORMALIZE_FAILED"

	ErrCodeCatalogSyncFailed   ErrorCode = "CATALOG_SYNC_FAILED"
	ErrCodeCatalogFetchFailed  ErrorCode = "CATALOG_FETCH_FAILED"
	ErrCodeCatalogCacheMissing ErrorCode = "CATALOG_CACHE_MISSING"

	ErrCodeEligibilityFilterFailed ErrorCode = "ELIGIBILITY_FILTER_FAILED"
	ErrCodeMatchScoringFailed      ErrorCode = "MATCH_SCORING_FAILED"
	ErrCodeDocumentCompileFailed   ErrorCode = "DOCUMENT_COMPILE_FAILED"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeQueryTimeout             ErrorCode = "QUERY_TIMEOUT"

	ErrCodeSearchQueryFailed ErrorCode = "SEARCH_QUERY_FAILED"
	ErrCodeSearchTimeout     ErrorCode = "SEARCH_TIMEOUT"
	ErrCodeIndexNotFound     ErrorCode = "INDEX_NOT_FOUND"

	ErrCodeDatabaseInsertFailed ErrorCode = "DATABASE_INSERT_FAILED"
	ErrCodeDuplicateSubmission  ErrorCode = "DUPLICATE_SUBMISSION"

	ErrCodeStaffAPIFailed  ErrorCode = "STAFF_API_FAILED"
	ErrCodeStaffAPITimeout ErrorCode = "STAFF_API_TIMEOUT"

	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"

	ErrCodeWorkflowEngineFailed  ErrorCode = "WORKFLOW_ENGINE_FAILED"
	ErrCodeWorkflowEngineTimeout ErrorCode = "WORKFLOW_ENGINE_TIMEOUT"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	if e.ErrorVariables != nil {
		for k, v := range e.ErrorVariables {
			vars[k] = v
		}
	}

	return vars
}

// ConvertToBPMNError maps a StandardError onto the workflow error contract.
func ConvertToBPMNError(err *StandardError) *BPMNError {
	return &BPMNError{
		Code:      string(err.Code),
		Message:   err.Message,
		Details:   err.Details,
		Retryable: err.Retryable,
		Retries:   GetRetryCount(err.Code),
		ErrorVariables: map[string]interface{}{
			"failedAt": err.Timestamp.Format(time.RFC3339),
		},
	}
}

// retryCounts maps retryable error codes to their retry budget. Codes not
// listed here are terminal.
var retryCounts = map[ErrorCode]int{
	ErrCodeCatalogSyncFailed:        3,
	ErrCodeCatalogFetchFailed:       3,
	ErrCodeDatabaseConnectionFailed: 5,
	ErrCodeQueryExecutionFailed:     3,
	ErrCodeQueryTimeout:             2,
	ErrCodeSearchQueryFailed:        3,
	ErrCodeSearchTimeout:            2,
	ErrCodeDatabaseInsertFailed:     3,
	ErrCodeStaffAPIFailed:           3,
	ErrCodeStaffAPITimeout:          2,
	ErrCodeNotificationSendFailed:   3,
	ErrCodeWorkflowEngineFailed:     3,
	ErrCodeWorkflowEngineTimeout:    2,
}

// GetRetryCount returns how many retries a failed job should get for a code.
func GetRetryCount(code ErrorCode) int {
	return retryCounts[code]
}

// ==========================
// 3. Error Constructors
// ==========================

// NewIntakeValidationFailedError creates a non-retryable intake validation error.
func NewIntakeValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeIntakeValidationFailed,
		Message:   "Intake data failed validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCatalogFetchFailedError creates a retryable staff-catalog fetch error.
func NewCatalogFetchFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCatalogFetchFailed,
		Message:   "Failed to fetch lender-product catalog",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCatalogCacheMissingError creates a retryable cache-miss error; the sync
// worker repopulates the cache.
func NewCatalogCacheMissingError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeCatalogCacheMissing,
		Message:   "Lender-product catalog cache is empty",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseConnectionFailedError creates a retryable database connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryExecutionFailedError creates a retryable query execution error.
func NewQueryExecutionFailedError(queryType string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryExecutionFailed,
		Message:   "Database query execution error",
		Details:   fmt.Sprintf("queryType: %s, error: %s", queryType, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSearchQueryFailedError creates a retryable search query error.
func NewSearchQueryFailedError(queryType string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchQueryFailed,
		Message:   "Catalog search query error",
		Details:   fmt.Sprintf("queryType: %s, error: %s", queryType, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewIndexNotFoundError creates a non-retryable index not found error.
func NewIndexNotFoundError(indexName string) *StandardError {
	return &StandardError{
		Code:      ErrCodeIndexNotFound,
		Message:   "Catalog search index not found",
		Details:   fmt.Sprintf("indexName: %s", indexName),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDuplicateSubmissionError creates a non-retryable duplicate submission
// error carrying the original application id.
func NewDuplicateSubmissionError(applicationID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeDuplicateSubmission,
		Message:   "Application already submitted for this contact",
		Details:   fmt.Sprintf("applicationId: %s", applicationID),
		Retryable: false,
		Metadata:  map[string]interface{}{"applicationId": applicationID},
		Timestamp: time.Now().UTC(),
	}
}

// NewStaffAPIFailedError creates a retryable staff backend error.
func NewStaffAPIFailedError(operation string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStaffAPIFailed,
		Message:   "Staff backend request failed",
		Details:   fmt.Sprintf("operation: %s, error: %s", operation, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationSendFailedError creates a retryable notification error.
func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Notification delivery failed",
		Details:   fmt.Sprintf("channel: %s, error: %s", channel, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewWorkflowEngineFailedError creates a retryable workflow engine error.
func NewWorkflowEngineFailedError(operation string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeWorkflowEngineFailed,
		Message:   "Workflow engine request failed",
		Details:   fmt.Sprintf("operation: %s, error: %s", operation, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewWorkflowEngineTimeoutError creates a retryable workflow engine timeout error.
func NewWorkflowEngineTimeoutError(operation string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeWorkflowEngineTimeout,
		Message:   "Workflow engine request timed out",
		Details:   fmt.Sprintf("operation: %s, error: %s", operation, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}
