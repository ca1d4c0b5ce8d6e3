// Package errors provides standardized error handling for the onboarding survey
// and recommendation pipeline.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeStepValidationFailed ErrorCode = "STEP_VALIDATION_FAILED"
	ErrCodeInvalidPayload       ErrorCode = "INVALID_PAYLOAD"

	ErrCodeSubmissionInProgress ErrorCode = "SUBMISSION_IN_PROGRESS"
	ErrCodeSubmissionFailed     ErrorCode = "SUBMISSION_FAILED"
	ErrCodeSubmissionTimeout    ErrorCode = "SUBMISSION_TIMEOUT"

	ErrCodeRecommendationFetchFailed ErrorCode = "RECOMMENDATION_FETCH_FAILED"

	ErrCodeExplanationFetchFailed ErrorCode = "EXPLANATION_FETCH_FAILED"
	ErrCodeExplanationTimeout     ErrorCode = "EXPLANATION_TIMEOUT"

	ErrCodeDraftStoreFailed ErrorCode = "DRAFT_STORE_FAILED"

	ErrCodeExternalService ErrorCode = "EXTERNAL_SERVICE_ERROR"
	ErrCodeTimeout         ErrorCode = "TIMEOUT_ERROR"
	ErrCodeInternal        ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// WithMetadata returns e with key set in its metadata.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// ==========================
// 2. Error Constructors
// ==========================

// NewStepValidationError creates a non-retryable error for a rejected wizard step.
// The message is the validator's human-readable text.
func NewStepValidationError(step int, stepKey, message string) *StandardError {
	return &StandardError{
		Code:      ErrCodeStepValidationFailed,
		Message:   message,
		Details:   fmt.Sprintf("step: %d (%s)", step, stepKey),
		Retryable: false,
		Metadata: map[string]interface{}{
			"step":    step,
			"stepKey": stepKey,
		},
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidPayloadError creates a non-retryable payload schema error.
func NewInvalidPayloadError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidPayload,
		Message:   "Survey payload failed schema validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSubmissionInProgressError is returned when a submission is already in flight.
func NewSubmissionInProgressError() *StandardError {
	return &StandardError{
		Code:      ErrCodeSubmissionInProgress,
		Message:   "Survey submission already in progress",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSubmissionFailedError creates a retryable submission error.
func NewSubmissionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSubmissionFailed,
		Message:   "Survey submission failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewSubmissionTimeoutError creates a retryable submission timeout error.
func NewSubmissionTimeoutError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSubmissionTimeout,
		Message:   "Survey submission timed out",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewRecommendationFetchFailedError creates a retryable recommendation list error.
func NewRecommendationFetchFailedError(kind string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeRecommendationFetchFailed,
		Message:   "Could not load recommendations",
		Details:   fmt.Sprintf("kind: %s, error: %s", kind, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewExplanationFetchFailedError creates a retryable on-demand explanation error.
func NewExplanationFetchFailedError(targetID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeExplanationFetchFailed,
		Message:   "Could not load AI explanation",
		Details:   fmt.Sprintf("targetId: %s, error: %s", targetID, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewExplanationTimeoutError creates a retryable explanation timeout error.
func NewExplanationTimeoutError(targetID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeExplanationTimeout,
		Message:   "AI explanation timed out",
		Details:   fmt.Sprintf("targetId: %s, error: %s", targetID, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewDraftStoreFailedError creates a retryable draft persistence error.
func NewDraftStoreFailedError(op string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDraftStoreFailed,
		Message:   "Survey draft storage error",
		Details:   fmt.Sprintf("op: %s, error: %s", op, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// Generic constructors

// NewExternalServiceError wraps a retryable failure of service.
func NewExternalServiceError(service string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeExternalService,
		Message:   fmt.Sprintf("External service '%s' error", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewTimeoutError wraps a deadline hit while calling service.
func NewTimeoutError(service string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeTimeout,
		Message:   fmt.Sprintf("Service '%s' timeout", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// AsStandardError returns the first StandardError in err's chain.
func AsStandardError(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code ErrorCode) bool {
	stdErr, ok := AsStandardError(err)
	return ok && stdErr.Code == code
}

// GetRetryCount returns the recommended client-side retry count for a code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeSubmissionFailed,
		ErrCodeRecommendationFetchFailed,
		ErrCodeExplanationFetchFailed,
		ErrCodeExternalService,
		ErrCodeDraftStoreFailed:
		return 3

	case ErrCodeSubmissionTimeout,
		ErrCodeExplanationTimeout,
		ErrCodeTimeout:
		return 1

	default:
		return 0
	}
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "VALIDATION") || strings.Contains(codeStr, "PAYLOAD"):
		return "VALIDATION"
	case strings.Contains(codeStr, "SUBMISSION"):
		return "SUBMISSION"
	case strings.Contains(codeStr, "RECOMMENDATION"):
		return "RECOMMENDATION"
	case strings.Contains(codeStr, "EXPLANATION"):
		return "EXPLANATION"
	case strings.Contains(codeStr, "DRAFT"):
		return "STORAGE"
	case strings.Contains(codeStr, "EXTERNAL") || strings.Contains(codeStr, "TIMEOUT"):
		return "NETWORK"
	default:
		return "OTHER"
	}
}
