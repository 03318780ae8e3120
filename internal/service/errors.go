package service

import (
	"errors"
	"fmt"
)

// Common service errors.
//
// Error handling principles:
// 1. Validation problems are returned as *domain.ValidationError or wrap domain.ErrEmptyContent
// 2. Provider exhaustion is returned as *generation.Failure, unwrapped
// 3. Anything else is wrapped in a StudyServiceError naming the operation
// 4. The API layer maps these to HTTP status codes
var (
	// ErrNilGenerator is returned when the service is constructed without a generator.
	ErrNilGenerator = errors.New("generator cannot be nil")
)

// StudyServiceError wraps unexpected failures with the operation that hit them.
type StudyServiceError struct {
	// Operation is the feature that failed (e.g., "quiz", "document_chat")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error
	Err error
}

// Error implements the error interface for StudyServiceError.
func (e *StudyServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("study service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("study service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StudyServiceError) Unwrap() error {
	return e.Err
}

// NewStudyServiceError creates a StudyServiceError, or returns nil for a nil err.
func NewStudyServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}
	return &StudyServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
