// Package errors provides a lightweight structured error type (InkwellError)
// for category-based classification and retry semantics in HTTP adapters and CLI.
package errors

import (
	"fmt"
)

// ErrorCategory represents the category of an Inkwell error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"
	CategoryAuth       ErrorCategory = "auth"

	// External system integration errors
	CategoryNetwork  ErrorCategory = "network"
	CategoryUpstream ErrorCategory = "upstream"
	CategoryMail     ErrorCategory = "mail"

	// Content lookup errors
	CategoryNotFound ErrorCategory = "not_found"

	// Runtime and infrastructure errors
	CategoryRuntime  ErrorCategory = "runtime"
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
	SeverityInfo    ErrorSeverity = "info"    // Informational, no impact
)

// InkwellError is a structured error with category, retryability, and context
type InkwellError struct {
	Category  ErrorCategory `json:"category"`
	Severity  ErrorSeverity `json:"severity"`
	Message   string        `json:"message"`
	Cause     error         `json:"cause,omitempty"`
	Retryable bool          `json:"retryable"`
	Context   ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for InkwellError
type ContextFields map[string]any

// Error implements the error interface
func (e *InkwellError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *InkwellError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *InkwellError) WithContext(key string, value any) *InkwellError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new InkwellError
func New(category ErrorCategory, severity ErrorSeverity, message string) *InkwellError {
	return &InkwellError{
		Category:  category,
		Severity:  severity,
		Message:   message,
		Retryable: false,
	}
}

// Wrap creates a new InkwellError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *InkwellError {
	return &InkwellError{
		Category:  category,
		Severity:  severity,
		Message:   message,
		Cause:     err,
		Retryable: false,
	}
}

// Retryable creates a new retryable InkwellError
func Retryable(category ErrorCategory, severity ErrorSeverity, message string) *InkwellError {
	return &InkwellError{
		Category:  category,
		Severity:  severity,
		Message:   message,
		Retryable: true,
	}
}

// WrapRetryable creates a new retryable InkwellError that wraps an existing error
func WrapRetryable(err error, category ErrorCategory, severity ErrorSeverity, message string) *InkwellError {
	return &InkwellError{
		Category:  category,
		Severity:  severity,
		Message:   message,
		Cause:     err,
		Retryable: true,
	}
}

// IsCategory checks if an error belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if ie, ok := err.(*InkwellError); ok {
		return ie.Category == category
	}
	return false
}

// IsRetryable checks if an error is retryable
func IsRetryable(err error) bool {
	if ie, ok := err.(*InkwellError); ok {
		return ie.Retryable
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal if not an InkwellError
func GetCategory(err error) ErrorCategory {
	if ie, ok := err.(*InkwellError); ok {
		return ie.Category
	}
	return CategoryInternal
}

// ValidationError creates a new validation error (400 Bad Request)
func ValidationError(message string) *InkwellError {
	return &InkwellError{
		Category:  CategoryValidation,
		Severity:  SeverityWarning,
		Message:   message,
		Retryable: false,
	}
}

// NotFoundError creates a new not-found error (404)
func NotFoundError(message string) *InkwellError {
	return &InkwellError{
		Category:  CategoryNotFound,
		Severity:  SeverityInfo,
		Message:   message,
		Retryable: false,
	}
}

// UpstreamError wraps a source-store failure (502 Bad Gateway)
func UpstreamError(err error, message string) *InkwellError {
	return &InkwellError{
		Category:  CategoryUpstream,
		Severity:  SeverityError,
		Message:   message,
		Cause:     err,
		Retryable: true,
	}
}

// WrapError wraps an existing error with a new InkwellError
func WrapError(err error, category ErrorCategory, message string) *InkwellError {
	return &InkwellError{
		Category:  category,
		Severity:  SeverityError,
		Message:   message,
		Cause:     err,
		Retryable: false,
	}
}
