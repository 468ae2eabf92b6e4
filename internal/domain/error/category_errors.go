// Package error defines domain-specific errors for the finance application.
package error

import "errors"

// Category domain errors.
var (
	// ErrCategoryNotFound is returned when a category is not found in the system.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrCategoryLabelEmpty is returned when a label is empty after normalization.
	ErrCategoryLabelEmpty = errors.New("category label is required")

	// ErrCategoryLabelSeparator is returned when a label contains the category-set separator.
	ErrCategoryLabelSeparator = errors.New("category label must not contain a comma")

	// ErrCategoryLabelTooLong is returned when the category label exceeds the maximum length.
	ErrCategoryLabelTooLong = errors.New("category label too long")
)

// CategoryErrorCode defines error codes for category errors.
// Format: CAT-XXYYYY where XX is category and YYYY is specific error.
type CategoryErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeCategoryLabelEmpty     CategoryErrorCode = "CAT-010001"
	ErrCodeCategoryLabelSeparator CategoryErrorCode = "CAT-010002"
	ErrCodeCategoryLabelTooLong   CategoryErrorCode = "CAT-010003"
	ErrCodeCategoryNotFound       CategoryErrorCode = "CAT-010004"
	ErrCodeMissingCategoryFields  CategoryErrorCode = "CAT-010005"
)

// CategoryError represents a category error with code and message.
type CategoryError struct {
	Code    CategoryErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *CategoryError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *CategoryError) Unwrap() error {
	return e.Err
}

// NewCategoryError creates a new CategoryError with the given code and message.
func NewCategoryError(code CategoryErrorCode, message string, err error) *CategoryError {
	return &CategoryError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
