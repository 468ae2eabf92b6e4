// Package error defines domain-specific errors for the finance application.
package error

import "errors"

// Report domain errors.
var (
	// ErrInvalidInput is returned when the selected date or report type cannot be resolved into a period.
	ErrInvalidInput = errors.New("invalid input")

	// ErrStoreFailure is returned when a report sub-query fails in the underlying store.
	ErrStoreFailure = errors.New("store failure")
)

// ReportErrorCode defines error codes for report errors.
// Format: RPT-XXYYYY where XX is category and YYYY is specific error.
type ReportErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidReportDate ReportErrorCode = "RPT-010001"
	ErrCodeInvalidReportType ReportErrorCode = "RPT-010002"

	// Internal errors (99XXXX)
	ErrCodeReportStoreFailure ReportErrorCode = "RPT-990001"
)

// ReportError represents a report error with code and message.
type ReportError struct {
	Code    ReportErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ReportError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ReportError) Unwrap() error {
	return e.Err
}

// IsInvalidInput reports whether the error was caused by malformed input.
func (e *ReportError) IsInvalidInput() bool {
	return e.Code == ErrCodeInvalidReportDate || e.Code == ErrCodeInvalidReportType
}

// NewReportError creates a new ReportError with the given code and message.
func NewReportError(code ReportErrorCode, message string, err error) *ReportError {
	return &ReportError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
