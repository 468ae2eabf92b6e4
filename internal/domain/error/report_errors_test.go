package error

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReportError(t *testing.T) {
	t.Run("message includes wrapped error", func(t *testing.T) {
		err := NewReportError(ErrCodeInvalidReportDate, "selected date must be YYYY-MM-DD", ErrInvalidInput)
		assert.Equal(t, "selected date must be YYYY-MM-DD: invalid input", err.Error())
	})

	t.Run("message without wrapped error", func(t *testing.T) {
		err := NewReportError(ErrCodeInvalidReportType, "unsupported report type", nil)
		assert.Equal(t, "unsupported report type", err.Error())
	})

	t.Run("store failure unwraps to sentinel and cause", func(t *testing.T) {
		cause := errors.New("database is locked")
		err := NewReportError(ErrCodeReportStoreFailure, "failed to build report", fmt.Errorf("%w: %w", ErrStoreFailure, cause))

		assert.ErrorIs(t, err, ErrStoreFailure)
		assert.ErrorIs(t, err, cause)
		assert.False(t, err.IsInvalidInput())
	})

	t.Run("invalid input codes", func(t *testing.T) {
		assert.True(t, NewReportError(ErrCodeInvalidReportDate, "", nil).IsInvalidInput())
		assert.True(t, NewReportError(ErrCodeInvalidReportType, "", nil).IsInvalidInput())
	})

	t.Run("errors.As finds report error through wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("handler: %w", NewReportError(ErrCodeInvalidReportDate, "bad date", ErrInvalidInput))

		var rptErr *ReportError
		assert.True(t, errors.As(wrapped, &rptErr))
		assert.Equal(t, ErrCodeInvalidReportDate, rptErr.Code)
		assert.ErrorIs(t, wrapped, ErrInvalidInput)
	})
}
