package report

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zerkath/finance-app/internal/domain/entity"
	domainerror "github.com/Zerkath/finance-app/internal/domain/error"
)

func TestResolvePeriod(t *testing.T) {
	tests := []struct {
		name        string
		date        string
		granularity entity.Granularity
		pattern     string
		code        domainerror.ReportErrorCode
	}{
		{name: "year", date: "2023-11-01", granularity: entity.GranularityYear, pattern: "2023-__-__"},
		{name: "month", date: "2023-11-01", granularity: entity.GranularityMonth, pattern: "2023-11-__"},
		{name: "month is taken verbatim", date: "2023-1-5", granularity: entity.GranularityMonth, pattern: "2023-1-__"},
		{name: "two parts", date: "2023-11", granularity: entity.GranularityYear, code: domainerror.ErrCodeInvalidReportDate},
		{name: "four parts", date: "2023-11-01-01", granularity: entity.GranularityMonth, code: domainerror.ErrCodeInvalidReportDate},
		{name: "empty date", date: "", granularity: entity.GranularityYear, code: domainerror.ErrCodeInvalidReportDate},
		{name: "unknown granularity", date: "2023-11-01", granularity: "WEEK", code: domainerror.ErrCodeInvalidReportType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			period, err := ResolvePeriod(tt.date, tt.granularity)
			if tt.code != "" {
				var reportErr *domainerror.ReportError
				require.ErrorAs(t, err, &reportErr)
				assert.Equal(t, tt.code, reportErr.Code)
				assert.True(t, errors.Is(err, domainerror.ErrInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.pattern, period.Pattern)
			assert.Equal(t, tt.granularity, period.Granularity)
		})
	}
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		pattern string
		days    int
	}{
		{"2023-01-__", 31},
		{"2023-02-__", 28},
		{"2024-02-__", 29},
		{"1900-02-__", 28},
		{"2000-02-__", 29},
		{"2023-04-__", 30},
		{"2023-11-__", 30},
		{"2023-12-__", 31},
		{"2023-12", 31},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			days, err := DaysInMonth(tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.days, days)
		})
	}

	for _, bad := range []string{"2023", "abcd-01-__", "2023-xx-__", "2023-13-__", "2023-00-__"} {
		t.Run("invalid "+bad, func(t *testing.T) {
			_, err := DaysInMonth(bad)
			assert.ErrorIs(t, err, domainerror.ErrInvalidInput)
		})
	}
}

func TestBucketKeys(t *testing.T) {
	year := Period{Granularity: entity.GranularityYear, Year: "2023"}
	keys := year.monthBucketKeys()
	require.Len(t, keys, 12)
	assert.Equal(t, "2023-01", keys[0])
	assert.Equal(t, "2023-12", keys[11])

	month := Period{Granularity: entity.GranularityMonth, Year: "2024", Month: "02"}
	days := month.dayBucketKeys(29)
	require.Len(t, days, 29)
	assert.Equal(t, "2024-02-01", days[0])
	assert.Equal(t, "2024-02-29", days[28])
}
