// Package report contains the period report use cases.
package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Zerkath/finance-app/internal/domain/entity"
	domainerror "github.com/Zerkath/finance-app/internal/domain/error"
)

// monthsInYear is the number of buckets in a YEAR report.
const monthsInYear = 12

// Period is a report period resolved from an anchor date.
type Period struct {
	Granularity entity.Granularity
	Pattern     string // LIKE pattern over date_created, "_" matches one character
	Year        string
	Month       string // empty for YEAR
}

// ResolvePeriod turns an anchor date and a granularity into the match pattern of the period.
// The month is taken verbatim from the input, so the anchor must already be YYYY-MM-DD.
func ResolvePeriod(selectedDate string, granularity entity.Granularity) (Period, error) {
	parts := strings.Split(selectedDate, "-")
	if len(parts) != 3 {
		return Period{}, domainerror.NewReportError(
			domainerror.ErrCodeInvalidReportDate,
			fmt.Sprintf("selected date %q must be YYYY-MM-DD", selectedDate),
			domainerror.ErrInvalidInput,
		)
	}
	year, month := parts[0], parts[1]

	switch granularity {
	case entity.GranularityYear:
		return Period{
			Granularity: granularity,
			Pattern:     year + "-__-__",
			Year:        year,
		}, nil
	case entity.GranularityMonth:
		return Period{
			Granularity: granularity,
			Pattern:     year + "-" + month + "-__",
			Year:        year,
			Month:       month,
		}, nil
	default:
		return Period{}, domainerror.NewReportError(
			domainerror.ErrCodeInvalidReportType,
			fmt.Sprintf("report type %q must be MONTH or YEAR", granularity),
			domainerror.ErrInvalidInput,
		)
	}
}

// DaysInMonth returns the number of calendar days of the month named by the
// first two dash-separated fields of pattern (year and month).
func DaysInMonth(pattern string) (int, error) {
	parts := strings.Split(pattern, "-")
	if len(parts) < 2 {
		return 0, invalidMonth(pattern)
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, invalidMonth(pattern)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return 0, invalidMonth(pattern)
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	next := first.AddDate(0, 1, 0)
	return int(next.Sub(first).Hours() / 24), nil
}

func invalidMonth(pattern string) error {
	return domainerror.NewReportError(
		domainerror.ErrCodeInvalidReportDate,
		fmt.Sprintf("%q does not name a calendar month", pattern),
		domainerror.ErrInvalidInput,
	)
}

// monthBucketKeys returns "{year}-01" through "{year}-12".
func (p Period) monthBucketKeys() []string {
	keys := make([]string, monthsInYear)
	for i := range keys {
		keys[i] = fmt.Sprintf("%s-%02d", p.Year, i+1)
	}
	return keys
}

// dayBucketKeys returns "{year}-{month}-01" through the last day of the month.
func (p Period) dayBucketKeys(days int) []string {
	keys := make([]string, days)
	for i := range keys {
		keys[i] = fmt.Sprintf("%s-%s-%02d", p.Year, p.Month, i+1)
	}
	return keys
}

// yearMonthOf truncates a YYYY-MM-DD date to its YYYY-MM prefix.
func yearMonthOf(date string) string {
	parts := strings.SplitN(date, "-", 3)
	if len(parts) < 2 {
		return date
	}
	return parts[0] + "-" + parts[1]
}
