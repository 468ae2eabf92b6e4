package report

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Zerkath/finance-app/internal/domain/entity"
	domainerror "github.com/Zerkath/finance-app/internal/domain/error"
)

// GetBasicReportInput represents the input for building a period report.
type GetBasicReportInput struct {
	Granularity  entity.Granularity
	SelectedDate string
}

// GetBasicReportUseCase aggregates the transactions of one period into a BasicReport.
type GetBasicReportUseCase struct {
	reportRepo ReportRepository
}

// NewGetBasicReportUseCase creates a new GetBasicReportUseCase instance.
func NewGetBasicReportUseCase(reportRepo ReportRepository) *GetBasicReportUseCase {
	return &GetBasicReportUseCase{
		reportRepo: reportRepo,
	}
}

// Execute builds the report for the period containing input.SelectedDate.
// Any failing sub-query aborts the whole report.
func (uc *GetBasicReportUseCase) Execute(ctx context.Context, input GetBasicReportInput) (*entity.BasicReport, error) {
	period, err := ResolvePeriod(input.SelectedDate, input.Granularity)
	if err != nil {
		return nil, err
	}

	// Resolve the bucket count up front so a bad month fails before any query runs.
	var buckets []string
	switch period.Granularity {
	case entity.GranularityYear:
		buckets = period.monthBucketKeys()
	case entity.GranularityMonth:
		days, err := DaysInMonth(period.Pattern)
		if err != nil {
			return nil, err
		}
		buckets = period.dayBucketKeys(days)
	}

	slog.DebugContext(ctx, "building basic report",
		"granularity", period.Granularity,
		"pattern", period.Pattern,
	)

	dateTotals, err := uc.reportRepo.GetDateTotals(ctx, period.Pattern)
	if err != nil {
		return nil, uc.storeFailure(ctx, "date totals", err)
	}

	var total float64
	for _, dt := range dateTotals {
		total += dt.Sum
	}

	uncategorized, err := uc.reportRepo.GetUncategorizedTotal(ctx, period.Pattern)
	if err != nil {
		return nil, uc.storeFailure(ctx, "uncategorized total", err)
	}

	income, err := uc.categorySums(ctx, period.Pattern, entity.FlowIncome)
	if err != nil {
		return nil, err
	}

	expenses, err := uc.categorySums(ctx, period.Pattern, entity.FlowExpense)
	if err != nil {
		return nil, err
	}

	return &entity.BasicReport{
		Total:            total,
		Uncategorized:    uncategorized,
		Dates:            fillDates(period, buckets, dateTotals),
		CategoryIncome:   income,
		CategoryExpenses: expenses,
	}, nil
}

// categorySums groups the period's categorized transactions of one flow by their
// exact category set and returns the sums keyed by the set label.
func (uc *GetBasicReportUseCase) categorySums(ctx context.Context, pattern string, flow entity.Flow) (map[string]float64, error) {
	rows, err := uc.reportRepo.GetCategorizedTransactions(ctx, pattern, flow)
	if err != nil {
		return nil, uc.storeFailure(ctx, fmt.Sprintf("category %s", flow), err)
	}

	sums := make(map[string]float64)
	labels := make(map[string]string)
	for _, row := range rows {
		set := entity.NewCategorySet(row.Categories)
		if set.Len() == 0 || !flow.Matches(row.Value) {
			continue
		}
		key := set.Key()
		sums[key] += row.Value
		labels[key] = set.Label()
	}

	out := make(map[string]float64, len(sums))
	for key, sum := range sums {
		out[labels[key]] = sum
	}
	return out, nil
}

func (uc *GetBasicReportUseCase) storeFailure(ctx context.Context, query string, err error) error {
	slog.ErrorContext(ctx, "report query failed", "query", query, "error", err)
	return domainerror.NewReportError(
		domainerror.ErrCodeReportStoreFailure,
		"failed to get "+query,
		fmt.Errorf("%w: %w", domainerror.ErrStoreFailure, err),
	)
}

// fillDates zero-fills every bucket of the period and folds the sparse totals into it.
// YEAR buckets accumulate all days of a month. MONTH buckets take the row for that
// exact day. Rows outside the bucket set are dropped.
func fillDates(period Period, buckets []string, totals []DateTotal) map[string]float64 {
	dates := make(map[string]float64, len(buckets))
	for _, key := range buckets {
		dates[key] = 0
	}

	for _, dt := range totals {
		switch period.Granularity {
		case entity.GranularityYear:
			key := yearMonthOf(dt.Date)
			if _, ok := dates[key]; ok {
				dates[key] += dt.Sum
			}
		case entity.GranularityMonth:
			if _, ok := dates[dt.Date]; ok {
				dates[dt.Date] = dt.Sum
			}
		}
	}
	return dates
}
