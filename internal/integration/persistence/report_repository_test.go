package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Zerkath/finance-app/internal/application/usecase/report"
	"github.com/Zerkath/finance-app/internal/domain/entity"
)

// seedReportData loads a small ledger used by the report repository tests.
func seedReportData(t *testing.T, f *fixture) (foo, bar int64) {
	foo = f.category(t, "foo")
	bar = f.category(t, "bar")

	f.transaction(t, -1, "2023-11-01", foo)
	f.transaction(t, -1, "2023-11-01", foo)
	f.transaction(t, 1, "2023-11-02")
	f.transaction(t, 3, "2023-11-20", bar, foo)
	f.transaction(t, 0, "2023-11-21", bar)
	f.transaction(t, 10, "2023-01-15", foo, bar)
	f.transaction(t, 100, "2022-11-01")
	return foo, bar
}

func TestReportRepository(t *testing.T) {
	ctx := context.Background()
	f, db := newFixture(t)
	foo, bar := seedReportData(t, f)
	repo := NewReportRepository(db)

	t.Run("date totals grouped by exact date", func(t *testing.T) {
		totals, err := repo.GetDateTotals(ctx, "2023-11-__")
		require.NoError(t, err)
		assert.Equal(t, []report.DateTotal{
			{Date: "2023-11-01", Sum: -2},
			{Date: "2023-11-02", Sum: 1},
			{Date: "2023-11-20", Sum: 3},
			{Date: "2023-11-21", Sum: 0},
		}, totals)
	})

	t.Run("year pattern excludes other years", func(t *testing.T) {
		totals, err := repo.GetDateTotals(ctx, "2023-__-__")
		require.NoError(t, err)
		assert.Len(t, totals, 5)
	})

	t.Run("uncategorized total", func(t *testing.T) {
		sum, err := repo.GetUncategorizedTotal(ctx, "2023-__-__")
		require.NoError(t, err)
		assert.InDelta(t, 1.0, sum, 1e-9)

		empty, err := repo.GetUncategorizedTotal(ctx, "1999-__-__")
		require.NoError(t, err)
		assert.Zero(t, empty)
	})

	t.Run("categorized income", func(t *testing.T) {
		rows, err := repo.GetCategorizedTransactions(ctx, "2023-__-__", entity.FlowIncome)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		for _, row := range rows {
			assert.Greater(t, row.Value, 0.0)
			assert.Equal(t, []entity.Category{{ID: foo, Label: "foo"}, {ID: bar, Label: "bar"}}, row.Categories)
		}
	})

	t.Run("categorized expenses include zero", func(t *testing.T) {
		rows, err := repo.GetCategorizedTransactions(ctx, "2023-11-__", entity.FlowExpense)
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, []entity.Category{{ID: bar, Label: "bar"}}, rows[2].Categories)
		assert.Zero(t, rows[2].Value)
	})
}

func TestReportRepository_WithUseCase(t *testing.T) {
	ctx := context.Background()
	f, db := newFixture(t)
	seedReportData(t, f)
	uc := report.NewGetBasicReportUseCase(NewReportRepository(db))

	yearly, err := uc.Execute(ctx, report.GetBasicReportInput{Granularity: entity.GranularityYear, SelectedDate: "2023-06-15"})
	require.NoError(t, err)
	assert.InDelta(t, 12.0, yearly.Total, 1e-9)
	assert.InDelta(t, 1.0, yearly.Uncategorized, 1e-9)
	assert.InDelta(t, 10.0, yearly.Dates["2023-01"], 1e-9)
	assert.InDelta(t, 2.0, yearly.Dates["2023-11"], 1e-9)
	assert.Equal(t, map[string]float64{"foo, bar": 13}, yearly.CategoryIncome)
	assert.Equal(t, map[string]float64{"foo": -2, "bar": 0}, yearly.CategoryExpenses)

	monthly, err := uc.Execute(ctx, report.GetBasicReportInput{Granularity: entity.GranularityMonth, SelectedDate: "2023-11-01"})
	require.NoError(t, err)
	assert.Len(t, monthly.Dates, 30)
	assert.InDelta(t, -2.0, monthly.Dates["2023-11-01"], 1e-9)
	assert.InDelta(t, 3.0, monthly.Dates["2023-11-20"], 1e-9)
}

func TestReportRepository_ClosedDatabase(t *testing.T) {
	db := newTestDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	repo := NewReportRepository(db.Session(&gorm.Session{}))
	_, err = repo.GetDateTotals(context.Background(), "2023-__-__")
	assert.Error(t, err)
}
