// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/Zerkath/finance-app/internal/application/usecase/report"
	"github.com/Zerkath/finance-app/internal/domain/entity"
)

// reportRepository implements the report.ReportRepository interface.
type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository instance.
func NewReportRepository(db *gorm.DB) report.ReportRepository {
	return &reportRepository{
		db: db,
	}
}

// GetDateTotals returns the sum of values per distinct date matching pattern.
func (r *reportRepository) GetDateTotals(ctx context.Context, pattern string) ([]report.DateTotal, error) {
	var results []struct {
		DateCreated string  `gorm:"column:date_created"`
		Total       float64 `gorm:"column:total"`
	}

	err := r.db.WithContext(ctx).
		Raw(`
			SELECT date_created, SUM(value) AS total
			FROM transactions
			WHERE date_created LIKE ?
			GROUP BY date_created
			ORDER BY date_created
		`, pattern).
		Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get date totals: %w", err)
	}

	totals := make([]report.DateTotal, len(results))
	for i, res := range results {
		totals[i] = report.DateTotal{Date: res.DateCreated, Sum: res.Total}
	}
	return totals, nil
}

// GetUncategorizedTotal sums values of matching transactions without any category link.
func (r *reportRepository) GetUncategorizedTotal(ctx context.Context, pattern string) (float64, error) {
	var result struct {
		Total float64 `gorm:"column:total"`
	}

	err := r.db.WithContext(ctx).
		Raw(`
			SELECT COALESCE(SUM(t.value), 0) AS total
			FROM transactions t
			WHERE t.date_created LIKE ?
				AND NOT EXISTS (
					SELECT 1 FROM transaction_categories tc WHERE tc.transaction_id = t.id
				)
		`, pattern).
		Scan(&result).Error
	if err != nil {
		return 0, fmt.Errorf("failed to get uncategorized total: %w", err)
	}
	return result.Total, nil
}

// GetCategorizedTransactions returns matching transactions of one flow with their categories.
func (r *reportRepository) GetCategorizedTransactions(
	ctx context.Context,
	pattern string,
	flow entity.Flow,
) ([]report.CategorizedTransaction, error) {
	valueCondition := "t.value <= 0"
	if flow == entity.FlowIncome {
		valueCondition = "t.value > 0"
	}

	var rows []struct {
		TransactionID int64   `gorm:"column:transaction_id"`
		Value         float64 `gorm:"column:value"`
		CategoryID    int64   `gorm:"column:category_id"`
		Label         string  `gorm:"column:label"`
	}

	query := fmt.Sprintf(`
		SELECT t.id AS transaction_id, t.value AS value, c.id AS category_id, c.label AS label
		FROM transactions t
		JOIN transaction_categories tc ON tc.transaction_id = t.id
		JOIN categories c ON c.id = tc.category_id
		WHERE t.date_created LIKE ?
			AND %s
		ORDER BY t.id, c.id
	`, valueCondition)

	if err := r.db.WithContext(ctx).Raw(query, pattern).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get categorized %s transactions: %w", flow, err)
	}

	// Rows arrive grouped by transaction.
	var out []report.CategorizedTransaction
	for _, row := range rows {
		if n := len(out); n > 0 && out[n-1].ID == row.TransactionID {
			out[n-1].Categories = append(out[n-1].Categories, entity.Category{ID: row.CategoryID, Label: row.Label})
			continue
		}
		out = append(out, report.CategorizedTransaction{
			ID:         row.TransactionID,
			Value:      row.Value,
			Categories: []entity.Category{{ID: row.CategoryID, Label: row.Label}},
		})
	}
	return out, nil
}
