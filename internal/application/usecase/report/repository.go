package report

import (
	"context"

	"github.com/Zerkath/finance-app/internal/domain/entity"
)

// DateTotal is the sum of transaction values sharing one exact date string.
type DateTotal struct {
	Date string
	Sum  float64
}

// CategorizedTransaction is a transaction value together with every category attached to it.
type CategorizedTransaction struct {
	ID         int64
	Value      float64
	Categories []entity.Category
}

// ReportRepository defines the read-only queries behind a period report.
// Every method takes the LIKE pattern produced by ResolvePeriod.
type ReportRepository interface {
	// GetDateTotals returns one row per distinct date_created matching pattern.
	GetDateTotals(ctx context.Context, pattern string) ([]DateTotal, error)

	// GetUncategorizedTotal sums transactions matching pattern that have no category link.
	// Returns 0 when nothing matches.
	GetUncategorizedTotal(ctx context.Context, pattern string) (float64, error)

	// GetCategorizedTransactions returns transactions matching pattern and flow that have
	// at least one category.
	GetCategorizedTransactions(ctx context.Context, pattern string, flow entity.Flow) ([]CategorizedTransaction, error)
}
