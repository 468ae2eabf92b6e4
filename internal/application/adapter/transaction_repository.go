// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/Zerkath/finance-app/internal/domain/entity"
)

// TransactionFilter defines filter options for listing transactions.
type TransactionFilter struct {
	Search      string  // Case-insensitive match on name or description
	CategoryIDs []int64 // Any-of match; empty means no filter
}

// TransactionPagination defines pagination options.
type TransactionPagination struct {
	Page  int
	Limit int
}

// TransactionRepository defines the interface for transaction persistence operations.
type TransactionRepository interface {
	// Create inserts a transaction and links it to the given categories.
	Create(ctx context.Context, transaction *entity.Transaction, categoryIDs []int64) error

	// Exists checks whether a transaction with the given ID exists.
	Exists(ctx context.Context, id int64) (bool, error)

	// FindByFilter retrieves one page of transactions and the total match count.
	FindByFilter(ctx context.Context, filter TransactionFilter, pagination TransactionPagination) ([]*entity.Transaction, int64, error)

	// ReplaceCategories replaces the category links of a transaction.
	ReplaceCategories(ctx context.Context, id int64, categoryIDs []int64) error

	// Delete removes a transaction and its category links.
	Delete(ctx context.Context, id int64) error
}
