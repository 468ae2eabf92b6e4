// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"fmt"
	"strings"

	"github.com/Zerkath/finance-app/internal/application/adapter"
	"github.com/Zerkath/finance-app/internal/domain/entity"
)

const (
	// DefaultPageSize is used when the caller does not ask for a page size.
	DefaultPageSize = 20
	// MaxPageSize caps the page size.
	MaxPageSize = 100
)

// ListTransactionsInput represents the input for listing transactions.
type ListTransactionsInput struct {
	PageSize    int
	CurrentPage int // 1-based
	Search      string
	CategoryIDs []int64
}

// ListTransactionsOutput represents the output of listing transactions.
type ListTransactionsOutput struct {
	Page  entity.TransactionPage
	Total int64
}

// ListTransactionsUseCase handles listing transactions logic.
type ListTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
	}
}

// Execute performs the transaction listing.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	// Set default pagination values
	page := input.CurrentPage
	if page < 1 {
		page = 1
	}
	limit := input.PageSize
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	filter := adapter.TransactionFilter{
		Search:      strings.TrimSpace(strings.ReplaceAll(input.Search, "%", "")),
		CategoryIDs: dedupeIDs(input.CategoryIDs),
	}

	transactions, total, err := uc.transactionRepo.FindByFilter(ctx, filter, adapter.TransactionPagination{
		Page:  page,
		Limit: limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	ids := make([]int64, len(transactions))
	for i, tx := range transactions {
		ids[i] = tx.ID
	}
	categories, err := uc.categoryRepo.FindByTransactionIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load transaction categories: %w", err)
	}
	for _, tx := range transactions {
		tx.Categories = categories[tx.ID]
		if tx.Categories == nil {
			tx.Categories = []entity.Category{}
		}
	}

	if transactions == nil {
		transactions = []*entity.Transaction{}
	}

	return &ListTransactionsOutput{
		Page: entity.TransactionPage{
			TotalPages:   totalPages(total, limit),
			Transactions: transactions,
		},
		Total: total,
	}, nil
}

// totalPages is 1 for an empty result, otherwise ceil(total/limit).
func totalPages(total int64, limit int) int {
	if total == 0 {
		return 1
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
