// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"fmt"

	"github.com/Zerkath/finance-app/internal/application/adapter"
)

// SetTransactionCategoriesInput represents the input for replacing a transaction's categories.
type SetTransactionCategoriesInput struct {
	TransactionID int64
	CategoryIDs   []int64
}

// SetTransactionCategoriesOutput represents the output of replacing a transaction's categories.
type SetTransactionCategoriesOutput struct {
	CategoryIDs []int64 // the IDs actually linked
}

// SetTransactionCategoriesUseCase replaces the category set of a transaction.
type SetTransactionCategoriesUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
}

// NewSetTransactionCategoriesUseCase creates a new SetTransactionCategoriesUseCase instance.
func NewSetTransactionCategoriesUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
) *SetTransactionCategoriesUseCase {
	return &SetTransactionCategoriesUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
	}
}

// Execute links exactly the given categories to the transaction. Unknown category
// IDs are skipped and an empty list leaves the transaction uncategorized.
func (uc *SetTransactionCategoriesUseCase) Execute(
	ctx context.Context,
	input SetTransactionCategoriesInput,
) (*SetTransactionCategoriesOutput, error) {
	if err := ensureExists(ctx, uc.transactionRepo, input.TransactionID); err != nil {
		return nil, err
	}

	categoryIDs, err := uc.categoryRepo.FindExistingIDs(ctx, dedupeIDs(input.CategoryIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve categories: %w", err)
	}

	if err := uc.transactionRepo.ReplaceCategories(ctx, input.TransactionID, categoryIDs); err != nil {
		return nil, fmt.Errorf("failed to replace transaction categories: %w", err)
	}

	if categoryIDs == nil {
		categoryIDs = []int64{}
	}
	return &SetTransactionCategoriesOutput{
		CategoryIDs: categoryIDs,
	}, nil
}
