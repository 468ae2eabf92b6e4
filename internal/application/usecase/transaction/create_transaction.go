// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/Zerkath/finance-app/internal/application/adapter"
	"github.com/Zerkath/finance-app/internal/domain/entity"
	domainerror "github.com/Zerkath/finance-app/internal/domain/error"
)

const (
	// MaxNameLength is the maximum allowed length for transaction names.
	MaxNameLength = 255
	// MaxDescriptionLength is the maximum allowed length for transaction descriptions.
	MaxDescriptionLength = 1000
)

// CreateTransactionInput represents the input for transaction creation.
type CreateTransactionInput struct {
	Value       float64
	Name        string
	Description *string
	DateCreated string // YYYY-MM-DD
	CategoryIDs []int64
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction *entity.Transaction
}

// CreateTransactionUseCase handles transaction creation logic.
type CreateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
	}
}

// Execute performs the transaction creation. Category IDs that do not exist are skipped.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	categoryIDs, err := uc.categoryRepo.FindExistingIDs(ctx, dedupeIDs(input.CategoryIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve categories: %w", err)
	}
	if skipped := len(dedupeIDs(input.CategoryIDs)) - len(categoryIDs); skipped > 0 {
		slog.DebugContext(ctx, "skipping unknown categories", "skipped", skipped)
	}

	transaction := entity.NewTransaction(input.Value, strings.TrimSpace(input.Name), input.Description, input.DateCreated)

	if err := uc.transactionRepo.Create(ctx, transaction, categoryIDs); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return &CreateTransactionOutput{
		Transaction: transaction,
	}, nil
}

func validateInput(input CreateTransactionInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionNameRequired,
			"name is required",
			domainerror.ErrTransactionNameRequired,
		)
	}

	if utf8.RuneCountInString(name) > MaxNameLength {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeNameTooLong,
			fmt.Sprintf("name must not exceed %d characters", MaxNameLength),
			domainerror.ErrNameTooLong,
		)
	}

	if input.Description != nil && utf8.RuneCountInString(*input.Description) > MaxDescriptionLength {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeDescriptionTooLong,
			fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength),
			domainerror.ErrDescriptionTooLong,
		)
	}

	if !entity.IsValidDate(input.DateCreated) {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionDate,
			"date_created must be YYYY-MM-DD",
			domainerror.ErrInvalidTransactionDate,
		)
	}

	return nil
}

// dedupeIDs drops repeated IDs, keeping first occurrence order.
func dedupeIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
