// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Zerkath/finance-app/internal/application/adapter"
	domainerror "github.com/Zerkath/finance-app/internal/domain/error"
)

// DeleteTransactionInput represents the input for transaction deletion.
type DeleteTransactionInput struct {
	TransactionID int64
}

// DeleteTransactionUseCase handles transaction deletion logic.
type DeleteTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewDeleteTransactionUseCase creates a new DeleteTransactionUseCase instance.
func NewDeleteTransactionUseCase(transactionRepo adapter.TransactionRepository) *DeleteTransactionUseCase {
	return &DeleteTransactionUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute removes the transaction and its category links.
func (uc *DeleteTransactionUseCase) Execute(ctx context.Context, input DeleteTransactionInput) error {
	if err := ensureExists(ctx, uc.transactionRepo, input.TransactionID); err != nil {
		return err
	}

	if err := uc.transactionRepo.Delete(ctx, input.TransactionID); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	slog.InfoContext(ctx, "transaction deleted", "transaction_id", input.TransactionID)
	return nil
}

func ensureExists(ctx context.Context, repo adapter.TransactionRepository, id int64) error {
	exists, err := repo.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check transaction existence: %w", err)
	}
	if !exists {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionNotFound,
			"transaction not found",
			domainerror.ErrTransactionNotFound,
		)
	}
	return nil
}
