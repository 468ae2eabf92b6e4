// Package category contains category-related use cases.
package category

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Zerkath/finance-app/internal/application/adapter"
	domainerror "github.com/Zerkath/finance-app/internal/domain/error"
)

// DeleteCategoryInput represents the input for category deletion.
type DeleteCategoryInput struct {
	CategoryID int64
}

// DeleteCategoryOutput represents the output of category deletion.
type DeleteCategoryOutput struct {
	Success bool
}

// DeleteCategoryUseCase handles category deletion logic.
type DeleteCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewDeleteCategoryUseCase creates a new DeleteCategoryUseCase instance.
func NewDeleteCategoryUseCase(categoryRepo adapter.CategoryRepository) *DeleteCategoryUseCase {
	return &DeleteCategoryUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute deletes the category and detaches it from every transaction.
// Transactions left without categories become uncategorized.
func (uc *DeleteCategoryUseCase) Execute(ctx context.Context, input DeleteCategoryInput) (*DeleteCategoryOutput, error) {
	if _, err := uc.categoryRepo.FindByID(ctx, input.CategoryID); err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return nil, notFound()
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}

	if err := uc.categoryRepo.Delete(ctx, input.CategoryID); err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return nil, notFound()
		}
		return nil, fmt.Errorf("failed to delete category: %w", err)
	}

	slog.InfoContext(ctx, "category deleted", "category_id", input.CategoryID)

	return &DeleteCategoryOutput{
		Success: true,
	}, nil
}

func notFound() error {
	return domainerror.NewCategoryError(
		domainerror.ErrCodeCategoryNotFound,
		"category not found",
		domainerror.ErrCategoryNotFound,
	)
}
