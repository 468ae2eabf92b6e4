// Package category contains category-related use cases.
package category

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

// MaxCategoryLabelLength is the maximum allowed length for category labels.
const MaxCategoryLabelLength = 50

// CreateCategoryInput represents the input for category creation.
type CreateCategoryInput struct {
	Label string
}

// CreateCategoryOutput represents the output of category creation.
type CreateCategoryOutput struct {
	Category *entity.Category
}

// CreateCategoryUseCase handles category creation logic.
type CreateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewCreateCategoryUseCase creates a new CreateCategoryUseCase instance.
func NewCreateCategoryUseCase(categoryRepo adapter.CategoryRepository) *CreateCategoryUseCase {
	return &CreateCategoryUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute performs the category creation. Creating a label that already exists
// returns the existing category.
func (uc *CreateCategoryUseCase) Execute(ctx context.Context, input CreateCategoryInput) (*CreateCategoryOutput, error) {
	category := entity.NewCategory(input.Label)

	if category.Label == "" {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryLabelEmpty,
			"category label is required",
			domainerror.ErrCategoryLabelEmpty,
		)
	}

	// Labels of a category set are joined with ", ".
	if strings.Contains(category.Label, ",") {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryLabelSeparator,
			"category label must not contain ','",
			domainerror.ErrCategoryLabelSeparator,
		)
	}

	if utf8.RuneCountInString(category.Label) > MaxCategoryLabelLength {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryLabelTooLong,
			fmt.Sprintf("category label must not exceed %d characters", MaxCategoryLabelLength),
			domainerror.ErrCategoryLabelTooLong,
		)
	}

	stored, err := uc.categoryRepo.Create(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	slog.DebugContext(ctx, "category stored", "category_id", stored.ID, "label", stored.Label)

	return &CreateCategoryOutput{
		Category: stored,
	}, nil
}
