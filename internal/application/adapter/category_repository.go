// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/Zerkath/finance-app/internal/domain/entity"
)

// CategoryRepository defines the interface for category persistence operations.
type CategoryRepository interface {
	// Create inserts a category. It returns the stored category, which is the
	// existing row when the normalized label is already taken.
	Create(ctx context.Context, category *entity.Category) (*entity.Category, error)

	// FindAll retrieves every category ordered by ID.
	FindAll(ctx context.Context) ([]*entity.Category, error)

	// FindByID retrieves a category by its ID.
	FindByID(ctx context.Context, id int64) (*entity.Category, error)

	// FindExistingIDs returns the subset of ids that exist, in input order.
	FindExistingIDs(ctx context.Context, ids []int64) ([]int64, error)

	// FindByTransactionIDs returns the categories of each transaction, ordered by category ID.
	FindByTransactionIDs(ctx context.Context, transactionIDs []int64) (map[int64][]entity.Category, error)

	// Delete removes a category and every link to it in one unit of work.
	Delete(ctx context.Context, id int64) error
}
