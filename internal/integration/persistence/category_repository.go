// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Zerkath/finance-app/internal/application/adapter"
	"github.com/Zerkath/finance-app/internal/domain/entity"
	domainerror "github.com/Zerkath/finance-app/internal/domain/error"
	"github.com/Zerkath/finance-app/internal/integration/persistence/model"
)

// categoryRepository implements the adapter.CategoryRepository interface.
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository instance.
func NewCategoryRepository(db *gorm.DB) adapter.CategoryRepository {
	return &categoryRepository{
		db: db,
	}
}

// Create inserts the category unless its label is taken, then returns the stored row.
func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) (*entity.Category, error) {
	categoryModel := model.CategoryFromEntity(category)
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "label"}}, DoNothing: true}).
		Create(categoryModel)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected > 0 && categoryModel.ID != 0 {
		return categoryModel.ToEntity(), nil
	}

	var existing model.CategoryModel
	if err := r.db.WithContext(ctx).Where("label = ?", category.Label).First(&existing).Error; err != nil {
		return nil, fmt.Errorf("failed to load category %q: %w", category.Label, err)
	}
	return existing.ToEntity(), nil
}

// FindAll retrieves every category ordered by ID.
func (r *categoryRepository) FindAll(ctx context.Context) ([]*entity.Category, error) {
	var categoryModels []model.CategoryModel
	result := r.db.WithContext(ctx).Order("id ASC").Find(&categoryModels)
	if result.Error != nil {
		return nil, result.Error
	}

	categories := make([]*entity.Category, len(categoryModels))
	for i := range categoryModels {
		categories[i] = categoryModels[i].ToEntity()
	}
	return categories, nil
}

// FindByID retrieves a category by its ID.
func (r *categoryRepository) FindByID(ctx context.Context, id int64) (*entity.Category, error) {
	var categoryModel model.CategoryModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&categoryModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCategoryNotFound
		}
		return nil, result.Error
	}
	return categoryModel.ToEntity(), nil
}

// FindExistingIDs returns the subset of ids present in the categories table, in input order.
func (r *categoryRepository) FindExistingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var found []int64
	if err := r.db.WithContext(ctx).Model(&model.CategoryModel{}).Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
		return nil, err
	}

	present := make(map[int64]struct{}, len(found))
	for _, id := range found {
		present[id] = struct{}{}
	}
	existing := make([]int64, 0, len(found))
	for _, id := range ids {
		if _, ok := present[id]; ok {
			existing = append(existing, id)
		}
	}
	return existing, nil
}

// FindByTransactionIDs returns the categories linked to each transaction, ordered by category ID.
func (r *categoryRepository) FindByTransactionIDs(ctx context.Context, transactionIDs []int64) (map[int64][]entity.Category, error) {
	out := make(map[int64][]entity.Category, len(transactionIDs))
	if len(transactionIDs) == 0 {
		return out, nil
	}

	var rows []struct {
		TransactionID int64  `gorm:"column:transaction_id"`
		CategoryID    int64  `gorm:"column:category_id"`
		Label         string `gorm:"column:label"`
	}
	err := r.db.WithContext(ctx).
		Table("transaction_categories tc").
		Select("tc.transaction_id, c.id AS category_id, c.label").
		Joins("JOIN categories c ON c.id = tc.category_id").
		Where("tc.transaction_id IN ?", transactionIDs).
		Order("tc.transaction_id ASC, c.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		out[row.TransactionID] = append(out[row.TransactionID], entity.Category{ID: row.CategoryID, Label: row.Label})
	}
	return out, nil
}

// Delete removes the category and its transaction links in one transaction.
func (r *categoryRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", id).Delete(&model.TransactionCategoryModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.CategoryModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrCategoryNotFound
		}
		return nil
	})
}
