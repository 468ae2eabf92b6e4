// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/Zerkath/finance-app/internal/application/adapter"
	"github.com/Zerkath/finance-app/internal/domain/entity"
	domainerror "github.com/Zerkath/finance-app/internal/domain/error"
	"github.com/Zerkath/finance-app/internal/integration/persistence/model"
)

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

// Create inserts the transaction and its category links, then fills in the
// generated ID and the linked categories.
func (r *transactionRepository) Create(ctx context.Context, transaction *entity.Transaction, categoryIDs []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		transactionModel := model.TransactionFromEntity(transaction)
		if err := tx.Create(transactionModel).Error; err != nil {
			return err
		}
		transaction.ID = transactionModel.ID

		if len(categoryIDs) > 0 {
			links := model.LinksFor(transaction.ID, categoryIDs)
			if err := tx.Create(&links).Error; err != nil {
				return err
			}
		}

		var categoryModels []model.CategoryModel
		if len(categoryIDs) > 0 {
			if err := tx.Where("id IN ?", categoryIDs).Order("id ASC").Find(&categoryModels).Error; err != nil {
				return err
			}
		}
		transaction.Categories = make([]entity.Category, len(categoryModels))
		for i := range categoryModels {
			transaction.Categories[i] = *categoryModels[i].ToEntity()
		}
		return nil
	})
}

// Exists checks whether a transaction with the given ID exists.
func (r *transactionRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.TransactionModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindByFilter retrieves one page of transactions ordered by date then ID, and the total match count.
func (r *transactionRepository) FindByFilter(
	ctx context.Context,
	filter adapter.TransactionFilter,
	pagination adapter.TransactionPagination,
) ([]*entity.Transaction, int64, error) {
	var total int64
	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var transactionModels []model.TransactionModel
	err := r.filtered(ctx, filter).
		Order("date_created ASC, id ASC").
		Offset((pagination.Page - 1) * pagination.Limit).
		Limit(pagination.Limit).
		Find(&transactionModels).Error
	if err != nil {
		return nil, 0, err
	}

	transactions := make([]*entity.Transaction, len(transactionModels))
	for i := range transactionModels {
		transactions[i] = transactionModels[i].ToEntity()
	}
	return transactions, total, nil
}

func (r *transactionRepository) filtered(ctx context.Context, filter adapter.TransactionFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&model.TransactionModel{})

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("(LOWER(name) LIKE ? OR LOWER(COALESCE(description, '')) LIKE ?)", pattern, pattern)
	}

	if len(filter.CategoryIDs) > 0 {
		linked := r.db.WithContext(ctx).
			Model(&model.TransactionCategoryModel{}).
			Select("transaction_id").
			Where("category_id IN ?", filter.CategoryIDs)
		query = query.Where("id IN (?)", linked)
	}

	return query
}

// ReplaceCategories swaps the category links of a transaction in one transaction.
func (r *transactionRepository) ReplaceCategories(ctx context.Context, id int64, categoryIDs []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("transaction_id = ?", id).Delete(&model.TransactionCategoryModel{}).Error; err != nil {
			return err
		}
		if len(categoryIDs) == 0 {
			return nil
		}
		links := model.LinksFor(id, categoryIDs)
		return tx.Create(&links).Error
	})
}

// Delete removes the transaction and its category links in one transaction.
func (r *transactionRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("transaction_id = ?", id).Delete(&model.TransactionCategoryModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.TransactionModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrTransactionNotFound
		}
		return nil
	})
}
