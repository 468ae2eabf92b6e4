// Package model defines database models for persistence layer.
package model

import (
	"github.com/Zerkath/finance-app/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database.
type TransactionModel struct {
	ID          int64   `gorm:"primaryKey;autoIncrement"`
	Value       float64 `gorm:"type:double precision;not null"`
	Name        string  `gorm:"type:varchar(255);not null"`
	Description *string `gorm:"type:varchar(1000)"`
	DateCreated string  `gorm:"type:varchar(10);not null;index"` // YYYY-MM-DD, matched with LIKE by reports
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
// Categories are loaded separately.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	return &entity.Transaction{
		ID:          m.ID,
		Value:       m.Value,
		Name:        m.Name,
		Description: m.Description,
		DateCreated: m.DateCreated,
		Categories:  []entity.Category{},
	}
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(transaction *entity.Transaction) *TransactionModel {
	return &TransactionModel{
		ID:          transaction.ID,
		Value:       transaction.Value,
		Name:        transaction.Name,
		Description: transaction.Description,
		DateCreated: transaction.DateCreated,
	}
}

// TransactionCategoryModel represents the transaction_categories link table.
type TransactionCategoryModel struct {
	TransactionID int64 `gorm:"primaryKey;autoIncrement:false"`
	CategoryID    int64 `gorm:"primaryKey;autoIncrement:false;index"`

	// Relationships declare the cascading foreign keys; never loaded.
	Transaction *TransactionModel `gorm:"foreignKey:TransactionID;references:ID;constraint:OnDelete:CASCADE"`
	Category    *CategoryModel    `gorm:"foreignKey:CategoryID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for the TransactionCategoryModel.
func (TransactionCategoryModel) TableName() string {
	return "transaction_categories"
}

// LinksFor builds the link rows attaching categoryIDs to a transaction.
func LinksFor(transactionID int64, categoryIDs []int64) []TransactionCategoryModel {
	links := make([]TransactionCategoryModel, len(categoryIDs))
	for i, id := range categoryIDs {
		links[i] = TransactionCategoryModel{TransactionID: transactionID, CategoryID: id}
	}
	return links
}

// AllModels lists every model in migration order.
func AllModels() []interface{} {
	return []interface{}{
		&CategoryModel{},
		&TransactionModel{},
		&TransactionCategoryModel{},
	}
}
