// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/shopspring/decimal"

	"github.com/Zerkath/finance-app/internal/domain/entity"
)

// CreateTransactionRequest represents the request body for transaction creation.
// Value accepts a JSON number or a decimal string.
type CreateTransactionRequest struct {
	Value       *decimal.Decimal `json:"value" binding:"required"`
	Name        string           `json:"name"`
	Description *string          `json:"description"`
	DateCreated string           `json:"date_created"`
	CategoryIDs []int64          `json:"categories"`
}

// SetTransactionCategoriesRequest represents the request body for replacing a transaction's categories.
type SetTransactionCategoriesRequest struct {
	CategoryIDs []int64 `json:"categories"`
}

// SetTransactionCategoriesResponse lists the categories actually linked.
type SetTransactionCategoriesResponse struct {
	CategoryIDs []int64 `json:"categories"`
}

// ListTransactionsQuery represents the query parameters for listing transactions.
type ListTransactionsQuery struct {
	PageSize    int     `form:"page_size"`
	CurrentPage int     `form:"current_page"`
	Search      string  `form:"search"`
	CategoryIDs []int64 `form:"category"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID          int64              `json:"id"`
	Value       float64            `json:"value"`
	Name        string             `json:"name"`
	Description *string            `json:"description"`
	DateCreated string             `json:"date_created"`
	Categories  []CategoryResponse `json:"categories"`
}

// TransactionPageResponse represents one page of transactions.
type TransactionPageResponse struct {
	TotalPages   int                   `json:"total_pages"`
	Total        int64                 `json:"total"`
	Transactions []TransactionResponse `json:"transactions"`
}

// ToTransactionResponse converts a domain Transaction entity to a TransactionResponse DTO.
func ToTransactionResponse(tx *entity.Transaction) TransactionResponse {
	categories := make([]CategoryResponse, len(tx.Categories))
	for i, c := range tx.Categories {
		categories[i] = ToCategoryResponse(c)
	}
	return TransactionResponse{
		ID:          tx.ID,
		Value:       tx.Value,
		Name:        tx.Name,
		Description: tx.Description,
		DateCreated: tx.DateCreated,
		Categories:  categories,
	}
}

// ToTransactionPageResponse converts a TransactionPage to a TransactionPageResponse.
func ToTransactionPageResponse(page entity.TransactionPage, total int64) TransactionPageResponse {
	out := make([]TransactionResponse, len(page.Transactions))
	for i, tx := range page.Transactions {
		out[i] = ToTransactionResponse(tx)
	}
	return TransactionPageResponse{
		TotalPages:   page.TotalPages,
		Total:        total,
		Transactions: out,
	}
}
