// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/Zerkath/finance-app/internal/domain/entity"
)

// CreateCategoryRequest represents the request body for category creation.
type CreateCategoryRequest struct {
	Label string `json:"label" binding:"required"`
}

// CategoryResponse represents a single category in API responses.
type CategoryResponse struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
}

// CategoryListResponse represents the response for listing categories.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// ToCategoryResponse converts a domain Category entity to a CategoryResponse DTO.
func ToCategoryResponse(cat entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:    cat.ID,
		Label: cat.Label,
	}
}

// ToCategoryListResponse converts categories to a CategoryListResponse.
func ToCategoryListResponse(categories []*entity.Category) CategoryListResponse {
	out := make([]CategoryResponse, len(categories))
	for i, cat := range categories {
		out[i] = ToCategoryResponse(*cat)
	}
	return CategoryListResponse{Categories: out}
}
