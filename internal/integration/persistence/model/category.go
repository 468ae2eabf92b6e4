// Package model defines database models for persistence layer.
package model

import (
	"github.com/Zerkath/finance-app/internal/domain/entity"
)

// CategoryModel represents the categories table in the database.
type CategoryModel struct {
	ID    int64  `gorm:"primaryKey;autoIncrement"`
	Label string `gorm:"type:varchar(50);not null;uniqueIndex"`
}

// TableName returns the table name for the CategoryModel.
func (CategoryModel) TableName() string {
	return "categories"
}

// ToEntity converts a CategoryModel to a domain Category entity.
func (m *CategoryModel) ToEntity() *entity.Category {
	return &entity.Category{
		ID:    m.ID,
		Label: m.Label,
	}
}

// CategoryFromEntity creates a CategoryModel from a domain Category entity.
func CategoryFromEntity(category *entity.Category) *CategoryModel {
	return &CategoryModel{
		ID:    category.ID,
		Label: category.Label,
	}
}
