// Package entity defines the core business entities for the domain layer.
package entity

import (
	"sort"
	"strconv"
	"strings"
)

// CategorySetSeparator joins labels in a category-set label.
const CategorySetSeparator = ", "

// Category represents a user-defined transaction category.
type Category struct {
	ID    int64
	Label string
}

// NewCategory creates a new Category entity with a normalized label.
func NewCategory(label string) *Category {
	return &Category{
		Label: NormalizeLabel(label),
	}
}

// NormalizeLabel lower-cases a label and trims surrounding whitespace.
func NormalizeLabel(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

// CategorySet is the exact combination of categories attached to one transaction,
// kept sorted by category ID so equal combinations compare equal.
type CategorySet struct {
	categories []Category
}

// NewCategorySet builds a canonical set from categories in any order.
// Duplicate IDs are collapsed.
func NewCategorySet(categories []Category) CategorySet {
	sorted := make([]Category, 0, len(categories))
	seen := make(map[int64]struct{}, len(categories))
	for _, c := range categories {
		if _, ok := seen[c.ID]; ok {
			continue
		}
		seen[c.ID] = struct{}{}
		sorted = append(sorted, c)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ID < sorted[j].ID
	})
	return CategorySet{categories: sorted}
}

// Key returns the identity of the set, derived from category IDs only.
func (s CategorySet) Key() string {
	ids := make([]string, len(s.categories))
	for i, c := range s.categories {
		ids[i] = strconv.FormatInt(c.ID, 10)
	}
	return strings.Join(ids, ",")
}

// Label returns the labels of the set in ID order joined by CategorySetSeparator.
func (s CategorySet) Label() string {
	labels := make([]string, len(s.categories))
	for i, c := range s.categories {
		labels[i] = c.Label
	}
	return strings.Join(labels, CategorySetSeparator)
}

// Len returns the number of categories in the set.
func (s CategorySet) Len() int {
	return len(s.categories)
}

// Categories returns a copy of the sorted categories.
func (s CategorySet) Categories() []Category {
	out := make([]Category, len(s.categories))
	copy(out, s.categories)
	return out
}
