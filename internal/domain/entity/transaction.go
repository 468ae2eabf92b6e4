// Package entity defines the core business entities for the domain layer.
package entity

import "time"

// DateLayout is the storage format of a transaction's creation date.
const DateLayout = "2006-01-02"

// Transaction represents a financial transaction.
// A positive Value is income, zero or negative is an expense.
type Transaction struct {
	ID          int64
	Value       float64
	Name        string
	Description *string
	DateCreated string // YYYY-MM-DD
	Categories  []Category
}

// NewTransaction creates a new Transaction entity. The ID is assigned by the store.
func NewTransaction(value float64, name string, description *string, dateCreated string) *Transaction {
	return &Transaction{
		Value:       value,
		Name:        name,
		Description: description,
		DateCreated: dateCreated,
		Categories:  []Category{},
	}
}

// IsValidDate reports whether date is a calendar date in YYYY-MM-DD form.
func IsValidDate(date string) bool {
	if len(date) != len(DateLayout) {
		return false
	}
	_, err := time.Parse(DateLayout, date)
	return err == nil
}

// TransactionPage is one page of a transaction listing.
type TransactionPage struct {
	TotalPages   int
	Transactions []*Transaction
}
