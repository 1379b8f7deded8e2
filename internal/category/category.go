package category

import (
	"time"

	"github.com/google/uuid"
)

// Purpose restricts which transaction kinds a category accepts.
type Purpose string

const (
	PurposeExpense Purpose = "expense"
	PurposeIncome  Purpose = "income"
	PurposeBoth    Purpose = "both"
)

func (p Purpose) Valid() bool {
	switch p {
	case PurposeExpense, PurposeIncome, PurposeBoth:
		return true
	}

	return false
}

func (p Purpose) String() string {
	switch p {
	case PurposeExpense:
		return "Expense"
	case PurposeIncome:
		return "Income"
	case PurposeBoth:
		return "Both"
	}

	return "Unknown"
}

// Category labels transactions.
type Category struct {
	ID          uuid.UUID
	Description string
	Purpose     Purpose
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
