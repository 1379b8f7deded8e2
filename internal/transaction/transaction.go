package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind is the direction of a transaction.
type Kind string

const (
	KindExpense Kind = "expense"
	KindIncome  Kind = "income"
)

func (k Kind) Valid() bool {
	switch k {
	case KindExpense, KindIncome:
		return true
	}

	return false
}

func (k Kind) String() string {
	switch k {
	case KindExpense:
		return "Expense"
	case KindIncome:
		return "Income"
	}

	return "Unknown"
}

// Transaction is a single recorded monetary event. It is immutable once stored.
type Transaction struct {
	ID          uuid.UUID
	Description string
	Amount      decimal.Decimal // Always positive; Kind carries the direction
	Kind        Kind
	PersonID    uuid.UUID
	CategoryID  uuid.UUID
	CreatedAt   time.Time

	// Loaded via JOIN, empty on freshly built values.
	PersonName          string
	CategoryDescription string
}
