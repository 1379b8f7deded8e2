package report

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

// Totals sums transactions by direction. Balance is always Income - Expense.
type Totals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Balance decimal.Decimal
}

func (t Totals) add(tx *transaction.Transaction) Totals {
	switch tx.Kind {
	case transaction.KindIncome:
		t.Income = t.Income.Add(tx.Amount)
	case transaction.KindExpense:
		t.Expense = t.Expense.Add(tx.Amount)
	}

	t.Balance = t.Income.Sub(t.Expense)

	return t
}

// Plus combines two totals.
func (t Totals) Plus(o Totals) Totals {
	income := t.Income.Add(o.Income)
	expense := t.Expense.Add(o.Expense)

	return Totals{Income: income, Expense: expense, Balance: income.Sub(expense)}
}

func Aggregate(txs []*transaction.Transaction) Totals {
	var t Totals
	for _, tx := range txs {
		t = t.add(tx)
	}

	return t
}

// AggregateByPerson returns one entry for every distinct person id in txs.
func AggregateByPerson(txs []*transaction.Transaction) map[uuid.UUID]Totals {
	return aggregateBy(txs, func(tx *transaction.Transaction) uuid.UUID { return tx.PersonID })
}

// AggregateByCategory returns one entry for every distinct category id in txs.
func AggregateByCategory(txs []*transaction.Transaction) map[uuid.UUID]Totals {
	return aggregateBy(txs, func(tx *transaction.Transaction) uuid.UUID { return tx.CategoryID })
}

func aggregateBy(txs []*transaction.Transaction, key func(*transaction.Transaction) uuid.UUID) map[uuid.UUID]Totals {
	out := make(map[uuid.UUID]Totals)
	for _, tx := range txs {
		k := key(tx)
		out[k] = out[k].add(tx)
	}

	return out
}
