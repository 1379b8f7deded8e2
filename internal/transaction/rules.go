package transaction

import (
	"time"

	"github.com/MrJamesThe3rd/tally/internal/category"
	"github.com/MrJamesThe3rd/tally/internal/person"
)

const (
	RuleMinorIncome             = "minor-income"
	RuleExpenseInIncomeCategory = "expense-in-income-category"
	RuleIncomeInExpenseCategory = "income-in-expense-category"
)

// RuleViolation is returned by Validate when a business rule rejects a transaction.
// It is a client-correctable outcome, distinct from lookup and storage failures.
type RuleViolation struct {
	Rule   string
	Reason string
}

func (v *RuleViolation) Error() string {
	return v.Reason
}

type ruleInput struct {
	tx       *Transaction
	person   *person.Person
	category *category.Category
	today    time.Time
}

type rule struct {
	name     string
	violated func(in ruleInput) bool
	reason   string
}

// rules are evaluated in order; the first violated rule decides the rejection.
var rules = []rule{
	{
		name: RuleMinorIncome,
		violated: func(in ruleInput) bool {
			return in.tx.Kind == KindIncome && in.person.IsMinorOn(in.today)
		},
		reason: "minors may only record expenses.",
	},
	{
		name: RuleExpenseInIncomeCategory,
		violated: func(in ruleInput) bool {
			return in.tx.Kind == KindExpense && !IsKindCompatible(in.tx.Kind, in.category.Purpose)
		},
		reason: "cannot record an expense in an income-only category.",
	},
	{
		name: RuleIncomeInExpenseCategory,
		violated: func(in ruleInput) bool {
			return in.tx.Kind == KindIncome && !IsKindCompatible(in.tx.Kind, in.category.Purpose)
		},
		reason: "cannot record income in an expense-only category.",
	},
}

// Validate decides whether tx may be recorded for p under c on the given day.
// It returns nil on acceptance or a *RuleViolation naming the first failed rule.
// p and c must be the records tx references; resolving them is the caller's job.
func Validate(tx *Transaction, p *person.Person, c *category.Category, today time.Time) error {
	in := ruleInput{tx: tx, person: p, category: c, today: today}

	for _, r := range rules {
		if r.violated(in) {
			return &RuleViolation{Rule: r.name, Reason: r.reason}
		}
	}

	return nil
}

// IsKindCompatible reports whether a transaction of the given kind may be
// recorded in a category with the given purpose.
func IsKindCompatible(kind Kind, purpose category.Purpose) bool {
	switch purpose {
	case category.PurposeBoth:
		return true
	case category.PurposeExpense:
		return kind == KindExpense
	case category.PurposeIncome:
		return kind == KindIncome
	}

	return false
}
