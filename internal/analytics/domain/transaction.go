package domain

import (
	"time"
)

// Transaction is a read-only projection of a stored transaction. Amount is an
// unsigned magnitude; Kind tells whether it adds to or subtracts from cash flow.
type Transaction struct {
	ID          int64
	UserID      int64
	Amount      float64
	Category    string
	Kind        string // "income" or "expense"
	Date        time.Time
	AccountID   *int64
	Description string
	Tags        []string
}

func (t *Transaction) IsIncome() bool {
	return t.Kind == "income"
}

func (t *Transaction) IsExpense() bool {
	return t.Kind == "expense"
}

// Signed returns the amount with income positive and expenses negative.
func (t *Transaction) Signed() float64 {
	if t.IsExpense() {
		return -t.Amount
	}
	return t.Amount
}

// TransactionFilter narrows a user's transaction listing. Zero time values and
// empty strings mean "no constraint on this field".
type TransactionFilter struct {
	Start    time.Time
	End      time.Time
	Kind     string
	Category string
}

func (f TransactionFilter) Matches(t Transaction) bool {
	if !f.Start.IsZero() && t.Date.Before(f.Start) {
		return false
	}
	if !f.End.IsZero() && t.Date.After(f.End) {
		return false
	}
	if f.Kind != "" && t.Kind != f.Kind {
		return false
	}
	if f.Category != "" && t.Category != f.Category {
		return false
	}
	return true
}

type TransactionRepository interface {
	GetTransactions(userID int64, filter TransactionFilter) ([]Transaction, error)
}
