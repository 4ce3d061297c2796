package domain

import (
	"time"
)

const (
	BudgetStatusOnTrack    = "on_track"
	BudgetStatusWarning    = "warning"
	BudgetStatusOverBudget = "over_budget"
)

type Budget struct {
	ID        int64
	UserID    int64
	Name      string
	Amount    float64
	Spent     float64
	Category  string
	Period    string // "weekly", "monthly", "yearly"
	StartDate time.Time
	EndDate   time.Time
}

func (b *Budget) Remaining() float64 {
	return b.Amount - b.Spent
}

// Progress returns spend as a percentage of the budget amount, 0 when the
// budget amount is not positive.
func (b *Budget) Progress() float64 {
	if b.Amount <= 0 {
		return 0
	}
	return b.Spent / b.Amount * 100
}

func (b *Budget) Status() string {
	progress := b.Progress()
	switch {
	case progress <= 80:
		return BudgetStatusOnTrack
	case progress <= 100:
		return BudgetStatusWarning
	default:
		return BudgetStatusOverBudget
	}
}

type BudgetRepository interface {
	GetBudgets(userID int64) ([]Budget, error)
}
