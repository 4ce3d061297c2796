package infrastructure

import (
	"github.com/sebuszqo/FinanceAnalytics/internal/analytics/domain"
	analyticsErrors "github.com/sebuszqo/FinanceAnalytics/internal/analytics/errors"
)

// In-memory repositories used by the service and handler tests. Setting Err
// simulates a failing store.

type MockTransactionRepository struct {
	Transactions []domain.Transaction
	Err          error
}

func (m *MockTransactionRepository) GetTransactions(userID int64, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	filtered := []domain.Transaction{}
	for _, t := range m.Transactions {
		if t.UserID != userID {
			continue
		}
		if filter.Matches(t) {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}

type MockAccountRepository struct {
	Accounts []domain.Account
	Err      error
}

func (m *MockAccountRepository) GetAccounts(userID int64) ([]domain.Account, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	accounts := []domain.Account{}
	for _, a := range m.Accounts {
		if a.UserID == userID {
			accounts = append(accounts, a)
		}
	}
	return accounts, nil
}

type MockBudgetRepository struct {
	Budgets []domain.Budget
	Err     error
}

func (m *MockBudgetRepository) GetBudgets(userID int64) ([]domain.Budget, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	budgets := []domain.Budget{}
	for _, b := range m.Budgets {
		if b.UserID == userID {
			budgets = append(budgets, b)
		}
	}
	return budgets, nil
}

type MockGoalRepository struct {
	Goals []domain.Goal
	Err   error
}

func (m *MockGoalRepository) GetGoal(userID, goalID int64) (*domain.Goal, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, g := range m.Goals {
		if g.UserID == userID && g.ID == goalID {
			goal := g
			return &goal, nil
		}
	}
	return nil, analyticsErrors.ErrGoalNotFound
}

func (m *MockGoalRepository) GetGoals(userID int64) ([]domain.Goal, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	goals := []domain.Goal{}
	for _, g := range m.Goals {
		if g.UserID == userID {
			goals = append(goals, g)
		}
	}
	return goals, nil
}
