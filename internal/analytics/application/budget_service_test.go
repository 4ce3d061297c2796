package application

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sebuszqo/FinanceAnalytics/internal/analytics/domain"
	"github.com/sebuszqo/FinanceAnalytics/internal/analytics/infrastructure"
)

func budget(id int64, name, category string, amount, spent float64) domain.Budget {
	return domain.Budget{
		ID:        id,
		UserID:    1,
		Name:      name,
		Amount:    amount,
		Spent:     spent,
		Category:  category,
		Period:    "monthly",
		StartDate: testNow.AddDate(0, 0, -14),
		EndDate:   testNow.AddDate(0, 0, 16),
	}
}

func TestGetBudgetAnalytics_StatusThresholds(t *testing.T) {
	repo := &infrastructure.MockBudgetRepository{Budgets: []domain.Budget{
		budget(1, "Food", "food", 500, 450),
		budget(2, "Travel", "travel", 500, 600),
		budget(3, "Fun", "entertainment", 500, 300),
	}}
	service := NewBudgetService(repo, &infrastructure.MockTransactionRepository{})
	service.now = fixedNow

	result, err := service.GetBudgetAnalytics(1)
	assert.NoError(t, err)
	assert.Equal(t, 3, result.TotalBudgets)
	assert.InDelta(t, 1500.0, result.TotalBudgeted, 1e-9)
	assert.InDelta(t, 1350.0, result.TotalSpent, 1e-9)
	assert.InDelta(t, 90.0, result.OverallProgress, 1e-9)

	// Sorted by progress descending: over budget first.
	assert.Equal(t, "over_budget", result.BudgetPerformance[0].Status)
	assert.InDelta(t, 120.0, result.BudgetPerformance[0].Progress, 1e-9)
	assert.Equal(t, "warning", result.BudgetPerformance[1].Status)
	assert.InDelta(t, 90.0, result.BudgetPerformance[1].Progress, 1e-9)
	assert.Equal(t, "on_track", result.BudgetPerformance[2].Status)
	assert.InDelta(t, -100.0, result.BudgetPerformance[0].Remaining, 1e-9)
}

func TestGetBudgetAnalytics_Empty(t *testing.T) {
	service := NewBudgetService(&infrastructure.MockBudgetRepository{}, &infrastructure.MockTransactionRepository{})
	service.now = fixedNow

	result, err := service.GetBudgetAnalytics(1)
	assert.NoError(t, err)
	assert.Equal(t, 0, result.TotalBudgets)
	assert.Equal(t, 0.0, result.OverallProgress)
	assert.Empty(t, result.BudgetPerformance)
}

func TestGetBudgetAnalytics_ZeroAmountBudget(t *testing.T) {
	repo := &infrastructure.MockBudgetRepository{Budgets: []domain.Budget{
		budget(1, "Empty", "misc", 0, 50),
	}}
	service := NewBudgetService(repo, &infrastructure.MockTransactionRepository{})
	service.now = fixedNow

	result, err := service.GetBudgetAnalytics(1)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, result.BudgetPerformance[0].Progress)
	assert.Equal(t, "on_track", result.BudgetPerformance[0].Status)
}

func TestGetBudgetPerformance(t *testing.T) {
	budgetRepo := &infrastructure.MockBudgetRepository{Budgets: []domain.Budget{
		budget(1, "Food", "food", 500, 450),
		budget(2, "Travel", "travel", 500, 600),
	}}
	transactions := []domain.Transaction{}
	for i := 0; i < 7; i++ {
		transactions = append(transactions, tx(int64(i+1), float64(10+i), "food", "expense", testNow.AddDate(0, 0, -i)))
	}
	service := NewBudgetService(budgetRepo, &infrastructure.MockTransactionRepository{Transactions: transactions})
	service.now = fixedNow

	result, err := service.GetBudgetPerformance(1)
	assert.NoError(t, err)
	assert.Len(t, result.Budgets, 2)

	// Travel (120%) sorts above food (90%).
	assert.Equal(t, "Travel", result.Budgets[0].Name)
	assert.Empty(t, result.Budgets[0].RecentTransactions)

	food := result.Budgets[1]
	assert.Len(t, food.RecentTransactions, 5)
	// Newest expense first.
	assert.Equal(t, int64(1), food.RecentTransactions[0].ID)

	assert.Equal(t, 1, result.Overall.BudgetsOverLimit)
	assert.Equal(t, 1, result.Overall.BudgetsNearLimit)
	assert.Equal(t, 0, result.Overall.BudgetsOnTrack)
}

func TestGetBudgetRecommendations(t *testing.T) {
	transactions := []domain.Transaction{}
	// Two months of steady food spending: 400/month average.
	for i, date := range []time.Time{
		time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC),
	} {
		transactions = append(transactions, tx(int64(i+1), 400, "food", "expense", date))
	}
	budgetRepo := &infrastructure.MockBudgetRepository{Budgets: []domain.Budget{
		budget(1, "Food", "food", 300, 200),
	}}
	service := NewBudgetService(budgetRepo, &infrastructure.MockTransactionRepository{Transactions: transactions})
	service.now = fixedNow

	result, err := service.GetBudgetRecommendations(1)
	assert.NoError(t, err)
	assert.Len(t, result.Recommendations, 1)

	rec := result.Recommendations[0]
	assert.Equal(t, "food", rec.Category)
	assert.InDelta(t, 400.0, rec.AverageMonthlySpending, 1e-9)
	assert.InDelta(t, 460.0, rec.RecommendedAmount, 1e-9)
	assert.Equal(t, "high", rec.Confidence)
	assert.Equal(t, "adjust", rec.Action)
	assert.True(t, rec.AdjustmentNeeded)
	assert.InDelta(t, (460.0-300.0)/300.0*100, rec.AdjustmentPercent, 1e-9)
	assert.Equal(t, 1, result.Summary.AdjustmentsSuggested)
}

func TestGetBudgetRecommendations_NoHistory(t *testing.T) {
	service := NewBudgetService(&infrastructure.MockBudgetRepository{}, &infrastructure.MockTransactionRepository{})
	service.now = fixedNow

	result, err := service.GetBudgetRecommendations(1)
	assert.NoError(t, err)
	assert.Empty(t, result.Recommendations)
	assert.Equal(t, "Insufficient data for recommendations", result.Message)
}
