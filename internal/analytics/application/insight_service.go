package application

import (
	"fmt"
	"sort"
	"time"

	"github.com/sebuszqo/FinanceAnalytics/internal/analytics/domain"
	"github.com/sebuszqo/FinanceAnalytics/internal/analytics/stats"
)

type InsightService struct {
	accountRepo     domain.AccountRepository
	transactionRepo domain.TransactionRepository
	budgetRepo      domain.BudgetRepository
	now             func() time.Time
}

func NewInsightService(accountRepo domain.AccountRepository, transactionRepo domain.TransactionRepository, budgetRepo domain.BudgetRepository) *InsightService {
	return &InsightService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		budgetRepo:      budgetRepo,
		now:             time.Now,
	}
}

type BudgetAtRisk struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Amount    float64 `json:"amount"`
	Spent     float64 `json:"spent"`
	Remaining float64 `json:"remaining"`
	Progress  float64 `json:"progress"`
}

type MonthMetrics struct {
	Income      float64         `json:"income"`
	Expenses    float64         `json:"expenses"`
	Net         float64         `json:"net"`
	TopExpenses []CategoryShare `json:"top_expenses,omitempty"`
}

type FinancialOverview struct {
	Accounts struct {
		TotalAccounts int     `json:"total_accounts"`
		TotalBalance  float64 `json:"total_balance"`
	} `json:"accounts"`
	ThisMonth      MonthMetrics `json:"this_month"`
	LastMonth      MonthMetrics `json:"last_month"`
	MonthOverMonth struct {
		IncomeChange   float64 `json:"income_change"`
		ExpensesChange float64 `json:"expenses_change"`
		NetChange      float64 `json:"net_change"`
	} `json:"month_over_month"`
	Budgets struct {
		TotalBudgeted float64        `json:"total_budgeted"`
		TotalSpent    float64        `json:"total_spent"`
		Remaining     float64        `json:"remaining"`
		Progress      float64        `json:"progress"`
		AtRisk        []BudgetAtRisk `json:"at_risk"`
	} `json:"budgets"`
}

func (s *InsightService) GetFinancialOverview(userID int64) (*FinancialOverview, error) {
	now := s.now()
	thisMonthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	lastMonthStart := thisMonthStart.AddDate(0, -1, 0)
	lastMonthEnd := thisMonthStart.Add(-time.Second)

	accounts, err := s.accountRepo.GetAccounts(userID)
	if err != nil {
		return nil, err
	}
	thisMonth, err := s.transactionRepo.GetTransactions(userID, domain.TransactionFilter{Start: thisMonthStart, End: now})
	if err != nil {
		return nil, err
	}
	lastMonth, err := s.transactionRepo.GetTransactions(userID, domain.TransactionFilter{Start: lastMonthStart, End: lastMonthEnd})
	if err != nil {
		return nil, err
	}
	budgets, err := s.budgetRepo.GetBudgets(userID)
	if err != nil {
		return nil, err
	}

	overview := &FinancialOverview{}
	overview.Accounts.TotalAccounts = len(accounts)
	for _, a := range accounts {
		overview.Accounts.TotalBalance += a.Balance
	}

	expenseByCategory := map[string]float64{}
	for _, t := range thisMonth {
		if t.IsIncome() {
			overview.ThisMonth.Income += t.Amount
		} else if t.IsExpense() {
			overview.ThisMonth.Expenses += t.Amount
			expenseByCategory[t.Category] += t.Amount
		}
	}
	overview.ThisMonth.Net = overview.ThisMonth.Income - overview.ThisMonth.Expenses
	overview.ThisMonth.TopExpenses = []CategoryShare{}
	for _, entry := range stats.TopNByValue(expenseByCategory, 5) {
		overview.ThisMonth.TopExpenses = append(overview.ThisMonth.TopExpenses, CategoryShare{
			Category:   entry.Key,
			Amount:     entry.Value,
			Percentage: stats.PercentOfTotal(entry.Value, overview.ThisMonth.Expenses),
		})
	}

	for _, t := range lastMonth {
		if t.IsIncome() {
			overview.LastMonth.Income += t.Amount
		} else if t.IsExpense() {
			overview.LastMonth.Expenses += t.Amount
		}
	}
	overview.LastMonth.Net = overview.LastMonth.Income - overview.LastMonth.Expenses

	if overview.LastMonth.Income > 0 {
		overview.MonthOverMonth.IncomeChange = (overview.ThisMonth.Income - overview.LastMonth.Income) / overview.LastMonth.Income * 100
	}
	if overview.LastMonth.Expenses > 0 {
		overview.MonthOverMonth.ExpensesChange = (overview.ThisMonth.Expenses - overview.LastMonth.Expenses) / overview.LastMonth.Expenses * 100
	}
	if overview.LastMonth.Net != 0 {
		overview.MonthOverMonth.NetChange = stats.ChangePercent(overview.ThisMonth.Net, overview.LastMonth.Net)
	}

	overview.Budgets.AtRisk = []BudgetAtRisk{}
	for _, b := range budgets {
		overview.Budgets.TotalBudgeted += b.Amount
		overview.Budgets.TotalSpent += b.Spent
		if progress := b.Progress(); progress >= 80 {
			overview.Budgets.AtRisk = append(overview.Budgets.AtRisk, BudgetAtRisk{
				ID:        b.ID,
				Name:      b.Name,
				Category:  b.Category,
				Amount:    b.Amount,
				Spent:     b.Spent,
				Remaining: b.Remaining(),
				Progress:  progress,
			})
		}
	}
	overview.Budgets.Remaining = overview.Budgets.TotalBudgeted - overview.Budgets.TotalSpent
	overview.Budgets.Progress = stats.PercentOfTotal(overview.Budgets.TotalSpent, overview.Budgets.TotalBudgeted)
	sort.Slice(overview.Budgets.AtRisk, func(i, j int) bool {
		return overview.Budgets.AtRisk[i].Progress > overview.Budgets.AtRisk[j].Progress
	})

	return overview, nil
}

type Insight struct {
	Type     string `json:"type"`
	Category string `json:"category"`
	Message  string `json:"message"`
}

type Recommendation struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

type FinancialInsights struct {
	Insights        []Insight        `json:"insights"`
	Recommendations []Recommendation `json:"recommendations"`
	Summary         struct {
		InsightCount        int `json:"insight_count"`
		PositiveCount       int `json:"positive_count"`
		WarningCount        int `json:"warning_count"`
		InfoCount           int `json:"info_count"`
		RecommendationCount int `json:"recommendation_count"`
	} `json:"summary"`
}

// GetFinancialInsights runs the rule table over the financial overview and
// emits human-readable insights and recommendations.
func (s *InsightService) GetFinancialInsights(userID int64) (*FinancialInsights, error) {
	overview, err := s.GetFinancialOverview(userID)
	if err != nil {
		return nil, err
	}

	result := &FinancialInsights{Insights: []Insight{}, Recommendations: []Recommendation{}}
	addInsight := func(insightType, category, message string) {
		result.Insights = append(result.Insights, Insight{Type: insightType, Category: category, Message: message})
	}
	addRecommendation := func(category, message string) {
		result.Recommendations = append(result.Recommendations, Recommendation{Category: category, Message: message})
	}

	thisMonth := overview.ThisMonth
	if thisMonth.Net < 0 {
		addInsight("warning", "cash_flow", "You're spending more than you earn this month.")
		addRecommendation("cash_flow", "Review your expenses and identify areas where you can cut back.")
	} else if thisMonth.Net > 0 {
		addInsight("positive", "cash_flow", "You're earning more than you spend this month.")
		if thisMonth.Income > 0 {
			savingRate := thisMonth.Net / thisMonth.Income * 100
			if savingRate < 20 {
				addRecommendation("savings", "Consider increasing your savings rate to at least 20% of your income.")
			}
		}
	}

	incomeChange := overview.MonthOverMonth.IncomeChange
	expensesChange := overview.MonthOverMonth.ExpensesChange
	if incomeChange < -10 {
		addInsight("warning", "income", fmt.Sprintf("Your income has decreased by %.1f%% compared to last month.", -incomeChange))
	} else if incomeChange > 10 {
		addInsight("positive", "income", fmt.Sprintf("Your income has increased by %.1f%% compared to last month.", incomeChange))
	}
	if expensesChange > 20 {
		addInsight("warning", "expenses", fmt.Sprintf("Your expenses have increased by %.1f%% compared to last month.", expensesChange))
		addRecommendation("expenses", "Review your spending categories to identify where expenses have increased significantly.")
	} else if expensesChange < -10 {
		addInsight("positive", "expenses", fmt.Sprintf("Your expenses have decreased by %.1f%% compared to last month.", -expensesChange))
	}

	overBudget := []BudgetAtRisk{}
	nearLimit := []BudgetAtRisk{}
	for _, b := range overview.Budgets.AtRisk {
		if b.Progress > 100 {
			overBudget = append(overBudget, b)
		} else {
			nearLimit = append(nearLimit, b)
		}
	}
	if len(overBudget) > 0 {
		addInsight("warning", "budget", fmt.Sprintf("You have %d budget(s) that are over the limit.", len(overBudget)))
		for i, b := range overBudget {
			if i == 3 {
				break
			}
			addRecommendation("budget", fmt.Sprintf("Your %s budget is over by %.1f%%. Consider adjusting your spending or increasing the budget.", b.Category, b.Progress-100))
		}
	}
	if len(nearLimit) > 0 {
		addInsight("warning", "budget", fmt.Sprintf("You have %d budget(s) that are near the limit (80-100%%).", len(nearLimit)))
	}

	for _, expense := range thisMonth.TopExpenses {
		if expense.Percentage > 40 {
			addInsight("info", "expenses", fmt.Sprintf("Your %s expenses account for %.1f%% of your total expenses.", expense.Category, expense.Percentage))
			addRecommendation("expenses", fmt.Sprintf("Look for ways to reduce your %s expenses, as they make up a significant portion of your spending.", expense.Category))
		}
	}

	if thisMonth.Expenses > 0 {
		monthsOfExpenses := overview.Accounts.TotalBalance / thisMonth.Expenses
		if monthsOfExpenses < 3 {
			addInsight("warning", "emergency_fund", fmt.Sprintf("Your total balance covers only %.1f months of expenses.", monthsOfExpenses))
			addRecommendation("emergency_fund", "Aim to build an emergency fund that covers 3-6 months of expenses.")
		} else if monthsOfExpenses < 6 {
			addInsight("info", "emergency_fund", fmt.Sprintf("Your total balance covers %.1f months of expenses.", monthsOfExpenses))
		} else {
			addInsight("positive", "emergency_fund", fmt.Sprintf("Your total balance covers %.1f months of expenses, which is a good emergency fund.", monthsOfExpenses))
		}
	}

	if len(result.Recommendations) < 3 {
		if thisMonth.Income > 0 && thisMonth.Net > 0 {
			addRecommendation("investment", "Consider investing your surplus income to grow your wealth over time.")
		}
		addRecommendation("tracking", "Regularly track your expenses to identify patterns and areas for improvement.")
		addRecommendation("planning", "Set clear financial goals and create a plan to achieve them.")
	}

	for _, insight := range result.Insights {
		switch insight.Type {
		case "positive":
			result.Summary.PositiveCount++
		case "warning":
			result.Summary.WarningCount++
		case "info":
			result.Summary.InfoCount++
		}
	}
	result.Summary.InsightCount = len(result.Insights)
	result.Summary.RecommendationCount = len(result.Recommendations)

	return result, nil
}
