package application

import (
	"math"
	"sort"
	"time"

	"github.com/sebuszqo/FinanceAnalytics/internal/analytics/domain"
	"github.com/sebuszqo/FinanceAnalytics/internal/analytics/stats"
)

type BudgetService struct {
	budgetRepo      domain.BudgetRepository
	transactionRepo domain.TransactionRepository
	now             func() time.Time
}

func NewBudgetService(budgetRepo domain.BudgetRepository, transactionRepo domain.TransactionRepository) *BudgetService {
	return &BudgetService{budgetRepo: budgetRepo, transactionRepo: transactionRepo, now: time.Now}
}

type BudgetGroup struct {
	Period         string  `json:"period,omitempty"`
	Category       string  `json:"category,omitempty"`
	Count          int     `json:"count"`
	TotalBudgeted  float64 `json:"total_budgeted"`
	TotalSpent     float64 `json:"total_spent"`
	TotalRemaining float64 `json:"total_remaining"`
	Progress       float64 `json:"progress"`
}

type BudgetPerformanceRow struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Period    string  `json:"period"`
	Amount    float64 `json:"amount"`
	Spent     float64 `json:"spent"`
	Remaining float64 `json:"remaining"`
	Progress  float64 `json:"progress"`
	Status    string  `json:"status"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
}

type BudgetAnalytics struct {
	TotalBudgets      int                    `json:"total_budgets"`
	TotalBudgeted     float64                `json:"total_budgeted"`
	TotalSpent        float64                `json:"total_spent"`
	TotalRemaining    float64                `json:"total_remaining"`
	OverallProgress   float64                `json:"overall_progress"`
	BudgetPeriods     []BudgetGroup          `json:"budget_periods"`
	BudgetCategories  []BudgetGroup          `json:"budget_categories"`
	BudgetPerformance []BudgetPerformanceRow `json:"budget_performance"`
}

func (s *BudgetService) GetBudgetAnalytics(userID int64) (*BudgetAnalytics, error) {
	budgets, err := s.budgetRepo.GetBudgets(userID)
	if err != nil {
		return nil, err
	}

	result := &BudgetAnalytics{
		BudgetPeriods:     []BudgetGroup{},
		BudgetCategories:  []BudgetGroup{},
		BudgetPerformance: []BudgetPerformanceRow{},
	}
	if len(budgets) == 0 {
		return result, nil
	}

	byPeriod := map[string]*BudgetGroup{}
	byCategory := map[string]*BudgetGroup{}
	for _, b := range budgets {
		result.TotalBudgeted += b.Amount
		result.TotalSpent += b.Spent

		pg, ok := byPeriod[b.Period]
		if !ok {
			pg = &BudgetGroup{Period: b.Period}
			byPeriod[b.Period] = pg
		}
		pg.Count++
		pg.TotalBudgeted += b.Amount
		pg.TotalSpent += b.Spent

		cg, ok := byCategory[b.Category]
		if !ok {
			cg = &BudgetGroup{Category: b.Category}
			byCategory[b.Category] = cg
		}
		cg.Count++
		cg.TotalBudgeted += b.Amount
		cg.TotalSpent += b.Spent

		result.BudgetPerformance = append(result.BudgetPerformance, budgetRow(b))
	}

	result.TotalBudgets = len(budgets)
	result.TotalRemaining = result.TotalBudgeted - result.TotalSpent
	result.OverallProgress = stats.PercentOfTotal(result.TotalSpent, result.TotalBudgeted)

	for _, g := range byPeriod {
		finishGroup(g)
		result.BudgetPeriods = append(result.BudgetPeriods, *g)
	}
	sort.Slice(result.BudgetPeriods, func(i, j int) bool {
		if result.BudgetPeriods[i].Count != result.BudgetPeriods[j].Count {
			return result.BudgetPeriods[i].Count > result.BudgetPeriods[j].Count
		}
		return result.BudgetPeriods[i].Period < result.BudgetPeriods[j].Period
	})

	for _, g := range byCategory {
		finishGroup(g)
		result.BudgetCategories = append(result.BudgetCategories, *g)
	}
	sort.Slice(result.BudgetCategories, func(i, j int) bool {
		if result.BudgetCategories[i].TotalBudgeted != result.BudgetCategories[j].TotalBudgeted {
			return result.BudgetCategories[i].TotalBudgeted > result.BudgetCategories[j].TotalBudgeted
		}
		return result.BudgetCategories[i].Category < result.BudgetCategories[j].Category
	})

	sortByProgress(result.BudgetPerformance)
	return result, nil
}

func budgetRow(b domain.Budget) BudgetPerformanceRow {
	return BudgetPerformanceRow{
		ID:        b.ID,
		Name:      b.Name,
		Category:  b.Category,
		Period:    b.Period,
		Amount:    b.Amount,
		Spent:     b.Spent,
		Remaining: b.Remaining(),
		Progress:  b.Progress(),
		Status:    b.Status(),
		StartDate: b.StartDate.Format("2006-01-02"),
		EndDate:   b.EndDate.Format("2006-01-02"),
	}
}

func finishGroup(g *BudgetGroup) {
	g.TotalRemaining = g.TotalBudgeted - g.TotalSpent
	g.Progress = stats.PercentOfTotal(g.TotalSpent, g.TotalBudgeted)
}

func sortByProgress(rows []BudgetPerformanceRow) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Progress != rows[j].Progress {
			return rows[i].Progress > rows[j].Progress
		}
		return rows[i].ID < rows[j].ID
	})
}

type RecentTransaction struct {
	ID     int64   `json:"id"`
	Amount float64 `json:"amount"`
	Date   string  `json:"date"`
}

type BudgetDetail struct {
	BudgetPerformanceRow
	RecentTransactions []RecentTransaction `json:"recent_transactions"`
}

type BudgetCategoryPerformance struct {
	Category      string  `json:"category"`
	TotalBudgeted float64 `json:"total_budgeted"`
	TotalSpent    float64 `json:"total_spent"`
	Remaining     float64 `json:"remaining"`
	Progress      float64 `json:"progress"`
	BudgetCount   int     `json:"budget_count"`
}

type BudgetOverall struct {
	TotalBudgeted    float64 `json:"total_budgeted"`
	TotalSpent       float64 `json:"total_spent"`
	TotalRemaining   float64 `json:"total_remaining"`
	OverallProgress  float64 `json:"overall_progress"`
	BudgetsOverLimit int     `json:"budgets_over_limit"`
	BudgetsNearLimit int     `json:"budgets_near_limit"`
	BudgetsOnTrack   int     `json:"budgets_on_track"`
}

type BudgetPerformance struct {
	Budgets    []BudgetDetail              `json:"budgets"`
	Categories []BudgetCategoryPerformance `json:"categories"`
	Overall    BudgetOverall               `json:"overall"`
}

func (s *BudgetService) GetBudgetPerformance(userID int64) (*BudgetPerformance, error) {
	budgets, err := s.budgetRepo.GetBudgets(userID)
	if err != nil {
		return nil, err
	}

	result := &BudgetPerformance{Budgets: []BudgetDetail{}, Categories: []BudgetCategoryPerformance{}}
	if len(budgets) == 0 {
		return result, nil
	}

	expenses, err := s.transactionRepo.GetTransactions(userID, domain.TransactionFilter{Kind: "expense"})
	if err != nil {
		return nil, err
	}
	// Newest first for the recent-transactions window.
	sort.Slice(expenses, func(i, j int) bool { return expenses[i].Date.After(expenses[j].Date) })

	for _, b := range budgets {
		recent := []RecentTransaction{}
		for _, t := range expenses {
			if t.Category != b.Category {
				continue
			}
			recent = append(recent, RecentTransaction{
				ID:     t.ID,
				Amount: t.Amount,
				Date:   t.Date.Format("2006-01-02"),
			})
			if len(recent) == 5 {
				break
			}
		}
		result.Budgets = append(result.Budgets, BudgetDetail{
			BudgetPerformanceRow: budgetRow(b),
			RecentTransactions:   recent,
		})
	}
	sort.Slice(result.Budgets, func(i, j int) bool {
		if result.Budgets[i].Progress != result.Budgets[j].Progress {
			return result.Budgets[i].Progress > result.Budgets[j].Progress
		}
		return result.Budgets[i].ID < result.Budgets[j].ID
	})

	byCategory := map[string]*BudgetCategoryPerformance{}
	for _, b := range budgets {
		cg, ok := byCategory[b.Category]
		if !ok {
			cg = &BudgetCategoryPerformance{Category: b.Category}
			byCategory[b.Category] = cg
		}
		cg.BudgetCount++
		cg.TotalBudgeted += b.Amount
		cg.TotalSpent += b.Spent
	}
	for _, cg := range byCategory {
		cg.Remaining = cg.TotalBudgeted - cg.TotalSpent
		cg.Progress = stats.PercentOfTotal(cg.TotalSpent, cg.TotalBudgeted)
		result.Categories = append(result.Categories, *cg)
	}
	sort.Slice(result.Categories, func(i, j int) bool {
		if result.Categories[i].Progress != result.Categories[j].Progress {
			return result.Categories[i].Progress > result.Categories[j].Progress
		}
		return result.Categories[i].Category < result.Categories[j].Category
	})

	overall := BudgetOverall{}
	for _, b := range result.Budgets {
		overall.TotalBudgeted += b.Amount
		overall.TotalSpent += b.Spent
		switch {
		case b.Progress > 100:
			overall.BudgetsOverLimit++
		case b.Progress >= 80:
			overall.BudgetsNearLimit++
		default:
			overall.BudgetsOnTrack++
		}
	}
	overall.TotalRemaining = overall.TotalBudgeted - overall.TotalSpent
	overall.OverallProgress = stats.PercentOfTotal(overall.TotalSpent, overall.TotalBudgeted)
	result.Overall = overall

	return result, nil
}

type BudgetRecommendation struct {
	Category               string  `json:"category"`
	RecommendedAmount      float64 `json:"recommended_amount"`
	AverageMonthlySpending float64 `json:"average_monthly_spending"`
	Confidence             string  `json:"confidence"`
	Variance               float64 `json:"variance"`
	Action                 string  `json:"action"`
	ExistingBudget         float64 `json:"existing_budget,omitempty"`
	AdjustmentNeeded       bool    `json:"adjustment_needed,omitempty"`
	AdjustmentPercent      float64 `json:"adjustment_percent,omitempty"`
}

type BudgetRecommendations struct {
	Recommendations []BudgetRecommendation `json:"recommendations"`
	Message         string                 `json:"message,omitempty"`
	Summary         struct {
		TotalRecommendations int `json:"total_recommendations"`
		NewBudgetsSuggested  int `json:"new_budgets_suggested"`
		AdjustmentsSuggested int `json:"adjustments_suggested"`
	} `json:"summary"`
}

// GetBudgetRecommendations suggests budget amounts from six months of
// spending: monthly average per category plus a 15% buffer, with confidence
// derived from month-to-month consistency.
func (s *BudgetService) GetBudgetRecommendations(userID int64) (*BudgetRecommendations, error) {
	start := s.now().AddDate(0, 0, -180)
	expenses, err := s.transactionRepo.GetTransactions(userID, domain.TransactionFilter{Start: start, Kind: "expense"})
	if err != nil {
		return nil, err
	}

	result := &BudgetRecommendations{Recommendations: []BudgetRecommendation{}}
	if len(expenses) == 0 {
		result.Message = "Insufficient data for recommendations"
		return result, nil
	}

	budgets, err := s.budgetRepo.GetBudgets(userID)
	if err != nil {
		return nil, err
	}
	existingByCategory := map[string]float64{}
	for _, b := range budgets {
		if _, ok := existingByCategory[b.Category]; !ok {
			existingByCategory[b.Category] = b.Amount
		}
	}

	months := map[string]struct{}{}
	categoryTotals := map[string]float64{}
	categoryMonthly := map[string]map[string]float64{}
	for _, t := range expenses {
		month := stats.BucketKey(t.Date, stats.Monthly)
		months[month] = struct{}{}
		categoryTotals[t.Category] += t.Amount
		byMonth, ok := categoryMonthly[t.Category]
		if !ok {
			byMonth = map[string]float64{}
			categoryMonthly[t.Category] = byMonth
		}
		byMonth[month] += t.Amount
	}
	monthCount := float64(len(months))

	averageByCategory := map[string]float64{}
	for category, total := range categoryTotals {
		averageByCategory[category] = total / monthCount
	}

	for _, entry := range stats.TopNByValue(averageByCategory, 0) {
		category := entry.Key
		avgSpending := entry.Value

		monthlyAmounts := []float64{}
		for _, amount := range categoryMonthly[category] {
			monthlyAmounts = append(monthlyAmounts, amount)
		}
		cv := stats.CoefficientOfVariation(monthlyAmounts)

		rec := BudgetRecommendation{
			Category:               category,
			RecommendedAmount:      avgSpending * 1.15,
			AverageMonthlySpending: avgSpending,
			Confidence:             stats.ConfidenceLabel(cv),
			Variance:               cv,
			Action:                 "create",
		}
		if existing, ok := existingByCategory[category]; ok {
			rec.Action = "adjust"
			rec.ExistingBudget = existing
			rec.AdjustmentNeeded = math.Abs(existing-rec.RecommendedAmount) > existing*0.1
			if existing > 0 {
				rec.AdjustmentPercent = (rec.RecommendedAmount - existing) / existing * 100
			}
			result.Summary.AdjustmentsSuggested++
		} else {
			result.Summary.NewBudgetsSuggested++
		}
		result.Recommendations = append(result.Recommendations, rec)
	}
	result.Summary.TotalRecommendations = len(result.Recommendations)

	return result, nil
}
