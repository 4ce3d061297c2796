package application

import (
	"time"

	"github.com/sebuszqo/FinanceAnalytics/internal/analytics/domain"
	"github.com/sebuszqo/FinanceAnalytics/internal/analytics/stats"
)

// PatternService analyzes spending behavior over longer windows.
type PatternService struct {
	transactionRepo domain.TransactionRepository
	now             func() time.Time
}

func NewPatternService(transactionRepo domain.TransactionRepository) *PatternService {
	return &PatternService{transactionRepo: transactionRepo, now: time.Now}
}

type PatternPoint struct {
	Period            string  `json:"period"`
	Amount            float64 `json:"amount"`
	TransactionsCount int     `json:"transactions_count"`
}

type PatternSummary struct {
	TotalExpenses  float64 `json:"total_expenses"`
	AverageDaily   float64 `json:"average_daily"`
	AverageWeekly  float64 `json:"average_weekly"`
	AverageMonthly float64 `json:"average_monthly"`
}

type CategoryShare struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

type DayAmount struct {
	Day    string  `json:"day"`
	Amount float64 `json:"amount"`
}

type PatternTrend struct {
	Direction     string  `json:"direction"`
	ChangePercent float64 `json:"change_percent"`
}

type SpendingPatterns struct {
	Patterns    []PatternPoint  `json:"patterns"`
	Summary     PatternSummary  `json:"summary"`
	ByCategory  []CategoryShare `json:"by_category"`
	ByDayOfWeek []DayAmount     `json:"by_day_of_week"`
	Trends      PatternTrend    `json:"trends"`
}

// GetSpendingPatterns analyzes expenses over the trailing window (90 days by
// default) grouped by day, week or month.
func (s *PatternService) GetSpendingPatterns(userID int64, days int, groupBy string) (*SpendingPatterns, error) {
	if days <= 0 {
		days = 90
	}
	granularity, ok := stats.ParseGranularity(groupBy)
	if !ok {
		granularity = stats.Daily
	}

	end := s.now()
	start := end.AddDate(0, 0, -days)

	transactions, err := s.transactionRepo.GetTransactions(userID, domain.TransactionFilter{
		Start: start,
		End:   end,
		Kind:  "expense",
	})
	if err != nil {
		return nil, err
	}

	result := &SpendingPatterns{
		Patterns:    []PatternPoint{},
		ByCategory:  []CategoryShare{},
		ByDayOfWeek: []DayAmount{},
		Trends:      PatternTrend{Direction: "stable"},
	}
	if len(transactions) == 0 {
		return result, nil
	}

	periodAmounts := map[string]*PatternPoint{}
	categoryAmounts := map[string]float64{}
	dowAmounts := map[string]float64{}
	var total float64

	for _, t := range transactions {
		total += t.Amount
		key := stats.BucketKey(t.Date, granularity)
		point, exists := periodAmounts[key]
		if !exists {
			point = &PatternPoint{Period: key}
			periodAmounts[key] = point
		}
		point.Amount += t.Amount
		point.TransactionsCount++
		categoryAmounts[t.Category] += t.Amount
		dowAmounts[t.Date.Weekday().String()] += t.Amount
	}

	orderedAmounts := []float64{}
	for _, key := range stats.BucketRange(start, end, granularity) {
		point, exists := periodAmounts[key]
		if !exists {
			continue
		}
		result.Patterns = append(result.Patterns, *point)
		orderedAmounts = append(orderedAmounts, point.Amount)
	}

	daysInRange := days
	result.Summary = PatternSummary{
		TotalExpenses:  total,
		AverageDaily:   total / float64(daysInRange),
		AverageWeekly:  total / (float64(daysInRange) / 7),
		AverageMonthly: total / (float64(daysInRange) / 30),
	}

	for _, entry := range stats.TopNByValue(categoryAmounts, 10) {
		result.ByCategory = append(result.ByCategory, CategoryShare{
			Category:   entry.Key,
			Amount:     entry.Value,
			Percentage: stats.PercentOfTotal(entry.Value, total),
		})
	}

	weekDays := []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
		time.Friday, time.Saturday, time.Sunday,
	}
	for _, day := range weekDays {
		if amount, exists := dowAmounts[day.String()]; exists {
			result.ByDayOfWeek = append(result.ByDayOfWeek, DayAmount{Day: day.String(), Amount: amount})
		}
	}

	// Trend from first half vs second half of the period series.
	if len(orderedAmounts) >= 2 {
		half := len(orderedAmounts) / 2
		firstHalf := stats.Summarize(orderedAmounts[:half]).Mean
		secondHalf := stats.Summarize(orderedAmounts[half:]).Mean
		var changePercent float64
		if firstHalf > 0 {
			changePercent = (secondHalf - firstHalf) / firstHalf * 100
		}
		direction := "stable"
		if changePercent > 10 {
			direction = "increasing"
		} else if changePercent < -10 {
			direction = "decreasing"
		}
		result.Trends = PatternTrend{Direction: direction, ChangePercent: changePercent}
	}

	return result, nil
}

type MonthlyTrendRow struct {
	Period      string  `json:"period"`
	Income      float64 `json:"income"`
	Expenses    float64 `json:"expenses"`
	Net         float64 `json:"net"`
	SavingsRate float64 `json:"savings_rate"`
}

type IncomeExpenseTrendSummary struct {
	TotalIncome            float64 `json:"total_income"`
	TotalExpenses          float64 `json:"total_expenses"`
	NetIncome              float64 `json:"net_income"`
	SavingsRate            float64 `json:"savings_rate"`
	AverageMonthlyIncome   float64 `json:"average_monthly_income"`
	AverageMonthlyExpenses float64 `json:"average_monthly_expenses"`
}

type IncomeExpenseTrends struct {
	Trends  []MonthlyTrendRow         `json:"trends"`
	Summary IncomeExpenseTrendSummary `json:"summary"`
}

func (s *PatternService) GetIncomeExpenseTrends(userID int64, months int) (*IncomeExpenseTrends, error) {
	if months <= 0 {
		months = 12
	}
	end := s.now()
	start := end.AddDate(0, 0, -months*30)

	transactions, err := s.transactionRepo.GetTransactions(userID, domain.TransactionFilter{Start: start, End: end})
	if err != nil {
		return nil, err
	}

	result := &IncomeExpenseTrends{Trends: []MonthlyTrendRow{}}
	if len(transactions) == 0 {
		return result, nil
	}

	byMonth := map[string]*MonthlyTrendRow{}
	var totalIncome, totalExpenses float64
	for _, t := range transactions {
		key := stats.BucketKey(t.Date, stats.Monthly)
		row, ok := byMonth[key]
		if !ok {
			row = &MonthlyTrendRow{Period: key}
			byMonth[key] = row
		}
		if t.IsIncome() {
			row.Income += t.Amount
			totalIncome += t.Amount
		} else if t.IsExpense() {
			row.Expenses += t.Amount
			totalExpenses += t.Amount
		}
	}

	for _, key := range stats.BucketRange(start, end, stats.Monthly) {
		row, ok := byMonth[key]
		if !ok {
			continue
		}
		row.Net = row.Income - row.Expenses
		row.SavingsRate = stats.PercentOfTotal(row.Net, row.Income)
		result.Trends = append(result.Trends, *row)
	}

	netIncome := totalIncome - totalExpenses
	result.Summary = IncomeExpenseTrendSummary{
		TotalIncome:            totalIncome,
		TotalExpenses:          totalExpenses,
		NetIncome:              netIncome,
		SavingsRate:            stats.PercentOfTotal(netIncome, totalIncome),
		AverageMonthlyIncome:   totalIncome / float64(months),
		AverageMonthlyExpenses: totalExpenses / float64(months),
	}
	return result, nil
}

type YearMetrics struct {
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Net      float64 `json:"net"`
}

type YearOverYearComparison struct {
	CurrentYear YearMetrics `json:"current_year"`
	LastYear    YearMetrics `json:"last_year"`
	Comparison  struct {
		IncomeChangePercent  float64 `json:"income_change_percent"`
		ExpenseChangePercent float64 `json:"expense_change_percent"`
		NetChangePercent     float64 `json:"net_change_percent"`
	} `json:"comparison"`
}

func (s *PatternService) GetYearOverYearComparison(userID int64, category string) (*YearOverYearComparison, error) {
	now := s.now()
	currentYearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	lastYearStart := currentYearStart.AddDate(-1, 0, 0)

	transactions, err := s.transactionRepo.GetTransactions(userID, domain.TransactionFilter{
		Start:    lastYearStart,
		End:      now,
		Category: category,
	})
	if err != nil {
		return nil, err
	}

	result := &YearOverYearComparison{}
	for _, t := range transactions {
		metrics := &result.LastYear
		if !t.Date.Before(currentYearStart) {
			metrics = &result.CurrentYear
		}
		if t.IsIncome() {
			metrics.Income += t.Amount
		} else if t.IsExpense() {
			metrics.Expenses += t.Amount
		}
	}
	result.CurrentYear.Net = result.CurrentYear.Income - result.CurrentYear.Expenses
	result.LastYear.Net = result.LastYear.Income - result.LastYear.Expenses

	if result.LastYear.Income > 0 {
		result.Comparison.IncomeChangePercent = (result.CurrentYear.Income - result.LastYear.Income) / result.LastYear.Income * 100
	}
	if result.LastYear.Expenses > 0 {
		result.Comparison.ExpenseChangePercent = (result.CurrentYear.Expenses - result.LastYear.Expenses) / result.LastYear.Expenses * 100
	}
	if result.LastYear.Net != 0 {
		result.Comparison.NetChangePercent = stats.ChangePercent(result.CurrentYear.Net, result.LastYear.Net)
	}
	return result, nil
}
