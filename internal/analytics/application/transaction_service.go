package application

import (
	"time"

	"github.com/sebuszqo/FinanceAnalytics/internal/analytics/domain"
	"github.com/sebuszqo/FinanceAnalytics/internal/analytics/stats"
)

type TransactionService struct {
	transactionRepo domain.TransactionRepository
	now             func() time.Time
}

func NewTransactionService(transactionRepo domain.TransactionRepository) *TransactionService {
	return &TransactionService{transactionRepo: transactionRepo, now: time.Now}
}

// periodWindow maps a named period to its date range and grouping granularity.
func periodWindow(now time.Time, period string) (time.Time, time.Time, stats.Granularity) {
	switch period {
	case "week":
		return now.AddDate(0, 0, -7), now, stats.Daily
	case "year":
		return now.AddDate(0, 0, -365), now, stats.Monthly
	default:
		return now.AddDate(0, 0, -30), now, stats.Daily
	}
}

type CategoryNet struct {
	Category string  `json:"category"`
	Income   float64 `json:"income"`
	Expense  float64 `json:"expense"`
	Net      float64 `json:"net"`
	Count    int     `json:"count"`
}

type DailyTotal struct {
	Date    string  `json:"date"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Net     float64 `json:"net"`
}

type TransactionAnalytics struct {
	Period             string         `json:"period"`
	TotalTransactions  int            `json:"total_transactions"`
	TotalIncome        float64        `json:"total_income"`
	TotalExpenses      float64        `json:"total_expenses"`
	NetCashFlow        float64        `json:"net_cash_flow"`
	AverageTransaction float64        `json:"average_transaction"`
	CategoryBreakdown  []CategoryNet  `json:"category_breakdown"`
	DailyTotals        []DailyTotal   `json:"daily_totals"`
	TransactionTypes   map[string]int `json:"transaction_types"`
}

func (s *TransactionService) GetTransactionAnalytics(userID int64, period string) (*TransactionAnalytics, error) {
	start, end, _ := periodWindow(s.now(), period)
	transactions, err := s.transactionRepo.GetTransactions(userID, domain.TransactionFilter{Start: start, End: end})
	if err != nil {
		return nil, err
	}

	result := &TransactionAnalytics{
		Period:            period,
		CategoryBreakdown: []CategoryNet{},
		DailyTotals:       []DailyTotal{},
		TransactionTypes:  map[string]int{"income": 0, "expense": 0},
	}
	if len(transactions) == 0 {
		return result, nil
	}

	var amountSum float64
	byCategory := map[string]*CategoryNet{}
	byDay := map[string]*DailyTotal{}

	for _, t := range transactions {
		amountSum += t.Amount
		result.TransactionTypes[t.Kind]++

		cat, ok := byCategory[t.Category]
		if !ok {
			cat = &CategoryNet{Category: t.Category}
			byCategory[t.Category] = cat
		}
		cat.Count++

		dayKey := stats.BucketKey(t.Date, stats.Daily)
		day, ok := byDay[dayKey]
		if !ok {
			day = &DailyTotal{Date: dayKey}
			byDay[dayKey] = day
		}

		if t.IsIncome() {
			result.TotalIncome += t.Amount
			cat.Income += t.Amount
			day.Income += t.Amount
		} else if t.IsExpense() {
			result.TotalExpenses += t.Amount
			cat.Expense += t.Amount
			day.Expense += t.Amount
		}
	}

	result.TotalTransactions = len(transactions)
	result.NetCashFlow = result.TotalIncome - result.TotalExpenses
	result.AverageTransaction = amountSum / float64(len(transactions))

	netByCategory := map[string]float64{}
	for name, cat := range byCategory {
		cat.Net = cat.Income - cat.Expense
		netByCategory[name] = cat.Net
	}
	for _, entry := range stats.TopNByValue(netByCategory, 0) {
		result.CategoryBreakdown = append(result.CategoryBreakdown, *byCategory[entry.Key])
	}

	// Calendar-complete daily series so charts have no gaps.
	for _, key := range stats.BucketRange(start, end, stats.Daily) {
		day, ok := byDay[key]
		if !ok {
			day = &DailyTotal{Date: key}
		}
		day.Net = day.Income - day.Expense
		result.DailyTotals = append(result.DailyTotals, *day)
	}

	return result, nil
}

type CategoryAmount struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

type TrendPoint struct {
	Period               string           `json:"period"`
	Income               float64          `json:"income"`
	Expense              float64          `json:"expense"`
	Net                  float64          `json:"net"`
	TopExpenseCategories []CategoryAmount `json:"top_expense_categories"`
}

type SpendingTrends struct {
	Period  string       `json:"period"`
	GroupBy string       `json:"group_by"`
	Trends  []TrendPoint `json:"trends"`
}

func (s *TransactionService) GetSpendingTrends(userID int64, period string) (*SpendingTrends, error) {
	start, end, granularity := periodWindow(s.now(), period)
	transactions, err := s.transactionRepo.GetTransactions(userID, domain.TransactionFilter{Start: start, End: end})
	if err != nil {
		return nil, err
	}

	result := &SpendingTrends{
		Period:  period,
		GroupBy: string(granularity),
		Trends:  []TrendPoint{},
	}
	if len(transactions) == 0 {
		return result, nil
	}

	byPeriod := map[string][]domain.Transaction{}
	for _, t := range transactions {
		key := stats.BucketKey(t.Date, granularity)
		byPeriod[key] = append(byPeriod[key], t)
	}

	for _, key := range stats.BucketRange(start, end, granularity) {
		group, ok := byPeriod[key]
		if !ok {
			continue
		}
		point := TrendPoint{Period: key, TopExpenseCategories: []CategoryAmount{}}
		expenseByCategory := map[string]float64{}
		for _, t := range group {
			if t.IsIncome() {
				point.Income += t.Amount
			} else if t.IsExpense() {
				point.Expense += t.Amount
				expenseByCategory[t.Category] += t.Amount
			}
		}
		point.Net = point.Income - point.Expense
		for _, entry := range stats.TopNByValue(expenseByCategory, 3) {
			point.TopExpenseCategories = append(point.TopExpenseCategories, CategoryAmount{Category: entry.Key, Amount: entry.Value})
		}
		result.Trends = append(result.Trends, point)
	}

	return result, nil
}

type CategoryDetail struct {
	Category           string  `json:"category"`
	TotalAmount        float64 `json:"total_amount"`
	Percentage         float64 `json:"percentage"`
	TransactionCount   int     `json:"transaction_count"`
	AverageTransaction float64 `json:"average_transaction"`
	StdDeviation       float64 `json:"std_deviation"`
	FirstTransaction   string  `json:"first_transaction,omitempty"`
	LastTransaction    string  `json:"last_transaction,omitempty"`
}

type CategoryBreakdownSummary struct {
	TopCategory        string  `json:"top_category,omitempty"`
	CategoryCount      int     `json:"category_count"`
	AveragePerCategory float64 `json:"average_per_category"`
}

type CategoryBreakdown struct {
	Period     string                   `json:"period"`
	Type       string                   `json:"type"`
	Total      float64                  `json:"total"`
	Categories []CategoryDetail         `json:"categories"`
	Summary    CategoryBreakdownSummary `json:"summary"`
}

func (s *TransactionService) GetCategoryBreakdown(userID int64, kind, period string) (*CategoryBreakdown, error) {
	start, end, _ := periodWindow(s.now(), period)
	filter := domain.TransactionFilter{Start: start, End: end}
	if kind != "all" {
		filter.Kind = kind
	}
	transactions, err := s.transactionRepo.GetTransactions(userID, filter)
	if err != nil {
		return nil, err
	}

	result := &CategoryBreakdown{Period: period, Type: kind, Categories: []CategoryDetail{}}
	if len(transactions) == 0 {
		return result, nil
	}

	type categoryWindow struct {
		amounts     []float64
		first, last time.Time
	}
	windows := map[string]*categoryWindow{}
	var total float64
	for _, t := range transactions {
		total += t.Amount
		w, ok := windows[t.Category]
		if !ok {
			w = &categoryWindow{first: t.Date, last: t.Date}
			windows[t.Category] = w
		}
		w.amounts = append(w.amounts, t.Amount)
		if t.Date.Before(w.first) {
			w.first = t.Date
		}
		if t.Date.After(w.last) {
			w.last = t.Date
		}
	}

	totals := map[string]float64{}
	for name, w := range windows {
		totals[name] = stats.Summarize(w.amounts).Sum
	}
	for _, entry := range stats.TopNByValue(totals, 0) {
		w := windows[entry.Key]
		summary := stats.Summarize(w.amounts)
		result.Categories = append(result.Categories, CategoryDetail{
			Category:           entry.Key,
			TotalAmount:        summary.Sum,
			Percentage:         stats.PercentOfTotal(summary.Sum, total),
			TransactionCount:   summary.Count,
			AverageTransaction: summary.Mean,
			StdDeviation:       summary.StdDev,
			FirstTransaction:   w.first.Format(time.RFC3339),
			LastTransaction:    w.last.Format(time.RFC3339),
		})
	}

	result.Total = total
	result.Summary = CategoryBreakdownSummary{
		TopCategory:        result.Categories[0].Category,
		CategoryCount:      len(result.Categories),
		AveragePerCategory: total / float64(len(result.Categories)),
	}
	return result, nil
}

type PeriodComparison struct {
	Period             string  `json:"period"`
	Income             float64 `json:"income"`
	Expense            float64 `json:"expense"`
	Net                float64 `json:"net"`
	IncomeExpenseRatio float64 `json:"income_expense_ratio"`
}

type IncomeVsExpenses struct {
	Period             string             `json:"period"`
	GroupBy            string             `json:"group_by"`
	TotalIncome        float64            `json:"total_income"`
	TotalExpenses      float64            `json:"total_expenses"`
	Net                float64            `json:"net"`
	IncomeExpenseRatio float64            `json:"income_expense_ratio"`
	Comparison         []PeriodComparison `json:"comparison"`
}

func (s *TransactionService) GetIncomeVsExpenses(userID int64, period string) (*IncomeVsExpenses, error) {
	start, end, granularity := periodWindow(s.now(), period)
	transactions, err := s.transactionRepo.GetTransactions(userID, domain.TransactionFilter{Start: start, End: end})
	if err != nil {
		return nil, err
	}

	result := &IncomeVsExpenses{
		Period:     period,
		GroupBy:    string(granularity),
		Comparison: []PeriodComparison{},
	}
	if len(transactions) == 0 {
		return result, nil
	}

	byPeriod := map[string]*PeriodComparison{}
	for _, t := range transactions {
		key := stats.BucketKey(t.Date, granularity)
		entry, ok := byPeriod[key]
		if !ok {
			entry = &PeriodComparison{Period: key}
			byPeriod[key] = entry
		}
		if t.IsIncome() {
			result.TotalIncome += t.Amount
			entry.Income += t.Amount
		} else if t.IsExpense() {
			result.TotalExpenses += t.Amount
			entry.Expense += t.Amount
		}
	}

	result.Net = result.TotalIncome - result.TotalExpenses
	result.IncomeExpenseRatio = stats.Ratio(result.TotalIncome, result.TotalExpenses)

	for _, key := range stats.BucketRange(start, end, granularity) {
		entry, ok := byPeriod[key]
		if !ok {
			continue
		}
		entry.Net = entry.Income - entry.Expense
		entry.IncomeExpenseRatio = stats.Ratio(entry.Income, entry.Expense)
		result.Comparison = append(result.Comparison, *entry)
	}

	return result, nil
}
