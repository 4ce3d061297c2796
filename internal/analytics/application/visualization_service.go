package application

import (
	"fmt"
	"time"

	"github.com/sebuszqo/FinanceAnalytics/internal/analytics/domain"
	"github.com/sebuszqo/FinanceAnalytics/internal/analytics/stats"
)

// VisualizationService prepares chart-ready data shapes.
type VisualizationService struct {
	accountRepo     domain.AccountRepository
	transactionRepo domain.TransactionRepository
	now             func() time.Time
}

func NewVisualizationService(accountRepo domain.AccountRepository, transactionRepo domain.TransactionRepository) *VisualizationService {
	return &VisualizationService{accountRepo: accountRepo, transactionRepo: transactionRepo, now: time.Now}
}

type HeatmapCell struct {
	Day   string  `json:"day"`
	Hour  int     `json:"hour"`
	Value float64 `json:"value"`
}

type SpendingHeatmap struct {
	HeatmapData    []HeatmapCell `json:"heatmap_data"`
	MaxValue       float64       `json:"max_value"`
	Interpretation string        `json:"interpretation,omitempty"`
}

// GetSpendingHeatmap aggregates expenses into a full weekday-by-hour grid.
func (s *VisualizationService) GetSpendingHeatmap(userID int64, months int) (*SpendingHeatmap, error) {
	if months <= 0 {
		months = 6
	}
	start := s.now().AddDate(0, 0, -months*30)
	expenses, err := s.transactionRepo.GetTransactions(userID, domain.TransactionFilter{Start: start, Kind: "expense"})
	if err != nil {
		return nil, err
	}

	result := &SpendingHeatmap{HeatmapData: []HeatmapCell{}}
	if len(expenses) == 0 {
		return result, nil
	}

	type cellKey struct {
		day  string
		hour int
	}
	totals := map[cellKey]float64{}
	for _, t := range expenses {
		totals[cellKey{day: t.Date.Weekday().String(), hour: t.Date.Hour()}] += t.Amount
	}

	weekDays := []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
		time.Friday, time.Saturday, time.Sunday,
	}
	var peak HeatmapCell
	for _, day := range weekDays {
		for hour := 0; hour < 24; hour++ {
			value := totals[cellKey{day: day.String(), hour: hour}]
			cell := HeatmapCell{Day: day.String(), Hour: hour, Value: value}
			result.HeatmapData = append(result.HeatmapData, cell)
			if value > result.MaxValue {
				result.MaxValue = value
				peak = cell
			}
		}
	}

	if result.MaxValue == 0 {
		result.Interpretation = "No spending data available"
	} else {
		result.Interpretation = fmt.Sprintf("Peak spending occurs on %s at %02d:00 with $%.2f", peak.Day, peak.Hour, peak.Value)
	}
	return result, nil
}

type WaterfallItem struct {
	Category string  `json:"category"`
	Value    float64 `json:"value"`
	Type     string  `json:"type"`
}

type WaterfallData struct {
	WaterfallData []WaterfallItem `json:"waterfall_data"`
	Summary       struct {
		StartingBalance float64 `json:"starting_balance"`
		TotalIncome     float64 `json:"total_income"`
		TotalExpenses   float64 `json:"total_expenses"`
		EndingBalance   float64 `json:"ending_balance"`
		NetChange       float64 `json:"net_change"`
	} `json:"summary"`
}

// GetWaterfallData builds a cash-flow waterfall from the account balance
// through per-category income and expense steps. Zero start/end dates default
// to the current month.
func (s *VisualizationService) GetWaterfallData(userID int64, start, end time.Time) (*WaterfallData, error) {
	now := s.now()
	if start.IsZero() {
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	}
	if end.IsZero() {
		end = now
	}

	accounts, err := s.accountRepo.GetAccounts(userID)
	if err != nil {
		return nil, err
	}
	var startingBalance float64
	for _, a := range accounts {
		startingBalance += a.Balance
	}

	transactions, err := s.transactionRepo.GetTransactions(userID, domain.TransactionFilter{Start: start, End: end})
	if err != nil {
		return nil, err
	}

	result := &WaterfallData{WaterfallData: []WaterfallItem{
		{Category: "Starting Balance", Value: startingBalance, Type: "start"},
	}}

	incomeByCategory := map[string]float64{}
	expenseByCategory := map[string]float64{}
	for _, t := range transactions {
		if t.IsIncome() {
			incomeByCategory[t.Category] += t.Amount
		} else if t.IsExpense() {
			expenseByCategory[t.Category] += t.Amount
		}
	}

	var totalIncome, totalExpenses float64
	for _, entry := range stats.TopNByValue(incomeByCategory, 0) {
		totalIncome += entry.Value
		result.WaterfallData = append(result.WaterfallData, WaterfallItem{
			Category: "Income: " + entry.Key,
			Value:    entry.Value,
			Type:     "increase",
		})
	}
	for _, entry := range stats.TopNByValue(expenseByCategory, 0) {
		totalExpenses += entry.Value
		result.WaterfallData = append(result.WaterfallData, WaterfallItem{
			Category: "Expense: " + entry.Key,
			Value:    entry.Value,
			Type:     "decrease",
		})
	}

	endingBalance := startingBalance + totalIncome - totalExpenses
	result.WaterfallData = append(result.WaterfallData, WaterfallItem{
		Category: "Ending Balance",
		Value:    endingBalance,
		Type:     "end",
	})

	result.Summary.StartingBalance = startingBalance
	result.Summary.TotalIncome = totalIncome
	result.Summary.TotalExpenses = totalExpenses
	result.Summary.EndingBalance = endingBalance
	result.Summary.NetChange = endingBalance - startingBalance
	return result, nil
}

type ComparisonPeriod struct {
	Label            string  `json:"label"`
	Income           float64 `json:"income"`
	Expenses         float64 `json:"expenses"`
	Net              float64 `json:"net"`
	TransactionCount int     `json:"transaction_count"`
}

type ComparisonData struct {
	CurrentPeriod    ComparisonPeriod   `json:"current_period"`
	ComparisonPeriod ComparisonPeriod   `json:"comparison_period"`
	Changes          map[string]float64 `json:"changes"`
}

// GetComparisonData compares the current month or year against the previous
// one, with change percents and amounts per metric.
func (s *VisualizationService) GetComparisonData(userID int64, comparisonType string) (*ComparisonData, error) {
	now := s.now()
	var currentStart, previousStart, previousEnd time.Time
	var currentLabel, previousLabel string

	if comparisonType == "year_over_year" {
		currentStart = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		previousStart = currentStart.AddDate(-1, 0, 0)
		previousEnd = currentStart.Add(-time.Second)
		currentLabel = fmt.Sprintf("Year %d", now.Year())
		previousLabel = fmt.Sprintf("Year %d", now.Year()-1)
	} else {
		currentStart = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		previousStart = currentStart.AddDate(0, -1, 0)
		previousEnd = currentStart.Add(-time.Second)
		currentLabel = "This Month"
		previousLabel = "Last Month"
	}

	current, err := s.periodMetrics(userID, currentLabel, currentStart, now)
	if err != nil {
		return nil, err
	}
	previous, err := s.periodMetrics(userID, previousLabel, previousStart, previousEnd)
	if err != nil {
		return nil, err
	}

	changes := map[string]float64{}
	metrics := map[string][2]float64{
		"income":   {current.Income, previous.Income},
		"expenses": {current.Expenses, previous.Expenses},
		"net":      {current.Net, previous.Net},
	}
	for name, pair := range metrics {
		changes[name+"_change_percent"] = stats.ChangePercent(pair[0], pair[1])
		changes[name+"_change_amount"] = pair[0] - pair[1]
	}

	return &ComparisonData{
		CurrentPeriod:    current,
		ComparisonPeriod: previous,
		Changes:          changes,
	}, nil
}

func (s *VisualizationService) periodMetrics(userID int64, label string, start, end time.Time) (ComparisonPeriod, error) {
	transactions, err := s.transactionRepo.GetTransactions(userID, domain.TransactionFilter{Start: start, End: end})
	if err != nil {
		return ComparisonPeriod{}, err
	}
	metrics := ComparisonPeriod{Label: label, TransactionCount: len(transactions)}
	for _, t := range transactions {
		if t.IsIncome() {
			metrics.Income += t.Amount
		} else if t.IsExpense() {
			metrics.Expenses += t.Amount
		}
	}
	metrics.Net = metrics.Income - metrics.Expenses
	return metrics, nil
}
