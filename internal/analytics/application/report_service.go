package application

import (
	"time"

	"github.com/google/uuid"

	"github.com/sebuszqo/FinanceAnalytics/internal/analytics/domain"
	analyticsErrors "github.com/sebuszqo/FinanceAnalytics/internal/analytics/errors"
	"github.com/sebuszqo/FinanceAnalytics/internal/analytics/stats"
)

// ReportService assembles the data an external PDF/Excel renderer consumes.
type ReportService struct {
	transactionRepo domain.TransactionRepository
	now             func() time.Time
}

func NewReportService(transactionRepo domain.TransactionRepository) *ReportService {
	return &ReportService{transactionRepo: transactionRepo, now: time.Now}
}

type ReportTransaction struct {
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Type        string  `json:"type"`
	Amount      float64 `json:"amount"`
}

type ReportData struct {
	ReportID           string          `json:"report_id"`
	ReportType         string          `json:"report_type"`
	PeriodStart        string          `json:"period_start"`
	PeriodEnd          string          `json:"period_end"`
	GeneratedAt        string          `json:"generated_at"`
	TotalIncome        float64         `json:"total_income"`
	TotalExpenses      float64         `json:"total_expenses"`
	NetIncome          float64         `json:"net_income"`
	SavingsRate        float64         `json:"savings_rate"`
	TransactionCount   int             `json:"transaction_count"`
	SpendingByCategory []CategoryShare `json:"spending_by_category"`
	Transactions       []ReportTransaction `json:"transactions"`
}

func (s *ReportService) GetReportData(userID int64, reportType string, start, end time.Time) (*ReportData, error) {
	if userID <= 0 {
		return nil, analyticsErrors.ErrInvalidUserID
	}
	if start.After(end) {
		return nil, analyticsErrors.ErrInvalidDateRange
	}
	if reportType == "" {
		reportType = "summary"
	}

	transactions, err := s.transactionRepo.GetTransactions(userID, domain.TransactionFilter{Start: start, End: end})
	if err != nil {
		return nil, err
	}

	result := &ReportData{
		ReportID:           uuid.NewString(),
		ReportType:         reportType,
		PeriodStart:        start.Format("2006-01-02"),
		PeriodEnd:          end.Format("2006-01-02"),
		GeneratedAt:        s.now().Format(time.RFC3339),
		SpendingByCategory: []CategoryShare{},
		Transactions:       []ReportTransaction{},
	}

	expenseByCategory := map[string]float64{}
	for _, t := range transactions {
		if t.IsIncome() {
			result.TotalIncome += t.Amount
		} else if t.IsExpense() {
			result.TotalExpenses += t.Amount
			expenseByCategory[t.Category] += t.Amount
		}
		result.Transactions = append(result.Transactions, ReportTransaction{
			Date:        t.Date.Format("2006-01-02"),
			Description: t.Description,
			Category:    t.Category,
			Type:        t.Kind,
			Amount:      t.Amount,
		})
	}
	result.TransactionCount = len(transactions)
	result.NetIncome = result.TotalIncome - result.TotalExpenses
	result.SavingsRate = stats.PercentOfTotal(result.NetIncome, result.TotalIncome)

	for _, entry := range stats.TopNByValue(expenseByCategory, 0) {
		result.SpendingByCategory = append(result.SpendingByCategory, CategoryShare{
			Category:   entry.Key,
			Amount:     entry.Value,
			Percentage: stats.PercentOfTotal(entry.Value, result.TotalExpenses),
		})
	}

	return result, nil
}
