package application

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebuszqo/FinanceAnalytics/internal/analytics/domain"
	analyticsErrors "github.com/sebuszqo/FinanceAnalytics/internal/analytics/errors"
	"github.com/sebuszqo/FinanceAnalytics/internal/analytics/infrastructure"
)

func TestGetReportData(t *testing.T) {
	transactions := []domain.Transaction{
		tx(1, 4000, "salary", "income", time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)),
		tx(2, 900, "rent", "expense", time.Date(2024, time.June, 2, 0, 0, 0, 0, time.UTC)),
		tx(3, 300, "food", "expense", time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC)),
	}
	service := NewReportService(&infrastructure.MockTransactionRepository{Transactions: transactions})
	service.now = fixedNow

	start := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC)
	result, err := service.GetReportData(1, "", start, end)
	require.NoError(t, err)

	_, parseErr := uuid.Parse(result.ReportID)
	assert.NoError(t, parseErr)
	assert.Equal(t, "summary", result.ReportType)
	assert.Equal(t, "2024-06-01", result.PeriodStart)
	assert.Equal(t, "2024-06-30", result.PeriodEnd)
	assert.Equal(t, testNow.Format(time.RFC3339), result.GeneratedAt)

	assert.InDelta(t, 4000.0, result.TotalIncome, 1e-9)
	assert.InDelta(t, 1200.0, result.TotalExpenses, 1e-9)
	assert.InDelta(t, 2800.0, result.NetIncome, 1e-9)
	assert.InDelta(t, 70.0, result.SavingsRate, 1e-9)
	assert.Equal(t, 3, result.TransactionCount)

	require.Len(t, result.SpendingByCategory, 2)
	assert.Equal(t, "rent", result.SpendingByCategory[0].Category)
	assert.InDelta(t, 75.0, result.SpendingByCategory[0].Percentage, 1e-9)

	require.Len(t, result.Transactions, 3)
	assert.Equal(t, "income", result.Transactions[0].Type)
	assert.Equal(t, "2024-06-01", result.Transactions[0].Date)
}

func TestGetReportData_InvalidUserID(t *testing.T) {
	service := NewReportService(&infrastructure.MockTransactionRepository{})

	_, err := service.GetReportData(0, "summary", time.Time{}, time.Time{})
	assert.ErrorIs(t, err, analyticsErrors.ErrInvalidUserID)
}

func TestGetReportData_InvalidDateRange(t *testing.T) {
	service := NewReportService(&infrastructure.MockTransactionRepository{})

	start := time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	_, err := service.GetReportData(1, "summary", start, end)
	assert.ErrorIs(t, err, analyticsErrors.ErrInvalidDateRange)
}

func TestGetReportData_EmptyPeriod(t *testing.T) {
	service := NewReportService(&infrastructure.MockTransactionRepository{})
	service.now = fixedNow

	start := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC)
	result, err := service.GetReportData(1, "detailed", start, end)
	require.NoError(t, err)
	assert.Equal(t, "detailed", result.ReportType)
	assert.Equal(t, 0, result.TransactionCount)
	assert.Equal(t, 0.0, result.SavingsRate)
	assert.Empty(t, result.SpendingByCategory)
	assert.Empty(t, result.Transactions)
}
