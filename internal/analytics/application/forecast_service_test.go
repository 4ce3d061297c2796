package application

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sebuszqo/FinanceAnalytics/internal/analytics/domain"
	"github.com/sebuszqo/FinanceAnalytics/internal/analytics/infrastructure"
)

func monthlyExpenseFixture() []domain.Transaction {
	// One expense per month, rising linearly from January through June.
	transactions := []domain.Transaction{}
	for i := 0; i < 6; i++ {
		date := time.Date(2024, time.Month(i+1), 10, 0, 0, 0, 0, time.UTC)
		transactions = append(transactions, tx(int64(i+1), float64((i+1)*100), "food", "expense", date))
	}
	return transactions
}

func TestGetSpendingForecast(t *testing.T) {
	repo := &infrastructure.MockTransactionRepository{Transactions: monthlyExpenseFixture()}
	service := NewForecastService(repo)
	service.now = fixedNow

	forecast, err := service.GetSpendingForecast(1, 3, "")
	assert.NoError(t, err)
	assert.Len(t, forecast.HistoricalData, 6)
	assert.Len(t, forecast.Forecast, 3)
	assert.Equal(t, "increasing", forecast.Trend)

	// Trailing 3-month average is 500 and the fitted slope is 100/month.
	assert.Equal(t, "2024-07", forecast.Forecast[0].Period)
	assert.InDelta(t, 600.0, forecast.Forecast[0].PredictedAmount, 1e-6)
	assert.InDelta(t, 700.0, forecast.Forecast[1].PredictedAmount, 1e-6)
	assert.InDelta(t, 800.0, forecast.Forecast[2].PredictedAmount, 1e-6)

	stdDev := math.Sqrt(175000.0 / 6.0)
	assert.InDelta(t, 600.0-1.96*stdDev, forecast.Forecast[0].LowerBound, 1e-6)
	assert.InDelta(t, 600.0+1.96*stdDev, forecast.Forecast[0].UpperBound, 1e-6)
	assert.Equal(t, "medium", forecast.Confidence)
}

func TestGetSpendingForecast_InsufficientTransactions(t *testing.T) {
	repo := &infrastructure.MockTransactionRepository{Transactions: []domain.Transaction{
		tx(1, 100, "food", "expense", testNow.AddDate(0, 0, -5)),
	}}
	service := NewForecastService(repo)
	service.now = fixedNow

	forecast, err := service.GetSpendingForecast(1, 3, "")
	assert.NoError(t, err)
	assert.Empty(t, forecast.Forecast)
	assert.Equal(t, "low", forecast.Confidence)
	assert.Equal(t, "Insufficient data for forecasting", forecast.Message)
}

func TestGetSpendingForecast_TooFewMonths(t *testing.T) {
	repo := &infrastructure.MockTransactionRepository{Transactions: []domain.Transaction{
		tx(1, 100, "food", "expense", testNow.AddDate(0, 0, -1)),
		tx(2, 120, "food", "expense", testNow.AddDate(0, 0, -2)),
		tx(3, 140, "food", "expense", testNow.AddDate(0, 0, -3)),
	}}
	service := NewForecastService(repo)
	service.now = fixedNow

	forecast, err := service.GetSpendingForecast(1, 3, "")
	assert.NoError(t, err)
	assert.Empty(t, forecast.Forecast)
	assert.Equal(t, "Insufficient historical data", forecast.Message)
}

func TestGetTrendLines_PerfectLinearSeries(t *testing.T) {
	repo := &infrastructure.MockTransactionRepository{Transactions: monthlyExpenseFixture()}
	service := NewForecastService(repo)
	service.now = fixedNow

	trends, err := service.GetTrendLines(1, 12, "expenses")
	assert.NoError(t, err)
	assert.Len(t, trends.DataPoints, 6)
	assert.InDelta(t, 100.0, trends.Slope, 1e-9)
	assert.InDelta(t, 1.0, trends.RSquared, 1e-9)
	assert.Equal(t, "Clear strong increasing trend", trends.Interpretation)
	assert.InDelta(t, trends.DataPoints[0].Value, trends.TrendLine[0].TrendValue, 1e-9)
}

func TestGetTrendLines_Empty(t *testing.T) {
	service := NewForecastService(&infrastructure.MockTransactionRepository{})
	service.now = fixedNow

	trends, err := service.GetTrendLines(1, 12, "net")
	assert.NoError(t, err)
	assert.Empty(t, trends.DataPoints)
	assert.Empty(t, trends.TrendLine)
	assert.Equal(t, 0.0, trends.Slope)
}

func TestDetectSeasonality_StrongPattern(t *testing.T) {
	transactions := []domain.Transaction{
		tx(1, 100, "gifts", "expense", time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)),
		tx(2, 100, "gifts", "expense", time.Date(2024, time.February, 5, 0, 0, 0, 0, time.UTC)),
		tx(3, 1000, "gifts", "expense", time.Date(2023, time.December, 20, 0, 0, 0, 0, time.UTC)),
	}
	service := NewForecastService(&infrastructure.MockTransactionRepository{Transactions: transactions})
	service.now = fixedNow

	seasonality, err := service.DetectSeasonality(1, "")
	assert.NoError(t, err)
	assert.True(t, seasonality.HasSeasonality)
	assert.Equal(t, "Strong seasonal pattern", seasonality.Interpretation)
	assert.Len(t, seasonality.MonthlyPattern, 3)

	december := seasonality.MonthlyPattern[2]
	assert.Equal(t, "December", december.MonthName)
	assert.InDelta(t, 1000.0, december.AverageAmount, 1e-9)
	assert.Greater(t, december.DeviationPercent, 100.0)
}

func TestDetectSeasonality_NoData(t *testing.T) {
	service := NewForecastService(&infrastructure.MockTransactionRepository{})
	service.now = fixedNow

	seasonality, err := service.DetectSeasonality(1, "")
	assert.NoError(t, err)
	assert.False(t, seasonality.HasSeasonality)
	assert.Equal(t, "Insufficient data", seasonality.Message)
}

func TestPredictCategorySpending(t *testing.T) {
	repo := &infrastructure.MockTransactionRepository{Transactions: monthlyExpenseFixture()}
	service := NewForecastService(repo)
	service.now = fixedNow

	prediction, err := service.PredictCategorySpending(1, "food")
	assert.NoError(t, err)
	// Recent average 500 plus slope 100.
	assert.InDelta(t, 600.0, prediction.PredictedAmount, 1e-6)
	assert.InDelta(t, 350.0, prediction.HistoricalAverage, 1e-9)
	assert.Equal(t, "increasing", prediction.Trend)
	assert.Equal(t, "2024-07", prediction.TargetDate)
}

func TestPredictCategorySpending_InsufficientData(t *testing.T) {
	repo := &infrastructure.MockTransactionRepository{Transactions: []domain.Transaction{
		tx(1, 100, "food", "expense", testNow.AddDate(0, 0, -5)),
		tx(2, 100, "food", "expense", testNow.AddDate(0, 0, -6)),
	}}
	service := NewForecastService(repo)
	service.now = fixedNow

	prediction, err := service.PredictCategorySpending(1, "food")
	assert.NoError(t, err)
	assert.Equal(t, 0.0, prediction.PredictedAmount)
	assert.Equal(t, "low", prediction.Confidence)
	assert.Equal(t, "Insufficient data for prediction", prediction.Message)
}
