package interfaces

import (
	"time"

	"github.com/sebuszqo/FinanceAnalytics/internal/analytics/application"
)

type MockTransactionAnalyticsService struct {
	Analytics *application.TransactionAnalytics
	Trends    *application.SpendingTrends
	Breakdown *application.CategoryBreakdown
	Comparing *application.IncomeVsExpenses
	Err       error
}

func (m *MockTransactionAnalyticsService) GetTransactionAnalytics(userID int64, period string) (*application.TransactionAnalytics, error) {
	return m.Analytics, m.Err
}

func (m *MockTransactionAnalyticsService) GetSpendingTrends(userID int64, period string) (*application.SpendingTrends, error) {
	return m.Trends, m.Err
}

func (m *MockTransactionAnalyticsService) GetCategoryBreakdown(userID int64, kind, period string) (*application.CategoryBreakdown, error) {
	return m.Breakdown, m.Err
}

func (m *MockTransactionAnalyticsService) GetIncomeVsExpenses(userID int64, period string) (*application.IncomeVsExpenses, error) {
	return m.Comparing, m.Err
}

type MockAnomalyService struct {
	Report      *application.AnomalyReport
	Sensitivity string
	Days        int
	Err         error
}

func (m *MockAnomalyService) DetectAnomalies(userID int64, sensitivity string, days int) (*application.AnomalyReport, error) {
	m.Sensitivity = sensitivity
	m.Days = days
	return m.Report, m.Err
}

type MockForecastService struct {
	Forecast   *application.SpendingForecast
	Trends     *application.TrendLines
	Season     *application.Seasonality
	Prediction *application.CategoryPrediction
	Months     int
	Metric     string
	Err        error
}

func (m *MockForecastService) GetSpendingForecast(userID int64, forecastMonths int, category string) (*application.SpendingForecast, error) {
	m.Months = forecastMonths
	return m.Forecast, m.Err
}

func (m *MockForecastService) GetTrendLines(userID int64, months int, metric string) (*application.TrendLines, error) {
	m.Months = months
	m.Metric = metric
	return m.Trends, m.Err
}

func (m *MockForecastService) DetectSeasonality(userID int64, category string) (*application.Seasonality, error) {
	return m.Season, m.Err
}

func (m *MockForecastService) PredictCategorySpending(userID int64, category string) (*application.CategoryPrediction, error) {
	return m.Prediction, m.Err
}

type MockGoalService struct {
	Probability     *application.AchievementProbability
	Projections     *application.TimelineProjections
	Recommendations *application.ContributionRecommendations
	GoalID          int64
	Err             error
}

func (m *MockGoalService) GetAchievementProbability(userID, goalID int64) (*application.AchievementProbability, error) {
	m.GoalID = goalID
	return m.Probability, m.Err
}

func (m *MockGoalService) GetTimelineProjections(userID, goalID int64) (*application.TimelineProjections, error) {
	m.GoalID = goalID
	return m.Projections, m.Err
}

func (m *MockGoalService) GetContributionRecommendations(userID, goalID int64) (*application.ContributionRecommendations, error) {
	m.GoalID = goalID
	return m.Recommendations, m.Err
}

type MockReportService struct {
	Report *application.ReportData
	Start  time.Time
	End    time.Time
	Err    error
}

func (m *MockReportService) GetReportData(userID int64, reportType string, start, end time.Time) (*application.ReportData, error) {
	m.Start = start
	m.End = end
	return m.Report, m.Err
}
