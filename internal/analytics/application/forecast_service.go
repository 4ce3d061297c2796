package application

import (
	"math"
	"time"

	"github.com/sebuszqo/FinanceAnalytics/internal/analytics/domain"
	"github.com/sebuszqo/FinanceAnalytics/internal/analytics/stats"
)

type ForecastService struct {
	transactionRepo domain.TransactionRepository
	now             func() time.Time
}

func NewForecastService(transactionRepo domain.TransactionRepository) *ForecastService {
	return &ForecastService{transactionRepo: transactionRepo, now: time.Now}
}

type ForecastPoint struct {
	Period          string  `json:"period"`
	PredictedAmount float64 `json:"predicted_amount"`
	LowerBound      float64 `json:"lower_bound"`
	UpperBound      float64 `json:"upper_bound"`
}

type HistoricalPoint struct {
	Period string  `json:"period"`
	Amount float64 `json:"amount"`
}

type SpendingForecast struct {
	HistoricalData []HistoricalPoint `json:"historical_data,omitempty"`
	Forecast       []ForecastPoint   `json:"forecast"`
	Confidence     string            `json:"confidence"`
	Trend          string            `json:"trend,omitempty"`
	Variance       float64           `json:"variance,omitempty"`
	Message        string            `json:"message,omitempty"`
}

// monthlySeries buckets transactions into calendar months and returns ordered
// keys and totals for months that had activity.
func monthlySeries(transactions []domain.Transaction, start, end time.Time, value func(domain.Transaction) float64) ([]string, []float64) {
	byMonth := map[string]float64{}
	for _, t := range transactions {
		byMonth[stats.BucketKey(t.Date, stats.Monthly)] += value(t)
	}
	keys := []string{}
	values := []float64{}
	for _, key := range stats.BucketRange(start, end, stats.Monthly) {
		if amount, ok := byMonth[key]; ok {
			keys = append(keys, key)
			values = append(values, amount)
		}
	}
	return keys, values
}

// GetSpendingForecast projects monthly expenses forward from twelve months of
// history using a trailing moving average plus the fitted linear slope, with
// 95% bounds from the historical standard deviation.
func (s *ForecastService) GetSpendingForecast(userID int64, forecastMonths int, category string) (*SpendingForecast, error) {
	if forecastMonths <= 0 {
		forecastMonths = 3
	}
	now := s.now()
	start := now.AddDate(0, 0, -365)

	transactions, err := s.transactionRepo.GetTransactions(userID, domain.TransactionFilter{
		Start:    start,
		Kind:     "expense",
		Category: category,
	})
	if err != nil {
		return nil, err
	}

	if len(transactions) < 3 {
		return &SpendingForecast{
			Forecast:   []ForecastPoint{},
			Confidence: "low",
			Message:    "Insufficient data for forecasting",
		}, nil
	}

	months, values := monthlySeries(transactions, start, now, func(t domain.Transaction) float64 { return t.Amount })
	if len(values) < 3 {
		return &SpendingForecast{
			Forecast:   []ForecastPoint{},
			Confidence: "low",
			Message:    "Insufficient historical data",
		}, nil
	}

	lastValue := stats.MovingAverage(values, 3)
	regression := stats.LinearRegression(values)
	summary := stats.Summarize(values)
	confidenceInterval := 1.96 * summary.StdDev

	lastMonth, _ := time.Parse("2006-01", months[len(months)-1])
	forecast := []ForecastPoint{}
	for i := 1; i <= forecastMonths; i++ {
		predicted := lastValue + regression.Slope*float64(i)
		forecast = append(forecast, ForecastPoint{
			Period:          stats.OffsetKey(lastMonth, stats.Monthly, i),
			PredictedAmount: math.Max(0, predicted),
			LowerBound:      math.Max(0, predicted-confidenceInterval),
			UpperBound:      predicted + confidenceInterval,
		})
	}

	historical := make([]HistoricalPoint, len(months))
	for i, month := range months {
		historical[i] = HistoricalPoint{Period: month, Amount: values[i]}
	}

	cv := stats.CoefficientOfVariation(values)
	return &SpendingForecast{
		HistoricalData: historical,
		Forecast:       forecast,
		Confidence:     stats.ConfidenceLabel(cv),
		Trend:          trendDirection(regression.Slope),
		Variance:       cv,
	}, nil
}

func trendDirection(slope float64) string {
	if slope > 0 {
		return "increasing"
	}
	if slope < 0 {
		return "decreasing"
	}
	return "stable"
}

type TrendDataPoint struct {
	Period string  `json:"period"`
	Value  float64 `json:"value"`
}

type TrendLinePoint struct {
	Period     string  `json:"period"`
	TrendValue float64 `json:"trend_value"`
}

type TrendLines struct {
	DataPoints     []TrendDataPoint `json:"data_points"`
	TrendLine      []TrendLinePoint `json:"trend_line"`
	Slope          float64          `json:"slope"`
	RSquared       float64          `json:"r_squared"`
	Interpretation string           `json:"interpretation,omitempty"`
}

// GetTrendLines fits a regression line through the monthly series of the
// requested metric (expenses, income or net).
func (s *ForecastService) GetTrendLines(userID int64, months int, metric string) (*TrendLines, error) {
	if months <= 0 {
		months = 12
	}
	now := s.now()
	start := now.AddDate(0, 0, -months*30)

	transactions, err := s.transactionRepo.GetTransactions(userID, domain.TransactionFilter{Start: start})
	if err != nil {
		return nil, err
	}

	empty := &TrendLines{DataPoints: []TrendDataPoint{}, TrendLine: []TrendLinePoint{}}
	if len(transactions) == 0 {
		return empty, nil
	}

	var value func(domain.Transaction) float64
	switch metric {
	case "income":
		value = func(t domain.Transaction) float64 {
			if t.IsIncome() {
				return t.Amount
			}
			return 0
		}
	case "net":
		value = func(t domain.Transaction) float64 { return t.Signed() }
	default: // expenses
		value = func(t domain.Transaction) float64 {
			if t.IsExpense() {
				return t.Amount
			}
			return 0
		}
	}

	keys, values := monthlySeries(transactions, start, now, value)
	if len(values) < 2 {
		return empty, nil
	}

	regression := stats.LinearRegression(values)
	result := &TrendLines{
		DataPoints:     []TrendDataPoint{},
		TrendLine:      []TrendLinePoint{},
		Slope:          regression.Slope,
		RSquared:       regression.R2,
		Interpretation: stats.InterpretTrend(regression.Slope, regression.R2),
	}
	for i, key := range keys {
		result.DataPoints = append(result.DataPoints, TrendDataPoint{Period: key, Value: values[i]})
		result.TrendLine = append(result.TrendLine, TrendLinePoint{
			Period:     key,
			TrendValue: regression.Intercept + regression.Slope*float64(i),
		})
	}
	return result, nil
}

type MonthPattern struct {
	Month            int     `json:"month"`
	MonthName        string  `json:"month_name"`
	AverageAmount    float64 `json:"average_amount"`
	DeviationPercent float64 `json:"deviation_percent"`
}

type QuarterPattern struct {
	Quarter       int     `json:"quarter"`
	AverageAmount float64 `json:"average_amount"`
}

type Seasonality struct {
	HasSeasonality      bool             `json:"has_seasonality"`
	MonthlyPattern      []MonthPattern   `json:"monthly_pattern,omitempty"`
	QuarterlyPattern    []QuarterPattern `json:"quarterly_pattern,omitempty"`
	VarianceCoefficient float64          `json:"variance_coefficient,omitempty"`
	Interpretation      string           `json:"interpretation,omitempty"`
	Message             string           `json:"message,omitempty"`
}

// DetectSeasonality looks for recurring calendar-month spending patterns over
// two years of expenses.
func (s *ForecastService) DetectSeasonality(userID int64, category string) (*Seasonality, error) {
	start := s.now().AddDate(0, 0, -730)
	transactions, err := s.transactionRepo.GetTransactions(userID, domain.TransactionFilter{
		Start:    start,
		Kind:     "expense",
		Category: category,
	})
	if err != nil {
		return nil, err
	}

	if len(transactions) == 0 {
		return &Seasonality{Message: "Insufficient data"}, nil
	}

	monthAmounts := map[time.Month][]float64{}
	quarterAmounts := map[int][]float64{}
	var overallSum float64
	for _, t := range transactions {
		month := t.Date.Month()
		quarter := (int(month)-1)/3 + 1
		monthAmounts[month] = append(monthAmounts[month], t.Amount)
		quarterAmounts[quarter] = append(quarterAmounts[quarter], t.Amount)
		overallSum += t.Amount
	}
	overallMean := overallSum / float64(len(transactions))

	result := &Seasonality{MonthlyPattern: []MonthPattern{}, QuarterlyPattern: []QuarterPattern{}}
	monthlyMeans := []float64{}
	for month := time.January; month <= time.December; month++ {
		amounts, ok := monthAmounts[month]
		if !ok {
			continue
		}
		mean := stats.Summarize(amounts).Mean
		monthlyMeans = append(monthlyMeans, mean)
		result.MonthlyPattern = append(result.MonthlyPattern, MonthPattern{
			Month:            int(month),
			MonthName:        month.String(),
			AverageAmount:    mean,
			DeviationPercent: stats.PercentOfTotal(mean-overallMean, overallMean),
		})
	}
	for quarter := 1; quarter <= 4; quarter++ {
		amounts, ok := quarterAmounts[quarter]
		if !ok {
			continue
		}
		result.QuarterlyPattern = append(result.QuarterlyPattern, QuarterPattern{
			Quarter:       quarter,
			AverageAmount: stats.Summarize(amounts).Mean,
		})
	}

	cv := stats.CoefficientOfVariation(monthlyMeans)
	result.VarianceCoefficient = cv
	result.HasSeasonality = cv > 0.2
	switch {
	case cv > 0.4:
		result.Interpretation = "Strong seasonal pattern"
	case cv > 0.2:
		result.Interpretation = "Moderate seasonal pattern"
	default:
		result.Interpretation = "No significant seasonality"
	}
	return result, nil
}

type CategoryPrediction struct {
	Category          string  `json:"category"`
	PredictedAmount   float64 `json:"predicted_amount"`
	HistoricalAverage float64 `json:"historical_average,omitempty"`
	RecentAverage     float64 `json:"recent_average,omitempty"`
	Trend             string  `json:"trend,omitempty"`
	Confidence        string  `json:"confidence"`
	TargetDate        string  `json:"target_date,omitempty"`
	Message           string  `json:"message,omitempty"`
}

// PredictCategorySpending estimates next month's spending in a category from
// six months of history: recent three-month average adjusted by the trend.
func (s *ForecastService) PredictCategorySpending(userID int64, category string) (*CategoryPrediction, error) {
	now := s.now()
	start := now.AddDate(0, 0, -180)

	transactions, err := s.transactionRepo.GetTransactions(userID, domain.TransactionFilter{
		Start:    start,
		Kind:     "expense",
		Category: category,
	})
	if err != nil {
		return nil, err
	}

	if len(transactions) < 5 {
		return &CategoryPrediction{
			Category:   category,
			Confidence: "low",
			Message:    "Insufficient data for prediction",
		}, nil
	}

	_, values := monthlySeries(transactions, start, now, func(t domain.Transaction) float64 { return t.Amount })
	overall := stats.Summarize(values)
	if len(values) < 2 {
		amounts := make([]float64, len(transactions))
		for i, t := range transactions {
			amounts[i] = t.Amount
		}
		return &CategoryPrediction{
			Category:        category,
			PredictedAmount: stats.Summarize(amounts).Mean,
			Confidence:      "low",
		}, nil
	}

	recentAvg := stats.MovingAverage(values, 3)
	regression := stats.LinearRegression(values)
	prediction := recentAvg + regression.Slope

	cv := stats.CoefficientOfVariation(values)
	return &CategoryPrediction{
		Category:          category,
		PredictedAmount:   math.Max(0, prediction),
		HistoricalAverage: overall.Mean,
		RecentAverage:     recentAvg,
		Trend:             trendDirection(regression.Slope),
		Confidence:        stats.ConfidenceLabel(cv),
		TargetDate:        stats.OffsetKey(now, stats.Monthly, 1),
	}, nil
}
