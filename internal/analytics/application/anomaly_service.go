package application

import (
	"math"
	"sort"
	"time"

	"github.com/sebuszqo/FinanceAnalytics/internal/analytics/domain"
	"github.com/sebuszqo/FinanceAnalytics/internal/analytics/stats"
)

const (
	minTransactionsForDetection = 10
	minCategorySampleSize       = 5
	maxReportedAnomalies        = 50
)

var sensitivityThresholds = map[string]float64{
	"low":    3.0,
	"medium": 2.5,
	"high":   2.0,
}

type AnomalyService struct {
	transactionRepo domain.TransactionRepository
	now             func() time.Time
}

func NewAnomalyService(transactionRepo domain.TransactionRepository) *AnomalyService {
	return &AnomalyService{transactionRepo: transactionRepo, now: time.Now}
}

type Anomaly struct {
	TransactionID    int64   `json:"transaction_id"`
	Amount           float64 `json:"amount"`
	Category         string  `json:"category"`
	Type             string  `json:"type"`
	Date             string  `json:"date"`
	Description      string  `json:"description"`
	ZScore           float64 `json:"z_score"`
	CategoryAverage  float64 `json:"category_average"`
	DeviationPercent float64 `json:"deviation_percent"`
	Severity         string  `json:"severity"`
}

type AnomalyReport struct {
	Anomalies []Anomaly `json:"anomalies"`
	Summary   struct {
		TotalAnomalies   int     `json:"total_anomalies"`
		AnomalyRate      float64 `json:"anomaly_rate"`
		SensitivityLevel string  `json:"sensitivity_level,omitempty"`
	} `json:"summary"`
}

// DetectAnomalies flags transactions whose absolute amount deviates from its
// category mean by more than the sensitivity's z-score threshold. Categories
// with fewer than five transactions or no variance are skipped.
func (s *AnomalyService) DetectAnomalies(userID int64, sensitivity string, days int) (*AnomalyReport, error) {
	if days <= 0 {
		days = 90
	}
	threshold, ok := sensitivityThresholds[sensitivity]
	if !ok {
		sensitivity = "medium"
		threshold = sensitivityThresholds["medium"]
	}

	start := s.now().AddDate(0, 0, -days)
	transactions, err := s.transactionRepo.GetTransactions(userID, domain.TransactionFilter{Start: start})
	if err != nil {
		return nil, err
	}

	report := &AnomalyReport{Anomalies: []Anomaly{}}
	if len(transactions) < minTransactionsForDetection {
		return report, nil
	}

	byCategory := map[string][]domain.Transaction{}
	for _, t := range transactions {
		byCategory[t.Category] = append(byCategory[t.Category], t)
	}

	anomalies := []Anomaly{}
	for _, group := range byCategory {
		if len(group) < minCategorySampleSize {
			continue
		}
		amounts := make([]float64, len(group))
		for i, t := range group {
			amounts[i] = math.Abs(t.Amount)
		}
		summary := stats.Summarize(amounts)
		if summary.StdDev == 0 {
			continue
		}

		for i, t := range group {
			z := (amounts[i] - summary.Mean) / summary.StdDev
			if math.Abs(z) <= threshold {
				continue
			}
			anomalies = append(anomalies, Anomaly{
				TransactionID:    t.ID,
				Amount:           t.Amount,
				Category:         t.Category,
				Type:             t.Kind,
				Date:             t.Date.Format(time.RFC3339),
				Description:      t.Description,
				ZScore:           z,
				CategoryAverage:  summary.Mean,
				DeviationPercent: stats.PercentOfTotal(amounts[i]-summary.Mean, summary.Mean),
				Severity:         severity(z, threshold),
			})
		}
	}

	sort.Slice(anomalies, func(i, j int) bool {
		return math.Abs(anomalies[i].ZScore) > math.Abs(anomalies[j].ZScore)
	})

	report.Summary.TotalAnomalies = len(anomalies)
	report.Summary.AnomalyRate = stats.PercentOfTotal(float64(len(anomalies)), float64(len(transactions)))
	report.Summary.SensitivityLevel = sensitivity
	if len(anomalies) > maxReportedAnomalies {
		anomalies = anomalies[:maxReportedAnomalies]
	}
	report.Anomalies = anomalies
	return report, nil
}

func severity(zScore, threshold float64) string {
	absZ := math.Abs(zScore)
	switch {
	case absZ > threshold*1.5:
		return "critical"
	case absZ > threshold*1.2:
		return "high"
	case absZ > threshold:
		return "medium"
	default:
		return "low"
	}
}
