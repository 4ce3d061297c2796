package application

import (
	"fmt"
	"math"
	"time"

	"github.com/sebuszqo/FinanceAnalytics/internal/analytics/domain"
	"github.com/sebuszqo/FinanceAnalytics/internal/analytics/stats"
)

type GoalService struct {
	goalRepo        domain.GoalRepository
	transactionRepo domain.TransactionRepository
	now             func() time.Time
}

func NewGoalService(goalRepo domain.GoalRepository, transactionRepo domain.TransactionRepository) *GoalService {
	return &GoalService{goalRepo: goalRepo, transactionRepo: transactionRepo, now: time.Now}
}

type AchievementProbability struct {
	GoalID              int64   `json:"goal_id"`
	GoalName            string  `json:"goal_name"`
	Status              string  `json:"status"`
	Probability         float64 `json:"probability"`
	AchievementRate     float64 `json:"achievement_rate,omitempty"`
	CurrentAmount       float64 `json:"current_amount,omitempty"`
	TargetAmount        float64 `json:"target_amount,omitempty"`
	RemainingAmount     float64 `json:"remaining_amount,omitempty"`
	DaysRemaining       int     `json:"days_remaining,omitempty"`
	HistoricalDailyRate float64 `json:"historical_daily_rate,omitempty"`
	RequiredDailyRate   float64 `json:"required_daily_rate,omitempty"`
	Interpretation      string  `json:"interpretation,omitempty"`
	Message             string  `json:"message,omitempty"`
}

// GetAchievementProbability scores how likely the goal is to be reached by
// its target date, comparing the historical contribution rate against the
// rate the remaining amount requires.
func (s *GoalService) GetAchievementProbability(userID, goalID int64) (*AchievementProbability, error) {
	goal, err := s.goalRepo.GetGoal(userID, goalID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	daysElapsed := int(now.Sub(goal.CreatedAt).Hours() / 24)
	if daysElapsed == 0 {
		daysElapsed = 1
	}
	daysRemaining := int(goal.TargetDate.Sub(now).Hours() / 24)

	if daysRemaining <= 0 {
		rate := goal.AchievementRate()
		result := &AchievementProbability{
			GoalID:          goalID,
			GoalName:        goal.Name,
			Status:          "overdue",
			AchievementRate: rate,
		}
		if rate < 100 {
			result.Probability = 0
			result.Message = "Goal deadline has passed"
		} else {
			result.Probability = 100
			result.Message = "Goal achieved!"
		}
		return result, nil
	}

	remaining := goal.TargetAmount - goal.CurrentAmount
	historicalRate := goal.CurrentAmount / float64(daysElapsed)
	requiredRate := remaining / float64(daysRemaining)

	var probability float64
	switch {
	case requiredRate <= 0:
		probability = 100
	case historicalRate >= requiredRate:
		ratio := historicalRate / requiredRate
		probability = math.Min(95, 70+(ratio-1)*25)
	default:
		ratio := historicalRate / requiredRate
		probability = math.Max(10, ratio*70)
	}
	if daysRemaining < 30 {
		probability *= 0.8
	}
	probability = math.Min(95, math.Max(10, probability))

	status := "behind"
	if probability >= 70 {
		status = "on_track"
	} else if probability >= 40 {
		status = "at_risk"
	}

	return &AchievementProbability{
		GoalID:              goalID,
		GoalName:            goal.Name,
		Status:              status,
		Probability:         probability,
		CurrentAmount:       goal.CurrentAmount,
		TargetAmount:        goal.TargetAmount,
		RemainingAmount:     remaining,
		DaysRemaining:       daysRemaining,
		HistoricalDailyRate: historicalRate,
		RequiredDailyRate:   requiredRate,
		Interpretation:      interpretProbability(probability),
	}, nil
}

func interpretProbability(probability float64) string {
	switch {
	case probability >= 80:
		return "Very likely to achieve goal on time"
	case probability >= 60:
		return "Good chance of achieving goal with current pace"
	case probability >= 40:
		return "May need to increase contributions to stay on track"
	default:
		return "Significant increase in contributions needed"
	}
}

type Milestone struct {
	Percentage    int     `json:"percentage"`
	Amount        float64 `json:"amount"`
	Status        string  `json:"status"`
	AchievedDate  string  `json:"achieved_date,omitempty"`
	ProjectedDate string  `json:"projected_date,omitempty"`
	DaysFromNow   int     `json:"days_from_now,omitempty"`
	Message       string  `json:"message,omitempty"`
}

type TimelineProjections struct {
	GoalID                  int64       `json:"goal_id"`
	GoalName                string      `json:"goal_name"`
	TargetDate              string      `json:"target_date"`
	ProjectedCompletionDate string      `json:"projected_completion_date,omitempty"`
	OnSchedule              bool        `json:"on_schedule"`
	DaysAheadBehind         *int        `json:"days_ahead_behind,omitempty"`
	Milestones              []Milestone `json:"milestones"`
	DailyContributionRate   float64     `json:"daily_contribution_rate"`
}

func (s *GoalService) GetTimelineProjections(userID, goalID int64) (*TimelineProjections, error) {
	goal, err := s.goalRepo.GetGoal(userID, goalID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	daysElapsed := int(now.Sub(goal.CreatedAt).Hours() / 24)
	if daysElapsed == 0 {
		daysElapsed = 1
	}
	dailyRate := goal.CurrentAmount / float64(daysElapsed)
	remaining := goal.TargetAmount - goal.CurrentAmount

	result := &TimelineProjections{
		GoalID:                goalID,
		GoalName:              goal.Name,
		TargetDate:            goal.TargetDate.Format(time.RFC3339),
		Milestones:            []Milestone{},
		DailyContributionRate: dailyRate,
	}

	if dailyRate > 0 {
		daysToComplete := remaining / dailyRate
		projected := now.AddDate(0, 0, int(daysToComplete))
		result.ProjectedCompletionDate = projected.Format(time.RFC3339)
		result.OnSchedule = !projected.After(goal.TargetDate)
		daysAheadBehind := int(goal.TargetDate.Sub(projected).Hours() / 24)
		result.DaysAheadBehind = &daysAheadBehind
	}

	for _, percentage := range []int{25, 50, 75, 90, 100} {
		amount := goal.TargetAmount * float64(percentage) / 100
		milestone := Milestone{Percentage: percentage, Amount: amount}
		switch {
		case amount <= goal.CurrentAmount:
			milestone.Status = "achieved"
			milestone.AchievedDate = goal.CreatedAt.Format(time.RFC3339)
		case dailyRate > 0:
			daysNeeded := (amount - goal.CurrentAmount) / dailyRate
			milestone.Status = "projected"
			milestone.ProjectedDate = now.AddDate(0, 0, int(daysNeeded)).Format(time.RFC3339)
			milestone.DaysFromNow = int(daysNeeded)
		default:
			milestone.Status = "unknown"
			milestone.Message = "No contribution history"
		}
		result.Milestones = append(result.Milestones, milestone)
	}

	return result, nil
}

type ContributionRecommendation struct {
	Frequency        string  `json:"frequency"`
	Amount           float64 `json:"amount"`
	Description      string  `json:"description"`
	Affordability    string  `json:"affordability,omitempty"`
	IncomePercentage float64 `json:"income_percentage,omitempty"`
}

type ContributionRecommendations struct {
	GoalID                  int64                        `json:"goal_id"`
	GoalName                string                       `json:"goal_name,omitempty"`
	RemainingAmount         float64                      `json:"remaining_amount,omitempty"`
	DaysRemaining           int                          `json:"days_remaining,omitempty"`
	Recommendations         []ContributionRecommendation `json:"recommendations,omitempty"`
	PreferredRecommendation *ContributionRecommendation  `json:"preferred_recommendation,omitempty"`
	Message                 string                       `json:"message,omitempty"`
}

// GetContributionRecommendations computes the contribution amounts needed at
// daily, weekly and monthly cadence, with an affordability check against the
// trailing 90 days of income.
func (s *GoalService) GetContributionRecommendations(userID, goalID int64) (*ContributionRecommendations, error) {
	goal, err := s.goalRepo.GetGoal(userID, goalID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	daysRemaining := int(goal.TargetDate.Sub(now).Hours() / 24)
	if daysRemaining <= 0 {
		return &ContributionRecommendations{
			GoalID:  goalID,
			Message: "Goal deadline has passed",
		}, nil
	}

	remaining := goal.TargetAmount - goal.CurrentAmount
	daily := remaining / float64(daysRemaining)
	weekly := remaining / (float64(daysRemaining) / 7)
	monthly := remaining / (float64(daysRemaining) / 30)

	recommendations := []ContributionRecommendation{
		{Frequency: "daily", Amount: daily, Description: fmt.Sprintf("Contribute $%.2f every day", daily)},
		{Frequency: "weekly", Amount: weekly, Description: fmt.Sprintf("Contribute $%.2f every week", weekly)},
		{Frequency: "monthly", Amount: monthly, Description: fmt.Sprintf("Contribute $%.2f every month", monthly)},
	}

	avgMonthlyIncome, err := s.averageMonthlyIncome(userID, now)
	if err != nil {
		return nil, err
	}
	for i := range recommendations {
		rec := &recommendations[i]
		if rec.Frequency == "monthly" && avgMonthlyIncome > 0 {
			percent := rec.Amount / avgMonthlyIncome * 100
			rec.IncomePercentage = percent
			switch {
			case percent < 10:
				rec.Affordability = "easy"
			case percent < 20:
				rec.Affordability = "moderate"
			default:
				rec.Affordability = "challenging"
			}
		}
	}

	preferred := recommendations[2]
	return &ContributionRecommendations{
		GoalID:                  goalID,
		GoalName:                goal.Name,
		RemainingAmount:         remaining,
		DaysRemaining:           daysRemaining,
		Recommendations:         recommendations,
		PreferredRecommendation: &preferred,
	}, nil
}

func (s *GoalService) averageMonthlyIncome(userID int64, now time.Time) (float64, error) {
	start := now.AddDate(0, 0, -90)
	income, err := s.transactionRepo.GetTransactions(userID, domain.TransactionFilter{Start: start, Kind: "income"})
	if err != nil {
		return 0, err
	}
	if len(income) == 0 {
		return 0, nil
	}
	byMonth := map[string]float64{}
	for _, t := range income {
		byMonth[stats.BucketKey(t.Date, stats.Monthly)] += t.Amount
	}
	monthlyTotals := []float64{}
	for _, total := range byMonth {
		monthlyTotals = append(monthlyTotals, total)
	}
	return stats.Summarize(monthlyTotals).Mean, nil
}
