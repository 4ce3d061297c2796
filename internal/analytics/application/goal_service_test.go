package application

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sebuszqo/FinanceAnalytics/internal/analytics/domain"
	analyticsErrors "github.com/sebuszqo/FinanceAnalytics/internal/analytics/errors"
	"github.com/sebuszqo/FinanceAnalytics/internal/analytics/infrastructure"
)

func goalFixture(current, target float64, createdDaysAgo, daysToDeadline int) domain.Goal {
	return domain.Goal{
		ID:            7,
		UserID:        1,
		Name:          "Emergency fund",
		TargetAmount:  target,
		CurrentAmount: current,
		CreatedAt:     testNow.AddDate(0, 0, -createdDaysAgo),
		TargetDate:    testNow.AddDate(0, 0, daysToDeadline),
	}
}

func newGoalService(goal domain.Goal, transactions []domain.Transaction) *GoalService {
	service := NewGoalService(
		&infrastructure.MockGoalRepository{Goals: []domain.Goal{goal}},
		&infrastructure.MockTransactionRepository{Transactions: transactions},
	)
	service.now = fixedNow
	return service
}

func TestGetAchievementProbability_OnTrack(t *testing.T) {
	// Saved 5000 in 100 days (50/day); needs 5000 in 100 days (50/day).
	service := newGoalService(goalFixture(5000, 10000, 100, 100), nil)

	result, err := service.GetAchievementProbability(1, 7)
	assert.NoError(t, err)
	assert.Equal(t, "on_track", result.Status)
	assert.InDelta(t, 70.0, result.Probability, 1e-9)
	assert.InDelta(t, 50.0, result.HistoricalDailyRate, 1e-9)
	assert.InDelta(t, 50.0, result.RequiredDailyRate, 1e-9)
	assert.Equal(t, 100, result.DaysRemaining)
	assert.Equal(t, "Good chance of achieving goal with current pace", result.Interpretation)
}

func TestGetAchievementProbability_CappedAt95(t *testing.T) {
	// Historical rate is far above the required rate; probability caps at 95.
	service := newGoalService(goalFixture(9000, 10000, 100, 200), nil)

	result, err := service.GetAchievementProbability(1, 7)
	assert.NoError(t, err)
	assert.InDelta(t, 95.0, result.Probability, 1e-9)
	assert.Equal(t, "on_track", result.Status)
}

func TestGetAchievementProbability_ShortDeadlinePenalty(t *testing.T) {
	// Same pace as on-track but under 30 days left: 70 * 0.8 = 56.
	service := newGoalService(goalFixture(5000, 6000, 100, 20), nil)

	result, err := service.GetAchievementProbability(1, 7)
	assert.NoError(t, err)
	assert.InDelta(t, 56.0, result.Probability, 1e-6)
	assert.Equal(t, "at_risk", result.Status)
}

func TestGetAchievementProbability_BehindFloorsAt10(t *testing.T) {
	service := newGoalService(goalFixture(10, 100000, 400, 30), nil)

	result, err := service.GetAchievementProbability(1, 7)
	assert.NoError(t, err)
	assert.InDelta(t, 10.0, result.Probability, 1e-9)
	assert.Equal(t, "behind", result.Status)
}

func TestGetAchievementProbability_Overdue(t *testing.T) {
	service := newGoalService(goalFixture(4000, 10000, 400, -5), nil)

	result, err := service.GetAchievementProbability(1, 7)
	assert.NoError(t, err)
	assert.Equal(t, "overdue", result.Status)
	assert.Equal(t, 0.0, result.Probability)
	assert.InDelta(t, 40.0, result.AchievementRate, 1e-9)
	assert.Equal(t, "Goal deadline has passed", result.Message)
}

func TestGetAchievementProbability_OverdueButAchieved(t *testing.T) {
	service := newGoalService(goalFixture(12000, 10000, 400, -5), nil)

	result, err := service.GetAchievementProbability(1, 7)
	assert.NoError(t, err)
	assert.Equal(t, 100.0, result.Probability)
	assert.Equal(t, "Goal achieved!", result.Message)
}

func TestGetAchievementProbability_UnknownGoal(t *testing.T) {
	service := newGoalService(goalFixture(100, 1000, 10, 10), nil)

	_, err := service.GetAchievementProbability(1, 999)
	assert.ErrorIs(t, err, analyticsErrors.ErrGoalNotFound)
}

func TestGetTimelineProjections(t *testing.T) {
	// 50/day for 100 days; 5000 remaining projects 100 more days, deadline in 200.
	service := newGoalService(goalFixture(5000, 10000, 100, 200), nil)

	result, err := service.GetTimelineProjections(1, 7)
	assert.NoError(t, err)
	assert.InDelta(t, 50.0, result.DailyContributionRate, 1e-9)
	assert.True(t, result.OnSchedule)
	assert.NotNil(t, result.DaysAheadBehind)
	assert.Equal(t, 100, *result.DaysAheadBehind)
	assert.Len(t, result.Milestones, 5)

	// 25% and 50% are already funded.
	assert.Equal(t, "achieved", result.Milestones[0].Status)
	assert.Equal(t, "achieved", result.Milestones[1].Status)

	threeQuarters := result.Milestones[2]
	assert.Equal(t, "projected", threeQuarters.Status)
	assert.Equal(t, 50, threeQuarters.DaysFromNow)

	full := result.Milestones[4]
	assert.Equal(t, 100, full.DaysFromNow)
}

func TestGetTimelineProjections_NoContributionHistory(t *testing.T) {
	service := newGoalService(goalFixture(0, 10000, 100, 200), nil)

	result, err := service.GetTimelineProjections(1, 7)
	assert.NoError(t, err)
	assert.Empty(t, result.ProjectedCompletionDate)
	assert.False(t, result.OnSchedule)
	for _, milestone := range result.Milestones {
		assert.Equal(t, "unknown", milestone.Status)
		assert.Equal(t, "No contribution history", milestone.Message)
	}
}

func TestGetContributionRecommendations(t *testing.T) {
	// 6000 remaining over 60 days with 4000/month income.
	income := []domain.Transaction{
		tx(1, 4000, "salary", "income", testNow.AddDate(0, 0, -10)),
		tx(2, 4000, "salary", "income", testNow.AddDate(0, 0, -40)),
		tx(3, 4000, "salary", "income", testNow.AddDate(0, 0, -70)),
	}
	service := newGoalService(goalFixture(4000, 10000, 100, 60), income)

	result, err := service.GetContributionRecommendations(1, 7)
	assert.NoError(t, err)
	assert.Len(t, result.Recommendations, 3)
	assert.InDelta(t, 100.0, result.Recommendations[0].Amount, 1e-9)
	assert.InDelta(t, 700.0, result.Recommendations[1].Amount, 1e-9)
	assert.InDelta(t, 3000.0, result.Recommendations[2].Amount, 1e-9)

	monthly := result.Recommendations[2]
	assert.InDelta(t, 75.0, monthly.IncomePercentage, 1e-9)
	assert.Equal(t, "challenging", monthly.Affordability)

	assert.NotNil(t, result.PreferredRecommendation)
	assert.Equal(t, "monthly", result.PreferredRecommendation.Frequency)
}

func TestGetContributionRecommendations_PastDeadline(t *testing.T) {
	service := newGoalService(goalFixture(4000, 10000, 100, -1), nil)

	result, err := service.GetContributionRecommendations(1, 7)
	assert.NoError(t, err)
	assert.Empty(t, result.Recommendations)
	assert.Equal(t, "Goal deadline has passed", result.Message)
}
