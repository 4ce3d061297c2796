package domain

import (
	"time"
)

type Goal struct {
	ID            int64
	UserID        int64
	Name          string
	TargetAmount  float64
	CurrentAmount float64
	CreatedAt     time.Time
	TargetDate    time.Time
}

func (g *Goal) RemainingAmount() float64 {
	remaining := g.TargetAmount - g.CurrentAmount
	if remaining < 0 {
		return 0
	}
	return remaining
}

// AchievementRate is how much of the target has been reached, as a percentage.
func (g *Goal) AchievementRate() float64 {
	if g.TargetAmount <= 0 {
		return 0
	}
	return g.CurrentAmount / g.TargetAmount * 100
}

func (g *Goal) IsAchieved() bool {
	return g.TargetAmount > 0 && g.CurrentAmount >= g.TargetAmount
}

type GoalRepository interface {
	GetGoal(userID, goalID int64) (*Goal, error)
	GetGoals(userID int64) ([]Goal, error)
}
