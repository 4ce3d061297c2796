package infrastructure

import (
	"database/sql"
	"errors"

	"github.com/sebuszqo/FinanceAnalytics/internal/analytics/domain"
	analyticsErrors "github.com/sebuszqo/FinanceAnalytics/internal/analytics/errors"
)

type GoalRepository struct {
	db *sql.DB
}

func NewGoalRepository(db *sql.DB) *GoalRepository {
	return &GoalRepository{db: db}
}

func (r *GoalRepository) GetGoal(userID, goalID int64) (*domain.Goal, error) {
	var g domain.Goal
	err := r.db.QueryRow(
		`SELECT id, user_id, name, target_amount, current_amount, created_at, target_date
         FROM goals
         WHERE user_id = $1 AND id = $2`, userID, goalID).
		Scan(&g.ID, &g.UserID, &g.Name, &g.TargetAmount, &g.CurrentAmount, &g.CreatedAt, &g.TargetDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, analyticsErrors.ErrGoalNotFound
		}
		return nil, err
	}
	return &g, nil
}

func (r *GoalRepository) GetGoals(userID int64) ([]domain.Goal, error) {
	rows, err := r.db.Query(
		`SELECT id, user_id, name, target_amount, current_amount, created_at, target_date
         FROM goals
         WHERE user_id = $1
         ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	goals := []domain.Goal{}
	for rows.Next() {
		var g domain.Goal
		if err := rows.Scan(&g.ID, &g.UserID, &g.Name, &g.TargetAmount, &g.CurrentAmount, &g.CreatedAt, &g.TargetDate); err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}
