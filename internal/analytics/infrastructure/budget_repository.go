package infrastructure

import (
	"database/sql"

	"github.com/sebuszqo/FinanceAnalytics/internal/analytics/domain"
)

type BudgetRepository struct {
	db *sql.DB
}

func NewBudgetRepository(db *sql.DB) *BudgetRepository {
	return &BudgetRepository{db: db}
}

func (r *BudgetRepository) GetBudgets(userID int64) ([]domain.Budget, error) {
	rows, err := r.db.Query(
		`SELECT id, user_id, name, amount, spent, category, period, start_date, end_date
         FROM budgets
         WHERE user_id = $1
         ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	budgets := []domain.Budget{}
	for rows.Next() {
		var b domain.Budget
		if err := rows.Scan(&b.ID, &b.UserID, &b.Name, &b.Amount, &b.Spent,
			&b.Category, &b.Period, &b.StartDate, &b.EndDate); err != nil {
			return nil, err
		}
		budgets = append(budgets, b)
	}
	return budgets, rows.Err()
}
