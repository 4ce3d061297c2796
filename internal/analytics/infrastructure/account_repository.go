package infrastructure

import (
	"database/sql"

	"github.com/sebuszqo/FinanceAnalytics/internal/analytics/domain"
)

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) GetAccounts(userID int64) ([]domain.Account, error) {
	rows, err := r.db.Query(
		`SELECT id, user_id, name, type, balance, currency, is_default
         FROM accounts
         WHERE user_id = $1
         ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(&a.ID, &a.UserID, &a.Name, &a.Type, &a.Balance, &a.Currency, &a.IsDefault); err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}
