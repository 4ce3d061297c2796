package infrastructure

import (
	"database/sql"
	"strings"
	"time"

	"github.com/sebuszqo/FinanceAnalytics/internal/analytics/domain"
)

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) GetTransactions(userID int64, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	query := `SELECT id, user_id, amount, category, type, date, account_id, description, tags
        FROM transactions
        WHERE user_id = $1
          AND ($2::timestamptz IS NULL OR date >= $2)
          AND ($3::timestamptz IS NULL OR date <= $3)
          AND ($4::text IS NULL OR type = $4)
          AND ($5::text IS NULL OR category = $5)
        ORDER BY date`

	rows, err := r.db.Query(query,
		userID,
		nullTime(filter.Start),
		nullTime(filter.End),
		nullString(filter.Kind),
		nullString(filter.Category),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := []domain.Transaction{}
	for rows.Next() {
		var t domain.Transaction
		var tags sql.NullString
		if err := rows.Scan(&t.ID, &t.UserID, &t.Amount, &t.Category, &t.Kind,
			&t.Date, &t.AccountID, &t.Description, &tags); err != nil {
			return nil, err
		}
		if tags.Valid && tags.String != "" {
			t.Tags = strings.Split(tags.String, ",")
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
