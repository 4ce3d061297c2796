package infrastructure

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/sebuszqo/FinanceAnalytics/internal/analytics/domain"
	analyticsErrors "github.com/sebuszqo/FinanceAnalytics/internal/analytics/errors"
)

const testSchema = `
CREATE TABLE accounts (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL,
    name TEXT NOT NULL,
    type TEXT NOT NULL,
    balance DOUBLE PRECISION NOT NULL DEFAULT 0,
    currency TEXT NOT NULL DEFAULT 'USD',
    is_default BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE TABLE transactions (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL,
    amount DOUBLE PRECISION NOT NULL,
    category TEXT NOT NULL,
    type TEXT NOT NULL,
    date TIMESTAMPTZ NOT NULL,
    account_id BIGINT REFERENCES accounts(id),
    description TEXT NOT NULL DEFAULT '',
    tags TEXT
);

CREATE TABLE budgets (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL,
    name TEXT NOT NULL,
    amount DOUBLE PRECISION NOT NULL,
    spent DOUBLE PRECISION NOT NULL DEFAULT 0,
    category TEXT NOT NULL,
    period TEXT NOT NULL,
    start_date TIMESTAMPTZ NOT NULL,
    end_date TIMESTAMPTZ NOT NULL
);

CREATE TABLE goals (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL,
    name TEXT NOT NULL,
    target_amount DOUBLE PRECISION NOT NULL,
    current_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
    created_at TIMESTAMPTZ NOT NULL,
    target_date TIMESTAMPTZ NOT NULL
);
`

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("analytics_test"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(ctx)
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("pgx", connStr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(testSchema)
	require.NoError(t, err)

	return db
}

func TestRepositories_Postgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}
	db := setupTestDB(t)

	_, err := db.Exec(`INSERT INTO accounts (user_id, name, type, balance, currency, is_default)
        VALUES (1, 'Main', 'checking', 2500, 'USD', TRUE), (2, 'Other', 'savings', 100, 'USD', FALSE)`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO transactions (user_id, amount, category, type, date, description, tags) VALUES
        (1, 1200, 'salary', 'income', '2024-01-05', 'paycheck', NULL),
        (1, 300, 'food', 'expense', '2024-01-10', 'groceries', 'weekly,essentials'),
        (1, 80, 'food', 'expense', '2024-02-02', 'dinner', NULL),
        (2, 999, 'food', 'expense', '2024-01-15', 'other user', NULL)`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO budgets (user_id, name, amount, spent, category, period, start_date, end_date)
        VALUES (1, 'Food budget', 500, 380, 'food', 'monthly', '2024-01-01', '2024-01-31')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO goals (user_id, name, target_amount, current_amount, created_at, target_date)
        VALUES (1, 'Emergency fund', 10000, 2500, '2024-01-01', '2024-12-31')`)
	require.NoError(t, err)

	t.Run("transactions filtered by date, kind and category", func(t *testing.T) {
		repo := NewTransactionRepository(db)

		all, err := repo.GetTransactions(1, domain.TransactionFilter{})
		require.NoError(t, err)
		assert.Len(t, all, 3)
		assert.Equal(t, []string{"weekly", "essentials"}, all[1].Tags)

		january, err := repo.GetTransactions(1, domain.TransactionFilter{
			Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC),
			Kind:  "expense",
		})
		require.NoError(t, err)
		assert.Len(t, january, 1)
		assert.Equal(t, "food", january[0].Category)

		none, err := repo.GetTransactions(1, domain.TransactionFilter{Category: "travel"})
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("accounts scoped to user", func(t *testing.T) {
		repo := NewAccountRepository(db)
		accounts, err := repo.GetAccounts(1)
		require.NoError(t, err)
		assert.Len(t, accounts, 1)
		assert.Equal(t, "Main", accounts[0].Name)
	})

	t.Run("budgets with derived status", func(t *testing.T) {
		repo := NewBudgetRepository(db)
		budgets, err := repo.GetBudgets(1)
		require.NoError(t, err)
		require.Len(t, budgets, 1)
		assert.Equal(t, domain.BudgetStatusOnTrack, budgets[0].Status())
		assert.InDelta(t, 120.0, budgets[0].Remaining(), 1e-9)
	})

	t.Run("goal lookup", func(t *testing.T) {
		repo := NewGoalRepository(db)
		goals, err := repo.GetGoals(1)
		require.NoError(t, err)
		require.Len(t, goals, 1)

		goal, err := repo.GetGoal(1, goals[0].ID)
		require.NoError(t, err)
		assert.Equal(t, "Emergency fund", goal.Name)

		_, err = repo.GetGoal(1, 9999)
		assert.ErrorIs(t, err, analyticsErrors.ErrGoalNotFound)
	})
}
