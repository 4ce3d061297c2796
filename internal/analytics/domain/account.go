package domain

type Account struct {
	ID        int64
	UserID    int64
	Name      string
	Type      string // "checking", "savings", "credit", "investment", ...
	Balance   float64
	Currency  string
	IsDefault bool
}

type AccountRepository interface {
	GetAccounts(userID int64) ([]Account, error)
}
