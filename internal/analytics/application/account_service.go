package application

import (
	"time"

	"github.com/sebuszqo/FinanceAnalytics/internal/analytics/domain"
	"github.com/sebuszqo/FinanceAnalytics/internal/analytics/stats"
)

type AccountService struct {
	accountRepo     domain.AccountRepository
	transactionRepo domain.TransactionRepository
	now             func() time.Time
}

func NewAccountService(accountRepo domain.AccountRepository, transactionRepo domain.TransactionRepository) *AccountService {
	return &AccountService{accountRepo: accountRepo, transactionRepo: transactionRepo, now: time.Now}
}

type AccountTypeSummary struct {
	Type           string  `json:"type"`
	Count          int     `json:"count"`
	TotalBalance   float64 `json:"total_balance"`
	AverageBalance float64 `json:"average_balance"`
}

type CurrencySummary struct {
	Currency     string  `json:"currency"`
	Count        int     `json:"count"`
	TotalBalance float64 `json:"total_balance"`
}

type AccountDetail struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	Type             string  `json:"type"`
	Balance          float64 `json:"balance"`
	Currency         string  `json:"currency"`
	IsDefault        bool    `json:"is_default"`
	TransactionCount int     `json:"transaction_count"`
}

type AccountAnalytics struct {
	TotalAccounts     int                  `json:"total_accounts"`
	TotalBalance      float64              `json:"total_balance"`
	AccountTypes      []AccountTypeSummary `json:"account_types"`
	Currencies        []CurrencySummary    `json:"currencies"`
	AccountsByBalance []AccountDetail      `json:"accounts_by_balance"`
}

func (s *AccountService) GetAccountAnalytics(userID int64) (*AccountAnalytics, error) {
	accounts, err := s.accountRepo.GetAccounts(userID)
	if err != nil {
		return nil, err
	}

	result := &AccountAnalytics{
		AccountTypes:      []AccountTypeSummary{},
		Currencies:        []CurrencySummary{},
		AccountsByBalance: []AccountDetail{},
	}
	if len(accounts) == 0 {
		return result, nil
	}

	transactions, err := s.transactionRepo.GetTransactions(userID, domain.TransactionFilter{})
	if err != nil {
		return nil, err
	}
	countByAccount := map[int64]int{}
	for _, t := range transactions {
		if t.AccountID != nil {
			countByAccount[*t.AccountID]++
		}
	}

	typeSummaries := map[string]*AccountTypeSummary{}
	currencySummaries := map[string]*CurrencySummary{}
	typeBalances := map[string]float64{}

	for _, a := range accounts {
		result.TotalBalance += a.Balance

		ts, ok := typeSummaries[a.Type]
		if !ok {
			ts = &AccountTypeSummary{Type: a.Type}
			typeSummaries[a.Type] = ts
		}
		ts.Count++
		ts.TotalBalance += a.Balance
		typeBalances[a.Type] = ts.TotalBalance

		cs, ok := currencySummaries[a.Currency]
		if !ok {
			cs = &CurrencySummary{Currency: a.Currency}
			currencySummaries[a.Currency] = cs
		}
		cs.Count++
		cs.TotalBalance += a.Balance
	}
	result.TotalAccounts = len(accounts)

	for _, entry := range stats.TopNByValue(typeBalances, 0) {
		ts := typeSummaries[entry.Key]
		ts.AverageBalance = ts.TotalBalance / float64(ts.Count)
		result.AccountTypes = append(result.AccountTypes, *ts)
	}
	for _, cs := range currencySummaries {
		result.Currencies = append(result.Currencies, *cs)
	}

	balanceByAccount := map[string]float64{}
	detailByName := map[string]AccountDetail{}
	for _, a := range accounts {
		detail := AccountDetail{
			ID:               a.ID,
			Name:             a.Name,
			Type:             a.Type,
			Balance:          a.Balance,
			Currency:         a.Currency,
			IsDefault:        a.IsDefault,
			TransactionCount: countByAccount[a.ID],
		}
		balanceByAccount[a.Name] = a.Balance
		detailByName[a.Name] = detail
	}
	for _, entry := range stats.TopNByValue(balanceByAccount, 0) {
		result.AccountsByBalance = append(result.AccountsByBalance, detailByName[entry.Key])
	}

	return result, nil
}

type BalanceHistoryPoint struct {
	Period    string  `json:"period"`
	Income    float64 `json:"income"`
	Expense   float64 `json:"expense"`
	NetChange float64 `json:"net_change"`
}

type AccountHistory struct {
	ID             int64                 `json:"id"`
	Name           string                `json:"name"`
	Type           string                `json:"type"`
	CurrentBalance float64               `json:"current_balance"`
	Currency       string                `json:"currency"`
	History        []BalanceHistoryPoint `json:"history"`
}

type BalanceHistory struct {
	Period   string           `json:"period"`
	GroupBy  string           `json:"group_by"`
	Accounts []AccountHistory `json:"accounts"`
}

// GetBalanceHistory returns per-account income/expense flow over the period.
// When accountID is non-zero, only that account is included.
func (s *AccountService) GetBalanceHistory(userID, accountID int64, period string) (*BalanceHistory, error) {
	start, end, granularity := periodWindow(s.now(), period)

	accounts, err := s.accountRepo.GetAccounts(userID)
	if err != nil {
		return nil, err
	}

	result := &BalanceHistory{Period: period, GroupBy: string(granularity), Accounts: []AccountHistory{}}
	if len(accounts) == 0 {
		return result, nil
	}

	transactions, err := s.transactionRepo.GetTransactions(userID, domain.TransactionFilter{Start: start, End: end})
	if err != nil {
		return nil, err
	}

	historyByAccount := map[int64]map[string]*BalanceHistoryPoint{}
	for _, t := range transactions {
		if t.AccountID == nil {
			continue
		}
		periods, ok := historyByAccount[*t.AccountID]
		if !ok {
			periods = map[string]*BalanceHistoryPoint{}
			historyByAccount[*t.AccountID] = periods
		}
		key := stats.BucketKey(t.Date, granularity)
		point, ok := periods[key]
		if !ok {
			point = &BalanceHistoryPoint{Period: key}
			periods[key] = point
		}
		if t.IsIncome() {
			point.Income += t.Amount
		} else if t.IsExpense() {
			point.Expense += t.Amount
		}
	}

	for _, a := range accounts {
		if accountID != 0 && a.ID != accountID {
			continue
		}
		history := []BalanceHistoryPoint{}
		if periods, ok := historyByAccount[a.ID]; ok {
			for _, key := range stats.BucketRange(start, end, granularity) {
				point, exists := periods[key]
				if !exists {
					continue
				}
				point.NetChange = point.Income - point.Expense
				history = append(history, *point)
			}
		}
		result.Accounts = append(result.Accounts, AccountHistory{
			ID:             a.ID,
			Name:           a.Name,
			Type:           a.Type,
			CurrentBalance: a.Balance,
			Currency:       a.Currency,
			History:        history,
		})
	}

	return result, nil
}
