package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cesarcasstella/fintrack-pro/internal/models"
)

// PeriodStats holds income/expense totals for one calendar period
type PeriodStats struct {
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Net      decimal.Decimal `json:"balance"`
}

// Dashboard aggregates the headline numbers the app's home screen shows
type Dashboard struct {
	TotalBalance     decimal.Decimal  `json:"total_balance"`
	CurrentMonth     PeriodStats      `json:"current_month"`
	LastMonth        PeriodStats      `json:"last_month"`
	IncomeChangePct  float64          `json:"income_change_pct"`
	ExpenseChangePct float64          `json:"expense_change_pct"`
	Accounts         []models.Account `json:"accounts"`
}

// MonthSummary returns the current calendar month's totals
func (s *Service) MonthSummary(userID int64) (PeriodStats, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return s.periodStats(userID, start, start.AddDate(0, 1, 0))
}

// GetDashboard assembles account totals plus a current-vs-previous month
// comparison with trend percentages.
func (s *Service) GetDashboard(userID int64) (*Dashboard, error) {
	accounts, err := s.repo.ListActiveAccounts(userID)
	if err != nil {
		return nil, err
	}

	totalBalance, err := s.StartBalance(userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	startOfLastMonth := startOfMonth.AddDate(0, -1, 0)

	current, err := s.periodStats(userID, startOfMonth, startOfMonth.AddDate(0, 1, 0))
	if err != nil {
		return nil, err
	}
	previous, err := s.periodStats(userID, startOfLastMonth, startOfMonth)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		TotalBalance:     totalBalance,
		CurrentMonth:     current,
		LastMonth:        previous,
		IncomeChangePct:  percentChange(previous.Income, current.Income),
		ExpenseChangePct: percentChange(previous.Expenses, current.Expenses),
		Accounts:         accounts,
	}, nil
}

func (s *Service) periodStats(userID int64, start, end time.Time) (PeriodStats, error) {
	income, expenses, err := s.repo.SumTransactionsByPeriod(userID, start, end)
	if err != nil {
		return PeriodStats{}, err
	}
	return PeriodStats{
		Income:   income,
		Expenses: expenses,
		Net:      income.Sub(expenses),
	}, nil
}

func percentChange(previous, current decimal.Decimal) float64 {
	if !previous.IsPositive() {
		return 0
	}
	pct, _ := current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100)).Float64()
	return pct
}
