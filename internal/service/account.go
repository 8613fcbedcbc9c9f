package service

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cesarcasstella/fintrack-pro/internal/models"
)

var accountTypes = map[string]bool{
	models.AccountChecking:   true,
	models.AccountSavings:    true,
	models.AccountCredit:     true,
	models.AccountCash:       true,
	models.AccountInvestment: true,
}

var frequencies = map[string]bool{
	models.FreqDaily:    true,
	models.FreqWeekly:   true,
	models.FreqBiweekly: true,
	models.FreqMonthly:  true,
	models.FreqYearly:   true,
}

// CreateAccount creates an account for the user with an opening balance
func (s *Service) CreateAccount(userID int64, name, accountType, currency string, balance decimal.Decimal, includeInTotal bool) (*models.Account, error) {
	if name == "" {
		return nil, fmt.Errorf("account name is required")
	}
	if !accountTypes[accountType] {
		return nil, fmt.Errorf("unknown account type %q", accountType)
	}
	if currency == "" {
		currency = "COP"
	}

	account := &models.Account{
		UserID:         userID,
		Name:           name,
		Type:           accountType,
		Balance:        balance,
		Currency:       currency,
		IsActive:       true,
		IncludeInTotal: includeInTotal,
	}
	if err := s.repo.CreateAccount(account); err != nil {
		return nil, err
	}

	s.log.Infof("Account created for user %d: %s (%s)", userID, account.Name, account.Type)
	return account, nil
}

// ListAccounts returns the user's active accounts
func (s *Service) ListAccounts(userID int64) ([]models.Account, error) {
	return s.repo.ListActiveAccounts(userID)
}

// CreateRecurringRule creates a recurring income/expense template. Unknown
// frequencies are rejected here; the engine's monthly fallback only covers
// rows that predate this validation.
func (s *Service) CreateRecurringRule(userID, accountID int64, ruleType string, amount decimal.Decimal, description, frequency string, intervalCount int, nextOccurrence time.Time) (*models.RecurringRule, error) {
	if ruleType != models.TypeIncome && ruleType != models.TypeExpense {
		return nil, fmt.Errorf("rule type must be income or expense")
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("amount must be positive")
	}
	if !frequencies[frequency] {
		return nil, fmt.Errorf("unknown frequency %q", frequency)
	}
	if nextOccurrence.IsZero() {
		return nil, fmt.Errorf("next occurrence is required")
	}
	if intervalCount < 1 {
		intervalCount = 1
	}

	rule := &models.RecurringRule{
		UserID:         userID,
		AccountID:      accountID,
		Type:           ruleType,
		Amount:         amount,
		Description:    description,
		Frequency:      frequency,
		IntervalCount:  intervalCount,
		NextOccurrence: nextOccurrence,
		IsActive:       true,
	}
	if err := s.repo.CreateRecurringRule(rule); err != nil {
		return nil, err
	}

	s.log.Infof("Recurring rule created for user %d: %s %s %s", userID, rule.Type, rule.Amount, rule.Frequency)
	return rule, nil
}

// ListTransactions returns the user's transactions inside [from, to)
func (s *Service) ListTransactions(userID int64, from, to time.Time) ([]models.Transaction, error) {
	if !from.Before(to) {
		return nil, fmt.Errorf("from must be before to")
	}
	return s.repo.ListTransactionsByPeriod(userID, from, to)
}
