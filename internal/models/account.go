package models

import "github.com/shopspring/decimal"

// Account types
const (
	AccountChecking   = "checking"
	AccountSavings    = "savings"
	AccountCredit     = "credit"
	AccountCash       = "cash"
	AccountInvestment = "investment"
)

type Account struct {
	ID             int64           `json:"id"`
	UserID         int64           `json:"user_id"`
	Name           string          `json:"name"`
	Type           string          `json:"type"`
	Balance        decimal.Decimal `json:"balance"`
	Currency       string          `json:"currency"`
	IsActive       bool            `json:"is_active"`
	IncludeInTotal bool            `json:"include_in_total"`
	CreatedAt      string          `json:"created_at"`
	UpdatedAt      string          `json:"updated_at"`
}
