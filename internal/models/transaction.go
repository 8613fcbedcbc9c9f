package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction type values
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// Transaction sources
const (
	SourceManual    = "manual"
	SourceWhatsApp  = "whatsapp"
	SourceRecurring = "recurring"
)

// Transaction represents a financial transaction
type Transaction struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	AccountID   int64           `json:"account_id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Category    string          `json:"category,omitempty"`
	Date        time.Time       `json:"date"`
	Source      string          `json:"source"`
	CreatedAt   string          `json:"created_at"`
	UpdatedAt   string          `json:"updated_at"`
}
