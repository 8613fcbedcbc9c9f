package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recurrence frequencies
const (
	FreqDaily    = "daily"
	FreqWeekly   = "weekly"
	FreqBiweekly = "biweekly"
	FreqMonthly  = "monthly"
	FreqYearly   = "yearly"
)

// RecurringRule represents a repeating income or expense template.
// NextOccurrence is the anchor the expander walks from; inactive rules
// are never expanded.
type RecurringRule struct {
	ID             int64           `json:"id"`
	UserID         int64           `json:"user_id"`
	AccountID      int64           `json:"account_id"`
	Type           string          `json:"type"` // income or expense
	Amount         decimal.Decimal `json:"amount"`
	Description    string          `json:"description"`
	Frequency      string          `json:"frequency"`
	IntervalCount  int             `json:"interval_count"`
	NextOccurrence time.Time       `json:"next_occurrence"`
	LastGenerated  *time.Time      `json:"last_generated,omitempty"`
	IsActive       bool            `json:"is_active"`
	CreatedAt      string          `json:"created_at"`
	UpdatedAt      string          `json:"updated_at"`
}
