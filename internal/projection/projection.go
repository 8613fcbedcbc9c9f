// Package projection implements the balance forecast core: recurrence
// expansion, the day-by-day projection engine and the what-if adjuster.
// Everything here is pure computation over its inputs; persistence and
// transport live elsewhere.
package projection

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cesarcasstella/fintrack-pro/internal/models"
)

// Input carries everything the engine needs. Now is the single clock
// anchor; callers pass time.Now() so the engine stays deterministic.
type Input struct {
	StartBalance decimal.Decimal
	Rules        []models.RecurringRule
	HorizonDays  int
	Now          time.Time
}

// ProjectedTransaction is one occurrence contributing to a day.
type ProjectedTransaction struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	IsRecurring bool            `json:"isRecurring"`
}

// Point is the projected state at the end of one calendar day.
type Point struct {
	Date         time.Time              `json:"date"`
	Balance      decimal.Decimal        `json:"balance"`
	Income       decimal.Decimal        `json:"income"`
	Expenses     decimal.Decimal        `json:"expenses"`
	Transactions []ProjectedTransaction `json:"transactions"`
}

// Summary holds the headline stats over the whole horizon.
type Summary struct {
	StartBalance      decimal.Decimal `json:"startBalance"`
	EndBalance        decimal.Decimal `json:"endBalance"`
	TotalIncome       decimal.Decimal `json:"totalIncome"`
	TotalExpenses     decimal.Decimal `json:"totalExpenses"`
	NetChange         decimal.Decimal `json:"netChange"`
	LowestBalance     decimal.Decimal `json:"lowestBalance"`
	LowestBalanceDate time.Time       `json:"lowestBalanceDate"`
}

// Result is a full forecast: one point per day plus the summary.
type Result struct {
	Points  []Point `json:"points"`
	Summary Summary `json:"summary"`
}

// Change is a hypothetical one-off adjustment for what-if comparisons.
type Change struct {
	Type   string          `json:"type"` // ChangeAddIncome or ChangeAddExpense
	Amount decimal.Decimal `json:"amount"`
}
