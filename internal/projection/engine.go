package projection

import (
	"github.com/shopspring/decimal"

	"github.com/cesarcasstella/fintrack-pro/internal/models"
)

const dayKeyLayout = "2006-01-02"

// Generate builds a day-by-day forecast from the start balance and the
// recurring rules over in.HorizonDays days. The walk runs from the day of
// in.Now through the final day inclusive, so the result always holds
// HorizonDays+1 points. Identical inputs produce identical output.
//
// Rule amounts are assumed validated upstream; a negative amount is
// clamped to zero here instead of corrupting the running balance.
func Generate(in Input) *Result {
	windowStart := startOfDay(in.Now)
	windowEnd := windowStart.AddDate(0, 0, in.HorizonDays)

	// Bucket every occurrence of every active rule by calendar day.
	// Expansion is exclusive of windowEnd; the point walk below includes it.
	buckets := make(map[string][]ProjectedTransaction)
	for _, rule := range in.Rules {
		amount := rule.Amount
		if amount.IsNegative() {
			amount = decimal.Zero
		}
		for _, date := range Expand(rule, windowStart, windowEnd) {
			key := date.Format(dayKeyLayout)
			buckets[key] = append(buckets[key], ProjectedTransaction{
				Description: rule.Description,
				Amount:      amount,
				Type:        rule.Type,
				IsRecurring: true,
			})
		}
	}

	points := make([]Point, 0, in.HorizonDays+1)
	balance := in.StartBalance
	totalIncome := decimal.Zero
	totalExpenses := decimal.Zero
	lowestBalance := in.StartBalance
	lowestBalanceDate := windowStart

	for day := windowStart; !day.After(windowEnd); day = day.AddDate(0, 0, 1) {
		dayTxs := buckets[day.Format(dayKeyLayout)]

		dayIncome := decimal.Zero
		dayExpenses := decimal.Zero
		for _, tx := range dayTxs {
			if tx.Type == models.TypeIncome {
				dayIncome = dayIncome.Add(tx.Amount)
			} else {
				dayExpenses = dayExpenses.Add(tx.Amount)
			}
		}
		totalIncome = totalIncome.Add(dayIncome)
		totalExpenses = totalExpenses.Add(dayExpenses)

		balance = balance.Add(dayIncome).Sub(dayExpenses)

		// Strict comparison: the earliest day to reach a new minimum wins.
		if balance.LessThan(lowestBalance) {
			lowestBalance = balance
			lowestBalanceDate = day
		}

		points = append(points, Point{
			Date:         day,
			Balance:      balance,
			Income:       dayIncome,
			Expenses:     dayExpenses,
			Transactions: dayTxs,
		})
	}

	return &Result{
		Points: points,
		Summary: Summary{
			StartBalance:      in.StartBalance,
			EndBalance:        balance,
			TotalIncome:       totalIncome,
			TotalExpenses:     totalExpenses,
			NetChange:         totalIncome.Sub(totalExpenses),
			LowestBalance:     lowestBalance,
			LowestBalanceDate: lowestBalanceDate,
		},
	}
}
