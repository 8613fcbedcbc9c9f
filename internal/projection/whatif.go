package projection

import (
	"github.com/shopspring/decimal"

	"github.com/cesarcasstella/fintrack-pro/internal/models"
)

// What-if change types
const (
	ChangeAddIncome  = "add_income"
	ChangeAddExpense = "add_expense"
)

// ApplyExact re-simulates the projection with the hypothetical one-off
// changes applied to the start balance. This is the recommended strategy:
// every point and summary field is recomputed from day zero, so the result
// is as precise as the base projection. Recurring hypotheticals are handled
// by appending synthetic rules to in.Rules before calling.
func ApplyExact(in Input, changes []Change) *Result {
	adjusted := in
	adjusted.StartBalance = in.StartBalance.Add(netChangeOf(changes))
	return Generate(adjusted)
}

// ApplyLinear distributes the net change across the base projection's
// points proportionally by index (balance[i] += net*i/N). It is a cheap
// visual approximation kept for the simulator's quick preview; it does not
// re-simulate and its per-point balances are not exact. Prefer ApplyExact.
func ApplyLinear(base *Result, changes []Change) *Result {
	var additionalIncome, additionalExpenses decimal.Decimal
	for _, change := range changes {
		switch change.Type {
		case ChangeAddIncome:
			additionalIncome = additionalIncome.Add(change.Amount)
		case ChangeAddExpense:
			additionalExpenses = additionalExpenses.Add(change.Amount)
		}
	}
	net := additionalIncome.Sub(additionalExpenses)

	n := decimal.NewFromInt(int64(len(base.Points)))
	points := make([]Point, len(base.Points))
	for i, p := range base.Points {
		adjusted := p
		if n.IsPositive() {
			fraction := decimal.NewFromInt(int64(i)).Div(n)
			adjusted.Balance = p.Balance.Add(net.Mul(fraction))
		}
		points[i] = adjusted
	}

	summary := base.Summary
	summary.TotalIncome = summary.TotalIncome.Add(additionalIncome)
	summary.TotalExpenses = summary.TotalExpenses.Add(additionalExpenses)
	summary.NetChange = summary.NetChange.Add(net)
	summary.EndBalance = summary.EndBalance.Add(net)

	return &Result{Points: points, Summary: summary}
}

func netChangeOf(changes []Change) decimal.Decimal {
	net := decimal.Zero
	for _, change := range changes {
		switch change.Type {
		case ChangeAddIncome:
			net = net.Add(change.Amount)
		case ChangeAddExpense:
			net = net.Sub(change.Amount)
		}
	}
	return net
}

// SyntheticRule converts a recurring hypothetical into a rule the engine
// can expand, for callers that want exact what-if with recurring changes.
func SyntheticRule(changeType, description, frequency string, amount decimal.Decimal, in Input) models.RecurringRule {
	ruleType := models.TypeExpense
	if changeType == ChangeAddIncome {
		ruleType = models.TypeIncome
	}
	return models.RecurringRule{
		Type:           ruleType,
		Amount:         amount,
		Description:    description,
		Frequency:      frequency,
		IntervalCount:  1,
		NextOccurrence: startOfDay(in.Now),
		IsActive:       true,
	}
}
