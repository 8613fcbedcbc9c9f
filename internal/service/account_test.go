package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func testService() *Service {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return &Service{log: log}
}

func TestCreateAccountValidation(t *testing.T) {
	svc := testService()

	_, err := svc.CreateAccount(1, "", "checking", "COP", decimal.Zero, true)
	assert.ErrorContains(t, err, "name is required")

	_, err = svc.CreateAccount(1, "Nómina", "retirement", "COP", decimal.Zero, true)
	assert.ErrorContains(t, err, "unknown account type")
}

func TestCreateRecurringRuleValidation(t *testing.T) {
	svc := testService()
	anchor := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		ruleType  string
		amount    decimal.Decimal
		frequency string
		next      time.Time
		wantErr   string
	}{
		{"bad type", "transfer", decimal.NewFromInt(100), "monthly", anchor, "income or expense"},
		{"zero amount", "income", decimal.Zero, "monthly", anchor, "must be positive"},
		{"negative amount", "expense", decimal.NewFromInt(-50), "weekly", anchor, "must be positive"},
		{"bad frequency", "income", decimal.NewFromInt(100), "quarterly", anchor, "unknown frequency"},
		{"zero anchor", "income", decimal.NewFromInt(100), "monthly", time.Time{}, "next occurrence is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateRecurringRule(1, 1, tt.ruleType, tt.amount, "Arriendo", tt.frequency, 1, tt.next)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestListTransactionsRejectsInvertedPeriod(t *testing.T) {
	svc := testService()
	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.ListTransactions(1, from, from)
	assert.ErrorContains(t, err, "from must be before to")

	_, err = svc.ListTransactions(1, from, from.AddDate(0, -1, 0))
	assert.ErrorContains(t, err, "from must be before to")
}
