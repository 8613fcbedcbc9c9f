package intent_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cesarcasstella/fintrack-pro/internal/intent"
)

func TestParseExpenseWithThousandsShorthand(t *testing.T) {
	got := intent.Parse("Almuerzo 25k")

	assert.Equal(t, intent.AddExpense, got.Intent)
	assert.True(t, got.Data.Amount.Equal(decimal.NewFromInt(25000)), "amount: %s", got.Data.Amount)
	assert.Equal(t, "Almuerzo", got.Data.Description)
	assert.Equal(t, "Alimentación", got.Data.Category)
	assert.Equal(t, 0.8, got.Confidence)
}

func TestParseAmountGrammar(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int64
	}{
		{"k suffix", "taxi 25k", 25000},
		{"k suffix with decimal", "uber 1.5k", 1500},
		{"mil suffix", "compré 25mil de mercado", 25000},
		{"plain number", "cine 42000", 42000},
		{"dot separators", "arriendo 1.200.000", 1200000},
		{"comma separators", "pagué 1,200,000 de arriendo", 1200000},
		{"currency sign stripped", "ropa $80000", 80000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := intent.Parse(tt.text)
			require.NotEqual(t, intent.Unknown, got.Intent)
			assert.True(t, got.Data.Amount.Equal(decimal.NewFromInt(tt.want)),
				"amount: got %s want %d", got.Data.Amount, tt.want)
		})
	}
}

func TestParseIncomeKeywords(t *testing.T) {
	got := intent.Parse("Recibí 1.500.000 salario")

	assert.Equal(t, intent.AddIncome, got.Intent)
	assert.True(t, got.Data.Amount.Equal(decimal.NewFromInt(1500000)))
	assert.NotEmpty(t, got.Data.Description)
	assert.Equal(t, 0.85, got.Confidence)
}

func TestParsePaymentReceiptIsIncome(t *testing.T) {
	// "pago" is an income keyword (a payment received), while the
	// conjugated "pagué"/"pague" stay expense lead-in verbs.
	got := intent.Parse("pago de nómina 2.000.000")

	assert.Equal(t, intent.AddIncome, got.Intent)
	assert.True(t, got.Data.Amount.Equal(decimal.NewFromInt(2000000)))
	assert.Equal(t, "Pago de nómina", got.Data.Description)
	assert.Equal(t, 0.85, got.Confidence)

	spent := intent.Parse("pagué 80000 de arriendo")
	assert.Equal(t, intent.AddExpense, spent.Intent)
}

func TestParsedMessageJSONShape(t *testing.T) {
	out, err := json.Marshal(intent.Parse("Balance"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"intent":"get_balance","data":{"amount":"0"},"confidence":0.95}`, string(out))
}

func TestParseDefaultsToExpense(t *testing.T) {
	got := intent.Parse("cena 80000")

	assert.Equal(t, intent.AddExpense, got.Intent)
	assert.Equal(t, "Alimentación", got.Data.Category)
	assert.Equal(t, 0.8, got.Confidence)
}

func TestParseBalanceShortCircuitsAmounts(t *testing.T) {
	tests := []string{"Balance", "balance 123456", "cuánto tengo", "Saldo?"}
	for _, text := range tests {
		t.Run(text, func(t *testing.T) {
			got := intent.Parse(text)
			assert.Equal(t, intent.GetBalance, got.Intent)
			assert.Equal(t, intent.Data{}, got.Data)
			assert.Equal(t, 0.95, got.Confidence)
		})
	}
}

func TestParseSummaryKeywords(t *testing.T) {
	got := intent.Parse("Cómo voy este mes?")

	assert.Equal(t, intent.GetSummary, got.Intent)
	assert.Equal(t, intent.Data{}, got.Data)
	assert.Equal(t, 0.95, got.Confidence)
}

func TestParseUnknown(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"no amount", "hola que tal"},
		{"zero amount rejected", "gastos 0"},
		{"empty message", "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := intent.Parse(tt.text)
			assert.Equal(t, intent.Unknown, got.Intent)
			assert.Equal(t, intent.Data{}, got.Data)
			assert.Zero(t, got.Confidence)
		})
	}
}

func TestParseDescriptionStripsLeadVerbs(t *testing.T) {
	got := intent.Parse("Gasté 25mil en taxi")

	assert.Equal(t, intent.AddExpense, got.Intent)
	assert.Equal(t, "Taxi", got.Data.Description)
	assert.Equal(t, "Transporte", got.Data.Category)
}

func TestParseCategoryTable(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"mercado 120000", "Alimentación"},
		{"gasolina 60000", "Transporte"},
		{"arriendo 1.200.000", "Vivienda"},
		{"recarga internet 45000", "Servicios"},
		{"netflix 16900", "Entretenimiento"},
		{"farmacia 23000", "Salud"},
		{"zapatos 150000", "Compras"},
		{"regalo 50000", ""},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := intent.Parse(tt.text)
			assert.Equal(t, tt.want, got.Data.Category)
		})
	}
}

func TestParserWithCustomLexicon(t *testing.T) {
	lexicon := intent.Lexicon{
		Income:    []string{"salary"},
		Balance:   []string{"balance"},
		Summary:   []string{"report"},
		LeadVerbs: []string{"spent", "on"},
		Categories: []intent.CategoryKeywords{
			{Category: "Food", Keywords: []string{"lunch"}},
		},
	}
	parser := intent.NewParser(lexicon)

	got := parser.Parse("spent 12k on lunch")
	assert.Equal(t, intent.AddExpense, got.Intent)
	assert.True(t, got.Data.Amount.Equal(decimal.NewFromInt(12000)))
	assert.Equal(t, "Lunch", got.Data.Description)
	assert.Equal(t, "Food", got.Data.Category)

	got = parser.Parse("salary 3000")
	assert.Equal(t, intent.AddIncome, got.Intent)
}
