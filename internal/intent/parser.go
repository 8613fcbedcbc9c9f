// Package intent turns free-text chat messages into structured transaction
// intents. It is a heuristic keyword classifier, not an NLU system: the
// confidence score is a fixed per-branch constant, and unrecognized input
// degrades to Unknown instead of failing.
package intent

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// Intent classifies what the sender wants.
type Intent string

const (
	AddExpense Intent = "add_expense"
	AddIncome  Intent = "add_income"
	GetBalance Intent = "get_balance"
	GetSummary Intent = "get_summary"
	Unknown    Intent = "unknown"
)

// Data holds the fields extracted from the message. Amount is zero and the
// strings empty when extraction did not apply to the matched intent.
type Data struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category,omitempty"`
}

// ParsedMessage is the parser's verdict for one message.
type ParsedMessage struct {
	Intent     Intent  `json:"intent"`
	Data       Data    `json:"data"`
	Confidence float64 `json:"confidence"`
}

// Amount grammar, tried in order; first match wins.
var (
	thousandsK   = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*k\b`)
	thousandsMil = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*mil\b`)
	plainNumber  = regexp.MustCompile(`\d{1,3}(?:[.,]\d{3})+|\d+`)
	grouped      = regexp.MustCompile(`^\d{1,3}(?:[.,]\d{3})+$`)
)

// Parser extracts intents using one Lexicon. The zero-cost way to localize
// is to build a Lexicon and call NewParser; package-level Parse uses the
// Spanish default.
type Parser struct {
	lexicon Lexicon
}

func NewParser(lexicon Lexicon) *Parser {
	return &Parser{lexicon: lexicon}
}

var defaultParser = NewParser(DefaultLexicon)

// Parse runs the default Spanish parser.
func Parse(text string) ParsedMessage {
	return defaultParser.Parse(text)
}

// Parse classifies one message. It never fails; the worst case is the
// Unknown intent with zero confidence. Keyword intents (balance, summary)
// short-circuit before amount extraction.
func (p *Parser) Parse(text string) ParsedMessage {
	normalized := strings.ToLower(strings.TrimSpace(text))

	if containsAny(normalized, p.lexicon.Balance) {
		return ParsedMessage{Intent: GetBalance, Confidence: 0.95}
	}
	if containsAny(normalized, p.lexicon.Summary) {
		return ParsedMessage{Intent: GetSummary, Confidence: 0.95}
	}

	amount, token, ok := extractAmount(normalized)
	if !ok {
		return ParsedMessage{Intent: Unknown, Confidence: 0}
	}

	data := Data{
		Amount:      amount,
		Description: p.extractDescription(normalized, token),
		Category:    p.matchCategory(normalized),
	}

	if containsAny(normalized, p.lexicon.Income) {
		return ParsedMessage{Intent: AddIncome, Data: data, Confidence: 0.85}
	}
	return ParsedMessage{Intent: AddExpense, Data: data, Confidence: 0.8}
}

// extractAmount returns the parsed amount and the raw token it came from:
// "25k" and "25mil" multiply by a thousand, plain numbers may carry
// thousand separators every three digits. Non-positive or unparsable
// numbers are rejected, not returned as zero.
func extractAmount(text string) (decimal.Decimal, string, bool) {
	cleaned := strings.ReplaceAll(text, "$", "")

	for _, re := range []*regexp.Regexp{thousandsK, thousandsMil} {
		if m := re.FindStringSubmatch(cleaned); m != nil {
			n, err := decimal.NewFromString(strings.ReplaceAll(m[1], ",", "."))
			if err == nil && n.IsPositive() {
				return n.Mul(decimal.NewFromInt(1000)), m[0], true
			}
		}
	}

	if token := plainNumber.FindString(cleaned); token != "" {
		digits := token
		if grouped.MatchString(token) {
			digits = strings.Map(stripSeparators, token)
		}
		n, err := decimal.NewFromString(digits)
		if err == nil && n.IsPositive() {
			return n, token, true
		}
	}

	return decimal.Decimal{}, "", false
}

// extractDescription removes the amount token, currency sigils and common
// lead-in verbs/prepositions, then capitalizes the remainder.
func (p *Parser) extractDescription(text, token string) string {
	description := strings.Replace(text, token, "", 1)
	description = strings.ReplaceAll(description, "$", "")
	description = strings.TrimSpace(description)

	for changed := true; changed; {
		changed = false
		for _, verb := range p.lexicon.LeadVerbs {
			if rest, found := strings.CutPrefix(description, verb+" "); found {
				description = strings.TrimSpace(rest)
				changed = true
			}
		}
	}

	return capitalize(description)
}

func (p *Parser) matchCategory(text string) string {
	for _, entry := range p.lexicon.Categories {
		if containsAny(text, entry.Keywords) {
			return entry.Category
		}
	}
	return ""
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func stripSeparators(r rune) rune {
	if r == '.' || r == ',' {
		return -1
	}
	return r
}

func capitalize(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
