package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cesarcasstella/fintrack-pro/internal/intent"
	"github.com/cesarcasstella/fintrack-pro/internal/models"
)

// ErrNoActiveAccounts signals that the user has nowhere to book a
// transaction; channel handlers turn it into a setup hint instead of an
// error reply.
var ErrNoActiveAccounts = errors.New("no active accounts")

const helpReply ="🤔 No entendí tu mensaje. Prueba con:\n" +
	"• \"Almuerzo 25000\"\n" +
	"• \"Ingreso 1500000 salario\"\n" +
	"• \"Balance\"\n" +
	"• \"Resumen\""

// HandleInbound runs the WhatsApp pipeline for one message: log it, parse
// the intent, perform the matching action and return the reply text. The
// caller (webhook handler) wraps the reply in TwiML.
func (s *Service) HandleInbound(from, body, messageSID string) (string, error) {
	phoneNumber := strings.TrimPrefix(from, "whatsapp:")

	user, findErr := s.repo.FindUserByPhone(phoneNumber)

	msg := &models.WhatsAppMessage{
		Direction:   models.DirectionInbound,
		PhoneNumber: phoneNumber,
		MessageSID:  messageSID,
		Body:        body,
		Status:      models.StatusReceived,
	}
	if user != nil {
		msg.UserID = &user.ID
	}
	if err := s.repo.LogWhatsAppMessage(msg); err != nil {
		s.log.WithError(err).Warn("Failed to log inbound WhatsApp message")
	}

	if findErr != nil {
		return "👋 ¡Hola! No encontré tu cuenta. Regístrate en FinTrack Pro y vincula tu WhatsApp en configuración.", nil
	}
	if !user.WhatsAppEnabled {
		return "⚠️ WhatsApp no está habilitado en tu cuenta. Actívalo en Configuración > WhatsApp.", nil
	}

	parsed := intent.Parse(body)
	if err := s.repo.MarkMessageParsed(messageSID, string(parsed.Intent), parsed.Confidence, models.StatusParsed); err != nil {
		s.log.WithError(err).Warn("Failed to mark message parsed")
	}

	s.log.WithFields(map[string]interface{}{
		"user_id":    user.ID,
		"intent":     parsed.Intent,
		"confidence": parsed.Confidence,
	}).Info("Inbound WhatsApp message parsed")

	switch parsed.Intent {
	case intent.AddExpense:
		return s.replyRecord(user.ID, models.TypeExpense, parsed.Data)
	case intent.AddIncome:
		return s.replyRecord(user.ID, models.TypeIncome, parsed.Data)
	case intent.GetBalance:
		return s.replyBalance(user.ID)
	case intent.GetSummary:
		return s.replyMonthSummary(user.ID)
	default:
		return helpReply, nil
	}
}

func (s *Service) replyRecord(userID int64, txType string, data intent.Data) (string, error) {
	if _, err := s.RecordTransaction(userID, txType, data.Amount, data.Description, data.Category, models.SourceWhatsApp); err != nil {
		if errors.Is(err, ErrNoActiveAccounts) {
			return "❌ No tienes cuentas configuradas. Crea una en la app primero.", nil
		}
		return "", err
	}

	label := "Gasto"
	if txType == models.TypeIncome {
		label = "Ingreso"
	}
	reply := fmt.Sprintf("✅ %s registrado: %s", label, formatMoney(data.Amount))
	if data.Description != "" {
		reply += " - " + data.Description
	}
	return reply, nil
}

func (s *Service) replyBalance(userID int64) (string, error) {
	accounts, err := s.repo.ListActiveAccounts(userID)
	if err != nil {
		return "", err
	}
	if len(accounts) == 0 {
		return "No tienes cuentas configuradas.", nil
	}

	total := decimal.Zero
	for _, acc := range accounts {
		total = total.Add(acc.Balance)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "💰 *Balance Total:* %s\n\n", formatMoney(total))
	for _, acc := range accounts {
		fmt.Fprintf(&b, "• %s: %s\n", acc.Name, formatMoney(acc.Balance))
	}
	return b.String(), nil
}

func (s *Service) replyMonthSummary(userID int64) (string, error) {
	summary, err := s.MonthSummary(userID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("📊 *Resumen del mes*\n\n💚 Ingresos: %s\n❤️ Gastos: %s\n📈 Balance: %s",
		formatMoney(summary.Income), formatMoney(summary.Expenses), formatMoney(summary.Net)), nil
}

// RecordTransaction inserts a transaction into the user's default (oldest
// active) account and adjusts its balance.
func (s *Service) RecordTransaction(userID int64, txType string, amount decimal.Decimal, description, category, source string) (*models.Transaction, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("amount must be positive")
	}

	accounts, err := s.repo.ListActiveAccounts(userID)
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, fmt.Errorf("user %d: %w", userID, ErrNoActiveAccounts)
	}
	account := accounts[0]

	tx := &models.Transaction{
		UserID:      userID,
		AccountID:   account.ID,
		Type:        txType,
		Amount:      amount,
		Description: description,
		Category:    category,
		Date:        time.Now(),
		Source:      source,
	}
	if err := s.repo.CreateTransaction(tx); err != nil {
		return nil, err
	}

	delta := amount
	if txType == models.TypeExpense {
		delta = delta.Neg()
	}
	if err := s.repo.AdjustAccountBalance(account.ID, delta); err != nil {
		return nil, err
	}

	s.log.Infof("Transaction recorded for user %d: %s %s (%s)", userID, txType, amount, source)
	return tx, nil
}

// formatMoney renders an amount the way the product does for es-CO:
// leading $, dot thousand separators, no decimals.
func formatMoney(amount decimal.Decimal) string {
	negative := amount.IsNegative()
	digits := amount.Abs().Round(0).String()

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
		if len(digits) > lead {
			b.WriteByte('.')
		}
	}
	for i := lead; i < len(digits); i += 3 {
		b.WriteString(digits[i : i+3])
		if i+3 < len(digits) {
			b.WriteByte('.')
		}
	}
	return b.String()
}
