package service

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cesarcasstella/fintrack-pro/internal/models"
	"github.com/cesarcasstella/fintrack-pro/internal/projection"
)

// StartBalance derives the projection's starting point: the sum of the
// user's active include-in-total accounts, with credit balances negated.
func (s *Service) StartBalance(userID int64) (decimal.Decimal, error) {
	accounts, err := s.repo.ListActiveAccounts(userID)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, acc := range accounts {
		if !acc.IncludeInTotal {
			continue
		}
		if acc.Type == models.AccountCredit {
			total = total.Sub(acc.Balance)
		} else {
			total = total.Add(acc.Balance)
		}
	}
	return total, nil
}

// Projection runs the forecast engine for a user over horizonDays. The
// clock anchor is taken here, once, so the engine itself stays
// deterministic.
func (s *Service) Projection(userID int64, horizonDays int) (*projection.Result, error) {
	if horizonDays < 1 || horizonDays > 365 {
		return nil, fmt.Errorf("horizon must be between 1 and 365 days")
	}

	startBalance, err := s.StartBalance(userID)
	if err != nil {
		return nil, err
	}
	rules, err := s.repo.ListActiveRules(userID)
	if err != nil {
		return nil, err
	}

	result := projection.Generate(projection.Input{
		StartBalance: startBalance,
		Rules:        rules,
		HorizonDays:  horizonDays,
		Now:          time.Now(),
	})

	s.log.WithFields(map[string]interface{}{
		"user_id":      userID,
		"horizon_days": horizonDays,
		"rules":        len(rules),
		"end_balance":  result.Summary.EndBalance,
	}).Info("Projection generated")

	return result, nil
}

// WhatIf compares a user's forecast against hypothetical one-off changes.
// The exact strategy re-simulates from day zero and is the default; the
// linear strategy smears the net change over the base points and exists
// only for the simulator's quick preview.
func (s *Service) WhatIf(userID int64, horizonDays int, changes []projection.Change, linear bool) (*projection.Result, error) {
	if horizonDays < 1 || horizonDays > 365 {
		return nil, fmt.Errorf("horizon must be between 1 and 365 days")
	}

	startBalance, err := s.StartBalance(userID)
	if err != nil {
		return nil, err
	}
	rules, err := s.repo.ListActiveRules(userID)
	if err != nil {
		return nil, err
	}

	input := projection.Input{
		StartBalance: startBalance,
		Rules:        rules,
		HorizonDays:  horizonDays,
		Now:          time.Now(),
	}

	if linear {
		return projection.ApplyLinear(projection.Generate(input), changes), nil
	}
	return projection.ApplyExact(input, changes), nil
}

// MaterializeDueRules turns every recurring rule whose anchor has passed
// into real transactions, advancing the anchor occurrence by occurrence so
// interval spacing is preserved. Invoked daily by the scheduler.
func (s *Service) MaterializeDueRules(now time.Time) error {
	rules, err := s.repo.ListDueRules(now)
	if err != nil {
		return err
	}

	for _, rule := range rules {
		next := rule.NextOccurrence
		for !next.After(now) {
			tx := &models.Transaction{
				UserID:      rule.UserID,
				AccountID:   rule.AccountID,
				Type:        rule.Type,
				Amount:      rule.Amount,
				Description: rule.Description,
				Date:        next,
				Source:      models.SourceRecurring,
			}
			if err := s.repo.CreateTransaction(tx); err != nil {
				return fmt.Errorf("materialize rule %d: %w", rule.ID, err)
			}

			delta := rule.Amount
			if rule.Type == models.TypeExpense {
				delta = delta.Neg()
			}
			if err := s.repo.AdjustAccountBalance(rule.AccountID, delta); err != nil {
				return fmt.Errorf("materialize rule %d: %w", rule.ID, err)
			}

			next = projection.NextOccurrence(next, rule.Frequency, rule.IntervalCount)
		}

		if err := s.repo.AdvanceRule(rule.ID, next, now); err != nil {
			return err
		}
		s.log.Infof("Materialized rule %d through %s, next occurrence %s",
			rule.ID, now.Format("2006-01-02"), next.Format("2006-01-02"))
	}
	return nil
}

// ScanLowBalances runs a short-horizon projection for every opted-in user
// and alerts the ones whose forecast dips below zero.
func (s *Service) ScanLowBalances() error {
	users, err := s.repo.ListUsersWithWhatsApp()
	if err != nil {
		return err
	}

	horizon := s.config.AlertHorizonDays
	for _, user := range users {
		result, err := s.Projection(user.ID, horizon)
		if err != nil {
			s.log.WithError(err).Warnf("Skipping low balance scan for user %d", user.ID)
			continue
		}
		if !result.Summary.LowestBalance.IsNegative() {
			continue
		}

		if err := s.mailer.SendLowBalanceAlert(user.Email, user.FullName,
			result.Summary.LowestBalance, result.Summary.LowestBalanceDate, horizon); err != nil {
			s.log.WithError(err).Warnf("Failed to email low balance alert to user %d", user.ID)
		}
		if user.WhatsAppEnabled && user.PhoneNumber != "" {
			body := fmt.Sprintf("⚠️ Tu proyección de %d días llega a %s el %s. Revisa tus gastos próximos.",
				horizon, formatMoney(result.Summary.LowestBalance), result.Summary.LowestBalanceDate.Format("2006-01-02"))
			if err := s.wa.SendWhatsApp(user.PhoneNumber, body); err != nil {
				s.log.WithError(err).Warnf("Failed to send WhatsApp alert to user %d", user.ID)
			}
		}
	}
	return nil
}
