package repository

import (
	"fmt"
	"time"

	"github.com/cesarcasstella/fintrack-pro/internal/models"
)

const ruleColumns = `id, user_id, account_id, type, amount, description, frequency, interval_count,
		next_occurrence, last_generated, is_active, created_at, updated_at`

func scanRule(scanner interface{ Scan(...interface{}) error }) (models.RecurringRule, error) {
	var rule models.RecurringRule
	err := scanner.Scan(&rule.ID, &rule.UserID, &rule.AccountID, &rule.Type, &rule.Amount,
		&rule.Description, &rule.Frequency, &rule.IntervalCount, &rule.NextOccurrence,
		&rule.LastGenerated, &rule.IsActive, &rule.CreatedAt, &rule.UpdatedAt)
	return rule, err
}

// CreateRecurringRule creates a new recurring rule in the database
func (r *Repository) CreateRecurringRule(rule *models.RecurringRule) error {
	query := `
		INSERT INTO fintrack.recurring_rules (user_id, account_id, type, amount, description, frequency, interval_count, next_occurrence, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(query, rule.UserID, rule.AccountID, rule.Type, rule.Amount, rule.Description,
		rule.Frequency, rule.IntervalCount, rule.NextOccurrence, rule.IsActive).
		Scan(&rule.ID, &rule.CreatedAt, &rule.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create recurring rule: %w", err)
	}
	return nil
}

// ListActiveRules returns the user's active recurring rules
func (r *Repository) ListActiveRules(userID int64) ([]models.RecurringRule, error) {
	query := `
		SELECT ` + ruleColumns + `
		FROM fintrack.recurring_rules
		WHERE user_id = $1 AND is_active = TRUE
		ORDER BY next_occurrence`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rules: %w", err)
	}
	defer rows.Close()

	var rules []models.RecurringRule
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rule: %w", err)
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}

// ListDueRules returns active rules whose next occurrence is not after cutoff
func (r *Repository) ListDueRules(cutoff time.Time) ([]models.RecurringRule, error) {
	query := `
		SELECT ` + ruleColumns + `
		FROM fintrack.recurring_rules
		WHERE is_active = TRUE AND next_occurrence <= $1
		ORDER BY next_occurrence`
	rows, err := r.db.Query(query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to list due rules: %w", err)
	}
	defer rows.Close()

	var rules []models.RecurringRule
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rule: %w", err)
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}

// AdvanceRule moves a rule's anchor forward after materialization
func (r *Repository) AdvanceRule(ruleID int64, nextOccurrence, lastGenerated time.Time) error {
	query := `
		UPDATE fintrack.recurring_rules
		SET next_occurrence = $2, last_generated = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1`
	if _, err := r.db.Exec(query, ruleID, nextOccurrence, lastGenerated); err != nil {
		return fmt.Errorf("failed to advance rule: %w", err)
	}
	return nil
}
