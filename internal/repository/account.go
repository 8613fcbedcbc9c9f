package repository

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cesarcasstella/fintrack-pro/internal/models"
)

// CreateAccount creates a new account in the database
func (r *Repository) CreateAccount(account *models.Account) error {
	query := `
		INSERT INTO fintrack.accounts (user_id, name, type, balance, currency, is_active, include_in_total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(query, account.UserID, account.Name, account.Type, account.Balance, account.Currency, account.IsActive, account.IncludeInTotal).
		Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// ListActiveAccounts returns the user's active accounts
func (r *Repository) ListActiveAccounts(userID int64) ([]models.Account, error) {
	query := `
		SELECT id, user_id, name, type, balance, currency, is_active, include_in_total, created_at, updated_at
		FROM fintrack.accounts
		WHERE user_id = $1 AND is_active = TRUE
		ORDER BY created_at`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		var account models.Account
		if err := rows.Scan(&account.ID, &account.UserID, &account.Name, &account.Type, &account.Balance,
			&account.Currency, &account.IsActive, &account.IncludeInTotal, &account.CreatedAt, &account.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

// AdjustAccountBalance applies a signed delta to an account's balance
func (r *Repository) AdjustAccountBalance(accountID int64, delta decimal.Decimal) error {
	query := `
		UPDATE fintrack.accounts
		SET balance = balance + $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1`
	if _, err := r.db.Exec(query, accountID, delta); err != nil {
		return fmt.Errorf("failed to adjust balance: %w", err)
	}
	return nil
}
