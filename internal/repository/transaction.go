package repository

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cesarcasstella/fintrack-pro/internal/models"
)

// CreateTransaction creates a new transaction in the database
func (r *Repository) CreateTransaction(tx *models.Transaction) error {
	query := `
		INSERT INTO fintrack.transactions (user_id, account_id, type, amount, description, category, date, source, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(query, tx.UserID, tx.AccountID, tx.Type, tx.Amount, tx.Description, tx.Category, tx.Date, tx.Source).
		Scan(&tx.ID, &tx.CreatedAt, &tx.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// ListTransactionsByPeriod returns a user's transactions inside [start, end)
func (r *Repository) ListTransactionsByPeriod(userID int64, start, end time.Time) ([]models.Transaction, error) {
	query := `
		SELECT id, user_id, account_id, type, amount, description, category, date, source, created_at, updated_at
		FROM fintrack.transactions
		WHERE user_id = $1 AND date >= $2 AND date < $3
		ORDER BY date DESC`
	rows, err := r.db.Query(query, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txs []models.Transaction
	for rows.Next() {
		var tx models.Transaction
		if err := rows.Scan(&tx.ID, &tx.UserID, &tx.AccountID, &tx.Type, &tx.Amount,
			&tx.Description, &tx.Category, &tx.Date, &tx.Source, &tx.CreatedAt, &tx.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

// SumTransactionsByPeriod returns income and expense totals inside [start, end)
func (r *Repository) SumTransactionsByPeriod(userID int64, start, end time.Time) (income, expenses decimal.Decimal, err error) {
	query := `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE type = 'income'), 0),
			COALESCE(SUM(amount) FILTER (WHERE type = 'expense'), 0)
		FROM fintrack.transactions
		WHERE user_id = $1 AND date >= $2 AND date < $3`
	if err = r.db.QueryRow(query, userID, start, end).Scan(&income, &expenses); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to sum transactions: %w", err)
	}
	return income, expenses, nil
}
