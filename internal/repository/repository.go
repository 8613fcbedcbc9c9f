package repository

import (
	"database/sql"
	"fmt"

	"github.com/cesarcasstella/fintrack-pro/internal/models"
)

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser creates a new user in the database
func (r *Repository) CreateUser(user *models.User) error {
	query := `
		INSERT INTO fintrack.users (email, full_name, password_hash, phone_number, whatsapp_enabled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(query, user.Email, user.FullName, user.PasswordHash, user.PhoneNumber, user.WhatsAppEnabled).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindUserByEmail retrieves a user by email
func (r *Repository) FindUserByEmail(email string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, email, full_name, password_hash, phone_number, whatsapp_enabled, created_at, updated_at
		FROM fintrack.users
		WHERE email = $1`
	err := r.db.QueryRow(query, email).
		Scan(&user.ID, &user.Email, &user.FullName, &user.PasswordHash, &user.PhoneNumber, &user.WhatsAppEnabled, &user.CreatedAt, &user.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// FindUserByPhone retrieves a user by WhatsApp phone number
func (r *Repository) FindUserByPhone(phoneNumber string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, email, full_name, password_hash, phone_number, whatsapp_enabled, created_at, updated_at
		FROM fintrack.users
		WHERE phone_number = $1`
	err := r.db.QueryRow(query, phoneNumber).
		Scan(&user.ID, &user.Email, &user.FullName, &user.PasswordHash, &user.PhoneNumber, &user.WhatsAppEnabled, &user.CreatedAt, &user.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// ListUsersWithWhatsApp returns every user that opted into WhatsApp alerts
func (r *Repository) ListUsersWithWhatsApp() ([]models.User, error) {
	query := `
		SELECT id, email, full_name, password_hash, phone_number, whatsapp_enabled, created_at, updated_at
		FROM fintrack.users
		WHERE whatsapp_enabled = TRUE`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Email, &user.FullName, &user.PasswordHash, &user.PhoneNumber, &user.WhatsAppEnabled, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
