package models

// User represents a user in the system
type User struct {
	ID              int64  `json:"id"`
	Email           string `json:"email"`
	FullName        string `json:"full_name"`
	PasswordHash    string `json:"-"` // Not serialized
	PhoneNumber     string `json:"phone_number"`
	WhatsAppEnabled bool   `json:"whatsapp_enabled"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}
