package repository

import (
	"fmt"

	"github.com/cesarcasstella/fintrack-pro/internal/models"
)

// LogWhatsAppMessage inserts one message into the channel log
func (r *Repository) LogWhatsAppMessage(msg *models.WhatsAppMessage) error {
	query := `
		INSERT INTO fintrack.whatsapp_messages (user_id, direction, phone_number, message_sid, message_body, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRow(query, msg.UserID, msg.Direction, msg.PhoneNumber, msg.MessageSID, msg.Body, msg.Status).
		Scan(&msg.ID, &msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to log whatsapp message: %w", err)
	}
	return nil
}

// MarkMessageParsed records the parser's verdict on a logged message
func (r *Repository) MarkMessageParsed(messageSID, parsedIntent string, confidence float64, status string) error {
	query := `
		UPDATE fintrack.whatsapp_messages
		SET parsed_intent = $2, confidence_score = $3, status = $4
		WHERE message_sid = $1`
	if _, err := r.db.Exec(query, messageSID, parsedIntent, confidence, status); err != nil {
		return fmt.Errorf("failed to mark message parsed: %w", err)
	}
	return nil
}
