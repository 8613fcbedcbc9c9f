package models

// Message directions and statuses for the WhatsApp log
const (
	DirectionInbound  = "inbound"
	DirectionOutbound = "outbound"

	StatusReceived  = "received"
	StatusParsed    = "parsed"
	StatusProcessed = "processed"
	StatusFailed    = "failed"
	StatusSent      = "sent"
)

// WhatsAppMessage is one logged message on the WhatsApp channel,
// annotated with the parser's verdict once processed.
type WhatsAppMessage struct {
	ID              int64    `json:"id"`
	UserID          *int64   `json:"user_id,omitempty"`
	Direction       string   `json:"direction"`
	PhoneNumber     string   `json:"phone_number"`
	MessageSID      string   `json:"message_sid"`
	Body            string   `json:"message_body"`
	ParsedIntent    string   `json:"parsed_intent,omitempty"`
	ConfidenceScore *float64 `json:"confidence_score,omitempty"`
	Status          string   `json:"status"`
	CreatedAt       string   `json:"created_at"`
}
