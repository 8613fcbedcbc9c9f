package handler

import (
	"net/http"

	"github.com/cesarcasstella/fintrack-pro/internal/integrations/twilio"
)

// WhatsAppWebhook receives Twilio's inbound message callback (form POST)
// and answers synchronously with a TwiML document.
func (h *Handler) WhatsAppWebhook(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form body", http.StatusBadRequest)
		return
	}

	from := r.FormValue("From")
	body := r.FormValue("Body")
	messageSID := r.FormValue("MessageSid")
	if from == "" || body == "" {
		http.Error(w, "Missing required fields", http.StatusBadRequest)
		return
	}

	reply, err := h.svc.HandleInbound(from, body, messageSID)
	if err != nil {
		h.log.WithError(err).Error("WhatsApp webhook failed")
		// Still acknowledge; Twilio retries on 5xx and the message is logged.
		reply = ""
	}

	twiml, err := twilio.TwiMLReply(reply)
	if err != nil {
		h.log.WithError(err).Error("Failed to build TwiML reply")
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/xml")
	w.Write(twiml)
}

// WhatsAppWebhookStatus answers Twilio's verification GET
func (h *Handler) WhatsAppWebhookStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "WhatsApp webhook active"})
}
