// Package twilio delivers outbound WhatsApp messages through the Twilio
// REST API and builds TwiML documents for synchronous webhook replies.
package twilio

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/sirupsen/logrus"

	"github.com/cesarcasstella/fintrack-pro/internal/config"
)

// Client handles integration with the Twilio messaging API
type Client struct {
	accountSID string
	authToken  string
	from       string
	apiBase    string
	client     *http.Client
	log        *logrus.Logger
}

// NewClient initializes a new Twilio client
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		accountSID: cfg.TwilioAccountSID,
		authToken:  cfg.TwilioAuthToken,
		from:       cfg.TwilioWhatsAppFrom,
		apiBase:    cfg.TwilioAPIBase,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// Configured reports whether credentials are present; without them sends
// are skipped instead of failing the caller.
func (c *Client) Configured() bool {
	return c.accountSID != "" && c.authToken != ""
}

// SendWhatsApp sends one text message to a WhatsApp number
func (c *Client) SendWhatsApp(to, body string) error {
	if !c.Configured() {
		c.log.Warn("Twilio credentials not configured, skipping outbound message")
		return nil
	}

	if !strings.HasPrefix(to, "whatsapp:") {
		to = "whatsapp:" + to
	}

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", c.apiBase, c.accountSID)
	form := url.Values{}
	form.Set("To", to)
	form.Set("From", c.from)
	form.Set("Body", body)

	req, err := http.NewRequest("POST", endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.accountSID, c.authToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	c.log.Infof("WhatsApp message sent to %s", to)
	return nil
}

// TwiMLReply builds the TwiML response document Twilio expects from a
// webhook: <Response><Message>body</Message></Response>. An empty body
// yields an empty <Response/>, which acknowledges without replying.
func TwiMLReply(body string) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	response := doc.CreateElement("Response")
	if body != "" {
		response.CreateElement("Message").SetText(body)
	}
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize TwiML: %w", err)
	}
	return out, nil
}
