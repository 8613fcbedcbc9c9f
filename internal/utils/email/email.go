package email

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/jordan-wright/email"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/cesarcasstella/fintrack-pro/internal/config"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendLowBalanceAlert warns a user that their projected balance dips below
// zero within the forecast horizon
func (s *Sender) SendLowBalanceAlert(to, fullName string, lowestBalance decimal.Decimal, lowestDate time.Time, horizonDays int) error {
	if s.cfg.SMTPHost == "" {
		s.logger.Warn("SMTP not configured, skipping low balance alert")
		return nil
	}

	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = "Low Balance Forecast Alert"

	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"Your %d-day balance forecast projects a low point of %s on %s.\n"+
			"Consider adjusting upcoming expenses or adding funds before that date.\n"+
			"\nBest regards,\nFinTrack Pro",
		fullName, horizonDays, lowestBalance.StringFixed(2), lowestDate.Format("2006-01-02"),
	)
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}
