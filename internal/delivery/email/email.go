package email

import (
	"bytes"
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"

	"github.com/installo/bnpl-planner/internal/config"
)

// Sender handles sending plan emails via SMTP
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

// SendPlan mails the plan summary with the calendar attached so the user
// can import the schedule into their calendar client.
func (s *Sender) SendPlan(to, summary string, icsDoc []byte) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = "Your installment payment plan"

	body := summary + "\n\nThe attached calendar file contains one event per payment with a reminder the day before.\n"
	e.Text = []byte(body)

	if _, err := e.Attach(bytes.NewReader(icsDoc), "payment-plan.ics", "text/calendar"); err != nil {
		return fmt.Errorf("failed to attach calendar: %w", err)
	}

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send plan to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Plan email sent to %s", to)
	return nil
}
