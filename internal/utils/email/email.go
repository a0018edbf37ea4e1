package email

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"

	"financetracker/internal/config"
	"financetracker/internal/models"
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

// SendBudgetAlerts sends the user their current budget alert list
func (s *Sender) SendBudgetAlerts(to, username string, alerts []models.BudgetAlert) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = "Budget Alert Notification"

	var body strings.Builder
	fmt.Fprintf(&body, "Dear %s,\n\n", username)
	body.WriteString("Here is the current status of your budgets:\n\n")
	for _, alert := range alerts {
		fmt.Fprintf(&body, "- %s %s\n", alert.Name, alert.Message)
	}
	body.WriteString("\nBest regards,\nFinance Tracker")
	e.Text = []byte(body.String())

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}
