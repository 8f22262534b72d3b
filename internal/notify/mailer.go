// Package notify delivers interview invitations by email.
package notify

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/jonathan/job-screening/internal/logging"
	"github.com/jonathan/job-screening/internal/types"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Sender sends composed messages. *gomail.Dialer satisfies it.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPConfig holds the SMTP relay settings.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// Mailer sends the formal invitation, with the friendly version as an alternative part.
type Mailer struct {
	from   string
	sender Sender
	logger *zap.Logger
}

// NewMailer returns a Mailer that dials the configured SMTP relay.
func NewMailer(cfg SMTPConfig, logger *zap.Logger) *Mailer {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	return NewMailerWithSender(cfg.From, d, logger)
}

// NewMailerWithSender returns a Mailer using sender.
func NewMailerWithSender(from string, sender Sender, logger *zap.Logger) *Mailer {
	return &Mailer{from: from, sender: sender, logger: logging.WithComponent(logger, "mailer")}
}

// SendInvitation emails inv to the candidate.
func (m *Mailer) SendInvitation(ctx context.Context, to, name string, inv types.Invitation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	addr, err := mail.ParseAddress(strings.TrimSpace(to))
	if err != nil {
		return fmt.Errorf("invalid recipient %q: %w", to, err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	if name = strings.TrimSpace(name); name != "" {
		msg.SetAddressHeader("To", addr.Address, name)
	} else {
		msg.SetHeader("To", addr.Address)
	}
	msg.SetHeader("Subject", inv.Subject)
	msg.SetBody("text/plain", inv.Formal)
	if strings.TrimSpace(inv.Friendly) != "" {
		msg.AddAlternative("text/plain", inv.Friendly)
	}

	if err := m.sender.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send invitation to %s: %w", addr.Address, err)
	}
	m.logger.Info("invitation sent", zap.String("to", addr.Address), zap.String("subject", inv.Subject))
	return nil
}
