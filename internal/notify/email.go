package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/centerpulse/centerpulse/internal/config"
	"github.com/centerpulse/centerpulse/internal/domain/rule"
	"github.com/centerpulse/centerpulse/internal/pkg/logger"
)

// EmailTransport sends HTML alert emails over SMTP
type EmailTransport struct {
	cfg  config.EmailConfig
	log  *logger.Logger
	send func(addr string, auth smtp.Auth, from string, to []string, body []byte) error
}

// NewEmailTransport creates an email transport from SMTP configuration
func NewEmailTransport(cfg config.EmailConfig, log *logger.Logger) *EmailTransport {
	return &EmailTransport{
		cfg:  cfg,
		log:  log,
		send: smtp.SendMail,
	}
}

// Channel implements Transport
func (t *EmailTransport) Channel() string {
	return rule.ChannelEmail
}

// Send mails the message to every recipient with an email address.
// Without SMTP configuration the rendered mail is logged and the send
// is reported as mocked; an empty recipient list is reported as
// skipped.
func (t *EmailTransport) Send(_ context.Context, msg Message) (Outcome, error) {
	to := make([]string, 0, len(msg.Recipients))
	for _, r := range msg.Recipients {
		if r.Email != "" {
			to = append(to, r.Email)
		}
	}
	if len(to) == 0 {
		t.log.Warn("no email recipients resolved, skipping delivery")
		return OutcomeSkipped, nil
	}

	html, err := buildEmailHTML(msg)
	if err != nil {
		return OutcomeDelivered, fmt.Errorf("render email body: %w", err)
	}

	if t.cfg.Host == "" || t.cfg.From == "" {
		t.log.WithFields(map[string]interface{}{
			"recipients": to,
			"subject":    msg.Title,
		}).Info("smtp not configured, mocking delivery")
		return OutcomeMocked, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", t.cfg.From)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(to, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Title)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(html)

	addr := fmt.Sprintf("%s:%d", t.cfg.Host, t.cfg.Port)
	var auth smtp.Auth
	if t.cfg.Username != "" {
		auth = smtp.PlainAuth("", t.cfg.Username, t.cfg.Password, t.cfg.Host)
	}

	if err := t.send(addr, auth, t.cfg.From, to, []byte(b.String())); err != nil {
		return OutcomeDelivered, fmt.Errorf("send mail: %w", err)
	}

	return OutcomeDelivered, nil
}
