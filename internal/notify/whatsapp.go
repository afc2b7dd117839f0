package notify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/centerpulse/centerpulse/internal/config"
	"github.com/centerpulse/centerpulse/internal/domain/rule"
	"github.com/centerpulse/centerpulse/internal/pkg/logger"
)

// WhatsAppTransport sends WhatsApp messages through the Twilio REST API
type WhatsAppTransport struct {
	cfg    config.WhatsAppConfig
	client *http.Client
	log    *logger.Logger
}

// NewWhatsAppTransport creates a WhatsApp transport from Twilio
// configuration
func NewWhatsAppTransport(cfg config.WhatsAppConfig, log *logger.Logger) *WhatsAppTransport {
	return &WhatsAppTransport{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
		log:    log,
	}
}

// Channel implements Transport
func (t *WhatsAppTransport) Channel() string {
	return rule.ChannelWhatsApp
}

// Send messages every recipient with a phone number. Without Twilio
// credentials the text is logged and the send is reported as mocked;
// an empty phone list is reported as skipped.
func (t *WhatsAppTransport) Send(ctx context.Context, msg Message) (Outcome, error) {
	phones := make([]string, 0, len(msg.Recipients))
	for _, r := range msg.Recipients {
		if r.Phone != "" {
			phones = append(phones, r.Phone)
		}
	}
	if len(phones) == 0 {
		t.log.Warn("no whatsapp recipients resolved, skipping delivery")
		return OutcomeSkipped, nil
	}

	text := buildWhatsAppText(msg)

	if t.cfg.AccountSID == "" || t.cfg.AuthToken == "" || t.cfg.FromNumber == "" {
		t.log.WithFields(map[string]interface{}{
			"recipients": len(phones),
			"text":       text,
		}).Info("twilio not configured, mocking delivery")
		return OutcomeMocked, nil
	}

	endpoint := fmt.Sprintf("https://api.twilio.com/2010-04-01/Accounts/%s/Messages.json", t.cfg.AccountSID)
	for _, phone := range phones {
		form := url.Values{}
		form.Set("From", "whatsapp:"+t.cfg.FromNumber)
		form.Set("To", "whatsapp:"+phone)
		form.Set("Body", text)

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
		if err != nil {
			return OutcomeDelivered, err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.SetBasicAuth(t.cfg.AccountSID, t.cfg.AuthToken)

		resp, err := t.client.Do(req)
		if err != nil {
			return OutcomeDelivered, fmt.Errorf("post twilio message: %w", err)
		}
		resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return OutcomeDelivered, fmt.Errorf("twilio returned status %d for %s", resp.StatusCode, phone)
		}
	}

	return OutcomeDelivered, nil
}
