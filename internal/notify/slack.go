package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/centerpulse/centerpulse/internal/config"
	"github.com/centerpulse/centerpulse/internal/domain/rule"
	"github.com/centerpulse/centerpulse/internal/pkg/logger"
)

// SlackTransport posts block kit payloads to audience-specific incoming
// webhooks. Audience selection follows the trigger type routing table.
type SlackTransport struct {
	webhooks map[string]string
	client   *http.Client
	log      *logger.Logger
}

// NewSlackTransport creates a Slack transport from webhook configuration
func NewSlackTransport(cfg config.SlackConfig, log *logger.Logger) *SlackTransport {
	return &SlackTransport{
		webhooks: map[string]string{
			AudienceSales:    cfg.SalesWebhookURL,
			AudienceQuality:  cfg.QualityWebhookURL,
			AudienceCritical: cfg.CriticalWebhookURL,
		},
		client: &http.Client{Timeout: 10 * time.Second},
		log:    log,
	}
}

// Channel implements Transport
func (t *SlackTransport) Channel() string {
	return rule.ChannelSlack
}

// Send posts the message to the routed webhook. With no webhook
// configured for the audience, the payload is logged and the send is
// reported as mocked.
func (t *SlackTransport) Send(ctx context.Context, msg Message) (Outcome, error) {
	audience := SlackAudience(msg.TriggerType, msg.Priority)
	webhookURL := t.webhooks[audience]

	payload := buildSlackBlocks(msg)

	if webhookURL == "" {
		body, _ := json.Marshal(payload)
		t.log.WithFields(map[string]interface{}{
			"audience": audience,
			"payload":  string(body),
		}).Info("slack webhook not configured, mocking delivery")
		return OutcomeMocked, nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return OutcomeDelivered, fmt.Errorf("marshal slack payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewBuffer(body))
	if err != nil {
		return OutcomeDelivered, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return OutcomeDelivered, fmt.Errorf("post slack webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return OutcomeDelivered, fmt.Errorf("slack webhook returned status %d", resp.StatusCode)
	}

	return OutcomeDelivered, nil
}
