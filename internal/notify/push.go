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

// PushTransport sends web push notifications through the FCM legacy
// HTTP endpoint
type PushTransport struct {
	cfg    config.PushConfig
	client *http.Client
	log    *logger.Logger
}

// NewPushTransport creates a push transport from FCM configuration
func NewPushTransport(cfg config.PushConfig, log *logger.Logger) *PushTransport {
	return &PushTransport{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
		log:    log,
	}
}

// Channel implements Transport
func (t *PushTransport) Channel() string {
	return rule.ChannelPush
}

// Send pushes to every recipient with a registered device token.
// Without a server key the payload is logged and the send is reported
// as mocked; an empty token list is reported as skipped.
func (t *PushTransport) Send(ctx context.Context, msg Message) (Outcome, error) {
	tokens := make([]string, 0, len(msg.Recipients))
	for _, r := range msg.Recipients {
		if r.PushToken != "" {
			tokens = append(tokens, r.PushToken)
		}
	}
	if len(tokens) == 0 {
		t.log.Warn("no push tokens resolved, skipping delivery")
		return OutcomeSkipped, nil
	}

	payload := map[string]interface{}{
		"registration_ids": tokens,
		"notification": map[string]string{
			"title": fmt.Sprintf("%s %s", priorityEmoji(msg.Priority), msg.Title),
			"body":  msg.Body,
		},
		"data": msg.Data,
	}

	if t.cfg.FCMServerKey == "" {
		body, _ := json.Marshal(payload)
		t.log.WithFields(map[string]interface{}{
			"tokens":  len(tokens),
			"payload": string(body),
		}).Info("fcm not configured, mocking delivery")
		return OutcomeMocked, nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return OutcomeDelivered, fmt.Errorf("marshal push payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.cfg.FCMEndpoint, bytes.NewBuffer(body))
	if err != nil {
		return OutcomeDelivered, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key="+t.cfg.FCMServerKey)

	resp, err := t.client.Do(req)
	if err != nil {
		return OutcomeDelivered, fmt.Errorf("post fcm: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return OutcomeDelivered, fmt.Errorf("fcm returned status %d", resp.StatusCode)
	}

	return OutcomeDelivered, nil
}
