package notify

import (
	"context"
	"testing"

	"github.com/centerpulse/centerpulse/internal/config"
)

func TestPushSendNoTokensSkips(t *testing.T) {
	tr := NewPushTransport(config.PushConfig{FCMServerKey: "key-123"}, slackTestLogger())

	outcome, err := tr.Send(context.Background(), Message{
		Title:      "Low Sales",
		Body:       "Delhi Central at 40%",
		Recipients: []Recipient{{Name: "no token user"}},
	})
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if outcome != OutcomeSkipped {
		t.Errorf("Send() outcome = %v, want OutcomeSkipped with no tokens on a configured transport", outcome)
	}
}

func TestPushSendUnconfiguredMocks(t *testing.T) {
	tr := NewPushTransport(config.PushConfig{}, slackTestLogger())

	outcome, err := tr.Send(context.Background(), Message{
		Title:      "Low Sales",
		Body:       "Delhi Central at 40%",
		Recipients: []Recipient{{PushToken: "tok-1"}},
	})
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if outcome != OutcomeMocked {
		t.Errorf("Send() outcome = %v, want OutcomeMocked without FCM key", outcome)
	}
}
