package notify

import (
	"context"
	"testing"

	"github.com/centerpulse/centerpulse/internal/config"
)

func TestWhatsAppSendNoPhonesSkips(t *testing.T) {
	tr := NewWhatsAppTransport(config.WhatsAppConfig{
		AccountSID: "AC123",
		AuthToken:  "token",
		FromNumber: "+15550000000",
	}, slackTestLogger())

	outcome, err := tr.Send(context.Background(), Message{
		Title:      "Low Sales",
		Body:       "Delhi Central at 40%",
		Recipients: []Recipient{{Name: "no phone user"}},
	})
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if outcome != OutcomeSkipped {
		t.Errorf("Send() outcome = %v, want OutcomeSkipped with no phones on a configured transport", outcome)
	}
}

func TestWhatsAppSendUnconfiguredMocks(t *testing.T) {
	tr := NewWhatsAppTransport(config.WhatsAppConfig{}, slackTestLogger())

	outcome, err := tr.Send(context.Background(), Message{
		Title:      "Low Sales",
		Body:       "Delhi Central at 40%",
		Recipients: []Recipient{{Phone: "+15551234567"}},
	})
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if outcome != OutcomeMocked {
		t.Errorf("Send() outcome = %v, want OutcomeMocked without Twilio credentials", outcome)
	}
}
