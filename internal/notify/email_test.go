package notify

import (
	"context"
	"net/smtp"
	"strings"
	"testing"

	"github.com/centerpulse/centerpulse/internal/config"
	"github.com/centerpulse/centerpulse/internal/domain/rule"
)

func TestEmailSendUnconfiguredMocks(t *testing.T) {
	tr := NewEmailTransport(config.EmailConfig{}, slackTestLogger())

	outcome, err := tr.Send(context.Background(), Message{
		Title:      "Low Sales",
		Body:       "Delhi Central at 40%",
		Priority:   rule.PriorityHigh,
		Recipients: []Recipient{{Email: "manager@example.com"}},
	})
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if outcome != OutcomeMocked {
		t.Errorf("Send() outcome = %v, want OutcomeMocked without SMTP config", outcome)
	}
}

func TestEmailSendNoRecipientsSkips(t *testing.T) {
	tr := NewEmailTransport(config.EmailConfig{Host: "smtp.example.com", From: "alerts@example.com"}, slackTestLogger())

	outcome, err := tr.Send(context.Background(), Message{Title: "x", Body: "y"})
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if outcome != OutcomeSkipped {
		t.Errorf("Send() outcome = %v, want OutcomeSkipped with no recipients on a configured transport", outcome)
	}
}

func TestEmailSendBuildsHTMLMail(t *testing.T) {
	var gotAddr, gotFrom string
	var gotTo []string
	var gotBody []byte

	tr := NewEmailTransport(config.EmailConfig{
		Host: "smtp.example.com",
		Port: 587,
		From: "alerts@example.com",
	}, slackTestLogger())
	tr.send = func(addr string, _ smtp.Auth, from string, to []string, body []byte) error {
		gotAddr, gotFrom, gotTo, gotBody = addr, from, to, body
		return nil
	}

	outcome, err := tr.Send(context.Background(), Message{
		Title:        "Low Sales",
		Body:         "Delhi Central at 40%",
		TriggerType:  rule.TriggerLowSales,
		Priority:     rule.PriorityCritical,
		CenterName:   "Delhi Central",
		DashboardURL: "http://localhost:3000/dashboard",
		Recipients: []Recipient{
			{Email: "manager@example.com"},
			{Name: "no email user"},
		},
	})
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if outcome != OutcomeDelivered {
		t.Errorf("Send() outcome = %v, want OutcomeDelivered", outcome)
	}

	if gotAddr != "smtp.example.com:587" {
		t.Errorf("addr = %s", gotAddr)
	}
	if gotFrom != "alerts@example.com" {
		t.Errorf("from = %s", gotFrom)
	}
	if len(gotTo) != 1 || gotTo[0] != "manager@example.com" {
		t.Errorf("to = %v, want recipients with email addresses only", gotTo)
	}

	mail := string(gotBody)
	for _, want := range []string{
		"Subject: Low Sales",
		"Content-Type: text/html",
		"Delhi Central at 40%",
		"critical",
		"Open Dashboard",
	} {
		if !strings.Contains(mail, want) {
			t.Errorf("mail missing %q", want)
		}
	}
}
