package services

import (
	"context"
	"testing"
	"time"

	"github.com/centerpulse/centerpulse/internal/domain/rule"
	"github.com/centerpulse/centerpulse/internal/testutil"
)

func validRule() *rule.AlertRule {
	return &rule.AlertRule{
		Name:            "Low Sales",
		TriggerType:     rule.TriggerLowSales,
		Threshold:       50,
		Priority:        rule.PriorityHigh,
		Channels:        []string{rule.ChannelSlack},
		MessageTemplate: "[Center] at [Percentage]%",
		Enabled:         true,
	}
}

func TestRuleCreateAssignsIDAndTimestamps(t *testing.T) {
	repo := testutil.NewMockRuleRepository()
	now := time.Date(2026, 9, 1, 15, 0, 0, 0, time.UTC)
	svc := NewRuleService(repo, &testutil.FakeClock{Time: now}, testLogger())

	created, err := svc.Create(context.Background(), validRule())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.ID == "" {
		t.Error("Create() did not assign an ID")
	}
	if !created.CreatedAt.Equal(now) {
		t.Errorf("CreatedAt = %v, want %v", created.CreatedAt, now)
	}
	if len(repo.Rules) != 1 {
		t.Errorf("stored rules = %d, want 1", len(repo.Rules))
	}
}

func TestRuleCreateValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*rule.AlertRule)
	}{
		{"missing name", func(r *rule.AlertRule) { r.Name = "" }},
		{"missing template", func(r *rule.AlertRule) { r.MessageTemplate = "" }},
		{"unknown trigger", func(r *rule.AlertRule) { r.TriggerType = "bogus" }},
		{"unknown priority", func(r *rule.AlertRule) { r.Priority = "urgent" }},
		{"no channels", func(r *rule.AlertRule) { r.Channels = nil }},
		{"unknown channel", func(r *rule.AlertRule) { r.Channels = []string{"fax"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := testutil.NewMockRuleRepository()
			svc := NewRuleService(repo, &testutil.FakeClock{Time: time.Now()}, testLogger())

			r := validRule()
			tt.mutate(r)
			if _, err := svc.Create(context.Background(), r); err == nil {
				t.Error("Create() error = nil, want validation error")
			}
			if len(repo.Rules) != 0 {
				t.Error("invalid rule was stored")
			}
		})
	}
}

func TestRuleUpdatePreservesCreatedAt(t *testing.T) {
	repo := testutil.NewMockRuleRepository()
	created := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 1, 15, 0, 0, 0, time.UTC)

	existing := validRule()
	existing.ID = "rule-1"
	existing.CreatedAt = created
	repo.Rules = []*rule.AlertRule{existing}

	svc := NewRuleService(repo, &testutil.FakeClock{Time: now}, testLogger())

	update := validRule()
	update.ID = "rule-1"
	update.Threshold = 60

	got, err := svc.Update(context.Background(), update)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want original %v", got.CreatedAt, created)
	}
	if !got.UpdatedAt.Equal(now) {
		t.Errorf("UpdatedAt = %v, want %v", got.UpdatedAt, now)
	}
}
