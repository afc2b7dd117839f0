package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/centerpulse/centerpulse/internal/domain/center"
	"github.com/centerpulse/centerpulse/internal/domain/rule"
	"github.com/centerpulse/centerpulse/internal/domain/user"
	"github.com/centerpulse/centerpulse/internal/metrics"
	"github.com/centerpulse/centerpulse/internal/notify"
	"github.com/centerpulse/centerpulse/internal/testutil"
)

type orchestratorHarness struct {
	centers    *testutil.MockCenterRepository
	rules      *testutil.MockRuleRepository
	users      *testutil.MockUserRepository
	ledger     *testutil.MockSentAlertRepository
	provider   *testutil.MockMetricsProvider
	dispatcher *testutil.CaptureDispatcher
	clock      *testutil.FakeClock
	orch       *Orchestrator
}

func newHarness(hour int) *orchestratorHarness {
	h := &orchestratorHarness{
		centers:    testutil.NewMockCenterRepository(),
		rules:      testutil.NewMockRuleRepository(),
		users:      testutil.NewMockUserRepository(),
		ledger:     testutil.NewMockSentAlertRepository(),
		provider:   &testutil.MockMetricsProvider{},
		dispatcher: &testutil.CaptureDispatcher{},
		clock:      &testutil.FakeClock{Time: time.Date(2026, 9, 1, hour, 0, 0, 0, time.UTC)},
	}

	log := testLogger()
	evaluator := NewEvaluator(h.provider, h.clock, log)
	gate := NewGate(h.ledger, time.Hour, h.clock)
	h.orch = NewOrchestrator(
		h.centers, h.rules, h.users, h.ledger,
		evaluator, gate, h.dispatcher, h.clock, log,
		"http://localhost:3000/dashboard",
	)
	return h
}

func lowSalesRule() *rule.AlertRule {
	return &rule.AlertRule{
		ID:              "rule-1",
		Name:            "Low Sales",
		TriggerType:     rule.TriggerLowSales,
		Threshold:       50,
		Priority:        rule.PriorityHigh,
		Channels:        []string{rule.ChannelSlack, rule.ChannelEmail},
		RecipientRoles:  []string{user.RoleManager},
		MessageTemplate: "[Center] at [Percentage]%",
		Enabled:         true,
	}
}

func activeCenter() *center.Center {
	return &center.Center{
		ID:               "center-1",
		Name:             "Delhi Central",
		DailySalesTarget: 100,
		Active:           true,
	}
}

func TestEvaluateAllCentersFiresAndRecords(t *testing.T) {
	h := newHarness(15)
	h.centers.Centers = []*center.Center{activeCenter()}
	h.rules.Rules = []*rule.AlertRule{lowSalesRule()}
	h.users.Users = []*user.User{
		{ID: "u1", Name: "Priya", Email: "priya@example.com", Role: user.RoleManager, Active: true},
	}
	h.provider.Snapshot = &metrics.Snapshot{CenterID: "center-1", SalesCount: 40}

	result, err := h.orch.EvaluateAllCenters(context.Background(), h.clock.Time)
	if err != nil {
		t.Fatalf("EvaluateAllCenters() error = %v", err)
	}
	if result.Fired != 1 {
		t.Fatalf("Fired = %d, want 1", result.Fired)
	}
	if len(h.ledger.Alerts) != 1 {
		t.Fatalf("ledger rows = %d, want 1", len(h.ledger.Alerts))
	}
	if len(h.dispatcher.Calls) != 1 {
		t.Fatalf("dispatch calls = %d, want 1", len(h.dispatcher.Calls))
	}

	row := h.ledger.Alerts[0]
	if row.RuleID != "rule-1" || row.CenterID != "center-1" {
		t.Errorf("ledger row pair = (%s, %s), want (rule-1, center-1)", row.RuleID, row.CenterID)
	}
	if len(row.Recipients) != 1 || row.Recipients[0] != "priya@example.com" {
		t.Errorf("recipients = %v, want resolved manager email", row.Recipients)
	}

	call := h.dispatcher.Calls[0]
	if call.Message.Body != "Delhi Central at 40%" {
		t.Errorf("dispatched body = %q", call.Message.Body)
	}
	if len(call.Message.Recipients) != 1 || call.Message.Recipients[0].Email != "priya@example.com" {
		t.Errorf("dispatched recipients = %v", call.Message.Recipients)
	}
}

func TestEvaluateAllCentersDedupWithinCooldown(t *testing.T) {
	h := newHarness(15)
	h.centers.Centers = []*center.Center{activeCenter()}
	h.rules.Rules = []*rule.AlertRule{lowSalesRule()}
	h.provider.Snapshot = &metrics.Snapshot{CenterID: "center-1", SalesCount: 40}

	// First sweep fires.
	if _, err := h.orch.EvaluateAllCenters(context.Background(), h.clock.Time); err != nil {
		t.Fatalf("first sweep error = %v", err)
	}
	// Second sweep a few minutes later is suppressed.
	h.clock.Advance(5 * time.Minute)
	result, err := h.orch.EvaluateAllCenters(context.Background(), h.clock.Time)
	if err != nil {
		t.Fatalf("second sweep error = %v", err)
	}

	if result.Suppressed != 1 {
		t.Errorf("Suppressed = %d, want 1", result.Suppressed)
	}
	if len(h.ledger.Alerts) != 1 {
		t.Errorf("ledger rows = %d, want 1 (no duplicate)", len(h.ledger.Alerts))
	}
	if len(h.dispatcher.Calls) != 1 {
		t.Errorf("dispatch calls = %d, want 1 (no duplicate)", len(h.dispatcher.Calls))
	}
}

func TestEvaluateAllCentersFiresAgainAfterCooldown(t *testing.T) {
	h := newHarness(14)
	h.centers.Centers = []*center.Center{activeCenter()}
	h.rules.Rules = []*rule.AlertRule{lowSalesRule()}
	h.provider.Snapshot = &metrics.Snapshot{CenterID: "center-1", SalesCount: 40}

	if _, err := h.orch.EvaluateAllCenters(context.Background(), h.clock.Time); err != nil {
		t.Fatalf("first sweep error = %v", err)
	}
	h.clock.Advance(61 * time.Minute)
	result, err := h.orch.EvaluateAllCenters(context.Background(), h.clock.Time)
	if err != nil {
		t.Fatalf("second sweep error = %v", err)
	}

	if result.Fired != 1 {
		t.Errorf("Fired = %d, want 1 after cooldown elapsed", result.Fired)
	}
	if len(h.ledger.Alerts) != 2 {
		t.Errorf("ledger rows = %d, want 2", len(h.ledger.Alerts))
	}
}

func TestChannelsSentRecordsIntent(t *testing.T) {
	h := newHarness(15)
	h.centers.Centers = []*center.Center{activeCenter()}
	h.rules.Rules = []*rule.AlertRule{lowSalesRule()}
	h.provider.Snapshot = &metrics.Snapshot{CenterID: "center-1", SalesCount: 40}
	// Every channel fails at delivery time.
	h.dispatcher.Results = []notify.DeliveryResult{
		{Channel: rule.ChannelSlack, Success: false, Error: "boom"},
		{Channel: rule.ChannelEmail, Success: false, Error: "boom"},
	}

	if _, err := h.orch.EvaluateAllCenters(context.Background(), h.clock.Time); err != nil {
		t.Fatalf("EvaluateAllCenters() error = %v", err)
	}
	if len(h.ledger.Alerts) != 1 {
		t.Fatalf("ledger rows = %d, want 1", len(h.ledger.Alerts))
	}

	got := h.ledger.Alerts[0].ChannelsSent
	want := []string{rule.ChannelSlack, rule.ChannelEmail}
	if len(got) != len(want) {
		t.Fatalf("ChannelsSent = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ChannelsSent[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestLedgerInsertFailureAbortsDispatch(t *testing.T) {
	h := newHarness(15)
	h.centers.Centers = []*center.Center{activeCenter()}
	h.rules.Rules = []*rule.AlertRule{lowSalesRule()}
	h.provider.Snapshot = &metrics.Snapshot{CenterID: "center-1", SalesCount: 40}
	h.ledger.InsertErr = errors.New("disk full")

	result, err := h.orch.EvaluateAllCenters(context.Background(), h.clock.Time)
	if err != nil {
		t.Fatalf("EvaluateAllCenters() error = %v", err)
	}
	if result.Errors != 1 {
		t.Errorf("Errors = %d, want 1", result.Errors)
	}
	if len(h.dispatcher.Calls) != 0 {
		t.Errorf("dispatch calls = %d, want 0 when insert fails", len(h.dispatcher.Calls))
	}
}

func TestProviderErrorDoesNotAbortSweep(t *testing.T) {
	h := newHarness(15)
	h.centers.Centers = []*center.Center{
		activeCenter(),
		{ID: "center-2", Name: "Mumbai West", DailySalesTarget: 100, Active: true},
	}
	h.rules.Rules = []*rule.AlertRule{lowSalesRule()}
	h.provider.Err = errors.New("metrics unavailable")

	result, err := h.orch.EvaluateAllCenters(context.Background(), h.clock.Time)
	if err != nil {
		t.Fatalf("EvaluateAllCenters() error = %v", err)
	}
	if result.Errors != 2 {
		t.Errorf("Errors = %d, want 2 (one per center, sweep continues)", result.Errors)
	}
	if result.Fired != 0 {
		t.Errorf("Fired = %d, want 0", result.Fired)
	}
}

func TestQuietHours(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		hour     int
		wantSkip bool
	}{
		{"inside plain window", "09:00", "17:00", 12, true},
		{"outside plain window", "09:00", "17:00", 18, false},
		{"inclusive start", "12:00", "17:00", 12, true},
		{"overnight window late evening", "22:00", "06:00", 23, true},
		{"overnight window early morning", "22:00", "06:00", 5, true},
		{"overnight window midday", "22:00", "06:00", 13, false},
		{"no window configured", "", "", 13, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(tt.hour)
			h.centers.Centers = []*center.Center{activeCenter()}
			r := lowSalesRule()
			r.QuietHoursStart = tt.start
			r.QuietHoursEnd = tt.end
			h.rules.Rules = []*rule.AlertRule{r}
			h.provider.Snapshot = &metrics.Snapshot{CenterID: "center-1", SalesCount: 40}

			result, err := h.orch.EvaluateAllCenters(context.Background(), h.clock.Time)
			if err != nil {
				t.Fatalf("EvaluateAllCenters() error = %v", err)
			}
			if (result.Skipped == 1) != tt.wantSkip {
				t.Errorf("Skipped = %d, wantSkip %v", result.Skipped, tt.wantSkip)
			}
		})
	}
}

func TestCheckSingleCenter(t *testing.T) {
	h := newHarness(15)
	h.centers.Centers = []*center.Center{
		activeCenter(),
		{ID: "center-2", Name: "Mumbai West", DailySalesTarget: 100, Active: true},
	}
	h.rules.Rules = []*rule.AlertRule{lowSalesRule()}
	h.provider.Snapshot = &metrics.Snapshot{CenterID: "center-1", SalesCount: 40}

	result, err := h.orch.CheckSingleCenter(context.Background(), "center-1", h.clock.Time)
	if err != nil {
		t.Fatalf("CheckSingleCenter() error = %v", err)
	}
	if result.CentersChecked != 1 {
		t.Errorf("CentersChecked = %d, want 1", result.CentersChecked)
	}
	if result.Fired != 1 {
		t.Errorf("Fired = %d, want 1", result.Fired)
	}
	if len(h.ledger.Alerts) != 1 || h.ledger.Alerts[0].CenterID != "center-1" {
		t.Errorf("ledger rows = %v, want single row for center-1", h.ledger.Alerts)
	}
}
