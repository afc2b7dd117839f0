package engine

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/centerpulse/centerpulse/internal/domain/center"
	"github.com/centerpulse/centerpulse/internal/domain/rule"
	"github.com/centerpulse/centerpulse/internal/metrics"
	"github.com/centerpulse/centerpulse/internal/pkg/logger"
	"github.com/centerpulse/centerpulse/internal/testutil"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Format: "json"})
}

func testCenter() *center.Center {
	return &center.Center{
		ID:               "center-1",
		Name:             "Delhi Central",
		DailySalesTarget: 100,
		Active:           true,
	}
}

func at(hour int) *testutil.FakeClock {
	return &testutil.FakeClock{
		Time: time.Date(2026, 9, 1, hour, 0, 0, 0, time.UTC),
	}
}

func TestEvaluateLowSales(t *testing.T) {
	tests := []struct {
		name      string
		sales     int
		target    int
		threshold float64
		wantFire  bool
	}{
		{"below threshold fires", 40, 100, 50, true},
		{"at threshold does not fire", 50, 100, 50, false},
		{"above threshold does not fire", 80, 100, 50, false},
		{"zero target reads as zero percent", 40, 0, 50, true},
		{"zero target with zero threshold does not fire", 40, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &testutil.MockMetricsProvider{
				Snapshot: &metrics.Snapshot{CenterID: "center-1", SalesCount: tt.sales},
			}
			e := NewEvaluator(provider, at(15), testLogger())

			c := testCenter()
			c.DailySalesTarget = tt.target
			r := &rule.AlertRule{
				ID:              "rule-1",
				Name:            "Low Sales",
				TriggerType:     rule.TriggerLowSales,
				Threshold:       tt.threshold,
				MessageTemplate: "[Center]: [SalesCount]/[Target] ([Percentage]%), [HoursRemaining]h left",
			}

			got, err := e.Evaluate(context.Background(), r, c, time.Now())
			if err != nil {
				t.Fatalf("Evaluate() error = %v", err)
			}
			if (got != nil) != tt.wantFire {
				t.Errorf("Evaluate() fired = %v, want %v", got != nil, tt.wantFire)
			}
		})
	}
}

func TestEvaluateLowSalesMessage(t *testing.T) {
	provider := &testutil.MockMetricsProvider{
		Snapshot: &metrics.Snapshot{CenterID: "center-1", SalesCount: 40},
	}
	// 15:00, so 9 hours remain until 23:59:59
	e := NewEvaluator(provider, at(15), testLogger())

	r := &rule.AlertRule{
		ID:              "rule-1",
		TriggerType:     rule.TriggerLowSales,
		Threshold:       50,
		MessageTemplate: "[Center] is at [Percentage]% ([SalesCount]/[Target]) with [HoursRemaining] hours remaining",
	}

	got, err := e.Evaluate(context.Background(), r, testCenter(), time.Now())
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if got == nil {
		t.Fatal("Evaluate() did not fire")
	}

	want := "Delhi Central is at 40% (40/100) with 9 hours remaining"
	if got.Message != want {
		t.Errorf("message = %q, want %q", got.Message, want)
	}
}

func TestEvaluateZeroSalesNoonGate(t *testing.T) {
	tests := []struct {
		name     string
		sales    int
		hour     int
		wantFire bool
	}{
		{"zero sales before noon does not fire", 0, 11, false},
		{"zero sales at noon fires", 0, 12, true},
		{"zero sales in afternoon fires", 0, 16, true},
		{"nonzero sales after noon does not fire", 3, 16, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &testutil.MockMetricsProvider{
				Snapshot: &metrics.Snapshot{CenterID: "center-1", SalesCount: tt.sales},
			}
			e := NewEvaluator(provider, at(tt.hour), testLogger())

			r := &rule.AlertRule{
				ID:              "rule-1",
				TriggerType:     rule.TriggerZeroSales,
				MessageTemplate: "[Center] has no sales as of [Time]",
			}

			got, err := e.Evaluate(context.Background(), r, testCenter(), time.Now())
			if err != nil {
				t.Fatalf("Evaluate() error = %v", err)
			}
			if (got != nil) != tt.wantFire {
				t.Errorf("Evaluate() fired = %v, want %v", got != nil, tt.wantFire)
			}
			if got != nil && !strings.Contains(got.Message, "12:00") && tt.hour == 12 {
				t.Errorf("message %q missing time token", got.Message)
			}
		})
	}
}

func TestEvaluateHighDQStrict(t *testing.T) {
	tests := []struct {
		name       string
		percentage float64
		threshold  float64
		wantFire   bool
	}{
		{"above threshold fires", 25.2, 25, true},
		{"exactly at threshold does not fire", 25, 25, false},
		{"below threshold does not fire", 20, 25, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &testutil.MockMetricsProvider{
				DQ: &metrics.DQStats{Count: 10, Percentage: tt.percentage, TopIssues: []string{"No consent", "Wrong number"}},
			}
			e := NewEvaluator(provider, at(15), testLogger())

			r := &rule.AlertRule{
				ID:              "rule-1",
				TriggerType:     rule.TriggerHighDQ,
				Threshold:       tt.threshold,
				MessageTemplate: "[Center] DQ at [DQPercentage]% ([DQCount]): [TopIssues]",
			}

			got, err := e.Evaluate(context.Background(), r, testCenter(), time.Now())
			if err != nil {
				t.Fatalf("Evaluate() error = %v", err)
			}
			if (got != nil) != tt.wantFire {
				t.Errorf("Evaluate() fired = %v, want %v", got != nil, tt.wantFire)
			}
			if got != nil && !strings.Contains(got.Message, "No consent, Wrong number") {
				t.Errorf("message %q missing top issues", got.Message)
			}
		})
	}
}

func TestEvaluateHighDQNoIssues(t *testing.T) {
	provider := &testutil.MockMetricsProvider{
		DQ: &metrics.DQStats{Count: 5, Percentage: 30},
	}
	e := NewEvaluator(provider, at(15), testLogger())

	r := &rule.AlertRule{
		ID:              "rule-1",
		TriggerType:     rule.TriggerHighDQ,
		Threshold:       25,
		MessageTemplate: "issues: [TopIssues]",
	}

	got, err := e.Evaluate(context.Background(), r, testCenter(), time.Now())
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if got == nil {
		t.Fatal("Evaluate() did not fire")
	}
	if got.Message != "issues: Unknown" {
		t.Errorf("message = %q, want %q", got.Message, "issues: Unknown")
	}
}

func TestEvaluateLowApproval(t *testing.T) {
	tests := []struct {
		name      string
		ratio     float64
		threshold float64
		wantFire  bool
	}{
		{"below threshold fires", 45, 60, true},
		{"at threshold does not fire", 60, 60, false},
		{"zero transfers reads as zero ratio", 0, 60, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &testutil.MockMetricsProvider{
				Approval: &metrics.ApprovalStats{Ratio: tt.ratio, Submissions: 9, Underwriting: 4},
			}
			e := NewEvaluator(provider, at(15), testLogger())

			r := &rule.AlertRule{
				ID:              "rule-1",
				TriggerType:     rule.TriggerLowApproval,
				Threshold:       tt.threshold,
				MessageTemplate: "[Center] approval [ApprovalRatio]% ([SubmissionCount] submitted, [UWCount] in UW)",
			}

			got, err := e.Evaluate(context.Background(), r, testCenter(), time.Now())
			if err != nil {
				t.Fatalf("Evaluate() error = %v", err)
			}
			if (got != nil) != tt.wantFire {
				t.Errorf("Evaluate() fired = %v, want %v", got != nil, tt.wantFire)
			}
		})
	}
}

func TestEvaluateMilestoneFirstMatchWins(t *testing.T) {
	tests := []struct {
		name          string
		sales         int
		wantFire      bool
		wantMilestone string
	}{
		{"below first rung does not fire", 70, false, ""},
		{"inside 75 band fires 75", 77, true, "75%"},
		{"exactly 100 fires 100", 100, true, "100%"},
		{"inside 100 band fires 100", 104, true, "100%"},
		{"between bands does not fire", 110, false, ""},
		{"inside 125 band fires 125", 126, true, "125%"},
		{"inside 150 band fires 150", 152, true, "150%"},
		{"past last band does not fire", 160, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &testutil.MockMetricsProvider{
				Snapshot: &metrics.Snapshot{CenterID: "center-1", SalesCount: tt.sales},
			}
			e := NewEvaluator(provider, at(15), testLogger())

			r := &rule.AlertRule{
				ID:              "rule-1",
				TriggerType:     rule.TriggerMilestone,
				MessageTemplate: "[Center] hit [Milestone] ([SalesCount]/[Target])",
			}

			got, err := e.Evaluate(context.Background(), r, testCenter(), time.Now())
			if err != nil {
				t.Fatalf("Evaluate() error = %v", err)
			}
			if (got != nil) != tt.wantFire {
				t.Fatalf("Evaluate() fired = %v, want %v", got != nil, tt.wantFire)
			}
			if got != nil && !strings.Contains(got.Message, tt.wantMilestone) {
				t.Errorf("message %q missing milestone %q", got.Message, tt.wantMilestone)
			}
		})
	}
}

func TestEvaluateMilestoneZeroTarget(t *testing.T) {
	provider := &testutil.MockMetricsProvider{
		Snapshot: &metrics.Snapshot{CenterID: "center-1", SalesCount: 100},
	}
	e := NewEvaluator(provider, at(15), testLogger())

	c := testCenter()
	c.DailySalesTarget = 0
	r := &rule.AlertRule{
		ID:              "rule-1",
		TriggerType:     rule.TriggerMilestone,
		MessageTemplate: "[Milestone]",
	}

	got, err := e.Evaluate(context.Background(), r, c, time.Now())
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if got != nil {
		t.Errorf("Evaluate() fired for zero target, want no fire")
	}
}

func TestEvaluateBelowThresholdDuration(t *testing.T) {
	// At 12:00 with a target of 96, the proportional target is 48.
	tests := []struct {
		name      string
		sales     int
		threshold float64
		wantFire  bool
	}{
		{"below pace fires", 30, 80, true}, // pace = 48 * 0.8 = 38.4
		{"on pace does not fire", 40, 80, false},
		{"full pace not required", 45, 100, true}, // pace = 48
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &testutil.MockMetricsProvider{
				Snapshot: &metrics.Snapshot{CenterID: "center-1", SalesCount: tt.sales},
			}
			e := NewEvaluator(provider, at(12), testLogger())

			c := testCenter()
			c.DailySalesTarget = 96
			r := &rule.AlertRule{
				ID:              "rule-1",
				TriggerType:     rule.TriggerBelowThresholdDuration,
				Threshold:       tt.threshold,
				MessageTemplate: "[Center] behind pace after [Hours] hours ([SalesCount]/[Target])",
			}

			got, err := e.Evaluate(context.Background(), r, c, time.Now())
			if err != nil {
				t.Fatalf("Evaluate() error = %v", err)
			}
			if (got != nil) != tt.wantFire {
				t.Errorf("Evaluate() fired = %v, want %v", got != nil, tt.wantFire)
			}
		})
	}
}

func TestEvaluateUnknownTrigger(t *testing.T) {
	e := NewEvaluator(&testutil.MockMetricsProvider{}, at(12), testLogger())

	r := &rule.AlertRule{ID: "rule-1", TriggerType: "bogus"}
	if _, err := e.Evaluate(context.Background(), r, testCenter(), time.Now()); err == nil {
		t.Error("Evaluate() error = nil, want error for unknown trigger")
	}
}

func TestHoursRemaining(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"mid-afternoon", time.Date(2026, 9, 1, 15, 0, 0, 0, time.UTC), 9},
		{"partial hour rounds up", time.Date(2026, 9, 1, 15, 30, 0, 0, time.UTC), 9},
		{"last second floors at zero", time.Date(2026, 9, 1, 23, 59, 59, 0, time.UTC), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := hoursRemaining(tt.now); got != tt.want {
				t.Errorf("hoursRemaining(%v) = %d, want %d", tt.now, got, tt.want)
			}
		})
	}
}
