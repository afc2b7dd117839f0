package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/centerpulse/centerpulse/internal/domain/sentalert"
	"github.com/centerpulse/centerpulse/internal/testutil"
)

func TestGateShouldSuppress(t *testing.T) {
	base := time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		lastSent time.Time
		now      time.Time
		cooldown time.Duration
		want     bool
	}{
		{
			name:     "recent alert suppresses",
			lastSent: base,
			now:      base.Add(30 * time.Minute),
			cooldown: time.Hour,
			want:     true,
		},
		{
			name:     "alert outside window does not suppress",
			lastSent: base,
			now:      base.Add(61 * time.Minute),
			cooldown: time.Hour,
			want:     false,
		},
		{
			name:     "boundary instant still suppresses",
			lastSent: base,
			now:      base.Add(time.Hour),
			cooldown: time.Hour,
			want:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := testutil.NewMockSentAlertRepository()
			ledger.Alerts = []*sentalert.SentAlert{
				{ID: "a1", RuleID: "rule-1", CenterID: "center-1", SentAt: tt.lastSent},
			}
			clock := &testutil.FakeClock{Time: tt.now}
			g := NewGate(ledger, tt.cooldown, clock)

			got, err := g.ShouldSuppress(context.Background(), "rule-1", "center-1")
			if err != nil {
				t.Fatalf("ShouldSuppress() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ShouldSuppress() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGateDifferentPairNotSuppressed(t *testing.T) {
	base := time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC)
	ledger := testutil.NewMockSentAlertRepository()
	ledger.Alerts = []*sentalert.SentAlert{
		{ID: "a1", RuleID: "rule-1", CenterID: "center-1", SentAt: base},
	}
	g := NewGate(ledger, time.Hour, &testutil.FakeClock{Time: base.Add(time.Minute)})

	for _, pair := range []struct{ ruleID, centerID string }{
		{"rule-1", "center-2"},
		{"rule-2", "center-1"},
	} {
		got, err := g.ShouldSuppress(context.Background(), pair.ruleID, pair.centerID)
		if err != nil {
			t.Fatalf("ShouldSuppress() error = %v", err)
		}
		if got {
			t.Errorf("ShouldSuppress(%s, %s) = true, want false", pair.ruleID, pair.centerID)
		}
	}
}

func TestGateLookupErrorPropagates(t *testing.T) {
	ledger := testutil.NewMockSentAlertRepository()
	ledger.ExistsErr = errors.New("db down")
	g := NewGate(ledger, time.Hour, &testutil.FakeClock{Time: time.Now()})

	if _, err := g.ShouldSuppress(context.Background(), "rule-1", "center-1"); err == nil {
		t.Error("ShouldSuppress() error = nil, want lookup error")
	}
}
