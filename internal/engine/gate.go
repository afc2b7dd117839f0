package engine

import (
	"context"
	"time"

	"github.com/centerpulse/centerpulse/internal/domain/sentalert"
)

// Gate suppresses repeat alerts for the same (rule, center) pair within
// a trailing cooldown window, using the sent alert ledger as its memory.
type Gate struct {
	ledger   sentalert.Repository
	cooldown time.Duration
	clock    Clock
}

// NewGate creates a dedup gate with the given cooldown window
func NewGate(ledger sentalert.Repository, cooldown time.Duration, clock Clock) *Gate {
	return &Gate{
		ledger:   ledger,
		cooldown: cooldown,
		clock:    clock,
	}
}

// ShouldSuppress reports whether an alert for the pair fired within the
// cooldown window. A lookup error propagates so the caller can decide;
// it never silently suppresses.
func (g *Gate) ShouldSuppress(ctx context.Context, ruleID, centerID string) (bool, error) {
	since := g.clock.Now().Add(-g.cooldown)
	return g.ledger.ExistsSince(ctx, ruleID, centerID, since)
}

// Cooldown returns the configured window
func (g *Gate) Cooldown() time.Duration {
	return g.cooldown
}
