package engine

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/centerpulse/centerpulse/internal/domain/center"
	"github.com/centerpulse/centerpulse/internal/domain/rule"
	"github.com/centerpulse/centerpulse/internal/metrics"
	"github.com/centerpulse/centerpulse/internal/pkg/logger"
)

// milestoneLadder lists the achievement rungs checked in order. A rung
// fires only while the percentage sits inside its 5-point band, so each
// pass reports at most one rung.
var milestoneLadder = []int{75, 100, 125, 150}

// milestoneBand is the width of the band above each rung
const milestoneBand = 5

// PendingAlert is a fired rule evaluation awaiting dedup and dispatch
type PendingAlert struct {
	Rule     *rule.AlertRule
	Center   *center.Center
	Message  string
	Metadata map[string]interface{}
}

// Evaluator checks alert rules against a center's daily metrics.
// Each trigger type is an independent check; evaluation has no side
// effects beyond reading the metrics provider.
type Evaluator struct {
	provider metrics.Provider
	clock    Clock
	log      *logger.Logger
}

// NewEvaluator creates a rule evaluator
func NewEvaluator(provider metrics.Provider, clock Clock, log *logger.Logger) *Evaluator {
	return &Evaluator{
		provider: provider,
		clock:    clock,
		log:      log,
	}
}

// Evaluate runs the rule's trigger check for one center and date.
// Returns nil when the rule does not fire.
func (e *Evaluator) Evaluate(ctx context.Context, r *rule.AlertRule, c *center.Center, date time.Time) (*PendingAlert, error) {
	switch r.TriggerType {
	case rule.TriggerLowSales:
		return e.checkLowSales(ctx, r, c, date)
	case rule.TriggerZeroSales:
		return e.checkZeroSales(ctx, r, c, date)
	case rule.TriggerHighDQ:
		return e.checkHighDQ(ctx, r, c, date)
	case rule.TriggerLowApproval:
		return e.checkLowApproval(ctx, r, c, date)
	case rule.TriggerMilestone:
		return e.checkMilestone(ctx, r, c, date)
	case rule.TriggerBelowThresholdDuration:
		return e.checkBelowThresholdDuration(ctx, r, c, date)
	default:
		return nil, fmt.Errorf("unknown trigger type %q", r.TriggerType)
	}
}

// checkLowSales fires when the day's sales sit below the threshold
// percentage of the center's daily target.
func (e *Evaluator) checkLowSales(ctx context.Context, r *rule.AlertRule, c *center.Center, date time.Time) (*PendingAlert, error) {
	snap, err := e.provider.SalesSnapshot(ctx, c.ID, date)
	if err != nil {
		return nil, err
	}

	pct := targetPercentage(snap.SalesCount, c.DailySalesTarget)
	if pct >= r.Threshold {
		return nil, nil
	}

	hoursLeft := hoursRemaining(e.clock.Now())
	msg := BuildMessage(r.MessageTemplate, []TokenValue{
		{"[Center]", c.Name},
		{"[SalesCount]", strconv.Itoa(snap.SalesCount)},
		{"[Target]", strconv.Itoa(c.DailySalesTarget)},
		{"[HoursRemaining]", strconv.Itoa(hoursLeft)},
		{"[Percentage]", roundPct(pct)},
	})

	return &PendingAlert{
		Rule:    r,
		Center:  c,
		Message: msg,
		Metadata: map[string]interface{}{
			"sales_count":     snap.SalesCount,
			"target":          c.DailySalesTarget,
			"percentage":      pct,
			"hours_remaining": hoursLeft,
		},
	}, nil
}

// checkZeroSales fires when the center has no sales and the local hour
// has reached noon. Before noon a zero is not yet a problem.
func (e *Evaluator) checkZeroSales(ctx context.Context, r *rule.AlertRule, c *center.Center, date time.Time) (*PendingAlert, error) {
	snap, err := e.provider.SalesSnapshot(ctx, c.ID, date)
	if err != nil {
		return nil, err
	}

	now := e.clock.Now()
	if snap.SalesCount != 0 || now.Hour() < 12 {
		return nil, nil
	}

	msg := BuildMessage(r.MessageTemplate, []TokenValue{
		{"[Center]", c.Name},
		{"[Time]", fmt.Sprintf("%02d:00", now.Hour())},
	})

	return &PendingAlert{
		Rule:    r,
		Center:  c,
		Message: msg,
		Metadata: map[string]interface{}{
			"sales_count": 0,
			"hour":        now.Hour(),
		},
	}, nil
}

// checkHighDQ fires when the disqualification percentage strictly
// exceeds the threshold.
func (e *Evaluator) checkHighDQ(ctx context.Context, r *rule.AlertRule, c *center.Center, date time.Time) (*PendingAlert, error) {
	dq, err := e.provider.DQStats(ctx, c.ID, date)
	if err != nil {
		return nil, err
	}

	if dq.Percentage <= r.Threshold {
		return nil, nil
	}

	msg := BuildMessage(r.MessageTemplate, []TokenValue{
		{"[Center]", c.Name},
		{"[DQPercentage]", roundPct(dq.Percentage)},
		{"[DQCount]", strconv.Itoa(dq.Count)},
		{"[TopIssues]", topIssues(dq.TopIssues)},
	})

	return &PendingAlert{
		Rule:    r,
		Center:  c,
		Message: msg,
		Metadata: map[string]interface{}{
			"dq_count":      dq.Count,
			"dq_percentage": dq.Percentage,
			"top_issues":    dq.TopIssues,
		},
	}, nil
}

// checkLowApproval fires when the submissions-to-transfers ratio falls
// below the threshold.
func (e *Evaluator) checkLowApproval(ctx context.Context, r *rule.AlertRule, c *center.Center, date time.Time) (*PendingAlert, error) {
	ap, err := e.provider.ApprovalStats(ctx, c.ID, date)
	if err != nil {
		return nil, err
	}

	if ap.Ratio >= r.Threshold {
		return nil, nil
	}

	msg := BuildMessage(r.MessageTemplate, []TokenValue{
		{"[Center]", c.Name},
		{"[ApprovalRatio]", roundPct(ap.Ratio)},
		{"[SubmissionCount]", strconv.Itoa(ap.Submissions)},
		{"[UWCount]", strconv.Itoa(ap.Underwriting)},
	})

	return &PendingAlert{
		Rule:    r,
		Center:  c,
		Message: msg,
		Metadata: map[string]interface{}{
			"approval_ratio":   ap.Ratio,
			"submission_count": ap.Submissions,
			"uw_count":         ap.Underwriting,
			"transfer_count":   ap.Transfers,
		},
	}, nil
}

// checkMilestone fires for the first ladder rung whose band contains
// the current target percentage.
func (e *Evaluator) checkMilestone(ctx context.Context, r *rule.AlertRule, c *center.Center, date time.Time) (*PendingAlert, error) {
	snap, err := e.provider.SalesSnapshot(ctx, c.ID, date)
	if err != nil {
		return nil, err
	}

	pct := targetPercentage(snap.SalesCount, c.DailySalesTarget)
	for _, m := range milestoneLadder {
		if pct >= float64(m) && pct < float64(m+milestoneBand) {
			msg := BuildMessage(r.MessageTemplate, []TokenValue{
				{"[Center]", c.Name},
				{"[Milestone]", fmt.Sprintf("%d%%", m)},
				{"[SalesCount]", strconv.Itoa(snap.SalesCount)},
				{"[Target]", strconv.Itoa(c.DailySalesTarget)},
			})

			return &PendingAlert{
				Rule:    r,
				Center:  c,
				Message: msg,
				Metadata: map[string]interface{}{
					"milestone":   m,
					"sales_count": snap.SalesCount,
					"target":      c.DailySalesTarget,
					"percentage":  pct,
				},
			}, nil
		}
	}

	return nil, nil
}

// checkBelowThresholdDuration fires when sales lag the proportional
// intraday target: by hour h the center should have target/24*h sales,
// and the rule fires below threshold percent of that pace.
func (e *Evaluator) checkBelowThresholdDuration(ctx context.Context, r *rule.AlertRule, c *center.Center, date time.Time) (*PendingAlert, error) {
	snap, err := e.provider.SalesSnapshot(ctx, c.ID, date)
	if err != nil {
		return nil, err
	}

	hour := e.clock.Now().Hour()
	proportional := float64(c.DailySalesTarget) / 24 * float64(hour)
	if float64(snap.SalesCount) >= proportional*(r.Threshold/100) {
		return nil, nil
	}

	msg := BuildMessage(r.MessageTemplate, []TokenValue{
		{"[Center]", c.Name},
		{"[Hours]", strconv.Itoa(hour)},
		{"[SalesCount]", strconv.Itoa(snap.SalesCount)},
		{"[Target]", strconv.Itoa(c.DailySalesTarget)},
	})

	return &PendingAlert{
		Rule:    r,
		Center:  c,
		Message: msg,
		Metadata: map[string]interface{}{
			"hours":               hour,
			"sales_count":         snap.SalesCount,
			"target":              c.DailySalesTarget,
			"proportional_target": proportional,
		},
	}, nil
}

// targetPercentage guards the zero-target case: a center with no daily
// target has no achievable percentage, so it reads as zero.
func targetPercentage(sales, target int) float64 {
	if target <= 0 {
		return 0
	}
	return float64(sales) / float64(target) * 100
}

// hoursRemaining counts whole hours until end of day (23:59:59),
// rounded up and floored at zero.
func hoursRemaining(now time.Time) int {
	endOfDay := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())
	h := int(math.Ceil(endOfDay.Sub(now).Hours()))
	if h < 0 {
		return 0
	}
	return h
}

// roundPct formats a percentage rounded to the nearest whole number
func roundPct(pct float64) string {
	return strconv.Itoa(int(math.Round(pct)))
}

// topIssues joins up to three DQ categories for display
func topIssues(issues []string) string {
	if len(issues) == 0 {
		return "Unknown"
	}
	if len(issues) > 3 {
		issues = issues[:3]
	}
	return strings.Join(issues, ", ")
}
