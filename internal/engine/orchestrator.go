package engine

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/centerpulse/centerpulse/internal/domain/center"
	"github.com/centerpulse/centerpulse/internal/domain/rule"
	"github.com/centerpulse/centerpulse/internal/domain/sentalert"
	"github.com/centerpulse/centerpulse/internal/domain/user"
	"github.com/centerpulse/centerpulse/internal/notify"
	"github.com/centerpulse/centerpulse/internal/pkg/logger"
	pkgmetrics "github.com/centerpulse/centerpulse/internal/pkg/metrics"
)

// SweepResult summarizes one evaluation pass
type SweepResult struct {
	CentersChecked int `json:"centers_checked"`
	RulesChecked   int `json:"rules_checked"`
	Evaluated      int `json:"evaluated"`
	Fired          int `json:"fired"`
	Suppressed     int `json:"suppressed"`
	Skipped        int `json:"skipped"`
	Errors         int `json:"errors"`
}

// Orchestrator drives full evaluation sweeps: it walks every
// (center, rule) pair, runs the evaluator, and pushes fired alerts
// through the dedup gate, the ledger, and the dispatcher. A failure on
// one pair is logged and never aborts the rest of the sweep.
type Orchestrator struct {
	centers      center.Repository
	rules        rule.Repository
	users        user.Repository
	ledger       sentalert.Repository
	evaluator    *Evaluator
	gate         *Gate
	dispatcher   notify.Dispatcher
	clock        Clock
	log          *logger.Logger
	dashboardURL string
}

// NewOrchestrator wires the evaluation pipeline together
func NewOrchestrator(
	centers center.Repository,
	rules rule.Repository,
	users user.Repository,
	ledger sentalert.Repository,
	evaluator *Evaluator,
	gate *Gate,
	dispatcher notify.Dispatcher,
	clock Clock,
	log *logger.Logger,
	dashboardURL string,
) *Orchestrator {
	return &Orchestrator{
		centers:      centers,
		rules:        rules,
		users:        users,
		ledger:       ledger,
		evaluator:    evaluator,
		gate:         gate,
		dispatcher:   dispatcher,
		clock:        clock,
		log:          log,
		dashboardURL: dashboardURL,
	}
}

// EvaluateAllCenters runs every enabled rule against every active
// center for the given date
func (o *Orchestrator) EvaluateAllCenters(ctx context.Context, date time.Time) (*SweepResult, error) {
	start := time.Now()

	centers, err := o.centers.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active centers: %w", err)
	}
	rules, err := o.rules.ListEnabled(ctx)
	if err != nil {
		return nil, fmt.Errorf("list enabled rules: %w", err)
	}

	result := &SweepResult{
		CentersChecked: len(centers),
		RulesChecked:   len(rules),
	}
	for _, c := range centers {
		for _, r := range rules {
			o.processPair(ctx, r, c, date, result)
		}
	}

	pkgmetrics.RecordSweepDuration(time.Since(start))
	o.log.WithFields(map[string]interface{}{
		"centers":    result.CentersChecked,
		"rules":      result.RulesChecked,
		"fired":      result.Fired,
		"suppressed": result.Suppressed,
		"errors":     result.Errors,
	}).Info("alert evaluation sweep completed")

	return result, nil
}

// CheckSingleCenter runs every enabled rule against one center
func (o *Orchestrator) CheckSingleCenter(ctx context.Context, centerID string, date time.Time) (*SweepResult, error) {
	c, err := o.centers.GetByID(ctx, centerID)
	if err != nil {
		return nil, fmt.Errorf("get center %s: %w", centerID, err)
	}
	rules, err := o.rules.ListEnabled(ctx)
	if err != nil {
		return nil, fmt.Errorf("list enabled rules: %w", err)
	}

	result := &SweepResult{
		CentersChecked: 1,
		RulesChecked:   len(rules),
	}
	for _, r := range rules {
		o.processPair(ctx, r, c, date, result)
	}

	return result, nil
}

// processPair evaluates one rule against one center and, when the rule
// fires, runs the trigger path: gate, recipients, ledger insert,
// dispatch. The ledger row is written before any delivery is attempted
// so a crash mid-dispatch can only lose sends, never double-fire.
func (o *Orchestrator) processPair(ctx context.Context, r *rule.AlertRule, c *center.Center, date time.Time, result *SweepResult) {
	log := o.log.WithFields(map[string]interface{}{
		"rule_id":   r.ID,
		"center_id": c.ID,
		"trigger":   r.TriggerType,
	})

	if inQuietHours(r, o.clock.Now()) {
		result.Skipped++
		return
	}
	result.Evaluated++

	pending, err := o.evaluator.Evaluate(ctx, r, c, date)
	if err != nil {
		log.ErrorWithErr(err, "rule evaluation failed")
		pkgmetrics.RecordEvaluation(r.TriggerType, "error")
		result.Errors++
		return
	}
	if pending == nil {
		pkgmetrics.RecordEvaluation(r.TriggerType, "no_fire")
		return
	}
	pkgmetrics.RecordEvaluation(r.TriggerType, "fired")

	suppress, err := o.gate.ShouldSuppress(ctx, r.ID, c.ID)
	if err != nil {
		log.ErrorWithErr(err, "cooldown lookup failed")
		result.Errors++
		return
	}
	if suppress {
		log.Debug("alert suppressed by cooldown window")
		pkgmetrics.RecordAlertSuppressed(r.TriggerType)
		result.Suppressed++
		return
	}

	recipients, err := o.users.ListByRoles(ctx, r.RecipientRoles)
	if err != nil {
		log.ErrorWithErr(err, "recipient resolution failed")
		result.Errors++
		return
	}

	emails := make([]string, 0, len(recipients))
	targets := make([]notify.Recipient, 0, len(recipients))
	for _, u := range recipients {
		emails = append(emails, u.Email)
		targets = append(targets, notify.Recipient{
			Name:      u.Name,
			Email:     u.Email,
			Phone:     u.Phone,
			PushToken: u.PushToken,
		})
	}

	record := &sentalert.SentAlert{
		ID:           uuid.NewString(),
		RuleID:       r.ID,
		CenterID:     c.ID,
		AlertType:    r.TriggerType,
		Message:      pending.Message,
		ChannelsSent: r.Channels,
		Recipients:   emails,
		SentAt:       o.clock.Now(),
		Metadata:     pending.Metadata,
	}
	if err := o.ledger.Insert(ctx, record); err != nil {
		// No ledger row means no dedup memory. Delivering anyway
		// would allow duplicate alerts, so the dispatch is aborted.
		log.ErrorWithErr(err, "ledger insert failed, aborting dispatch")
		result.Errors++
		return
	}

	results := o.dispatcher.Dispatch(ctx, r.Channels, notify.Message{
		Title:        r.Name,
		Body:         pending.Message,
		TriggerType:  r.TriggerType,
		Priority:     r.Priority,
		CenterName:   c.Name,
		Recipients:   targets,
		DashboardURL: o.dashboardURL,
		Data: map[string]string{
			"alert_id":   record.ID,
			"center_id":  c.ID,
			"alert_type": r.TriggerType,
		},
	})
	for _, dr := range results {
		if !dr.Success {
			log.WithFields(map[string]interface{}{
				"channel": dr.Channel,
			}).Error("channel delivery failed: " + dr.Error)
		}
	}

	pkgmetrics.RecordAlertFired(r.TriggerType, r.Priority)
	log.WithFields(map[string]interface{}{
		"alert_id": record.ID,
		"channels": strings.Join(r.Channels, ","),
	}).Info("alert fired")
	result.Fired++
}

// inQuietHours reports whether the wall clock sits inside the rule's
// quiet window. Windows are inclusive on both ends and wrap midnight
// when start is later than end.
func inQuietHours(r *rule.AlertRule, now time.Time) bool {
	start, okStart := parseClockMinutes(r.QuietHoursStart)
	end, okEnd := parseClockMinutes(r.QuietHoursEnd)
	if !okStart || !okEnd {
		return false
	}

	minute := now.Hour()*60 + now.Minute()
	if start <= end {
		return minute >= start && minute <= end
	}
	return minute >= start || minute <= end
}

// parseClockMinutes parses "HH:MM" into minutes-of-day
func parseClockMinutes(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}
