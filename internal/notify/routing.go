package notify

import "github.com/centerpulse/centerpulse/internal/domain/rule"

// Slack audiences, each mapped to its own incoming webhook
const (
	AudienceSales    = "sales"
	AudienceQuality  = "quality"
	AudienceCritical = "critical"
)

// SlackAudience routes a message to a Slack sub-channel by trigger
// type. Unrecognized triggers fall back on priority: critical alerts go
// to the critical channel, everything else to sales.
func SlackAudience(triggerType, priority string) string {
	switch triggerType {
	case rule.TriggerZeroSales:
		return AudienceCritical
	case rule.TriggerLowSales, rule.TriggerMilestone, rule.TriggerBelowThresholdDuration:
		return AudienceSales
	case rule.TriggerHighDQ, rule.TriggerLowApproval:
		return AudienceQuality
	}
	if priority == rule.PriorityCritical {
		return AudienceCritical
	}
	return AudienceSales
}
