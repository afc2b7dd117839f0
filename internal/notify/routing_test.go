package notify

import (
	"testing"

	"github.com/centerpulse/centerpulse/internal/domain/rule"
)

func TestSlackAudience(t *testing.T) {
	tests := []struct {
		name        string
		triggerType string
		priority    string
		want        string
	}{
		{"zero sales routes to critical", rule.TriggerZeroSales, rule.PriorityMedium, AudienceCritical},
		{"low sales routes to sales", rule.TriggerLowSales, rule.PriorityHigh, AudienceSales},
		{"milestone routes to sales", rule.TriggerMilestone, rule.PriorityLow, AudienceSales},
		{"pace alert routes to sales", rule.TriggerBelowThresholdDuration, rule.PriorityHigh, AudienceSales},
		{"high dq routes to quality", rule.TriggerHighDQ, rule.PriorityHigh, AudienceQuality},
		{"low approval routes to quality", rule.TriggerLowApproval, rule.PriorityMedium, AudienceQuality},
		{"unknown trigger critical priority falls back to critical", "custom", rule.PriorityCritical, AudienceCritical},
		{"unknown trigger other priority falls back to sales", "custom", rule.PriorityMedium, AudienceSales},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SlackAudience(tt.triggerType, tt.priority); got != tt.want {
				t.Errorf("SlackAudience(%s, %s) = %s, want %s", tt.triggerType, tt.priority, got, tt.want)
			}
		})
	}
}
