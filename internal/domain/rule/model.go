package rule

import "time"

// AlertRule represents a configurable alert rule evaluated against
// per-center daily metrics
type AlertRule struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	TriggerType     string    `json:"trigger_type"`
	Threshold       float64   `json:"threshold"`
	Priority        string    `json:"priority"`
	Channels        []string  `json:"channels"`
	RecipientRoles  []string  `json:"recipient_roles"`
	MessageTemplate string    `json:"message_template"`
	QuietHoursStart string    `json:"quiet_hours_start,omitempty"` // "HH:MM", empty = none
	QuietHoursEnd   string    `json:"quiet_hours_end,omitempty"`
	Enabled         bool      `json:"enabled"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at,omitempty"`
}

// Trigger types
const (
	TriggerLowSales               = "low_sales"
	TriggerZeroSales              = "zero_sales"
	TriggerHighDQ                 = "high_dq"
	TriggerLowApproval            = "low_approval"
	TriggerMilestone              = "milestone"
	TriggerBelowThresholdDuration = "below_threshold_duration"
)

// Priority levels
const (
	PriorityCritical = "critical"
	PriorityHigh     = "high"
	PriorityMedium   = "medium"
	PriorityLow      = "low"
)

// Notification channels
const (
	ChannelSlack    = "slack"
	ChannelEmail    = "email"
	ChannelPush     = "push"
	ChannelWhatsApp = "whatsapp"
)

// ValidTriggerTypes lists every recognized trigger type
var ValidTriggerTypes = []string{
	TriggerLowSales,
	TriggerZeroSales,
	TriggerHighDQ,
	TriggerLowApproval,
	TriggerMilestone,
	TriggerBelowThresholdDuration,
}
