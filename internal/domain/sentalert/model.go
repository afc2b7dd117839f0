package sentalert

import "time"

// SentAlert is a ledger row recording that an alert fired and what the
// dispatcher was asked to do. ChannelsSent records intent (the rule's
// configured channels), not per-channel delivery outcome.
type SentAlert struct {
	ID             string                 `json:"id"`
	RuleID         string                 `json:"rule_id"`
	CenterID       string                 `json:"center_id"`
	AlertType      string                 `json:"alert_type"`
	Message        string                 `json:"message"`
	ChannelsSent   []string               `json:"channels_sent"`
	Recipients     []string               `json:"recipients"`
	SentAt         time.Time              `json:"sent_at"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
	AcknowledgedBy *string                `json:"acknowledged_by,omitempty"`
	AcknowledgedAt *time.Time             `json:"acknowledged_at,omitempty"`
	ResponseAction *string                `json:"response_action,omitempty"`
}

// Acknowledged reports whether the alert has been acknowledged
func (a *SentAlert) Acknowledged() bool {
	return a.AcknowledgedAt != nil
}

// Filter contains sent alert filtering options
type Filter struct {
	CenterID  string
	AlertType string
	Since     time.Time
}

// Summary aggregates the ledger for the dashboard
type Summary struct {
	Total          int64          `json:"total"`
	Acknowledged   int64          `json:"acknowledged"`
	Unacknowledged int64          `json:"unacknowledged"`
	ByType         map[string]int `json:"by_type"`
	ByCenter       map[string]int `json:"by_center"`
}
