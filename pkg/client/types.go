package client

import "time"

// SentAlert is one row of the sent alert ledger
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

// AlertSummary aggregates the ledger over a trailing window
type AlertSummary struct {
	Total          int64          `json:"total"`
	Acknowledged   int64          `json:"acknowledged"`
	Unacknowledged int64          `json:"unacknowledged"`
	ByType         map[string]int `json:"by_type"`
	ByCenter       map[string]int `json:"by_center"`
}

// AlertRule is a configurable alert rule
type AlertRule struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	TriggerType     string    `json:"trigger_type"`
	Threshold       float64   `json:"threshold"`
	Priority        string    `json:"priority"`
	Channels        []string  `json:"channels"`
	RecipientRoles  []string  `json:"recipient_roles"`
	MessageTemplate string    `json:"message_template"`
	QuietHoursStart string    `json:"quiet_hours_start,omitempty"`
	QuietHoursEnd   string    `json:"quiet_hours_end,omitempty"`
	Enabled         bool      `json:"enabled"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at,omitempty"`
}

// Center is a monitored sales center
type Center struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Region           string    `json:"region,omitempty"`
	Location         string    `json:"location,omitempty"`
	DailySalesTarget int       `json:"daily_sales_target"`
	Active           bool      `json:"active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at,omitempty"`
}

// SweepResult summarizes one evaluation sweep
type SweepResult struct {
	CentersChecked int `json:"centers_checked"`
	RulesChecked   int `json:"rules_checked"`
	Evaluated      int `json:"evaluated"`
	Fired          int `json:"fired"`
	Suppressed     int `json:"suppressed"`
	Skipped        int `json:"skipped"`
	Errors         int `json:"errors"`
}

// Page wraps a paginated list response
type Page[T any] struct {
	Data       []T   `json:"data"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// ListOptions contains common pagination options
type ListOptions struct {
	Page     int
	PageSize int
}
