package dto

// CreateRuleRequest is the payload for creating an alert rule
type CreateRuleRequest struct {
	Name            string   `json:"name" validate:"required"`
	TriggerType     string   `json:"trigger_type" validate:"required"`
	Threshold       float64  `json:"threshold"`
	Priority        string   `json:"priority" validate:"required,oneof=critical high medium low"`
	Channels        []string `json:"channels" validate:"required,min=1"`
	RecipientRoles  []string `json:"recipient_roles"`
	MessageTemplate string   `json:"message_template" validate:"required"`
	QuietHoursStart string   `json:"quiet_hours_start"`
	QuietHoursEnd   string   `json:"quiet_hours_end"`
	Enabled         *bool    `json:"enabled"`
}

// CreateCenterRequest is the payload for creating a center
type CreateCenterRequest struct {
	Name             string `json:"name" validate:"required"`
	Region           string `json:"region"`
	Location         string `json:"location"`
	DailySalesTarget int    `json:"daily_sales_target" validate:"gte=0"`
	Active           *bool  `json:"active"`
}

// AcknowledgeRequest is the payload for acknowledging a sent alert
type AcknowledgeRequest struct {
	AcknowledgedBy string `json:"acknowledged_by" validate:"required"`
	ResponseAction string `json:"response_action"`
}

// DealFlowEntryRequest is the payload for ingesting one deal flow row
type DealFlowEntryRequest struct {
	CenterID     string `json:"center_id" validate:"required"`
	AgentName    string `json:"agent_name"`
	CustomerName string `json:"customer_name"`
	Status       string `json:"status" validate:"required"`
	CallResult   string `json:"call_result"`
	EntryDate    string `json:"entry_date" validate:"required,datetime=2006-01-02"`
}

// DQItemRequest is the payload for ingesting one disqualified lead
type DQItemRequest struct {
	CenterID  string `json:"center_id" validate:"required"`
	Category  string `json:"category"`
	EntryDate string `json:"entry_date" validate:"required,datetime=2006-01-02"`
}
