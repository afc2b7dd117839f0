package dealflow

import "time"

// Entry is one row of the daily deal flow: a transfer that reached a
// center, with its current disposition. Sales, underwriting, and
// approval metrics are all derived from these rows.
type Entry struct {
	ID           string    `json:"id"`
	CenterID     string    `json:"center_id"`
	AgentName    string    `json:"agent_name,omitempty"`
	CustomerName string    `json:"customer_name,omitempty"`
	Status       string    `json:"status"`
	CallResult   string    `json:"call_result,omitempty"`
	EntryDate    string    `json:"entry_date"` // YYYY-MM-DD
	CreatedAt    time.Time `json:"created_at"`
}

// Statuses and call results that the metrics queries key on
const (
	StatusPendingApproval = "Pending Approval"

	CallResultSubmitted    = "Submitted"
	CallResultUnderwriting = "Underwriting"
)

// DQItem is one disqualified lead with its reason category
type DQItem struct {
	ID        string    `json:"id"`
	CenterID  string    `json:"center_id"`
	Category  string    `json:"category,omitempty"`
	EntryDate string    `json:"entry_date"`
	CreatedAt time.Time `json:"created_at"`
}
