package center

import "time"

// Center represents a BPO sales center being monitored
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
