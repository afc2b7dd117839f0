// Package metrics defines the read-side interface the alert engine uses
// to observe per-center daily performance.
package metrics

import (
	"context"
	"time"
)

// Snapshot holds a center's daily sales numbers
type Snapshot struct {
	CenterID          string `json:"center_id"`
	SalesCount        int    `json:"sales_count"`
	UnderwritingCount int    `json:"underwriting_count"`
	TransferCount     int    `json:"transfer_count"`
}

// DQStats holds a center's daily disqualification numbers
type DQStats struct {
	Count      int      `json:"count"`
	Percentage float64  `json:"percentage"`
	TopIssues  []string `json:"top_issues"`
}

// ApprovalStats holds a center's daily approval numbers.
// Ratio is submissions over transfers as a percentage; zero when the
// center has no transfers for the day.
type ApprovalStats struct {
	Ratio        float64 `json:"ratio"`
	Submissions  int     `json:"submissions"`
	Underwriting int     `json:"underwriting"`
	Transfers    int     `json:"transfers"`
}

// Provider supplies the daily metrics the rule evaluator reads
type Provider interface {
	SalesSnapshot(ctx context.Context, centerID string, date time.Time) (*Snapshot, error)
	DQStats(ctx context.Context, centerID string, date time.Time) (*DQStats, error)
	ApprovalStats(ctx context.Context, centerID string, date time.Time) (*ApprovalStats, error)
}
