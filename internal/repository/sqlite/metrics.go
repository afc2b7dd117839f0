package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/centerpulse/centerpulse/internal/domain/dealflow"
	"github.com/centerpulse/centerpulse/internal/metrics"
	"github.com/centerpulse/centerpulse/internal/pkg/errors"
)

// MetricsProvider derives per-center daily metrics from the deal flow
// and DQ tables. A sale is a deal flow entry pending approval with a
// submitted call result; every entry for the day counts as a transfer.
type MetricsProvider struct {
	db *sql.DB
}

func NewMetricsProvider(db *sql.DB) metrics.Provider {
	return &MetricsProvider{db: db}
}

func (p *MetricsProvider) SalesSnapshot(ctx context.Context, centerID string, date time.Time) (*metrics.Snapshot, error) {
	day := date.Format("2006-01-02")

	query := `
		SELECT
			COALESCE(SUM(CASE WHEN status = ? AND call_result = ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN call_result = ? THEN 1 ELSE 0 END), 0),
			COUNT(*)
		FROM daily_deal_flow WHERE center_id = ? AND entry_date = ?
	`

	snap := &metrics.Snapshot{CenterID: centerID}
	err := p.db.QueryRowContext(ctx, query,
		dealflow.StatusPendingApproval, dealflow.CallResultSubmitted,
		dealflow.CallResultUnderwriting, centerID, day,
	).Scan(&snap.SalesCount, &snap.UnderwritingCount, &snap.TransferCount)
	if err != nil {
		return nil, errors.ProviderError("Failed to read sales snapshot", err)
	}

	return snap, nil
}

func (p *MetricsProvider) DQStats(ctx context.Context, centerID string, date time.Time) (*metrics.DQStats, error) {
	day := date.Format("2006-01-02")

	var dqCount, transfers int
	err := p.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM dq_items WHERE center_id = ? AND entry_date = ?",
		centerID, day,
	).Scan(&dqCount)
	if err != nil {
		return nil, errors.ProviderError("Failed to count DQ items", err)
	}

	err = p.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM daily_deal_flow WHERE center_id = ? AND entry_date = ?",
		centerID, day,
	).Scan(&transfers)
	if err != nil {
		return nil, errors.ProviderError("Failed to count transfers", err)
	}

	stats := &metrics.DQStats{Count: dqCount}
	if transfers > 0 {
		stats.Percentage = float64(dqCount) / float64(transfers) * 100
	}

	rows, err := p.db.QueryContext(ctx, `
		SELECT category FROM dq_items
		WHERE center_id = ? AND entry_date = ? AND category != ''
		ORDER BY created_at DESC LIMIT 3
	`, centerID, day)
	if err != nil {
		return nil, errors.ProviderError("Failed to read DQ categories", err)
	}
	defer rows.Close()

	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, errors.ProviderError("Failed to scan DQ category", err)
		}
		stats.TopIssues = append(stats.TopIssues, category)
	}

	return stats, rows.Err()
}

func (p *MetricsProvider) ApprovalStats(ctx context.Context, centerID string, date time.Time) (*metrics.ApprovalStats, error) {
	snap, err := p.SalesSnapshot(ctx, centerID, date)
	if err != nil {
		return nil, err
	}

	stats := &metrics.ApprovalStats{
		Submissions:  snap.SalesCount,
		Underwriting: snap.UnderwritingCount,
		Transfers:    snap.TransferCount,
	}
	if snap.TransferCount > 0 {
		stats.Ratio = float64(snap.SalesCount) / float64(snap.TransferCount) * 100
	}

	return stats, nil
}
