package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/centerpulse/centerpulse/internal/domain/dealflow"
	"github.com/centerpulse/centerpulse/internal/pkg/errors"
)

type DealFlowRepository struct {
	db *sql.DB
}

func NewDealFlowRepository(db *sql.DB) dealflow.Repository {
	return &DealFlowRepository{db: db}
}

func (r *DealFlowRepository) InsertEntry(ctx context.Context, e *dealflow.Entry) error {
	query := `
		INSERT INTO daily_deal_flow (id, center_id, agent_name, customer_name,
			status, call_result, entry_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.CenterID, e.AgentName, e.CustomerName,
		e.Status, e.CallResult, e.EntryDate, e.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return errors.DatabaseError("Failed to insert deal flow entry", err)
	}

	return nil
}

func (r *DealFlowRepository) InsertDQ(ctx context.Context, item *dealflow.DQItem) error {
	query := `
		INSERT INTO dq_items (id, center_id, category, entry_date, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		item.ID, item.CenterID, item.Category, item.EntryDate, item.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return errors.DatabaseError("Failed to insert DQ item", err)
	}

	return nil
}

func (r *DealFlowRepository) ListByCenterDate(ctx context.Context, centerID, date string) ([]*dealflow.Entry, error) {
	query := `
		SELECT id, center_id, agent_name, customer_name, status, call_result, entry_date, created_at
		FROM daily_deal_flow WHERE center_id = ? AND entry_date = ? ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query, centerID, date)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list deal flow entries", err)
	}
	defer rows.Close()

	entries := make([]*dealflow.Entry, 0, 100)
	for rows.Next() {
		var e dealflow.Entry
		var createdAt string
		err := rows.Scan(&e.ID, &e.CenterID, &e.AgentName, &e.CustomerName,
			&e.Status, &e.CallResult, &e.EntryDate, &createdAt)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan deal flow entry", err)
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		entries = append(entries, &e)
	}

	return entries, rows.Err()
}
