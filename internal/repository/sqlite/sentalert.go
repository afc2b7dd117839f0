package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/centerpulse/centerpulse/internal/domain/sentalert"
	"github.com/centerpulse/centerpulse/internal/pkg/errors"
)

type SentAlertRepository struct {
	db *sql.DB
}

func NewSentAlertRepository(db *sql.DB) sentalert.Repository {
	return &SentAlertRepository{db: db}
}

func (r *SentAlertRepository) Insert(ctx context.Context, a *sentalert.SentAlert) error {
	channels, err := json.Marshal(a.ChannelsSent)
	if err != nil {
		return errors.DatabaseError("Failed to encode channels", err)
	}
	recipients, err := json.Marshal(a.Recipients)
	if err != nil {
		return errors.DatabaseError("Failed to encode recipients", err)
	}
	metadata := []byte("{}")
	if a.Metadata != nil {
		metadata, err = json.Marshal(a.Metadata)
		if err != nil {
			return errors.DatabaseError("Failed to encode metadata", err)
		}
	}

	query := `
		INSERT INTO sent_alerts (id, rule_id, center_id, alert_type, message,
			channels_sent, recipients, sent_at, metadata)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query,
		a.ID, a.RuleID, a.CenterID, a.AlertType, a.Message,
		string(channels), string(recipients), a.SentAt.Format(time.RFC3339), string(metadata),
	)
	if err != nil {
		return errors.DatabaseError("Failed to insert sent alert", err)
	}

	return nil
}

func (r *SentAlertRepository) GetByID(ctx context.Context, id string) (*sentalert.SentAlert, error) {
	query := sentAlertSelect + ` WHERE id = ?`

	a, err := scanSentAlert(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Alert")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get sent alert", err)
	}

	return a, nil
}

func (r *SentAlertRepository) ExistsSince(ctx context.Context, ruleID, centerID string, since time.Time) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM sent_alerts
			WHERE rule_id = ? AND center_id = ? AND sent_at >= ?
		)
	`

	var exists int
	err := r.db.QueryRowContext(ctx, query, ruleID, centerID, since.Format(time.RFC3339)).Scan(&exists)
	if err != nil {
		return false, errors.DatabaseError("Failed to check recent alerts", err)
	}

	return exists != 0, nil
}

func (r *SentAlertRepository) ListWithPagination(ctx context.Context, filter sentalert.Filter, limit, offset int) ([]*sentalert.SentAlert, int64, error) {
	where := []string{"1 = 1"}
	args := []interface{}{}

	if filter.CenterID != "" {
		where = append(where, "center_id = ?")
		args = append(args, filter.CenterID)
	}
	if filter.AlertType != "" {
		where = append(where, "alert_type = ?")
		args = append(args, filter.AlertType)
	}
	if !filter.Since.IsZero() {
		where = append(where, "sent_at >= ?")
		args = append(args, filter.Since.Format(time.RFC3339))
	}

	whereClause := strings.Join(where, " AND ")

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM sent_alerts WHERE %s", whereClause)
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, errors.DatabaseError("Failed to count sent alerts", err)
	}

	query := fmt.Sprintf("%s WHERE %s ORDER BY sent_at DESC LIMIT ? OFFSET ?", sentAlertSelect, whereClause)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list sent alerts", err)
	}
	defer rows.Close()

	alerts := make([]*sentalert.SentAlert, 0, limit)
	for rows.Next() {
		a, err := scanSentAlert(rows)
		if err != nil {
			return nil, 0, errors.DatabaseError("Failed to scan sent alert", err)
		}
		alerts = append(alerts, a)
	}

	return alerts, total, rows.Err()
}

// Acknowledge only writes when the row is still unacknowledged, making
// repeat acknowledgements first-write-wins at the SQL level.
func (r *SentAlertRepository) Acknowledge(ctx context.Context, id, by, action string, at time.Time) (bool, error) {
	query := `
		UPDATE sent_alerts
		SET acknowledged_by = ?, acknowledged_at = ?, response_action = ?
		WHERE id = ? AND acknowledged_at IS NULL
	`

	var responseAction interface{}
	if action != "" {
		responseAction = action
	}

	result, err := r.db.ExecContext(ctx, query, by, at.Format(time.RFC3339), responseAction, id)
	if err != nil {
		return false, errors.DatabaseError("Failed to acknowledge alert", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, errors.DatabaseError("Failed to get affected rows", err)
	}

	return rows > 0, nil
}

func (r *SentAlertRepository) Summarize(ctx context.Context, since time.Time) (*sentalert.Summary, error) {
	sinceStr := since.Format(time.RFC3339)

	summary := &sentalert.Summary{
		ByType:   make(map[string]int),
		ByCenter: make(map[string]int),
	}

	query := `
		SELECT COUNT(*), COALESCE(SUM(CASE WHEN acknowledged_at IS NOT NULL THEN 1 ELSE 0 END), 0)
		FROM sent_alerts WHERE sent_at >= ?
	`
	if err := r.db.QueryRowContext(ctx, query, sinceStr).Scan(&summary.Total, &summary.Acknowledged); err != nil {
		return nil, errors.DatabaseError("Failed to summarize alerts", err)
	}
	summary.Unacknowledged = summary.Total - summary.Acknowledged

	typeRows, err := r.db.QueryContext(ctx,
		"SELECT alert_type, COUNT(*) FROM sent_alerts WHERE sent_at >= ? GROUP BY alert_type", sinceStr)
	if err != nil {
		return nil, errors.DatabaseError("Failed to count alerts by type", err)
	}
	defer typeRows.Close()
	for typeRows.Next() {
		var alertType string
		var count int
		if err := typeRows.Scan(&alertType, &count); err != nil {
			return nil, errors.DatabaseError("Failed to scan count", err)
		}
		summary.ByType[alertType] = count
	}
	if err := typeRows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to read type counts", err)
	}

	centerRows, err := r.db.QueryContext(ctx,
		"SELECT center_id, COUNT(*) FROM sent_alerts WHERE sent_at >= ? GROUP BY center_id", sinceStr)
	if err != nil {
		return nil, errors.DatabaseError("Failed to count alerts by center", err)
	}
	defer centerRows.Close()
	for centerRows.Next() {
		var centerID string
		var count int
		if err := centerRows.Scan(&centerID, &count); err != nil {
			return nil, errors.DatabaseError("Failed to scan count", err)
		}
		summary.ByCenter[centerID] = count
	}

	return summary, centerRows.Err()
}

const sentAlertSelect = `
	SELECT id, rule_id, center_id, alert_type, message, channels_sent, recipients,
		sent_at, metadata, acknowledged_by, acknowledged_at, response_action
	FROM sent_alerts`

func scanSentAlert(row rowScanner) (*sentalert.SentAlert, error) {
	var a sentalert.SentAlert
	var channels, recipients, metadata, sentAt string
	var ackBy, ackAt, action sql.NullString

	err := row.Scan(&a.ID, &a.RuleID, &a.CenterID, &a.AlertType, &a.Message,
		&channels, &recipients, &sentAt, &metadata, &ackBy, &ackAt, &action)
	if err != nil {
		return nil, err
	}

	_ = json.Unmarshal([]byte(channels), &a.ChannelsSent)
	_ = json.Unmarshal([]byte(recipients), &a.Recipients)
	_ = json.Unmarshal([]byte(metadata), &a.Metadata)
	a.SentAt, _ = time.Parse(time.RFC3339, sentAt)

	if ackBy.Valid {
		a.AcknowledgedBy = &ackBy.String
	}
	if ackAt.Valid {
		t, err := time.Parse(time.RFC3339, ackAt.String)
		if err == nil {
			a.AcknowledgedAt = &t
		}
	}
	if action.Valid {
		a.ResponseAction = &action.String
	}

	return &a, nil
}
