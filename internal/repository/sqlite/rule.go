package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/centerpulse/centerpulse/internal/domain/rule"
	"github.com/centerpulse/centerpulse/internal/pkg/errors"
)

type RuleRepository struct {
	db *sql.DB
}

func NewRuleRepository(db *sql.DB) rule.Repository {
	return &RuleRepository{db: db}
}

func (r *RuleRepository) Create(ctx context.Context, ar *rule.AlertRule) error {
	channels, err := json.Marshal(ar.Channels)
	if err != nil {
		return errors.DatabaseError("Failed to encode channels", err)
	}
	roles, err := json.Marshal(ar.RecipientRoles)
	if err != nil {
		return errors.DatabaseError("Failed to encode recipient roles", err)
	}

	query := `
		INSERT INTO alert_rules (id, name, trigger_type, threshold, priority, channels,
			recipient_roles, message_template, quiet_hours_start, quiet_hours_end,
			enabled, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query,
		ar.ID, ar.Name, ar.TriggerType, ar.Threshold, ar.Priority, string(channels),
		string(roles), ar.MessageTemplate, ar.QuietHoursStart, ar.QuietHoursEnd,
		boolToInt(ar.Enabled), ar.CreatedAt.Format(time.RFC3339), ar.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return errors.DatabaseError("Failed to create alert rule", err)
	}

	return nil
}

func (r *RuleRepository) GetByID(ctx context.Context, id string) (*rule.AlertRule, error) {
	query := ruleSelect + ` WHERE id = ?`

	ar, err := scanRule(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Alert rule")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get alert rule", err)
	}

	return ar, nil
}

func (r *RuleRepository) Update(ctx context.Context, ar *rule.AlertRule) error {
	channels, err := json.Marshal(ar.Channels)
	if err != nil {
		return errors.DatabaseError("Failed to encode channels", err)
	}
	roles, err := json.Marshal(ar.RecipientRoles)
	if err != nil {
		return errors.DatabaseError("Failed to encode recipient roles", err)
	}

	query := `
		UPDATE alert_rules SET name = ?, trigger_type = ?, threshold = ?, priority = ?,
			channels = ?, recipient_roles = ?, message_template = ?,
			quiet_hours_start = ?, quiet_hours_end = ?, enabled = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		ar.Name, ar.TriggerType, ar.Threshold, ar.Priority,
		string(channels), string(roles), ar.MessageTemplate,
		ar.QuietHoursStart, ar.QuietHoursEnd, boolToInt(ar.Enabled),
		ar.UpdatedAt.Format(time.RFC3339), ar.ID,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update alert rule", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Alert rule")
	}

	return nil
}

func (r *RuleRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM alert_rules WHERE id = ?", id)
	if err != nil {
		return errors.DatabaseError("Failed to delete alert rule", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Alert rule")
	}

	return nil
}

func (r *RuleRepository) List(ctx context.Context) ([]*rule.AlertRule, error) {
	return r.list(ctx, ruleSelect+` ORDER BY name`)
}

func (r *RuleRepository) ListEnabled(ctx context.Context) ([]*rule.AlertRule, error) {
	return r.list(ctx, ruleSelect+` WHERE enabled = 1 ORDER BY name`)
}

const ruleSelect = `
	SELECT id, name, trigger_type, threshold, priority, channels, recipient_roles,
		message_template, quiet_hours_start, quiet_hours_end, enabled, created_at, updated_at
	FROM alert_rules`

func (r *RuleRepository) list(ctx context.Context, query string) ([]*rule.AlertRule, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list alert rules", err)
	}
	defer rows.Close()

	rules := make([]*rule.AlertRule, 0, 16)
	for rows.Next() {
		ar, err := scanRule(rows)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan alert rule", err)
		}
		rules = append(rules, ar)
	}

	return rules, rows.Err()
}

func scanRule(row rowScanner) (*rule.AlertRule, error) {
	var ar rule.AlertRule
	var channels, roles string
	var enabled int
	var createdAt, updatedAt string

	err := row.Scan(&ar.ID, &ar.Name, &ar.TriggerType, &ar.Threshold, &ar.Priority,
		&channels, &roles, &ar.MessageTemplate, &ar.QuietHoursStart, &ar.QuietHoursEnd,
		&enabled, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	_ = json.Unmarshal([]byte(channels), &ar.Channels)
	_ = json.Unmarshal([]byte(roles), &ar.RecipientRoles)
	ar.Enabled = enabled != 0
	ar.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	ar.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &ar, nil
}
