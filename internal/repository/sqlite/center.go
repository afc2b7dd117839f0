package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/centerpulse/centerpulse/internal/domain/center"
	"github.com/centerpulse/centerpulse/internal/pkg/errors"
)

type CenterRepository struct {
	db *sql.DB
}

func NewCenterRepository(db *sql.DB) center.Repository {
	return &CenterRepository{db: db}
}

func (r *CenterRepository) Create(ctx context.Context, c *center.Center) error {
	query := `
		INSERT INTO centers (id, name, region, location, daily_sales_target, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.Name, c.Region, c.Location, c.DailySalesTarget, boolToInt(c.Active),
		c.CreatedAt.Format(time.RFC3339), c.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return errors.DatabaseError("Failed to create center", err)
	}

	return nil
}

func (r *CenterRepository) GetByID(ctx context.Context, id string) (*center.Center, error) {
	query := `
		SELECT id, name, region, location, daily_sales_target, active, created_at, updated_at
		FROM centers WHERE id = ?
	`

	c, err := scanCenter(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Center")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get center", err)
	}

	return c, nil
}

func (r *CenterRepository) Update(ctx context.Context, c *center.Center) error {
	query := `
		UPDATE centers SET name = ?, region = ?, location = ?, daily_sales_target = ?, active = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		c.Name, c.Region, c.Location, c.DailySalesTarget, boolToInt(c.Active),
		c.UpdatedAt.Format(time.RFC3339), c.ID,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update center", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Center")
	}

	return nil
}

func (r *CenterRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM centers WHERE id = ?", id)
	if err != nil {
		return errors.DatabaseError("Failed to delete center", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Center")
	}

	return nil
}

func (r *CenterRepository) List(ctx context.Context) ([]*center.Center, error) {
	return r.list(ctx, `
		SELECT id, name, region, location, daily_sales_target, active, created_at, updated_at
		FROM centers ORDER BY name
	`)
}

func (r *CenterRepository) ListActive(ctx context.Context) ([]*center.Center, error) {
	return r.list(ctx, `
		SELECT id, name, region, location, daily_sales_target, active, created_at, updated_at
		FROM centers WHERE active = 1 ORDER BY name
	`)
}

func (r *CenterRepository) list(ctx context.Context, query string) ([]*center.Center, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list centers", err)
	}
	defer rows.Close()

	centers := make([]*center.Center, 0, 16)
	for rows.Next() {
		c, err := scanCenter(rows)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan center", err)
		}
		centers = append(centers, c)
	}

	return centers, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCenter(row rowScanner) (*center.Center, error) {
	var c center.Center
	var active int
	var createdAt, updatedAt string

	err := row.Scan(&c.ID, &c.Name, &c.Region, &c.Location, &c.DailySalesTarget, &active, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	c.Active = active != 0
	c.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	c.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &c, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
