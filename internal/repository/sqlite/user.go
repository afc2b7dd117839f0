package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/centerpulse/centerpulse/internal/domain/user"
	"github.com/centerpulse/centerpulse/internal/pkg/errors"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) user.Repository {
	return &UserRepository{db: db}
}

const userSelect = `
	SELECT id, name, email, role, phone, push_token, permission_level, active, created_at
	FROM users`

func (r *UserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, userSelect+` WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("User")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get user", err)
	}

	return u, nil
}

func (r *UserRepository) ListByRoles(ctx context.Context, roles []string) ([]*user.User, error) {
	if len(roles) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?, ", len(roles)-1) + "?"
	query := fmt.Sprintf("%s WHERE active = 1 AND role IN (%s) ORDER BY name", userSelect, placeholders)

	args := make([]interface{}, len(roles))
	for i, role := range roles {
		args[i] = role
	}

	return r.list(ctx, query, args...)
}

func (r *UserRepository) ListByMinPermission(ctx context.Context, level int) ([]*user.User, error) {
	query := userSelect + ` WHERE active = 1 AND permission_level >= ? ORDER BY name`
	return r.list(ctx, query, level)
}

func (r *UserRepository) list(ctx context.Context, query string, args ...interface{}) ([]*user.User, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list users", err)
	}
	defer rows.Close()

	users := make([]*user.User, 0, 16)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan user", err)
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

func scanUser(row rowScanner) (*user.User, error) {
	var u user.User
	var active int
	var createdAt string

	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.Phone, &u.PushToken,
		&u.PermissionLevel, &active, &createdAt)
	if err != nil {
		return nil, err
	}

	u.Active = active != 0
	u.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &u, nil
}
