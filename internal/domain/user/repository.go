package user

import "context"

// Repository defines the interface for user data access
type Repository interface {
	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (*User, error)

	// ListByRoles retrieves active users whose role is in the given set
	ListByRoles(ctx context.Context, roles []string) ([]*User, error)

	// ListByMinPermission retrieves active users at or above the given
	// permission level
	ListByMinPermission(ctx context.Context, level int) ([]*User, error)
}
