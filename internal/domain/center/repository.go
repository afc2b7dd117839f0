package center

import "context"

// Repository defines the interface for center data access
type Repository interface {
	// Create creates a new center
	Create(ctx context.Context, c *Center) error

	// GetByID retrieves a center by ID
	GetByID(ctx context.Context, id string) (*Center, error)

	// Update updates a center
	Update(ctx context.Context, c *Center) error

	// Delete deletes a center
	Delete(ctx context.Context, id string) error

	// List retrieves all centers
	List(ctx context.Context) ([]*Center, error)

	// ListActive retrieves centers with monitoring enabled
	ListActive(ctx context.Context) ([]*Center, error)
}
