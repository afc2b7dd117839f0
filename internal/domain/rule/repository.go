package rule

import "context"

// Repository defines the interface for alert rule data access
type Repository interface {
	// Create creates a new alert rule
	Create(ctx context.Context, r *AlertRule) error

	// GetByID retrieves an alert rule by ID
	GetByID(ctx context.Context, id string) (*AlertRule, error)

	// Update updates an alert rule
	Update(ctx context.Context, r *AlertRule) error

	// Delete deletes an alert rule
	Delete(ctx context.Context, id string) error

	// List retrieves all alert rules
	List(ctx context.Context) ([]*AlertRule, error)

	// ListEnabled retrieves rules that are currently enabled
	ListEnabled(ctx context.Context) ([]*AlertRule, error)
}
