package sentalert

import (
	"context"
	"time"
)

// Repository defines the interface for sent alert ledger access
type Repository interface {
	// Insert records a fired alert. Must succeed before any delivery
	// is attempted.
	Insert(ctx context.Context, a *SentAlert) error

	// GetByID retrieves a sent alert by ID
	GetByID(ctx context.Context, id string) (*SentAlert, error)

	// ExistsSince reports whether an alert for the same (rule, center)
	// pair was recorded at or after the given instant.
	ExistsSince(ctx context.Context, ruleID, centerID string, since time.Time) (bool, error)

	// ListWithPagination retrieves sent alerts with filters and pagination,
	// newest first
	ListWithPagination(ctx context.Context, filter Filter, limit, offset int) ([]*SentAlert, int64, error)

	// Acknowledge sets acknowledgement fields if and only if the alert
	// has not been acknowledged yet. Returns false when the row was
	// already acknowledged (or missing), without modifying it.
	Acknowledge(ctx context.Context, id, by, action string, at time.Time) (bool, error)

	// Summarize aggregates the ledger since the given instant
	Summarize(ctx context.Context, since time.Time) (*Summary, error)
}
