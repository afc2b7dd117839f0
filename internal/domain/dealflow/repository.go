package dealflow

import "context"

// Repository defines the interface for deal flow ingestion
type Repository interface {
	// InsertEntry records a deal flow entry
	InsertEntry(ctx context.Context, e *Entry) error

	// InsertDQ records a disqualified lead
	InsertDQ(ctx context.Context, item *DQItem) error

	// ListByCenterDate retrieves a center's entries for one day
	ListByCenterDate(ctx context.Context, centerID, date string) ([]*Entry, error)
}
