package derived

import "context"

// Repository defines access to the derived metrics table (PostgreSQL).
// Writes are idempotent upserts keyed on ticker.
type Repository interface {
	// Upsert inserts or replaces the derived row for a ticker
	Upsert(ctx context.Context, m *Metrics) error

	// GetByTicker returns the latest derived row for one ticker
	GetByTicker(ctx context.Context, ticker string) (*Metrics, error)

	// ListAll returns all derived rows, ordered by ticker
	ListAll(ctx context.Context) ([]*Metrics, error)
}
