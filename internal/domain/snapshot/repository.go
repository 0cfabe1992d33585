package snapshot

import "context"

// Repository defines access to the consolidated snapshot table (PostgreSQL).
// At most one live row exists per ticker; writes are upserts keyed on ticker.
type Repository interface {
	// ListAll returns the full snapshot universe, ordered by ticker
	ListAll(ctx context.Context) ([]*Snapshot, error)

	// GetByTicker returns the live snapshot for one ticker
	GetByTicker(ctx context.Context, ticker string) (*Snapshot, error)

	// Upsert inserts or replaces the live snapshot for a ticker
	Upsert(ctx context.Context, snap *Snapshot) error

	// Count returns the number of tickers in the universe
	Count(ctx context.Context) (int, error)
}
