package rating

import "context"

// Repository defines access to the ratings table (PostgreSQL).
// Writes are idempotent upserts keyed on ticker; each batch run replaces
// the prior run's rows.
type Repository interface {
	// Upsert inserts or replaces the rating row for a ticker
	Upsert(ctx context.Context, r *Rating) error

	// GetByTicker returns the latest rating for one ticker
	GetByTicker(ctx context.Context, ticker string) (*Rating, error)

	// ListAll returns all ratings ordered by rank ascending
	ListAll(ctx context.Context) ([]*Rating, error)
}

// HistoryRepository is the append-only rating history store (ClickHouse).
// One batch of rows is appended per run; prior runs are never amended.
type HistoryRepository interface {
	// AppendBatch stores the full scored batch for one run
	AppendBatch(ctx context.Context, ratings []*Rating) error

	// GetHistory returns past ratings for a ticker, newest first
	GetHistory(ctx context.Context, ticker string, limit int) ([]*Rating, error)
}
