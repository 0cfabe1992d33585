package redis

import (
	"context"
	"time"

	"minerva/internal/adapters/redis"
	"minerva/internal/domain/rating"
	"minerva/pkg/errors"
)

const (
	leaderboardKey = "ratings:leaderboard"

	// Two run intervals: the cache survives one missed run, then expires
	// rather than serving stale ranks indefinitely.
	leaderboardTTL = 48 * time.Hour
)

// LeaderboardCache caches the top-ranked slice of the latest scored batch
// for read-side consumers (dashboards, reports). The cache is best-effort:
// PostgreSQL remains the source of truth.
type LeaderboardCache struct {
	client *redis.Client
}

// NewLeaderboardCache creates a new leaderboard cache
func NewLeaderboardCache(client *redis.Client) *LeaderboardCache {
	return &LeaderboardCache{client: client}
}

// Store replaces the cached leaderboard with the top entries of a ranked
// batch. The batch must already be rank-ordered.
func (c *LeaderboardCache) Store(ctx context.Context, ranked []*rating.Rating, size int) error {
	if size > len(ranked) {
		size = len(ranked)
	}

	if err := c.client.Set(ctx, leaderboardKey, ranked[:size], leaderboardTTL); err != nil {
		return errors.Wrap(err, "failed to cache leaderboard")
	}

	return nil
}

// Get returns the cached leaderboard, or ErrNotFound when absent/expired.
func (c *LeaderboardCache) Get(ctx context.Context) ([]*rating.Rating, error) {
	var ranked []*rating.Rating

	if err := c.client.Get(ctx, leaderboardKey, &ranked); err != nil {
		return nil, errors.ErrNotFound
	}

	return ranked, nil
}
