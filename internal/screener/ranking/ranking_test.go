package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"minerva/internal/domain/rating"
	"minerva/internal/screener/numeric"
)

func TestBandOf(t *testing.T) {
	tests := []struct {
		name      string
		composite *float64
		grade     rating.Grade
		action    rating.Action
	}{
		{"top band", numeric.Ptr(85), rating.GradeA, rating.ActionBuy},
		{"exactly 80", numeric.Ptr(80), rating.GradeA, rating.ActionBuy},
		{"accumulate", numeric.Ptr(72.4), rating.GradeB, rating.ActionAccumulate},
		{"exactly 65", numeric.Ptr(65), rating.GradeB, rating.ActionAccumulate},
		{"hold", numeric.Ptr(60), rating.GradeC, rating.ActionHold},
		{"exactly 50", numeric.Ptr(50), rating.GradeC, rating.ActionHold},
		{"avoid", numeric.Ptr(49.99), rating.GradeD, rating.ActionAvoid},
		{"zero", numeric.Ptr(0), rating.GradeD, rating.ActionAvoid},
		{"nil composite", nil, rating.GradeD, rating.ActionAvoid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grade, action := BandOf(tt.composite)
			assert.Equal(t, tt.grade, grade)
			assert.Equal(t, tt.action, action)
		})
	}
}

func batch(entries ...*rating.Rating) []*rating.Rating {
	return entries
}

func entry(ticker string, composite *float64) *rating.Rating {
	return &rating.Rating{Ticker: ticker, CompositeScore: composite}
}

func TestRank_DescendingWithNilLast(t *testing.T) {
	b := batch(
		entry("HOLD1", numeric.Ptr(60)),
		entry("GHOST", nil),
		entry("BUY1", numeric.Ptr(85)),
	)

	Rank(b)

	assert.Equal(t, "BUY1", b[0].Ticker)
	assert.Equal(t, 1, b[0].Rank)
	assert.Equal(t, "HOLD1", b[1].Ticker)
	assert.Equal(t, 2, b[1].Rank)
	assert.Equal(t, "GHOST", b[2].Ticker)
	assert.Equal(t, 3, b[2].Rank)
}

func TestRank_ContiguousPermutation(t *testing.T) {
	b := batch(
		entry("A", numeric.Ptr(10)),
		entry("B", nil),
		entry("C", numeric.Ptr(99.99)),
		entry("D", numeric.Ptr(50)),
		entry("E", nil),
	)

	Rank(b)

	seen := make(map[int]bool)
	for _, r := range b {
		seen[r.Rank] = true
	}
	for want := 1; want <= len(b); want++ {
		assert.True(t, seen[want], "rank %d missing", want)
	}
}

func TestRank_TieBreakByTicker(t *testing.T) {
	b := batch(
		entry("ZETA", numeric.Ptr(70)),
		entry("ALPHA", numeric.Ptr(70)),
		entry("MID", numeric.Ptr(70)),
	)

	Rank(b)

	assert.Equal(t, "ALPHA", b[0].Ticker)
	assert.Equal(t, "MID", b[1].Ticker)
	assert.Equal(t, "ZETA", b[2].Ticker)
}

func TestRank_IdempotentAcrossInputOrder(t *testing.T) {
	forward := batch(
		entry("AAA", numeric.Ptr(70)),
		entry("BBB", numeric.Ptr(70)),
		entry("CCC", nil),
	)
	reversed := batch(
		entry("CCC", nil),
		entry("BBB", numeric.Ptr(70)),
		entry("AAA", numeric.Ptr(70)),
	)

	Rank(forward)
	Rank(reversed)

	for i := range forward {
		assert.Equal(t, forward[i].Ticker, reversed[i].Ticker)
		assert.Equal(t, forward[i].Rank, reversed[i].Rank)
	}
}

func TestRank_EmptyBatch(t *testing.T) {
	assert.NotPanics(t, func() {
		Rank(nil)
		Rank([]*rating.Rating{})
	})
}
