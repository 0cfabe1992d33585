// Package ranking maps composite scores to grades and actions, and assigns
// dense ranks across a fully scored batch. Banding is per ticker; ranking
// is the batch barrier and must see every ticker's composite before
// assigning any rank.
package ranking

import (
	"sort"

	"minerva/internal/domain/rating"
)

// nullSentinel stands in for a nil composite during the sort so unscored
// tickers always land after real scores (which live in [0,100]).
const nullSentinel = -999

// Grade bands over the composite score.
const (
	buyThreshold        = 80
	accumulateThreshold = 65
	holdThreshold       = 50
)

// BandOf maps a composite score to its grade and action. A nil composite
// falls through to the bottom band.
func BandOf(composite *float64) (rating.Grade, rating.Action) {
	if composite == nil {
		return rating.GradeD, rating.ActionAvoid
	}

	switch {
	case *composite >= buyThreshold:
		return rating.GradeA, rating.ActionBuy
	case *composite >= accumulateThreshold:
		return rating.GradeB, rating.ActionAccumulate
	case *composite >= holdThreshold:
		return rating.GradeC, rating.ActionHold
	default:
		return rating.GradeD, rating.ActionAvoid
	}
}

// Rank sorts the batch descending by composite score and assigns dense
// 1-based ranks in place. Nil composites rank last. Equal composites order
// by ticker ascending, which keeps reruns of the same batch byte-identical
// regardless of input order.
func Rank(ratings []*rating.Rating) {
	sort.SliceStable(ratings, func(i, j int) bool {
		si, sj := sortScore(ratings[i]), sortScore(ratings[j])
		if si != sj {
			return si > sj
		}
		return ratings[i].Ticker < ratings[j].Ticker
	})

	for i, r := range ratings {
		r.Rank = i + 1
	}
}

func sortScore(r *rating.Rating) float64 {
	if r.CompositeScore == nil {
		return nullSentinel
	}
	return *r.CompositeScore
}
