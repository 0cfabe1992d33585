package rating

import (
	"context"
	"sync"

	"minerva/internal/domain/snapshot"
	"minerva/internal/screener/numeric"
	"minerva/pkg/errors"
	"minerva/pkg/logger"
)

// BenchmarkService maintains the sector average trailing P/E table used by
// the derive stage. The table is recomputed from the live snapshot universe
// and held in memory; until the first refresh the table is empty and
// P/E discounts stay nil.
type BenchmarkService struct {
	snapshots snapshot.Repository
	log       *logger.Logger

	mu         sync.RWMutex
	benchmarks map[string]float64
}

// NewBenchmarkService creates the sector benchmark service.
func NewBenchmarkService(snapshots snapshot.Repository) *BenchmarkService {
	return &BenchmarkService{
		snapshots:  snapshots,
		log:        logger.Get().With("service", "sector_benchmark"),
		benchmarks: map[string]float64{},
	}
}

// Refresh recomputes sector average trailing P/E from the snapshot table.
// Tickers with an unparseable or missing P/E are excluded from their
// sector's average; sectors with no usable P/E at all drop out of the table.
func (s *BenchmarkService) Refresh(ctx context.Context) error {
	universe, err := s.snapshots.ListAll(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to load snapshots for benchmarks")
	}

	sums := map[string]float64{}
	counts := map[string]int{}

	for _, snap := range universe {
		sector := snap.SectorName()
		if sector == "" {
			continue
		}

		pe := numeric.SanitizeDefault(snap.PERatioTrailing)
		if pe == nil {
			continue
		}

		sums[sector] += *pe
		counts[sector]++
	}

	benchmarks := make(map[string]float64, len(sums))
	for sector, sum := range sums {
		benchmarks[sector] = numeric.Round2(sum / float64(counts[sector]))
	}

	s.mu.Lock()
	s.benchmarks = benchmarks
	s.mu.Unlock()

	s.log.Info("Sector benchmarks refreshed", "sectors", len(benchmarks), "tickers", len(universe))
	return nil
}

// Current returns a copy of the benchmark table. Safe to hand to a
// calculator that outlives the next refresh.
func (s *BenchmarkService) Current() map[string]float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]float64, len(s.benchmarks))
	for k, v := range s.benchmarks {
		out[k] = v
	}
	return out
}
