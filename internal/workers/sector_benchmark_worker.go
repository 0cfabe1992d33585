package workers

import (
	"context"
	"time"

	ratingsvc "minerva/internal/services/rating"
)

// SectorBenchmarkWorker recomputes sector average P/E benchmarks from the
// snapshot table so the pipeline's P/E discount factor tracks the universe.
type SectorBenchmarkWorker struct {
	*BaseWorker
	service *ratingsvc.BenchmarkService
}

// NewSectorBenchmarkWorker creates the benchmark refresh worker.
func NewSectorBenchmarkWorker(service *ratingsvc.BenchmarkService, interval time.Duration) *SectorBenchmarkWorker {
	return &SectorBenchmarkWorker{
		BaseWorker: NewBaseWorker("sector_benchmark", interval, true),
		service:    service,
	}
}

// Run refreshes the benchmark table once.
func (w *SectorBenchmarkWorker) Run(ctx context.Context) error {
	return w.service.Refresh(ctx)
}
