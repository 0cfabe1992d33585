package workers

import (
	"context"
	"time"

	ratingsvc "minerva/internal/services/rating"
	"minerva/pkg/errors"
)

// RatingsPipelineWorker runs the full derive, score, rank batch over the
// snapshot universe on a fixed interval. An overlapping run is not an
// error: the service's run lock makes it a no-op.
type RatingsPipelineWorker struct {
	*BaseWorker
	service *ratingsvc.Service
}

// NewRatingsPipelineWorker creates the batch pipeline worker.
func NewRatingsPipelineWorker(service *ratingsvc.Service, interval time.Duration) *RatingsPipelineWorker {
	return &RatingsPipelineWorker{
		BaseWorker: NewBaseWorker("ratings_pipeline", interval, true),
		service:    service,
	}
}

// Run executes one batch run.
func (w *RatingsPipelineWorker) Run(ctx context.Context) error {
	summary, err := w.service.RunBatch(ctx)
	if err != nil {
		if errors.Is(err, errors.ErrRunInProgress) {
			w.Log().Warn("Skipping run, previous batch still in flight")
			return nil
		}
		return err
	}

	w.Log().Info("Batch run finished",
		"run_id", summary.RunID,
		"tickers", summary.TickersScored,
		"duration", summary.Duration,
	)
	return nil
}
