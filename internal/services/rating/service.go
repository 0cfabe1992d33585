// Package rating orchestrates the batch pipeline: load the snapshot
// universe, derive metrics and score every ticker concurrently, rank the
// whole batch, then persist and publish the results.
package rating

import (
	"context"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"minerva/internal/adapters/config"
	"minerva/internal/domain/derived"
	"minerva/internal/domain/rating"
	"minerva/internal/domain/snapshot"
	"minerva/internal/events"
	"minerva/internal/metrics"
	"minerva/internal/screener/derive"
	"minerva/internal/screener/numeric"
	"minerva/internal/screener/ranking"
	"minerva/internal/screener/scoring"
	"minerva/pkg/errors"
	"minerva/pkg/logger"
)

const (
	runLockKey = "ratings:run"

	// Generous upper bound for one full-universe run; the lock expires on
	// its own if the process dies mid-run.
	runLockTTL = 2 * time.Hour
)

// Locker is the distributed lock used to keep batch runs exclusive.
type Locker interface {
	AcquireLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key string) error
}

// LeaderboardStore caches the top-ranked slice of a finished batch.
type LeaderboardStore interface {
	Store(ctx context.Context, ranked []*rating.Rating, size int) error
}

// EventPublisher publishes rating lifecycle events.
type EventPublisher interface {
	PublishRunCompleted(ctx context.Context, event *events.RunCompletedEvent) error
	PublishRunFailed(ctx context.Context, event *events.RunFailedEvent) error
	PublishGradeChanged(ctx context.Context, event *events.GradeChangedEvent) error
}

// BenchmarkProvider supplies the current sector average P/E table.
type BenchmarkProvider interface {
	Current() map[string]float64
}

// RunSummary describes one finished batch run.
type RunSummary struct {
	RunID         uuid.UUID
	RatingDate    time.Time
	TickersScored int
	NilComposites int
	GradeChanges  int
	Duration      time.Duration
}

// Service runs the derive, score, rank, persist pipeline over the full
// snapshot universe.
type Service struct {
	snapshots   snapshot.Repository
	derived     derived.Repository
	ratings     rating.Repository
	history     rating.HistoryRepository
	leaderboard LeaderboardStore
	locker      Locker
	publisher   EventPublisher
	benchmarks  BenchmarkProvider

	engine  *scoring.Engine
	tracker errors.Tracker
	cfg     config.WorkerConfig
	log     *logger.Logger
}

// NewService creates the batch pipeline service.
func NewService(
	snapshots snapshot.Repository,
	derivedRepo derived.Repository,
	ratings rating.Repository,
	history rating.HistoryRepository,
	leaderboard LeaderboardStore,
	locker Locker,
	publisher EventPublisher,
	benchmarks BenchmarkProvider,
	engine *scoring.Engine,
	tracker errors.Tracker,
	cfg config.WorkerConfig,
) *Service {
	return &Service{
		snapshots:   snapshots,
		derived:     derivedRepo,
		ratings:     ratings,
		history:     history,
		leaderboard: leaderboard,
		locker:      locker,
		publisher:   publisher,
		benchmarks:  benchmarks,
		engine:      engine,
		tracker:     tracker,
		cfg:         cfg,
		log:         logger.Get().With("service", "rating_pipeline"),
	}
}

// scored pairs the per-ticker pipeline outputs before the rank barrier.
type scored struct {
	metrics *derived.Metrics
	rating  *rating.Rating
}

// RunBatch executes one full pipeline run. Runs are exclusive: a second
// call while one is in flight returns ErrRunInProgress.
func (s *Service) RunBatch(ctx context.Context) (*RunSummary, error) {
	acquired, err := s.locker.AcquireLock(ctx, runLockKey, runLockTTL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to acquire run lock")
	}
	if !acquired {
		return nil, errors.ErrRunInProgress
	}
	defer func() {
		if err := s.locker.ReleaseLock(context.WithoutCancel(ctx), runLockKey); err != nil {
			s.log.Warn("Failed to release run lock", "error", err)
		}
	}()

	start := time.Now()
	runID := uuid.New()
	ratingDate := start.UTC().Truncate(24 * time.Hour)

	summary, err := s.run(ctx, runID, ratingDate, start)
	metrics.RecordPipelineRun(time.Since(start), tickersOf(summary), nilsOf(summary), err)

	if err != nil {
		s.tracker.CaptureError(ctx, err, map[string]string{
			"run_id":  runID.String(),
			"service": "rating_pipeline",
		})
		if pubErr := s.publisher.PublishRunFailed(ctx, &events.RunFailedEvent{
			RunID: runID,
			Error: err.Error(),
		}); pubErr != nil {
			s.log.Warn("Failed to publish run failed event", "error", pubErr)
		}
		return nil, err
	}

	s.log.Info("Rating batch run completed",
		"run_id", runID,
		"tickers", humanize.Comma(int64(summary.TickersScored)),
		"nil_composites", summary.NilComposites,
		"grade_changes", summary.GradeChanges,
		"duration", summary.Duration,
	)

	return summary, nil
}

func (s *Service) run(ctx context.Context, runID uuid.UUID, ratingDate, start time.Time) (*RunSummary, error) {
	universe, err := s.snapshots.ListAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load snapshot universe")
	}
	if len(universe) == 0 {
		return nil, errors.ErrEmptyUniverse
	}

	// Grades from the previous run, read before this run overwrites them
	previousGrades, err := s.loadPreviousGrades(ctx)
	if err != nil {
		s.log.Warn("Failed to load previous grades, grade change events suppressed", "error", err)
		previousGrades = nil
	}

	calc := derive.NewCalculator(s.benchmarks.Current())
	batch := s.scoreUniverse(calc, universe, runID, ratingDate)

	rows := make([]*rating.Rating, len(batch))
	for i, sc := range batch {
		rows[i] = sc.rating
	}
	ranking.Rank(rows)

	if err := s.persist(ctx, batch, rows); err != nil {
		return nil, err
	}

	summary := s.summarize(rows, runID, ratingDate)
	summary.Duration = time.Since(start)
	s.publish(ctx, rows, previousGrades, summary)

	return summary, nil
}

// scoreUniverse runs the per-ticker derive and score stages over a bounded
// worker pool. Results land at the ticker's universe index, so output order
// is independent of goroutine scheduling.
func (s *Service) scoreUniverse(
	calc *derive.Calculator,
	universe []*snapshot.Snapshot,
	runID uuid.UUID,
	ratingDate time.Time,
) []scored {
	concurrency := s.cfg.PipelineMaxConcurrency
	if concurrency < 1 {
		concurrency = 1
	}

	batch := make([]scored, len(universe))
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	for i, snap := range universe {
		wg.Add(1)
		sem <- struct{}{}

		go func(i int, snap *snapshot.Snapshot) {
			defer wg.Done()
			defer func() { <-sem }()

			m := calc.Compute(snap, ratingDate)
			scores := s.engine.Score(m, snap)
			batch[i] = scored{
				metrics: m,
				rating:  s.buildRating(snap, m, scores, runID, ratingDate),
			}
		}(i, snap)
	}

	wg.Wait()
	return batch
}

// buildRating assembles the persisted row from the engine output plus the
// display passthroughs.
func (s *Service) buildRating(
	snap *snapshot.Snapshot,
	m *derived.Metrics,
	scores scoring.Scores,
	runID uuid.UUID,
	ratingDate time.Time,
) *rating.Rating {
	grade, action := ranking.BandOf(scores.Composite)

	return &rating.Rating{
		Ticker:     snap.Ticker,
		RatingDate: ratingDate,
		RunID:      runID,

		MomentumScore:           scores.Momentum,
		QualityScore:            scores.Quality,
		ValuationScore:          scores.Valuation,
		GrowthScore:             scores.Growth,
		FinancialStabilityScore: scores.FinancialStability,
		CashFlowScore:           scores.CashFlow,

		CompositeScore: scores.Composite,
		Grade:          grade,
		Action:         action,

		YTDReturnPct:       m.YTDReturnPct,
		UpsidePotentialPct: m.UpsidePotentialPct,
		Beta:               m.Beta,
		DebtToEquity:       m.DebtToEquity,
		DividendYieldPct:   m.DividendYieldPct,
		TargetPrice6M:      numeric.SanitizeDefault(snap.AnalystTargetPrice),
		AnalystRating:      snap.AnalystRating,
	}
}

// persist writes derived rows and ratings to PostgreSQL and appends the
// batch to ClickHouse history. The Postgres writes are the source of truth;
// a history append failure aborts the run so the stores never diverge
// silently.
func (s *Service) persist(ctx context.Context, batch []scored, ranked []*rating.Rating) error {
	var merr errors.MultiError

	for _, sc := range batch {
		if err := s.derived.Upsert(ctx, sc.metrics); err != nil {
			merr.Add(errors.Wrapf(err, "derived upsert failed for %s", sc.metrics.Ticker))
		}
	}
	if merr.HasErrors() {
		return errors.Wrap(merr.ToError(), "failed to persist derived metrics")
	}

	for _, r := range ranked {
		if err := s.ratings.Upsert(ctx, r); err != nil {
			merr.Add(errors.Wrapf(err, "rating upsert failed for %s", r.Ticker))
		}
	}
	if merr.HasErrors() {
		return errors.Wrap(merr.ToError(), "failed to persist ratings")
	}

	if err := s.history.AppendBatch(ctx, ranked); err != nil {
		return errors.Wrap(err, "failed to append rating history")
	}

	return nil
}

// publish pushes the leaderboard cache, grade change events and the run
// completed event. All of it is best-effort: the run already persisted.
func (s *Service) publish(
	ctx context.Context,
	ranked []*rating.Rating,
	previousGrades map[string]rating.Grade,
	summary *RunSummary,
) {
	if err := s.leaderboard.Store(ctx, ranked, s.cfg.LeaderboardSize); err != nil {
		s.log.Warn("Failed to store leaderboard", "error", err)
	}

	for _, r := range ranked {
		prev, seen := previousGrades[r.Ticker]
		if !seen || prev == r.Grade {
			continue
		}

		summary.GradeChanges++
		if err := s.publisher.PublishGradeChanged(ctx, &events.GradeChangedEvent{
			Ticker:         r.Ticker,
			RunID:          r.RunID,
			RatingDate:     r.RatingDate,
			PreviousGrade:  prev,
			Grade:          r.Grade,
			Action:         r.Action,
			CompositeScore: r.CompositeScore,
			Rank:           r.Rank,
		}); err != nil {
			s.log.Warn("Failed to publish grade change", "ticker", r.Ticker, "error", err)
		}
	}

	if err := s.publisher.PublishRunCompleted(ctx, &events.RunCompletedEvent{
		RunID:         summary.RunID,
		RatingDate:    summary.RatingDate,
		TickersScored: summary.TickersScored,
		NilComposites: summary.NilComposites,
		ConfigVersion: s.engine.Version(),
		DurationMS:    summary.Duration.Milliseconds(),
	}); err != nil {
		s.log.Warn("Failed to publish run completed event", "error", err)
	}
}

func (s *Service) summarize(ranked []*rating.Rating, runID uuid.UUID, ratingDate time.Time) *RunSummary {
	summary := &RunSummary{
		RunID:         runID,
		RatingDate:    ratingDate,
		TickersScored: len(ranked),
	}

	gradeCounts := map[rating.Grade]int{}
	for _, r := range ranked {
		gradeCounts[r.Grade]++
		if r.CompositeScore == nil {
			summary.NilComposites++
		}
	}

	for _, g := range []rating.Grade{rating.GradeA, rating.GradeB, rating.GradeC, rating.GradeD} {
		metrics.GradeDistribution.WithLabelValues(string(g)).Set(float64(gradeCounts[g]))
	}

	return summary
}

func (s *Service) loadPreviousGrades(ctx context.Context) (map[string]rating.Grade, error) {
	previous, err := s.ratings.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	grades := make(map[string]rating.Grade, len(previous))
	for _, r := range previous {
		grades[r.Ticker] = r.Grade
	}
	return grades, nil
}

func tickersOf(s *RunSummary) int {
	if s == nil {
		return 0
	}
	return s.TickersScored
}

func nilsOf(s *RunSummary) int {
	if s == nil {
		return 0
	}
	return s.NilComposites
}
