package clickhouse

import (
	"context"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/google/uuid"

	"minerva/internal/domain/rating"
	"minerva/pkg/errors"
)

// Compile-time check
var _ rating.HistoryRepository = (*RatingHistoryRepository)(nil)

// RatingHistoryRepository implements rating.HistoryRepository for ClickHouse.
// Each batch run appends one row per ticker; prior runs are never amended,
// giving a full score history per ticker for backtesting.
type RatingHistoryRepository struct {
	conn driver.Conn
}

// NewRatingHistoryRepository creates a new rating history repository
func NewRatingHistoryRepository(conn driver.Conn) *RatingHistoryRepository {
	return &RatingHistoryRepository{conn: conn}
}

// AppendBatch stores the full scored batch for one run
func (r *RatingHistoryRepository) AppendBatch(ctx context.Context, ratings []*rating.Rating) error {
	if len(ratings) == 0 {
		return nil
	}

	query := `
		INSERT INTO rating_history (
			ticker, rating_date, run_id,
			momentum_score, quality_score, valuation_score,
			growth_score, financial_stability_score, cash_flow_score,
			composite_score, grade, action, rank
		)
	`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return errors.Wrap(err, "failed to prepare rating history batch")
	}

	for _, rec := range ratings {
		err := batch.Append(
			rec.Ticker,
			rec.RatingDate,
			rec.RunID.String(),
			rec.MomentumScore,
			rec.QualityScore,
			rec.ValuationScore,
			rec.GrowthScore,
			rec.FinancialStabilityScore,
			rec.CashFlowScore,
			rec.CompositeScore,
			string(rec.Grade),
			string(rec.Action),
			uint32(rec.Rank),
		)
		if err != nil {
			return errors.Wrapf(err, "failed to append rating history row for %s", rec.Ticker)
		}
	}

	if err := batch.Send(); err != nil {
		return errors.Wrap(err, "failed to send rating history batch")
	}

	return nil
}

// GetHistory returns past ratings for a ticker, newest first
func (r *RatingHistoryRepository) GetHistory(ctx context.Context, ticker string, limit int) ([]*rating.Rating, error) {
	query := `
		SELECT
			ticker, rating_date, run_id,
			momentum_score, quality_score, valuation_score,
			growth_score, financial_stability_score, cash_flow_score,
			composite_score, grade, action, rank
		FROM rating_history
		WHERE ticker = ?
		ORDER BY rating_date DESC
		LIMIT ?
	`

	rows, err := r.conn.Query(ctx, query, ticker, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query rating history")
	}
	defer rows.Close()

	var history []*rating.Rating

	for rows.Next() {
		var (
			rec       rating.Rating
			runIDStr  string
			gradeStr  string
			actionStr string
			rank      uint32
		)

		err := rows.Scan(
			&rec.Ticker,
			&rec.RatingDate,
			&runIDStr,
			&rec.MomentumScore,
			&rec.QualityScore,
			&rec.ValuationScore,
			&rec.GrowthScore,
			&rec.FinancialStabilityScore,
			&rec.CashFlowScore,
			&rec.CompositeScore,
			&gradeStr,
			&actionStr,
			&rank,
		)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan rating history row")
		}

		if runID, err := uuid.Parse(runIDStr); err == nil {
			rec.RunID = runID
		}
		rec.Grade = rating.Grade(gradeStr)
		rec.Action = rating.Action(actionStr)
		rec.Rank = int(rank)

		history = append(history, &rec)
	}

	return history, rows.Err()
}
