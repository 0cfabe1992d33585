package postgres

import (
	"context"
	"database/sql"

	"minerva/internal/domain/rating"
	"minerva/pkg/errors"
)

// Compile-time check
var _ rating.Repository = (*RatingRepository)(nil)

// RatingRepository implements rating.Repository using sqlx
type RatingRepository struct {
	db DBTX
}

// NewRatingRepository creates a new rating repository
func NewRatingRepository(db DBTX) *RatingRepository {
	return &RatingRepository{db: db}
}

// Upsert inserts or replaces the rating row for a ticker
func (r *RatingRepository) Upsert(ctx context.Context, rec *rating.Rating) error {
	query := `
		INSERT INTO ratings (
			ticker, rating_date, run_id,
			momentum_score, quality_score, valuation_score,
			growth_score, financial_stability_score, cash_flow_score,
			composite_score, grade, action, rank,
			ytd_return_pct, upside_potential_pct, beta, debt_to_equity,
			dividend_yield_pct, target_price_6m, analyst_rating
		) VALUES (
			:ticker, :rating_date, :run_id,
			:momentum_score, :quality_score, :valuation_score,
			:growth_score, :financial_stability_score, :cash_flow_score,
			:composite_score, :grade, :action, :rank,
			:ytd_return_pct, :upside_potential_pct, :beta, :debt_to_equity,
			:dividend_yield_pct, :target_price_6m, :analyst_rating
		)
		ON CONFLICT (ticker) DO UPDATE SET
			rating_date = EXCLUDED.rating_date,
			run_id = EXCLUDED.run_id,
			momentum_score = EXCLUDED.momentum_score,
			quality_score = EXCLUDED.quality_score,
			valuation_score = EXCLUDED.valuation_score,
			growth_score = EXCLUDED.growth_score,
			financial_stability_score = EXCLUDED.financial_stability_score,
			cash_flow_score = EXCLUDED.cash_flow_score,
			composite_score = EXCLUDED.composite_score,
			grade = EXCLUDED.grade,
			action = EXCLUDED.action,
			rank = EXCLUDED.rank,
			ytd_return_pct = EXCLUDED.ytd_return_pct,
			upside_potential_pct = EXCLUDED.upside_potential_pct,
			beta = EXCLUDED.beta,
			debt_to_equity = EXCLUDED.debt_to_equity,
			dividend_yield_pct = EXCLUDED.dividend_yield_pct,
			target_price_6m = EXCLUDED.target_price_6m,
			analyst_rating = EXCLUDED.analyst_rating`

	if _, err := r.db.NamedExecContext(ctx, query, rec); err != nil {
		return errors.Wrapf(err, "failed to upsert rating for %s", rec.Ticker)
	}

	return nil
}

// GetByTicker returns the latest rating for one ticker
func (r *RatingRepository) GetByTicker(ctx context.Context, ticker string) (*rating.Rating, error) {
	var rec rating.Rating

	query := `SELECT * FROM ratings WHERE ticker = $1`

	err := r.db.GetContext(ctx, &rec, query, ticker)
	if err == sql.ErrNoRows {
		return nil, errors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &rec, nil
}

// ListAll returns all ratings ordered by rank ascending
func (r *RatingRepository) ListAll(ctx context.Context) ([]*rating.Rating, error) {
	var recs []*rating.Rating

	query := `SELECT * FROM ratings ORDER BY rank ASC`

	if err := r.db.SelectContext(ctx, &recs, query); err != nil {
		return nil, errors.Wrap(err, "failed to list ratings")
	}

	return recs, nil
}
