package postgres

import (
	"context"
	"database/sql"

	"minerva/internal/domain/derived"
	"minerva/pkg/errors"
)

// Compile-time check
var _ derived.Repository = (*DerivedRepository)(nil)

// DerivedRepository implements derived.Repository using sqlx
type DerivedRepository struct {
	db DBTX
}

// NewDerivedRepository creates a new derived metrics repository
func NewDerivedRepository(db DBTX) *DerivedRepository {
	return &DerivedRepository{db: db}
}

// Upsert inserts or replaces the derived row for a ticker
func (r *DerivedRepository) Upsert(ctx context.Context, m *derived.Metrics) error {
	query := `
		INSERT INTO derived_metrics (
			ticker, snapshot_date,
			price_return_3m_pct, price_return_6m_pct, price_return_12m_pct,
			position_52w_pct, ytd_return_pct,
			market_cap_to_revenue, enterprise_value_to_ebitda, pe_discount_vs_sector,
			book_to_price_ratio, peg_ratio,
			gross_margin_pct, operating_margin_pct, net_margin_pct,
			free_cash_flow_margin, operating_cash_flow_margin,
			eps_growth_3m_pct, eps_growth_6m_pct, eps_growth_12m_pct,
			revenue_growth_3m_pct, revenue_growth_6m_pct, revenue_growth_12m_pct,
			dividend_yield_pct, beta, debt_to_equity,
			dividend_payout_ratio, upside_potential_pct
		) VALUES (
			:ticker, :snapshot_date,
			:price_return_3m_pct, :price_return_6m_pct, :price_return_12m_pct,
			:position_52w_pct, :ytd_return_pct,
			:market_cap_to_revenue, :enterprise_value_to_ebitda, :pe_discount_vs_sector,
			:book_to_price_ratio, :peg_ratio,
			:gross_margin_pct, :operating_margin_pct, :net_margin_pct,
			:free_cash_flow_margin, :operating_cash_flow_margin,
			:eps_growth_3m_pct, :eps_growth_6m_pct, :eps_growth_12m_pct,
			:revenue_growth_3m_pct, :revenue_growth_6m_pct, :revenue_growth_12m_pct,
			:dividend_yield_pct, :beta, :debt_to_equity,
			:dividend_payout_ratio, :upside_potential_pct
		)
		ON CONFLICT (ticker) DO UPDATE SET
			snapshot_date = EXCLUDED.snapshot_date,
			price_return_3m_pct = EXCLUDED.price_return_3m_pct,
			price_return_6m_pct = EXCLUDED.price_return_6m_pct,
			price_return_12m_pct = EXCLUDED.price_return_12m_pct,
			position_52w_pct = EXCLUDED.position_52w_pct,
			ytd_return_pct = EXCLUDED.ytd_return_pct,
			market_cap_to_revenue = EXCLUDED.market_cap_to_revenue,
			enterprise_value_to_ebitda = EXCLUDED.enterprise_value_to_ebitda,
			pe_discount_vs_sector = EXCLUDED.pe_discount_vs_sector,
			book_to_price_ratio = EXCLUDED.book_to_price_ratio,
			peg_ratio = EXCLUDED.peg_ratio,
			gross_margin_pct = EXCLUDED.gross_margin_pct,
			operating_margin_pct = EXCLUDED.operating_margin_pct,
			net_margin_pct = EXCLUDED.net_margin_pct,
			free_cash_flow_margin = EXCLUDED.free_cash_flow_margin,
			operating_cash_flow_margin = EXCLUDED.operating_cash_flow_margin,
			eps_growth_3m_pct = EXCLUDED.eps_growth_3m_pct,
			eps_growth_6m_pct = EXCLUDED.eps_growth_6m_pct,
			eps_growth_12m_pct = EXCLUDED.eps_growth_12m_pct,
			revenue_growth_3m_pct = EXCLUDED.revenue_growth_3m_pct,
			revenue_growth_6m_pct = EXCLUDED.revenue_growth_6m_pct,
			revenue_growth_12m_pct = EXCLUDED.revenue_growth_12m_pct,
			dividend_yield_pct = EXCLUDED.dividend_yield_pct,
			beta = EXCLUDED.beta,
			debt_to_equity = EXCLUDED.debt_to_equity,
			dividend_payout_ratio = EXCLUDED.dividend_payout_ratio,
			upside_potential_pct = EXCLUDED.upside_potential_pct`

	if _, err := r.db.NamedExecContext(ctx, query, m); err != nil {
		return errors.Wrapf(err, "failed to upsert derived metrics for %s", m.Ticker)
	}

	return nil
}

// GetByTicker returns the latest derived row for one ticker
func (r *DerivedRepository) GetByTicker(ctx context.Context, ticker string) (*derived.Metrics, error) {
	var m derived.Metrics

	query := `SELECT * FROM derived_metrics WHERE ticker = $1`

	err := r.db.GetContext(ctx, &m, query, ticker)
	if err == sql.ErrNoRows {
		return nil, errors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &m, nil
}

// ListAll returns all derived rows, ordered by ticker
func (r *DerivedRepository) ListAll(ctx context.Context) ([]*derived.Metrics, error) {
	var rows []*derived.Metrics

	query := `SELECT * FROM derived_metrics ORDER BY ticker ASC`

	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, errors.Wrap(err, "failed to list derived metrics")
	}

	return rows, nil
}
