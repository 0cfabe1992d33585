package postgres

import (
	"context"
	"database/sql"

	"minerva/internal/domain/snapshot"
	"minerva/pkg/errors"
)

// Compile-time check
var _ snapshot.Repository = (*SnapshotRepository)(nil)

// SnapshotRepository implements snapshot.Repository using sqlx
type SnapshotRepository struct {
	db DBTX
}

// NewSnapshotRepository creates a new snapshot repository
func NewSnapshotRepository(db DBTX) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// ListAll returns the full snapshot universe, ordered by ticker
func (r *SnapshotRepository) ListAll(ctx context.Context) ([]*snapshot.Snapshot, error) {
	var snaps []*snapshot.Snapshot

	query := `SELECT * FROM consolidated_snapshots ORDER BY ticker ASC`

	if err := r.db.SelectContext(ctx, &snaps, query); err != nil {
		return nil, errors.Wrap(err, "failed to list snapshots")
	}

	return snaps, nil
}

// GetByTicker returns the live snapshot for one ticker
func (r *SnapshotRepository) GetByTicker(ctx context.Context, ticker string) (*snapshot.Snapshot, error) {
	var snap snapshot.Snapshot

	query := `SELECT * FROM consolidated_snapshots WHERE ticker = $1`

	err := r.db.GetContext(ctx, &snap, query, ticker)
	if err == sql.ErrNoRows {
		return nil, errors.ErrSnapshotMissing
	}
	if err != nil {
		return nil, err
	}

	return &snap, nil
}

// Upsert inserts or replaces the live snapshot for a ticker
func (r *SnapshotRepository) Upsert(ctx context.Context, snap *snapshot.Snapshot) error {
	query := `
		INSERT INTO consolidated_snapshots (
			ticker, company_name, sector, industry,
			current_price, previous_close, price_3m_ago, price_6m_ago, price_12m_ago,
			fifty_two_week_high, fifty_two_week_low,
			market_cap, enterprise_value, pe_ratio_trailing, pe_ratio_forward,
			price_to_sales, price_to_book, ev_to_ebitda,
			total_revenue, net_income, ebitda, gross_margin, operating_margin,
			earnings_per_share, eps_3m_ago, eps_6m_ago, eps_12m_ago, eps_growth,
			revenue_3m_ago, revenue_6m_ago, revenue_12m_ago,
			debt_to_equity, free_cash_flow, operating_cash_flow,
			book_value_per_share, dividend_yield,
			analyst_target_price, analyst_target_high, analyst_target_low,
			analyst_rating, analyst_count,
			beta, volume, avg_volume, shares_outstanding,
			promoter_holding, institutional_holding, updated_at
		) VALUES (
			:ticker, :company_name, :sector, :industry,
			:current_price, :previous_close, :price_3m_ago, :price_6m_ago, :price_12m_ago,
			:fifty_two_week_high, :fifty_two_week_low,
			:market_cap, :enterprise_value, :pe_ratio_trailing, :pe_ratio_forward,
			:price_to_sales, :price_to_book, :ev_to_ebitda,
			:total_revenue, :net_income, :ebitda, :gross_margin, :operating_margin,
			:earnings_per_share, :eps_3m_ago, :eps_6m_ago, :eps_12m_ago, :eps_growth,
			:revenue_3m_ago, :revenue_6m_ago, :revenue_12m_ago,
			:debt_to_equity, :free_cash_flow, :operating_cash_flow,
			:book_value_per_share, :dividend_yield,
			:analyst_target_price, :analyst_target_high, :analyst_target_low,
			:analyst_rating, :analyst_count,
			:beta, :volume, :avg_volume, :shares_outstanding,
			:promoter_holding, :institutional_holding, :updated_at
		)
		ON CONFLICT (ticker) DO UPDATE SET
			company_name = EXCLUDED.company_name,
			sector = EXCLUDED.sector,
			industry = EXCLUDED.industry,
			current_price = EXCLUDED.current_price,
			previous_close = EXCLUDED.previous_close,
			price_3m_ago = EXCLUDED.price_3m_ago,
			price_6m_ago = EXCLUDED.price_6m_ago,
			price_12m_ago = EXCLUDED.price_12m_ago,
			fifty_two_week_high = EXCLUDED.fifty_two_week_high,
			fifty_two_week_low = EXCLUDED.fifty_two_week_low,
			market_cap = EXCLUDED.market_cap,
			enterprise_value = EXCLUDED.enterprise_value,
			pe_ratio_trailing = EXCLUDED.pe_ratio_trailing,
			pe_ratio_forward = EXCLUDED.pe_ratio_forward,
			price_to_sales = EXCLUDED.price_to_sales,
			price_to_book = EXCLUDED.price_to_book,
			ev_to_ebitda = EXCLUDED.ev_to_ebitda,
			total_revenue = EXCLUDED.total_revenue,
			net_income = EXCLUDED.net_income,
			ebitda = EXCLUDED.ebitda,
			gross_margin = EXCLUDED.gross_margin,
			operating_margin = EXCLUDED.operating_margin,
			earnings_per_share = EXCLUDED.earnings_per_share,
			eps_3m_ago = EXCLUDED.eps_3m_ago,
			eps_6m_ago = EXCLUDED.eps_6m_ago,
			eps_12m_ago = EXCLUDED.eps_12m_ago,
			eps_growth = EXCLUDED.eps_growth,
			revenue_3m_ago = EXCLUDED.revenue_3m_ago,
			revenue_6m_ago = EXCLUDED.revenue_6m_ago,
			revenue_12m_ago = EXCLUDED.revenue_12m_ago,
			debt_to_equity = EXCLUDED.debt_to_equity,
			free_cash_flow = EXCLUDED.free_cash_flow,
			operating_cash_flow = EXCLUDED.operating_cash_flow,
			book_value_per_share = EXCLUDED.book_value_per_share,
			dividend_yield = EXCLUDED.dividend_yield,
			analyst_target_price = EXCLUDED.analyst_target_price,
			analyst_target_high = EXCLUDED.analyst_target_high,
			analyst_target_low = EXCLUDED.analyst_target_low,
			analyst_rating = EXCLUDED.analyst_rating,
			analyst_count = EXCLUDED.analyst_count,
			beta = EXCLUDED.beta,
			volume = EXCLUDED.volume,
			avg_volume = EXCLUDED.avg_volume,
			shares_outstanding = EXCLUDED.shares_outstanding,
			promoter_holding = EXCLUDED.promoter_holding,
			institutional_holding = EXCLUDED.institutional_holding,
			updated_at = EXCLUDED.updated_at`

	if _, err := r.db.NamedExecContext(ctx, query, snap); err != nil {
		return errors.Wrapf(err, "failed to upsert snapshot for %s", snap.Ticker)
	}

	return nil
}

// Count returns the number of tickers in the universe
func (r *SnapshotRepository) Count(ctx context.Context) (int, error) {
	var count int

	query := `SELECT COUNT(*) FROM consolidated_snapshots`

	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, err
	}

	return count, nil
}
