package derived

import "time"

// Metrics is the derived-metrics row for one ticker and one run date.
//
// Every numeric field is either a value rounded to 2 decimals or nil —
// never NaN or Inf. Rows are recomputed wholesale each run and supersede
// the previous run's row via upsert.
type Metrics struct {
	Ticker       string    `db:"ticker" json:"ticker"`
	SnapshotDate time.Time `db:"snapshot_date" json:"snapshot_date"`

	// Price returns (percent)
	PriceReturn3MPct  *float64 `db:"price_return_3m_pct" json:"price_return_3m_pct"`
	PriceReturn6MPct  *float64 `db:"price_return_6m_pct" json:"price_return_6m_pct"`
	PriceReturn12MPct *float64 `db:"price_return_12m_pct" json:"price_return_12m_pct"`
	Position52WPct    *float64 `db:"position_52w_pct" json:"position_52w_pct"`
	YTDReturnPct      *float64 `db:"ytd_return_pct" json:"ytd_return_pct"`

	// Valuation ratios
	MarketCapToRevenue      *float64 `db:"market_cap_to_revenue" json:"market_cap_to_revenue"`
	EnterpriseValueToEBITDA *float64 `db:"enterprise_value_to_ebitda" json:"enterprise_value_to_ebitda"`
	PEDiscountVsSector      *float64 `db:"pe_discount_vs_sector" json:"pe_discount_vs_sector"`
	BookToPriceRatio        *float64 `db:"book_to_price_ratio" json:"book_to_price_ratio"`
	PEGRatio                *float64 `db:"peg_ratio" json:"peg_ratio"`

	// Margins (percent)
	GrossMarginPct          *float64 `db:"gross_margin_pct" json:"gross_margin_pct"`
	OperatingMarginPct      *float64 `db:"operating_margin_pct" json:"operating_margin_pct"`
	NetMarginPct            *float64 `db:"net_margin_pct" json:"net_margin_pct"`
	FreeCashFlowMargin      *float64 `db:"free_cash_flow_margin" json:"free_cash_flow_margin"`
	OperatingCashFlowMargin *float64 `db:"operating_cash_flow_margin" json:"operating_cash_flow_margin"`

	// Growth (percent)
	EPSGrowth3MPct      *float64 `db:"eps_growth_3m_pct" json:"eps_growth_3m_pct"`
	EPSGrowth6MPct      *float64 `db:"eps_growth_6m_pct" json:"eps_growth_6m_pct"`
	EPSGrowth12MPct     *float64 `db:"eps_growth_12m_pct" json:"eps_growth_12m_pct"`
	RevenueGrowth3MPct  *float64 `db:"revenue_growth_3m_pct" json:"revenue_growth_3m_pct"`
	RevenueGrowth6MPct  *float64 `db:"revenue_growth_6m_pct" json:"revenue_growth_6m_pct"`
	RevenueGrowth12MPct *float64 `db:"revenue_growth_12m_pct" json:"revenue_growth_12m_pct"`

	// Sanitized passthroughs used by the scoring engine and reports
	DividendYieldPct    *float64 `db:"dividend_yield_pct" json:"dividend_yield_pct"`
	Beta                *float64 `db:"beta" json:"beta"`
	DebtToEquity        *float64 `db:"debt_to_equity" json:"debt_to_equity"`
	DividendPayoutRatio *float64 `db:"dividend_payout_ratio" json:"dividend_payout_ratio"`
	UpsidePotentialPct  *float64 `db:"upside_potential_pct" json:"upside_potential_pct"`
}
