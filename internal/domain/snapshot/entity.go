package snapshot

import "time"

// Snapshot is the latest raw fundamentals row for a single ticker.
//
// Numeric fields are kept as text at this boundary: the upstream scrapers
// deliver a mix of plain numbers, percent strings and currency-formatted
// strings ("₹1,234.50", "12.4%"). The numeric sanitizer is the only gate
// through which these values enter arithmetic.
type Snapshot struct {
	Ticker      string  `db:"ticker" json:"ticker"`
	CompanyName *string `db:"company_name" json:"company_name"`
	Sector      *string `db:"sector" json:"sector"`
	Industry    *string `db:"industry" json:"industry"`

	// Prices
	CurrentPrice     *string `db:"current_price" json:"current_price"`
	PreviousClose    *string `db:"previous_close" json:"previous_close"`
	Price3MAgo       *string `db:"price_3m_ago" json:"price_3m_ago"`
	Price6MAgo       *string `db:"price_6m_ago" json:"price_6m_ago"`
	Price12MAgo      *string `db:"price_12m_ago" json:"price_12m_ago"`
	FiftyTwoWeekHigh *string `db:"fifty_two_week_high" json:"fifty_two_week_high"`
	FiftyTwoWeekLow  *string `db:"fifty_two_week_low" json:"fifty_two_week_low"`

	// Valuation inputs
	MarketCap       *string `db:"market_cap" json:"market_cap"`
	EnterpriseValue *string `db:"enterprise_value" json:"enterprise_value"`
	PERatioTrailing *string `db:"pe_ratio_trailing" json:"pe_ratio_trailing"`
	PERatioForward  *string `db:"pe_ratio_forward" json:"pe_ratio_forward"`
	PriceToSales    *string `db:"price_to_sales" json:"price_to_sales"`
	PriceToBook     *string `db:"price_to_book" json:"price_to_book"`
	EVToEBITDA      *string `db:"ev_to_ebitda" json:"ev_to_ebitda"`

	// Income statement
	TotalRevenue     *string `db:"total_revenue" json:"total_revenue"`
	NetIncome        *string `db:"net_income" json:"net_income"`
	EBITDA           *string `db:"ebitda" json:"ebitda"`
	GrossMargin      *string `db:"gross_margin" json:"gross_margin"`
	OperatingMargin  *string `db:"operating_margin" json:"operating_margin"`
	EarningsPerShare *string `db:"earnings_per_share" json:"earnings_per_share"`
	EPS3MAgo         *string `db:"eps_3m_ago" json:"eps_3m_ago"`
	EPS6MAgo         *string `db:"eps_6m_ago" json:"eps_6m_ago"`
	EPS12MAgo        *string `db:"eps_12m_ago" json:"eps_12m_ago"`
	EPSGrowth        *string `db:"eps_growth" json:"eps_growth"`
	Revenue3MAgo     *string `db:"revenue_3m_ago" json:"revenue_3m_ago"`
	Revenue6MAgo     *string `db:"revenue_6m_ago" json:"revenue_6m_ago"`
	Revenue12MAgo    *string `db:"revenue_12m_ago" json:"revenue_12m_ago"`

	// Balance sheet / cash flow
	DebtToEquity      *string `db:"debt_to_equity" json:"debt_to_equity"`
	FreeCashFlow      *string `db:"free_cash_flow" json:"free_cash_flow"`
	OperatingCashFlow *string `db:"operating_cash_flow" json:"operating_cash_flow"`
	BookValuePerShare *string `db:"book_value_per_share" json:"book_value_per_share"`
	DividendYield     *string `db:"dividend_yield" json:"dividend_yield"`

	// Analyst fields
	AnalystTargetPrice *string `db:"analyst_target_price" json:"analyst_target_price"`
	AnalystTargetHigh  *string `db:"analyst_target_high" json:"analyst_target_high"`
	AnalystTargetLow   *string `db:"analyst_target_low" json:"analyst_target_low"`
	AnalystRating      *string `db:"analyst_rating" json:"analyst_rating"`
	AnalystCount       *string `db:"analyst_count" json:"analyst_count"`

	// Risk / trading
	Beta              *string `db:"beta" json:"beta"`
	Volume            *string `db:"volume" json:"volume"`
	AvgVolume         *string `db:"avg_volume" json:"avg_volume"`
	SharesOutstanding *string `db:"shares_outstanding" json:"shares_outstanding"`

	// Ownership
	PromoterHolding      *string `db:"promoter_holding" json:"promoter_holding"`
	InstitutionalHolding *string `db:"institutional_holding" json:"institutional_holding"`

	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// SectorName returns the snapshot's sector, or "" when unknown.
func (s *Snapshot) SectorName() string {
	if s.Sector == nil {
		return ""
	}
	return *s.Sector
}
