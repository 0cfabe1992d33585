package rating

import (
	"time"

	"github.com/google/uuid"
)

// Grade is the letter grade assigned from the composite score band.
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
)

// Action is the recommended action tied to a grade.
type Action string

const (
	ActionBuy        Action = "BUY"
	ActionAccumulate Action = "ACCUMULATE"
	ActionHold       Action = "HOLD"
	ActionAvoid      Action = "AVOID"
)

// Rating is the scored row for one ticker in one batch run.
//
// Category scores are always in [0,100]; a missing sub-factor contributes
// zero. Composite is nil only when no category had a single usable input.
// Rank is assigned after the whole batch is scored and is a contiguous
// 1..N permutation, nil composites ranked last.
type Rating struct {
	Ticker     string    `db:"ticker" json:"ticker"`
	RatingDate time.Time `db:"rating_date" json:"rating_date"`
	RunID      uuid.UUID `db:"run_id" json:"run_id"`

	MomentumScore           float64 `db:"momentum_score" json:"momentum_score"`
	QualityScore            float64 `db:"quality_score" json:"quality_score"`
	ValuationScore          float64 `db:"valuation_score" json:"valuation_score"`
	GrowthScore             float64 `db:"growth_score" json:"growth_score"`
	FinancialStabilityScore float64 `db:"financial_stability_score" json:"financial_stability_score"`
	CashFlowScore           float64 `db:"cash_flow_score" json:"cash_flow_score"`

	CompositeScore *float64 `db:"composite_score" json:"composite_score"`
	Grade          Grade    `db:"grade" json:"grade"`
	Action         Action   `db:"action" json:"action"`
	Rank           int      `db:"rank" json:"rank"`

	// Display passthroughs carried alongside the scores for read-side
	// consumers (dashboards, reports)
	YTDReturnPct       *float64 `db:"ytd_return_pct" json:"ytd_return_pct"`
	UpsidePotentialPct *float64 `db:"upside_potential_pct" json:"upside_potential_pct"`
	Beta               *float64 `db:"beta" json:"beta"`
	DebtToEquity       *float64 `db:"debt_to_equity" json:"debt_to_equity"`
	DividendYieldPct   *float64 `db:"dividend_yield_pct" json:"dividend_yield_pct"`
	TargetPrice6M      *float64 `db:"target_price_6m" json:"target_price_6m"`
	AnalystRating      *string  `db:"analyst_rating" json:"analyst_rating"`
}
