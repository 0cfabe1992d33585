// Package scoring blends derived metrics into six category scores and one
// composite score per ticker, all in [0,100].
package scoring

import (
	"minerva/internal/domain/derived"
	"minerva/internal/domain/snapshot"
	"minerva/internal/screener/numeric"
)

// Scores is the output of the engine for one ticker.
type Scores struct {
	Momentum           float64
	Quality            float64
	Valuation          float64
	Growth             float64
	FinancialStability float64
	CashFlow           float64

	// Composite is nil only when no sub-factor in any category had a
	// usable input; a partially populated row still scores, with missing
	// factors contributing zero.
	Composite *float64
}

// Engine scores derived rows against a fixed Config.
type Engine struct {
	cfg Config
}

// NewEngine creates a scoring engine with the given config.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Version returns the config version the engine scores with.
func (e *Engine) Version() string {
	return e.cfg.Version
}

// Normalize scales v into [0,1] against the [lo, hi] band, clamping at the
// edges; when invert is set the scale flips (lower raw value scores
// higher). The second return is false when v is nil or the band is
// degenerate, in which case the contribution is zero.
func Normalize(v *float64, lo, hi float64, invert bool) (float64, bool) {
	if v == nil || hi == lo {
		return 0, false
	}

	score := (*v - lo) / (hi - lo)
	if score < 0 {
		score = 0
	} else if score > 1 {
		score = 1
	}

	if invert {
		score = 1 - score
	}
	return score, true
}

// Score computes the six category scores and the composite for one ticker.
// Trailing P/E is read from the raw snapshot, not the derived row; snap
// may be nil, in which case the P/E factor degrades like any missing input.
func (e *Engine) Score(m *derived.Metrics, snap *snapshot.Snapshot) Scores {
	b := e.cfg.Bands
	w := e.cfg.Weights

	var pe *float64
	if snap != nil {
		pe = numeric.SanitizeDefault(snap.PERatioTrailing)
	}

	momentum := newCategory()
	momentum.add(m.PriceReturn12MPct, b.Return, w.MomentumReturn12M, false)
	momentum.add(m.Position52WPct, b.Position52W, w.MomentumPosition52W, false)
	momentum.add(m.PriceReturn3MPct, b.Return, w.MomentumReturn3M, false)

	quality := newCategory()
	quality.add(m.GrossMarginPct, b.GrossMargin, w.QualityGross, false)
	quality.add(m.OperatingMarginPct, b.OperatingMargin, w.QualityOperating, false)
	quality.add(m.NetMarginPct, b.NetMargin, w.QualityNet, false)

	valuation := newCategory()
	valuation.add(pe, b.PETrailing, w.ValuationPE, true)
	valuation.add(m.PEGRatio, b.PEG, w.ValuationPEG, true)
	valuation.add(m.DividendYieldPct, b.DividendYield, w.ValuationDividendYield, false)

	growth := newCategory()
	growth.add(m.EPSGrowth12MPct, b.EPSGrowth, w.GrowthEPS, false)
	growth.add(m.RevenueGrowth12MPct, b.RevenueGrowth, w.GrowthRevenue, false)

	stability := newCategory()
	stability.add(m.DebtToEquity, b.DebtToEquity, w.StabilityDebtToEquity, true)
	stability.add(m.Beta, b.Beta, w.StabilityBeta, true)

	cashflow := newCategory()
	cashflow.add(m.FreeCashFlowMargin, b.CashFlowMargin, w.CashFlowFree, false)
	cashflow.add(m.OperatingCashFlowMargin, b.CashFlowMargin, w.CashFlowOperating, false)

	scores := Scores{
		Momentum:           momentum.score(),
		Quality:            quality.score(),
		Valuation:          valuation.score(),
		Growth:             growth.score(),
		FinancialStability: stability.score(),
		CashFlow:           cashflow.score(),
	}

	if momentum.any || quality.any || valuation.any || growth.any || stability.any || cashflow.any {
		// Composite blends the rounded category scores, matching the
		// stored per-category values exactly.
		composite := numeric.Round2(
			w.Momentum*scores.Momentum +
				w.Quality*scores.Quality +
				w.Valuation*scores.Valuation +
				w.Growth*scores.Growth +
				w.Stability*scores.FinancialStability +
				w.CashFlow*scores.CashFlow,
		)
		scores.Composite = &composite
	}

	return scores
}

// category accumulates weighted normalized sub-factors for one group.
type category struct {
	sum float64
	any bool
}

func newCategory() *category {
	return &category{}
}

func (c *category) add(v *float64, band Band, weight float64, invert bool) {
	n, ok := Normalize(v, band.Lo, band.Hi, invert)
	c.sum += weight * n
	if ok {
		c.any = true
	}
}

func (c *category) score() float64 {
	return numeric.Round2(100 * c.sum)
}
