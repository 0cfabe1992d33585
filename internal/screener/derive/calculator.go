// Package derive turns one raw fundamentals snapshot into the full set of
// derived ratios, returns and margins. The calculator is stateless per
// ticker: it consults nothing beyond the single snapshot and the sector
// benchmark table, so batches parallelize trivially.
package derive

import (
	"time"

	"minerva/internal/domain/derived"
	"minerva/internal/domain/snapshot"
	"minerva/internal/screener/numeric"
)

// Calculator computes derived metrics from raw snapshots.
//
// Every formula shares one policy: the result is nil unless every operand
// is non-nil, and for ratios the denominator is additionally non-zero.
// Malformed input never produces an error, it degrades to nil.
type Calculator struct {
	// SectorBenchmarks maps sector name to the universe's average trailing
	// P/E. When a snapshot's sector has no benchmark the P/E discount
	// stays nil.
	SectorBenchmarks map[string]float64

	maxMagnitude float64
}

// NewCalculator creates a calculator with the given sector benchmarks.
// Pass nil or an empty map when benchmarks are not yet available.
func NewCalculator(sectorBenchmarks map[string]float64) *Calculator {
	return &Calculator{
		SectorBenchmarks: sectorBenchmarks,
		maxMagnitude:     numeric.DefaultMaxMagnitude,
	}
}

// Compute produces the derived metrics row for one snapshot.
func (c *Calculator) Compute(snap *snapshot.Snapshot, asOf time.Time) *derived.Metrics {
	cp := c.clean(snap.CurrentPrice)
	pc := c.clean(snap.PreviousClose)
	p3m := c.clean(snap.Price3MAgo)
	p6m := c.clean(snap.Price6MAgo)
	p12m := c.clean(snap.Price12MAgo)
	high52w := c.clean(snap.FiftyTwoWeekHigh)
	low52w := c.clean(snap.FiftyTwoWeekLow)

	marketCap := c.clean(snap.MarketCap)
	enterpriseValue := c.clean(snap.EnterpriseValue)
	ebitda := c.clean(snap.EBITDA)
	peTrailing := c.clean(snap.PERatioTrailing)
	totalRevenue := c.clean(snap.TotalRevenue)
	netIncome := c.clean(snap.NetIncome)

	eps := c.clean(snap.EarningsPerShare)
	eps3m := c.clean(snap.EPS3MAgo)
	eps6m := c.clean(snap.EPS6MAgo)
	eps12m := c.clean(snap.EPS12MAgo)
	epsGrowth := c.clean(snap.EPSGrowth)
	rev3m := c.clean(snap.Revenue3MAgo)
	rev6m := c.clean(snap.Revenue6MAgo)
	rev12m := c.clean(snap.Revenue12MAgo)

	bvps := c.clean(snap.BookValuePerShare)
	dividendYield := c.clean(snap.DividendYield)
	freeCashFlow := c.clean(snap.FreeCashFlow)
	operatingCashFlow := c.clean(snap.OperatingCashFlow)
	analystTarget := c.clean(snap.AnalystTargetPrice)

	m := &derived.Metrics{
		Ticker:       snap.Ticker,
		SnapshotDate: asOf,

		PriceReturn3MPct:  pctChange(cp, p3m),
		PriceReturn6MPct:  pctChange(cp, p6m),
		PriceReturn12MPct: pctChange(cp, p12m),
		Position52WPct:    rangePosition(cp, low52w, high52w),
		YTDReturnPct:      pctChange(cp, pc),

		MarketCapToRevenue:      ratio(marketCap, totalRevenue),
		EnterpriseValueToEBITDA: ratio(enterpriseValue, ebitda),
		PEDiscountVsSector:      c.peDiscount(peTrailing, snap.SectorName()),
		BookToPriceRatio:        ratio(bvps, cp),
		PEGRatio:                ratio(peTrailing, epsGrowth),

		GrossMarginPct:          c.clean(snap.GrossMargin),
		OperatingMarginPct:      c.clean(snap.OperatingMargin),
		NetMarginPct:            ratioPct(netIncome, totalRevenue),
		FreeCashFlowMargin:      ratioPct(freeCashFlow, totalRevenue),
		OperatingCashFlowMargin: ratioPct(operatingCashFlow, totalRevenue),

		EPSGrowth3MPct:      pctChange(eps, eps3m),
		EPSGrowth6MPct:      pctChange(eps, eps6m),
		EPSGrowth12MPct:     pctChange(eps, eps12m),
		RevenueGrowth3MPct:  pctChange(totalRevenue, rev3m),
		RevenueGrowth6MPct:  pctChange(totalRevenue, rev6m),
		RevenueGrowth12MPct: pctChange(totalRevenue, rev12m),

		DividendYieldPct:    dividendYield,
		Beta:                c.clean(snap.Beta),
		DebtToEquity:        c.clean(snap.DebtToEquity),
		DividendPayoutRatio: ratio(dividendYield, eps),
		UpsidePotentialPct:  pctChange(analystTarget, cp),
	}

	return m
}

func (c *Calculator) clean(raw *string) *float64 {
	return numeric.Sanitize(raw, c.maxMagnitude)
}

// peDiscount is trailing P/E minus the sector benchmark. The benchmark is
// an external input; with no entry for the sector the field stays nil.
func (c *Calculator) peDiscount(peTrailing *float64, sector string) *float64 {
	if peTrailing == nil || sector == "" {
		return nil
	}
	sectorPE, ok := c.SectorBenchmarks[sector]
	if !ok {
		return nil
	}
	v := numeric.Round2(*peTrailing - sectorPE)
	return &v
}

// pctChange is (current − previous) / previous × 100.
func pctChange(current, previous *float64) *float64 {
	if current == nil || previous == nil || *previous == 0 {
		return nil
	}
	v := numeric.Round2((*current - *previous) / *previous * 100)
	return &v
}

// ratio is a plain numerator/denominator ratio.
func ratio(num, den *float64) *float64 {
	if num == nil || den == nil || *den == 0 {
		return nil
	}
	v := numeric.Round2(*num / *den)
	return &v
}

// ratioPct is ratio × 100.
func ratioPct(num, den *float64) *float64 {
	if num == nil || den == nil || *den == 0 {
		return nil
	}
	v := numeric.Round2(*num / *den * 100)
	return &v
}

// rangePosition is the position of current inside [low, high] as a
// percentage; nil when the range collapses (high == low).
func rangePosition(current, low, high *float64) *float64 {
	if current == nil || low == nil || high == nil || *high == *low {
		return nil
	}
	v := numeric.Round2((*current - *low) / (*high - *low) * 100)
	return &v
}
