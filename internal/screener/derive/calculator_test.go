package derive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minerva/internal/domain/snapshot"
)

func str(s string) *string { return &s }

func testSnapshot() *snapshot.Snapshot {
	return &snapshot.Snapshot{
		Ticker:             "RELIANCE",
		Sector:             str("Energy"),
		CurrentPrice:       str("110"),
		PreviousClose:      str("100"),
		Price3MAgo:         str("100"),
		Price6MAgo:         str("88"),
		Price12MAgo:        str("55"),
		FiftyTwoWeekHigh:   str("120"),
		FiftyTwoWeekLow:    str("80"),
		MarketCap:          str("1,000,000"),
		EnterpriseValue:    str("1,200,000"),
		EBITDA:             str("60,000"),
		PERatioTrailing:    str("25"),
		TotalRevenue:       str("500,000"),
		NetIncome:          str("50,000"),
		GrossMargin:        str("42.5%"),
		OperatingMargin:    str("18%"),
		EarningsPerShare:   str("12"),
		EPS3MAgo:           str("10"),
		EPS6MAgo:           str("8"),
		EPS12MAgo:          str("6"),
		EPSGrowth:          str("20"),
		Revenue3MAgo:       str("450,000"),
		Revenue6MAgo:       str("400,000"),
		Revenue12MAgo:      str("250,000"),
		DebtToEquity:       str("0.8"),
		FreeCashFlow:       str("40,000"),
		OperatingCashFlow:  str("75,000"),
		BookValuePerShare:  str("55"),
		DividendYield:      str("2.4"),
		AnalystTargetPrice: str("₹132.00"),
		Beta:               str("1.1"),
	}
}

func TestCompute_Returns(t *testing.T) {
	m := NewCalculator(nil).Compute(testSnapshot(), time.Now())

	require.NotNil(t, m.PriceReturn3MPct)
	assert.Equal(t, 10.0, *m.PriceReturn3MPct)

	require.NotNil(t, m.PriceReturn6MPct)
	assert.Equal(t, 25.0, *m.PriceReturn6MPct)

	require.NotNil(t, m.PriceReturn12MPct)
	assert.Equal(t, 100.0, *m.PriceReturn12MPct)

	require.NotNil(t, m.YTDReturnPct)
	assert.Equal(t, 10.0, *m.YTDReturnPct)
}

func TestCompute_ReturnNilOnMissingOrZeroLookback(t *testing.T) {
	snap := testSnapshot()
	snap.Price3MAgo = nil
	snap.Price6MAgo = str("0")
	m := NewCalculator(nil).Compute(snap, time.Now())

	assert.Nil(t, m.PriceReturn3MPct)
	assert.Nil(t, m.PriceReturn6MPct)
	assert.NotNil(t, m.PriceReturn12MPct)
}

func TestCompute_Position52W(t *testing.T) {
	snap := testSnapshot()
	m := NewCalculator(nil).Compute(snap, time.Now())
	require.NotNil(t, m.Position52WPct)
	assert.Equal(t, 75.0, *m.Position52WPct)

	// Current pinned at the low gives 0, not nil
	snap.CurrentPrice = str("50")
	snap.FiftyTwoWeekLow = str("50")
	snap.FiftyTwoWeekHigh = str("100")
	m = NewCalculator(nil).Compute(snap, time.Now())
	require.NotNil(t, m.Position52WPct)
	assert.Equal(t, 0.0, *m.Position52WPct)

	// Collapsed range degrades to nil
	snap.FiftyTwoWeekHigh = str("50")
	m = NewCalculator(nil).Compute(snap, time.Now())
	assert.Nil(t, m.Position52WPct)
}

func TestCompute_Ratios(t *testing.T) {
	m := NewCalculator(nil).Compute(testSnapshot(), time.Now())

	require.NotNil(t, m.MarketCapToRevenue)
	assert.Equal(t, 2.0, *m.MarketCapToRevenue)

	require.NotNil(t, m.EnterpriseValueToEBITDA)
	assert.Equal(t, 20.0, *m.EnterpriseValueToEBITDA)

	require.NotNil(t, m.NetMarginPct)
	assert.Equal(t, 10.0, *m.NetMarginPct)

	require.NotNil(t, m.BookToPriceRatio)
	assert.Equal(t, 0.5, *m.BookToPriceRatio)

	require.NotNil(t, m.PEGRatio)
	assert.Equal(t, 1.25, *m.PEGRatio)

	require.NotNil(t, m.FreeCashFlowMargin)
	assert.Equal(t, 8.0, *m.FreeCashFlowMargin)

	require.NotNil(t, m.OperatingCashFlowMargin)
	assert.Equal(t, 15.0, *m.OperatingCashFlowMargin)

	require.NotNil(t, m.DividendPayoutRatio)
	assert.Equal(t, 0.2, *m.DividendPayoutRatio)

	require.NotNil(t, m.UpsidePotentialPct)
	assert.Equal(t, 20.0, *m.UpsidePotentialPct)
}

func TestCompute_MarginPassthroughs(t *testing.T) {
	m := NewCalculator(nil).Compute(testSnapshot(), time.Now())

	require.NotNil(t, m.GrossMarginPct)
	assert.Equal(t, 42.5, *m.GrossMarginPct)

	require.NotNil(t, m.OperatingMarginPct)
	assert.Equal(t, 18.0, *m.OperatingMarginPct)

	require.NotNil(t, m.Beta)
	assert.Equal(t, 1.1, *m.Beta)

	require.NotNil(t, m.DebtToEquity)
	assert.Equal(t, 0.8, *m.DebtToEquity)
}

func TestCompute_Growth(t *testing.T) {
	m := NewCalculator(nil).Compute(testSnapshot(), time.Now())

	require.NotNil(t, m.EPSGrowth3MPct)
	assert.Equal(t, 20.0, *m.EPSGrowth3MPct)

	require.NotNil(t, m.EPSGrowth12MPct)
	assert.Equal(t, 100.0, *m.EPSGrowth12MPct)

	require.NotNil(t, m.RevenueGrowth3MPct)
	assert.Equal(t, 11.11, *m.RevenueGrowth3MPct)

	require.NotNil(t, m.RevenueGrowth12MPct)
	assert.Equal(t, 100.0, *m.RevenueGrowth12MPct)
}

func TestCompute_SectorBenchmark(t *testing.T) {
	snap := testSnapshot()

	// No benchmark table: discount stays nil
	m := NewCalculator(nil).Compute(snap, time.Now())
	assert.Nil(t, m.PEDiscountVsSector)

	// Benchmark for another sector: still nil
	m = NewCalculator(map[string]float64{"Banking": 18}).Compute(snap, time.Now())
	assert.Nil(t, m.PEDiscountVsSector)

	// Matching benchmark: pe − sector_pe
	m = NewCalculator(map[string]float64{"Energy": 18.5}).Compute(snap, time.Now())
	require.NotNil(t, m.PEDiscountVsSector)
	assert.Equal(t, 6.5, *m.PEDiscountVsSector)

	// Sector unknown on the snapshot: nil
	snap.Sector = nil
	m = NewCalculator(map[string]float64{"Energy": 18.5}).Compute(snap, time.Now())
	assert.Nil(t, m.PEDiscountVsSector)
}

func TestCompute_EmptySnapshotDegradesToNil(t *testing.T) {
	snap := &snapshot.Snapshot{Ticker: "GHOST"}
	m := NewCalculator(nil).Compute(snap, time.Now())

	assert.Equal(t, "GHOST", m.Ticker)
	assert.Nil(t, m.PriceReturn12MPct)
	assert.Nil(t, m.Position52WPct)
	assert.Nil(t, m.MarketCapToRevenue)
	assert.Nil(t, m.NetMarginPct)
	assert.Nil(t, m.PEGRatio)
	assert.Nil(t, m.UpsidePotentialPct)
}

func TestCompute_MalformedTextDegradesToNil(t *testing.T) {
	snap := testSnapshot()
	snap.CurrentPrice = str("n/a")
	m := NewCalculator(nil).Compute(snap, time.Now())

	assert.Nil(t, m.PriceReturn3MPct)
	assert.Nil(t, m.YTDReturnPct)
	assert.Nil(t, m.Position52WPct)
	// Fields not involving current price still compute
	assert.NotNil(t, m.NetMarginPct)
}
