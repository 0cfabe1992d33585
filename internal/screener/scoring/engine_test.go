package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minerva/internal/domain/derived"
	"minerva/internal/domain/snapshot"
	"minerva/internal/screener/numeric"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name   string
		v      *float64
		lo, hi float64
		invert bool
		want   float64
		ok     bool
	}{
		{"mid band", numeric.Ptr(27.5), 5, 50, false, 0.5, true},
		{"at lo", numeric.Ptr(5), 5, 50, false, 0, true},
		{"at hi", numeric.Ptr(50), 5, 50, false, 1, true},
		{"below lo clamps", numeric.Ptr(-10), 5, 50, false, 0, true},
		{"above hi clamps", numeric.Ptr(60), 5, 50, false, 1, true},
		{"above hi inverted", numeric.Ptr(60), 5, 50, true, 0, true},
		{"below lo inverted", numeric.Ptr(-10), 5, 50, true, 1, true},
		{"nil value", nil, 5, 50, false, 0, false},
		{"degenerate band", numeric.Ptr(10), 7, 7, false, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Normalize(tt.v, tt.lo, tt.hi, tt.invert)
			assert.Equal(t, tt.ok, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func fullMetrics() *derived.Metrics {
	return &derived.Metrics{
		Ticker:                  "RELIANCE",
		PriceReturn3MPct:        numeric.Ptr(10),
		PriceReturn12MPct:       numeric.Ptr(100),
		Position52WPct:          numeric.Ptr(75),
		GrossMarginPct:          numeric.Ptr(42.5),
		OperatingMarginPct:      numeric.Ptr(18),
		NetMarginPct:            numeric.Ptr(10),
		PEGRatio:                numeric.Ptr(1.25),
		DividendYieldPct:        numeric.Ptr(2.4),
		EPSGrowth12MPct:         numeric.Ptr(100),
		RevenueGrowth12MPct:     numeric.Ptr(100),
		DebtToEquity:            numeric.Ptr(0.8),
		Beta:                    numeric.Ptr(1.1),
		FreeCashFlowMargin:      numeric.Ptr(8),
		OperatingCashFlowMargin: numeric.Ptr(15),
	}
}

func peSnapshot(pe string) *snapshot.Snapshot {
	return &snapshot.Snapshot{Ticker: "RELIANCE", PERatioTrailing: &pe}
}

func TestScore_Categories(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	scores := engine.Score(fullMetrics(), peSnapshot("25"))

	// 0.5·norm(100, −50..100) + 0.3·norm(75, 0..100) + 0.2·norm(10, −50..100)
	assert.InDelta(t, 80.5, scores.Momentum, 0.01)
	// 0.5·(42.5/70) + 0.3·(18/50) + 0.2·(10/40)
	assert.InDelta(t, 46.16, scores.Quality, 0.01)
	// 0.4·inv(25, 5..50) + 0.4·inv(1.25, 0..3) + 0.2·(2.4/10)
	assert.InDelta(t, 50.36, scores.Valuation, 0.01)
	// Both growth factors clamp at the top of the band
	assert.InDelta(t, 100.0, scores.Growth, 0.01)
	// 0.6·inv(0.8, 0..2) + 0.4·inv(1.1, 0..2)
	assert.InDelta(t, 54.0, scores.FinancialStability, 0.01)
	// 0.5·norm(8, −50..50) + 0.5·norm(15, −50..50)
	assert.InDelta(t, 61.5, scores.CashFlow, 0.01)

	require.NotNil(t, scores.Composite)
	assert.InDelta(t, 66.95, *scores.Composite, 0.01)
}

func TestScore_MissingFactorsContributeZero(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	m := fullMetrics()
	m.Position52WPct = nil
	m.PriceReturn3MPct = nil
	scores := engine.Score(m, peSnapshot("25"))

	// Only the 12m return factor remains: 0.5·1.0
	assert.InDelta(t, 50.0, scores.Momentum, 0.01)
	require.NotNil(t, scores.Composite)
}

func TestScore_NilSnapshotDegradesPEFactor(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	scores := engine.Score(fullMetrics(), nil)

	// 0.4·inv(1.25, 0..3) + 0.2·(2.4/10), P/E contributes zero
	assert.InDelta(t, 28.13, scores.Valuation, 0.01)
	require.NotNil(t, scores.Composite)
}

func TestScore_NoUsableInputs(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	scores := engine.Score(&derived.Metrics{Ticker: "GHOST"}, nil)

	assert.Zero(t, scores.Momentum)
	assert.Zero(t, scores.Quality)
	assert.Zero(t, scores.Valuation)
	assert.Zero(t, scores.Growth)
	assert.Zero(t, scores.FinancialStability)
	assert.Zero(t, scores.CashFlow)
	assert.Nil(t, scores.Composite)
}

func TestScore_Deterministic(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	a := engine.Score(fullMetrics(), peSnapshot("25"))
	b := engine.Score(fullMetrics(), peSnapshot("25"))
	assert.Equal(t, a, b)
}
