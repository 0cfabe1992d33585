package scoring

// Band is a min-max normalization band for one sub-factor.
type Band struct {
	Lo float64
	Hi float64
}

// Config carries every band and weight the scoring engine uses. Bands and
// weights are fixed per config version, never derived from the data, so
// two runs with the same config and the same snapshots produce identical
// scores.
type Config struct {
	// Version identifies the band/weight set so scores stay reproducible
	// if bands are tuned later.
	Version string

	Bands   Bands
	Weights Weights
}

// Bands holds the normalization bands per sub-factor. Returns share one
// band across the 3m and 12m horizons.
type Bands struct {
	Return          Band
	Position52W     Band
	GrossMargin     Band
	OperatingMargin Band
	NetMargin       Band
	PETrailing      Band
	PEG             Band
	DividendYield   Band
	EPSGrowth       Band
	RevenueGrowth   Band
	DebtToEquity    Band
	Beta            Band
	CashFlowMargin  Band
}

// Weights holds the sub-factor weights inside each category and the
// category weights inside the composite. Each group sums to 1.
type Weights struct {
	MomentumReturn12M   float64
	MomentumPosition52W float64
	MomentumReturn3M    float64

	QualityGross     float64
	QualityOperating float64
	QualityNet       float64

	ValuationPE            float64
	ValuationPEG           float64
	ValuationDividendYield float64

	GrowthEPS     float64
	GrowthRevenue float64

	StabilityDebtToEquity float64
	StabilityBeta         float64

	CashFlowFree      float64
	CashFlowOperating float64

	Momentum  float64
	Quality   float64
	Valuation float64
	Growth    float64
	Stability float64
	CashFlow  float64
}

// DefaultConfig returns the production band/weight set.
func DefaultConfig() Config {
	return Config{
		Version: "v1",
		Bands: Bands{
			Return:          Band{-50, 100},
			Position52W:     Band{0, 100},
			GrossMargin:     Band{0, 70},
			OperatingMargin: Band{0, 50},
			NetMargin:       Band{0, 40},
			PETrailing:      Band{5, 50},
			PEG:             Band{0, 3},
			DividendYield:   Band{0, 10},
			EPSGrowth:       Band{-50, 50},
			RevenueGrowth:   Band{-50, 50},
			DebtToEquity:    Band{0, 2},
			Beta:            Band{0, 2},
			CashFlowMargin:  Band{-50, 50},
		},
		Weights: Weights{
			MomentumReturn12M:   0.5,
			MomentumPosition52W: 0.3,
			MomentumReturn3M:    0.2,

			QualityGross:     0.5,
			QualityOperating: 0.3,
			QualityNet:       0.2,

			ValuationPE:            0.4,
			ValuationPEG:           0.4,
			ValuationDividendYield: 0.2,

			GrowthEPS:     0.6,
			GrowthRevenue: 0.4,

			StabilityDebtToEquity: 0.6,
			StabilityBeta:         0.4,

			CashFlowFree:      0.5,
			CashFlowOperating: 0.5,

			Momentum:  0.2,
			Quality:   0.2,
			Valuation: 0.2,
			Growth:    0.2,
			Stability: 0.1,
			CashFlow:  0.1,
		},
	}
}
