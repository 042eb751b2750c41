package domain

// RegimeBlock is a contiguous span of years with fixed return-distribution
// parameters for equities and bonds. Blocks are immutable once built.
type RegimeBlock struct {
	DurationYears int     `json:"duration_years"`
	EquityMean    float64 `json:"equity_mean"`
	EquityStd     float64 `json:"equity_std"`
	BondMean      float64 `json:"bond_mean"`
	BondStd       float64 `json:"bond_std"`
	Label         string  `json:"label"`
}

// RegimeSchedule is an ordered sequence of regime blocks covering the
// simulation horizon. It is built once per session and shared read-only
// across all simulated paths.
type RegimeSchedule []RegimeBlock

// TotalYears returns the sum of all block durations.
func (s RegimeSchedule) TotalYears() int {
	total := 0
	for _, b := range s {
		total += b.DurationYears
	}
	return total
}

// ParamsAt returns the return-distribution parameters covering the given
// 0-indexed year. Years past the end of the schedule clamp to the last
// block rather than failing; correct schedule construction makes that
// branch unreachable for a 30-year horizon.
func (s RegimeSchedule) ParamsAt(year int) (equityMean, equityStd, bondMean, bondStd float64) {
	counter := 0
	for _, b := range s {
		if year < counter+b.DurationYears {
			return b.EquityMean, b.EquityStd, b.BondMean, b.BondStd
		}
		counter += b.DurationYears
	}
	last := s[len(s)-1]
	return last.EquityMean, last.EquityStd, last.BondMean, last.BondStd
}

// PathResult is the outcome of one simulated 30-year trajectory. Exactly one
// of the survived/depleted field groups is meaningful, discriminated by
// Survived: AnnualizedReturn for survivors, BankruptcyYear (1-indexed) and
// the optional reconstructed IRR for depleted paths. HasIRR is false when
// the path depleted before completing a single year or when the root finder
// found no real solution; that is a reportable outcome, not an error.
type PathResult struct {
	PathID           int     `json:"path_id"`
	Survived         bool    `json:"survived"`
	EndingAsset      float64 `json:"ending_asset"`
	AnnualizedReturn float64 `json:"annualized_return,omitempty"`
	BankruptcyYear   int     `json:"bankruptcy_year,omitempty"`
	IRR              float64 `json:"irr,omitempty"`
	HasIRR           bool    `json:"has_irr"`
}

// RunSummary aggregates a batch of path results for one
// (withdrawal rate, equity ratio) combination. The ending-asset statistics
// cover survivors only; the bankruptcy statistics cover failures only.
// SurvivorReturns and FailureIRRs are histogram-ready numeric sequences for
// the presentation layer.
type RunSummary struct {
	NumPaths     int     `json:"num_paths"`
	SuccessCount int     `json:"success_count"`
	FailureCount int     `json:"failure_count"`
	SuccessRate  float64 `json:"success_rate"`

	MedianEndingAsset   float64 `json:"median_ending_asset"`
	Top25MedianAsset    float64 `json:"top_25_median_asset"`
	Bottom25MedianAsset float64 `json:"bottom_25_median_asset"`

	MeanBankruptcyYear   float64 `json:"mean_bankruptcy_year"`
	MedianBankruptcyYear float64 `json:"median_bankruptcy_year"`

	SurvivorReturns []float64 `json:"survivor_returns"`
	FailureIRRs     []float64 `json:"failure_irrs"`
}

// GridCell is a run summary tagged with its grid coordinates. The complete
// grid forms a dense 2-D table keyed by the cross product of the two axes.
type GridCell struct {
	WithdrawalRate float64    `json:"withdrawal_rate"`
	EquityRatio    float64    `json:"equity_ratio"`
	Summary        RunSummary `json:"summary"`
}
