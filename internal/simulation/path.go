package simulation

import (
	"math"
	"math/rand"

	"github.com/drawsim/retirement-survival/internal/domain"
)

// PathParams are the inputs to one simulated trajectory.
//
// WithdrawalRate is applied once to InitialAsset: the same nominal amount is
// withdrawn every year for the life of the path. There is no inflation
// adjustment and no recalculation against the current balance, which differs
// from "4% rule" variants that recompute annually.
type PathParams struct {
	PathID         int
	InitialAsset   float64
	WithdrawalRate float64
	Years          int
	EquityRatio    float64
	Seed           int64
	Schedule       domain.RegimeSchedule
}

// SimulatePath runs one stochastic trajectory. The random stream is derived
// from Seed+PathID, so every (seed, path) pair is individually reproducible
// and paths with distinct ids are statistically independent; the grid sweep
// relies on this to reuse path ids across cells under cell-specific seeds.
//
// Each year the equity and bond sub-balances grow by independent normal
// draws taken from the regime covering that year, are summed, and the fixed
// withdrawal is subtracted. A non-positive total depletes the path in
// year+1; otherwise the total is re-split at the fixed equity ratio and
// compounding continues. Depletion and a missing IRR are encoded in the
// result, never returned as errors.
func SimulatePath(p PathParams) domain.PathResult {
	rng := rand.New(rand.NewSource(p.Seed + int64(p.PathID)))

	annualWithdrawal := p.InitialAsset * p.WithdrawalRate
	equityAsset := p.InitialAsset * p.EquityRatio
	bondAsset := p.InitialAsset * (1 - p.EquityRatio)

	hasPrev := false
	completedChanges := 0

	for year := 0; year < p.Years; year++ {
		equityMean, equityStd, bondMean, bondStd := p.Schedule.ParamsAt(year)
		equityReturn := equityMean + equityStd*rng.NormFloat64()
		bondReturn := bondMean + bondStd*rng.NormFloat64()

		equityAsset *= 1 + equityReturn
		bondAsset *= 1 + bondReturn
		totalAsset := equityAsset + bondAsset - annualWithdrawal

		if totalAsset <= 0 {
			irr, ok := ReconstructIRR(p.InitialAsset, annualWithdrawal, completedChanges)
			return domain.PathResult{
				PathID:         p.PathID,
				Survived:       false,
				EndingAsset:    0,
				BankruptcyYear: year + 1,
				IRR:            irr,
				HasIRR:         ok,
			}
		}

		// Year 0 has no prior total, so the first recorded change lands in
		// year 1; a path that depletes in year 1 has zero completed years.
		if hasPrev {
			completedChanges++
		}
		hasPrev = true

		equityAsset = totalAsset * p.EquityRatio
		bondAsset = totalAsset * (1 - p.EquityRatio)
	}

	finalAsset := equityAsset + bondAsset
	annualized := math.Pow(finalAsset/p.InitialAsset, 1/float64(p.Years)) - 1

	return domain.PathResult{
		PathID:           p.PathID,
		Survived:         true,
		EndingAsset:      finalAsset,
		AnnualizedReturn: annualized,
	}
}
