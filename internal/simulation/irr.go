package simulation

import "math"

const (
	irrTolerance  = 1e-10
	irrMaxBracket = 1e6
	irrLowerBound = -1 + 1e-9
)

// ReconstructIRR solves for the internal rate of return of the cash-flow
// stream [-initialAsset, withdrawal, ..., withdrawal] with completedYears
// withdrawal entries: the discount rate at which the stream's net present
// value is zero. It is reconstructed retroactively for depleted paths only.
//
// The stream has a single sign change, so its NPV is strictly decreasing in
// the rate on (-1, +inf) and the root, when it exists, is unique; plain
// bracketed bisection finds it. The second return is false for degenerate
// streams: zero completed years, a non-positive withdrawal, or no sign
// change within the bracket. Callers treat that as "IRR unavailable", not
// as a failure.
func ReconstructIRR(initialAsset, withdrawal float64, completedYears int) (float64, bool) {
	if completedYears <= 0 || withdrawal <= 0 || initialAsset <= 0 {
		return 0, false
	}

	npv := func(rate float64) float64 {
		v := -initialAsset
		discount := 1.0
		for t := 0; t < completedYears; t++ {
			discount *= 1 + rate
			v += withdrawal / discount
		}
		return v
	}

	lo := irrLowerBound
	if !(npv(lo) > 0) {
		return 0, false
	}

	hi := 1.0
	for npv(hi) > 0 {
		hi *= 2
		if hi > irrMaxBracket {
			return 0, false
		}
	}

	for i := 0; i < 200 && hi-lo > irrTolerance; i++ {
		mid := lo + (hi-lo)/2
		if npv(mid) > 0 {
			lo = mid
		} else {
			hi = mid
		}
	}

	root := lo + (hi-lo)/2
	if math.IsNaN(root) || math.IsInf(root, 0) {
		return 0, false
	}
	return root, true
}
