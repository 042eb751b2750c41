package domain

import "time"

// Report bundles a simulation run for the output formatters: the parameters
// it was run with, the regime schedule in effect, and whichever of the
// single-scenario summary or the grid sweep was produced (either may be nil
// or empty).
type Report struct {
	GeneratedAt    time.Time      `json:"generated_at"`
	InitialAsset   float64        `json:"initial_asset"`
	WithdrawalRate float64        `json:"withdrawal_rate"`
	EquityRatio    float64        `json:"equity_ratio"`
	NumPaths       int            `json:"num_paths"`
	Years          int            `json:"years"`
	Seed           int64          `json:"seed"`
	RandomSchedule bool           `json:"random_schedule"`
	Schedule       RegimeSchedule `json:"schedule"`
	Summary        *RunSummary    `json:"summary,omitempty"`
	Grid           []GridCell     `json:"grid,omitempty"`
}
