package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/drawsim/retirement-survival/internal/domain"
	"github.com/drawsim/retirement-survival/internal/simulation"
)

// Input is the YAML scenario file schema. Every field has a default, so an
// empty file is a valid input; the defaults mirror the reference
// application's UI defaults.
type Input struct {
	// InitialAsset is parsed as exact decimal money and converted to
	// float64 at the engine boundary.
	InitialAsset   decimal.Decimal `yaml:"initial_asset"`
	WithdrawalRate float64         `yaml:"withdrawal_rate"`
	EquityRatio    float64         `yaml:"equity_ratio"`
	NumPaths       int             `yaml:"num_paths"`
	Years          int             `yaml:"years"`
	Seed           int64           `yaml:"seed"`
	RandomSchedule bool            `yaml:"random_schedule"`

	// Schedule overrides the built-in regime blocks when present.
	Schedule []RegimeBlockInput `yaml:"schedule,omitempty"`

	Grid GridInput `yaml:"grid"`
}

// RegimeBlockInput is one custom regime block in a scenario file.
type RegimeBlockInput struct {
	DurationYears int     `yaml:"duration_years"`
	EquityMean    float64 `yaml:"equity_mean"`
	EquityStd     float64 `yaml:"equity_std"`
	BondMean      float64 `yaml:"bond_mean"`
	BondStd       float64 `yaml:"bond_std"`
	Label         string  `yaml:"label"`
}

// GridInput configures the sweep axes. Empty axes fall back to the engine
// defaults (2.0–5.5% withdrawal, 0–90% equity).
type GridInput struct {
	WithdrawalRates []float64 `yaml:"withdrawal_rates,omitempty"`
	EquityRatios    []float64 `yaml:"equity_ratios,omitempty"`
	SeedBase        int64     `yaml:"seed_base"`
}

// DefaultInput returns the reference defaults: 1000 initial, 4% withdrawal,
// 70% equities, 1000 paths over 30 years with seed 42, canonical schedule.
func DefaultInput() *Input {
	return &Input{
		InitialAsset:   decimal.NewFromInt(1000),
		WithdrawalRate: 0.04,
		EquityRatio:    0.7,
		NumPaths:       1000,
		Years:          simulation.HorizonYears,
		Seed:           42,
	}
}

// InputParser loads and validates scenario files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a YAML scenario file, fills unset fields with the
// defaults, and validates the result.
func (ip *InputParser) LoadFromFile(filename string) (*Input, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	input := DefaultInput()
	if err := yaml.Unmarshal(data, input); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	ip.applyDefaults(input)

	if err := ip.Validate(input); err != nil {
		return nil, fmt.Errorf("scenario validation failed: %w", err)
	}
	return input, nil
}

// applyDefaults restores defaults for fields the file explicitly zeroed.
func (ip *InputParser) applyDefaults(input *Input) {
	def := DefaultInput()
	if input.InitialAsset.IsZero() {
		input.InitialAsset = def.InitialAsset
	}
	if input.NumPaths == 0 {
		input.NumPaths = def.NumPaths
	}
	if input.Years == 0 {
		input.Years = def.Years
	}
}

// Validate checks an input against the engine's preconditions so malformed
// parameters fail at the boundary instead of producing undefined numerics.
func (ip *InputParser) Validate(input *Input) error {
	if input.InitialAsset.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("initial asset must be positive")
	}
	if input.WithdrawalRate < 0 {
		return fmt.Errorf("withdrawal rate cannot be negative")
	}
	if input.EquityRatio < 0 || input.EquityRatio > 1 {
		return fmt.Errorf("equity ratio must be within [0, 1], got %v", input.EquityRatio)
	}
	if input.NumPaths <= 0 {
		return fmt.Errorf("num paths must be positive, got %d", input.NumPaths)
	}
	if input.Years <= 0 {
		return fmt.Errorf("years must be positive, got %d", input.Years)
	}

	for i, b := range input.Schedule {
		if b.DurationYears <= 0 {
			return fmt.Errorf("schedule block %d: duration must be positive", i)
		}
		if b.EquityStd < 0 || b.BondStd < 0 {
			return fmt.Errorf("schedule block %d: std dev cannot be negative", i)
		}
	}
	if len(input.Schedule) > 0 {
		total := 0
		for _, b := range input.Schedule {
			total += b.DurationYears
		}
		if total < input.Years {
			return fmt.Errorf("schedule covers %d years but the horizon is %d", total, input.Years)
		}
	}

	for i, wr := range input.Grid.WithdrawalRates {
		if wr < 0 {
			return fmt.Errorf("grid withdrawal rate %d cannot be negative", i)
		}
	}
	for i, er := range input.Grid.EquityRatios {
		if er < 0 || er > 1 {
			return fmt.Errorf("grid equity ratio %d must be within [0, 1]", i)
		}
	}
	return nil
}

// BuildSchedule resolves the schedule the input asks for: the custom blocks
// when present, otherwise the built-in blocks in canonical or seeded-random
// order.
func (in *Input) BuildSchedule() domain.RegimeSchedule {
	if len(in.Schedule) > 0 {
		schedule := make(domain.RegimeSchedule, 0, len(in.Schedule))
		for _, b := range in.Schedule {
			schedule = append(schedule, domain.RegimeBlock{
				DurationYears: b.DurationYears,
				EquityMean:    b.EquityMean,
				EquityStd:     b.EquityStd,
				BondMean:      b.BondMean,
				BondStd:       b.BondStd,
				Label:         b.Label,
			})
		}
		return schedule
	}
	return simulation.BuildSchedule(in.RandomSchedule, in.Seed)
}

// BatchParams converts the input into engine batch parameters.
func (in *Input) BatchParams(schedule domain.RegimeSchedule) simulation.BatchParams {
	return simulation.BatchParams{
		NumPaths:       in.NumPaths,
		InitialAsset:   in.InitialAsset.InexactFloat64(),
		WithdrawalRate: in.WithdrawalRate,
		Years:          in.Years,
		EquityRatio:    in.EquityRatio,
		Seed:           in.Seed,
		Schedule:       schedule,
	}
}

// GridParams converts the input into engine sweep parameters, falling back
// to the default axes when the file leaves them empty.
func (in *Input) GridParams(schedule domain.RegimeSchedule) simulation.GridParams {
	rates := in.Grid.WithdrawalRates
	if len(rates) == 0 {
		rates = simulation.DefaultWithdrawalRates()
	}
	ratios := in.Grid.EquityRatios
	if len(ratios) == 0 {
		ratios = simulation.DefaultEquityRatios()
	}
	return simulation.GridParams{
		WithdrawalRates: rates,
		EquityRatios:    ratios,
		NumPaths:        in.NumPaths,
		InitialAsset:    in.InitialAsset.InexactFloat64(),
		Years:           in.Years,
		SeedBase:        in.Grid.SeedBase,
		Schedule:        schedule,
	}
}
