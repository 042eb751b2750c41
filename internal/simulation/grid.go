package simulation

import (
	"context"
	"fmt"
	"math"

	"github.com/drawsim/retirement-survival/internal/domain"
	"github.com/drawsim/retirement-survival/pkg/parallel"
)

// DefaultGridSeedBase seeds the first grid cell. Grid seeds are deliberately
// disjoint from the single-scenario default (42) so sweep results do not
// depend on whether a single run preceded them.
const DefaultGridSeedBase = 100

// gridSeedStride separates the base seeds of adjacent cells. It exceeds any
// plausible path count, so the [seed, seed+numPaths) stream windows of two
// cells never overlap.
const gridSeedStride = 1_000_003

// GridParams configure a sweep over the cross product of the two axes.
// SeedBase == 0 falls back to DefaultGridSeedBase. Workers bounds the number
// of concurrently evaluated cells; paths within a cell run sequentially
// since the sweep already saturates the available parallelism.
type GridParams struct {
	WithdrawalRates []float64
	EquityRatios    []float64
	NumPaths        int
	InitialAsset    float64
	Years           int
	SeedBase        int64
	Schedule        domain.RegimeSchedule
	Workers         int
	Logger          Logger
}

// DefaultWithdrawalRates returns the standard sweep axis: 2.0% to 5.5% in
// half-percent steps.
func DefaultWithdrawalRates() []float64 {
	rates := make([]float64, 0, 8)
	for i := 0; i < 8; i++ {
		rates = append(rates, 0.02+0.005*float64(i))
	}
	return rates
}

// DefaultEquityRatios returns the standard sweep axis: 0% to 90% equities in
// ten-point steps.
func DefaultEquityRatios() []float64 {
	ratios := make([]float64, 0, 10)
	for i := 0; i < 10; i++ {
		ratios = append(ratios, 0.1*float64(i))
	}
	return ratios
}

// RunGrid evaluates a full Monte Carlo batch for every
// (withdrawal rate, equity ratio) pair and returns one cell per pair, in
// row-major order (withdrawal rates outer, equity ratios inner). Cells share
// no mutable state and run in parallel; each cell gets its own base seed
// derived from SeedBase and the cell index, so the sweep is reproducible
// cell by cell. Callers should look cells up by their coordinate tags, not
// rely on any completion order.
func RunGrid(ctx context.Context, p GridParams) ([]domain.GridCell, error) {
	if len(p.WithdrawalRates) == 0 {
		return nil, fmt.Errorf("no withdrawal rates given")
	}
	if len(p.EquityRatios) == 0 {
		return nil, fmt.Errorf("no equity ratios given")
	}
	if p.SeedBase == 0 {
		p.SeedBase = DefaultGridSeedBase
	}
	if p.Logger == nil {
		p.Logger = NopLogger{}
	}

	type cellSpec struct {
		index          int
		withdrawalRate float64
		equityRatio    float64
	}
	specs := make([]cellSpec, 0, len(p.WithdrawalRates)*len(p.EquityRatios))
	for _, wr := range p.WithdrawalRates {
		for _, er := range p.EquityRatios {
			specs = append(specs, cellSpec{index: len(specs), withdrawalRate: wr, equityRatio: er})
		}
	}

	p.Logger.Infof("grid sweep: %d cells (%d rates x %d ratios), %d paths each",
		len(specs), len(p.WithdrawalRates), len(p.EquityRatios), p.NumPaths)

	cells, err := parallel.Map(ctx, p.Workers, specs, func(ctx context.Context, spec cellSpec) (domain.GridCell, error) {
		summary, err := RunBatch(ctx, BatchParams{
			NumPaths:       p.NumPaths,
			InitialAsset:   p.InitialAsset,
			WithdrawalRate: spec.withdrawalRate,
			Years:          p.Years,
			EquityRatio:    spec.equityRatio,
			Seed:           p.SeedBase + int64(spec.index)*gridSeedStride,
			Schedule:       p.Schedule,
			Workers:        1,
			Logger:         p.Logger,
		})
		if err != nil {
			return domain.GridCell{}, fmt.Errorf("grid cell (wr=%v, er=%v): %w", spec.withdrawalRate, spec.equityRatio, err)
		}
		return domain.GridCell{
			WithdrawalRate: spec.withdrawalRate,
			EquityRatio:    spec.equityRatio,
			Summary:        *summary,
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return cells, nil
}

// GridMetric extracts one display value from a cell summary. The second
// return is false when the metric is undefined for that cell (no survivors
// for the asset quartiles, no failures for the bankruptcy year).
type GridMetric func(s *domain.RunSummary) (float64, bool)

// The four heatmap metrics consumed by the presentation layer.
var (
	MetricSuccessRate GridMetric = func(s *domain.RunSummary) (float64, bool) {
		return s.SuccessRate, true
	}
	MetricTop25Median GridMetric = func(s *domain.RunSummary) (float64, bool) {
		return s.Top25MedianAsset, s.SuccessCount > 0
	}
	MetricBottom25Median GridMetric = func(s *domain.RunSummary) (float64, bool) {
		return s.Bottom25MedianAsset, s.SuccessCount > 0
	}
	MetricMedianBankruptcyYear GridMetric = func(s *domain.RunSummary) (float64, bool) {
		return s.MedianBankruptcyYear, s.FailureCount > 0
	}
)

// GridTable is a pivoted 2-D view of a sweep: rows indexed by withdrawal
// rate, columns by equity ratio. Undefined cells hold NaN.
type GridTable struct {
	WithdrawalRates []float64
	EquityRatios    []float64
	Values          [][]float64
}

// PivotGrid arranges sweep cells into a table for one metric. The axes are
// reconstructed from the cell tags in first-seen order, which matches the
// axis order RunGrid was invoked with.
func PivotGrid(cells []domain.GridCell, metric GridMetric) GridTable {
	var rates, ratios []float64
	rateIdx := make(map[float64]int)
	ratioIdx := make(map[float64]int)
	for _, c := range cells {
		if _, ok := rateIdx[c.WithdrawalRate]; !ok {
			rateIdx[c.WithdrawalRate] = len(rates)
			rates = append(rates, c.WithdrawalRate)
		}
		if _, ok := ratioIdx[c.EquityRatio]; !ok {
			ratioIdx[c.EquityRatio] = len(ratios)
			ratios = append(ratios, c.EquityRatio)
		}
	}

	values := make([][]float64, len(rates))
	for i := range values {
		values[i] = make([]float64, len(ratios))
		for j := range values[i] {
			values[i][j] = math.NaN()
		}
	}
	for _, c := range cells {
		v, ok := metric(&c.Summary)
		if !ok {
			continue
		}
		values[rateIdx[c.WithdrawalRate]][ratioIdx[c.EquityRatio]] = v
	}

	return GridTable{WithdrawalRates: rates, EquityRatios: ratios, Values: values}
}
