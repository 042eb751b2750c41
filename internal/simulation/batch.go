package simulation

import (
	"context"
	"fmt"
	"sort"

	"github.com/drawsim/retirement-survival/internal/domain"
	"github.com/drawsim/retirement-survival/pkg/parallel"
)

// BatchParams configure one Monte Carlo batch: NumPaths independent
// trajectories for a single (withdrawal rate, equity ratio) combination.
// Seed == 0 draws a seed from the overridable seedFunc; any other value is
// used as-is so batches are reproducible. Workers <= 0 means GOMAXPROCS.
type BatchParams struct {
	NumPaths       int
	InitialAsset   float64
	WithdrawalRate float64
	Years          int
	EquityRatio    float64
	Seed           int64
	Schedule       domain.RegimeSchedule
	Workers        int
	Logger         Logger
}

func (p *BatchParams) validate() error {
	if p.NumPaths <= 0 {
		return fmt.Errorf("num paths must be positive, got %d", p.NumPaths)
	}
	if p.Years <= 0 {
		return fmt.Errorf("horizon must be positive, got %d years", p.Years)
	}
	if p.InitialAsset <= 0 {
		return fmt.Errorf("initial asset must be positive, got %v", p.InitialAsset)
	}
	if p.WithdrawalRate < 0 {
		return fmt.Errorf("withdrawal rate cannot be negative, got %v", p.WithdrawalRate)
	}
	if p.EquityRatio < 0 || p.EquityRatio > 1 {
		return fmt.Errorf("equity ratio must be within [0, 1], got %v", p.EquityRatio)
	}
	if len(p.Schedule) == 0 {
		return fmt.Errorf("regime schedule is empty")
	}
	if p.Logger == nil {
		p.Logger = NopLogger{}
	}
	return nil
}

// RunBatch simulates NumPaths independent trajectories and reduces them to
// a RunSummary. Paths carry their own random streams and accumulators, so
// they run in parallel with no shared state; the reduction is a multiset
// fold and does not depend on completion order.
func RunBatch(ctx context.Context, p BatchParams) (*domain.RunSummary, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	if p.Seed == 0 {
		p.Seed = seedFunc()
	}

	pathIDs := make([]int, p.NumPaths)
	for i := range pathIDs {
		pathIDs[i] = i
	}

	results, err := parallel.Map(ctx, p.Workers, pathIDs, func(_ context.Context, id int) (domain.PathResult, error) {
		return SimulatePath(PathParams{
			PathID:         id,
			InitialAsset:   p.InitialAsset,
			WithdrawalRate: p.WithdrawalRate,
			Years:          p.Years,
			EquityRatio:    p.EquityRatio,
			Seed:           p.Seed,
			Schedule:       p.Schedule,
		}), nil
	})
	if err != nil {
		return nil, err
	}

	summary := Summarize(results)
	p.Logger.Debugf("batch complete: %d paths, success rate %.3f", summary.NumPaths, summary.SuccessRate)
	return summary, nil
}

// Summarize reduces a multiset of path results to aggregate statistics.
// Results are canonicalized by path id first, so the summary (including the
// histogram slices) is identical no matter what order paths completed in.
func Summarize(results []domain.PathResult) *domain.RunSummary {
	ordered := make([]domain.PathResult, len(results))
	copy(ordered, results)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].PathID < ordered[j].PathID })

	summary := &domain.RunSummary{NumPaths: len(ordered)}

	var endingAssets, bankruptcyYears []float64
	for _, r := range ordered {
		if r.Survived {
			summary.SuccessCount++
			endingAssets = append(endingAssets, r.EndingAsset)
			summary.SurvivorReturns = append(summary.SurvivorReturns, r.AnnualizedReturn)
			continue
		}
		summary.FailureCount++
		bankruptcyYears = append(bankruptcyYears, float64(r.BankruptcyYear))
		if r.HasIRR {
			summary.FailureIRRs = append(summary.FailureIRRs, r.IRR)
		}
	}

	if summary.NumPaths > 0 {
		summary.SuccessRate = float64(summary.SuccessCount) / float64(summary.NumPaths)
	}
	summary.MedianEndingAsset = median(endingAssets)
	summary.Top25MedianAsset = percentile(endingAssets, 75)
	summary.Bottom25MedianAsset = percentile(endingAssets, 25)
	summary.MeanBankruptcyYear = mean(bankruptcyYears)
	summary.MedianBankruptcyYear = median(bankruptcyYears)

	return summary
}
