package simulation

import (
	"math/rand"
	"sync"

	"github.com/drawsim/retirement-survival/internal/domain"
)

// HorizonYears is the simulation horizon. The whole system is specified
// against a fixed 30-year retirement window.
const HorizonYears = 30

// defaultBlocks is the canonical regime sequence. The terminal "stable
// growth" block carries a 30-year nominal duration so the fixed schedule
// covers the horizon on its own; randomized construction resizes a copy of
// it to land on exactly 30 cumulative years.
var defaultBlocks = domain.RegimeSchedule{
	{DurationYears: 3, EquityMean: -0.02, EquityStd: 0.25, BondMean: 0.01, BondStd: 0.08, Label: "2008–2010 Financial Crisis"},
	{DurationYears: 3, EquityMean: 0.10, EquityStd: 0.18, BondMean: 0.03, BondStd: 0.05, Label: "2011–2013 Bull Market Recovery"},
	{DurationYears: 2, EquityMean: 0.01, EquityStd: 0.20, BondMean: 0.02, BondStd: 0.06, Label: "2014–2015 European Debt Crisis"},
	{DurationYears: 5, EquityMean: 0.09, EquityStd: 0.16, BondMean: 0.04, BondStd: 0.05, Label: "2016–2020 Continued Bull Market"},
	{DurationYears: 2, EquityMean: -0.05, EquityStd: 0.30, BondMean: 0.00, BondStd: 0.10, Label: "2021–2022 COVID-19"},
	{DurationYears: 3, EquityMean: 0.06, EquityStd: 0.18, BondMean: 0.01, BondStd: 0.08, Label: "2023–2025 Post-Pandemic Recovery"},
	{DurationYears: 30, EquityMean: 0.07, EquityStd: 0.14, BondMean: 0.03, BondStd: 0.05, Label: "2026+ Stable Growth"},
}

// DefaultBlocks returns a copy of the canonical regime sequence.
func DefaultBlocks() domain.RegimeSchedule {
	out := make(domain.RegimeSchedule, len(defaultBlocks))
	copy(out, defaultBlocks)
	return out
}

// BuildSchedule constructs the regime schedule for a session. In canonical
// mode the fixed block order is returned unchanged. In randomized mode the
// non-terminal blocks are permuted with a seeded Fisher–Yates shuffle, then:
//
//   - if the shuffled blocks already reach 30 cumulative years, blocks are
//     included in shuffled order while cumulative+next <= 30 and the terminal
//     block is dropped (truncate, never back-fill);
//   - otherwise a copy of the terminal block, resized to 30-cumulative
//     years, is appended.
//
// The same seed always yields the same schedule.
func BuildSchedule(randomize bool, seed int64) domain.RegimeSchedule {
	if !randomize {
		return DefaultBlocks()
	}

	blocks := DefaultBlocks()
	shuffled := blocks[:len(blocks)-1]
	terminal := blocks[len(blocks)-1]

	// Explicit Fisher–Yates so the permutation depends only on the seed,
	// not on any library's shuffle implementation.
	rng := rand.New(rand.NewSource(seed))
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	total := 0
	for _, b := range shuffled {
		total += b.DurationYears
	}

	if total >= HorizonYears {
		out := make(domain.RegimeSchedule, 0, len(shuffled))
		count := 0
		for _, b := range shuffled {
			if count+b.DurationYears <= HorizonYears {
				out = append(out, b)
				count += b.DurationYears
			}
		}
		return out
	}

	terminal.DurationYears = HorizonYears - total
	return append(shuffled, terminal)
}

type scheduleKey struct {
	randomize bool
	seed      int64
}

// ScheduleCache memoizes BuildSchedule by (randomize, seed). It exists for
// long-lived embedding callers, like a dashboard layer that resolves the
// schedule on every interaction: repeated lookups with the same key are
// cheap and return the identical schedule. The one-shot CLI builds its
// schedule once and does not route through it. Safe for concurrent use.
type ScheduleCache struct {
	mu      sync.Mutex
	entries map[scheduleKey]domain.RegimeSchedule
}

// NewScheduleCache returns an empty cache.
func NewScheduleCache() *ScheduleCache {
	return &ScheduleCache{entries: make(map[scheduleKey]domain.RegimeSchedule)}
}

// Get returns the memoized schedule for (randomize, seed), building it on
// first use.
func (c *ScheduleCache) Get(randomize bool, seed int64) domain.RegimeSchedule {
	key := scheduleKey{randomize: randomize, seed: seed}

	c.mu.Lock()
	defer c.mu.Unlock()

	if s, ok := c.entries[key]; ok {
		return s
	}
	s := BuildSchedule(randomize, seed)
	c.entries[key] = s
	return s
}
