package simulation

import (
	"reflect"
	"testing"
)

func TestBuildScheduleCanonical(t *testing.T) {
	schedule := BuildSchedule(false, 42)

	if !reflect.DeepEqual(schedule, DefaultBlocks()) {
		t.Error("canonical schedule should match the default blocks unchanged")
	}
	if got := schedule.TotalYears(); got < HorizonYears {
		t.Errorf("canonical schedule covers %d years, want at least %d", got, HorizonYears)
	}
	if schedule[len(schedule)-1].Label != "2026+ Stable Growth" {
		t.Errorf("canonical schedule should end with the stable growth block, got %q", schedule[len(schedule)-1].Label)
	}
}

func TestBuildScheduleRandomizedCoversHorizonExactly(t *testing.T) {
	for seed := int64(0); seed < 200; seed++ {
		schedule := BuildSchedule(true, seed)
		if got := schedule.TotalYears(); got != HorizonYears {
			t.Fatalf("seed %d: randomized schedule covers %d years, want exactly %d", seed, got, HorizonYears)
		}
		for i, b := range schedule {
			if b.DurationYears <= 0 {
				t.Fatalf("seed %d: block %d has non-positive duration %d", seed, i, b.DurationYears)
			}
		}
	}
}

func TestBuildScheduleRandomizedDeterministic(t *testing.T) {
	for _, seed := range []int64{0, 1, 42, 99, 12345} {
		a := BuildSchedule(true, seed)
		b := BuildSchedule(true, seed)
		if !reflect.DeepEqual(a, b) {
			t.Errorf("seed %d: two builds disagree", seed)
		}
	}
}

func TestBuildScheduleRandomizedPreservesTerminalParams(t *testing.T) {
	// The default non-terminal blocks total 18 years, so the resized
	// terminal block is always appended with 12 years and its return
	// parameters intact.
	terminal := DefaultBlocks()[len(defaultBlocks)-1]
	schedule := BuildSchedule(true, 7)

	last := schedule[len(schedule)-1]
	if last.Label != terminal.Label {
		t.Fatalf("expected terminal block last, got %q", last.Label)
	}
	if last.DurationYears != HorizonYears-18 {
		t.Errorf("terminal block duration = %d, want %d", last.DurationYears, HorizonYears-18)
	}
	if last.EquityMean != terminal.EquityMean || last.BondStd != terminal.BondStd {
		t.Error("terminal block return parameters should be preserved when resized")
	}
}

func TestScheduleCache(t *testing.T) {
	cache := NewScheduleCache()

	a := cache.Get(true, 42)
	b := cache.Get(true, 42)
	if len(a) == 0 || len(b) == 0 {
		t.Fatal("cache returned empty schedule")
	}
	// Memoized: same backing array, not just equal contents.
	if &a[0] != &b[0] {
		t.Error("cache should return the identical schedule for repeated keys")
	}

	c := cache.Get(true, 43)
	if reflect.DeepEqual(a, c) {
		t.Error("different seeds should not share a cache entry")
	}
	if d := cache.Get(false, 42); !reflect.DeepEqual(d, DefaultBlocks()) {
		t.Error("canonical entry should be the default blocks")
	}
}

func TestParamsAtWalksBlocks(t *testing.T) {
	schedule := DefaultBlocks()

	tests := []struct {
		year       int
		wantEquity float64
	}{
		{0, -0.02},  // crisis block, years 0-2
		{2, -0.02},  // last crisis year
		{3, 0.10},   // recovery block starts
		{17, 0.06},  // post-pandemic block, years 15-17
		{18, 0.07},  // stable growth
		{47, 0.07},  // final covered year
		{500, 0.07}, // past the end: clamp to last block
	}
	for _, tt := range tests {
		em, es, _, bs := schedule.ParamsAt(tt.year)
		if em != tt.wantEquity {
			t.Errorf("ParamsAt(%d) equity mean = %v, want %v", tt.year, em, tt.wantEquity)
		}
		if es < 0 || bs < 0 {
			t.Errorf("ParamsAt(%d) returned negative std dev", tt.year)
		}
	}
}
