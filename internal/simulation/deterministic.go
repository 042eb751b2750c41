package simulation

import "time"

// seedFunc supplies the base seed when a caller passes Seed == 0.
// Overridable so tests can pin Monte Carlo runs.
var seedFunc = func() int64 { return time.Now().UnixNano() }

// SetSeedFunc overrides the fallback seed source. Pass nil to restore the
// clock-based default.
func SetSeedFunc(f func() int64) {
	if f == nil {
		seedFunc = func() int64 { return time.Now().UnixNano() }
		return
	}
	seedFunc = f
}
