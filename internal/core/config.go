package core

import "time"

// DefaultTick is the fixed simulation/render period.
const DefaultTick = 50 * time.Millisecond

// RuntimeConfig contains the per-run settings handed to the engine and loop.
type RuntimeConfig struct {
	Board Board         // Play area captured at startup
	Tick  time.Duration // Fixed period between loop iterations
	Seed  int64         // RNG seed; 0 means seed from the clock
}
