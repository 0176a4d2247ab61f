package snake

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/term-snake/internal/core"
)

// Snapshot is a copy of the engine state taken under its lock. The renderer
// and tests read snapshots instead of the live engine.
type Snapshot struct {
	Tick           uint64
	Board          core.Board
	Lifecycle      Lifecycle
	Score          int
	ResultingScore int // score of the last finished game
	Games          int // finished games this run
	Snake          []core.Point
	Direction      core.Vector
	Food           []core.Point
}

// Head returns the snake head, or the zero point for an empty snapshot.
func (s Snapshot) Head() core.Point {
	if len(s.Snake) == 0 {
		return core.Point{}
	}
	return s.Snake[0]
}

// Length returns the snake length.
func (s Snapshot) Length() int {
	return len(s.Snake)
}

// DebugState returns a string representation of the snapshot.
func (s Snapshot) DebugState() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Tick: %d, State: %s, Score: %d\n", s.Tick, s.Lifecycle, s.Score))
	b.WriteString(fmt.Sprintf("Snake len: %d, Direction: %s\n", s.Length(), s.Direction))
	head := s.Head()
	b.WriteString(fmt.Sprintf("Head: (%d, %d), Food: %v\n", head.X, head.Y, s.Food))
	return b.String()
}
