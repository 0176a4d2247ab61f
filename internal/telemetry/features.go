// Package telemetry turns engine ticks into normalized feature rows and writes
// them to training sinks: a tab-separated file and an optional SQLite store.
package telemetry

import (
	"fmt"
	"math"

	"github.com/vovakirdan/term-snake/internal/core"
	"github.com/vovakirdan/term-snake/internal/games/snake"
)

// FileName is the fixed name of the training file, created in the working directory.
const FileName = "snake_training.tsv"

// Sample is one feature row describing a single advancing tick.
type Sample struct {
	Tick uint64
	DW1  float64 // distance to the left wall over columns
	DW2  float64 // distance to the right wall over columns
	DW3  float64 // distance to the top wall over rows
	DW4  float64 // distance to the bottom wall over rows
	DF   float64 // head to primary food over the board diagonal
	Ate  bool
	Dir  core.Vector
}

// GameResult summarizes a finished game.
type GameResult struct {
	Score  int
	Length int
	Ticks  uint64
	Cause  string
}

// Extract computes the features for a tick result on the given board.
// Columns and rows must be positive.
func Extract(res snake.TickResult, b core.Board) Sample {
	cols := float64(b.Columns)
	rows := float64(b.Rows)
	x := float64(res.Head.X)
	y := float64(res.Head.Y)

	dx := float64(res.Food.X - res.Head.X)
	dy := float64(res.Food.Y - res.Head.Y)

	return Sample{
		Tick: res.Tick,
		DW1:  x / cols,
		DW2:  (cols - x) / cols,
		DW3:  y / rows,
		DW4:  (rows - y) / rows,
		DF:   math.Hypot(dx, dy) / math.Hypot(cols, rows),
		Ate:  res.Ate,
		Dir:  res.Direction,
	}
}

// DirectionCode returns the one-hot code for a unit direction:
// left 0001, right 0010, up 0100, down 1000.
func DirectionCode(v core.Vector) string {
	switch v {
	case core.Left:
		return "0001"
	case core.Right:
		return "0010"
	case core.Up:
		return "0100"
	case core.Down:
		return "1000"
	default:
		return "0000"
	}
}

// TSV formats the sample as one line of the training file, without the newline.
func (s Sample) TSV() string {
	return FormatRow(s.DW1, s.DW2, s.DW3, s.DW4, s.DF, s.Ate, DirectionCode(s.Dir))
}

// FormatRow renders one training row from its raw fields.
func FormatRow(dw1, dw2, dw3, dw4, df float64, ate bool, code string) string {
	flag := 0
	if ate {
		flag = 1
	}
	return fmt.Sprintf("%f\t%f\t%f\t%f\t%f\t%d\t%s", dw1, dw2, dw3, dw4, df, flag, code)
}
