package snake

import (
	"math/rand"

	"github.com/vovakirdan/term-snake/internal/core"
)

// spawnAttempts bounds the random retries before falling back to a scan of free cells.
const spawnAttempts = 64

// Food is the set of independent food pieces on the board.
type Food struct {
	pieces []core.Point
}

// NewFood creates count pieces (at least one), all placed at random.
func NewFood(count int) *Food {
	if count < 1 {
		count = 1
	}
	return &Food{pieces: make([]core.Point, count)}
}

// Len returns the number of pieces.
func (f *Food) Len() int {
	return len(f.pieces)
}

// Primary returns the first piece, the one telemetry measures distance to.
func (f *Food) Primary() core.Point {
	return f.pieces[0]
}

// Points returns a copy of every piece.
func (f *Food) Points() []core.Point {
	out := make([]core.Point, len(f.pieces))
	copy(out, f.pieces)
	return out
}

// Set places piece i at p.
func (f *Food) Set(i int, p core.Point) {
	f.pieces[i] = p
}

// HitAt returns the index of the piece at p, or -1.
func (f *Food) HitAt(p core.Point) int {
	for i, piece := range f.pieces {
		if piece == p {
			return i
		}
	}
	return -1
}

// placer picks cells for food.
type placer struct {
	board      core.Board
	rng        *rand.Rand
	avoidSnake bool
}

// place relocates piece i. With avoidSnake set the new cell is off the snake
// and off every other piece when any such cell exists.
func (pl placer) place(f *Food, i int, s *Snake) {
	if !pl.avoidSnake {
		f.pieces[i] = core.RandomPoint(pl.board, pl.rng)
		return
	}

	taken := func(p core.Point) bool {
		if s.Occupies(p) {
			return true
		}
		for j, other := range f.pieces {
			if j != i && other == p {
				return true
			}
		}
		return false
	}

	for attempt := 0; attempt < spawnAttempts; attempt++ {
		p := core.RandomPoint(pl.board, pl.rng)
		if !taken(p) {
			f.pieces[i] = p
			return
		}
	}

	// Crowded board: choose uniformly among the remaining free cells.
	var free []core.Point
	for y := 2; y < pl.board.Rows-2; y++ {
		for x := 2; x < pl.board.Columns-2; x++ {
			p := core.Point{X: x, Y: y}
			if !taken(p) {
				free = append(free, p)
			}
		}
	}
	if len(free) == 0 {
		f.pieces[i] = core.RandomPoint(pl.board, pl.rng)
		return
	}
	f.pieces[i] = free[pl.rng.Intn(len(free))]
}

// placeAll relocates every piece.
func (pl placer) placeAll(f *Food, s *Snake) {
	for i := range f.pieces {
		pl.place(f, i, s)
	}
}
