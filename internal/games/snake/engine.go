// Package snake implements the snake game model: the snake itself, the food
// set, the per-tick engine state machine and the input controller.
// It contains pure logic; terminals, timing and drawing live elsewhere.
package snake

import (
	"math/rand"
	"sync"
	"time"

	"github.com/vovakirdan/term-snake/internal/core"
)

// ScoreUnit is the score awarded per food piece eaten.
const ScoreUnit = 10

// Lifecycle is the run state shared by the control and loop goroutines.
type Lifecycle int

const (
	Off          Lifecycle = iota // terminal: the loop exits
	Playing                       // simulation advances every tick
	GameOverMenu                  // showing the last score, waiting for resume
	Paused                        // simulation frozen, clock still running
)

// String returns a human-readable name for the lifecycle state.
func (l Lifecycle) String() string {
	switch l {
	case Off:
		return "off"
	case Playing:
		return "playing"
	case GameOverMenu:
		return "game_over"
	case Paused:
		return "paused"
	default:
		return "unknown"
	}
}

// Cause says why a game ended.
type Cause string

const (
	CauseNone Cause = ""
	CauseWall Cause = "wall"
	CauseSelf Cause = "self"
)

// Options tunes an Engine beyond the runtime config.
type Options struct {
	FoodCount  int  // Number of food pieces (min 1)
	AvoidSnake bool // Never spawn food under the snake or on another piece
}

// TickResult describes what one Tick did. Head, Direction, Length and Food are
// observed after the move is committed and before any game-over reset.
type TickResult struct {
	Tick      uint64
	Advanced  bool // false unless the lifecycle was Playing
	Ate       bool
	Died      bool
	Cause     Cause
	Score     int // score after this tick, before a reset
	Length    int
	Head      core.Point
	Direction core.Vector
	Food      core.Point // primary food piece
}

// Engine owns all game state. Every exported method takes the mutex, so the
// control goroutine and the loop goroutine may call it concurrently; one Tick
// is one critical section.
type Engine struct {
	mu sync.Mutex

	board  core.Board
	rng    *rand.Rand
	placer placer

	snake          *Snake
	food           *Food
	score          int
	resultingScore int
	lifecycle      Lifecycle
	tick           uint64
	games          int // finished games this run
}

// NewEngine creates an engine in the Playing state with a fresh snake and food.
func NewEngine(cfg core.RuntimeConfig, opts Options) (*Engine, error) {
	if err := cfg.Board.Validate(); err != nil {
		return nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	e := &Engine{
		board: cfg.Board,
		rng:   rng,
		placer: placer{
			board:      cfg.Board,
			rng:        rng,
			avoidSnake: opts.AvoidSnake,
		},
		food: NewFood(opts.FoodCount),
	}
	e.reset()
	e.lifecycle = Playing
	return e, nil
}

// Board returns the play area.
func (e *Engine) Board() core.Board {
	return e.board
}

// reset spawns a fresh snake, zeroes the score and relocates all food.
// Caller holds e.mu.
func (e *Engine) reset() {
	e.snake = NewSnake(e.board)
	e.score = 0
	e.placer.placeAll(e.food, e.snake)
}

// Reset restarts the game without touching the lifecycle.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reset()
}

// Tick applies one simulation step. Outside Playing it only counts the tick.
func (e *Engine) Tick() TickResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.tick++
	res := TickResult{Tick: e.tick}
	if e.lifecycle != Playing {
		return res
	}
	res.Advanced = true

	next := e.snake.Step()
	hit := e.food.HitAt(next)
	grew := hit >= 0
	e.snake.Advance(next, grew)

	if grew {
		e.score += ScoreUnit
		e.placer.place(e.food, hit, e.snake)
	}

	switch {
	case core.CollidesWithWalls(next, e.board):
		res.Cause = CauseWall
	case e.snake.CollidesWithSelf():
		res.Cause = CauseSelf
	}

	res.Ate = grew
	res.Score = e.score
	res.Length = e.snake.Len()
	res.Head = next
	res.Direction = e.snake.Direction()
	res.Food = e.food.Primary()

	if res.Cause != CauseNone {
		res.Died = true
		e.resultingScore = e.score
		e.lifecycle = GameOverMenu
		e.games++
		e.reset()
	}
	return res
}

// Lifecycle returns the current lifecycle state.
func (e *Engine) Lifecycle() Lifecycle {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lifecycle
}

// SetLifecycle forces a state. Off is terminal and cannot be left.
func (e *Engine) SetLifecycle(l Lifecycle) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.lifecycle == Off {
		return
	}
	e.lifecycle = l
}

// TogglePause flips Playing and Paused. Other states are left alone.
// It returns the resulting state.
func (e *Engine) TogglePause() Lifecycle {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch e.lifecycle {
	case Playing:
		e.lifecycle = Paused
	case Paused:
		e.lifecycle = Playing
	}
	return e.lifecycle
}

// Steer runs fn against the snake under the engine lock, so a read of the
// current direction and the write of a new one cannot straddle a tick.
func (e *Engine) Steer(fn func(s *Snake)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.snake)
}

// Snapshot returns an immutable copy of the state for drawing.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	return Snapshot{
		Tick:           e.tick,
		Board:          e.board,
		Lifecycle:      e.lifecycle,
		Score:          e.score,
		ResultingScore: e.resultingScore,
		Games:          e.games,
		Snake:          e.snake.Positions(),
		Direction:      e.snake.Direction(),
		Food:           e.food.Points(),
	}
}
