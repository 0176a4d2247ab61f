// Package core provides the board geometry, screen buffer and input vocabulary
// shared by the snake engine, the renderer and the terminal backends.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import (
	"errors"
	"fmt"
	"math/rand"
)

// Minimum playable board. Smaller terminals cannot fit the border, the score
// panel and a spawn range for food.
const (
	MinColumns = 10
	MinRows    = 8
)

// ErrBoardTooSmall is returned by Board.Validate for terminals below the minimum size.
var ErrBoardTooSmall = errors.New("board too small")

// Point is an integer cell coordinate. X grows to the right, Y grows down.
type Point struct {
	X, Y int
}

// Add returns p translated by v.
func (p Point) Add(v Vector) Point {
	return Point{X: p.X + v.DX, Y: p.Y + v.DY}
}

// Vector is a unit step along exactly one axis.
type Vector struct {
	DX, DY int
}

// The four movement vectors.
var (
	Left  = Vector{DX: -1, DY: 0}
	Right = Vector{DX: 1, DY: 0}
	Up    = Vector{DX: 0, DY: -1}
	Down  = Vector{DX: 0, DY: 1}
)

// Valid reports whether v is one of Left, Right, Up or Down.
func (v Vector) Valid() bool {
	return Abs(v.DX)+Abs(v.DY) == 1
}

// Horizontal reports whether v moves along the x axis.
func (v Vector) Horizontal() bool {
	return v.DX != 0
}

// Vertical reports whether v moves along the y axis.
func (v Vector) Vertical() bool {
	return v.DY != 0
}

// String returns the direction name.
func (v Vector) String() string {
	switch v {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return fmt.Sprintf("(%d,%d)", v.DX, v.DY)
	}
}

// Board is the fixed play area, captured once from the terminal size at startup.
// A one-cell border on every side is reserved for walls.
type Board struct {
	Columns int
	Rows    int
}

// Validate returns ErrBoardTooSmall if the board cannot host a game.
func (b Board) Validate() error {
	if b.Columns < MinColumns || b.Rows < MinRows {
		return fmt.Errorf("%w: %dx%d, need at least %dx%d",
			ErrBoardTooSmall, b.Columns, b.Rows, MinColumns, MinRows)
	}
	return nil
}

// Center returns the spawn cell for a fresh snake.
func (b Board) Center() Point {
	return Point{X: b.Columns/2 - 1, Y: b.Rows / 2}
}

// Rect returns the board as a rectangle anchored at the origin.
func (b Board) Rect() Rect {
	return NewRect(0, 0, b.Columns, b.Rows)
}

// RandomPoint returns a uniformly chosen cell with x in [2, columns-2) and
// y in [2, rows-2), strictly inside the playable border.
func RandomPoint(b Board, rng *rand.Rand) Point {
	return Point{
		X: 2 + rng.Intn(b.Columns-4),
		Y: 2 + rng.Intn(b.Rows-4),
	}
}

// CollidesWithWalls reports whether p lies outside [1, columns-1] x [1, rows-1].
func CollidesWithWalls(p Point, b Board) bool {
	return p.X < 1 || p.X > b.Columns-1 || p.Y < 1 || p.Y > b.Rows-1
}

// Rect represents an axis-aligned box used for panel layout.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point is inside this rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
