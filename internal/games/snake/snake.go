package snake

import "github.com/vovakirdan/term-snake/internal/core"

// initialCapacity is the starting size of the position ring; it doubles on demand.
const initialCapacity = 16

// Snake is the ordered position history plus the direction of travel.
// Positions live in a ring buffer so that pushing a head and dropping a tail
// are both O(1); index 0 is always the head.
type Snake struct {
	ring      []core.Point
	head      int // ring index of the head
	length    int
	direction core.Vector
}

// NewSnake returns a one-cell snake at the board center moving right.
func NewSnake(b core.Board) *Snake {
	s := &Snake{
		ring:      make([]core.Point, initialCapacity),
		direction: core.Right,
	}
	s.ring[0] = b.Center()
	s.length = 1
	return s
}

// Len returns the number of live positions.
func (s *Snake) Len() int {
	return s.length
}

// Head returns the foremost position.
func (s *Snake) Head() core.Point {
	return s.ring[s.head]
}

// At returns the i-th position counted from the head. It panics if i is out of range.
func (s *Snake) At(i int) core.Point {
	if i < 0 || i >= s.length {
		panic("snake: position index out of range")
	}
	return s.ring[(s.head+i)%len(s.ring)]
}

// Positions returns a copy of all positions, head first.
func (s *Snake) Positions() []core.Point {
	out := make([]core.Point, s.length)
	for i := range out {
		out[i] = s.At(i)
	}
	return out
}

// Occupies reports whether any segment is at p.
func (s *Snake) Occupies(p core.Point) bool {
	for i := 0; i < s.length; i++ {
		if s.At(i) == p {
			return true
		}
	}
	return false
}

// Direction returns the current movement vector.
func (s *Snake) Direction() core.Vector {
	return s.direction
}

// SetDirection replaces the movement vector. Non-unit vectors are ignored.
// The no-reversal rule is the controller's job.
func (s *Snake) SetDirection(v core.Vector) {
	if !v.Valid() {
		return
	}
	s.direction = v
}

// MovesHorizontally reports whether the x component of the direction is nonzero.
func (s *Snake) MovesHorizontally() bool {
	return s.direction.Horizontal()
}

// MovesVertically reports whether the y component of the direction is nonzero.
func (s *Snake) MovesVertically() bool {
	return s.direction.Vertical()
}

// Step returns the candidate next head without changing the snake.
func (s *Snake) Step() core.Point {
	return s.Head().Add(s.direction)
}

// Advance prepends next as the new head. The tail is dropped unless grew is set,
// in which case the length increases by one.
func (s *Snake) Advance(next core.Point, grew bool) {
	if grew && s.length == len(s.ring) {
		s.grow()
	}
	s.head = (s.head - 1 + len(s.ring)) % len(s.ring)
	s.ring[s.head] = next
	if grew {
		s.length++
	}
}

// CollidesWithSelf reports whether the head overlaps any other segment.
func (s *Snake) CollidesWithSelf() bool {
	head := s.Head()
	for i := 1; i < s.length; i++ {
		if s.At(i) == head {
			return true
		}
	}
	return false
}

// grow doubles the ring, unrolling it so the head sits at index 0.
func (s *Snake) grow() {
	next := make([]core.Point, len(s.ring)*2)
	for i := 0; i < s.length; i++ {
		next[i] = s.At(i)
	}
	s.ring = next
	s.head = 0
}
