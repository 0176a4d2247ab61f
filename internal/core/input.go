package core

// Action represents a semantic game command, abstracted from physical key presses.
// Backends translate their key events into actions; the snake controller only
// ever sees actions.
type Action int

const (
	ActionNone   Action = iota
	ActionLeft          // Left arrow
	ActionRight         // Right arrow
	ActionUp            // Up arrow
	ActionDown          // Down arrow
	ActionResume        // Space - resume / continue after game over
	ActionPause         // P - toggle pause
	ActionQuit          // Q, Ctrl+C - end the session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionResume:
		return "Resume"
	case ActionPause:
		return "Pause"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Vector returns the movement vector for a direction action.
// ok is false for non-direction actions.
func (a Action) Vector() (v Vector, ok bool) {
	switch a {
	case ActionLeft:
		return Left, true
	case ActionRight:
		return Right, true
	case ActionUp:
		return Up, true
	case ActionDown:
		return Down, true
	}
	return Vector{}, false
}
