// Package tui provides the Bubble Tea backend. Bubble Tea's event loop is the
// control goroutine; the session loop runs beside it and hands over frames.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/term-snake/internal/games/snake"
)

// FrameMsg carries the latest snapshot from the session loop.
type FrameMsg snake.Snapshot

// LoopDoneMsg is sent once the session loop has exited.
type LoopDoneMsg struct{}

// frames is a one-slot mailbox. A slow UI only ever sees the newest frame.
type frames chan snake.Snapshot

func newFrames() frames {
	return make(frames, 1)
}

// Present implements platform.Presenter without blocking the loop.
func (f frames) Present(snap snake.Snapshot) {
	for {
		select {
		case f <- snap:
			return
		default:
		}
		select {
		case <-f:
		default:
		}
	}
}

// waitFrame returns a command that delivers the next frame, or LoopDoneMsg
// when done closes first.
func waitFrame(f frames, done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case snap := <-f:
			return FrameMsg(snap)
		case <-done:
			return LoopDoneMsg{}
		}
	}
}
