package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/term-snake/internal/core"
	"github.com/vovakirdan/term-snake/internal/games/snake"
	"github.com/vovakirdan/term-snake/internal/platform"
	"github.com/vovakirdan/term-snake/internal/render"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	e, err := snake.NewEngine(core.RuntimeConfig{
		Board: core.Board{Columns: 100, Rows: 20},
		Seed:  3,
	}, snake.Options{FoodCount: 1})
	if err != nil {
		t.Fatalf("NewEngine() failed: %v", err)
	}
	s := platform.NewSession(e, nil, nil, time.Hour)
	t.Cleanup(func() { s.Stop() })
	return NewModel(context.Background(), s, render.DefaultPanels(), 100, 20)
}

func TestModelTitleScreen(t *testing.T) {
	m := newTestModel(t)

	view := m.View()
	if !strings.Contains(view, "THE SNAKE GAME!") {
		t.Error("title screen missing title")
	}
	if !strings.Contains(view, "quit") {
		t.Error("help line missing")
	}
}

func TestModelStartsOnKey(t *testing.T) {
	m := newTestModel(t)

	next, cmd := m.Update(runeKey('x'))
	m = next.(Model)
	if m.phase != phasePlaying {
		t.Fatalf("phase = %v, expected playing", m.phase)
	}
	if cmd == nil {
		t.Fatal("expected a frame wait command")
	}

	// The loop presents a frame right after starting.
	msg := cmd()
	frame, ok := msg.(FrameMsg)
	if !ok {
		t.Fatalf("cmd() = %T, expected FrameMsg", msg)
	}
	next, _ = m.Update(frame)
	m = next.(Model)

	if !strings.Contains(m.View(), "Score: 0") {
		t.Error("playing view missing score panel")
	}
}

func TestModelSteersSnake(t *testing.T) {
	m := newTestModel(t)
	next, _ := m.Update(runeKey('x'))
	m = next.(Model)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(Model)

	if got := m.session.Engine().Snapshot().Direction; got != core.Up {
		t.Errorf("Direction = %v, expected %v", got, core.Up)
	}
}

func TestModelQuitStopsSession(t *testing.T) {
	m := newTestModel(t)
	next, _ := m.Update(runeKey('x'))
	m = next.(Model)

	next, cmd := m.Update(runeKey('q'))
	m = next.(Model)

	if cmd == nil {
		t.Fatal("quit should return tea.Quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command did not produce QuitMsg")
	}
	select {
	case <-m.session.Done():
	default:
		t.Error("session loop still running after quit")
	}
	if m.View() != "" {
		t.Error("View() should be empty after quit")
	}
}

func TestModelLoopDone(t *testing.T) {
	m := newTestModel(t)
	next, cmd := m.Update(LoopDoneMsg{})
	m = next.(Model)
	if !m.quitting || cmd == nil {
		t.Error("LoopDoneMsg should quit the program")
	}
}

func TestFramesKeepsLatest(t *testing.T) {
	f := newFrames()
	f.Present(snake.Snapshot{Tick: 1})
	f.Present(snake.Snapshot{Tick: 2})

	done := make(chan struct{})
	msg := waitFrame(f, done)()
	if got := snake.Snapshot(msg.(FrameMsg)).Tick; got != 2 {
		t.Errorf("Tick = %d, expected 2", got)
	}

	close(done)
	if _, ok := waitFrame(f, done)().(LoopDoneMsg); !ok {
		t.Error("expected LoopDoneMsg once done is closed")
	}
}
