package tui

import (
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/vovakirdan/term-snake/internal/core"
	"github.com/vovakirdan/term-snake/internal/games/snake"
	"github.com/vovakirdan/term-snake/internal/platform"
	"github.com/vovakirdan/term-snake/internal/registry"
	"github.com/vovakirdan/term-snake/internal/render"
)

// BackendID is the --backend value selecting Bubble Tea.
const BackendID = "tea"

func init() {
	registry.Register(BackendID, func() registry.Backend { return Backend{} })
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

type phase int

const (
	phaseTitle phase = iota
	phasePlaying
)

// Model is the Bubble Tea model for a snake session. Update runs on the
// control goroutine; frames arrive from the session loop as FrameMsg.
type Model struct {
	ctx      context.Context
	session  *platform.Session
	panels   render.Panels
	screen   *core.Screen
	frames   frames
	snap     snake.Snapshot
	keys     KeyMap
	help     help.Model
	phase    phase
	quitting bool
}

// NewModel creates a model showing the title screen. The session loop is
// started by the first key press.
func NewModel(ctx context.Context, session *platform.Session, panels render.Panels, width, height int) Model {
	h := help.New()
	h.Width = width

	return Model{
		ctx:     ctx,
		session: session,
		panels:  panels,
		screen:  core.NewScreen(width, height),
		frames:  newFrames(),
		keys:    DefaultKeyMap(),
		help:    h,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case FrameMsg:
		m.snap = snake.Snapshot(msg)
		return m, waitFrame(m.frames, m.session.Done())

	case LoopDoneMsg:
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.Action(msg)
	if action == core.ActionQuit {
		m.quitting = true
		//nolint:errcheck // Run reports the Stop error after the program exits
		m.session.Stop()
		return m, tea.Quit
	}

	if m.phase == phaseTitle {
		m.phase = phasePlaying
		m.snap = m.session.Engine().Snapshot()
		m.session.Start(m.ctx, m.frames)
		return m, waitFrame(m.frames, m.session.Done())
	}

	m.session.HandleAction(action)
	return m, nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.phase == phaseTitle {
		render.DrawTitle(m.screen, m.panels)
	} else {
		render.Draw(m.screen, m.snap, m.panels)
	}

	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Backend runs the game inside a Bubble Tea program.
type Backend struct{}

// ID implements registry.Backend.
func (Backend) ID() string { return BackendID }

// Title implements registry.Backend.
func (Backend) Title() string { return "Bubble Tea (lipgloss colors)" }

// Run sizes the board from the terminal, one row short for the help line,
// and blocks until the player quits.
func (Backend) Run(ctx context.Context, build platform.Builder, panels render.Panels) error {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	board := core.Board{Columns: width, Rows: height - 1}

	session, err := build(board)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		NewModel(ctx, session, panels, board.Columns, board.Rows),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	_, runErr := p.Run()
	if ctx.Err() != nil && errors.Is(runErr, tea.ErrProgramKilled) {
		runErr = nil
	}
	return errors.Join(runErr, session.Stop())
}
