// Package tcellui is the tcell backend: the main goroutine polls key events
// while the session loop draws straight to the tcell screen.
package tcellui

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/term-snake/internal/core"
	"github.com/vovakirdan/term-snake/internal/games/snake"
	"github.com/vovakirdan/term-snake/internal/platform"
	"github.com/vovakirdan/term-snake/internal/registry"
	"github.com/vovakirdan/term-snake/internal/render"
)

// BackendID is the --backend value selecting tcell.
const BackendID = "tcell"

func init() {
	registry.Register(BackendID, func() registry.Backend { return Backend{} })
}

var palette = map[core.Color]tcell.Color{
	core.ColorDefault:     tcell.ColorDefault,
	core.ColorRed:         tcell.PaletteColor(1),
	core.ColorGreen:       tcell.PaletteColor(2),
	core.ColorYellow:      tcell.PaletteColor(3),
	core.ColorBlue:        tcell.PaletteColor(4),
	core.ColorCyan:        tcell.PaletteColor(6),
	core.ColorBrightRed:   tcell.PaletteColor(9),
	core.ColorBrightGreen: tcell.PaletteColor(10),
	core.ColorBrightWhite: tcell.PaletteColor(15),
	core.ColorGray:        tcell.PaletteColor(245),
}

// styleFor returns the tcell style for a cell color.
func styleFor(c core.Color) tcell.Style {
	fg, ok := palette[c]
	if !ok {
		fg = tcell.ColorDefault
	}
	return tcell.StyleDefault.Foreground(fg)
}

// actionFor translates a key event to a game action.
func actionFor(ev *tcell.EventKey) core.Action {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return core.ActionQuit
	case tcell.KeyLeft:
		return core.ActionLeft
	case tcell.KeyRight:
		return core.ActionRight
	case tcell.KeyUp:
		return core.ActionUp
	case tcell.KeyDown:
		return core.ActionDown
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return core.ActionQuit
		case 'h':
			return core.ActionLeft
		case 'l':
			return core.ActionRight
		case 'k':
			return core.ActionUp
		case 'j':
			return core.ActionDown
		case ' ':
			return core.ActionResume
		case 'p':
			return core.ActionPause
		}
	}
	return core.ActionNone
}

// view draws frames onto a tcell screen. Present runs on the loop goroutine;
// the title is drawn on the main goroutine before the loop starts.
type view struct {
	scr    tcell.Screen
	buf    *core.Screen
	panels render.Panels
}

func newView(scr tcell.Screen, width, height int, panels render.Panels) *view {
	return &view{
		scr:    scr,
		buf:    core.NewScreen(width, height),
		panels: panels,
	}
}

// Present implements platform.Presenter.
func (v *view) Present(snap snake.Snapshot) {
	render.Draw(v.buf, snap, v.panels)
	v.flush()
}

func (v *view) title() {
	render.DrawTitle(v.buf, v.panels)
	v.flush()
}

// flush copies the buffer to the terminal.
func (v *view) flush() {
	for y, h := 0, v.buf.Height(); y < h; y++ {
		for x, w := 0, v.buf.Width(); x < w; x++ {
			cell := v.buf.GetCell(x, y)
			v.scr.SetContent(x, y, cell.Rune, nil, styleFor(cell.Color))
		}
	}
	v.scr.Show()
}

// Backend runs the game on a raw tcell screen.
type Backend struct{}

// ID implements registry.Backend.
func (Backend) ID() string { return BackendID }

// Title implements registry.Backend.
func (Backend) Title() string { return "tcell (direct cell drawing)" }

// Run sizes the board from the whole screen and blocks until the player
// quits or ctx is cancelled.
func (Backend) Run(ctx context.Context, build platform.Builder, panels render.Panels) error {
	scr, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("tcell: problem creating screen: %w", err)
	}
	if err := scr.Init(); err != nil {
		return fmt.Errorf("tcell: init problem: %w", err)
	}
	defer scr.Fini()
	scr.SetStyle(tcell.StyleDefault)
	scr.HideCursor()

	w, h := scr.Size()
	session, err := build(core.Board{Columns: w, Rows: h})
	if err != nil {
		return err
	}

	// Wake PollEvent when the run ends from outside the key loop.
	go func() {
		select {
		case <-ctx.Done():
		case <-session.Done():
		}
		//nolint:errcheck // The screen may already be finalized
		scr.PostEvent(tcell.NewEventInterrupt(nil))
	}()

	v := newView(scr, w, h, panels)
	v.title()
	if !waitForStart(scr, v) {
		return session.Stop()
	}

	session.Start(ctx, v)
	for {
		switch ev := scr.PollEvent().(type) {
		case nil, *tcell.EventInterrupt:
			return session.Stop()
		case *tcell.EventResize:
			scr.Sync()
		case *tcell.EventKey:
			if session.HandleAction(actionFor(ev)) {
				return session.Stop()
			}
		}
	}
}

// waitForStart keeps the title on screen until a key is pressed. It reports
// false when the player quits or the screen is interrupted.
func waitForStart(scr tcell.Screen, v *view) bool {
	for {
		switch ev := scr.PollEvent().(type) {
		case nil, *tcell.EventInterrupt:
			return false
		case *tcell.EventResize:
			v.title()
			scr.Sync()
		case *tcell.EventKey:
			return actionFor(ev) != core.ActionQuit
		}
	}
}
