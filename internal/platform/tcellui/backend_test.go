package tcellui

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/term-snake/internal/core"
	"github.com/vovakirdan/term-snake/internal/games/snake"
	"github.com/vovakirdan/term-snake/internal/render"
)

func TestActionFor(t *testing.T) {
	tests := []struct {
		name     string
		ev       *tcell.EventKey
		expected core.Action
	}{
		{"left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), core.ActionLeft},
		{"right", tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), core.ActionRight},
		{"up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), core.ActionUp},
		{"down", tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), core.ActionDown},
		{"space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), core.ActionResume},
		{"pause", tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone), core.ActionPause},
		{"quit", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), core.ActionQuit},
		{"ctrl+c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), core.ActionQuit},
		{"vim k", tcell.NewEventKey(tcell.KeyRune, 'k', tcell.ModNone), core.ActionUp},
		{"unbound", tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone), core.ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := actionFor(tt.ev); got != tt.expected {
				t.Errorf("actionFor() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestViewPresent(t *testing.T) {
	scr := tcell.NewSimulationScreen("")
	if err := scr.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	defer scr.Fini()
	scr.SetSize(40, 12)

	panels := render.DefaultPanels()
	v := newView(scr, 40, 12, panels)
	v.Present(snake.Snapshot{
		Board:     core.Board{Columns: 40, Rows: 12},
		Lifecycle: snake.Playing,
		Snake:     []core.Point{{X: 5, Y: 5}},
		Direction: core.Right,
		Food:      []core.Point{{X: 9, Y: 6}},
	})

	mainc, _, style, _ := scr.GetContent(9, 6)
	if mainc != '+' {
		t.Errorf("food rune = %q, expected '+'", mainc)
	}
	if fg, _, _ := style.Decompose(); fg != palette[panels.FoodColor] {
		t.Errorf("food color = %v, expected %v", fg, palette[panels.FoodColor])
	}
	if mainc, _, _, _ := scr.GetContent(5, 5); mainc != 'o' {
		t.Errorf("head rune = %q, expected 'o'", mainc)
	}
}

func TestStyleForUnknownColor(t *testing.T) {
	fg, _, _ := styleFor(core.Color(200)).Decompose()
	if fg != tcell.ColorDefault {
		t.Errorf("styleFor(unknown) foreground = %v, expected default", fg)
	}
}
