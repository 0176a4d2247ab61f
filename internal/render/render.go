// Package render draws snake frames into a core.Screen. It knows the panel
// texts and glyphs; the engine only supplies snapshots.
package render

import (
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/term-snake/internal/config"
	"github.com/vovakirdan/term-snake/internal/core"
	"github.com/vovakirdan/term-snake/internal/games/snake"
)

// Panels is the text and glyph set used for drawing.
type Panels struct {
	Title        string
	Instructions string
	Credit       string
	GameOver     string
	ScoreLine    string
	Pause        string
	ScoreLabel   string

	Head        rune
	Body        rune
	Food        rune
	TitleBorder rune

	SnakeColor  core.Color
	FoodColor   core.Color
	BorderColor core.Color
	TextColor   core.Color
}

// FromConfig builds Panels from the loaded configuration.
func FromConfig(cfg config.SnakeConfig) Panels {
	return Panels{
		Title:        cfg.Panels.Title,
		Instructions: cfg.Panels.Instructions,
		Credit:       cfg.Panels.Credit,
		GameOver:     cfg.Panels.GameOver,
		ScoreLine:    cfg.Panels.ScoreLine,
		Pause:        cfg.Panels.Pause,
		ScoreLabel:   cfg.Panels.ScoreLabel,
		Head:         firstRune(cfg.Glyphs.Head, 'o'),
		Body:         firstRune(cfg.Glyphs.Body, 'o'),
		Food:         firstRune(cfg.Glyphs.Food, '+'),
		TitleBorder:  firstRune(cfg.Glyphs.Title, '#'),
		SnakeColor:   core.ParseColor(cfg.Colors.Snake),
		FoodColor:    core.ParseColor(cfg.Colors.Food),
		BorderColor:  core.ParseColor(cfg.Colors.Border),
		TextColor:    core.ParseColor(cfg.Colors.Text),
	}
}

// DefaultPanels returns the panels for the built-in configuration.
func DefaultPanels() Panels {
	return FromConfig(config.Default())
}

func firstRune(s string, fallback rune) rune {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || r == utf8.RuneError {
		return fallback
	}
	return r
}

// Draw renders one frame for the snapshot's lifecycle state.
// The screen is cleared first.
func Draw(dst *core.Screen, snap snake.Snapshot, p Panels) {
	dst.Clear()

	switch snap.Lifecycle {
	case snake.Playing:
		drawPlaying(dst, snap, p)
	case snake.GameOverMenu:
		drawGameOver(dst, snap, p)
	case snake.Paused:
		dst.DrawTextCentered(dst.Height()/2-2, p.Pause, p.TextColor)
	}
}

// drawPlaying draws the border, score panel, snake and food.
func drawPlaying(dst *core.Screen, snap snake.Snapshot, p Panels) {
	dst.DrawBox(snap.Board.Rect(), p.BorderColor)
	dst.DrawText(1, 1, fmt.Sprintf("%s%d", p.ScoreLabel, snap.Score), p.TextColor)

	// Body first so a head overlapping its body stays visible.
	for i := len(snap.Snake) - 1; i >= 0; i-- {
		seg := snap.Snake[i]
		glyph := p.Body
		if i == 0 {
			glyph = p.Head
		}
		dst.SetColored(seg.X, seg.Y, glyph, p.SnakeColor)
	}

	for _, f := range snap.Food {
		dst.SetColored(f.X, f.Y, p.Food, p.FoodColor)
	}
}

// drawGameOver draws the game-over panel with the last score.
func drawGameOver(dst *core.Screen, snap snake.Snapshot, p Panels) {
	mid := dst.Height() / 2
	dst.DrawTextCentered(mid-2, p.GameOver, p.TextColor)
	dst.DrawTextCentered(mid, fmt.Sprintf(p.ScoreLine, snap.ResultingScore), p.TextColor)
	dst.DrawTextCentered(mid+2, p.Instructions, p.TextColor)
}

// DrawTitle renders the start screen shown before the loop begins.
func DrawTitle(dst *core.Screen, p Panels) {
	dst.Clear()
	w, h := dst.Width(), dst.Height()

	dst.DrawFrame(core.NewRect(0, 0, w, h), p.TitleBorder, p.BorderColor)
	dst.DrawTextCentered(h/2, p.Title, p.TextColor)
	dst.DrawTextCentered(h/2+2, p.Instructions, p.TextColor)
	dst.DrawTextCentered(h-3, p.Credit, p.TextColor)
	dst.DrawText(2, h-2, fmt.Sprintf("%dx%d", h, w), p.TextColor)
}
