// Package config provides YAML-based configuration loading for the snake game.
package config

import (
	"time"

	"github.com/vovakirdan/term-snake/internal/core"
)

// SnakeConfig contains all configuration for a run.
type SnakeConfig struct {
	TickMS    int             `yaml:"tick_ms"`
	Food      FoodConfig      `yaml:"food"`
	Glyphs    GlyphConfig     `yaml:"glyphs"`
	Colors    ColorConfig     `yaml:"colors"`
	Panels    PanelConfig     `yaml:"panels"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// FoodConfig defines food placement.
type FoodConfig struct {
	Count      int  `yaml:"count"`
	AvoidSnake bool `yaml:"avoid_snake"` // never spawn under the snake
}

// GlyphConfig defines the characters used to draw the board.
type GlyphConfig struct {
	Head  string `yaml:"head"`
	Body  string `yaml:"body"`
	Food  string `yaml:"food"`
	Title string `yaml:"title_border"`
}

// ColorConfig names the foreground color of each element.
type ColorConfig struct {
	Snake  string `yaml:"snake"`
	Food   string `yaml:"food"`
	Border string `yaml:"border"`
	Text   string `yaml:"text"`
}

// PanelConfig holds the text shown on the title, game-over and pause panels.
type PanelConfig struct {
	Title        string `yaml:"title"`
	Instructions string `yaml:"instructions"`
	Credit       string `yaml:"credit"`
	GameOver     string `yaml:"game_over"`
	ScoreLine    string `yaml:"score_line"` // fmt verb %d receives the final score
	Pause        string `yaml:"pause"`
	ScoreLabel   string `yaml:"score_label"`
}

// TelemetryConfig defines where training data goes.
type TelemetryConfig struct {
	Path string `yaml:"path"` // TSV file used when -w is given
	DB   string `yaml:"db"`   // optional SQLite mirror, empty = disabled
}

// Tick returns the loop period.
func (c SnakeConfig) Tick() time.Duration {
	if c.TickMS <= 0 {
		return core.DefaultTick
	}
	return time.Duration(c.TickMS) * time.Millisecond
}
