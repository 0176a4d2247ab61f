package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// Default returns the built-in configuration, used when no YAML can be read.
func Default() SnakeConfig {
	return SnakeConfig{
		TickMS: 50,
		Food: FoodConfig{
			Count:      1,
			AvoidSnake: true,
		},
		Glyphs: GlyphConfig{
			Head:  "o",
			Body:  "o",
			Food:  "+",
			Title: "#",
		},
		Colors: ColorConfig{
			Snake:  "bright_green",
			Food:   "bright_red",
			Border: "gray",
			Text:   "bright_white",
		},
		Panels: PanelConfig{
			Title:        "THE SNAKE GAME!",
			Instructions: "Press SPACE to continue. Use the arrow keys to move the snake. Press P to pause the game.",
			Credit:       "Author: Santi PdP",
			GameOver:     "GAME OVER",
			ScoreLine:    "You scored: %d points!",
			Pause:        "PAUSED. PRESS P TO CONTINUE",
			ScoreLabel:   "Score: ",
		},
		Telemetry: TelemetryConfig{
			Path: "snake_training.tsv",
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultSnakeYAML
}
