// snake is a terminal snake game that can record per-tick training data.
//
// Usage:
//
//	snake [w]            - Play; "w" or -w appends telemetry to snake_training.tsv
//	snake stats          - Show the best recorded games
//	snake export         - Write stored samples as TSV to stdout
//	snake backends       - List terminal backends
//
// Global flags:
//
//	--config <path>  - Custom YAML config
//	--db <path>      - SQLite training database (default: telemetry.db from config)
//	--log-file <path> - Write logs here while the game owns the terminal
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import backends to register them
	_ "github.com/vovakirdan/term-snake/internal/platform/tcellui"
	_ "github.com/vovakirdan/term-snake/internal/platform/tui"
)

var (
	// Global flags
	flagConfig  string
	flagDBPath  string
	flagLogFile string
	flagDebug   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake [w]",
	Short: "Snake - play in your terminal and record training data",
	Long: `Snake is a terminal snake game. Steer with the arrow keys, eat food,
avoid the walls and your own body.

With -w (or a bare "w" argument) every tick is appended to
snake_training.tsv in the working directory as
dw1n dw2n dw3n dw4n dfn ate direction_code.

Controls:
  Arrows   - Move
  Space    - Continue after game over
  P        - Pause / resume
  Q/Ctrl+C - Quit

Examples:
  snake
  snake w
  snake -w --db ~/.snake/training.db
  snake --backend tcell
  snake stats --db ~/.snake/training.db`,
	Args:          playArgs,
	RunE:          runPlay,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to SQLite training database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Append logs to this file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(backendsCmd)
}
