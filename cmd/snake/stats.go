package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/term-snake/internal/config"
	"github.com/vovakirdan/term-snake/internal/platform/tui"
	"github.com/vovakirdan/term-snake/internal/storage"
)

var errNoDatabase = errors.New("no training database: pass --db or set telemetry.db in the config")

var flagLimit int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the best recorded games",
	Long: `Display the top finished games and sample counts from the training database.

Examples:
  snake stats --db ~/.snake/training.db
  snake stats --limit 20`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of games to show")
}

// resolveDBPath picks the database from --db, then the config.
func resolveDBPath() (string, error) {
	if flagDBPath != "" {
		return flagDBPath, nil
	}
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return "", err
	}
	if cfg.Telemetry.DB == "" {
		return "", errNoDatabase
	}
	return cfg.Telemetry.DB, nil
}

func runStats(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	dbPath, err := resolveDBPath()
	if err != nil {
		return err
	}

	store, err := storage.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	games, err := store.TopGames(flagLimit)
	if err != nil {
		return err
	}
	stats, err := store.GetStats()
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), tui.RenderScoreboard(stats, games))
	return nil
}
