package main

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/term-snake/internal/storage"
	"github.com/vovakirdan/term-snake/internal/telemetry"
)

var flagSession string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write stored samples as TSV to stdout",
	Long: `Write training samples from the database in the same format as
snake_training.tsv: dw1n dw2n dw3n dw4n dfn ate direction_code.

Examples:
  snake export --db ~/.snake/training.db > all.tsv
  snake export --session 6f1c... > one.tsv`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&flagSession, "session", "", "Export one session only")
}

func runExport(cmd *cobra.Command, args []string) error {
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

	samples, err := store.Samples(flagSession)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(cmd.OutOrStdout())
	for _, s := range samples {
		fmt.Fprintln(w, formatSample(s))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	stderrLogger().Info("exported", "samples", len(samples), "session", flagSession)
	return nil
}

// formatSample renders a stored row exactly like the TSV recorder does.
func formatSample(s storage.Sample) string {
	return telemetry.FormatRow(s.DW1, s.DW2, s.DW3, s.DW4, s.DF, s.Ate, s.Direction)
}
