package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/term-snake/internal/config"
	"github.com/vovakirdan/term-snake/internal/core"
	"github.com/vovakirdan/term-snake/internal/games/snake"
	"github.com/vovakirdan/term-snake/internal/platform"
	"github.com/vovakirdan/term-snake/internal/platform/tui"
	"github.com/vovakirdan/term-snake/internal/registry"
	"github.com/vovakirdan/term-snake/internal/render"
	"github.com/vovakirdan/term-snake/internal/storage"
	"github.com/vovakirdan/term-snake/internal/telemetry"
)

// writeArg is the only positional argument accepted by the root command.
const writeArg = "w"

var (
	flagWrite   bool
	flagBackend string
	flagSeed    int64
)

func init() {
	rootCmd.Flags().BoolVarP(&flagWrite, "write", "w", false, "Append telemetry to "+telemetry.FileName)
	rootCmd.Flags().StringVar(&flagBackend, "backend", tui.BackendID, "Terminal backend (see 'snake backends')")
	rootCmd.Flags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
}

// playArgs accepts no arguments or the single word "w".
func playArgs(cmd *cobra.Command, args []string) error {
	switch {
	case len(args) == 0:
		return nil
	case len(args) == 1 && args[0] == writeArg:
		return nil
	default:
		return fmt.Errorf("unexpected arguments %q: only %q is accepted", args, writeArg)
	}
}

func runPlay(cmd *cobra.Command, args []string) error {
	write := flagWrite || len(args) == 1

	if !registry.Exists(flagBackend) {
		return fmt.Errorf("unknown backend %q, run 'snake backends' to list them", flagBackend)
	}
	// Past this point errors are runtime failures, not usage mistakes.
	cmd.SilenceUsage = true

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(flagLogFile, flagDebug)
	if err != nil {
		return err
	}
	defer closeLog()

	sinks, err := openSinks(write, cfg)
	if err != nil {
		return err
	}
	defer sinks.close()

	backend, err := registry.Create(flagBackend)
	if err != nil {
		return err
	}

	var session *platform.Session
	build := func(board core.Board) (*platform.Session, error) {
		engine, err := snake.NewEngine(core.RuntimeConfig{
			Board: board,
			Tick:  cfg.Tick(),
			Seed:  flagSeed,
		}, snake.Options{
			FoodCount:  cfg.Food.Count,
			AvoidSnake: cfg.Food.AvoidSnake,
		})
		if err != nil {
			return nil, err
		}
		rec, err := sinks.recorder(board)
		if err != nil {
			return nil, err
		}
		session = platform.NewSession(engine, rec, logger, cfg.Tick())
		return session, nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting", "backend", flagBackend, "telemetry", write)
	runErr := backend.Run(ctx, build, render.FromConfig(cfg))
	if session != nil {
		sinks.handedOff()
		snap := session.Engine().Snapshot()
		if snap.Games > 0 {
			fmt.Printf(cfg.Panels.ScoreLine+"\n", snap.ResultingScore)
		}
	}
	if runErr != nil {
		logger.Error("run failed", "err", runErr)
	}
	return runErr
}

// sinks holds the telemetry destinations opened before the terminal is taken.
type sinks struct {
	file  *telemetry.FileRecorder
	store *storage.Store
	owned bool // the file has not been handed to a session yet
}

// openSinks opens the TSV file and the optional database up front so that a
// bad path fails before any terminal state changes.
func openSinks(write bool, cfg config.SnakeConfig) (*sinks, error) {
	s := &sinks{}
	if !write {
		return s, nil
	}

	path := cfg.Telemetry.Path
	if path == "" {
		path = telemetry.FileName
	}
	f, err := telemetry.OpenFile(path)
	if err != nil {
		return nil, err
	}
	s.file = f
	s.owned = true

	dbPath := flagDBPath
	if dbPath == "" {
		dbPath = cfg.Telemetry.DB
	}
	if dbPath != "" {
		store, err := storage.Open(dbPath)
		if err != nil {
			f.Close()
			return nil, err
		}
		s.store = store
	}
	return s, nil
}

// recorder combines the open sinks for a board.
func (s *sinks) recorder(board core.Board) (telemetry.Recorder, error) {
	var rs []telemetry.Recorder
	if s.file != nil {
		rs = append(rs, s.file)
	}
	if s.store != nil {
		sr, err := telemetry.NewStoreRecorder(s.store, board.Columns, board.Rows)
		if err != nil {
			return nil, err
		}
		rs = append(rs, sr)
	}
	return telemetry.Combine(rs...), nil
}

// handedOff marks the file as owned by the session, which closes it on Stop.
func (s *sinks) handedOff() {
	s.owned = false
}

func (s *sinks) close() error {
	var errs []error
	if s.owned && s.file != nil {
		errs = append(errs, s.file.Close())
	}
	if s.store != nil {
		errs = append(errs, s.store.Close())
	}
	return errors.Join(errs...)
}
