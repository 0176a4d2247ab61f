package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/term-snake/internal/config"
	"github.com/vovakirdan/term-snake/internal/storage"
)

func TestPlayArgs(t *testing.T) {
	tests := []struct {
		args    []string
		wantErr bool
	}{
		{nil, false},
		{[]string{"w"}, false},
		{[]string{"x"}, true},
		{[]string{"w", "w"}, true},
		{[]string{"-x"}, true},
	}

	for _, tt := range tests {
		err := playArgs(rootCmd, tt.args)
		if (err != nil) != tt.wantErr {
			t.Errorf("playArgs(%q) error = %v, wantErr %v", tt.args, err, tt.wantErr)
		}
	}
}

func TestBackendsListsRegistered(t *testing.T) {
	var out bytes.Buffer
	backendsCmd.SetOut(&out)
	defer backendsCmd.SetOut(nil)

	runBackends(backendsCmd, nil)

	for _, want := range []string{"tea", "tcell"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("backends output missing %q:\n%s", want, out.String())
		}
	}
}

func seedDB(t *testing.T) (string, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "training.db")
	store, err := storage.Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	id, err := store.BeginSession(20, 10)
	if err != nil {
		t.Fatalf("BeginSession() failed: %v", err)
	}
	err = store.SaveSamples(id, []storage.Sample{
		{Tick: 1, DW1: 0.5, DW2: 0.5, DW3: 0.5, DW4: 0.5, DF: 0.25, Ate: false, Direction: "0010"},
		{Tick: 2, DW1: 0.55, DW2: 0.45, DW3: 0.5, DW4: 0.5, DF: 0.2, Ate: true, Direction: "0010"},
	})
	if err != nil {
		t.Fatalf("SaveSamples() failed: %v", err)
	}
	if _, err := store.SaveGame(storage.GameEntry{SessionID: id, Score: 10, Length: 2, Ticks: 2, Cause: "wall"}); err != nil {
		t.Fatalf("SaveGame() failed: %v", err)
	}
	return path, id
}

func withDBFlag(t *testing.T, path string) {
	t.Helper()
	old := flagDBPath
	flagDBPath = path
	t.Cleanup(func() { flagDBPath = old })
}

func TestExportWritesTSV(t *testing.T) {
	path, id := seedDB(t)
	withDBFlag(t, path)
	flagSession = id
	defer func() { flagSession = "" }()

	var out bytes.Buffer
	exportCmd.SetOut(&out)
	defer exportCmd.SetOut(nil)

	if err := runExport(exportCmd, nil); err != nil {
		t.Fatalf("runExport() failed: %v", err)
	}

	expected := "0.500000\t0.500000\t0.500000\t0.500000\t0.250000\t0\t0010\n" +
		"0.550000\t0.450000\t0.500000\t0.500000\t0.200000\t1\t0010\n"
	if out.String() != expected {
		t.Errorf("export output = %q, expected %q", out.String(), expected)
	}
}

func TestStatsRendersGames(t *testing.T) {
	path, _ := seedDB(t)
	withDBFlag(t, path)

	var out bytes.Buffer
	statsCmd.SetOut(&out)
	defer statsCmd.SetOut(nil)

	if err := runStats(statsCmd, nil); err != nil {
		t.Fatalf("runStats() failed: %v", err)
	}
	for _, want := range []string{"HIGH SCORES", "wall", "Samples: 2"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("stats output missing %q:\n%s", want, out.String())
		}
	}
}

func TestResolveDBPathFlag(t *testing.T) {
	withDBFlag(t, "/tmp/custom.db")
	got, err := resolveDBPath()
	if err != nil || got != "/tmp/custom.db" {
		t.Errorf("resolveDBPath() = %q, %v, expected /tmp/custom.db", got, err)
	}
}

func TestOpenSinksWithoutWrite(t *testing.T) {
	s, err := openSinks(false, defaultTestConfig())
	if err != nil {
		t.Fatalf("openSinks() failed: %v", err)
	}
	if s.file != nil || s.store != nil {
		t.Error("no sinks should be opened without -w")
	}
	if err := s.close(); err != nil {
		t.Errorf("close() error = %v", err)
	}
}

func TestOpenSinksFailsFast(t *testing.T) {
	cfg := defaultTestConfig()
	cfg.Telemetry.Path = filepath.Join(t.TempDir(), "missing", "snake_training.tsv")

	if _, err := openSinks(true, cfg); err == nil {
		t.Error("openSinks() should fail for an unwritable path")
	}
}

func defaultTestConfig() config.SnakeConfig {
	return config.Default()
}
