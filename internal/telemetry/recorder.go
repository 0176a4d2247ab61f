package telemetry

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/vovakirdan/term-snake/internal/storage"
)

// Recorder receives samples and game results from the loop goroutine.
type Recorder interface {
	RecordTick(s Sample) error
	RecordGame(g GameResult) error
	Close() error
}

// Nop discards everything. It is used when telemetry is off.
type Nop struct{}

func (Nop) RecordTick(Sample) error     { return nil }
func (Nop) RecordGame(GameResult) error { return nil }
func (Nop) Close() error                { return nil }

// FileRecorder appends TSV rows to a file. Writes are buffered and flushed
// on Close.
type FileRecorder struct {
	mu sync.Mutex
	f  *os.File
	w  *bufio.Writer
}

// OpenFile opens path for appending, creating it if needed.
func OpenFile(path string) (*FileRecorder, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("telemetry: cannot open %s: %w", path, err)
	}
	return &FileRecorder{f: f, w: bufio.NewWriter(f)}, nil
}

// RecordTick writes one line.
func (r *FileRecorder) RecordTick(s Sample) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, err := r.w.WriteString(s.TSV() + "\n"); err != nil {
		return fmt.Errorf("telemetry: write sample: %w", err)
	}
	return nil
}

// RecordGame is a no-op; the file only holds per-tick rows.
func (r *FileRecorder) RecordGame(GameResult) error { return nil }

// Close flushes pending rows and closes the file.
func (r *FileRecorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	flushErr := r.w.Flush()
	closeErr := r.f.Close()
	return errors.Join(flushErr, closeErr)
}

// batchSize is the number of samples buffered before a store transaction.
const batchSize = 64

// StoreRecorder writes samples and game results to a SQLite store under one session.
type StoreRecorder struct {
	mu        sync.Mutex
	store     *storage.Store
	sessionID string
	pending   []storage.Sample
	ownsStore bool
}

// NewStoreRecorder begins a session in store for a board of the given size.
// The store stays open after Close.
func NewStoreRecorder(store *storage.Store, columns, rows int) (*StoreRecorder, error) {
	id, err := store.BeginSession(columns, rows)
	if err != nil {
		return nil, err
	}
	return &StoreRecorder{store: store, sessionID: id}, nil
}

// OpenStore opens the database at path and begins a session. Close also
// closes the database.
func OpenStore(path string, columns, rows int) (*StoreRecorder, error) {
	store, err := storage.Open(path)
	if err != nil {
		return nil, err
	}
	r, err := NewStoreRecorder(store, columns, rows)
	if err != nil {
		store.Close()
		return nil, err
	}
	r.ownsStore = true
	return r, nil
}

// SessionID returns the store session this recorder writes to.
func (r *StoreRecorder) SessionID() string {
	return r.sessionID
}

// RecordTick buffers the sample and writes a batch when full.
func (r *StoreRecorder) RecordTick(s Sample) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending = append(r.pending, storage.Sample{
		Tick:      s.Tick,
		DW1:       s.DW1,
		DW2:       s.DW2,
		DW3:       s.DW3,
		DW4:       s.DW4,
		DF:        s.DF,
		Ate:       s.Ate,
		Direction: DirectionCode(s.Dir),
	})
	if len(r.pending) < batchSize {
		return nil
	}
	return r.flush()
}

// RecordGame flushes pending samples and stores the result.
func (r *StoreRecorder) RecordGame(g GameResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.flush(); err != nil {
		return err
	}
	_, err := r.store.SaveGame(storage.GameEntry{
		SessionID: r.sessionID,
		Score:     g.Score,
		Length:    g.Length,
		Ticks:     g.Ticks,
		Cause:     g.Cause,
	})
	return err
}

// Close flushes pending samples.
func (r *StoreRecorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	err := r.flush()
	if r.ownsStore {
		err = errors.Join(err, r.store.Close())
	}
	return err
}

// flush writes the pending batch. Caller holds r.mu.
func (r *StoreRecorder) flush() error {
	if len(r.pending) == 0 {
		return nil
	}
	err := r.store.SaveSamples(r.sessionID, r.pending)
	r.pending = r.pending[:0]
	return err
}

// Multi fans out to several recorders. Every recorder is called even when an
// earlier one fails; the errors are joined.
type Multi []Recorder

func (m Multi) RecordTick(s Sample) error {
	var errs []error
	for _, r := range m {
		errs = append(errs, r.RecordTick(s))
	}
	return errors.Join(errs...)
}

func (m Multi) RecordGame(g GameResult) error {
	var errs []error
	for _, r := range m {
		errs = append(errs, r.RecordGame(g))
	}
	return errors.Join(errs...)
}

func (m Multi) Close() error {
	var errs []error
	for _, r := range m {
		errs = append(errs, r.Close())
	}
	return errors.Join(errs...)
}

// Combine returns a single recorder for rs: Nop for none, the recorder
// itself for one, Multi otherwise.
func Combine(rs ...Recorder) Recorder {
	switch len(rs) {
	case 0:
		return Nop{}
	case 1:
		return rs[0]
	default:
		return Multi(rs)
	}
}
