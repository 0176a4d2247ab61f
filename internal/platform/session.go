// Package platform runs a snake session: the loop goroutine that ticks the
// engine, records telemetry and hands frames to a backend, plus the control
// entry point backends call with decoded key actions.
package platform

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/term-snake/internal/core"
	"github.com/vovakirdan/term-snake/internal/games/snake"
	"github.com/vovakirdan/term-snake/internal/telemetry"
)

// Presenter receives a snapshot after every loop iteration. It is called from
// the loop goroutine and must not block for long.
type Presenter interface {
	Present(snap snake.Snapshot)
}

// Builder creates a session once a backend knows its board size.
type Builder func(board core.Board) (*Session, error)

// Session couples an engine with its controller, recorder and loop goroutine.
type Session struct {
	engine   *snake.Engine
	ctrl     *snake.Controller
	recorder telemetry.Recorder
	logger   *log.Logger
	tick     time.Duration

	quit      chan struct{}
	done      chan struct{}
	startOnce sync.Once
	stopOnce  sync.Once
	stopErr   error

	// owned by the loop goroutine
	gameTicks uint64
	recErr    error
}

// NewSession creates a session. A nil recorder disables telemetry and a nil
// logger discards log output.
func NewSession(e *snake.Engine, rec telemetry.Recorder, logger *log.Logger, tick time.Duration) *Session {
	if rec == nil {
		rec = telemetry.Nop{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if tick <= 0 {
		tick = core.DefaultTick
	}
	return &Session{
		engine:   e,
		ctrl:     snake.NewController(e),
		recorder: rec,
		logger:   logger,
		tick:     tick,
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Engine returns the session's engine.
func (s *Session) Engine() *snake.Engine {
	return s.engine
}

// Done is closed when the loop goroutine has exited.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Start launches the loop goroutine. Later calls do nothing.
func (s *Session) Start(ctx context.Context, p Presenter) {
	s.startOnce.Do(func() {
		s.logger.Info("session started",
			"columns", s.engine.Board().Columns, "rows", s.engine.Board().Rows, "tick", s.tick)
		go s.loop(ctx, p)
	})
}

// HandleAction applies one decoded key action on the caller's goroutine.
// It reports whether the action asks to quit; the caller then calls Stop.
func (s *Session) HandleAction(a core.Action) (quit bool) {
	if a == core.ActionNone {
		return false
	}
	quit = s.ctrl.Handle(a)
	s.logger.Debug("action", "action", a, "state", s.engine.Lifecycle())
	return quit
}

// Stop switches the engine Off, waits for the loop goroutine to exit and
// closes the recorder. It is safe to call more than once and before Start.
// The returned error joins any telemetry failure seen during the run.
func (s *Session) Stop() error {
	s.stopOnce.Do(func() {
		s.engine.SetLifecycle(snake.Off)
		close(s.quit)
		started := true
		s.startOnce.Do(func() {
			started = false
			close(s.done)
		})
		if started {
			<-s.done
		}
		closeErr := s.recorder.Close()
		s.stopErr = errors.Join(s.recErr, closeErr)
		s.logger.Info("session stopped", "games", s.engine.Snapshot().Games)
	})
	return s.stopErr
}

// loop is the engine/render goroutine: draw, tick, sleep until Off.
func (s *Session) loop(ctx context.Context, p Presenter) {
	defer close(s.done)

	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	board := s.engine.Board()
	for {
		snap := s.engine.Snapshot()
		if snap.Lifecycle == snake.Off {
			return
		}
		p.Present(snap)

		select {
		case <-ctx.Done():
			s.engine.SetLifecycle(snake.Off)
			return
		case <-s.quit:
			return
		case <-ticker.C:
		}

		res := s.engine.Tick()
		s.record(res, board)
	}
}

// record writes telemetry for an advancing tick and logs finished games.
func (s *Session) record(res snake.TickResult, board core.Board) {
	if !res.Advanced {
		return
	}
	s.gameTicks++

	if err := s.recorder.RecordTick(telemetry.Extract(res, board)); err != nil {
		s.recordFailed(err)
	}

	if !res.Died {
		return
	}
	s.logger.Info("game over",
		"score", res.Score, "length", res.Length, "cause", res.Cause, "ticks", s.gameTicks)
	if err := s.recorder.RecordGame(telemetry.GameResult{
		Score:  res.Score,
		Length: res.Length,
		Ticks:  s.gameTicks,
		Cause:  string(res.Cause),
	}); err != nil {
		s.recordFailed(err)
	}
	s.gameTicks = 0
}

// recordFailed logs the first telemetry error and stops recording; the game
// keeps running.
func (s *Session) recordFailed(err error) {
	s.logger.Error("telemetry disabled", "err", err)
	s.recErr = errors.Join(s.recErr, err)
	closeErr := s.recorder.Close()
	s.recErr = errors.Join(s.recErr, closeErr)
	s.recorder = telemetry.Nop{}
}
