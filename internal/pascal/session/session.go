// ============================================================================
// Pascal - Zeilenorientierter Rechner
// ============================================================================
//
// Package:     session
// Description: A calculator session: interpreter, environment and history
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package session

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/msto63/pascal/foundation/calc"
	mdwexecutor "github.com/msto63/pascal/foundation/calc/executor"
	mdwlog "github.com/msto63/pascal/foundation/core/log"
	"github.com/msto63/pascal/internal/pascal/store"
)

// Recorder persists evaluated lines. store.HistoryStore satisfies it.
type Recorder interface {
	Record(ctx context.Context, entry *store.Entry) error
}

// Options configures a session
type Options struct {
	// ID of the session, a random UUID if empty
	ID string

	Logger *mdwlog.Logger

	// Precision is the number of significant digits shown, 0 for shortest
	Precision int

	// Presets is an optional TOML or YAML file with initial variables
	Presets string

	// Recorder receives every evaluated line, may be nil
	Recorder Recorder
}

// Session is one interactive calculator session. It is safe for
// concurrent use; lines are evaluated one at a time.
type Session struct {
	id          string
	interpreter *calc.Interpreter
	recorder    Recorder
	logger      *mdwlog.Logger

	mu     sync.Mutex
	lines  int
	closed bool
}

// New creates a session with a fresh environment
func New(opts Options) (*Session, error) {
	if opts.ID == "" {
		opts.ID = uuid.New().String()
	}
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	logger := opts.Logger.WithSessionID(opts.ID).WithField("component", "session")

	env := mdwexecutor.NewEnvironment()
	if opts.Presets != "" {
		n, err := LoadPresets(env, opts.Presets)
		if err != nil {
			return nil, err
		}
		logger.Debug("Presets loaded", mdwlog.Fields{"path": opts.Presets, "count": n})
	}

	return &Session{
		id: opts.ID,
		interpreter: calc.New(calc.Options{
			Logger:      opts.Logger.WithSessionID(opts.ID),
			Environment: env,
			Precision:   opts.Precision,
		}),
		recorder: opts.Recorder,
		logger:   logger,
	}, nil
}

// ID returns the session identifier
func (s *Session) ID() string {
	return s.id
}

// Environment returns the variable store of the session
func (s *Session) Environment() *mdwexecutor.Environment {
	return s.interpreter.Environment()
}

// Closed reports whether a quit statement ended the session
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Lines returns the number of lines evaluated so far
func (s *Session) Lines() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lines
}

// Eval executes one input line
func (s *Session) Eval(ctx context.Context, line string) *calc.Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return &calc.Result{Continue: false}
	}

	timer := s.logger.StartTimer("eval").WithField("line_no", s.lines+1)
	result := s.interpreter.Execute(line)
	s.lines++
	if !result.Continue {
		s.closed = true
	}

	if result.Err != nil {
		s.logger.LogError(result.Err)
	}
	timer.StopWithResult(!result.HasErrors(), nil)

	if s.recorder != nil {
		entry := &store.Entry{
			SessionID: s.id,
			Line:      line,
			Output:    result.Texts(),
			Success:   !result.HasErrors(),
		}
		if err := s.recorder.Record(ctx, entry); err != nil {
			s.logger.WarnWithErr("Failed to record history entry", err)
		}
	}

	return result
}
