package generator

import (
	"context"
	"sync"

	"floorforge/pkg/game/level"
)

// Session runs a generator in the background. Reset is the only way to
// interrupt a run: it cancels the run, waits until the run has torn its state
// down and starts a fresh one, so no stale run can touch the new one.
type Session struct {
	gen    LevelGenerator
	parent context.Context

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
	level  *level.Level
	err    error
	runs   int
}

// NewSession creates a session for gen. Nothing runs until Start.
func NewSession(gen LevelGenerator) *Session {
	return &Session{gen: gen}
}

// Start begins the first run. Cancelling ctx stops the session for good.
func (s *Session) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done != nil {
		return
	}
	s.parent = ctx
	s.startLocked()
}

func (s *Session) startLocked() {
	ctx, cancel := context.WithCancel(s.parent)
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done
	s.level = nil
	s.err = nil
	s.runs++

	go func() {
		defer close(done)
		lvl, err := s.gen.Generate(ctx)

		s.mu.Lock()
		defer s.mu.Unlock()
		if s.done == done {
			s.level, s.err = lvl, err
		} else if lvl != nil {
			lvl.Destroy()
		}
	}()
}

// Reset cancels the current run, discards any level it produced and starts
// generation again from the first floor.
func (s *Session) Reset() {
	s.mu.Lock()
	if s.done == nil {
		s.mu.Unlock()
		return
	}
	cancel, done := s.cancel, s.done
	s.mu.Unlock()

	cancel()
	<-done

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done != done {
		// another Reset got here first
		return
	}
	if s.level != nil {
		s.level.Destroy()
	}
	s.startLocked()
}

// Wait blocks until the current run finishes and returns its result. A run
// replaced by Reset while waiting is followed to its successor.
func (s *Session) Wait(ctx context.Context) (*level.Level, error) {
	for {
		s.mu.Lock()
		done := s.done
		s.mu.Unlock()
		if done == nil {
			return nil, context.Canceled
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-done:
		}

		s.mu.Lock()
		if s.done == done {
			lvl, err := s.level, s.err
			s.mu.Unlock()
			return lvl, err
		}
		s.mu.Unlock()
	}
}

// Runs returns how many runs the session has started
func (s *Session) Runs() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runs
}

// Stop cancels the current run and waits for it to finish
func (s *Session) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.mu.Unlock()
	if done == nil {
		return
	}
	cancel()
	<-done
}
