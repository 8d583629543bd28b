package executor

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"elevsim/src/elev"
	"elevsim/src/timer"
	"elevsim/src/types"
)

// Run is the owning loop. Movement ticks, generated requests and submitted
// commands are handled one at a time, so car state has a single writer.
// It returns when ctx is cancelled; work already started runs to completion.
func (s *Scheduler) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	moveTicker := time.NewTicker(s.tickInterval)
	defer moveTicker.Stop()

	go timer.Periodic(ctx, s.requestDelay, s.requestInterval, s.requestTimeout, s.requestAction)
	if s.randomEnabled {
		s.requestAction <- timer.Start
	}

	slog.Info("Simulation started",
		"elevators", len(s.elevators),
		"strategy", s.strategy.Name(),
		"tickInterval", s.tickInterval,
		"requestInterval", s.requestInterval)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Stopping simulation", "stats", s.stats)
			return

		case <-moveTicker.C:
			s.runIteration("tick", func() error {
				s.Tick()
				return nil
			})

		case <-s.requestTimeout:
			s.onRequestTimeout()

		case cmd := <-s.cmds:
			s.runIteration("command", func() error {
				cmd()
				return nil
			})
		}
	}
}

// runIteration is the failure boundary of the loop: errors and panics are
// logged and counted, and the loop carries on.
func (s *Scheduler) runIteration(name string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s panicked: %v", name, r)
			slog.Error("Iteration failed", "iteration", name, "panic", r, "stack", string(debug.Stack()))
			s.stats.Failures++
		}
	}()
	if err = fn(); err != nil {
		slog.Error("Iteration failed", "iteration", name, "error", err)
		s.stats.Failures++
	}
	return err
}

// onRequestTimeout handles one expiry of the request timer. A timeout still
// queued when random requests were paused is dropped.
func (s *Scheduler) onRequestTimeout() {
	if !s.randomEnabled {
		slog.Debug("Random requests paused, timeout dropped")
		return
	}
	s.runIteration("random request", func() error {
		_, err := s.ProcessRandomRequest()
		return err
	})
}

// setRandomRequests runs inside the loop.
func (s *Scheduler) setRandomRequests(enabled bool) {
	if s.source == nil || s.randomEnabled == enabled {
		return
	}
	s.randomEnabled = enabled
	if enabled {
		s.requestAction <- timer.Start
	} else {
		s.requestAction <- timer.Stop
		select {
		case <-s.requestTimeout:
		default:
		}
	}
	slog.Info("Random requests", "enabled", enabled)
}

// submit queues cmd for the Run loop.
func (s *Scheduler) submit(ctx context.Context, cmd func()) error {
	select {
	case s.cmds <- cmd:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Submit hands req to the Run loop and waits for the assignment.
func (s *Scheduler) Submit(ctx context.Context, req types.Request) (types.Assignment, error) {
	type result struct {
		assignment types.Assignment
		err        error
	}
	reply := make(chan result, 1)

	err := s.submit(ctx, func() {
		var r result
		r.err = s.runIteration("manual request", func() error {
			var err error
			r.assignment, err = s.HandleRequest(req)
			return err
		})
		reply <- r
	})
	if err != nil {
		return types.Assignment{}, err
	}

	select {
	case r := <-reply:
		return r.assignment, r.err
	case <-ctx.Done():
		return types.Assignment{}, ctx.Err()
	}
}

// SetRandomRequests pauses or resumes the request driver.
func (s *Scheduler) SetRandomRequests(ctx context.Context, enabled bool) error {
	done := make(chan struct{})
	err := s.submit(ctx, func() {
		defer close(done)
		s.setRandomRequests(enabled)
	})
	if err != nil {
		return err
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Query returns car snapshots and stats taken inside the Run loop.
func (s *Scheduler) Query(ctx context.Context) ([]elev.ElevState, Stats, error) {
	type result struct {
		snaps []elev.ElevState
		stats Stats
	}
	reply := make(chan result, 1)
	if err := s.submit(ctx, func() {
		reply <- result{snaps: s.Snapshot(), stats: s.stats}
	}); err != nil {
		return nil, Stats{}, err
	}
	select {
	case r := <-reply:
		return r.snaps, r.stats, nil
	case <-ctx.Done():
		return nil, Stats{}, ctx.Err()
	}
}
