package executor

import (
	"context"
	"errors"
	"testing"
	"time"

	"elevsim/src/timer"
	"elevsim/src/types"
)

// fastScheduler shrinks the loop timing so tests run in milliseconds.
func fastScheduler(t *testing.T, elevators int, source RequestSource) (*Scheduler, *recordingSink) {
	t.Helper()
	s, sink := newTestScheduler(t, elevators, source)
	s.tickInterval = time.Millisecond
	s.requestDelay = time.Millisecond
	s.requestInterval = 2 * time.Millisecond
	return s, sink
}

func startRun(t *testing.T, s *Scheduler) (context.Context, func()) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Run(ctx)
	}()
	return ctx, func() {
		cancel()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Error("Run did not return after cancel")
		}
	}
}

// waitFor polls Query until cond holds or a second passes.
func waitFor(t *testing.T, ctx context.Context, s *Scheduler, cond func(Stats) bool) Stats {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for {
		_, stats, err := s.Query(ctx)
		if err != nil {
			t.Fatalf("Query: %v", err)
		}
		if cond(stats) {
			return stats
		}
		if time.Now().After(deadline) {
			t.Fatalf("condition not met, stats %+v", stats)
		}
		time.Sleep(time.Millisecond)
	}
}

type panickingSource struct{}

func (panickingSource) Next() (types.Request, error) { panic("generator broke") }

func TestRun_TicksAndSubmit(t *testing.T) {
	s, sink := fastScheduler(t, 2, nil)
	ctx, stop := startRun(t, s)
	defer stop()

	a, err := s.Submit(ctx, types.NewTripRequest(0, types.MD_Up, 3))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if a.CarID != 1 {
		t.Errorf("assigned car %d, want 1", a.CarID)
	}

	stats := waitFor(t, ctx, s, func(st Stats) bool { return st.StopsServed >= 2 })
	if stats.Requests != 1 || stats.Failures != 0 {
		t.Errorf("stats = %+v", stats)
	}
	if sink.count("request on floor 0 to floor 3") != 1 {
		t.Errorf("request line missing from %q", sink.Lines())
	}

	snaps, _, err := s.Query(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if snaps[0].Floor != 3 {
		t.Errorf("car 1 at floor %d, want 3", snaps[0].Floor)
	}
}

func TestRun_RandomRequests(t *testing.T) {
	source := &scriptedSource{requests: []types.Request{
		types.NewTripRequest(2, types.MD_Up, 4),
		types.NewTripRequest(5, types.MD_Down, 1),
	}}
	s, _ := fastScheduler(t, 2, source)
	s.tickInterval = time.Hour
	ctx, stop := startRun(t, s)
	defer stop()

	// The scripted source runs dry after two requests and then fails.
	stats := waitFor(t, ctx, s, func(st Stats) bool { return st.Requests == 2 && st.Failures > 0 })
	if stats.Ticks != 0 {
		t.Errorf("ticks = %d, want 0", stats.Ticks)
	}
}

func TestRun_RecoversFromPanics(t *testing.T) {
	s, _ := fastScheduler(t, 1, panickingSource{})
	ctx, stop := startRun(t, s)
	defer stop()

	waitFor(t, ctx, s, func(st Stats) bool { return st.Failures >= 2 && st.Ticks >= 2 })

	if _, err := s.Submit(ctx, types.NewRequest(1, types.MD_Up)); err != nil {
		t.Errorf("Submit after panic: %v", err)
	}
}

func TestSetRandomRequests_Pauses(t *testing.T) {
	s, _ := fastScheduler(t, 1, panickingSource{})
	s.tickInterval = time.Hour
	ctx, stop := startRun(t, s)
	defer stop()

	waitFor(t, ctx, s, func(st Stats) bool { return st.Failures >= 1 })
	if err := s.SetRandomRequests(ctx, false); err != nil {
		t.Fatal(err)
	}
	_, paused, _ := s.Query(ctx)
	time.Sleep(30 * time.Millisecond)
	_, later, _ := s.Query(ctx)
	if later.Failures != paused.Failures {
		t.Errorf("requests kept coming while paused: %d -> %d", paused.Failures, later.Failures)
	}

	if err := s.SetRandomRequests(ctx, true); err != nil {
		t.Fatal(err)
	}
	waitFor(t, ctx, s, func(st Stats) bool { return st.Failures > later.Failures+1 })
}

func TestSetRandomRequests_DropsPendingTimeout(t *testing.T) {
	source := &scriptedSource{requests: []types.Request{
		types.NewRequest(3, types.MD_Up),
		types.NewRequest(4, types.MD_Up),
	}}
	s, _ := newTestScheduler(t, 1, source)

	// The timer fired but the loop has not picked the timeout up yet.
	s.requestTimeout <- true
	s.setRandomRequests(false)
	if len(s.requestTimeout) != 0 {
		t.Fatal("pending timeout kept across the pause")
	}
	if a := <-s.requestAction; a != timer.Stop {
		t.Fatalf("timer action = %v, want Stop", a)
	}

	// A timeout that lands after the pause is ignored.
	s.onRequestTimeout()
	if got := s.Stats(); got.Requests != 0 || got.Failures != 0 {
		t.Fatalf("stats = %+v, want no request while paused", got)
	}

	s.setRandomRequests(true)
	if a := <-s.requestAction; a != timer.Start {
		t.Fatalf("timer action = %v, want Start", a)
	}
	s.onRequestTimeout()
	if got := s.Stats().Requests; got != 1 {
		t.Errorf("requests = %d after resuming, want 1", got)
	}
}

func TestRun_RecoversFromPanickingCommand(t *testing.T) {
	s, _ := fastScheduler(t, 1, nil)
	s.tickInterval = time.Hour
	ctx, stop := startRun(t, s)
	defer stop()

	if err := s.submit(ctx, func() { panic("bad command") }); err != nil {
		t.Fatal(err)
	}
	waitFor(t, ctx, s, func(st Stats) bool { return st.Failures == 1 })

	if _, err := s.Submit(ctx, types.NewRequest(2, types.MD_Up)); err != nil {
		t.Errorf("Submit after panicking command: %v", err)
	}
}

func TestSetRandomRequests_WithoutSource(t *testing.T) {
	s, _ := fastScheduler(t, 1, nil)
	ctx, stop := startRun(t, s)
	defer stop()

	if err := s.SetRandomRequests(ctx, true); err != nil {
		t.Errorf("SetRandomRequests: %v", err)
	}
	if s.randomEnabled {
		t.Error("random requests enabled without a source")
	}
}

func TestSubmit_CancelledContext(t *testing.T) {
	s, _ := newTestScheduler(t, 1, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.Submit(ctx, types.NewRequest(1, types.MD_Up)); !errors.Is(err, context.Canceled) {
		t.Errorf("Submit error = %v, want context.Canceled", err)
	}
	if _, _, err := s.Query(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Query error = %v, want context.Canceled", err)
	}
}

func TestRunIteration_CountsErrors(t *testing.T) {
	s, _ := newTestScheduler(t, 1, nil)
	boom := errors.New("boom")

	if err := s.runIteration("test", func() error { return boom }); !errors.Is(err, boom) {
		t.Errorf("error = %v", err)
	}
	if err := s.runIteration("test", func() error { panic("oops") }); err == nil {
		t.Error("panic not turned into an error")
	}
	if err := s.runIteration("test", func() error { return nil }); err != nil {
		t.Errorf("error = %v", err)
	}
	if s.Stats().Failures != 2 {
		t.Errorf("failures = %d, want 2", s.Stats().Failures)
	}
}
