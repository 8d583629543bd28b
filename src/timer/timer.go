package timer

import (
	"context"
	"log/slog"
	"time"
)

type TimerAction int

const (
	Start TimerAction = iota
	Stop
)

// Periodic sends on timeout every interval while started. The first Start
// waits firstDelay instead of interval. The timer begins stopped.
// timeout should be buffered; sends never block.
func Periodic(ctx context.Context, firstDelay, interval time.Duration, timeout chan<- bool, action <-chan TimerAction) {
	t := time.NewTimer(firstDelay)
	t.Stop()
	defer t.Stop()
	started := false

	for {
		select {
		case <-ctx.Done():
			return
		case a := <-action:
			switch a {
			case Start:
				if started {
					resetTimer(t, interval)
				} else {
					resetTimer(t, firstDelay)
					started = true
				}
			case Stop:
				t.Stop()
			}
		case <-t.C:
			// A timeout nobody has picked up yet absorbs this one.
			select {
			case timeout <- true:
				slog.Debug("Timer timed out")
			default:
				slog.Debug("Timer timed out, previous timeout still pending")
			}
			t.Reset(interval)
		}
	}
}

// Stops the timer and resets it.
func resetTimer(t *time.Timer, d time.Duration) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
	t.Reset(d)
}
