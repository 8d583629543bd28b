// Contains the movement state machine for a single car.
package elev

import (
	"log/slog"

	"elevsim/src/types"
)

// AddStop queues floor. An idle car turns towards the new stop.
func (e *ElevState) AddStop(floor int) {
	e.Stops.Add(floor)
	if e.Dir == types.MD_Idle {
		e.Dir = types.DirectionBetween(e.Floor, floor)
	}
}

// Step advances the car by one simulation unit. At most one of these happens:
//   - an empty car goes idle
//   - the car reverses because nothing is left ahead
//   - the stop on the current floor is served
//   - the car moves one floor towards its next stop
func (e *ElevState) Step() {
	if len(e.Stops) == 0 {
		e.Dir = types.MD_Idle
		return
	}

	// Stops were queued on the floor the idle car stands on. The car turns
	// Up and finds them on the following steps.
	if e.Dir == types.MD_Idle {
		e.Dir = types.MD_Up
		return
	}

	nextStop, ok := e.nextStop()
	if !ok {
		e.Dir = e.Dir.Reverse()
		slog.Debug("Reversing, no stops ahead", "car", e.ID, "floor", e.Floor, "direction", e.Dir)
		return
	}

	if nextStop == e.Floor {
		e.serve()
		return
	}

	e.Dir = types.DirectionBetween(e.Floor, nextStop)
	e.Floor += int(e.Dir)
}

// nextStop is the closest stop in the current direction, current floor included.
func (e *ElevState) nextStop() (int, bool) {
	switch e.Dir {
	case types.MD_Up:
		return e.Stops.CeilingFrom(e.Floor)
	case types.MD_Down:
		return e.Stops.FloorFrom(e.Floor)
	}
	return 0, false
}

func (e *ElevState) serve() {
	e.Stops.Remove(e.Floor)
	slog.Debug("Stop served", "car", e.ID, "floor", e.Floor)
	if len(e.Stops) == 0 {
		e.Dir = types.MD_Idle
	}
}
