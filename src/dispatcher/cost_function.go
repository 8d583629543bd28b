package dispatcher

import (
	"time"

	"elevsim/src/elev"
	"elevsim/src/types"
	"elevsim/src/utils"
)

// timeToServeRequest estimates how long the car needs to finish the request.
//   - first phase: reach the pickup floor, finishing the current leg first if
//     the pickup is behind the car
//   - second phase, only with a destination: dwell at pickup, then ride to the
//     destination stopping at every pending stop in between
//
// The car is only read.
func timeToServeRequest(elevator *elev.ElevState, req types.Request) time.Duration {
	pickup := req.WaitingFloor
	dest, hasDest := req.DestinationFloor()

	if pickup == elevator.Floor && !hasDest {
		return 0
	}

	duration := timeToPickup(elevator, pickup)
	if !hasDest {
		return duration
	}

	duration += elevator.StopTime
	duration += floors(pickup, dest) * elevator.MoveTime
	duration += time.Duration(elevator.Stops.CountBetween(pickup, dest)) * elevator.StopTime
	return duration
}

func timeToPickup(elevator *elev.ElevState, pickup int) time.Duration {
	current := elevator.Floor
	direct := floors(current, pickup) * elevator.MoveTime

	if elevator.IsIdle() {
		return direct
	}

	switch elevator.Dir {
	case types.MD_Up:
		upward := elevator.Stops.AtOrAbove(current)
		if pickup >= current {
			before := elevator.Stops.CountBetween(current-1, pickup+1)
			return direct + time.Duration(before)*elevator.StopTime
		}
		highest := current
		if len(upward) > 0 {
			highest = upward[len(upward)-1]
		}
		return floors(current, highest)*elevator.MoveTime +
			time.Duration(len(upward))*elevator.StopTime +
			floors(highest, pickup)*elevator.MoveTime

	case types.MD_Down:
		downward := elevator.Stops.AtOrBelow(current)
		if pickup <= current {
			before := elevator.Stops.CountBetween(pickup-1, current+1)
			return direct + time.Duration(before)*elevator.StopTime
		}
		lowest := current
		if len(downward) > 0 {
			lowest = downward[0]
		}
		return floors(current, lowest)*elevator.MoveTime +
			time.Duration(len(downward))*elevator.StopTime +
			floors(lowest, pickup)*elevator.MoveTime
	}

	// Stops queued but no direction yet.
	return direct
}

func floors(a, b int) time.Duration {
	return time.Duration(utils.Abs(a - b))
}
