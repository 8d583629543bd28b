// Package generator produces random hall calls for the simulation.
package generator

import (
	"errors"
	"math/rand/v2"

	"elevsim/src/types"
)

var ErrNoFloors = errors.New("building has no floors")

// Generator draws pickups from floors 1..Floors. The bottom floor always
// calls up and the top floor always calls down.
type Generator struct {
	floors int
	rng    *rand.Rand
}

func New(floors int, seed uint64) *Generator {
	return &Generator{
		floors: floors,
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Next returns a request with a destination in the requested direction.
// A single-floor building yields requests without a destination.
func (g *Generator) Next() (types.Request, error) {
	if g.floors < 1 {
		return types.Request{}, ErrNoFloors
	}

	waitingFloor := g.rng.IntN(g.floors) + 1
	if g.floors == 1 {
		return types.NewRequest(waitingFloor, types.MD_Idle), nil
	}

	var dir types.MotorDirection
	switch {
	case waitingFloor == 1:
		dir = types.MD_Up
	case waitingFloor == g.floors:
		dir = types.MD_Down
	case g.rng.IntN(2) == 0:
		dir = types.MD_Up
	default:
		dir = types.MD_Down
	}

	var dest int
	if dir == types.MD_Up {
		dest = waitingFloor + 1 + g.rng.IntN(g.floors-waitingFloor)
	} else {
		dest = 1 + g.rng.IntN(waitingFloor-1)
	}
	return types.NewTripRequest(waitingFloor, dir, dest), nil
}
