// State types are defined in elev package to make method receivers possible in elev.go.
package elev

import (
	"time"

	"elevsim/src/config"
	"elevsim/src/types"
)

// ElevState represents the state of one car.
type ElevState struct {
	ID       int
	Floor    int
	Dir      types.MotorDirection
	MoveTime time.Duration // per floor
	StopTime time.Duration // per stop, only used by cost estimates
	Stops    StopSet
}

// InitElevState creates an idle car at floor with the configured timing.
func InitElevState(id, floor int, cfg config.Config) *ElevState {
	return &ElevState{
		ID:       id,
		Floor:    floor,
		Dir:      types.MD_Idle,
		MoveTime: cfg.MoveTime(),
		StopTime: cfg.StopTime(),
	}
}

// IsIdle is true when the car has no direction and nothing to do.
func (e *ElevState) IsIdle() bool {
	return e.Dir == types.MD_Idle && len(e.Stops) == 0
}
