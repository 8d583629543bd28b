package types

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type MotorDirection int

const (
	MD_Up   MotorDirection = 1
	MD_Down MotorDirection = -1
	MD_Idle MotorDirection = 0
)

func (d MotorDirection) String() string {
	switch d {
	case MD_Up:
		return "Up"
	case MD_Down:
		return "Down"
	case MD_Idle:
		return "Idle"
	}
	return fmt.Sprintf("MotorDirection(%d)", int(d))
}

// Reverse flips Up and Down. Idle stays Idle.
func (d MotorDirection) Reverse() MotorDirection {
	return -d
}

// ParseDirection accepts "up", "down" and "idle" in any case, plus the
// single letter forms used on the console.
func ParseDirection(s string) (MotorDirection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "u":
		return MD_Up, nil
	case "down", "d":
		return MD_Down, nil
	case "idle", "i", "":
		return MD_Idle, nil
	}
	return MD_Idle, fmt.Errorf("unknown direction %q", s)
}

// DirectionBetween returns the direction of travel from one floor to another.
func DirectionBetween(from, to int) MotorDirection {
	switch {
	case to > from:
		return MD_Up
	case to < from:
		return MD_Down
	default:
		return MD_Idle
	}
}

// Request is a single hall call. Destination is nil when the caller did not
// say where they are going; floor 0 is a real destination.
type Request struct {
	WaitingFloor int
	Direction    MotorDirection
	Destination  *int
}

func NewRequest(waitingFloor int, dir MotorDirection) Request {
	return Request{WaitingFloor: waitingFloor, Direction: dir}
}

func NewTripRequest(waitingFloor int, dir MotorDirection, destinationFloor int) Request {
	dest := destinationFloor
	return Request{WaitingFloor: waitingFloor, Direction: dir, Destination: &dest}
}

// DestinationFloor reports the destination and whether one was given.
func (r Request) DestinationFloor() (int, bool) {
	if r.Destination == nil {
		return 0, false
	}
	return *r.Destination, true
}

func (r Request) String() string {
	if dest, ok := r.DestinationFloor(); ok {
		return fmt.Sprintf("%s(%d->%d)", r.Direction, r.WaitingFloor, dest)
	}
	return fmt.Sprintf("%s(%d)", r.Direction, r.WaitingFloor)
}

// Assignment records which car took a request and at what estimated cost.
type Assignment struct {
	ID      uuid.UUID
	Request Request
	CarID   int
	ETA     time.Duration
}
