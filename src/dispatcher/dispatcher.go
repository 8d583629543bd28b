package dispatcher

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"elevsim/src/elev"
	"elevsim/src/types"
)

var (
	ErrUnknownStrategy = errors.New("unknown dispatch strategy")
	ErrNoCandidates    = errors.New("no elevators to dispatch to")
)

// Strategy ranks cars for a request.
type Strategy interface {
	Name() string
	Estimate(elevator *elev.ElevState, req types.Request) time.Duration
	SelectElevator(elevators []*elev.ElevState, req types.Request) (*elev.ElevState, time.Duration, error)
}

var strategies = map[string]func() Strategy{
	"ETA": func() Strategy { return ETA{} },
}

// New returns the strategy registered under name, ignoring case.
func New(name string) (Strategy, error) {
	factory, ok := strategies[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
	return factory(), nil
}

// ETA picks the car with the lowest estimated time to serve the request.
type ETA struct{}

func (ETA) Name() string { return "ETA" }

func (ETA) Estimate(elevator *elev.ElevState, req types.Request) time.Duration {
	return timeToServeRequest(elevator, req)
}

func (s ETA) SelectElevator(elevators []*elev.ElevState, req types.Request) (*elev.ElevState, time.Duration, error) {
	return findAssignee(elevators, req, s.Estimate)
}

// findAssignee returns the first car with the lowest cost. Ties keep the
// earlier car.
func findAssignee(
	elevators []*elev.ElevState,
	req types.Request,
	cost func(*elev.ElevState, types.Request) time.Duration,
) (*elev.ElevState, time.Duration, error) {
	if len(elevators) == 0 {
		return nil, 0, ErrNoCandidates
	}

	assignee := elevators[0]
	lowestCost := cost(assignee, req)
	slog.Debug("Estimated cost", "car", assignee.ID, "request", req, "cost", lowestCost)

	for _, elevator := range elevators[1:] {
		c := cost(elevator, req)
		slog.Debug("Estimated cost", "car", elevator.ID, "request", req, "cost", c)
		if c < lowestCost {
			lowestCost = c
			assignee = elevator
		}
	}

	slog.Debug("Assigning request to", "car", assignee.ID, "cost", lowestCost)
	return assignee, lowestCost, nil
}
