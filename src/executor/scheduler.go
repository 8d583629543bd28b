package executor

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"elevsim/src/config"
	"elevsim/src/dispatcher"
	"elevsim/src/elev"
	"elevsim/src/logsink"
	"elevsim/src/timer"
	"elevsim/src/types"
)

var ErrNoRequestSource = errors.New("no request source configured")

// RequestSource produces requests for the request driver.
type RequestSource interface {
	Next() (types.Request, error)
}

type Stats struct {
	Ticks       int
	Requests    int
	StopsServed int
	Failures    int
}

// Scheduler owns every car. Tick, HandleRequest and the Process* methods
// mutate car state and must only be called from one goroutine at a time;
// once Run is started that goroutine is the Run loop and other goroutines
// go through Submit, SetRandomRequests and Query.
type Scheduler struct {
	elevators []*elev.ElevState
	strategy  dispatcher.Strategy
	sink      logsink.Sink
	source    RequestSource
	stats     Stats

	tickInterval    time.Duration
	requestInterval time.Duration
	requestDelay    time.Duration
	randomEnabled   bool

	cmds           chan func()
	requestAction  chan timer.TimerAction
	requestTimeout chan bool
}

// New creates cars 1..cfg.Building.Elevators and resolves the dispatch
// strategy. An unknown strategy name is a configuration error.
func New(cfg config.Config, sink logsink.Sink, source RequestSource) (*Scheduler, error) {
	strategy, err := dispatcher.New(cfg.DispatchStrategy)
	if err != nil {
		return nil, err
	}
	if cfg.Building.Elevators < 1 {
		return nil, fmt.Errorf("%w: need at least one elevator", config.ErrInvalidConfig)
	}

	elevators := make([]*elev.ElevState, 0, cfg.Building.Elevators)
	for id := 1; id <= cfg.Building.Elevators; id++ {
		elevators = append(elevators, elev.InitElevState(id, cfg.InitialFloor, cfg))
	}

	return &Scheduler{
		elevators:       elevators,
		strategy:        strategy,
		sink:            sink,
		source:          source,
		tickInterval:    cfg.MoveTime(),
		requestInterval: cfg.RequestInterval(),
		requestDelay:    config.InitialRequestDelay,
		randomEnabled:   source != nil,
		cmds:            make(chan func(), config.SubmitQueueSize),
		requestAction:   make(chan timer.TimerAction, 1),
		requestTimeout:  make(chan bool, 1),
	}, nil
}

func (s *Scheduler) Strategy() dispatcher.Strategy { return s.strategy }

// HandleRequest assigns req to the best car and queues its stops: pickup
// first, then the destination when there is one.
func (s *Scheduler) HandleRequest(req types.Request) (types.Assignment, error) {
	selected, eta, err := s.strategy.SelectElevator(s.elevators, req)
	if err != nil {
		return types.Assignment{}, fmt.Errorf("dispatch %s: %w", req, err)
	}

	selected.AddStop(req.WaitingFloor)
	dest, hasDest := req.DestinationFloor()
	if hasDest {
		selected.AddStop(dest)
	}
	s.stats.Requests++

	assignment := types.Assignment{
		ID:      uuid.New(),
		Request: req,
		CarID:   selected.ID,
		ETA:     eta,
	}

	if hasDest {
		s.sink.Log(fmt.Sprintf("'%s' request on floor %d to floor %d received, car %d assigned (ETA %s)",
			req.Direction, req.WaitingFloor, dest, selected.ID, eta))
	} else {
		s.sink.Log(fmt.Sprintf("'%s' request on floor %d received, car %d assigned (ETA %s)",
			req.Direction, req.WaitingFloor, selected.ID, eta))
	}
	slog.Debug("Request assigned", "id", assignment.ID, "request", req, "car", selected.ID, "eta", eta)
	return assignment, nil
}

// ProcessManualRequest is the entry point for requests typed in by a user.
func (s *Scheduler) ProcessManualRequest(waitingFloor int, dir types.MotorDirection, destinationFloor int) (types.Assignment, error) {
	return s.HandleRequest(types.NewTripRequest(waitingFloor, dir, destinationFloor))
}

// ProcessRandomRequest pulls one request from the request source and handles it.
func (s *Scheduler) ProcessRandomRequest() (types.Assignment, error) {
	if s.source == nil {
		return types.Assignment{}, ErrNoRequestSource
	}
	req, err := s.source.Next()
	if err != nil {
		return types.Assignment{}, fmt.Errorf("generate request: %w", err)
	}
	return s.HandleRequest(req)
}

// Tick steps every car once, in id order, and logs one status line per car.
func (s *Scheduler) Tick() {
	slog.Debug("Current elevator car status", "tick", s.stats.Ticks+1)
	for _, elevator := range s.elevators {
		pending := elevator.Stops.Len()
		elevator.Step()
		if elevator.Stops.Len() < pending {
			s.stats.StopsServed++
		}
		s.sink.Log(elevator.FormatStatus())
	}
	s.stats.Ticks++
}

// Snapshot deep-copies every car, in id order.
func (s *Scheduler) Snapshot() []elev.ElevState {
	snaps := make([]elev.ElevState, len(s.elevators))
	for i, elevator := range s.elevators {
		snaps[i] = elevator.Snapshot()
	}
	return snaps
}

func (s *Scheduler) Stats() Stats { return s.stats }
