// sim/simulator.go
package sim

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// Simulator is the core object that holds simulation time, system state,
// and the stepping loop for one boarding run.
//
// One tick performs, in this fixed order: entry admission, aisle
// advancement from front to back, stow completion, time-series emission,
// clock advance. The order matters both for determinism and so that a
// slot vacated this tick cannot be claimed twice.
//
// Thread-safety: NOT thread-safe. All methods must be called from the
// same goroutine. Independent runs share no state and may execute in
// parallel (see the compare package).
type Simulator struct {
	Layout Layout
	Params PassengerParams
	Config EngineConfig

	Clock float64
	// Queue holds passengers still at the gate, boarding-order index ascending.
	Queue *BoardingQueue
	// Aisle is the only shared mutable resource within a run; it is
	// mutated exclusively by the tick loop.
	Aisle *Aisle
	// Passengers is indexed by boarding-order ID.
	Passengers  []*Passenger
	SeatedCount int
	Metrics     *Metrics

	seated [][]bool
	rng    *PartitionedRNG
}

// NewSimulator validates the full configuration eagerly and builds a run.
// order must be a permutation of layout.AllSeats(); every passenger's
// walking speed and stow time are sampled here, from the passengers RNG
// subsystem, so that the tick loop itself performs no randomness.
func NewSimulator(layout Layout, order []Seat, params PassengerParams, cfg EngineConfig, key SimulationKey) (*Simulator, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if layout.SeatCount() == 0 {
		return nil, fmt.Errorf("%w: layout has zero seats", ErrConfiguration)
	}
	if err := validateOrder(layout, order); err != nil {
		return nil, err
	}

	s := &Simulator{
		Layout:  layout,
		Params:  params,
		Config:  cfg,
		Queue:   &BoardingQueue{},
		Aisle:   NewAisle(layout.Rows()),
		Metrics: NewMetrics(),
		rng:     NewPartitionedRNG(key),
	}

	s.seated = make([][]bool, layout.Rows())
	for row := range s.seated {
		s.seated[row] = make([]bool, layout.SeatsPerRow())
	}

	attrRNG := s.rng.ForSubsystem(SubsystemPassengers)
	s.Passengers = make([]*Passenger, len(order))
	for i, seat := range order {
		p := NewPassenger(i, seat, params, attrRNG)
		s.Passengers[i] = p
		s.Queue.Enqueue(p)
	}

	return s, nil
}

// validateOrder checks that order is a permutation of all seats: correct
// length, every seat in range, no seat assigned twice.
func validateOrder(layout Layout, order []Seat) error {
	if len(order) != layout.SeatCount() {
		return fmt.Errorf("%w: boarding order has %d seats, layout has %d", ErrConfiguration, len(order), layout.SeatCount())
	}
	assigned := make(map[Seat]bool, len(order))
	for _, seat := range order {
		if seat.Row < 0 || seat.Row >= layout.Rows() || seat.Col < 0 || seat.Col >= layout.SeatsPerRow() {
			return fmt.Errorf("%w: seat %s out of layout range", ErrConfiguration, seat)
		}
		if assigned[seat] {
			return fmt.Errorf("%w: seat %s assigned twice in boarding order", ErrConfiguration, seat)
		}
		assigned[seat] = true
	}
	return nil
}

// RunSimulation is the one-call form of the core contract: build a run
// from a layout, a boarding order, and passenger parameters, then step it
// to completion or timeout. The returned Result carries the full time
// series and whether boarding finished within timeLimit.
func RunSimulation(layout Layout, order []Seat, params PassengerParams, timeLimit, step float64, key SimulationKey) (Result, error) {
	cfg := DefaultEngineConfig()
	cfg.TimeLimit = timeLimit
	cfg.Step = step
	s, err := NewSimulator(layout, order, params, cfg, key)
	if err != nil {
		return Result{}, err
	}
	return s.Run(), nil
}

// Run steps the simulation until every passenger is seated or the time
// limit is reached. Hitting the limit is not an error: the partial time
// series is still returned with Completed=false.
func (s *Simulator) Run() Result {
	total := len(s.Passengers)
	for s.SeatedCount < total && s.Clock < s.Config.TimeLimit {
		s.Tick()
	}

	completed := s.SeatedCount == total
	if completed {
		logrus.Debugf("boarding complete at %.1f: %d passengers seated", s.Metrics.Duration, s.SeatedCount)
	} else {
		s.Metrics.Duration = s.Config.TimeLimit
		logrus.Warnf("boarding incomplete at time limit %.1f: %d/%d seated", s.Config.TimeLimit, s.SeatedCount, total)
	}
	s.Metrics.SeatedCount = s.SeatedCount

	return Result{
		Series:    s.Metrics.Series,
		Completed: completed,
		Duration:  s.Metrics.Duration,
	}
}

// Tick advances the run by one step. Exported so that observers can step
// a run manually and inspect committed state between ticks via Snapshot.
func (s *Simulator) Tick() {
	s.admit()
	if s.Config.Movement == MovementContinuous {
		s.advanceContinuous()
	} else {
		s.advanceSlots()
	}
	s.completeStows()
	s.Metrics.record(s.Clock, len(s.Passengers)-s.SeatedCount, s.Aisle.Occupancy())
	s.Clock += s.Config.Step
}

// admit moves the head of the boarding queue into the entry slot when it
// is free. At most one passenger enters per tick; the entry slot is the
// serialization point of the whole cabin.
func (s *Simulator) admit() {
	p := s.Queue.Peek()
	if p == nil || s.Aisle.Occupied(0) {
		return
	}
	s.Queue.Dequeue()
	s.Aisle.Enter(p.ID)
	p.Phase = PhaseInAisle
	p.Position = 0
	p.TimeToAct = 1.0 / p.WalkSpeed
	p.EnteredAt = s.Clock
	logrus.Debugf("[%.1f] %s entered the aisle", s.Clock, p)
}

// advanceSlots processes in-aisle passengers from front to back — highest
// position first — so that a slot freed by a move this tick is never read
// by a not-yet-processed passenger behind it. A passenger whose walk
// timer has elapsed either starts stowing at its row, claims the slot
// ahead, or waits blocked without resetting the timer.
func (s *Simulator) advanceSlots() {
	for pos := s.Aisle.Len() - 1; pos >= 0; pos-- {
		id := s.Aisle.Occupant(pos)
		if id == NoOccupant {
			continue
		}
		p := s.Passengers[id]
		if p.Phase != PhaseInAisle {
			continue
		}
		if p.TimeToAct > 0 {
			p.TimeToAct -= s.Config.Step
			continue
		}
		switch {
		case p.Position == p.targetPosition():
			s.startStow(p)
		case s.Aisle.CanAdvance(pos):
			s.Aisle.Advance(pos)
			p.Position++
			p.TimeToAct = 1.0 / p.WalkSpeed
		default:
			// Aisle block: wait for the slot to free, timer stays elapsed.
			s.Metrics.BlockedActions++
		}
	}
}

// advanceContinuous moves every in-aisle passenger by walkSpeed×step
// fractional rows, capped by the target row and by a one-row headway
// behind the passenger ahead (walking or stowing). Processing is front to
// back over current positions, so each passenger sees the already-updated
// position of the one ahead.
func (s *Simulator) advanceContinuous() {
	ahead := math.Inf(1)
	for pos := s.Aisle.Len() - 1; pos >= 0; pos-- {
		id := s.Aisle.Occupant(pos)
		if id == NoOccupant {
			continue
		}
		p := s.Passengers[id]
		if p.Phase != PhaseInAisle {
			ahead = p.Position
			continue
		}

		limit := math.Min(p.targetPosition(), ahead-1.0)
		next := math.Min(p.Position+p.WalkSpeed*s.Config.Step, limit)
		if next > p.Position {
			if fromSlot, toSlot := p.slot(), int(next); toSlot != fromSlot {
				s.Aisle.Relocate(fromSlot, toSlot)
			}
			p.Position = next
		} else if p.Position < p.targetPosition() {
			s.Metrics.BlockedActions++
		}
		if p.Position == p.targetPosition() {
			s.startStow(p)
		}
		ahead = p.Position
	}
}

// startStow transitions a passenger at its row into the stowing phase.
// Total service time is the sampled stow duration plus the interference
// delay from neighbors already seated in the row. The passenger keeps
// holding its aisle slot while stowing: a standing passenger blocks the
// aisle while loading the overhead bin.
func (s *Simulator) startStow(p *Passenger) {
	delay := InterferenceDelay(s.Layout, p.Seat, s.isSeated, s.Params.InterferenceDelays)
	p.Phase = PhaseStowing
	p.RemainingStow = p.StowTime + delay
	p.StowStartAt = s.Clock
	s.Metrics.TotalInterference += delay
	s.Metrics.TotalServiceTime += p.StowTime + delay
	logrus.Debugf("[%.1f] %s stowing for %.1f (interference %.1f)", s.Clock, p, p.RemainingStow, delay)
}

// completeStows seats every stowing passenger whose remaining service
// time has elapsed: the seat is marked occupied, the aisle slot is
// vacated, and the phase becomes seated. Iteration is by boarding-order
// ID, which is deterministic.
func (s *Simulator) completeStows() {
	for _, p := range s.Passengers {
		if p.Phase != PhaseStowing {
			continue
		}
		if p.RemainingStow > 0 {
			p.RemainingStow -= s.Config.Step
			continue
		}
		s.seated[p.Seat.Row][p.Seat.Col] = true
		s.Aisle.Clear(p.slot())
		p.Phase = PhaseSeated
		p.SeatedAt = s.Clock
		s.SeatedCount++
		if s.SeatedCount == len(s.Passengers) {
			s.Metrics.Duration = s.Clock
		}
		logrus.Debugf("[%.1f] %s seated (%d/%d)", s.Clock, p, s.SeatedCount, len(s.Passengers))
	}
}

// isSeated reports whether the seat at (row, col) is occupied.
func (s *Simulator) isSeated(row, col int) bool {
	return s.seated[row][col]
}

// Remaining returns the number of passengers not yet seated.
func (s *Simulator) Remaining() int {
	return len(s.Passengers) - s.SeatedCount
}
