// Defines the Passenger struct that models an individual passenger in the
// simulation. Tracks the assigned seat, sampled attributes, lifecycle phase,
// and timestamps for entry, stow start, and seating.

package sim

import (
	"fmt"
	"math/rand"
)

// Phase represents the lifecycle phase of a passenger. Transitions are
// monotonic: queued → in-aisle → stowing → seated, never skipped, never
// reversed.
type Phase string

const (
	PhaseQueued  Phase = "queued"
	PhaseInAisle Phase = "in-aisle"
	PhaseStowing Phase = "stowing"
	PhaseSeated  Phase = "seated"
)

// Passenger models a single passenger's state over one boarding run.
// Attributes are sampled once at creation; the engine mutates only the
// phase, position, and remaining-time fields during ticks.
type Passenger struct {
	ID   int  // index in the boarding order; stable and unique
	Seat Seat // assigned seat, immutable

	WalkSpeed float64 // rows traversed per time unit, floored at params.WalkSpeedMin
	StowTime  float64 // base stow duration, floored at params.StowTimeMin

	Phase         Phase
	Position      float64 // aisle position in row slots; integral under MovementSlot
	TimeToAct     float64 // time until the next walking action (MovementSlot only)
	RemainingStow float64 // remaining service time while stowing

	// Lifecycle timestamps, -1 until the transition happens.
	EnteredAt   float64
	StowStartAt float64
	SeatedAt    float64
}

// NewPassenger creates a passenger for the given boarding-order index and
// seat, sampling walking speed and stow duration from the configured
// normal distributions. Both samples are floored at the configured minima
// so that no passenger can occupy an aisle slot forever.
func NewPassenger(id int, seat Seat, params PassengerParams, rng *rand.Rand) *Passenger {
	walk := rng.NormFloat64()*params.WalkSpeedStdDev + params.WalkSpeedMean
	if walk < params.WalkSpeedMin {
		walk = params.WalkSpeedMin
	}
	stow := rng.NormFloat64()*params.StowTimeStdDev + params.StowTimeMean
	if stow < params.StowTimeMin {
		stow = params.StowTimeMin
	}

	return &Passenger{
		ID:          id,
		Seat:        seat,
		WalkSpeed:   walk,
		StowTime:    stow,
		Phase:       PhaseQueued,
		Position:    -1,
		EnteredAt:   -1,
		StowStartAt: -1,
		SeatedAt:    -1,
	}
}

// targetPosition is the aisle position alongside the passenger's row.
// Slot 0 is the cabin entry, so row r sits at position r+1.
func (p *Passenger) targetPosition() float64 {
	return float64(p.Seat.Row + 1)
}

// slot returns the aisle slot index the passenger currently occupies.
func (p *Passenger) slot() int {
	return int(p.Position)
}

// ServiceTime is the total time the passenger held its target row slot:
// stow duration plus interference delay. Meaningful once seated.
func (p *Passenger) ServiceTime() float64 {
	if p.StowStartAt < 0 || p.SeatedAt < 0 {
		return 0
	}
	return p.SeatedAt - p.StowStartAt
}

// String returns a human-readable representation of a Passenger.
func (p *Passenger) String() string {
	return fmt.Sprintf("Passenger(ID: %d, Seat: %s, Phase: %s, Position: %v)", p.ID, p.Seat, p.Phase, p.Position)
}
