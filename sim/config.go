// Grouped configuration structs for the boarding engine, with documented
// defaults and eager validation. Every setup failure wraps ErrConfiguration;
// once Run starts, the tick loop cannot fail.

package sim

import (
	"errors"
	"fmt"
)

// ErrConfiguration is wrapped by every setup-time validation failure:
// invalid layout dimensions, unrecognized strategies, non-positive
// distribution parameters, malformed boarding orders.
var ErrConfiguration = errors.New("invalid configuration")

// Movement selects the aisle advancement granularity.
type Movement string

const (
	// MovementSlot advances passengers one whole row slot at a time,
	// spending 1/walkSpeed time units per slot. This is the default.
	MovementSlot Movement = "slot"
	// MovementContinuous advances passengers by walkSpeed×step fractional
	// rows per tick, keeping a one-row headway behind the passenger ahead.
	MovementContinuous Movement = "continuous"
)

// ParseMovement maps a string to a Movement mode.
func ParseMovement(s string) (Movement, error) {
	switch Movement(s) {
	case MovementSlot, MovementContinuous:
		return Movement(s), nil
	}
	return "", fmt.Errorf("%w: unknown movement mode %q", ErrConfiguration, s)
}

// PassengerParams holds the sampled-attribute distributions and the
// per-seat-type interference delay constants. Defaults model a 737-800
// economy cabin; all of them are configuration, not physics.
type PassengerParams struct {
	WalkSpeedMean   float64 // rows per time unit (default 0.7)
	WalkSpeedStdDev float64 // default 0.15
	WalkSpeedMin    float64 // sampling floor, must be > 0 (default 0.1)

	StowTimeMean   float64 // time units to stow and sit (default 12)
	StowTimeStdDev float64 // default 4
	StowTimeMin    float64 // sampling floor, must be > 0 (default 1)

	// InterferenceDelays maps the seat type being accessed to the delay
	// paid per already-seated neighbor that blocks the way in.
	InterferenceDelays map[SeatType]float64
}

// DefaultPassengerParams returns the documented defaults.
func DefaultPassengerParams() PassengerParams {
	return PassengerParams{
		WalkSpeedMean:   0.7,
		WalkSpeedStdDev: 0.15,
		WalkSpeedMin:    0.1,
		StowTimeMean:    12,
		StowTimeStdDev:  4,
		StowTimeMin:     1,
		InterferenceDelays: map[SeatType]float64{
			SeatWindow: 5,
			SeatMiddle: 3,
			SeatAisle:  0,
		},
	}
}

// Validate checks every field eagerly. The sampling floors must be
// strictly positive: a non-positive walking speed or stow time would let
// an agent occupy its aisle slot forever and break the engine's liveness
// guarantee.
func (p PassengerParams) Validate() error {
	if p.WalkSpeedMean <= 0 {
		return fmt.Errorf("%w: walk speed mean must be positive, got %v", ErrConfiguration, p.WalkSpeedMean)
	}
	if p.WalkSpeedStdDev < 0 {
		return fmt.Errorf("%w: walk speed stddev must be non-negative, got %v", ErrConfiguration, p.WalkSpeedStdDev)
	}
	if p.WalkSpeedMin <= 0 {
		return fmt.Errorf("%w: walk speed floor must be positive, got %v", ErrConfiguration, p.WalkSpeedMin)
	}
	if p.StowTimeMean <= 0 {
		return fmt.Errorf("%w: stow time mean must be positive, got %v", ErrConfiguration, p.StowTimeMean)
	}
	if p.StowTimeStdDev < 0 {
		return fmt.Errorf("%w: stow time stddev must be non-negative, got %v", ErrConfiguration, p.StowTimeStdDev)
	}
	if p.StowTimeMin <= 0 {
		return fmt.Errorf("%w: stow time floor must be positive, got %v", ErrConfiguration, p.StowTimeMin)
	}
	for st, d := range p.InterferenceDelays {
		if d < 0 {
			return fmt.Errorf("%w: interference delay for %s seats must be non-negative, got %v", ErrConfiguration, st, d)
		}
	}
	return nil
}

// EngineConfig groups the stepping-loop parameters.
type EngineConfig struct {
	TimeLimit float64  // abandon the run as incomplete past this clock value (default 3600)
	Step      float64  // clock advance per tick (default 1)
	Movement  Movement // aisle advancement granularity (default MovementSlot)
}

// DefaultEngineConfig returns the documented defaults.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		TimeLimit: 3600,
		Step:      1,
		Movement:  MovementSlot,
	}
}

// Validate checks the stepping-loop parameters.
func (c EngineConfig) Validate() error {
	if c.TimeLimit <= 0 {
		return fmt.Errorf("%w: time limit must be positive, got %v", ErrConfiguration, c.TimeLimit)
	}
	if c.Step <= 0 {
		return fmt.Errorf("%w: step must be positive, got %v", ErrConfiguration, c.Step)
	}
	if _, err := ParseMovement(string(c.Movement)); err != nil {
		return err
	}
	return nil
}
