// Boarding-order generation: turns a Layout plus a Strategy into the
// permutation of seats that defines the initial queue order.

package sim

import (
	"fmt"
	"math/rand"
)

// Strategy selects a boarding-order policy.
type Strategy string

const (
	StrategyRandom      Strategy = "random"
	StrategyBackToFront Strategy = "back-to-front"
	StrategyOutsideIn   Strategy = "outside-in"
	StrategyHybrid      Strategy = "hybrid"
)

// Strategies returns every known strategy, in comparison-sweep order.
func Strategies() []Strategy {
	return []Strategy{StrategyRandom, StrategyBackToFront, StrategyOutsideIn, StrategyHybrid}
}

// ParseStrategy maps a string to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyRandom, StrategyBackToFront, StrategyOutsideIn, StrategyHybrid:
		return Strategy(s), nil
	}
	return "", fmt.Errorf("%w: unknown boarding strategy %q", ErrConfiguration, s)
}

// DefaultZones is the zone count used by back-to-front and hybrid orders
// when the caller does not override it.
const DefaultZones = 3

// GenerateOrder produces the boarding order for the given layout and
// strategy. The output is always a permutation of layout.AllSeats(): no
// seat omitted, none duplicated. zones only affects back-to-front and
// hybrid; pass DefaultZones when in doubt. The rng should come from
// SubsystemOrder so that order shuffles never perturb attribute sampling.
func GenerateOrder(layout Layout, strategy Strategy, zones int, rng *rand.Rand) ([]Seat, error) {
	if layout.SeatCount() == 0 {
		return nil, fmt.Errorf("%w: layout has zero seats", ErrConfiguration)
	}
	if zones < 1 {
		return nil, fmt.Errorf("%w: zones must be at least 1, got %d", ErrConfiguration, zones)
	}
	if zones > layout.Rows() {
		return nil, fmt.Errorf("%w: zones (%d) exceed layout rows (%d)", ErrConfiguration, zones, layout.Rows())
	}

	switch strategy {
	case StrategyRandom:
		return randomOrder(layout, rng), nil
	case StrategyBackToFront:
		return backToFrontOrder(layout, zones, rng), nil
	case StrategyOutsideIn:
		return outsideInOrder(layout, rng), nil
	case StrategyHybrid:
		return hybridOrder(layout, zones, rng), nil
	}
	return nil, fmt.Errorf("%w: unknown boarding strategy %q", ErrConfiguration, strategy)
}

// randomOrder returns a uniform random permutation of all seats.
func randomOrder(layout Layout, rng *rand.Rand) []Seat {
	seats := layout.AllSeats()
	shuffle(seats, rng)
	return seats
}

// backToFrontOrder concatenates zones rear-first, each zone internally
// randomized.
func backToFrontOrder(layout Layout, zones int, rng *rand.Rand) []Seat {
	order := make([]Seat, 0, layout.SeatCount())
	for zone := 0; zone < zones; zone++ {
		start, end := zoneRows(layout.Rows(), zones, zone)
		block := seatsInRows(layout, start, end)
		shuffle(block, rng)
		order = append(order, block...)
	}
	return order
}

// outsideInOrder boards all window seats first, then middles, then aisles,
// each group internally randomized.
func outsideInOrder(layout Layout, rng *rand.Rand) []Seat {
	order := make([]Seat, 0, layout.SeatCount())
	for _, st := range []SeatType{SeatWindow, SeatMiddle, SeatAisle} {
		group := seatsOfType(layout, layout.AllSeats(), st)
		shuffle(group, rng)
		order = append(order, group...)
	}
	return order
}

// hybridOrder applies outside-in ordering within each back-to-front zone:
// zones concatenated rear-first, window→middle→aisle inside each zone,
// seats shuffled within each type group.
func hybridOrder(layout Layout, zones int, rng *rand.Rand) []Seat {
	order := make([]Seat, 0, layout.SeatCount())
	for zone := 0; zone < zones; zone++ {
		start, end := zoneRows(layout.Rows(), zones, zone)
		block := seatsInRows(layout, start, end)
		for _, st := range []SeatType{SeatWindow, SeatMiddle, SeatAisle} {
			group := seatsOfType(layout, block, st)
			shuffle(group, rng)
			order = append(order, group...)
		}
	}
	return order
}

// zoneRows returns the [start, end) row range of the given zone, counting
// zones from the rear of the cabin. The frontmost zone absorbs any
// remainder rows when the row count does not divide evenly.
func zoneRows(rows, zones, zone int) (start, end int) {
	perZone := rows / zones
	end = rows - zone*perZone
	start = end - perZone
	if zone == zones-1 {
		start = 0
	}
	return start, end
}

// seatsInRows returns all seats with row in [start, end), row-major.
func seatsInRows(layout Layout, start, end int) []Seat {
	seats := make([]Seat, 0, (end-start)*layout.SeatsPerRow())
	for row := start; row < end; row++ {
		for col := 0; col < layout.SeatsPerRow(); col++ {
			seats = append(seats, Seat{Row: row, Col: col})
		}
	}
	return seats
}

// seatsOfType filters seats by classification, preserving input order.
func seatsOfType(layout Layout, seats []Seat, st SeatType) []Seat {
	var group []Seat
	for _, s := range seats {
		if layout.Classify(s.Row, s.Col) == st {
			group = append(group, s)
		}
	}
	return group
}

func shuffle(seats []Seat, rng *rand.Rand) {
	rng.Shuffle(len(seats), func(i, j int) {
		seats[i], seats[j] = seats[j], seats[i]
	})
}
