// Committed end-of-tick snapshots for downstream consumers (metrics
// reducers, renderers). Readers must never observe mid-tick state, so a
// snapshot is a deep copy that shares nothing with the live run.

package sim

import (
	"github.com/tiendc/go-deepcopy"
)

// Snapshot is a read-only view of one run at an instant between ticks.
type Snapshot struct {
	Clock     float64
	Remaining int

	// AisleOccupants holds one passenger ID per aisle slot, entry slot
	// first, NoOccupant for empty slots.
	AisleOccupants []int
	// Phases and Positions are indexed by boarding-order ID.
	Phases    []Phase
	Positions []float64
	// Seated is the seat-occupancy grid, [row][col].
	Seated [][]bool
}

// Snapshot captures the committed state of the run. Call it between
// Tick invocations; the returned value stays valid as the run advances.
func (s *Simulator) Snapshot() Snapshot {
	snap := Snapshot{
		Clock:     s.Clock,
		Remaining: s.Remaining(),
		Phases:    make([]Phase, len(s.Passengers)),
		Positions: make([]float64, len(s.Passengers)),
	}
	for i, p := range s.Passengers {
		snap.Phases[i] = p.Phase
		snap.Positions[i] = p.Position
	}
	snap.AisleOccupants = s.Aisle.Occupants()
	if err := deepcopy.Copy(&snap.Seated, &s.seated); err != nil {
		// The grid is a plain [][]bool; a copy failure means a programming
		// error, not a runtime condition.
		panic(err)
	}
	return snap
}
