// Implements the aisle, the single shared mutable resource of a boarding
// run, and the contention rules that keep at most one passenger per slot.

package sim

import (
	"fmt"
	"strings"
)

// NoOccupant marks an empty aisle slot.
const NoOccupant = -1

// Aisle is a sequence of row slots. Slot 0 is the cabin entry; slot r+1
// sits alongside row r, so an aisle over R rows has R+1 slots. Each slot
// holds at most one passenger ID at any instant — that invariant is the
// aisle's core guarantee, and every mutation enforces it.
//
// Thread-safety: NOT thread-safe. The aisle is mutated exclusively by the
// single stepping loop; readers observe committed end-of-tick snapshots.
type Aisle struct {
	slots []int
}

// NewAisle creates an empty aisle for a cabin with the given row count.
func NewAisle(rows int) *Aisle {
	slots := make([]int, rows+1)
	for i := range slots {
		slots[i] = NoOccupant
	}
	return &Aisle{slots: slots}
}

// Len returns the number of slots, including the entry slot.
func (a *Aisle) Len() int { return len(a.slots) }

// Occupied reports whether the slot holds a passenger.
func (a *Aisle) Occupied(pos int) bool {
	return a.slots[pos] != NoOccupant
}

// Occupant returns the passenger ID in the slot, or NoOccupant.
func (a *Aisle) Occupant(pos int) int {
	return a.slots[pos]
}

// Occupancy returns the number of occupied slots.
func (a *Aisle) Occupancy() int {
	n := 0
	for _, id := range a.slots {
		if id != NoOccupant {
			n++
		}
	}
	return n
}

// Enter claims the entry slot for the given passenger. The caller must
// have checked Occupied(0); claiming an occupied entry slot is a bug.
func (a *Aisle) Enter(id int) {
	if a.slots[0] != NoOccupant {
		panic(fmt.Sprintf("Enter: entry slot already held by passenger %d", a.slots[0]))
	}
	a.slots[0] = id
}

// CanAdvance reports whether the slot immediately ahead of pos is free.
// This is the single source of truth for forward motion eligibility.
func (a *Aisle) CanAdvance(pos int) bool {
	return pos+1 < len(a.slots) && !a.Occupied(pos+1)
}

// Advance moves the occupant of pos into pos+1 as one atomic
// vacate-then-occupy operation. It panics if the move would double-book
// the destination or if pos is empty, so an invariant breach surfaces at
// the mutation that caused it rather than ticks later.
func (a *Aisle) Advance(pos int) {
	id := a.slots[pos]
	if id == NoOccupant {
		panic(fmt.Sprintf("Advance: slot %d is empty", pos))
	}
	if !a.CanAdvance(pos) {
		panic(fmt.Sprintf("Advance: slot %d is blocked", pos+1))
	}
	a.slots[pos] = NoOccupant
	a.slots[pos+1] = id
}

// Relocate moves the occupant of from into to, used by continuous
// movement where a tick can cover more than one slot. The destination
// must be free.
func (a *Aisle) Relocate(from, to int) {
	id := a.slots[from]
	if id == NoOccupant {
		panic(fmt.Sprintf("Relocate: slot %d is empty", from))
	}
	if a.slots[to] != NoOccupant {
		panic(fmt.Sprintf("Relocate: slot %d already held by passenger %d", to, a.slots[to]))
	}
	a.slots[from] = NoOccupant
	a.slots[to] = id
}

// Clear vacates the slot after a passenger sits down.
func (a *Aisle) Clear(pos int) {
	a.slots[pos] = NoOccupant
}

// Occupants returns a copy of the slot contents, entry slot first.
func (a *Aisle) Occupants() []int {
	out := make([]int, len(a.slots))
	copy(out, a.slots)
	return out
}

func (a *Aisle) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, id := range a.slots {
		if id == NoOccupant {
			sb.WriteString(".")
		} else {
			sb.WriteString(fmt.Sprint(id))
		}
		if i < len(a.slots)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
