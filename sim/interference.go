// Seat-access interference: the extra service time a passenger pays when
// already-seated neighbors block the way into their seat.

package sim

// InterferenceDelay computes the delay imposed on a passenger taking the
// given seat, based on which neighbors between the seat and the aisle are
// already seated. A window passenger pays for every seated middle or
// aisle occupant on their side; a middle passenger pays only for a seated
// aisle occupant; an aisle passenger pays nothing. The per-blocker
// constant comes from delays keyed by the seat type being accessed.
func InterferenceDelay(layout Layout, seat Seat, seated func(row, col int) bool, delays map[SeatType]float64) float64 {
	per := delays[layout.Classify(seat.Row, seat.Col)]
	blockers := 0
	for _, col := range layout.blockingCols(seat.Col) {
		if seated(seat.Row, col) {
			blockers++
		}
	}
	return per * float64(blockers)
}
