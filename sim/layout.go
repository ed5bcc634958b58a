// Defines the immutable aircraft layout: row count, seats per row, and the
// window/middle/aisle classification derived from column position.

package sim

import (
	"fmt"
)

// SeatType classifies a seat by its distance from the aisle.
type SeatType int

const (
	SeatWindow SeatType = iota
	SeatMiddle
	SeatAisle
)

func (t SeatType) String() string {
	switch t {
	case SeatWindow:
		return "window"
	case SeatMiddle:
		return "middle"
	case SeatAisle:
		return "aisle"
	}
	return fmt.Sprintf("SeatType(%d)", int(t))
}

// Seat identifies a single seat by zero-based row and column.
type Seat struct {
	Row int
	Col int
}

// String renders a seat the way a boarding pass would, e.g. "12C" for
// row index 11, column index 2.
func (s Seat) String() string {
	return fmt.Sprintf("%d%c", s.Row+1, 'A'+rune(s.Col))
}

// Layout is the static description of a single-aisle cabin. It is a value
// type, immutable after construction, and reusable across runs.
type Layout struct {
	rows        int
	seatsPerRow int
}

// NewLayout validates cabin dimensions and returns a Layout.
// seatsPerRow must be even: a single aisle splits every row into two
// equal sides.
func NewLayout(rows, seatsPerRow int) (Layout, error) {
	if rows <= 0 {
		return Layout{}, fmt.Errorf("%w: rows must be positive, got %d", ErrConfiguration, rows)
	}
	if seatsPerRow <= 0 {
		return Layout{}, fmt.Errorf("%w: seats per row must be positive, got %d", ErrConfiguration, seatsPerRow)
	}
	if seatsPerRow%2 != 0 {
		return Layout{}, fmt.Errorf("%w: seats per row must be even for a single-aisle cabin, got %d", ErrConfiguration, seatsPerRow)
	}
	return Layout{rows: rows, seatsPerRow: seatsPerRow}, nil
}

// Rows returns the number of rows in the cabin.
func (l Layout) Rows() int { return l.rows }

// SeatsPerRow returns the number of seats in each row.
func (l Layout) SeatsPerRow() int { return l.seatsPerRow }

// SeatCount returns the total number of seats.
func (l Layout) SeatCount() int { return l.rows * l.seatsPerRow }

// Classify maps a column position to its seat type: the outermost column
// on each side is a window seat, the next one in is a middle seat, and
// anything closer to the aisle is an aisle seat. Row is accepted for
// symmetry with the rest of the API; classification depends on column only.
func (l Layout) Classify(row, col int) SeatType {
	_ = row
	switch {
	case col == 0 || col == l.seatsPerRow-1:
		return SeatWindow
	case col == 1 || col == l.seatsPerRow-2:
		return SeatMiddle
	default:
		return SeatAisle
	}
}

// LeftSide reports whether the column sits on the left of the aisle.
func (l Layout) LeftSide(col int) bool { return col < l.seatsPerRow/2 }

// AllSeats returns every seat in row-major order. The order is
// deterministic; strategy generators shuffle a copy of this slice.
func (l Layout) AllSeats() []Seat {
	seats := make([]Seat, 0, l.SeatCount())
	for row := 0; row < l.rows; row++ {
		for col := 0; col < l.seatsPerRow; col++ {
			seats = append(seats, Seat{Row: row, Col: col})
		}
	}
	return seats
}

// blockingCols returns the columns between the given seat and the aisle,
// exclusive on both ends. These are the seats an arriving passenger has
// to climb past if they are already occupied.
func (l Layout) blockingCols(col int) []int {
	half := l.seatsPerRow / 2
	var cols []int
	if l.LeftSide(col) {
		for c := col + 1; c < half; c++ {
			cols = append(cols, c)
		}
	} else {
		for c := half; c < col; c++ {
			cols = append(cols, c)
		}
	}
	return cols
}
