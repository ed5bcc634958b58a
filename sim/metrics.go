// Tracks the per-tick time series and run-wide aggregates such as boarding
// duration, peak aisle occupancy, and congestion counters.

package sim

import "fmt"

// TimePoint is one entry of the boarding time series: the clock value and
// the number of passengers not yet seated at the end of that tick.
type TimePoint struct {
	Time      float64
	Remaining int
}

// Result is the external output of one run: the full time series, whether
// every passenger was seated before the time limit, and the boarding
// duration (the clock at the final seating, or the time limit for
// incomplete runs).
type Result struct {
	Series    []TimePoint
	Completed bool
	Duration  float64
}

// Metrics aggregates statistics about a boarding run for final reporting.
// Useful for evaluating strategies and debugging congestion over time.
type Metrics struct {
	SeatedCount        int     // passengers seated so far
	Duration           float64 // clock value when the last passenger sat down
	PeakAisleOccupancy int     // max simultaneously occupied aisle slots
	BlockedActions     int     // walk attempts denied because the slot ahead was held
	TotalInterference  float64 // sum of interference delays across passengers
	TotalServiceTime   float64 // sum of stow + interference across passengers

	Series []TimePoint // (clock, remaining) per tick
}

// NewMetrics returns an empty metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// record appends one time-series point and updates the peak occupancy.
func (m *Metrics) record(clock float64, remaining, aisleOccupancy int) {
	m.Series = append(m.Series, TimePoint{Time: clock, Remaining: remaining})
	if aisleOccupancy > m.PeakAisleOccupancy {
		m.PeakAisleOccupancy = aisleOccupancy
	}
}

// Print displays aggregated metrics at the end of a run.
func (m *Metrics) Print(totalPassengers int) {
	fmt.Println("=== Boarding Metrics ===")
	fmt.Printf("Seated Passengers     : %d/%d\n", m.SeatedCount, totalPassengers)
	fmt.Printf("Boarding Duration     : %.1f time units\n", m.Duration)
	fmt.Printf("Peak Aisle Occupancy  : %d slots\n", m.PeakAisleOccupancy)
	fmt.Printf("Blocked Walk Attempts : %d\n", m.BlockedActions)
	if m.SeatedCount > 0 {
		fmt.Printf("Average Service Time  : %.2f time units\n", m.TotalServiceTime/float64(m.SeatedCount))
		fmt.Printf("Average Interference  : %.2f time units\n", m.TotalInterference/float64(m.SeatedCount))
	}
}
