// Package sim provides the core discrete-event simulation engine for
// single-aisle aircraft boarding.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - passenger.go: Passenger lifecycle (queued → in-aisle → stowing → seated)
//   - aisle.go: The shared aisle resource and its single-occupancy contract
//   - simulator.go: The tick loop — admission, advancement, stow completion
//
// # Architecture
//
// One Simulator owns one boarding run: a FIFO boarding queue, the aisle,
// the seated grid, and the clock. Boarding orders are produced up front by
// GenerateOrder (order.go) from a Layout (layout.go) and a Strategy.
// Everything downstream of Run — per-tick time series, summary metrics,
// end-of-tick snapshots — is a read-only view of committed state.
//
// Multi-trial strategy comparison lives in the compare sub-package; each
// trial runs its own Simulator with a derived seed and no shared state.
//
// # Determinism
//
// Randomness enters exactly twice: when a boarding order is shuffled and
// when per-passenger attributes are sampled. Both draws come from a
// PartitionedRNG (rng.go), so two runs with the same SimulationKey and
// identical configuration produce bit-identical time series.
package sim
