package sim

import (
	"fmt"
	"hash/fnv"
	"math/rand"
)

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible simulation run.
// Two simulations with the same SimulationKey and identical configuration
// MUST produce bit-for-bit identical results.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// Derive returns a new SimulationKey for a named child run, e.g. one
// trial inside a comparison sweep. Distinct names yield independent keys;
// the same name always yields the same key.
func (k SimulationKey) Derive(name string) SimulationKey {
	return SimulationKey(int64(k) ^ fnv1a64(name))
}

// === Subsystem Constants ===

const (
	// SubsystemOrder is the RNG subsystem for boarding-order shuffles.
	// Uses the master seed directly.
	SubsystemOrder = "order"

	// SubsystemPassengers is the RNG subsystem for per-passenger
	// attribute sampling (walking speed, stow time).
	SubsystemPassengers = "passengers"
)

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated RNG instances per subsystem,
// so drawing extra values for the boarding order never shifts the sequence
// used for passenger attributes.
//
// Derivation formula:
//   - For SubsystemOrder: uses masterSeed directly
//   - For all other subsystems: masterSeed XOR fnv1a64(subsystemName)
//
// Thread-safety: NOT thread-safe. Must be called from a single goroutine.
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named subsystem.
// The same subsystem name always returns the same *rand.Rand instance (cached).
// Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}

	var derivedSeed int64
	if name == SubsystemOrder {
		derivedSeed = int64(p.key)
	} else {
		derivedSeed = int64(p.key) ^ fnv1a64(name)
	}

	rng := rand.New(rand.NewSource(derivedSeed))
	p.subsystems[name] = rng
	return rng
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// SubsystemTrial returns the subsystem name for trial N of a strategy,
// used by comparison sweeps to derive independent per-trial seeds.
func SubsystemTrial(strategy string, trial int) string {
	return fmt.Sprintf("trial_%s_%d", strategy, trial)
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
