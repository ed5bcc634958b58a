package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedParams returns deterministic passenger parameters: every sample
// hits the mean because the stddevs are zero.
func fixedParams(walkSpeed, stowTime float64) PassengerParams {
	p := DefaultPassengerParams()
	p.WalkSpeedMean = walkSpeed
	p.WalkSpeedStdDev = 0
	p.WalkSpeedMin = walkSpeed / 2
	p.StowTimeMean = stowTime
	p.StowTimeStdDev = 0
	p.StowTimeMin = 1
	return p
}

func buildSimulator(t *testing.T, rows, seatsPerRow int, strategy Strategy, params PassengerParams, cfg EngineConfig, seed int64) *Simulator {
	t.Helper()
	layout, err := NewLayout(rows, seatsPerRow)
	require.NoError(t, err)

	key := NewSimulationKey(seed)
	zones := DefaultZones
	if rows < zones {
		zones = 1
	}
	order, err := GenerateOrder(layout, strategy, zones, NewPartitionedRNG(key).ForSubsystem(SubsystemOrder))
	require.NoError(t, err)

	s, err := NewSimulator(layout, order, params, cfg, key)
	require.NoError(t, err)
	return s
}

func TestSimulator_CompletedRunSeries(t *testing.T) {
	cfg := DefaultEngineConfig()
	cfg.TimeLimit = 20000
	s := buildSimulator(t, 6, 6, StrategyRandom, DefaultPassengerParams(), cfg, 42)

	res := s.Run()
	require.True(t, res.Completed)
	require.NotEmpty(t, res.Series)

	// remainingCount is non-increasing and reaches exactly 0 at the final
	// recorded time.
	for i := 1; i < len(res.Series); i++ {
		assert.LessOrEqual(t, res.Series[i].Remaining, res.Series[i-1].Remaining,
			"series increased at index %d", i)
	}
	last := res.Series[len(res.Series)-1]
	assert.Equal(t, 0, last.Remaining)
	assert.Equal(t, last.Time, res.Duration)
	assert.Equal(t, 36, s.Metrics.SeatedCount)
}

func TestSimulator_Determinism(t *testing.T) {
	for _, strategy := range Strategies() {
		cfg := DefaultEngineConfig()
		cfg.TimeLimit = 20000

		a := buildSimulator(t, 6, 6, strategy, DefaultPassengerParams(), cfg, 1234).Run()
		b := buildSimulator(t, 6, 6, strategy, DefaultPassengerParams(), cfg, 1234).Run()
		require.Equal(t, a, b, "strategy %s: identical seeds must give bit-identical results", strategy)
	}
}

// phaseRank orders the lifecycle so monotonicity can be asserted.
func phaseRank(p Phase) int {
	switch p {
	case PhaseQueued:
		return 0
	case PhaseInAisle:
		return 1
	case PhaseStowing:
		return 2
	case PhaseSeated:
		return 3
	}
	return -1
}

func TestSimulator_PhaseMonotonicityAndSlotInvariant(t *testing.T) {
	cfg := DefaultEngineConfig()
	cfg.TimeLimit = 20000
	s := buildSimulator(t, 5, 6, StrategyOutsideIn, DefaultPassengerParams(), cfg, 7)

	prev := make([]int, len(s.Passengers))
	for tick := 0; s.Remaining() > 0 && s.Clock < cfg.TimeLimit; tick++ {
		s.Tick()
		snap := s.Snapshot()

		// Phases never regress.
		for id, phase := range snap.Phases {
			rank := phaseRank(phase)
			require.GreaterOrEqual(t, rank, prev[id], "passenger %d regressed at tick %d", id, tick)
			prev[id] = rank
		}

		// At most one passenger per aisle slot, and each occupant's
		// position agrees with the slot holding it.
		seen := make(map[int]bool)
		for slot, id := range snap.AisleOccupants {
			if id == NoOccupant {
				continue
			}
			require.False(t, seen[id], "passenger %d in two slots at tick %d", id, tick)
			seen[id] = true
			require.Equal(t, slot, int(snap.Positions[id]), "passenger %d slot mismatch at tick %d", id, tick)
		}
	}
	require.Equal(t, 0, s.Remaining(), "run did not complete before the limit")
}

// Strict back-to-front with one row per zone: every rearmost-row passenger
// is seated before any front-row passenger sets foot in the aisle.
func TestSimulator_BackToFrontSeatsRearRowsFirst(t *testing.T) {
	layout, err := NewLayout(3, 6)
	require.NoError(t, err)

	// Strict rear-to-front order, no randomization: rows 2, 1, 0.
	var order []Seat
	for row := 2; row >= 0; row-- {
		for col := 0; col < 6; col++ {
			order = append(order, Seat{Row: row, Col: col})
		}
	}

	cfg := DefaultEngineConfig()
	cfg.TimeLimit = 2000
	s, err := NewSimulator(layout, order, fixedParams(1.0, 4.0), cfg, NewSimulationKey(1))
	require.NoError(t, err)
	res := s.Run()
	require.True(t, res.Completed)

	var lastRearSeated, firstFrontEntry float64
	firstFrontEntry = cfg.TimeLimit
	for _, p := range s.Passengers {
		switch p.Seat.Row {
		case 2:
			if p.SeatedAt > lastRearSeated {
				lastRearSeated = p.SeatedAt
			}
		case 0:
			if p.EnteredAt < firstFrontEntry {
				firstFrontEntry = p.EnteredAt
			}
		}
	}
	assert.Less(t, lastRearSeated, firstFrontEntry,
		"a front-row passenger entered the aisle before the rear row was seated")
}

// With a single row there is no aisle contention beyond entry-slot
// serialization, so boarding finishes within six times the worst
// single-passenger service time.
func TestSimulator_SingleRowCompletesWithinBound(t *testing.T) {
	for _, strategy := range Strategies() {
		cfg := DefaultEngineConfig()
		cfg.TimeLimit = 1000
		s := buildSimulator(t, 1, 6, strategy, fixedParams(1.0, 5.0), cfg, 21)

		res := s.Run()
		require.True(t, res.Completed, "strategy %s", strategy)
		assert.Equal(t, 0, res.Series[len(res.Series)-1].Remaining)

		// Worst single passenger: walk in (2 ticks), stow 5, interference
		// up to 10, plus per-tick bookkeeping slack.
		maxService := 20.0
		assert.LessOrEqual(t, res.Duration, 6*maxService, "strategy %s", strategy)
	}
}

func TestSimulator_TimeoutReturnsPartialResult(t *testing.T) {
	cfg := DefaultEngineConfig()
	cfg.TimeLimit = 3 // far below the first seating
	s := buildSimulator(t, 3, 6, StrategyRandom, DefaultPassengerParams(), cfg, 9)

	res := s.Run()
	assert.False(t, res.Completed)
	require.NotEmpty(t, res.Series)
	last := res.Series[len(res.Series)-1]
	assert.GreaterOrEqual(t, last.Remaining, 17, "nobody can be seated this early")
	assert.Equal(t, cfg.TimeLimit, res.Duration)
}

func TestNewSimulator_ValidationErrors(t *testing.T) {
	layout, err := NewLayout(2, 4)
	require.NoError(t, err)
	good := layout.AllSeats()
	params := DefaultPassengerParams()
	cfg := DefaultEngineConfig()
	key := NewSimulationKey(1)

	t.Run("short order", func(t *testing.T) {
		_, err := NewSimulator(layout, good[:5], params, cfg, key)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrConfiguration))
	})

	t.Run("duplicate seat", func(t *testing.T) {
		dup := append([]Seat{}, good...)
		dup[3] = dup[0]
		_, err := NewSimulator(layout, dup, params, cfg, key)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrConfiguration))
	})

	t.Run("seat out of range", func(t *testing.T) {
		bad := append([]Seat{}, good...)
		bad[0] = Seat{Row: 5, Col: 0}
		_, err := NewSimulator(layout, bad, params, cfg, key)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrConfiguration))
	})

	t.Run("non-positive stow floor", func(t *testing.T) {
		p := DefaultPassengerParams()
		p.StowTimeMin = 0
		_, err := NewSimulator(layout, good, p, cfg, key)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrConfiguration))
	})

	t.Run("bad engine config", func(t *testing.T) {
		c := DefaultEngineConfig()
		c.Step = 0
		_, err := NewSimulator(layout, good, params, c, key)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrConfiguration))
	})

	t.Run("zero layout", func(t *testing.T) {
		_, err := NewSimulator(Layout{}, nil, params, cfg, key)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrConfiguration))
	})
}

func TestRunSimulation_Convenience(t *testing.T) {
	layout, err := NewLayout(2, 4)
	require.NoError(t, err)
	key := NewSimulationKey(5)
	order, err := GenerateOrder(layout, StrategyRandom, 1, NewPartitionedRNG(key).ForSubsystem(SubsystemOrder))
	require.NoError(t, err)

	res, err := RunSimulation(layout, order, DefaultPassengerParams(), 5000, 1, key)
	require.NoError(t, err)
	assert.True(t, res.Completed)
	assert.Equal(t, 0, res.Series[len(res.Series)-1].Remaining)

	_, err = RunSimulation(layout, order, DefaultPassengerParams(), 0, 1, key)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfiguration))
}

func TestSimulator_ContinuousMovement(t *testing.T) {
	cfg := DefaultEngineConfig()
	cfg.TimeLimit = 20000
	cfg.Movement = MovementContinuous
	s := buildSimulator(t, 4, 6, StrategyBackToFront, DefaultPassengerParams(), cfg, 77)

	for s.Remaining() > 0 && s.Clock < cfg.TimeLimit {
		s.Tick()
		snap := s.Snapshot()

		// One-row headway between everybody standing in the aisle.
		var positions []float64
		for id, phase := range snap.Phases {
			if phase == PhaseInAisle || phase == PhaseStowing {
				positions = append(positions, snap.Positions[id])
			}
		}
		for i := range positions {
			for j := i + 1; j < len(positions); j++ {
				gap := positions[i] - positions[j]
				if gap < 0 {
					gap = -gap
				}
				require.GreaterOrEqual(t, gap, 1.0, "headway violated at clock %.1f", snap.Clock)
			}
		}
	}
	require.Equal(t, 0, s.Remaining())
}

func TestSimulator_ContinuousMovementDeterminism(t *testing.T) {
	cfg := DefaultEngineConfig()
	cfg.TimeLimit = 20000
	cfg.Movement = MovementContinuous

	a := buildSimulator(t, 4, 6, StrategyHybrid, DefaultPassengerParams(), cfg, 3).Run()
	b := buildSimulator(t, 4, 6, StrategyHybrid, DefaultPassengerParams(), cfg, 3).Run()
	require.Equal(t, a, b)
}
