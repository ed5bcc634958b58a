// Package compare runs multi-trial boarding sweeps across strategies and
// reduces the per-trial boarding durations into summary statistics.
//
// Trials are embarrassingly parallel: each one owns its Simulator, aisle,
// queue, and clock, with a seed derived from the master key, so they run
// across a worker pool with zero synchronization on simulation state.
// Results are keyed by (strategy, trial) index, which makes a sweep
// deterministic regardless of worker count.
package compare

import (
	"fmt"
	"math"
	"sync"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	sim "github.com/boarding-sim/boarding-sim/sim"
)

// Config describes one comparison sweep.
type Config struct {
	Layout     sim.Layout
	Params     sim.PassengerParams
	Engine     sim.EngineConfig
	Strategies []sim.Strategy
	Zones      int   // zone count for back-to-front and hybrid
	Trials     int   // independent runs per strategy
	Workers    int   // worker goroutines; 0 or 1 means sequential
	Seed       int64 // master seed; per-trial keys are derived from it
}

// Validate checks the sweep-level parameters; per-run parameters are
// validated again by each Simulator.
func (c Config) Validate() error {
	if c.Trials < 1 {
		return fmt.Errorf("%w: trials must be at least 1, got %d", sim.ErrConfiguration, c.Trials)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be non-negative, got %d", sim.ErrConfiguration, c.Workers)
	}
	if len(c.Strategies) == 0 {
		return fmt.Errorf("%w: no strategies selected", sim.ErrConfiguration)
	}
	if c.Zones < 1 {
		return fmt.Errorf("%w: zones must be at least 1, got %d", sim.ErrConfiguration, c.Zones)
	}
	return nil
}

// TrialResult is the outcome of one independent run.
type TrialResult struct {
	Strategy  sim.Strategy
	Trial     int
	Duration  float64
	Completed bool
}

// StrategySummary reduces a strategy's trials into summary statistics.
// Mean/StdDev/Min/Max cover completed trials only; an incomplete trial
// has no boarding duration to aggregate.
type StrategySummary struct {
	Strategy        sim.Strategy
	Trials          int
	CompletedTrials int
	Mean            float64
	StdDev          float64
	Min             float64
	Max             float64
}

// Report is the output of one sweep: every trial plus one summary per
// strategy, in the order the strategies were configured.
type Report struct {
	Summaries []StrategySummary
	Trials    []TrialResult
}

// Run executes the sweep. Each trial generates its own boarding order and
// simulator from a key derived as masterKey.Derive("trial_<strategy>_<n>"),
// so adding trials or strategies never shifts the seeds of existing ones.
func Run(cfg Config) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Params.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Engine.Validate(); err != nil {
		return nil, err
	}
	// Fail on an unknown strategy before spawning any workers.
	for _, st := range cfg.Strategies {
		if _, err := sim.ParseStrategy(string(st)); err != nil {
			return nil, err
		}
	}

	type job struct {
		strategy sim.Strategy
		trial    int
		index    int
	}

	jobs := make([]job, 0, len(cfg.Strategies)*cfg.Trials)
	for si, st := range cfg.Strategies {
		for trial := 0; trial < cfg.Trials; trial++ {
			jobs = append(jobs, job{strategy: st, trial: trial, index: si*cfg.Trials + trial})
		}
	}

	results := make([]TrialResult, len(jobs))
	errs := make([]error, len(jobs))

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(jobs) {
		workers = len(jobs)
	}

	jobCh := make(chan job)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobCh {
				results[j.index], errs[j.index] = runTrial(cfg, j.strategy, j.trial)
			}
		}()
	}
	for _, j := range jobs {
		jobCh <- j
	}
	close(jobCh)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	report := &Report{Trials: results}
	for si, st := range cfg.Strategies {
		report.Summaries = append(report.Summaries, summarize(st, results[si*cfg.Trials:(si+1)*cfg.Trials]))
	}
	return report, nil
}

// runTrial executes a single independent run with its own derived seed.
func runTrial(cfg Config, strategy sim.Strategy, trial int) (TrialResult, error) {
	key := sim.NewSimulationKey(cfg.Seed).Derive(sim.SubsystemTrial(string(strategy), trial))
	prng := sim.NewPartitionedRNG(key)

	order, err := sim.GenerateOrder(cfg.Layout, strategy, cfg.Zones, prng.ForSubsystem(sim.SubsystemOrder))
	if err != nil {
		return TrialResult{}, err
	}
	s, err := sim.NewSimulator(cfg.Layout, order, cfg.Params, cfg.Engine, key)
	if err != nil {
		return TrialResult{}, err
	}
	res := s.Run()

	logrus.Debugf("trial %s/%d: duration=%.1f completed=%v", strategy, trial, res.Duration, res.Completed)
	return TrialResult{
		Strategy:  strategy,
		Trial:     trial,
		Duration:  res.Duration,
		Completed: res.Completed,
	}, nil
}

// summarize reduces one strategy's trials with gonum's estimators.
func summarize(strategy sim.Strategy, trials []TrialResult) StrategySummary {
	sum := StrategySummary{Strategy: strategy, Trials: len(trials)}

	var durations []float64
	sum.Min = math.Inf(1)
	sum.Max = math.Inf(-1)
	for _, tr := range trials {
		if !tr.Completed {
			continue
		}
		durations = append(durations, tr.Duration)
		sum.Min = math.Min(sum.Min, tr.Duration)
		sum.Max = math.Max(sum.Max, tr.Duration)
	}
	sum.CompletedTrials = len(durations)
	if len(durations) == 0 {
		sum.Min, sum.Max = 0, 0
		return sum
	}

	sum.Mean = stat.Mean(durations, nil)
	if len(durations) > 1 {
		sum.StdDev = stat.StdDev(durations, nil)
	}
	return sum
}
