package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/boarding-sim/boarding-sim/sim"
	"github.com/boarding-sim/boarding-sim/sim/compare"
)

var (
	// CLI flags for cabin and run configuration
	rows        int     // Number of rows in the cabin
	seatsPerRow int     // Seats per row (even; 6 for a 737-800)
	strategy    string  // Boarding strategy for `run`
	zones       int     // Zone count for back-to-front and hybrid orders
	seed        int64   // Master seed for order shuffles and attribute sampling
	timeLimit   float64 // Abandon a run as incomplete past this clock value
	step        float64 // Clock advance per tick
	movement    string  // Aisle movement granularity (slot, continuous)
	logLevel    string  // Log verbosity level

	// CLI flags for passenger-parameter presets
	paramsFile   string // YAML presets file
	paramsPreset string // Preset name within the file

	// CLI flags for `compare`
	trials       int      // Independent runs per strategy
	workers      int      // Worker goroutines for the sweep
	strategyList []string // Strategies to compare (empty = all)
	scenarioFile string   // YAML scenario file overriding the flags above
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "boarding-sim",
	Short: "Discrete-event simulator for aircraft boarding strategies",
}

// setupLogging applies the --log flag before any subcommand runs.
func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// loadParams resolves the passenger parameters from the presets file, or
// falls back to the documented defaults.
func loadParams() sim.PassengerParams {
	if paramsFile == "" {
		return sim.DefaultPassengerParams()
	}
	params, ok := GetPassengerParams(paramsFile, paramsPreset)
	if !ok {
		logrus.Fatalf("preset %q not found in %s", paramsPreset, paramsFile)
	}
	return params
}

// runCmd executes a single boarding run using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one boarding simulation",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		layout, err := sim.NewLayout(rows, seatsPerRow)
		if err != nil {
			logrus.Fatalf("invalid layout: %v", err)
		}
		strat, err := sim.ParseStrategy(strategy)
		if err != nil {
			logrus.Fatalf("invalid strategy: %v", err)
		}
		mv, err := sim.ParseMovement(movement)
		if err != nil {
			logrus.Fatalf("invalid movement mode: %v", err)
		}

		params := loadParams()
		cfg := sim.EngineConfig{TimeLimit: timeLimit, Step: step, Movement: mv}

		key := sim.NewSimulationKey(seed)
		prng := sim.NewPartitionedRNG(key)
		order, err := sim.GenerateOrder(layout, strat, zones, prng.ForSubsystem(sim.SubsystemOrder))
		if err != nil {
			logrus.Fatalf("generating boarding order: %v", err)
		}

		logrus.Infof("Starting %s boarding of %d passengers (%d rows x %d seats), seed=%d",
			strat, layout.SeatCount(), rows, seatsPerRow, seed)

		s, err := sim.NewSimulator(layout, order, params, cfg, key)
		if err != nil {
			logrus.Fatalf("building simulation: %v", err)
		}
		res := s.Run()
		s.Metrics.Print(layout.SeatCount())
		if !res.Completed {
			fmt.Printf("Boarding incomplete: %d passengers remaining at the time limit\n", s.Remaining())
		}
	},
}

// compareCmd sweeps strategies across independent trials and prints a
// summary table of boarding durations.
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare boarding strategies over repeated trials",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		var cfg compare.Config
		if scenarioFile != "" {
			sc, err := compare.LoadScenario(scenarioFile)
			if err != nil {
				logrus.Fatalf("loading scenario: %v", err)
			}
			cfg, err = sc.Config()
			if err != nil {
				logrus.Fatalf("invalid scenario: %v", err)
			}
		} else {
			layout, err := sim.NewLayout(rows, seatsPerRow)
			if err != nil {
				logrus.Fatalf("invalid layout: %v", err)
			}
			mv, err := sim.ParseMovement(movement)
			if err != nil {
				logrus.Fatalf("invalid movement mode: %v", err)
			}
			strategies := sim.Strategies()
			if len(strategyList) > 0 {
				strategies = strategies[:0]
				for _, name := range strategyList {
					st, err := sim.ParseStrategy(name)
					if err != nil {
						logrus.Fatalf("invalid strategy: %v", err)
					}
					strategies = append(strategies, st)
				}
			}
			cfg = compare.Config{
				Layout:     layout,
				Params:     loadParams(),
				Engine:     sim.EngineConfig{TimeLimit: timeLimit, Step: step, Movement: mv},
				Strategies: strategies,
				Zones:      zones,
				Trials:     trials,
				Workers:    workers,
				Seed:       seed,
			}
		}

		report, err := compare.Run(cfg)
		if err != nil {
			logrus.Fatalf("comparison failed: %v", err)
		}
		printReport(report)
	},
}

// printReport renders the per-strategy summary table.
func printReport(report *compare.Report) {
	fmt.Println("=== Strategy Comparison ===")
	fmt.Printf("%-15s %9s %9s %9s %9s %11s\n", "strategy", "mean", "stddev", "min", "max", "completed")
	for _, s := range report.Summaries {
		fmt.Printf("%-15s %9.1f %9.1f %9.1f %9.1f %5d/%d\n",
			s.Strategy, s.Mean, s.StdDev, s.Min, s.Max, s.CompletedTrials, s.Trials)
	}
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	for _, cmd := range []*cobra.Command{runCmd, compareCmd} {
		cmd.Flags().IntVar(&rows, "rows", 21, "Number of rows in the cabin")
		cmd.Flags().IntVar(&seatsPerRow, "seats-per-row", 6, "Seats per row (must be even)")
		cmd.Flags().IntVar(&zones, "zones", sim.DefaultZones, "Zone count for back-to-front and hybrid orders")
		cmd.Flags().Int64Var(&seed, "seed", 42, "Seed for order shuffles and attribute sampling")
		cmd.Flags().Float64Var(&timeLimit, "time-limit", 3600, "Maximum simulated time before a run is abandoned")
		cmd.Flags().Float64Var(&step, "step", 1, "Clock advance per tick")
		cmd.Flags().StringVar(&movement, "movement", string(sim.MovementSlot), "Aisle movement granularity (slot, continuous)")
		cmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
		cmd.Flags().StringVar(&paramsFile, "params-file", "", "YAML passenger-parameter presets file")
		cmd.Flags().StringVar(&paramsPreset, "params", "default", "Preset name within the presets file")
	}

	runCmd.Flags().StringVar(&strategy, "strategy", string(sim.StrategyRandom), "Boarding strategy (random, back-to-front, outside-in, hybrid)")

	compareCmd.Flags().IntVar(&trials, "trials", 10, "Independent runs per strategy")
	compareCmd.Flags().IntVar(&workers, "workers", runtime.NumCPU(), "Worker goroutines for the sweep")
	compareCmd.Flags().StringSliceVar(&strategyList, "strategies", nil, "Comma-separated strategies to compare (default: all)")
	compareCmd.Flags().StringVar(&scenarioFile, "scenario", "", "YAML scenario file (overrides layout and sweep flags)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(compareCmd)
}
