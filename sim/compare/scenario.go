// YAML scenario files: a declarative form of a comparison sweep, so that
// parameter studies live in version-controlled files instead of flag soup.

package compare

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	sim "github.com/boarding-sim/boarding-sim/sim"
)

// Scenario is the YAML form of a sweep. Zero-valued fields fall back to
// the package defaults, so a minimal scenario only names what it changes.
type Scenario struct {
	Rows        int      `yaml:"rows"`
	SeatsPerRow int      `yaml:"seats_per_row"`
	Strategies  []string `yaml:"strategies,omitempty"` // empty = all strategies
	Zones       int      `yaml:"zones,omitempty"`
	Trials      int      `yaml:"trials,omitempty"`
	Workers     int      `yaml:"workers,omitempty"`
	Seed        int64    `yaml:"seed,omitempty"`
	TimeLimit   float64  `yaml:"time_limit,omitempty"`
	Step        float64  `yaml:"step,omitempty"`
	Movement    string   `yaml:"movement,omitempty"`

	Passengers *PassengerSpec `yaml:"passengers,omitempty"`
}

// PassengerSpec overrides individual passenger-parameter fields. Pointer
// fields distinguish "absent" from an explicit zero.
type PassengerSpec struct {
	WalkSpeedMean   *float64 `yaml:"walk_speed_mean,omitempty"`
	WalkSpeedStdDev *float64 `yaml:"walk_speed_stdev,omitempty"`
	WalkSpeedMin    *float64 `yaml:"walk_speed_min,omitempty"`
	StowTimeMean    *float64 `yaml:"stow_time_mean,omitempty"`
	StowTimeStdDev  *float64 `yaml:"stow_time_stdev,omitempty"`
	StowTimeMin     *float64 `yaml:"stow_time_min,omitempty"`
	WindowDelay     *float64 `yaml:"window_delay,omitempty"`
	MiddleDelay     *float64 `yaml:"middle_delay,omitempty"`
	AisleDelay      *float64 `yaml:"aisle_delay,omitempty"`
}

// LoadScenario reads and parses a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	return &sc, nil
}

// Config resolves the scenario into a runnable sweep configuration,
// applying defaults and validating everything eagerly.
func (sc *Scenario) Config() (Config, error) {
	layout, err := sim.NewLayout(sc.Rows, sc.SeatsPerRow)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Layout:  layout,
		Params:  sc.params(),
		Engine:  sim.DefaultEngineConfig(),
		Zones:   sc.Zones,
		Trials:  sc.Trials,
		Workers: sc.Workers,
		Seed:    sc.Seed,
	}
	if cfg.Zones == 0 {
		cfg.Zones = sim.DefaultZones
	}
	if cfg.Trials == 0 {
		cfg.Trials = 10
	}
	if sc.TimeLimit != 0 {
		cfg.Engine.TimeLimit = sc.TimeLimit
	}
	if sc.Step != 0 {
		cfg.Engine.Step = sc.Step
	}
	if sc.Movement != "" {
		mv, err := sim.ParseMovement(sc.Movement)
		if err != nil {
			return Config{}, err
		}
		cfg.Engine.Movement = mv
	}

	if len(sc.Strategies) == 0 {
		cfg.Strategies = sim.Strategies()
	} else {
		for _, name := range sc.Strategies {
			st, err := sim.ParseStrategy(name)
			if err != nil {
				return Config{}, err
			}
			cfg.Strategies = append(cfg.Strategies, st)
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	if err := cfg.Params.Validate(); err != nil {
		return Config{}, err
	}
	if err := cfg.Engine.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// params layers the scenario's overrides on top of the defaults.
func (sc *Scenario) params() sim.PassengerParams {
	p := sim.DefaultPassengerParams()
	spec := sc.Passengers
	if spec == nil {
		return p
	}
	set := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	set(&p.WalkSpeedMean, spec.WalkSpeedMean)
	set(&p.WalkSpeedStdDev, spec.WalkSpeedStdDev)
	set(&p.WalkSpeedMin, spec.WalkSpeedMin)
	set(&p.StowTimeMean, spec.StowTimeMean)
	set(&p.StowTimeStdDev, spec.StowTimeStdDev)
	set(&p.StowTimeMin, spec.StowTimeMin)
	if spec.WindowDelay != nil {
		p.InterferenceDelays[sim.SeatWindow] = *spec.WindowDelay
	}
	if spec.MiddleDelay != nil {
		p.InterferenceDelays[sim.SeatMiddle] = *spec.MiddleDelay
	}
	if spec.AisleDelay != nil {
		p.InterferenceDelays[sim.SeatAisle] = *spec.AisleDelay
	}
	return p
}
