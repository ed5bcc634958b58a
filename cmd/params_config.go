package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	sim "github.com/boarding-sim/boarding-sim/sim"
)

// Define struct for YAML
type ParamsConfig struct {
	Presets map[string]Preset `yaml:"presets"`
}

type Preset struct {
	WalkSpeedMean   float64 `yaml:"walk_speed_mean"`
	WalkSpeedStdDev float64 `yaml:"walk_speed_stdev"`
	WalkSpeedMin    float64 `yaml:"walk_speed_min"`
	StowTimeMean    float64 `yaml:"stow_time_mean"`
	StowTimeStdDev  float64 `yaml:"stow_time_stdev"`
	StowTimeMin     float64 `yaml:"stow_time_min"`
	WindowDelay     float64 `yaml:"window_delay"`
	MiddleDelay     float64 `yaml:"middle_delay"`
	AisleDelay      float64 `yaml:"aisle_delay"`
}

// GetPassengerParams loads a named passenger-parameter preset from a YAML
// presets file. Returns false when the preset does not exist.
func GetPassengerParams(paramsFilePath string, presetName string) (sim.PassengerParams, bool) {
	// Read YAML file
	data, err := os.ReadFile(paramsFilePath)
	if err != nil {
		logrus.Fatalf("unable to read presets file: %v", err)
	}

	// Parse YAML
	var cfg ParamsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logrus.Fatalf("unable to parse presets file: %v", err)
	}

	preset, ok := cfg.Presets[presetName]
	if !ok {
		return sim.PassengerParams{}, false
	}
	logrus.Infof("Using passenger preset %v", presetName)
	return sim.PassengerParams{
		WalkSpeedMean:   preset.WalkSpeedMean,
		WalkSpeedStdDev: preset.WalkSpeedStdDev,
		WalkSpeedMin:    preset.WalkSpeedMin,
		StowTimeMean:    preset.StowTimeMean,
		StowTimeStdDev:  preset.StowTimeStdDev,
		StowTimeMin:     preset.StowTimeMin,
		InterferenceDelays: map[sim.SeatType]float64{
			sim.SeatWindow: preset.WindowDelay,
			sim.SeatMiddle: preset.MiddleDelay,
			sim.SeatAisle:  preset.AisleDelay,
		},
	}, true
}
