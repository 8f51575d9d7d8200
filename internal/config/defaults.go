package config

import (
	_ "embed"
)

//go:embed defaults/schelling.yaml
var defaultSimulationYAML []byte

// DefaultSimulationConfig returns the hard-coded default configuration.
// It mirrors defaults/schelling.yaml and is used if the embed cannot be parsed.
func DefaultSimulationConfig() SimulationConfig {
	return SimulationConfig{
		Locations: 65536,
		Distribution: DistributionConfig{
			TypeA: 0.25,
			TypeB: 0.25,
			Empty: 0.50,
		},
		Threshold: 0.7,
		Seed:      0,
		TickRate:  10,
		MaxTicks:  0,
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultSimulationYAML
}
