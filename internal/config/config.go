// Package config provides YAML-based simulation configuration loading and
// tolerance presets for the schelling host.
package config

import (
	"fmt"

	"github.com/vovakirdan/schelling/internal/schelling"
)

// SimulationConfig contains everything needed to start a simulation.
type SimulationConfig struct {
	Locations    int                `yaml:"locations"`
	Distribution DistributionConfig `yaml:"distribution"`
	Threshold    float64            `yaml:"threshold"`
	Seed         int64              `yaml:"seed"`      // 0 = time-based
	TickRate     int                `yaml:"tick_rate"` // ticks per second in the TUI
	MaxTicks     int                `yaml:"max_ticks"` // 0 = run until settled
}

// DistributionConfig defines the population shares.
type DistributionConfig struct {
	TypeA float64 `yaml:"type_a"`
	TypeB float64 `yaml:"type_b"`
	Empty float64 `yaml:"empty"`
}

// Validate checks the configuration against the simulation's rules.
// Errors wrap the schelling sentinels so callers can use errors.Is.
func (c SimulationConfig) Validate() error {
	if err := c.ToParams().Validate(); err != nil {
		return err
	}
	if c.TickRate < 0 {
		return fmt.Errorf("tick_rate must not be negative, got %d", c.TickRate)
	}
	if c.MaxTicks < 0 {
		return fmt.Errorf("max_ticks must not be negative, got %d", c.MaxTicks)
	}
	return nil
}

// ToParams converts the config into simulation parameters.
func (c SimulationConfig) ToParams() schelling.Params {
	return schelling.Params{
		Locations: c.Locations,
		Distribution: schelling.Distribution{
			A:     c.Distribution.TypeA,
			B:     c.Distribution.TypeB,
			Empty: c.Distribution.Empty,
		},
		Threshold: c.Threshold,
		Seed:      c.Seed,
	}
}

// TolerancePreset represents a named similarity threshold.
type TolerancePreset string

const (
	ToleranceTolerant TolerancePreset = "tolerant"
	ToleranceModerate TolerancePreset = "moderate"
	ToleranceStrict   TolerancePreset = "strict"
	ToleranceFixed    TolerancePreset = "fixed"
)

// ThresholdForPreset returns the threshold for a tolerance preset.
// The second result is false for fixed or unknown presets.
func ThresholdForPreset(preset TolerancePreset) (float64, bool) {
	switch preset {
	case ToleranceTolerant:
		return 0.3, true
	case ToleranceModerate:
		return 0.5, true
	case ToleranceStrict:
		return 0.7, true
	default:
		return 0, false
	}
}

// ParseTolerance validates a preset name from the command line.
func ParseTolerance(name string) (TolerancePreset, error) {
	switch p := TolerancePreset(name); p {
	case ToleranceTolerant, ToleranceModerate, ToleranceStrict, ToleranceFixed:
		return p, nil
	default:
		return "", fmt.Errorf("unknown tolerance %q (want tolerant, moderate, strict or fixed)", name)
	}
}

// ApplyTolerancePreset modifies the threshold based on a preset.
// The fixed preset keeps whatever the config file says.
func ApplyTolerancePreset(cfg *SimulationConfig, preset TolerancePreset) {
	if th, ok := ThresholdForPreset(preset); ok {
		cfg.Threshold = th
	}
}
