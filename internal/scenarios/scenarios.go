// Package scenarios registers the built-in simulation scenarios.
// Import it for side effects:
//
//	import _ "github.com/vovakirdan/schelling/internal/scenarios"
package scenarios

import (
	"github.com/vovakirdan/schelling/internal/config"
	"github.com/vovakirdan/schelling/internal/registry"
)

func init() {
	registry.Register(registry.Scenario{
		ID:          "classic",
		Title:       "Classic",
		Description: "256x256 city, half empty, agents want 70% like neighbors",
		Config:      config.DefaultSimulationConfig(),
	})

	registry.Register(registry.Scenario{
		ID:          "small",
		Title:       "Small Town",
		Description: "20x20 grid that settles in a few dozen ticks",
		Config:      build(400, 0.25, 0.25, 0.50, 0.5),
	})

	registry.Register(registry.Scenario{
		ID:          "crowded",
		Title:       "Crowded",
		Description: "100x100 with only 10% vacancies, movers often find no room",
		Config:      build(10000, 0.45, 0.45, 0.10, 0.5),
	})

	registry.Register(registry.Scenario{
		ID:          "tolerant",
		Title:       "Tolerant",
		Description: "50x50 where a 30% like share is enough, yet clusters still form",
		Config:      build(2500, 0.35, 0.35, 0.30, 0.3),
	})
}

func build(locations int, a, b, empty, threshold float64) config.SimulationConfig {
	cfg := config.DefaultSimulationConfig()
	cfg.Locations = locations
	cfg.Distribution = config.DistributionConfig{TypeA: a, TypeB: b, Empty: empty}
	cfg.Threshold = threshold
	return cfg
}
