// Package registry provides a global registry of named simulation scenarios.
// Scenarios register themselves in init() functions, allowing the CLI and
// the SSH server to discover them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/schelling/internal/config"
)

// Scenario is a named, ready-to-run simulation configuration.
type Scenario struct {
	// ID is a unique identifier used on the command line (e.g., "classic").
	ID string

	// Title is a human-readable name for display.
	Title string

	// Description is a one-line summary shown by the list command.
	Description string

	// Config holds the parameters the scenario starts from.
	// CLI flags may still override the seed, threshold and tick rate.
	Config config.SimulationConfig
}

var (
	scenarios = make(map[string]Scenario)
	mu        sync.RWMutex
)

// Register adds a scenario to the registry.
// Typically called from an init() function.
// Panics if a scenario with the same ID is already registered or its
// configuration is invalid.
func Register(s Scenario) {
	mu.Lock()
	defer mu.Unlock()

	if s.ID == "" {
		panic("registry: scenario without ID")
	}
	if _, exists := scenarios[s.ID]; exists {
		panic(fmt.Sprintf("registry: scenario %q already registered", s.ID))
	}
	if err := s.Config.Validate(); err != nil {
		panic(fmt.Sprintf("registry: scenario %q: %v", s.ID, err))
	}

	scenarios[s.ID] = s
}

// List returns all registered scenarios, sorted by ID.
func List() []Scenario {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Scenario, 0, len(scenarios))
	for _, s := range scenarios {
		result = append(result, s)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Get looks up a scenario by its ID.
// Returns an error if the ID is not registered.
func Get(id string) (Scenario, error) {
	mu.RLock()
	defer mu.RUnlock()

	s, ok := scenarios[id]
	if !ok {
		return Scenario{}, fmt.Errorf("registry: unknown scenario %q", id)
	}

	return s, nil
}

// Exists checks if a scenario with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := scenarios[id]
	return ok
}
