package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/schelling/internal/core"
	"github.com/vovakirdan/schelling/internal/platform/tui"
	"github.com/vovakirdan/schelling/internal/registry"
	"github.com/vovakirdan/schelling/internal/storage"
)

var runCmd = &cobra.Command{
	Use:   "run [scenario]",
	Short: "Watch a simulation in the terminal",
	Long: `Start the interactive view. With a scenario it starts right away,
otherwise a scenario picker opens. With --config the file is used directly.

Once nobody wants to move (or max_ticks is reached) the run pauses and its
summary is recorded in the run database.

Controls:
  Space/P    - Pause / resume
  N          - Single tick while paused
  R          - Restart with a new seed
  +/-        - Faster / slower
  Esc/B      - Back to scenario picker
  Q/Ctrl+C   - Quit

Tolerance options:
  tolerant - Agents need 30% like neighbors
  moderate - Agents need 50% like neighbors
  strict   - Agents need 70% like neighbors
  fixed    - Keep the scenario's threshold

Examples:
  schelling run
  schelling run classic
  schelling run small --tolerance strict --fps 30
  schelling run --config ./my-city.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRun,
}

func runRun(_ *cobra.Command, args []string) {
	// Get terminal size
	rt := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rt.ScreenW = w
		rt.ScreenH = h
	}
	rt.TickRate = flagFPS
	rt.Seed = flagSeed

	// Open run storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open run database", "path", flagDBPath, "error", err)
		// Continue without storage - the simulation still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	if len(args) > 0 || flagConfig != "" {
		scenario, cfg, err := resolveScenario(args)
		if err != nil {
			logger.Fatal("cannot start simulation", "error", err)
		}
		back, err := tui.Run(scenario, cfg, store, rt)
		if err != nil {
			logger.Fatal("simulation failed", "error", err)
		}
		if !back {
			return
		}
	}

	menuLoop(store, rt)
}

// menuLoop shows the scenario picker until the user quits.
func menuLoop(store *storage.Store, rt core.RuntimeConfig) {
	for {
		result, err := tui.RunMenu(rt)
		if err != nil {
			logger.Fatal("menu failed", "error", err)
		}
		rt = result.Config

		switch {
		case result.Quit:
			return

		case result.WantsRuns:
			back, err := tui.RunRuns(store, "", rt.ScreenW, rt.ScreenH)
			if err != nil {
				logger.Fatal("run history failed", "error", err)
			}
			if !back {
				return
			}

		case result.Scenario != nil:
			if !runSelected(*result.Scenario, store, rt) {
				return
			}
		}
	}
}

// runSelected runs a scenario picked from the menu and reports whether
// the user wants the menu again.
func runSelected(scenario registry.Scenario, store *storage.Store, rt core.RuntimeConfig) bool {
	cfg, err := applyFlags(scenario.Config)
	if err != nil {
		logger.Fatal("cannot start simulation", "scenario", scenario.ID, "error", err)
	}

	back, err := tui.Run(scenario, cfg, store, rt)
	if err != nil {
		logger.Fatal("simulation failed", "scenario", scenario.ID, "error", err)
	}
	return back
}
