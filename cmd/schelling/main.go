// schelling runs Schelling's segregation model in the terminal.
//
// Usage:
//
//	schelling list              - List built-in scenarios
//	schelling run [scenario]    - Watch a simulation (menu if no scenario)
//	schelling sim [scenario]    - Run headless and print a summary
//	schelling runs [scenario]   - Show recorded runs
//	schelling serve             - Start SSH server for remote viewing
//	schelling config            - Print the default config
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: from config)
//	--seed <value>        - Set RNG seed for reproducible runs
//	--tolerance <preset>  - tolerant, moderate, strict or fixed
//	--config <path>       - Custom simulation config YAML
//	--db <path>           - Set database path (default: ~/.schelling/runs.db)
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/schelling/internal/config"
	"github.com/vovakirdan/schelling/internal/registry"

	// Import scenarios to register them
	_ "github.com/vovakirdan/schelling/internal/scenarios"
)

// customScenario is the ID recorded for runs that use a config file
// instead of a registered scenario.
const customScenario = "custom"

var (
	// Global flags
	flagFPS       int
	flagSeed      int64
	flagDBPath    string
	flagConfig    string
	flagTolerance string
	flagLogLevel  string

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "schelling",
	})
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "schelling",
	Short: "Schelling's segregation model in your terminal",
	Long: `Two kinds of agents live on a square grid. Each tick every agent whose
share of like neighbors is below the threshold moves to a random empty
cell. Even mild preferences produce strongly segregated neighborhoods.

Available commands:
  list     - Show built-in scenarios
  run      - Watch a simulation in the terminal
  sim      - Run headless and print a summary
  runs     - Show recorded runs
  serve    - Start SSH server for remote viewing
  config   - Print the default config

Examples:
  schelling list
  schelling run classic
  schelling run small --tolerance strict
  schelling sim crowded --seed 42 --save
  schelling runs --table
  schelling serve --ssh :2222`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level: %w", err)
		}
		logger.SetLevel(level)
		return nil
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (0 = use config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.schelling/runs.db", "Path to run database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom simulation config YAML")
	rootCmd.PersistentFlags().StringVar(&flagTolerance, "tolerance", "", "Tolerance preset: tolerant, moderate, strict, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// resolveScenario picks the starting configuration for a command.
// A scenario argument selects a registered scenario; without one the
// config file search order applies. Global flags override either.
func resolveScenario(args []string) (registry.Scenario, config.SimulationConfig, error) {
	var scenario registry.Scenario

	if len(args) > 0 {
		if flagConfig != "" {
			return scenario, config.SimulationConfig{}, fmt.Errorf("--config cannot be combined with a scenario")
		}
		s, err := registry.Get(args[0])
		if err != nil {
			return scenario, config.SimulationConfig{}, fmt.Errorf("%w (run 'schelling list' to see scenarios)", err)
		}
		scenario = s
	} else {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return scenario, cfg, err
		}
		scenario = registry.Scenario{
			ID:          customScenario,
			Title:       "Custom",
			Description: "Loaded from configuration",
			Config:      cfg,
		}
	}

	cfg, err := applyFlags(scenario.Config)
	return scenario, cfg, err
}

// applyFlags layers the global flags over a configuration.
func applyFlags(cfg config.SimulationConfig) (config.SimulationConfig, error) {
	if flagTolerance != "" {
		preset, err := config.ParseTolerance(flagTolerance)
		if err != nil {
			return cfg, err
		}
		config.ApplyTolerancePreset(&cfg, preset)
	}
	if flagSeed != 0 {
		cfg.Seed = flagSeed
	}
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
