package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/schelling/internal/config"
	"github.com/vovakirdan/schelling/internal/registry"
	"github.com/vovakirdan/schelling/internal/schelling"
	"github.com/vovakirdan/schelling/internal/storage"
)

// defaultHeadlessTicks bounds a headless run when neither --ticks nor
// max_ticks sets a limit.
const defaultHeadlessTicks = 10000

var (
	flagTicks     int
	flagPrintGrid bool
	flagSave      bool
	flagLogEvery  int
)

var simCmd = &cobra.Command{
	Use:   "sim [scenario]",
	Short: "Run a simulation without the interface",
	Long: `Advance a simulation until it settles or the tick limit is reached,
then print a summary. Useful for scripting and for comparing seeds.

The tick limit is --ticks, otherwise max_ticks from the config, otherwise
10000.

Examples:
  schelling sim classic --seed 7
  schelling sim small --print-grid
  schelling sim crowded --ticks 500 --save
  schelling sim --config ./my-city.yaml --log-every 10 --log-level debug`,
	Args: cobra.MaximumNArgs(1),
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagTicks, "ticks", 0, "Maximum ticks (0 = use config)")
	simCmd.Flags().BoolVar(&flagPrintGrid, "print-grid", false, "Print the final grid")
	simCmd.Flags().BoolVar(&flagSave, "save", false, "Record the run in the database")
	simCmd.Flags().IntVar(&flagLogEvery, "log-every", 0, "Log progress every N ticks (0 = off)")
}

func runSim(_ *cobra.Command, args []string) {
	scenario, cfg, err := resolveScenario(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sim, err := schelling.Initialize(cfg.ToParams())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	limit := tickLimit(cfg)
	logger.Debug("simulation started",
		"scenario", scenario.ID,
		"side", sim.Side(),
		"seed", sim.Params().Seed,
		"limit", limit,
	)

	start := time.Now()
	interrupted := headless(ctx, sim, limit)
	elapsed := time.Since(start)

	if interrupted {
		logger.Warn("interrupted", "tick", sim.Tick())
	}

	st := sim.Stats()
	printSummary(scenario, sim, st, elapsed)

	if flagPrintGrid {
		fmt.Println()
		fmt.Println(sim.Snapshot().String())
	}

	if flagSave {
		saveHeadless(scenario, sim.Params(), st)
	}
}

func tickLimit(cfg config.SimulationConfig) int {
	switch {
	case flagTicks > 0:
		return flagTicks
	case cfg.MaxTicks > 0:
		return cfg.MaxTicks
	default:
		return defaultHeadlessTicks
	}
}

// headless advances sim until it settles, reaches limit ticks or ctx is
// cancelled. It reports whether the run was cut short by ctx.
func headless(ctx context.Context, sim *schelling.Simulation, limit int) bool {
	if sim.Stats().Settled {
		return false
	}
	_, _, err := sim.Run(ctx, limit, func(res schelling.StepResult) {
		if flagLogEvery > 0 && sim.Tick()%uint64(flagLogEvery) == 0 {
			logger.Info("progress",
				"tick", sim.Tick(),
				"disgruntled", res.Disgruntled,
				"moved", res.Moved,
				"skipped", res.Skipped,
				"similarity", fmt.Sprintf("%.3f", sim.Stats().Similarity),
			)
		}
	})
	return err != nil
}

func printSummary(scenario registry.Scenario, sim *schelling.Simulation, st schelling.Stats, elapsed time.Duration) {
	p := sim.Params()
	side := sim.Side()

	outcome := "settled"
	if !st.Settled {
		outcome = "not settled"
	}

	fmt.Printf("Scenario:    %s\n", scenario.ID)
	fmt.Printf("Grid:        %dx%d (%s cells)\n", side, side, humanize.Comma(int64(side*side)))
	fmt.Printf("Seed:        %d\n", p.Seed)
	fmt.Printf("Threshold:   %.2f\n", p.Threshold)
	fmt.Printf("Population:  %s A, %s B, %s empty\n",
		humanize.Comma(int64(st.CountA)), humanize.Comma(int64(st.CountB)), humanize.Comma(int64(st.Empty)))
	fmt.Printf("Ticks:       %s (%s)\n", humanize.Comma(int64(st.Tick)), outcome)
	fmt.Printf("Disgruntled: %s\n", humanize.Comma(int64(st.Disgruntled)))
	fmt.Printf("Like share:  %.1f%%\n", st.Similarity*100)
	fmt.Printf("Elapsed:     %s\n", elapsed.Round(time.Millisecond))
}

func saveHeadless(scenario registry.Scenario, p schelling.Params, st schelling.Stats) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	run, err := store.SaveRun(storage.NewRun(scenario.ID, p, st))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error saving run: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Saved run:   %s\n", run.ID)
}
