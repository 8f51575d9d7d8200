package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/schelling/internal/core"
	"github.com/vovakirdan/schelling/internal/platform/tui"
	"github.com/vovakirdan/schelling/internal/registry"
	"github.com/vovakirdan/schelling/internal/storage"
)

var (
	flagRunsLimit int
	flagRunsTable bool
	flagRunsStats bool
	flagRunsClear bool
	flagRunsID    string
)

var runsCmd = &cobra.Command{
	Use:   "runs [scenario]",
	Short: "Show recorded runs",
	Long: `Show runs recorded in the database. Finished interactive runs are
recorded automatically, headless runs with 'sim --save'.

Examples:
  schelling runs                 # Latest runs across all scenarios
  schelling runs classic         # Latest runs of one scenario
  schelling runs --stats         # Per-scenario averages
  schelling runs --table         # Interactive table
  schelling runs small --clear   # Delete runs of one scenario
  schelling runs --id 3f2a...    # Details of one run`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 20, "Number of runs to show")
	runsCmd.Flags().BoolVar(&flagRunsTable, "table", false, "Browse runs in an interactive table")
	runsCmd.Flags().BoolVar(&flagRunsStats, "stats", false, "Show per-scenario statistics")
	runsCmd.Flags().BoolVar(&flagRunsClear, "clear", false, "Delete recorded runs")
	runsCmd.Flags().StringVar(&flagRunsID, "id", "", "Show one run by its full ID")
}

func runRuns(_ *cobra.Command, args []string) {
	scenario := ""
	if len(args) > 0 {
		scenario = args[0]
		if !registry.Exists(scenario) && scenario != customScenario {
			fmt.Fprintf(os.Stderr, "Unknown scenario: %s\n", scenario)
			fmt.Fprintln(os.Stderr, "Run 'schelling list' to see available scenarios.")
			os.Exit(1)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagRunsID != "":
		printRun(store, flagRunsID)
	case flagRunsClear:
		clearRuns(store, scenario)
	case flagRunsStats:
		printStats(store)
	case flagRunsTable:
		def := core.DefaultConfig()
		width, height := def.ScreenW, def.ScreenH
		if w, h, sizeErr := term.GetSize(int(os.Stdout.Fd())); sizeErr == nil {
			width, height = w, h
		}
		if _, err := tui.RunRuns(store, scenario, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		printRuns(store, scenario)
	}
}

func printRuns(store *storage.Store, scenario string) {
	var (
		runs []storage.Run
		err  error
	)
	if scenario == "" {
		runs, err = store.RecentRuns(flagRunsLimit)
	} else {
		runs, err = store.RunsByScenario(scenario, flagRunsLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading runs: %v\n", err)
		os.Exit(1)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	fmt.Printf("  %-8s  %-10s  %8s  %-7s  %6s  %s\n", "Run", "Scenario", "Ticks", "Settled", "Like", "When")
	fmt.Printf("  %-8s  %-10s  %8s  %-7s  %6s  %s\n", "---", "--------", "-----", "-------", "----", "----")
	for _, r := range runs {
		settled := "no"
		if r.Settled {
			settled = "yes"
		}
		fmt.Printf("  %-8s  %-10s  %8s  %-7s  %5.1f%%  %s\n",
			shortID(r.ID),
			r.Scenario,
			humanize.Comma(int64(r.Ticks)),
			settled,
			r.Similarity*100,
			humanize.Time(r.CreatedAt),
		)
	}
}

func printStats(store *storage.Store) {
	stats, err := store.ScenarioStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading statistics: %v\n", err)
		os.Exit(1)
	}
	if len(stats) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	fmt.Printf("  %-10s  %6s  %7s  %9s  %8s  %8s\n", "Scenario", "Runs", "Settled", "Avg ticks", "Avg like", "Best")
	fmt.Printf("  %-10s  %6s  %7s  %9s  %8s  %8s\n", "--------", "----", "-------", "---------", "--------", "----")
	for _, s := range stats {
		fmt.Printf("  %-10s  %6s  %7s  %9.1f  %7.1f%%  %7.1f%%\n",
			s.Scenario,
			humanize.Comma(int64(s.Runs)),
			humanize.Comma(int64(s.Settled)),
			s.AvgTicks,
			s.AvgSimilarity*100,
			s.BestSimilarity*100,
		)
	}
}

func clearRuns(store *storage.Store, scenario string) {
	n, err := store.ClearRuns(scenario)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error clearing runs: %v\n", err)
		os.Exit(1)
	}
	what := "all scenarios"
	if scenario != "" {
		what = scenario
	}
	fmt.Printf("Deleted %s runs (%s).\n", humanize.Comma(n), what)
}

func printRun(store *storage.Store, id string) {
	r, err := store.RunByID(id)
	if errors.Is(err, storage.ErrRunNotFound) {
		fmt.Fprintf(os.Stderr, "No run with ID %s\n", id)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading run: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Run:          %s\n", r.ID)
	fmt.Printf("Scenario:     %s\n", r.Scenario)
	fmt.Printf("Seed:         %d\n", r.Seed)
	fmt.Printf("Locations:    %s\n", humanize.Comma(int64(r.Locations)))
	fmt.Printf("Distribution: %.2f A, %.2f B, %.2f empty\n", r.DistA, r.DistB, r.DistEmpty)
	fmt.Printf("Threshold:    %.2f\n", r.Threshold)
	fmt.Printf("Ticks:        %s\n", humanize.Comma(int64(r.Ticks)))
	fmt.Printf("Settled:      %t\n", r.Settled)
	fmt.Printf("Like share:   %.1f%%\n", r.Similarity*100)
	fmt.Printf("Recorded:     %s (%s)\n", r.CreatedAt.Format("2006-01-02 15:04:05"), humanize.Time(r.CreatedAt))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
