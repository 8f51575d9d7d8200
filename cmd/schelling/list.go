package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/schelling/internal/registry"
	"github.com/vovakirdan/schelling/internal/schelling"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List built-in scenarios",
	Long:  `Shows every scenario registered in the simulator.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	scenarios := registry.List()

	if len(scenarios) == 0 {
		fmt.Println("No scenarios available.")
		return
	}

	fmt.Println("Available scenarios:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, s := range scenarios {
		if len(s.ID) > maxIDLen {
			maxIDLen = len(s.ID)
		}
	}

	fmt.Printf("  %-*s  %-9s  %-7s  %-14s  %s\n", maxIDLen, "ID", "Grid", "Cells", "A/B/empty", "Threshold")
	fmt.Printf("  %-*s  %-9s  %-7s  %-14s  %s\n", maxIDLen, "--", "----", "-----", "---------", "---------")

	for _, s := range scenarios {
		side := schelling.SideFor(s.Config.Locations)
		d := s.Config.Distribution
		fmt.Printf("  %-*s  %-9s  %-7s  %-14s  %.2f\n",
			maxIDLen, s.ID,
			fmt.Sprintf("%dx%d", side, side),
			humanize.Comma(int64(side*side)),
			fmt.Sprintf("%.2f/%.2f/%.2f", d.TypeA, d.TypeB, d.Empty),
			s.Config.Threshold,
		)
		fmt.Printf("  %-*s  %s\n", maxIDLen, "", s.Description)
	}

	fmt.Println()
	fmt.Println("Run 'schelling run <id>' to watch one.")
}
