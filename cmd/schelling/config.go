package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/schelling/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default simulation config",
	Long: `Print the built-in simulation config as YAML. Save it as
~/.schelling/configs/schelling.yaml or ./configs/schelling.yaml to change
the defaults, or pass it to any command with --config.

Example:
  schelling config > ./configs/schelling.yaml`,
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Print(string(config.DefaultYAML()))
	},
}
