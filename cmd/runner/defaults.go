package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-runner/internal/config"
)

var defaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Print the default game config",
	Long: `Print the built-in game config as YAML. Save it to
~/.arcade/configs/runner.yaml or ./configs/runner.yaml and edit it, or
pass it to play and sim with --config.

Example:
  runner defaults > ~/.arcade/configs/runner.yaml`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if _, err := os.Stdout.Write(config.DefaultYAML()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}
