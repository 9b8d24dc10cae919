// runner is an endless runner for the terminal: jump the cacti, duck the
// pterosaurs, and see how far you get before the first hit.
//
// Usage:
//
//	runner play              - Play in the terminal
//	runner sim               - Run a headless session driven by the autopilot
//	runner scores            - Show the run history
//	runner defaults          - Print the default game config
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible runs
//	--db <path>          - Set history database path (default: ~/.arcade/runner.db, "" disables)
//	--log-level <level>  - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-runner/internal/assets"
	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "runner",
	Short: "Endless runner in your terminal",
	Long: `Runner is the classic offline dino game for the terminal.

Available commands:
  play      - Play the game
  sim       - Headless session driven by the autopilot
  scores    - View the run history
  defaults  - Print the default game config

Examples:
  runner play
  runner play --difficulty hard
  runner sim --frames 10000 --seed 42
  runner scores --top`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/runner.db", `Path to run history database ("" disables it)`)
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(defaultsCmd)
}

// newLogger builds the process logger writing to w.
func newLogger(w io.Writer) *log.Logger {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: unknown log level %q, using info\n", flagLogLevel)
		level = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "runner",
		Level:           level,
	})
}

// openStore opens the run history. An empty --db path disables it.
func openStore() (*storage.Store, error) {
	if flagDBPath == "" {
		return nil, nil
	}
	return storage.Open(flagDBPath)
}

// gameFlags are the flags shared by play and sim.
type gameFlags struct {
	config     string
	difficulty string
	sprites    string
}

func (f *gameFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.config, "config", "", "Path to custom game config YAML")
	cmd.Flags().StringVar(&f.difficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	cmd.Flags().StringVar(&f.sprites, "sprites", "", "Path to custom sprite sheet YAML")
}

// load resolves the game config and sprite catalog.
func (f *gameFlags) load() (config.RunnerConfig, *assets.Catalog, error) {
	cfg, err := config.LoadRunner(f.config)
	if err != nil {
		return cfg, nil, err
	}

	if f.difficulty != "" {
		preset := config.ParsePreset(f.difficulty)
		if preset == "" {
			return cfg, nil, fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", f.difficulty)
		}
		config.ApplyRunnerPreset(&cfg, preset)
	}

	cat, err := assets.Load(f.sprites)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, cat, nil
}

// presetName returns the difficulty recorded in the history.
func (f *gameFlags) presetName() string {
	if p := config.ParsePreset(f.difficulty); p != "" {
		return string(p)
	}
	return string(config.DifficultyNormal)
}
