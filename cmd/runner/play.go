package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/platform/tui"
)

var (
	playFlags gameFlags
	flagHold  int
	flagLog   string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the game",
	Long: `Start a session in the terminal.

Controls:
  Space/Up/W  - Jump
  Down/S      - Duck (hold)
  R           - Restart (after game over)
  Ctrl+S      - Save a screenshot
  Q/Ctrl+C    - Quit

Difficulty options:
  easy   - Start slower (speed 12)
  normal - The classic start (speed 15)
  hard   - Start fast (speed 20) and speed up twice as much
  fixed  - Never speed up

Examples:
  runner play
  runner play --difficulty easy
  runner play --config ./my-runner.yaml
  runner play --sprites ./my-sprites.yaml --seed 7`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playFlags.register(playCmd)
	playCmd.Flags().IntVar(&flagHold, "hold", 120, "Milliseconds a key stays held after its last repeat")
	playCmd.Flags().StringVar(&flagLog, "log", "~/.arcade/runner.log", `Log file while playing ("" disables logging)`)
}

func runPlay(cmd *cobra.Command, args []string) {
	cfg, cat, err := playFlags.load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// The alternate screen owns the terminal, so logs go to a file.
	logOut, closeLog := openLogFile(flagLog)
	defer closeLog()
	logger := newLogger(logOut)

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	store, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run history: %v\n", err)
		logger.Warn("run history disabled", "err", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(tui.Options{
		Config:  cfg,
		Catalog: cat,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Difficulty: playFlags.presetName(),
		Hold:       msDuration(flagHold),
		Store:      store,
		Logger:     logger,
	})

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// openLogFile opens path for appending. Failures fall back to discarding logs.
func openLogFile(path string) (io.Writer, func()) {
	if path == "" {
		return io.Discard, func() {}
	}
	if path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return io.Discard, func() {}
		}
		path = filepath.Join(home, path[1:])
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		log.Warn("cannot create log directory", "err", err)
		return io.Discard, func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		log.Warn("cannot open log file", "path", path, "err", err)
		return io.Discard, func() {}
	}
	return f, func() { f.Close() }
}

func msDuration(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
