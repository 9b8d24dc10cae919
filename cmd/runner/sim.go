package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/platform/tui"
	"github.com/vovakirdan/tui-runner/internal/runner"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

var (
	simFlags   gameFlags
	flagFrames int
	flagLead   float64
	flagShow   bool
	flagSave   bool
	flagCols   int
	flagRows   int
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless session driven by the autopilot",
	Long: `Run the game without a terminal UI. The autopilot jumps cacti and
ducks pterosaurs; lower --lead makes it react later and eventually lose.

The same --seed always produces the same run.

Examples:
  runner sim --seed 42
  runner sim --frames 20000 --difficulty hard
  runner sim --lead 2 --show
  runner sim --lead 2 --save`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simFlags.register(simCmd)
	simCmd.Flags().IntVar(&flagFrames, "frames", 5000, "Maximum frames to run (0 = until the first hit)")
	simCmd.Flags().Float64Var(&flagLead, "lead", 4.5, "Autopilot reaction lead in frames")
	simCmd.Flags().BoolVar(&flagShow, "show", false, "Print the last frame")
	simCmd.Flags().BoolVar(&flagSave, "save", false, "Record the run in the history")
	simCmd.Flags().IntVar(&flagCols, "cols", 110, "Columns of the printed frame")
	simCmd.Flags().IntVar(&flagRows, "rows", 30, "Rows of the printed frame")
}

func runSim(cmd *cobra.Command, args []string) {
	cfg, cat, err := simFlags.load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger := newLogger(os.Stderr)

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	engine, err := runner.NewEngine(cfg, cat, seed, runner.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	pilot := runner.NewAutopilot()
	pilot.Lead = flagLead
	canvas := tui.NewCanvas(core.NewScreen(flagCols, flagRows), cfg.Screen.Width, cfg.Screen.Height)

	started := time.Now()
	collided, err := engine.Run(ctx, pilot, canvas, flagFrames)
	if err != nil {
		logger.Warn("simulation interrupted", "err", err)
	}
	elapsed := time.Since(started)

	if flagShow {
		fmt.Println(canvas.Screen().String())
		fmt.Println()
	}

	world := engine.World()
	fmt.Printf("Seed:       %d\n", seed)
	fmt.Printf("Frames:     %s (%s)\n", humanize.Comma(int64(world.Frame())), elapsed.Round(time.Millisecond))
	fmt.Printf("Obstacles:  %s\n", humanize.Comma(int64(world.Spawned())))
	fmt.Printf("Speed:      %.1f\n", world.Speed())

	if !collided {
		fmt.Printf("Score:      %d (still running)\n", int(world.Score()))
		return
	}

	sum := engine.Summary()
	fmt.Printf("Score:      %d\n", sum.FinalScore)
	fmt.Printf("Hit by:     %s\n", sum.HitBy)

	if flagSave {
		saveSimRun(sum, seed)
	}
}

func saveSimRun(sum runner.Summary, seed int64) {
	store, err := openStore()
	if err != nil || store == nil {
		fmt.Fprintf(os.Stderr, "Warning: run not saved: history unavailable (%v)\n", err)
		return
	}
	defer store.Close()

	rec, err := store.SaveRun(storage.RunRecord{
		Difficulty: simFlags.presetName(),
		Seed:       seed,
		Score:      sum.FinalScore,
		Frames:     sum.Frames,
		FinalSpeed: sum.Speed,
		HitBy:      sum.HitBy.String(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: run not saved: %v\n", err)
		return
	}
	fmt.Printf("Saved:      %s\n", rec.RunID)
}
