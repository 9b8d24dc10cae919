package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-runner/internal/platform/tui"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

var (
	flagTop         bool
	flagLimit       int
	flagInteractive bool
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the run history",
	Long: `Display recorded runs, newest first, or the best runs with --top.

Examples:
  runner scores
  runner scores --top --limit 20
  runner scores -i
  runner scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagTop, "top", false, "Order by score instead of date")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse the history in a table")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded run")
}

func runScores(cmd *cobra.Command, args []string) {
	store, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run history: %v\n", err)
		os.Exit(1)
	}
	if store == nil {
		fmt.Fprintln(os.Stderr, "Error: run history is disabled (--db \"\")")
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.Clear(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Run history cleared.")
		return
	}

	if flagInteractive {
		view := tui.ViewRecent
		if flagTop {
			view = tui.ViewTop
		}
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(store, view, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	var runs []storage.RunRecord
	title := "Recent runs"
	if flagTop {
		title = "Top runs"
		runs, err = store.TopRuns(flagLimit)
	} else {
		runs, err = store.RecentRuns(flagLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'runner play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-8s  %-8s  %-6s  %-10s  %s\n", "#", "Score", "Frames", "Speed", "Hit by", "When")
	fmt.Printf("  %-4s  %-8s  %-8s  %-6s  %-10s  %s\n", "--", "-----", "------", "-----", "------", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-8s  %-8s  %-6.1f  %-10s  %s\n",
			i+1, humanize.Comma(int64(r.Score)), humanize.Comma(int64(r.Frames)),
			r.FinalSpeed, r.HitBy, humanize.Time(r.CreatedAt))
	}

	stats, err := store.Stats()
	if err == nil && stats.Runs > 0 {
		fmt.Println()
		fmt.Printf("Best: %d  |  Runs: %s  |  Average: %.0f  |  Last played %s\n",
			stats.HighScore, humanize.Comma(int64(stats.Runs)), stats.AvgScore, humanize.Time(stats.LastPlayed))
	}
}
