package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-flappy/internal/highscore"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresPlain bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the score history",
	Long: `Display the best recorded games.

On a terminal the history opens as an interactive table; use --plain
for text output.

Examples:
  flappy scores
  flappy scores --plain --limit 5
  flappy scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to print with --plain")
	scoresCmd.Flags().BoolVar(&flagScoresPlain, "plain", false, "Print as text instead of the interactive table")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the score history (the high score is kept)")
}

func runScores(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening scores database: %w", err)
	}
	defer store.Close() //nolint:errcheck // Read-only use

	if flagScoresClear {
		if err := store.ClearScores(); err != nil {
			return fmt.Errorf("error clearing scores: %w", err)
		}
		fmt.Println("Score history cleared.")
		return nil
	}

	if !flagScoresPlain && term.IsTerminal(int(os.Stdout.Fd())) {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(store, width, height)
	}

	scores, err := store.TopScores(flagScoresLimit)
	if err != nil {
		return fmt.Errorf("error retrieving scores: %w", err)
	}

	fmt.Println("High Scores - Flappy Bird")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'flappy play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-16s  %s\n", "Rank", "Score", "Player", "When")
	fmt.Printf("  %-4s  %-8s  %-16s  %s\n", "----", "-----", "------", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-8s  %-16s  %s\n", i+1, humanize.Comma(int64(entry.Score)), entry.Player, humanize.Time(entry.CreatedAt))
	}

	fmt.Println()
	if v, ok, err := store.Get(highscore.Key); err == nil && ok {
		if best, convErr := strconv.Atoi(v); convErr == nil {
			fmt.Printf("Best: %s\n", humanize.Comma(int64(best)))
		}
	}
	if stats, err := store.GetStats(); err == nil && stats.GamesCount > 0 {
		fmt.Printf("Games: %s, average %.1f\n", humanize.Comma(int64(stats.GamesCount)), stats.AvgScore)
	}
	return nil
}
