package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flaky-snakey/internal/arena"
	"github.com/vovakirdan/flaky-snakey/internal/registry"
	"github.com/vovakirdan/flaky-snakey/internal/storage"
)

var (
	flagScoresLimit int
	flagHumansOnly  bool
	flagRecent      bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores and recent matches",
	Long: `Display the best snake scores for a mode (default: flaky), or the
most recent matches with --recent.

Examples:
  snakey scores
  snakey scores --humans
  snakey scores --recent --limit 20
  snakey scores flaky_sim
  snakey scores --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of rows to show")
	scoresCmd.Flags().BoolVar(&flagHumansOnly, "humans", false, "Only count human snakes")
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "List recent matches instead of scores")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all stored matches of the mode")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := "flaky"
	if len(args) == 1 {
		gameID = args[0]
	}

	// headless runs are stored under their own id and are not registered
	title := "Headless simulations"
	if gameID != simGameID {
		game, err := registry.Create(gameID)
		if err != nil {
			return fmt.Errorf("unknown mode %q, run 'snakey list' to see available modes", gameID)
		}
		title = game.Title()
	}

	// Open match storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening match database: %w", err)
	}
	defer store.Close()

	switch {
	case flagScoresClear:
		if err := store.ClearMatches(gameID); err != nil {
			return err
		}
		fmt.Printf("Cleared matches for %s\n", title)
		return nil
	case flagRecent:
		return printRecent(store, gameID, title)
	}
	return printTopScores(store, gameID, title)
}

func printTopScores(store *storage.Store, gameID, title string) error {
	scores, err := store.TopScores(gameID, flagScoresLimit, flagHumansOnly)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	// Display scores
	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'snakey play' to set the first high score!")
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-12s  %-10s  %s\n", "Rank", "Name", "Score", "Date")
	fmt.Printf("  %-4s  %-12s  %-10s  %s\n", "----", "----", "-----", "----")

	// Print scores
	for i, entry := range scores {
		name := entry.Name
		if !entry.Human {
			name += " (AI)"
		}
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-12s  %-10d  %s\n", i+1, name, entry.Score, dateStr)
	}

	// Show stats
	fmt.Println()
	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Printf("Matches: %d  Draws: %d  Avg score: %.1f  Avg ticks: %.0f\n",
			stats.Matches, stats.Draws, stats.AvgScore, stats.AvgTicks)
	}
	return nil
}

func printRecent(store *storage.Store, gameID, title string) error {
	matches, err := store.RecentMatches(gameID, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("retrieving matches: %w", err)
	}

	fmt.Printf("Recent Matches - %s\n", title)
	fmt.Println()

	if len(matches) == 0 {
		fmt.Println("No matches recorded yet.")
		return nil
	}

	fmt.Printf("  %-16s  %-8s  %-6s  %-7s  %s\n", "Date", "Roster", "Tier", "Ticks", "Result")
	fmt.Printf("  %-16s  %-8s  %-6s  %-7s  %s\n", "----", "------", "----", "-----", "------")
	for _, m := range matches {
		result := "no winner"
		switch {
		case m.WinnerSlot == arena.Draw:
			result = "draw"
		case m.WinnerName != "":
			result = m.WinnerName + " won"
		}
		fmt.Printf("  %-16s  %-8s  %-6s  %-7d  %s\n",
			m.CreatedAt.Format("2006-01-02 15:04"),
			fmt.Sprintf("%dH %dAI", m.Humans, m.AI),
			m.Tier, m.Ticks, result)
	}
	return nil
}
