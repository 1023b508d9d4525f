package main

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flaky-snakey/internal/arena"
	"github.com/vovakirdan/flaky-snakey/internal/games/snakey"
	"github.com/vovakirdan/flaky-snakey/internal/storage"
)

// simGameID is the storage id for headless matches.
const simGameID = "flaky_sim"

var (
	flagSimMatches  int
	flagSimAI       int
	flagSimTier     string
	flagSimMaxTicks uint64
	flagSimSave     bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run headless AI matches",
	Long: `Play AI-only matches without a screen and report the winners.

Each match uses --seed plus its index as seed, so a run is
reproducible. Matches still running after --max-ticks are stopped and
counted as unfinished.

Examples:
  snakey sim
  snakey sim --matches 100 --ai 4 --tier smart
  snakey sim --seed 42 --save
  snakey sim --config ./arena.yaml -v`,
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimMatches, "matches", 10, "Number of matches to play")
	simCmd.Flags().IntVar(&flagSimAI, "ai", 4, "Number of AI snakes")
	simCmd.Flags().StringVar(&flagSimTier, "tier", "", "AI tier: generic, dumb, smart (overrides config)")
	simCmd.Flags().Uint64Var(&flagSimMaxTicks, "max-ticks", 20000, "Stop a match after this many movement ticks")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Store results in the match database")
}

func runSim(_ *cobra.Command, _ []string) error {
	logger, closeLog := newLogger(false)
	defer closeLog()

	cfg, err := matchConfig()
	if err != nil {
		return err
	}
	cfg.Players.Humans = 0
	cfg.Players.AI = flagSimAI
	if flagSimTier != "" {
		cfg.Players.Tier = flagSimTier
	}

	var store *storage.Store
	if flagSimSave {
		if store, err = storage.Open(flagDBPath); err != nil {
			return fmt.Errorf("opening match database: %w", err)
		}
		defer store.Close()
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	wins := make(map[string]int)
	draws, unfinished := 0, 0
	var ticks uint64
	start := time.Now()

	for i := 0; i < flagSimMatches; i++ {
		r, over, err := snakey.RunHeadless(cfg, seed+int64(i), flagSimMaxTicks, logger)
		if err != nil {
			return err
		}
		ticks += r.Ticks

		switch {
		case !over:
			unfinished++
			logger.Warn("match unfinished", "match", i, "ticks", r.Ticks)
		case r.Winner == arena.Draw:
			draws++
			logger.Info("match drawn", "match", i, "ticks", r.Ticks)
		default:
			wins[r.WinnerName()]++
			logger.Info("match won", "match", i, "winner", r.WinnerName(), "ticks", r.Ticks)
		}

		if store != nil && over {
			if _, err := store.SaveMatch(simGameID, r); err != nil {
				logger.Error("could not save match", "id", r.ID, "error", err)
			}
		}
	}

	fmt.Fprintf(os.Stdout, "%d matches in %v (seed %d)\n", flagSimMatches, time.Since(start).Round(time.Millisecond), seed)
	names := make([]string, 0, len(wins))
	for name := range wins {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(os.Stdout, "  %-12s %d wins\n", name, wins[name])
	}
	fmt.Fprintf(os.Stdout, "  %-12s %d\n", "draws", draws)
	if unfinished > 0 {
		fmt.Fprintf(os.Stdout, "  %-12s %d\n", "unfinished", unfinished)
	}
	if flagSimMatches > 0 {
		fmt.Fprintf(os.Stdout, "  avg ticks    %.0f\n", float64(ticks)/float64(flagSimMatches))
	}
	return nil
}
