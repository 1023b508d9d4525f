// snakey is a multi-agent Snake arena for the terminal: up to four snakes,
// human or AI, on a wrapping grid with decaying food.
//
// Usage:
//
//	snakey list              - List available modes
//	snakey play [mode]       - Play a match (default: flaky)
//	snakey demo              - Watch the AI demo
//	snakey menu              - Start menu to pick modes interactively
//	snakey sim               - Run headless AI matches
//	snakey serve             - Start SSH server for remote play
//	snakey scores            - Show high scores and recent matches
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.snakey/matches.db)
//	--config <path>       - Match config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-file <path>     - Write logs to a file
//	--verbose             - Debug logging
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/flaky-snakey/internal/config"
	"github.com/vovakirdan/flaky-snakey/internal/games/snakey"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogFile    string
	flagVerbose    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snakey",
	Short: "Flaky Snakey - multi-snake arena in your terminal",
	Long: `Flaky Snakey pits up to four snakes, human or AI, against each other
on a wrapping grid. Food grows snakes, rotten food shrinks them and
crashed snakes flake away into obstacles.

Available commands:
  list     - Show all available modes
  play     - Play a match directly
  demo     - Watch the AI demo
  menu     - Interactive mode picker menu
  sim      - Run headless AI matches
  serve    - Start SSH server for remote play
  scores   - View high scores and recent matches

Examples:
  snakey play
  snakey play --humans 2 --ai 2 --tier smart
  snakey menu
  snakey sim --matches 20 --ai 4
  snakey serve --ssh :2222
  snakey scores --recent`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if flagDifficulty != "" && !validPreset(flagDifficulty) {
			return fmt.Errorf("unknown difficulty %q (easy, normal, hard, fixed)", flagDifficulty)
		}
		snakey.SetConfigPath(flagConfig)
		snakey.SetDifficultyPreset(flagDifficulty)
		return nil
	},
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.snakey/matches.db", "Path to match database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom match config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

func validPreset(p string) bool {
	switch config.DifficultyPreset(p) {
	case config.DifficultyEasy, config.DifficultyNormal, config.DifficultyHard, config.DifficultyFixed:
		return true
	}
	return false
}

// newLogger builds the command logger. Full-screen commands pass
// interactive so that output never lands on the terminal they draw on;
// without --log-file their logs are discarded.
func newLogger(interactive bool) (*log.Logger, func()) {
	var (
		w       io.Writer = os.Stderr
		closeFn           = func() {}
	)
	if flagLogFile != "" {
		if err := os.MkdirAll(filepath.Dir(flagLogFile), 0o755); err == nil {
			if f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
				w = f
				closeFn = func() { f.Close() }
			}
		}
	}
	if interactive && w == io.Writer(os.Stderr) {
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "snakey",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, closeFn
}
