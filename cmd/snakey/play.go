package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/flaky-snakey/internal/config"
	"github.com/vovakirdan/flaky-snakey/internal/core"
	"github.com/vovakirdan/flaky-snakey/internal/games/snakey"
	"github.com/vovakirdan/flaky-snakey/internal/platform/tui"
	"github.com/vovakirdan/flaky-snakey/internal/registry"
	"github.com/vovakirdan/flaky-snakey/internal/storage"
)

var (
	flagSetup  bool
	flagHumans int
	flagAI     int
	flagTier   string
	flagNames  []string
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a match",
	Long: `Start a match in the given mode (default: flaky).

Controls:
  Player 1   - W A S D
  Player 2   - Arrow keys (also player 1's when playing alone)
  Player 3   - I J K L
  Player 4   - 8 4 2 6
  P          - Pause
  R          - Restart (after game over)
  B/Esc      - Back (when paused or over)
  Ctrl+S     - Screenshot
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Slow snakes, little rotten food, progression from the start
  normal - Progression from 30%
  hard   - Fast snakes, lots of rotten food, progression from 70%
  fixed  - No progression

Examples:
  snakey play
  snakey play --setup
  snakey play --humans 2 --ai 1 --tier dumb
  snakey play --names ann,bob --humans 2 --ai 0
  snakey play flaky_demo
  snakey play --difficulty hard --config ./arena.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagSetup, "setup", false, "Show the match setup screen first")
	playCmd.Flags().IntVar(&flagHumans, "humans", -1, "Number of human snakes (overrides config)")
	playCmd.Flags().IntVar(&flagAI, "ai", -1, "Number of AI snakes (overrides config)")
	playCmd.Flags().StringVar(&flagTier, "tier", "", "AI tier: generic, dumb, smart (overrides config)")
	playCmd.Flags().StringSliceVar(&flagNames, "names", nil, "Snake names in roster order")
}

// terminalConfig builds the runtime config from the terminal size and the
// global flags.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// matchConfig loads the configured match and applies the command line
// overrides.
func matchConfig() (config.SnakeyConfig, error) {
	cfg, err := config.LoadSnakey(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDifficulty != "" {
		config.ApplySnakeyPreset(&cfg, config.DifficultyPreset(flagDifficulty))
	}
	if flagHumans >= 0 {
		cfg.Players.Humans = flagHumans
	}
	if flagAI >= 0 {
		cfg.Players.AI = flagAI
	}
	if flagTier != "" {
		cfg.Players.Tier = flagTier
	}
	if len(flagNames) > 0 {
		cfg.Players.Names = flagNames
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid match options: %w", err)
	}
	return cfg, nil
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := string(snakey.ModeMatch)
	if len(args) == 1 {
		gameID = args[0]
	}

	// Check if game exists
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown mode %q, run 'snakey list' to see available modes", gameID)
	}

	logger, closeLog := newLogger(true)
	defer closeLog()
	snakey.SetLogger(logger)

	rc := terminalConfig()
	cfg, err := matchConfig()
	if err != nil {
		return err
	}

	if gameID == string(snakey.ModeMatch) && flagSetup {
		chosen, setupErr := tui.RunSetup(cfg, rc)
		if setupErr != nil {
			return setupErr
		}
		// User pressed back or quit
		if chosen == nil {
			return nil
		}
		cfg = *chosen
	}

	// Create game instance
	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}
	if g, ok := game.(*snakey.Game); ok {
		g.UseConfig(cfg)
	}

	// Open match storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open match database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	// Run the game
	runErr := tui.Run(game, store, rc, cfg.Players.Humans, logger)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		return fmt.Errorf("running game: %w", runErr)
	}
	return nil
}
