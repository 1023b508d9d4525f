package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flaky-snakey/internal/games/snakey"
	"github.com/vovakirdan/flaky-snakey/internal/platform/tui"
	"github.com/vovakirdan/flaky-snakey/internal/registry"
	"github.com/vovakirdan/flaky-snakey/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a mode picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a mode. A match
opens the setup screen first. After a match ends, you return to the
menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Left/Right   - Change a setup value
  Enter/Space  - Select
  Tab          - Scoreboard
  Q            - Quit

Examples:
  snakey menu
  snakey menu --fps 30
  snakey menu --db ./matches.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	logger, closeLog := newLogger(true)
	defer closeLog()
	snakey.SetLogger(logger)

	// Open match storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open match database: %v\n", err)
		store = nil
	}
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	cfg := terminalConfig()
	match, err := matchConfig()
	if err != nil {
		return err
	}

	// Menu loop
	for {
		// Show menu and get selection
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}

		// Update config with any size changes
		cfg = menuResult.Config

		// Check if user quit
		if menuResult.Quit {
			return nil
		}

		// Check if user wants scoreboard
		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, string(snakey.ModeMatch), cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			return nil // User quit from scoreboard
		}

		gameID := menuResult.GameID
		if gameID == "" {
			return nil
		}

		if gameID == string(snakey.ModeMatch) {
			chosen, setupErr := tui.RunSetup(match, cfg)
			if setupErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", setupErr)
				continue
			}
			// User pressed back or quit
			if chosen == nil {
				continue
			}
			match = *chosen
		}

		// Create game instance
		game, err := registry.Create(gameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}
		if g, ok := game.(*snakey.Game); ok {
			g.UseConfig(match)
		}

		// Update seed for each game
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		// Run the game
		if err := tui.Run(game, store, cfg, match.Players.Humans, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}

		// Loop back to menu
	}
}
