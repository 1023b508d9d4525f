package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/flaky-snakey/internal/games/snakey"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Watch an AI snake play",
	Long: `Start the attract-mode demo: one AI snake, no rotten food, restarting
two seconds after every game over. Demo matches are never recorded.

Examples:
  snakey demo
  snakey demo --seed 42`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runPlay(cmd, []string{string(snakey.ModeDemo)})
	},
}
