package config

import (
	_ "embed"
)

//go:embed defaults/snakey.yaml
var defaultSnakeyYAML []byte

// DefaultSnakeyConfig returns the default match configuration.
func DefaultSnakeyConfig() SnakeyConfig {
	return SnakeyConfig{
		Grid: GridConfig{
			Width:  20,
			Height: 20,
			Walls:  true,
		},
		Players: PlayersConfig{
			Humans: 1,
			AI:     1,
			Tier:   "generic",
		},
		Food: FoodConfig{
			Min:          1,
			Max:          5,
			ScorePerFood: 25,
			DecayTimers:  6,
		},
		Gameplay: GameplayConfig{
			MoveIntervalMs: 100,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 1000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
			},
		},
	}
}

// DemoSnakeyConfig returns the attract-mode configuration: a single greedy
// AI and no food decay.
func DemoSnakeyConfig() SnakeyConfig {
	cfg := DefaultSnakeyConfig()
	cfg.Players = PlayersConfig{Humans: 0, AI: 1, Tier: "dumb", Names: []string{"Demo"}}
	cfg.Difficulty.Enabled = false
	return cfg
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "flaky", "flaky_demo":
		return defaultSnakeyYAML
	default:
		return nil
	}
}
