// Package config provides YAML-based match configuration loading and
// difficulty management for flaky snakey.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/flaky-snakey/internal/control"
)

// Limits enforced by Validate.
const (
	MinGridSize     = 8
	MaxGridSize     = 40
	MaxPlayers      = 4
	MaxNames        = 4
	MinMoveInterval = 17 * time.Millisecond // just under 60 FPS
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid value")

// SnakeyConfig contains all configuration for one match.
type SnakeyConfig struct {
	Grid       GridConfig       `yaml:"grid"`
	Players    PlayersConfig    `yaml:"players"`
	Food       FoodConfig       `yaml:"food"`
	Gameplay   GameplayConfig   `yaml:"gameplay"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// GridConfig defines the playing field.
type GridConfig struct {
	Width  int  `yaml:"width"`
	Height int  `yaml:"height"`
	Walls  bool `yaml:"walls"` // corner walls
}

// PlayersConfig defines who plays.
type PlayersConfig struct {
	Humans int      `yaml:"humans"`
	AI     int      `yaml:"ai"`
	Tier   string   `yaml:"tier"` // "generic", "dumb" or "smart"
	Names  []string `yaml:"names"`
}

// FoodConfig defines the food spawn policy.
type FoodConfig struct {
	Min          int `yaml:"min"`
	Max          int `yaml:"max"`
	ScorePerFood int `yaml:"score_per_food"`
	// RotIntervalMs of 0 derives the rot time from the grid size.
	RotIntervalMs int `yaml:"rot_interval_ms"`
	DecayTimers   int `yaml:"decay_timers"` // concurrent decay timer budget
}

// GameplayConfig defines the movement cadence.
type GameplayConfig struct {
	MoveIntervalMs int `yaml:"move_interval_ms"`
}

// MoveInterval returns the configured movement interval.
func (c SnakeyConfig) MoveInterval() time.Duration {
	return time.Duration(c.Gameplay.MoveIntervalMs) * time.Millisecond
}

// RotInterval returns the decay time for food. When unset it is long
// enough to cross the grid once in each direction.
func (c SnakeyConfig) RotInterval() time.Duration {
	if c.Food.RotIntervalMs > 0 {
		return time.Duration(c.Food.RotIntervalMs) * time.Millisecond
	}
	return c.MoveInterval() * time.Duration(c.Grid.Width+c.Grid.Height)
}

// Normalize applies the forgiving setup rules: swapped food bounds are
// reordered, a zero score per food becomes 20 and the move interval is
// raised to the 60 FPS floor.
func (c *SnakeyConfig) Normalize() {
	if c.Food.Min > c.Food.Max {
		c.Food.Min, c.Food.Max = c.Food.Max, c.Food.Min
	}
	if c.Food.ScorePerFood == 0 {
		c.Food.ScorePerFood = 20
	}
	if c.MoveInterval() < MinMoveInterval {
		c.Gameplay.MoveIntervalMs = int(MinMoveInterval / time.Millisecond)
	}
	if c.Players.Tier == "" {
		c.Players.Tier = "generic"
	}
}

// Validate reports the first out-of-range value.
func (c SnakeyConfig) Validate() error {
	switch {
	case c.Grid.Width < MinGridSize || c.Grid.Width > MaxGridSize:
		return fmt.Errorf("grid width %d outside [%d, %d]: %w", c.Grid.Width, MinGridSize, MaxGridSize, ErrInvalid)
	case c.Grid.Height < MinGridSize || c.Grid.Height > MaxGridSize:
		return fmt.Errorf("grid height %d outside [%d, %d]: %w", c.Grid.Height, MinGridSize, MaxGridSize, ErrInvalid)
	case c.Players.Humans < 0 || c.Players.Humans > MaxPlayers:
		return fmt.Errorf("humans %d outside [0, %d]: %w", c.Players.Humans, MaxPlayers, ErrInvalid)
	case c.Players.AI < 0 || c.Players.AI > MaxPlayers:
		return fmt.Errorf("ai %d outside [0, %d]: %w", c.Players.AI, MaxPlayers, ErrInvalid)
	case c.Players.Humans+c.Players.AI < 1 || c.Players.Humans+c.Players.AI > MaxPlayers:
		return fmt.Errorf("%d players outside [1, %d]: %w", c.Players.Humans+c.Players.AI, MaxPlayers, ErrInvalid)
	case len(c.Players.Names) > MaxNames:
		return fmt.Errorf("%d names, at most %d: %w", len(c.Players.Names), MaxNames, ErrInvalid)
	case c.Food.Min < 0 || c.Food.Min > c.Food.Max:
		return fmt.Errorf("food bounds [%d, %d]: %w", c.Food.Min, c.Food.Max, ErrInvalid)
	case c.Food.Max > c.Grid.Width*c.Grid.Height:
		return fmt.Errorf("food max %d exceeds grid cells: %w", c.Food.Max, ErrInvalid)
	case c.Food.ScorePerFood < 0:
		return fmt.Errorf("score per food %d: %w", c.Food.ScorePerFood, ErrInvalid)
	case c.Food.RotIntervalMs < 0:
		return fmt.Errorf("rot interval %dms: %w", c.Food.RotIntervalMs, ErrInvalid)
	case c.Food.DecayTimers < 0:
		return fmt.Errorf("decay timers %d: %w", c.Food.DecayTimers, ErrInvalid)
	case c.MoveInterval() < MinMoveInterval:
		return fmt.Errorf("move interval %v below %v: %w", c.MoveInterval(), MinMoveInterval, ErrInvalid)
	}
	if _, err := control.ParseTier(c.Players.Tier); err != nil {
		return fmt.Errorf("%v: %w", err, ErrInvalid)
	}
	return nil
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to speed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
