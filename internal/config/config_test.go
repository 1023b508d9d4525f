package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultSnakeyConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultSnakeyConfig() invalid: %v", err)
	}
	if err := DemoSnakeyConfig().Validate(); err != nil {
		t.Errorf("DemoSnakeyConfig() invalid: %v", err)
	}
}

func TestLoadSnakeyCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snakey.yaml")
	data := []byte(`
grid:
  width: 30
  height: 12
players:
  humans: 2
  ai: 2
  tier: smart
  names: [ann, bob]
food:
  min: 6
  max: 2
  score_per_food: 0
gameplay:
  move_interval_ms: 5
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadSnakey(path)
	if err != nil {
		t.Fatalf("LoadSnakey() failed: %v", err)
	}

	if cfg.Grid.Width != 30 || cfg.Grid.Height != 12 {
		t.Errorf("grid = %dx%d, expected 30x12", cfg.Grid.Width, cfg.Grid.Height)
	}
	if cfg.Players.Humans != 2 || cfg.Players.AI != 2 || cfg.Players.Tier != "smart" {
		t.Errorf("players = %+v", cfg.Players)
	}
	if cfg.Food.Min != 2 || cfg.Food.Max != 6 {
		t.Errorf("food bounds = [%d, %d], expected swapped to [2, 6]", cfg.Food.Min, cfg.Food.Max)
	}
	if cfg.Food.ScorePerFood != 20 {
		t.Errorf("score per food = %d, expected 20", cfg.Food.ScorePerFood)
	}
	if cfg.MoveInterval() != MinMoveInterval {
		t.Errorf("move interval = %v, expected floor %v", cfg.MoveInterval(), MinMoveInterval)
	}
	// keys absent from the file keep their defaults
	if cfg.Food.DecayTimers != 6 || !cfg.Grid.Walls {
		t.Errorf("defaults lost: decay timers %d walls %v", cfg.Food.DecayTimers, cfg.Grid.Walls)
	}
}

func TestLoadSnakeyErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadSnakey(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom file should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte("grid: [not, a, map"), 0o644)
	if _, err := LoadSnakey(bad); err == nil {
		t.Error("malformed YAML should fail")
	}

	small := filepath.Join(dir, "small.yaml")
	os.WriteFile(small, []byte("grid:\n  width: 4\n"), 0o644)
	if _, err := LoadSnakey(small); !errors.Is(err, ErrInvalid) {
		t.Errorf("tiny grid error = %v, expected ErrInvalid", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*SnakeyConfig)
	}{
		{"grid too wide", func(c *SnakeyConfig) { c.Grid.Width = 41 }},
		{"grid too short", func(c *SnakeyConfig) { c.Grid.Height = 7 }},
		{"negative humans", func(c *SnakeyConfig) { c.Players.Humans = -1 }},
		{"no players", func(c *SnakeyConfig) { c.Players.Humans, c.Players.AI = 0, 0 }},
		{"too many players", func(c *SnakeyConfig) { c.Players.Humans, c.Players.AI = 3, 2 }},
		{"too many names", func(c *SnakeyConfig) { c.Players.Names = []string{"a", "b", "c", "d", "e"} }},
		{"unknown tier", func(c *SnakeyConfig) { c.Players.Tier = "genius" }},
		{"negative food", func(c *SnakeyConfig) { c.Food.Min = -1 }},
		{"food exceeds grid", func(c *SnakeyConfig) { c.Food.Max = 401 }},
		{"negative rot", func(c *SnakeyConfig) { c.Food.RotIntervalMs = -5 }},
		{"fast interval", func(c *SnakeyConfig) { c.Gameplay.MoveIntervalMs = 10 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultSnakeyConfig()
			tc.modify(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, expected ErrInvalid", err)
			}
		})
	}
}

func TestRotInterval(t *testing.T) {
	cfg := DefaultSnakeyConfig()
	if got := cfg.RotInterval(); got != 100*time.Millisecond*40 {
		t.Errorf("derived RotInterval() = %v, expected 4s", got)
	}
	cfg.Food.RotIntervalMs = 1500
	if got := cfg.RotInterval(); got != 1500*time.Millisecond {
		t.Errorf("RotInterval() = %v, expected 1.5s", got)
	}
}

func TestApplySnakeyPreset(t *testing.T) {
	cfg := DefaultSnakeyConfig()
	ApplySnakeyPreset(&cfg, DifficultyHard)
	if !cfg.Difficulty.Enabled || cfg.Difficulty.InitialLevel != 0.7 {
		t.Errorf("hard difficulty = %+v", cfg.Difficulty)
	}
	if cfg.Gameplay.MoveIntervalMs != 70 {
		t.Errorf("hard move interval = %d, expected 70", cfg.Gameplay.MoveIntervalMs)
	}

	ApplySnakeyPreset(&cfg, DifficultyFixed)
	if cfg.Difficulty.Enabled {
		t.Error("fixed preset should disable progression")
	}
	if !IsFixedPreset(DifficultyFixed) || IsFixedPreset(DifficultyEasy) {
		t.Error("IsFixedPreset mismatch")
	}
}

func TestDifficultyMoveInterval(t *testing.T) {
	base := 100 * time.Millisecond
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "score", MaxAt: 100},
		Scaling:     ScalingConfig{SpeedMultiplier: 1.0},
	})

	if got := d.MoveInterval(base, 0, 0); got != base {
		t.Errorf("MoveInterval at score 0 = %v, expected %v", got, base)
	}
	if got := d.MoveInterval(base, 100, 0); got != 50*time.Millisecond {
		t.Errorf("MoveInterval at max = %v, expected 50ms", got)
	}
	if got := d.MoveInterval(20*time.Millisecond, 100, 0); got != MinMoveInterval {
		t.Errorf("MoveInterval below floor = %v, expected %v", got, MinMoveInterval)
	}

	d.SetEnabled(false)
	if d.IsEnabled() {
		t.Error("IsEnabled() after SetEnabled(false)")
	}
	if got := d.MoveInterval(base, 100, 0); got != base {
		t.Errorf("disabled MoveInterval = %v, expected %v", got, base)
	}
}

func TestDifficultyLevelTimeProgression(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "time", MaxAt: 200},
	})
	d.SetInitialLevel(0.5)

	if got := d.Level(0, 0); got != 0.5 {
		t.Errorf("Level(0) = %v, expected 0.5", got)
	}
	if got := d.Level(0, 100); got != 0.75 {
		t.Errorf("Level(100 ticks) = %v, expected 0.75", got)
	}
	if got := d.Level(0, 1000); got != 1.0 {
		t.Errorf("Level past max = %v, expected 1.0", got)
	}
}
