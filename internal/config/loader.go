package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadSnakey loads the match configuration, normalizes it and validates
// it. Search order: customPath -> ~/.snakey/configs/snakey.yaml ->
// ./configs/snakey.yaml -> embedded default -> DefaultSnakeyConfig.
func LoadSnakey(customPath string) (SnakeyConfig, error) {
	cfg, err := readSnakey(customPath)
	if err != nil {
		return cfg, err
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func readSnakey(customPath string) (SnakeyConfig, error) {
	// Missing keys keep their defaults
	cfg := DefaultSnakeyConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("snakey.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
			cfg = DefaultSnakeyConfig()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/snakey.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
		cfg = DefaultSnakeyConfig()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultSnakeyYAML, &cfg); err != nil {
		return DefaultSnakeyConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".snakey", "configs", filename)
}

// ApplySnakeyPreset modifies the config based on a difficulty preset. Easy
// slows the snakes down and keeps decay food scarce; hard does the opposite.
func ApplySnakeyPreset(cfg *SnakeyConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.MoveIntervalMs = 150
		cfg.Food.DecayTimers = 2
	case DifficultyHard:
		cfg.Gameplay.MoveIntervalMs = 70
		cfg.Food.DecayTimers = 10
	}
}
