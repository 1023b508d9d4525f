package snakey

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flaky-snakey/internal/arena"
	"github.com/vovakirdan/flaky-snakey/internal/config"
)

// ErrHumans is returned when a headless match is asked to seat humans.
var ErrHumans = errors.New("snakey: headless matches are AI only")

// RunHeadless plays one AI-only match to completion without a screen,
// one movement tick at a time. Matches still running after maxTicks are
// stopped and reported with the current leader.
func RunHeadless(cfg config.SnakeyConfig, seed int64, maxTicks uint64, l *log.Logger) (arena.Result, bool, error) {
	if cfg.Players.Humans != 0 {
		return arena.Result{}, false, ErrHumans
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return arena.Result{}, false, fmt.Errorf("snakey: %w", err)
	}

	m, err := arena.NewMatch(MatchSettings(cfg, false), seed, l)
	if err != nil {
		return arena.Result{}, false, err
	}
	defer m.Close()

	dm := config.NewDifficultyManager(cfg.Difficulty)
	for !m.Over() && m.Ticks() < maxTicks {
		m.Advance(m.MoveInterval())
		if dm.IsEnabled() {
			m.SetMoveInterval(dm.MoveInterval(cfg.MoveInterval(), m.BestScore(), int(m.Ticks())))
		}
	}
	return m.Result(), m.Over(), nil
}
