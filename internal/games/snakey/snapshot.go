package snakey

import "github.com/vovakirdan/flaky-snakey/internal/arena"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StatePaused      GameStateType = "paused"
	StateGameOver    GameStateType = "game_over"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the frame-level game state and the match beneath it.
type Snapshot struct {
	Tick  uint64 // frame ticks
	Mode  Mode
	State GameStateType
	Match arena.Snapshot
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.match.Over():
		state = StateGameOver
	case g.paused:
		state = StatePaused
	}

	return Snapshot{
		Tick:  g.tick,
		Mode:  g.mode,
		State: state,
		Match: g.match.Snapshot(),
	}
}
