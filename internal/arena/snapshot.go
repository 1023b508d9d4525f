package arena

import (
	"time"

	"github.com/vovakirdan/flaky-snakey/internal/grid"
)

// Snapshot captures the match state for determinism testing.
type Snapshot struct {
	Tick      uint64
	Living    int
	Over      bool
	Winner    int
	Heads     []grid.Cell
	Sizes     []int
	Scores    []int
	Alive     []bool
	Food      []grid.Cell
	Obstacles int
}

// Snapshot returns the current match snapshot.
func (m *Match) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:      m.ticks,
		Living:    m.snakes.Living(),
		Over:      m.over,
		Winner:    m.winner,
		Obstacles: m.obstacles.Len(),
	}
	for _, s := range m.snakes.Snakes() {
		snap.Heads = append(snap.Heads, s.Head())
		snap.Sizes = append(snap.Sizes, s.Size())
		snap.Scores = append(snap.Scores, s.Score())
		snap.Alive = append(snap.Alive, s.Alive())
	}
	for _, it := range m.food.Items() {
		snap.Food = append(snap.Food, it.Cell)
	}
	return snap
}

// PlayerResult is one snake's final line.
type PlayerResult struct {
	Slot  int
	Name  string
	Human bool
	Score int
	Size  int
	Alive bool
}

// Result summarizes a finished (or abandoned) match for storage.
type Result struct {
	ID       string
	Humans   int
	AI       int
	Tier     string
	Width    int
	Height   int
	Ticks    uint64
	Winner   int
	Duration time.Duration
	Players  []PlayerResult
}

// Result returns the match summary. The winner is computed on demand when
// the match is still running.
func (m *Match) Result() Result {
	winner := m.winner
	if !m.over {
		winner = m.snakes.WinnerIndex()
	}

	r := Result{
		ID:       m.ID(),
		Humans:   m.settings.Humans,
		AI:       m.settings.AI,
		Tier:     string(m.settings.Tier),
		Width:    m.settings.Geom.Width,
		Height:   m.settings.Geom.Height,
		Ticks:    m.ticks,
		Winner:   winner,
		Duration: time.Since(m.started),
	}
	for i, s := range m.snakes.Snakes() {
		r.Players = append(r.Players, PlayerResult{
			Slot:  i,
			Name:  s.Name(),
			Human: i < m.settings.Humans,
			Score: s.Score(),
			Size:  s.Size(),
			Alive: s.Alive(),
		})
	}
	return r
}

// WinnerName returns the winner's name, or "" for a draw or no winner.
func (r Result) WinnerName() string {
	if r.Winner < 0 || r.Winner >= len(r.Players) {
		return ""
	}
	return r.Players[r.Winner].Name
}
