// Package arena coordinates the snakes of one match. The Manager resolves
// every tick in fixed phases: movement, self collisions, head collisions,
// body collisions and the tally. The phase order decides who survives a
// crash, so it never changes.
//
// Match wraps a Manager together with food, obstacles and the clocks, and
// is what the game adapter and the simulator drive.
package arena

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/flaky-snakey/internal/control"
	"github.com/vovakirdan/flaky-snakey/internal/grid"
	"github.com/vovakirdan/flaky-snakey/internal/obstacle"
	"github.com/vovakirdan/flaky-snakey/internal/snake"
)

// Winner sentinels returned by WinnerIndex.
const (
	NoWinner = -1 // empty roster
	Draw     = -2 // top score and size are shared
)

// ErrRosterFull is returned when adding a fifth snake.
var ErrRosterFull = errors.New("arena: roster full")

// Manager owns the snake roster. Snakes are addressed by their index, which
// is also their player number.
type Manager struct {
	geom        grid.Geometry
	snakes      []*snake.Snake
	controllers []control.Controller
	board       Scoreboard
	living      int
}

var _ control.SnakeReader = (*Manager)(nil)

// NewManager creates an empty roster. board may be nil.
func NewManager(geom grid.Geometry, board Scoreboard) *Manager {
	return &Manager{geom: geom, board: board}
}

// AddSnake appends a snake at the next spawn point and returns its index.
// c may be nil and set later with SetController.
func (m *Manager) AddSnake(name string, c control.Controller) (int, error) {
	i := len(m.snakes)
	if i >= snake.MaxPlayers {
		return 0, fmt.Errorf("arena: add %q: %w", name, ErrRosterFull)
	}

	s := snake.New(m.geom, i, name)
	if m.board != nil {
		if err := m.board.AddPlayer(i, s.Name()); err != nil {
			return 0, fmt.Errorf("arena: add %q: %w", name, err)
		}
	}

	m.snakes = append(m.snakes, s)
	m.controllers = append(m.controllers, c)
	m.living++
	return i, nil
}

// SetController replaces the controller of snake i.
func (m *Manager) SetController(i int, c control.Controller) {
	m.check(i, "SetController")
	m.controllers[i] = c
}

func (m *Manager) check(i int, op string) {
	if i < 0 || i >= len(m.snakes) {
		panic(fmt.Sprintf("arena: %s: index %d out of range [0, %d)", op, i, len(m.snakes)))
	}
}

// Tick runs one full simulation step.
func (m *Manager) Tick() {
	m.moveAll()
	m.resolveSelf()
	m.resolveHeads()
	m.resolveBodies()
	m.Tally()
}

func (m *Manager) moveAll() {
	for i, s := range m.snakes {
		s.BeginTurn()
		if !s.Alive() {
			continue
		}
		move := grid.Null
		if c := m.controllers[i]; c != nil {
			move = c.Move()
		}
		s.Move(move)
	}
}

func (m *Manager) resolveSelf() {
	for _, s := range m.snakes {
		if s.Alive() {
			s.CheckSelfCollision()
		}
	}
}

func (m *Manager) resolveHeads() {
	for i := 0; i < len(m.snakes); i++ {
		a := m.snakes[i]
		for j := i + 1; j < len(m.snakes); j++ {
			b := m.snakes[j]
			if a.Head() != b.Head() && !crossed(a, b) {
				continue
			}

			switch {
			case a.Alive() && b.Alive():
				switch {
				case a.Size() > b.Size():
					a.GrantPassThrough()
					b.Kill()
				case a.Size() < b.Size():
					a.Kill()
					b.GrantPassThrough()
				default:
					a.Kill()
					b.Kill()
				}
			case a.Alive():
				if !a.PassThrough() {
					a.Kill()
				}
			case b.Alive():
				if !b.PassThrough() {
					b.Kill()
				}
			}
		}
	}
}

// crossed reports whether two single-cell snakes swapped cells this tick.
func crossed(a, b *snake.Snake) bool {
	if a.Size() != 1 || b.Size() != 1 || !a.Moved() || !b.Moved() {
		return false
	}
	if a.LastMove().Opposite() != b.LastMove() {
		return false
	}
	return a.LastHead() == b.Head() && b.LastHead() == a.Head()
}

// resolveBodies kills every living snake whose head lies on another snake's
// body. The snake that was run into gets pass-through for the next head
// phase.
func (m *Manager) resolveBodies() {
	for i, s := range m.snakes {
		if !s.Alive() {
			continue
		}
		for j, other := range m.snakes {
			if i == j || !other.IntersectsBody(s.Head()) {
				continue
			}
			s.Kill()
			if other.Alive() {
				other.GrantPassThrough()
			}
			break
		}
	}
}

// Tally recounts the living snakes and pushes scores to the scoreboard.
func (m *Manager) Tally() {
	m.living = 0
	for i, s := range m.snakes {
		if s.Alive() {
			m.living++
		}
		if m.board == nil {
			continue
		}
		if err := m.board.UpdateScore(i, s.Score()); err != nil {
			panic(fmt.Sprintf("arena: Tally: %v", err))
		}
		if err := m.board.SetAlive(i, s.Alive()); err != nil {
			panic(fmt.Sprintf("arena: Tally: %v", err))
		}
	}
}

// WinnerIndex returns the index of the snake with the highest score, with
// size breaking ties. A shared top score and size is a Draw; an empty roster
// is NoWinner.
func (m *Manager) WinnerIndex() int {
	if len(m.snakes) == 0 {
		return NoWinner
	}

	winner := 0
	draw := false
	for i := 1; i < len(m.snakes); i++ {
		s, best := m.snakes[i], m.snakes[winner]
		switch {
		case s.Score() > best.Score(),
			s.Score() == best.Score() && s.Size() > best.Size():
			winner = i
			draw = false
		case s.Score() == best.Score() && s.Size() == best.Size():
			draw = true
		}
	}
	if draw {
		return Draw
	}
	return winner
}

// IsGameOver reports whether every snake is dead.
func (m *Manager) IsGameOver() bool {
	return m.living == 0
}

// Living returns the number of living snakes after the last tally.
func (m *Manager) Living() int {
	return m.living
}

// KillSnake kills snake i.
func (m *Manager) KillSnake(i int) {
	m.check(i, "KillSnake")
	s := m.snakes[i]
	if s.Alive() {
		s.Kill()
		m.living--
	}
}

// AlterSnakeSize applies a food effect to snake i.
func (m *Manager) AlterSnakeSize(i, effect int) {
	m.check(i, "AlterSnakeSize")
	s := m.snakes[i]
	wasAlive := s.Alive()
	s.AlterSize(effect)
	if wasAlive && !s.Alive() {
		m.living--
	}
}

// IncrementScore adds n to the score of snake i.
func (m *Manager) IncrementScore(i, n int) {
	m.check(i, "IncrementScore")
	m.snakes[i].IncrementScore(n)
}

// IsSnakeHere reports whether any snake, dead or alive, covers c.
func (m *Manager) IsSnakeHere(c grid.Cell) bool {
	for _, s := range m.snakes {
		if s.Intersects(c) {
			return true
		}
	}
	return false
}

// Len returns the roster size.
func (m *Manager) Len() int {
	return len(m.snakes)
}

// SnakeAt returns a read-only view of snake i.
func (m *Manager) SnakeAt(i int) (snake.View, bool) {
	if i < 0 || i >= len(m.snakes) {
		return nil, false
	}
	return m.snakes[i], true
}

// Snakes returns read-only views of the whole roster.
func (m *Manager) Snakes() []snake.View {
	out := make([]snake.View, len(m.snakes))
	for i, s := range m.snakes {
		out[i] = s
	}
	return out
}

// ExtractFlakes drains every snake's shed segments as flake obstacles in
// the snake's color.
func (m *Manager) ExtractFlakes() []obstacle.Obstacle {
	var out []obstacle.Obstacle
	for _, s := range m.snakes {
		for _, c := range s.ExtractFlakes() {
			out = append(out, obstacle.Obstacle{Cell: c, Kind: obstacle.KindFlake, Color: s.Color()})
		}
	}
	return out
}

func (m *Manager) at(i int) *snake.Snake {
	m.check(i, "at")
	return m.snakes[i]
}
