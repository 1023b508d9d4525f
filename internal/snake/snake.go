// Package snake implements the movable entity of the simulation: an ordered
// body of grid cells with move, grow, flake and rollback semantics.
//
// The head is body[0] and the tail is the last element. A snake never checks
// for collisions on its own during Move; the arena asks explicitly after all
// snakes have moved, which is what makes simultaneous resolution possible.
package snake

import (
	"fmt"
	"math"

	"github.com/vovakirdan/flaky-snakey/internal/core"
	"github.com/vovakirdan/flaky-snakey/internal/grid"
)

// MaxNameLength is the longest name kept for display.
const MaxNameLength = 10

// MaxPlayers is the number of distinct player numbers.
const MaxPlayers = 4

var playerColors = [MaxPlayers]core.Color{
	core.ColorRed,
	core.ColorGreen,
	core.ColorBlue,
	core.ColorYellow,
}

// View is read-only access to a snake. Controllers and renderers only ever
// see this interface.
type View interface {
	Head() grid.Cell
	Body() []grid.Cell
	Size() int
	Alive() bool
	PassThrough() bool
	LastMove() grid.Move
	Player() int
	Name() string
	Score() int
	Color() core.Color
	Intersects(c grid.Cell) bool
	IntersectsBody(c grid.Cell) bool
}

// Snake is a single player's body and its per-tick bookkeeping.
type Snake struct {
	geom   grid.Geometry
	body   []grid.Cell
	player int
	name   string
	color  core.Color

	alive       bool
	passThrough bool
	score       int
	lastMove    grid.Move

	// pre-move head and the tail removed by the last move
	lastHead    grid.Cell
	rollback    grid.Cell
	hasRollback bool
	moved       bool

	shed []grid.Cell
}

var _ View = (*Snake)(nil)

// SpawnPoint returns the starting cell and heading for a player number.
// Panics on a player number outside [0, MaxPlayers).
func SpawnPoint(geom grid.Geometry, player int) (grid.Cell, grid.Move) {
	origin := grid.Cell{}
	switch player {
	case 0:
		return geom.WrapMove(origin, 2, 2), grid.Right
	case 1:
		return geom.WrapMove(origin, geom.Width-3, 2), grid.Down
	case 2:
		return geom.WrapMove(origin, 2, geom.Height-3), grid.Up
	case 3:
		return geom.WrapMove(origin, geom.Width-3, geom.Height-3), grid.Left
	default:
		panic(fmt.Sprintf("snake: invalid player number %d", player))
	}
}

// SpawnPoints returns the spawn cells of every player slot.
func SpawnPoints(geom grid.Geometry) []grid.Cell {
	cells := make([]grid.Cell, 0, MaxPlayers)
	for p := 0; p < MaxPlayers; p++ {
		c, _ := SpawnPoint(geom, p)
		cells = append(cells, c)
	}
	return cells
}

// New creates a live snake of length 1 at the player's spawn point.
// An empty name becomes "Player N".
func New(geom grid.Geometry, player int, name string) *Snake {
	head, heading := SpawnPoint(geom, player)
	if name == "" {
		name = fmt.Sprintf("Player %d", player+1)
	}
	return &Snake{
		geom:     geom,
		body:     []grid.Cell{head},
		player:   player,
		name:     truncateName(name),
		color:    playerColors[player],
		alive:    true,
		lastMove: heading,
		lastHead: head,
	}
}

func truncateName(name string) string {
	r := []rune(name)
	if len(r) > MaxNameLength {
		return string(r[:MaxNameLength])
	}
	return name
}

// IsValidMove reports whether m may be applied after the current heading.
func (s *Snake) IsValidMove(m grid.Move) bool {
	return m != grid.Null && m != s.lastMove.Opposite()
}

// Move advances the snake one cell. An illegal request (Null or a reversal)
// keeps the current heading. The removed tail is remembered for Kill.
func (s *Snake) Move(requested grid.Move) {
	if !s.alive {
		return
	}
	if !s.IsValidMove(requested) {
		requested = s.lastMove
	}

	head := s.Head()
	newHead := s.geom.Step(head, requested)

	last := len(s.body) - 1
	s.rollback = s.body[last]
	s.hasRollback = true

	// shift right by one, dropping the tail
	copy(s.body[1:], s.body[:last])
	s.body[0] = newHead

	s.lastHead = head
	s.lastMove = requested
	s.passThrough = false
	s.moved = true
}

// Grow adds n segments behind the head. Segments are inserted at the second
// position so the head never lands on them, except on bodies of two cells or
// fewer where they are appended.
func (s *Snake) Grow(n int) {
	for i := 0; i < n; i++ {
		behind := s.geom.Step(s.Head(), s.lastMove.Opposite())
		if len(s.body) > 2 {
			s.body = append(s.body, grid.Cell{})
			copy(s.body[2:], s.body[1:])
			s.body[1] = behind
		} else {
			s.body = append(s.body, behind)
		}
	}
}

// Flake sheds the last n segments into the shed buffer. It refuses, and
// leaves the body untouched, when that would leave nothing.
func (s *Snake) Flake(n int) bool {
	if n >= len(s.body) {
		return false
	}
	if n <= 0 {
		return true
	}
	cut := len(s.body) - n
	s.shed = append(s.shed, s.body[cut:]...)
	s.body = s.body[:cut]
	return true
}

// AlterSize grows on a positive effect and flakes on a negative one. A
// shrink the body cannot survive kills the snake.
func (s *Snake) AlterSize(effect int) {
	switch {
	case effect > 0:
		s.Grow(effect)
	case effect < 0:
		if !s.Flake(-effect) {
			s.Kill()
		}
	}
}

// CheckSelfCollision kills the snake if its head overlaps its own body.
func (s *Snake) CheckSelfCollision() bool {
	if !s.alive || !s.IntersectsBody(s.Head()) {
		return false
	}
	s.Kill()
	return true
}

// Kill undoes the most recent move, once, and marks the snake dead.
func (s *Snake) Kill() {
	if s.hasRollback {
		s.body = append(s.body[1:], s.rollback)
		s.hasRollback = false
	}
	s.alive = false
}

// BeginTurn clears per-tick state before the movement phase.
func (s *Snake) BeginTurn() {
	s.moved = false
}

// GrantPassThrough gives one tick of collision immunity.
func (s *Snake) GrantPassThrough() {
	s.passThrough = true
}

// Moved reports whether the snake moved during the current tick.
func (s *Snake) Moved() bool {
	return s.moved
}

// LastHead returns the head cell before the most recent move.
func (s *Snake) LastHead() grid.Cell {
	return s.lastHead
}

// ExtractFlakes returns and clears the shed buffer.
func (s *Snake) ExtractFlakes() []grid.Cell {
	out := s.shed
	s.shed = nil
	return out
}

// IncrementScore adds n, saturating at math.MaxInt.
func (s *Snake) IncrementScore(n int) {
	if n < 0 {
		s.DecrementScore(-n)
		return
	}
	if s.score > math.MaxInt-n {
		s.score = math.MaxInt
		return
	}
	s.score += n
}

// DecrementScore subtracts n, saturating at zero.
func (s *Snake) DecrementScore(n int) {
	if n < 0 {
		s.IncrementScore(-n)
		return
	}
	if n >= s.score {
		s.score = 0
		return
	}
	s.score -= n
}

// Head returns the head cell. Panics on an empty body.
func (s *Snake) Head() grid.Cell {
	if len(s.body) == 0 {
		panic("snake: head of empty body")
	}
	return s.body[0]
}

// Body returns a copy of the body, head first.
func (s *Snake) Body() []grid.Cell {
	out := make([]grid.Cell, len(s.body))
	copy(out, s.body)
	return out
}

// Intersects reports whether any segment occupies c.
func (s *Snake) Intersects(c grid.Cell) bool {
	for _, b := range s.body {
		if b.Intersects(c) {
			return true
		}
	}
	return false
}

// IntersectsBody reports whether any non-head segment occupies c.
func (s *Snake) IntersectsBody(c grid.Cell) bool {
	for _, b := range s.body[1:] {
		if b.Intersects(c) {
			return true
		}
	}
	return false
}

// Size returns the body length.
func (s *Snake) Size() int {
	return len(s.body)
}

func (s *Snake) Alive() bool {
	return s.alive
}

// PassThrough reports whether the snake is immune to collisions this tick.
func (s *Snake) PassThrough() bool {
	return s.passThrough
}

func (s *Snake) LastMove() grid.Move {
	return s.lastMove
}

// Player returns the player number, 0 to 3.
func (s *Snake) Player() int {
	return s.player
}

func (s *Snake) Name() string {
	return s.name
}

func (s *Snake) Score() int {
	return s.score
}

func (s *Snake) Color() core.Color {
	return s.color
}
