// Package obstacle holds the static and dynamic blocking cells of the arena:
// walls placed at match start and flakes shed by shrinking snakes.
package obstacle

import (
	"github.com/vovakirdan/flaky-snakey/internal/core"
	"github.com/vovakirdan/flaky-snakey/internal/grid"
)

// Kind distinguishes walls from snake debris.
type Kind int

const (
	KindWall Kind = iota
	KindFlake
)

// Obstacle is an immutable blocking cell.
type Obstacle struct {
	Cell  grid.Cell
	Kind  Kind
	Color core.Color
}

// Manager owns the obstacle list. Lookups go through an occupancy set.
type Manager struct {
	geom      grid.Geometry
	obstacles []Obstacle
	occupied  map[grid.Cell]struct{}
}

// NewManager creates an empty obstacle field.
func NewManager(geom grid.Geometry) *Manager {
	return &Manager{
		geom:     geom,
		occupied: make(map[grid.Cell]struct{}),
	}
}

// AddObstacle adds a blocking cell. Duplicates and off-grid cells are
// ignored; the return value reports whether the cell was added.
func (m *Manager) AddObstacle(o Obstacle) bool {
	if !m.geom.Contains(o.Cell) {
		return false
	}
	if _, ok := m.occupied[o.Cell]; ok {
		return false
	}
	m.occupied[o.Cell] = struct{}{}
	m.obstacles = append(m.obstacles, o)
	return true
}

// AddWall is shorthand for a gray wall cell.
func (m *Manager) AddWall(c grid.Cell) bool {
	return m.AddObstacle(Obstacle{Cell: c, Kind: KindWall, Color: core.ColorGray})
}

// AddFlake turns a shed snake segment into a permanent obstacle.
func (m *Manager) AddFlake(c grid.Cell, color core.Color) bool {
	return m.AddObstacle(Obstacle{Cell: c, Kind: KindFlake, Color: color})
}

// IsObstacleHere reports whether c is blocked.
func (m *Manager) IsObstacleHere(c grid.Cell) bool {
	_, ok := m.occupied[c]
	return ok
}

// SetObstacles replaces the field with walls at cells. The replacement is
// rejected when it would fill the grid or cover any of the protected cells
// (the snake spawn points).
func (m *Manager) SetObstacles(cells []grid.Cell, protected []grid.Cell) bool {
	if len(cells) >= m.geom.Area() {
		return false
	}
	blocked := make(map[grid.Cell]struct{}, len(cells))
	for _, c := range cells {
		blocked[c] = struct{}{}
	}
	for _, p := range protected {
		if _, ok := blocked[p]; ok {
			return false
		}
	}

	m.Clear()
	for _, c := range cells {
		m.AddWall(c)
	}
	return true
}

// Clear removes every obstacle.
func (m *Manager) Clear() {
	m.obstacles = nil
	m.occupied = make(map[grid.Cell]struct{})
}

// Obstacles returns a copy of the obstacle list.
func (m *Manager) Obstacles() []Obstacle {
	out := make([]Obstacle, len(m.obstacles))
	copy(out, m.obstacles)
	return out
}

// Len returns the number of obstacles.
func (m *Manager) Len() int {
	return len(m.obstacles)
}

// DefaultWalls returns the L-shaped corner walls: a horizontal run along the
// top and bottom rows at each corner, a quarter of the width long, and a
// vertical run down from each corner, a quarter of the height long.
func DefaultWalls(geom grid.Geometry) []grid.Cell {
	w, h := geom.Width, geom.Height
	var cells []grid.Cell
	for i := 0; i < w/4; i++ {
		cells = append(cells,
			grid.Cell{X: i, Y: 0},
			grid.Cell{X: w - 1 - i, Y: 0},
			grid.Cell{X: i, Y: h - 1},
			grid.Cell{X: w - 1 - i, Y: h - 1},
		)
	}
	for i := 1; i < h/4; i++ {
		cells = append(cells,
			grid.Cell{X: 0, Y: i},
			grid.Cell{X: w - 1, Y: i},
			grid.Cell{X: 0, Y: h - 1 - i},
			grid.Cell{X: w - 1, Y: h - 1 - i},
		)
	}
	return cells
}
