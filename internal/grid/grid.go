// Package grid provides integer cell coordinates on a toroidal playfield.
// It has no dependencies on rendering; the platform maps cells to screen
// characters through a Layout.
package grid

import "fmt"

// Cell is a (column, row) position on the grid. Rows grow downward.
type Cell struct {
	X, Y int
}

// NoCell is returned by searches that found no usable cell.
var NoCell = Cell{X: -1, Y: -1}

// Intersects reports whether two unit cells overlap.
func (c Cell) Intersects(other Cell) bool {
	return c == other
}

// String implements fmt.Stringer.
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Move is a single-step heading. Null means "no request".
type Move int

const (
	Up Move = iota
	Left
	Right
	Down
	Null
)

// Moves lists the four real headings.
var Moves = [4]Move{Up, Left, Right, Down}

// Opposite returns the reverse heading. Null is its own opposite.
func (m Move) Opposite() Move {
	switch m {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	default:
		return Null
	}
}

// Delta returns the unit step for the move.
func (m Move) Delta() (dx, dy int) {
	switch m {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	default:
		return 0, 0
	}
}

// String returns a human-readable name for the move.
func (m Move) String() string {
	switch m {
	case Up:
		return "Up"
	case Left:
		return "Left"
	case Right:
		return "Right"
	case Down:
		return "Down"
	case Null:
		return "Null"
	default:
		return "Unknown"
	}
}

// Geometry describes the grid dimensions.
type Geometry struct {
	Width  int
	Height int
}

// NewGeometry creates a geometry. Dimensions must be positive.
func NewGeometry(width, height int) Geometry {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("grid: invalid dimensions %dx%d", width, height))
	}
	return Geometry{Width: width, Height: height}
}

// Area returns the number of cells.
func (g Geometry) Area() int {
	return g.Width * g.Height
}

// Contains reports whether the cell lies inside the grid.
func (g Geometry) Contains(c Cell) bool {
	return c.X >= 0 && c.X < g.Width && c.Y >= 0 && c.Y < g.Height
}

// WrapMove advances a cell by (dx, dy), wrapping around the grid edges.
func (g Geometry) WrapMove(c Cell, dx, dy int) Cell {
	return Cell{
		X: wrap(c.X+dx, g.Width),
		Y: wrap(c.Y+dy, g.Height),
	}
}

// Step advances a cell one unit in the direction of m.
func (g Geometry) Step(c Cell, m Move) Cell {
	dx, dy := m.Delta()
	return g.WrapMove(c, dx, dy)
}

// Index flattens a cell to a row-major index.
func (g Geometry) Index(c Cell) int {
	return c.Y*g.Width + c.X
}

// CellAt is the inverse of Index.
func (g Geometry) CellAt(i int) Cell {
	return Cell{X: i % g.Width, Y: i / g.Width}
}

func wrap(v, n int) int {
	return ((v % n) + n) % n
}
