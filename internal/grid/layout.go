package grid

import "github.com/vovakirdan/flaky-snakey/internal/core"

// Terminal cells are roughly twice as tall as wide, so each grid cell is
// drawn two characters wide.
const (
	DefaultCellWidth  = 2
	DefaultCellHeight = 1
)

// Layout maps grid cells onto screen characters.
type Layout struct {
	Geometry
	CellWidth  int
	CellHeight int
	OriginX    int
	OriginY    int
}

// CenteredLayout centers the grid inside a screen area, leaving hudHeight
// rows at the top. Fits reports whether the whole grid is visible.
func CenteredLayout(g Geometry, screenW, screenH, hudHeight int) Layout {
	l := Layout{
		Geometry:   g,
		CellWidth:  DefaultCellWidth,
		CellHeight: DefaultCellHeight,
	}
	l.OriginX = core.Max(1, (screenW-l.PixelWidth())/2)
	l.OriginY = hudHeight + core.Max(1, (screenH-hudHeight-l.PixelHeight())/2)
	return l
}

// PixelWidth is the playable width in screen characters.
func (l Layout) PixelWidth() int {
	return l.Width * l.CellWidth
}

// PixelHeight is the playable height in screen characters.
func (l Layout) PixelHeight() int {
	return l.Height * l.CellHeight
}

// Bounds returns the playable area in screen characters.
func (l Layout) Bounds() core.Rect {
	return core.NewRect(l.OriginX, l.OriginY, l.PixelWidth(), l.PixelHeight())
}

// ToScreen returns the screen rectangle covered by a cell.
func (l Layout) ToScreen(c Cell) core.Rect {
	return core.NewRect(
		l.OriginX+c.X*l.CellWidth,
		l.OriginY+c.Y*l.CellHeight,
		l.CellWidth,
		l.CellHeight,
	)
}

// Fits reports whether the bordered grid fits in the given screen size.
func (l Layout) Fits(screenW, screenH int) bool {
	return l.Bounds().Right()+1 <= screenW && l.Bounds().Bottom()+1 <= screenH
}
