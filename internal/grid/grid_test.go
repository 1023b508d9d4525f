package grid

import "testing"

func TestWrapMove(t *testing.T) {
	g := NewGeometry(10, 8)

	tests := []struct {
		name     string
		from     Cell
		dx, dy   int
		expected Cell
	}{
		{"inside", Cell{5, 5}, 1, 0, Cell{6, 5}},
		{"wrap right", Cell{9, 3}, 1, 0, Cell{0, 3}},
		{"wrap left", Cell{0, 3}, -1, 0, Cell{9, 3}},
		{"wrap down", Cell{4, 7}, 0, 1, Cell{4, 0}},
		{"wrap up", Cell{4, 0}, 0, -1, Cell{4, 7}},
		{"large delta", Cell{1, 1}, -23, 17, Cell{8, 2}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := g.WrapMove(tc.from, tc.dx, tc.dy)
			if got != tc.expected {
				t.Errorf("WrapMove(%v, %d, %d) = %v, expected %v", tc.from, tc.dx, tc.dy, got, tc.expected)
			}
			if !g.Contains(got) {
				t.Errorf("WrapMove result %v is outside the grid", got)
			}
		})
	}
}

func TestStep(t *testing.T) {
	g := NewGeometry(5, 5)
	origin := Cell{0, 0}

	if got := g.Step(origin, Up); got != (Cell{0, 4}) {
		t.Errorf("Step Up = %v, expected (0,4)", got)
	}
	if got := g.Step(origin, Left); got != (Cell{4, 0}) {
		t.Errorf("Step Left = %v, expected (4,0)", got)
	}
	if got := g.Step(origin, Null); got != origin {
		t.Errorf("Step Null = %v, expected no movement", got)
	}
}

func TestOpposite(t *testing.T) {
	pairs := map[Move]Move{Up: Down, Down: Up, Left: Right, Right: Left, Null: Null}
	for m, want := range pairs {
		if got := m.Opposite(); got != want {
			t.Errorf("%v.Opposite() = %v, expected %v", m, got, want)
		}
	}
}

func TestIndexRoundTrip(t *testing.T) {
	g := NewGeometry(7, 3)
	for i := 0; i < g.Area(); i++ {
		if got := g.Index(g.CellAt(i)); got != i {
			t.Errorf("Index(CellAt(%d)) = %d", i, got)
		}
	}
}

func TestNewGeometryPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewGeometry(0, 5) should panic")
		}
	}()
	NewGeometry(0, 5)
}

func TestCenteredLayout(t *testing.T) {
	l := CenteredLayout(NewGeometry(20, 20), 80, 24, 2)

	if l.PixelWidth() != 40 || l.PixelHeight() != 20 {
		t.Fatalf("pixel size = %dx%d, expected 40x20", l.PixelWidth(), l.PixelHeight())
	}
	if l.OriginX != 20 {
		t.Errorf("OriginX = %d, expected 20", l.OriginX)
	}
	if l.OriginY != 3 {
		t.Errorf("OriginY = %d, expected 3", l.OriginY)
	}
	if !l.Fits(80, 24) {
		t.Error("20x20 grid should fit an 80x24 screen")
	}
	if l.Fits(30, 24) {
		t.Error("20x20 grid should not fit a 30 column screen")
	}

	r := l.ToScreen(Cell{1, 2})
	if r.X != 22 || r.Y != 5 || r.W != 2 || r.H != 1 {
		t.Errorf("ToScreen((1,2)) = %+v", r)
	}
}
