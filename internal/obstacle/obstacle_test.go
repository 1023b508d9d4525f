package obstacle

import (
	"testing"

	"github.com/vovakirdan/flaky-snakey/internal/core"
	"github.com/vovakirdan/flaky-snakey/internal/grid"
)

func TestAddObstacleDedupes(t *testing.T) {
	m := NewManager(grid.NewGeometry(10, 10))
	c := grid.Cell{X: 3, Y: 4}

	if !m.AddWall(c) {
		t.Fatal("first AddWall should succeed")
	}
	if m.AddFlake(c, core.ColorRed) {
		t.Error("duplicate cell should be rejected")
	}
	if m.AddWall(grid.Cell{X: 10, Y: 0}) {
		t.Error("off-grid cell should be rejected")
	}
	if m.Len() != 1 {
		t.Errorf("Len() = %d, expected 1", m.Len())
	}
	if !m.IsObstacleHere(c) {
		t.Error("IsObstacleHere should report the wall")
	}
	if m.IsObstacleHere(grid.Cell{X: 4, Y: 4}) {
		t.Error("IsObstacleHere should be false for an empty cell")
	}
}

func TestDefaultWalls(t *testing.T) {
	geom := grid.NewGeometry(20, 20)
	walls := DefaultWalls(geom)

	m := NewManager(geom)
	for _, c := range walls {
		m.AddWall(c)
	}

	// 5 cells per horizontal arm, 4 per vertical arm, 4 corners
	if m.Len() != 4*5+4*4 {
		t.Errorf("Len() = %d, expected %d", m.Len(), 4*5+4*4)
	}

	for _, c := range []grid.Cell{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 19, Y: 19}, {X: 0, Y: 4}, {X: 19, Y: 15}} {
		if !m.IsObstacleHere(c) {
			t.Errorf("expected wall at %v", c)
		}
	}
	for _, c := range []grid.Cell{{X: 5, Y: 0}, {X: 0, Y: 5}, {X: 10, Y: 10}, {X: 2, Y: 2}} {
		if m.IsObstacleHere(c) {
			t.Errorf("unexpected wall at %v", c)
		}
	}
}

func TestSetObstaclesProtectsSpawns(t *testing.T) {
	geom := grid.NewGeometry(10, 10)
	m := NewManager(geom)
	m.AddWall(grid.Cell{X: 5, Y: 5})

	spawn := grid.Cell{X: 2, Y: 2}
	if m.SetObstacles([]grid.Cell{{X: 1, Y: 1}, spawn}, []grid.Cell{spawn}) {
		t.Error("SetObstacles covering a spawn should fail")
	}
	if !m.IsObstacleHere(grid.Cell{X: 5, Y: 5}) {
		t.Error("rejected SetObstacles must not touch the field")
	}

	if !m.SetObstacles([]grid.Cell{{X: 1, Y: 1}}, []grid.Cell{spawn}) {
		t.Fatal("SetObstacles should succeed")
	}
	if m.IsObstacleHere(grid.Cell{X: 5, Y: 5}) || !m.IsObstacleHere(grid.Cell{X: 1, Y: 1}) {
		t.Error("SetObstacles should replace the field")
	}
}

func TestSetObstaclesRejectsFullGrid(t *testing.T) {
	geom := grid.NewGeometry(3, 3)
	m := NewManager(geom)
	cells := make([]grid.Cell, 0, geom.Area())
	for i := 0; i < geom.Area(); i++ {
		cells = append(cells, geom.CellAt(i))
	}
	if m.SetObstacles(cells, nil) {
		t.Error("filling every cell should be rejected")
	}
}

func TestClear(t *testing.T) {
	m := NewManager(grid.NewGeometry(10, 10))
	m.AddWall(grid.Cell{X: 1, Y: 1})
	m.Clear()
	if m.Len() != 0 || m.IsObstacleHere(grid.Cell{X: 1, Y: 1}) {
		t.Error("Clear should empty the field")
	}
}
