package snake

import (
	"math"
	"testing"

	"github.com/vovakirdan/flaky-snakey/internal/grid"
)

func newTestSnake(t *testing.T) *Snake {
	t.Helper()
	return New(grid.NewGeometry(20, 20), 0, "")
}

func TestNewSpawnPoints(t *testing.T) {
	geom := grid.NewGeometry(20, 16)

	tests := []struct {
		player  int
		head    grid.Cell
		heading grid.Move
		name    string
	}{
		{0, grid.Cell{X: 2, Y: 2}, grid.Right, "Player 1"},
		{1, grid.Cell{X: 17, Y: 2}, grid.Down, "Player 2"},
		{2, grid.Cell{X: 2, Y: 13}, grid.Up, "Player 3"},
		{3, grid.Cell{X: 17, Y: 13}, grid.Left, "Player 4"},
	}

	for _, tc := range tests {
		s := New(geom, tc.player, "")
		if s.Head() != tc.head {
			t.Errorf("player %d: head = %v, expected %v", tc.player, s.Head(), tc.head)
		}
		if s.LastMove() != tc.heading {
			t.Errorf("player %d: heading = %v, expected %v", tc.player, s.LastMove(), tc.heading)
		}
		if s.Name() != tc.name {
			t.Errorf("player %d: name = %q, expected %q", tc.player, s.Name(), tc.name)
		}
		if s.Size() != 1 || !s.Alive() {
			t.Errorf("player %d: expected live snake of size 1", tc.player)
		}
	}
}

func TestNewInvalidPlayerPanics(t *testing.T) {
	for _, player := range []int{-1, 4} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("New with player %d should panic", player)
				}
			}()
			New(grid.NewGeometry(20, 20), player, "x")
		}()
	}
}

func TestNameTruncated(t *testing.T) {
	s := New(grid.NewGeometry(20, 20), 1, "Extraordinarily")
	if s.Name() != "Extraordin" {
		t.Errorf("Name() = %q, expected 10 runes", s.Name())
	}
}

func TestMoveKeepsLength(t *testing.T) {
	s := newTestSnake(t)
	s.Grow(3)
	before := s.Body()

	s.Move(grid.Down)

	after := s.Body()
	if len(after) != len(before) {
		t.Fatalf("length changed from %d to %d", len(before), len(after))
	}
	wantHead := grid.Cell{X: before[0].X, Y: before[0].Y + 1}
	if after[0] != wantHead {
		t.Errorf("head = %v, expected %v", after[0], wantHead)
	}
	for i := 1; i < len(after); i++ {
		if after[i] != before[i-1] {
			t.Errorf("segment %d = %v, expected %v", i, after[i], before[i-1])
		}
	}
	if s.LastHead() != before[0] {
		t.Errorf("LastHead() = %v, expected %v", s.LastHead(), before[0])
	}
}

func TestMoveIllegalKeepsHeading(t *testing.T) {
	tests := []struct {
		name      string
		requested grid.Move
	}{
		{"reverse", grid.Left},
		{"null", grid.Null},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestSnake(t)
			s.Move(tc.requested)
			if s.LastMove() != grid.Right {
				t.Errorf("LastMove() = %v, expected Right", s.LastMove())
			}
			if s.Head() != (grid.Cell{X: 3, Y: 2}) {
				t.Errorf("Head() = %v, expected (3,2)", s.Head())
			}
		})
	}
}

func TestMoveWraps(t *testing.T) {
	s := New(grid.NewGeometry(8, 8), 0, "")
	for i := 0; i < 6; i++ {
		s.Move(grid.Right)
	}
	if s.Head() != (grid.Cell{X: 0, Y: 2}) {
		t.Errorf("Head() = %v, expected wrap to (0,2)", s.Head())
	}
}

func TestGrowNeverChangesAlive(t *testing.T) {
	for _, alive := range []bool{true, false} {
		s := newTestSnake(t)
		if !alive {
			s.Kill()
		}
		size := s.Size()
		s.Grow(4)
		if s.Size() != size+4 {
			t.Errorf("Size() = %d, expected %d", s.Size(), size+4)
		}
		if s.Alive() != alive {
			t.Errorf("Grow changed alive from %v", alive)
		}
	}
}

func TestGrowPlacement(t *testing.T) {
	s := newTestSnake(t)
	s.Move(grid.Right) // head (3,2)

	// short body: appended
	s.Grow(2)
	body := s.Body()
	behind := grid.Cell{X: 2, Y: 2}
	if body[1] != behind || body[2] != behind {
		t.Fatalf("short growth body = %v", body)
	}

	// longer body: inserted at the second position
	tail := body[len(body)-1]
	s.Grow(1)
	body = s.Body()
	if body[1] != behind {
		t.Errorf("segment 1 = %v, expected %v", body[1], behind)
	}
	if body[len(body)-1] != tail {
		t.Errorf("tail moved to %v, expected %v", body[len(body)-1], tail)
	}
	if s.CheckSelfCollision() {
		t.Error("growth must not cause a self collision")
	}
}

func TestFlake(t *testing.T) {
	s := newTestSnake(t)
	s.Grow(4) // size 5

	if !s.Flake(2) {
		t.Fatal("Flake(2) on size 5 should succeed")
	}
	if s.Size() != 3 {
		t.Errorf("Size() = %d, expected 3", s.Size())
	}
	if flakes := s.ExtractFlakes(); len(flakes) != 2 {
		t.Errorf("ExtractFlakes() returned %d cells, expected 2", len(flakes))
	}
	if flakes := s.ExtractFlakes(); len(flakes) != 0 {
		t.Error("ExtractFlakes() should drain the buffer")
	}

	if s.Flake(3) {
		t.Error("Flake(3) on size 3 should fail")
	}
	if s.Size() != 3 {
		t.Errorf("failed flake changed size to %d", s.Size())
	}
}

func TestGrowThenFlakeRoundTrip(t *testing.T) {
	s := newTestSnake(t)
	s.Grow(2)
	base := s.Size()

	for g := 1; g <= 5; g++ {
		s.Grow(g)
		if !s.Flake(g) {
			t.Fatalf("Flake(%d) failed", g)
		}
		if s.Size() != base {
			t.Errorf("after grow/flake %d size = %d, expected %d", g, s.Size(), base)
		}
	}
}

func TestAlterSizeLethalShrink(t *testing.T) {
	s := newTestSnake(t)
	s.Grow(2) // size 3
	s.Move(grid.Right)
	preMove := []grid.Cell{{X: 2, Y: 2}, {X: 1, Y: 2}, {X: 1, Y: 2}}

	s.AlterSize(-3)

	if s.Alive() {
		t.Error("AlterSize(-3) on size 3 should kill")
	}
	if len(s.ExtractFlakes()) != 0 {
		t.Error("lethal shrink must not flake")
	}
	body := s.Body()
	if len(body) != len(preMove) {
		t.Fatalf("body = %v, expected rollback to %v", body, preMove)
	}
	for i := range body {
		if body[i] != preMove[i] {
			t.Errorf("segment %d = %v, expected %v", i, body[i], preMove[i])
		}
	}
}

func TestAlterSizeGrowAndShrink(t *testing.T) {
	s := newTestSnake(t)
	s.AlterSize(3)
	if s.Size() != 4 {
		t.Fatalf("Size() = %d, expected 4", s.Size())
	}
	s.AlterSize(-2)
	if s.Size() != 2 || !s.Alive() {
		t.Errorf("Size() = %d alive=%v, expected live size 2", s.Size(), s.Alive())
	}
	s.AlterSize(0)
	if s.Size() != 2 {
		t.Error("AlterSize(0) should be a no-op")
	}
}

func TestKillIdempotent(t *testing.T) {
	s := newTestSnake(t)
	s.Grow(2)
	before := s.Body()
	s.Move(grid.Down)

	s.Kill()
	once := s.Body()
	s.Kill()
	twice := s.Body()

	if s.Alive() {
		t.Error("Kill should mark the snake dead")
	}
	if len(once) != len(twice) {
		t.Fatalf("second Kill changed length %d -> %d", len(once), len(twice))
	}
	for i := range once {
		if once[i] != twice[i] || once[i] != before[i] {
			t.Errorf("segment %d: once=%v twice=%v before=%v", i, once[i], twice[i], before[i])
		}
	}
}

func TestCheckSelfCollision(t *testing.T) {
	s := newTestSnake(t)
	s.Grow(4) // size 5, tail stacked behind head
	s.Move(grid.Down)
	s.Move(grid.Left)
	sizeBefore := s.Size()
	s.Move(grid.Up) // into its own body

	if !s.CheckSelfCollision() {
		t.Fatalf("expected self collision, body = %v", s.Body())
	}
	if s.Alive() {
		t.Error("snake should be dead")
	}
	if s.Size() != sizeBefore {
		t.Errorf("Size() = %d, expected pre-move %d", s.Size(), sizeBefore)
	}
	if s.Head() != (grid.Cell{X: 1, Y: 3}) {
		t.Errorf("Head() = %v, expected rollback to (1,3)", s.Head())
	}
}

func TestScoreSaturates(t *testing.T) {
	s := newTestSnake(t)
	s.IncrementScore(25)
	s.DecrementScore(100)
	if s.Score() != 0 {
		t.Errorf("Score() = %d, expected 0", s.Score())
	}

	s.IncrementScore(math.MaxInt - 5)
	s.IncrementScore(10)
	if s.Score() != math.MaxInt {
		t.Errorf("Score() = %d, expected MaxInt", s.Score())
	}

	s.IncrementScore(-10)
	if s.Score() != math.MaxInt-10 {
		t.Errorf("negative increment should decrement, got %d", s.Score())
	}
}

func TestMovePassThroughReset(t *testing.T) {
	s := newTestSnake(t)
	s.GrantPassThrough()
	s.BeginTurn()
	if !s.PassThrough() {
		t.Fatal("BeginTurn must not clear pass-through")
	}
	s.Move(grid.Right)
	if s.PassThrough() {
		t.Error("Move should clear pass-through")
	}
	if !s.Moved() {
		t.Error("Moved() should be true after Move")
	}
}

func TestHeadEmptyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Head() on empty body should panic")
		}
	}()
	s := &Snake{}
	s.Head()
}
