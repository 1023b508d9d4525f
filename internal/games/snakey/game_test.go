package snakey

import (
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/flaky-snakey/internal/arena"
	"github.com/vovakirdan/flaky-snakey/internal/config"
	"github.com/vovakirdan/flaky-snakey/internal/control"
	"github.com/vovakirdan/flaky-snakey/internal/core"
	"github.com/vovakirdan/flaky-snakey/internal/grid"
	"github.com/vovakirdan/flaky-snakey/internal/registry"
)

// testConfig is a quiet match: no food, no walls, fixed speed.
func testConfig(humans, ai int) config.SnakeyConfig {
	cfg := config.DefaultSnakeyConfig()
	cfg.Grid = config.GridConfig{Width: 8, Height: 8}
	cfg.Players = config.PlayersConfig{Humans: humans, AI: ai, Tier: "smart"}
	cfg.Food.Min, cfg.Food.Max = 0, 0
	cfg.Difficulty.Enabled = false
	return cfg
}

// newGame starts a game at 10 frames per second so that every Step runs
// exactly one 100ms movement tick.
func newGame(t *testing.T, g *Game, cfg config.SnakeyConfig, screenW, screenH int) *Game {
	t.Helper()
	g.UseConfig(cfg)
	t.Cleanup(g.Close)
	g.Reset(core.RuntimeConfig{ScreenW: screenW, ScreenH: screenH, TickRate: 10, Seed: 42})
	if err := g.Err(); err != nil {
		t.Fatalf("Reset() config error: %v", err)
	}
	return g
}

func press(player core.PlayerID, a core.Action) core.MultiInputFrame {
	in := core.NewMultiInputFrame()
	in.Set(player, a)
	return in
}

func TestRegistered(t *testing.T) {
	for _, id := range []string{"flaky", "flaky_demo"} {
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q) failed: %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("ID() = %q, expected %q", g.ID(), id)
		}
	}
}

func TestSteering(t *testing.T) {
	g := newGame(t, New(), testConfig(1, 0), 80, 24)

	g.Step(press(core.Player1, core.ActionDown))

	head := g.Match().Snakes()[0].Head()
	if head != (grid.Cell{X: 2, Y: 3}) {
		t.Errorf("head = %v, expected (2,3)", head)
	}
	if g.Match().Ticks() != 1 {
		t.Errorf("Ticks() = %d, expected one movement tick per frame", g.Match().Ticks())
	}
}

func TestPause(t *testing.T) {
	g := newGame(t, New(), testConfig(1, 0), 80, 24)

	g.Step(press(core.Player1, core.ActionPause))
	if !g.State().Paused || g.Snapshot().State != StatePaused {
		t.Fatal("expected paused state")
	}
	for i := 0; i < 20; i++ {
		g.Step(core.NewMultiInputFrame())
	}
	if g.Match().Ticks() != 0 {
		t.Errorf("paused match ran %d ticks", g.Match().Ticks())
	}

	// any player may unpause
	g.Step(press(core.Player3, core.ActionPause))
	if g.State().Paused {
		t.Fatal("expected running state")
	}
	if g.Match().Ticks() != 1 {
		t.Errorf("Ticks() = %d after resume, expected 1", g.Match().Ticks())
	}
}

func TestCrossingDrawAndRestart(t *testing.T) {
	// P1 at (2,2) heading right, P2 at (5,2) turned left: they swap cells
	// on the second tick
	g := newGame(t, New(), testConfig(2, 0), 80, 24)

	g.Step(press(core.Player2, core.ActionLeft))
	g.Step(core.NewMultiInputFrame())

	if !g.State().GameOver {
		t.Fatal("expected game over")
	}
	r, ok := g.Result()
	if !ok {
		t.Fatal("Result() should report a finished match")
	}
	if r.Winner != arena.Draw {
		t.Errorf("winner = %d, expected Draw", r.Winner)
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Draw!") {
		t.Error("expected draw overlay")
	}

	old := g.Match().ID()
	g.Step(press(core.Player1, core.ActionRestart))
	if g.State().GameOver || g.Match().Ticks() != 0 {
		t.Error("restart should start a fresh match")
	}
	if g.Match().ID() == old {
		t.Error("restart should create a new match ID")
	}
}

func TestTooSmallScreen(t *testing.T) {
	g := newGame(t, New(), testConfig(1, 0), 12, 6)

	if g.Snapshot().State != StatePausedSmall {
		t.Fatalf("State = %s, expected %s", g.Snapshot().State, StatePausedSmall)
	}
	g.Step(core.NewMultiInputFrame())
	if g.Match().Ticks() != 0 {
		t.Error("match should not run while the window is too small")
	}

	g.Resize(80, 24)
	g.Step(core.NewMultiInputFrame())
	if g.Match().Ticks() != 1 {
		t.Errorf("Ticks() = %d after resize, expected 1", g.Match().Ticks())
	}
}

func TestRenderShowsPlayers(t *testing.T) {
	cfg := testConfig(1, 1)
	cfg.Players.Names = []string{"ann", "bot"}
	g := newGame(t, New(), cfg, 80, 24)

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	hud := screen.Row(1)
	if !strings.Contains(hud, "ann 0") || !strings.Contains(hud, "bot 0") {
		t.Errorf("HUD = %q, expected both players", hud)
	}
	if !strings.Contains(screen.Row(0), "Flaky Snakey") {
		t.Errorf("title row = %q", screen.Row(0))
	}
}

func TestRenderHUDReadsScoreboard(t *testing.T) {
	cfg := testConfig(1, 1)
	cfg.Players.Names = []string{"ann", "bot"}
	g := newGame(t, New(), cfg, 80, 24)

	board := g.Match().Board()
	tests := []struct {
		name   string
		update func() error
		want   string
	}{
		{"score", func() error { return board.UpdateScore(1, 77) }, "+ bot 77"},
		{"dead marker", func() error { return board.SetAlive(0, false) }, "x ann 0"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.update(); err != nil {
				t.Fatalf("scoreboard update failed: %v", err)
			}
			screen := core.NewScreen(80, 24)
			g.Render(screen)
			if hud := screen.Row(1); !strings.Contains(hud, tc.want) {
				t.Errorf("HUD = %q, expected %q", hud, tc.want)
			}
		})
	}
}

func TestDemoNeverRecords(t *testing.T) {
	g := newGame(t, NewDemo(), testConfig(1, 0), 80, 24)

	settings := g.Match().Settings()
	if settings.Humans != 0 || settings.AI != 1 || !settings.Demo {
		t.Errorf("demo settings = %+v", settings)
	}
	if _, ok := g.Result(); ok {
		t.Error("demo matches are never recorded")
	}
}

func TestDeterminism(t *testing.T) {
	cfg := testConfig(0, 4)
	cfg.Grid = config.GridConfig{Width: 20, Height: 20, Walls: true}
	cfg.Food.Min, cfg.Food.Max = 2, 5

	g1 := newGame(t, New(), cfg, 80, 30)
	g2 := newGame(t, New(), cfg, 80, 30)

	for i := 0; i < 200; i++ {
		in := core.NewMultiInputFrame()
		g1.Step(in)
		g2.Step(in)
	}

	if !reflect.DeepEqual(g1.Snapshot(), g2.Snapshot()) {
		t.Errorf("snapshots differ:\n%+v\n%+v", g1.Snapshot(), g2.Snapshot())
	}
}

func TestMatchSettings(t *testing.T) {
	cfg := config.DefaultSnakeyConfig()
	cfg.Players.Tier = "bogus"
	s := MatchSettings(cfg, false)

	if s.Tier != control.TierGeneric {
		t.Errorf("Tier = %q, expected generic fallback", s.Tier)
	}
	if s.Geom.Width != cfg.Grid.Width || s.Geom.Height != cfg.Grid.Height {
		t.Errorf("Geom = %+v", s.Geom)
	}
	if s.MoveInterval != cfg.MoveInterval() || s.RotInterval != cfg.RotInterval() {
		t.Errorf("intervals = %v, %v", s.MoveInterval, s.RotInterval)
	}
	if s.TimerBudget != cfg.Food.DecayTimers || s.Walls != cfg.Grid.Walls {
		t.Errorf("settings = %+v", s)
	}
}

func TestUseConfig(t *testing.T) {
	cfg := testConfig(0, 2)
	cfg.Grid.Width, cfg.Grid.Height = 12, 10

	g := New()
	t.Cleanup(g.Close)
	g.UseConfig(cfg)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 10, Seed: 1})

	if err := g.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}
	s := g.Match().Settings()
	if s.AI != 2 || s.Humans != 0 || s.Geom.Width != 12 || s.Geom.Height != 10 {
		t.Errorf("settings = %+v", s)
	}

	// an invalid instance config falls back to the defaults
	cfg.Grid.Width = 1
	g.UseConfig(cfg)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 10, Seed: 1})
	if g.Err() == nil {
		t.Error("expected a config error")
	}
	if g.Config().Grid.Width != config.DefaultSnakeyConfig().Grid.Width {
		t.Errorf("width = %d, expected the default", g.Config().Grid.Width)
	}
}
