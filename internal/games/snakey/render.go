package snakey

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/flaky-snakey/internal/arena"
	"github.com/vovakirdan/flaky-snakey/internal/core"
	"github.com/vovakirdan/flaky-snakey/internal/food"
	"github.com/vovakirdan/flaky-snakey/internal/grid"
	"github.com/vovakirdan/flaky-snakey/internal/obstacle"
)

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	g.renderHUD(dst)

	if g.tooSmall {
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	b := g.layout.Bounds()
	dst.DrawBox(core.NewRect(b.X-1, b.Y-1, b.W+2, b.H+2), core.ColorGray)

	g.renderObstacles(dst)
	g.renderFood(dst)
	g.renderSnakes(dst)

	switch {
	case g.match.Over():
		hint := "Press R to restart"
		if g.mode == ModeDemo {
			hint = "Restarting..."
		}
		g.renderOverlay(dst, g.outcome(), hint)
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderHUD draws the title line, one scoreboard entry per player and a
// separator.
func (g *Game) renderHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" %s  Tick: %d  Food: %d  Alive: %d",
		g.Title(), g.match.Ticks(), len(g.match.Food()), g.match.Living())
	dst.DrawText(0, 0, hud)

	snakes := g.match.Snakes()
	x := 1
	for i, slot := range g.match.Board().Slots() {
		mark := "+"
		color := core.ColorWhite
		if i < len(snakes) {
			color = snakes[i].Color()
		}
		if !slot.Alive {
			mark = "x"
			color = core.ColorGray
		}
		entry := fmt.Sprintf("%s %s %d", mark, slot.Name, slot.Score)
		dst.DrawTextColored(x, 1, entry, color)
		x += len([]rune(entry)) + 3
	}

	dst.DrawText(0, 2, strings.Repeat("─", dst.Width()))
}

func (g *Game) renderObstacles(dst *core.Screen) {
	for _, o := range g.match.Obstacles() {
		switch o.Kind {
		case obstacle.KindFlake:
			g.fillCell(dst, o.Cell, '░', o.Color)
		default:
			g.fillCell(dst, o.Cell, '▒', core.ColorGray)
		}
	}
}

func (g *Game) renderFood(dst *core.Screen) {
	for _, it := range g.match.Food() {
		r := g.layout.ToScreen(it.Cell)
		if it.Kind == food.KindDecay {
			dst.DrawTextColored(r.X, r.Y, "()", core.ColorMagenta)
			continue
		}
		label := fmt.Sprintf("%-2d", it.Effect)
		if it.Effect > 99 {
			label = "++"
		}
		dst.DrawTextColored(r.X, r.Y, label, core.ColorBrightGreen)
	}
}

// renderSnakes draws dead snakes first so living ones stay on top.
func (g *Game) renderSnakes(dst *core.Screen) {
	snakes := g.match.Snakes()
	for _, alive := range []bool{false, true} {
		for _, s := range snakes {
			if s.Alive() != alive {
				continue
			}
			color := s.Color()
			if !alive {
				color = core.ColorGray
			}
			body := s.Body()
			for i := len(body) - 1; i >= 0; i-- {
				fill := '█'
				if i == 0 {
					fill = '▓'
				}
				g.fillCell(dst, body[i], fill, color)
			}
		}
	}
}

func (g *Game) fillCell(dst *core.Screen, c grid.Cell, fill rune, color core.Color) {
	dst.DrawRect(g.layout.ToScreen(c), fill, color)
}

// outcome describes the finished match.
func (g *Game) outcome() string {
	switch w := g.match.Winner(); w {
	case arena.Draw:
		return "Draw!"
	case arena.NoWinner:
		return "Game Over"
	default:
		return fmt.Sprintf("%s wins with %d", g.match.Snakes()[w].Name(), g.match.Snakes()[w].Score())
	}
}

// renderOverlay draws a centered overlay message.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	w := dst.Width()
	h := dst.Height()

	maxLen := core.Max(len([]rune(line1)), len([]rune(line2)))
	boxW := maxLen + 4
	boxH := 5
	box := core.NewRect((w-boxW)/2, (h-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorWhite)
	dst.DrawTextCentered(box.Y+1, line1)
	dst.DrawTextCentered(box.Y+3, line2)
}
