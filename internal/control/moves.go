package control

import (
	"math/rand"

	"github.com/vovakirdan/flaky-snakey/internal/grid"
	"github.com/vovakirdan/flaky-snakey/internal/snake"
)

// PossibleMoves returns the three headings reachable from last without
// reversing: straight on first, then the two perpendiculars.
func PossibleMoves(last grid.Move) []grid.Move {
	switch last {
	case grid.Up:
		return []grid.Move{grid.Up, grid.Left, grid.Right}
	case grid.Right:
		return []grid.Move{grid.Right, grid.Up, grid.Down}
	case grid.Left:
		return []grid.Move{grid.Left, grid.Up, grid.Down}
	case grid.Down:
		return []grid.Move{grid.Down, grid.Left, grid.Right}
	default:
		return nil
	}
}

// IsSafe reports whether c holds neither an obstacle nor any snake segment.
// Missing readers count as empty.
func IsSafe(h Handles, c grid.Cell) bool {
	if h.Obstacles != nil && h.Obstacles.IsObstacleHere(c) {
		return false
	}
	if h.Snakes != nil && h.Snakes.IsSnakeHere(c) {
		return false
	}
	return true
}

// SafeMoves filters PossibleMoves to those whose next head cell is safe.
func SafeMoves(h Handles, self snake.View) []grid.Move {
	head := self.Head()
	var safe []grid.Move
	for _, m := range PossibleMoves(self.LastMove()) {
		if IsSafe(h, h.Geom.Step(head, m)) {
			safe = append(safe, m)
		}
	}
	return safe
}

// RawMove picks uniformly among the possible moves, ignoring safety. With no
// known heading any of the four moves may come out.
func RawMove(last grid.Move, rng *rand.Rand) grid.Move {
	moves := PossibleMoves(last)
	if len(moves) == 0 {
		return grid.Moves[rng.Intn(len(grid.Moves))]
	}
	return moves[rng.Intn(len(moves))]
}

// SafeMove picks a random safe move, or keeps the heading when there is none.
func SafeMove(h Handles, self snake.View, rng *rand.Rand) grid.Move {
	safe := SafeMoves(h, self)
	if len(safe) == 0 {
		return self.LastMove()
	}
	return safe[rng.Intn(len(safe))]
}

// Chase steers toward target. The preferred heading follows the X axis and
// the secondary the Y axis; when swap is set they trade places. If neither
// is safe a random safe move is used, and with no safe move the snake keeps
// its heading.
func Chase(h Handles, self snake.View, target grid.Cell, swap bool, rng *rand.Rand) grid.Move {
	preferred, secondary := chaseAxes(self.Head(), target)
	if swap {
		preferred, secondary = secondary, preferred
	}

	safe := SafeMoves(h, self)
	switch {
	case len(safe) == 0:
		return self.LastMove()
	case contains(safe, preferred):
		return preferred
	case contains(safe, secondary):
		return secondary
	default:
		return safe[rng.Intn(len(safe))]
	}
}

func chaseAxes(head, target grid.Cell) (preferred, secondary grid.Move) {
	dx := target.X - head.X
	dy := target.Y - head.Y

	switch {
	case dx < 0:
		preferred = grid.Left
	case dx > 0:
		preferred = grid.Right
	case dy < 0:
		preferred = grid.Up
	default:
		preferred = grid.Down
	}

	switch {
	case dy < 0:
		secondary = grid.Up
	case dy > 0:
		secondary = grid.Down
	case dx < 0:
		secondary = grid.Left
	default:
		secondary = grid.Right
	}
	return preferred, secondary
}

func contains(moves []grid.Move, m grid.Move) bool {
	for _, x := range moves {
		if x == m {
			return true
		}
	}
	return false
}
