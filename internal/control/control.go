// Package control produces one move per tick for each snake. Human input and
// three AI tiers share the Controller interface; the AI tiers read game state
// through non-owning handles and never mutate it.
package control

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/flaky-snakey/internal/food"
	"github.com/vovakirdan/flaky-snakey/internal/grid"
	"github.com/vovakirdan/flaky-snakey/internal/snake"
)

// Controller yields the next move for one snake.
type Controller interface {
	Move() grid.Move
}

// SnakeReader is read access to the snake roster.
type SnakeReader interface {
	Len() int
	SnakeAt(i int) (snake.View, bool)
	IsSnakeHere(c grid.Cell) bool
}

// FoodReader is read access to the food list.
type FoodReader interface {
	FindNearestFood(from grid.Cell, growthOnly bool) grid.Cell
	FoodAt(c grid.Cell) (food.Item, bool)
}

// ObstacleReader is read access to the obstacle field.
type ObstacleReader interface {
	IsObstacleHere(c grid.Cell) bool
}

// Handles identify a controller's snake by roster index and give read access
// to the managers. Any field may be unset; controllers check on every call.
type Handles struct {
	Index     int
	Geom      grid.Geometry
	Snakes    SnakeReader
	Food      FoodReader
	Obstacles ObstacleReader
}

// self resolves the controller's own snake.
func (h Handles) self() (snake.View, bool) {
	if h.Snakes == nil || h.Index < 0 || h.Index >= h.Snakes.Len() {
		return nil, false
	}
	return h.Snakes.SnakeAt(h.Index)
}

// Tier names an AI strength as used in configuration.
type Tier string

const (
	TierGeneric Tier = "generic"
	TierDumb    Tier = "dumb"
	TierSmart   Tier = "smart"
)

// Tiers lists the valid tier names.
var Tiers = []Tier{TierGeneric, TierDumb, TierSmart}

// ParseTier validates a tier name.
func ParseTier(s string) (Tier, error) {
	for _, t := range Tiers {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("control: unknown AI tier %q", s)
}

// NewAI builds the controller for a tier. Unknown tiers get the random
// controller.
func NewAI(tier Tier, h Handles, rng *rand.Rand) Controller {
	switch tier {
	case TierDumb:
		return NewGreedy(h, rng)
	case TierSmart:
		return NewHeuristic(h, rng)
	default:
		return NewRandom(h, rng)
	}
}
