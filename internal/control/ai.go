package control

import (
	"math/rand"

	"github.com/vovakirdan/flaky-snakey/internal/grid"
)

// Random picks uniformly among the three non-reversing moves without looking
// at the board.
type Random struct {
	h   Handles
	rng *rand.Rand
}

// NewRandom creates the random tier.
func NewRandom(h Handles, rng *rand.Rand) *Random {
	return &Random{h: h, rng: rng}
}

// Move implements Controller.
func (r *Random) Move() grid.Move {
	return fallbackMove(r.h, r.rng)
}

// Greedy chases the nearest food of any kind, flipping a coin each tick to
// decide which axis to close first. A small snake avoids decay food that
// could kill it and wanders safely instead.
type Greedy struct {
	h   Handles
	rng *rand.Rand
}

// NewGreedy creates the greedy ("dumb") tier.
func NewGreedy(h Handles, rng *rand.Rand) *Greedy {
	return &Greedy{h: h, rng: rng}
}

// Move implements Controller.
func (g *Greedy) Move() grid.Move {
	self, ok := g.h.self()
	if !ok || g.h.Food == nil || g.h.Obstacles == nil {
		return fallbackMove(g.h, g.rng)
	}

	head := self.Head()
	target := g.h.Food.FindNearestFood(head, false)
	if target == head {
		return SafeMove(g.h, self, g.rng)
	}

	avoid := g.h.Geom.Area() / 200
	item, _ := g.h.Food.FoodAt(target)
	if self.Size() >= avoid || item.Effect > 0 {
		return Chase(g.h, self, target, g.rng.Intn(2) == 0, g.rng)
	}
	return SafeMove(g.h, self, g.rng)
}

// Heuristic only targets growth food while small and always closes the X
// axis first.
type Heuristic struct {
	h   Handles
	rng *rand.Rand
}

// NewHeuristic creates the heuristic ("smart") tier.
func NewHeuristic(h Handles, rng *rand.Rand) *Heuristic {
	return &Heuristic{h: h, rng: rng}
}

// Move implements Controller.
func (s *Heuristic) Move() grid.Move {
	self, ok := s.h.self()
	if !ok || s.h.Food == nil || s.h.Obstacles == nil {
		return fallbackMove(s.h, s.rng)
	}

	head := self.Head()
	growthOnly := self.Size() <= s.h.Geom.Area()/100
	target := s.h.Food.FindNearestFood(head, growthOnly)
	if target == head {
		return SafeMove(s.h, self, s.rng)
	}
	return Chase(s.h, self, target, false, s.rng)
}

// fallbackMove is the raw random move, used when the snake handle is gone.
func fallbackMove(h Handles, rng *rand.Rand) grid.Move {
	last := grid.Null
	if self, ok := h.self(); ok {
		last = self.LastMove()
	}
	return RawMove(last, rng)
}
