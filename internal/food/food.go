// Package food manages the food items on the grid: spawn policy, decay
// timers and nearest-food queries for AI controllers.
package food

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/flaky-snakey/internal/core"
	"github.com/vovakirdan/flaky-snakey/internal/grid"
)

var (
	// ErrBounds is returned when the minimum food count exceeds the maximum.
	ErrBounds = errors.New("food: minimum exceeds maximum")
	// ErrOccupied is returned when food is added on a cell that already holds food.
	ErrOccupied = errors.New("food: cell already holds food")
)

// Kind is the food variant.
type Kind int

const (
	// KindGrowth always has a positive effect and never rots.
	KindGrowth Kind = iota
	// KindDecay has a negative effect and may rot.
	KindDecay
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	if k == KindDecay {
		return "decay"
	}
	return "growth"
}

// NoTimer marks an item without a decay timer.
const NoTimer core.TimerID = 0

// Item is a single piece of food.
type Item struct {
	Cell    grid.Cell
	Kind    Kind
	Effect  int
	TimerID core.TimerID
	Rotten  bool

	remaining time.Duration
}

// Decays reports whether the item carries a decay timer.
func (it Item) Decays() bool {
	return it.TimerID != NoTimer
}

// Remaining returns the time left before the item rots.
func (it Item) Remaining() time.Duration {
	return it.remaining
}

// Options configures a Manager.
type Options struct {
	Min         int
	Max         int
	RotInterval time.Duration
	// TimerBudget caps concurrent decay timers. Zero means DefaultTimerBudget.
	TimerBudget int
	// Demo disables decay timers entirely.
	Demo bool
}

// DefaultTimerBudget is the default number of concurrent decay timers.
const DefaultTimerBudget = 6

// Manager owns the food list.
type Manager struct {
	geom      grid.Geometry
	opts      Options
	maxEffect int

	items         []Item
	spawnRequired bool
	paused        bool
	timers        *timerPool
}

// NewManager creates a food manager. It fails when Min > Max or either bound
// is negative.
func NewManager(geom grid.Geometry, opts Options) (*Manager, error) {
	if opts.Min < 0 || opts.Max < 0 {
		return nil, fmt.Errorf("food: negative bounds [%d, %d]: %w", opts.Min, opts.Max, ErrBounds)
	}
	if opts.Min > opts.Max {
		return nil, fmt.Errorf("food: bounds [%d, %d]: %w", opts.Min, opts.Max, ErrBounds)
	}
	if opts.TimerBudget <= 0 {
		opts.TimerBudget = DefaultTimerBudget
	}
	return &Manager{
		geom:      geom,
		opts:      opts,
		maxEffect: MaxEffect(geom),
		timers:    newTimerPool(opts.TimerBudget),
	}, nil
}

// MaxEffect is the largest effect magnitude for a grid: one percent of its
// area, at least 1.
func MaxEffect(geom grid.Geometry) int {
	return core.Max(1, geom.Area()/100)
}

// MaxEffect returns the effect bound of this manager.
func (m *Manager) MaxEffect() int {
	return m.maxEffect
}

// AddFood spawns a random item at c. Three in four items are growth food.
// Decay food gets a timer unless running in demo mode; when the timer budget
// is exhausted the item becomes growth food instead.
func (m *Manager) AddFood(c grid.Cell, rng *rand.Rand) (Item, error) {
	if _, ok := m.FoodAt(c); ok {
		return Item{}, fmt.Errorf("food: add at %v: %w", c, ErrOccupied)
	}

	kind := KindGrowth
	if rng.Intn(4) == 0 {
		kind = KindDecay
	}

	timer := NoTimer
	if kind == KindDecay && !m.opts.Demo {
		id, ok := m.timers.acquire()
		if ok {
			timer = id
		} else {
			kind = KindGrowth
		}
	}

	effect := 1 + rng.Intn(m.maxEffect)
	if kind == KindDecay {
		effect = -effect
	}

	it := Item{
		Cell:      c,
		Kind:      kind,
		Effect:    effect,
		TimerID:   timer,
		remaining: m.opts.RotInterval,
	}
	m.items = append(m.items, it)
	return it, nil
}

// Place adds a specific item, bypassing the random spawn policy. Decay items
// get a timer when one is available.
func (m *Manager) Place(it Item) error {
	if _, ok := m.FoodAt(it.Cell); ok {
		return fmt.Errorf("food: place at %v: %w", it.Cell, ErrOccupied)
	}
	it.TimerID = NoTimer
	it.Rotten = false
	it.remaining = m.opts.RotInterval
	if it.Kind == KindDecay && !m.opts.Demo {
		if id, ok := m.timers.acquire(); ok {
			it.TimerID = id
		}
	}
	m.items = append(m.items, it)
	return nil
}

// RemoveFood removes the item at c and releases its timer.
func (m *Manager) RemoveFood(c grid.Cell) (Item, bool) {
	i := m.indexAt(c)
	if i < 0 {
		return Item{}, false
	}
	it := m.items[i]
	m.timers.release(it.TimerID)
	m.items = append(m.items[:i], m.items[i+1:]...)
	return it, true
}

// FoodAt returns the item at c.
func (m *Manager) FoodAt(c grid.Cell) (Item, bool) {
	i := m.indexAt(c)
	if i < 0 {
		return Item{}, false
	}
	return m.items[i], true
}

// IsFoodHere reports whether c holds food.
func (m *Manager) IsFoodHere(c grid.Cell) bool {
	return m.indexAt(c) >= 0
}

func (m *Manager) indexAt(c grid.Cell) int {
	for i := range m.items {
		if m.items[i].Cell.Intersects(c) {
			return i
		}
	}
	return -1
}

// Advance runs the decay clock: every timed item loses elapsed time and is
// marked rotten when it runs out. Returns the number of items that rotted.
func (m *Manager) Advance(elapsed time.Duration) int {
	if m.paused || elapsed <= 0 {
		return 0
	}
	rotted := 0
	for i := range m.items {
		it := &m.items[i]
		if !it.Decays() || it.Rotten {
			continue
		}
		it.remaining -= elapsed
		if it.remaining <= 0 {
			it.remaining = 0
			it.Rotten = true
			rotted++
		}
	}
	return rotted
}

// Update drops rotten items and recomputes the spawn flag: always below the
// minimum, and with a chance scaled by grid area below the maximum.
func (m *Manager) Update(rng *rand.Rand) {
	kept := m.items[:0]
	for _, it := range m.items {
		if it.Rotten {
			m.timers.release(it.TimerID)
			continue
		}
		kept = append(kept, it)
	}
	m.items = kept

	switch n := len(m.items); {
	case n < m.opts.Min:
		m.spawnRequired = true
	case n < m.opts.Max:
		// area/64 per mille
		m.spawnRequired = rng.Intn(64000) < m.geom.Area()
	default:
		m.spawnRequired = false
	}
}

// SpawnRequired reports whether the last Update asked for a new item.
func (m *Manager) SpawnRequired() bool {
	return m.spawnRequired
}

// FindNearestFood returns the cell of the nearest item by Manhattan
// distance, or from itself when there is no candidate. With growthOnly set
// only items with a positive effect are considered.
func (m *Manager) FindNearestFood(from grid.Cell, growthOnly bool) grid.Cell {
	best := from
	bestDist := -1
	for _, it := range m.items {
		if growthOnly && it.Effect <= 0 {
			continue
		}
		d := core.Abs(it.Cell.X-from.X) + core.Abs(it.Cell.Y-from.Y)
		if bestDist < 0 || d < bestDist {
			best = it.Cell
			bestDist = d
		}
	}
	return best
}

// Items returns a copy of the food list.
func (m *Manager) Items() []Item {
	out := make([]Item, len(m.items))
	copy(out, m.items)
	return out
}

// Len returns the number of items.
func (m *Manager) Len() int {
	return len(m.items)
}

// ActiveTimers returns the number of decay timers in use.
func (m *Manager) ActiveTimers() int {
	return m.timers.active()
}

// Pause stops decay until Resume.
func (m *Manager) Pause() {
	m.paused = true
}

// Resume restarts decay.
func (m *Manager) Resume() {
	m.paused = false
}

// Close pauses decay and releases every timer. Items stay on the grid but
// never rot afterwards.
func (m *Manager) Close() {
	m.paused = true
	for i := range m.items {
		m.timers.release(m.items[i].TimerID)
		m.items[i].TimerID = NoTimer
	}
}
