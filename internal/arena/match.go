package arena

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/flaky-snakey/internal/control"
	"github.com/vovakirdan/flaky-snakey/internal/core"
	"github.com/vovakirdan/flaky-snakey/internal/food"
	"github.com/vovakirdan/flaky-snakey/internal/grid"
	"github.com/vovakirdan/flaky-snakey/internal/obstacle"
	"github.com/vovakirdan/flaky-snakey/internal/snake"
)

// MovementTimer identifies the movement clock. Decay timers are numbered
// from food.FirstTimerID.
const MovementTimer core.TimerID = 0

// ErrPlayers is returned for a player count outside [1, 4].
var ErrPlayers = errors.New("arena: need between 1 and 4 snakes")

// Settings describes one match.
type Settings struct {
	Geom   grid.Geometry
	Humans int
	AI     int
	Tier   control.Tier
	// Names are applied in roster order; missing names default to "Player N".
	Names []string

	FoodMin      int
	FoodMax      int
	ScorePerFood int
	TimerBudget  int

	MoveInterval time.Duration
	RotInterval  time.Duration

	// Walls places the corner walls when they leave the spawn points free.
	Walls bool
	// Demo disables food decay.
	Demo bool
}

// Players returns the total number of snakes.
func (s Settings) Players() int {
	return s.Humans + s.AI
}

// Match is one game session: the roster, the food and obstacle fields, the
// human controllers and the movement clock.
type Match struct {
	id       uuid.UUID
	settings Settings
	rng      *rand.Rand
	log      *log.Logger

	snakes    *Manager
	food      *food.Manager
	obstacles *obstacle.Manager
	board     *Board
	humans    []*control.Human
	clock     *core.Clock

	ticks          uint64
	spawnAvailable bool
	over           bool
	winner         int
	paused         bool
	closed         bool
	started        time.Time
}

// NewMatch builds a ready-to-run match. A nil logger discards output.
func NewMatch(s Settings, seed int64, logger *log.Logger) (*Match, error) {
	if s.Humans < 0 || s.AI < 0 || s.Players() < 1 || s.Players() > snake.MaxPlayers {
		return nil, fmt.Errorf("arena: %d humans and %d AI: %w", s.Humans, s.AI, ErrPlayers)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	fm, err := food.NewManager(s.Geom, food.Options{
		Min:         s.FoodMin,
		Max:         s.FoodMax,
		RotInterval: s.RotInterval,
		TimerBudget: s.TimerBudget,
		Demo:        s.Demo,
	})
	if err != nil {
		return nil, fmt.Errorf("arena: %w", err)
	}

	m := &Match{
		id:             uuid.New(),
		settings:       s,
		rng:            rand.New(rand.NewSource(seed)),
		log:            logger,
		food:           fm,
		obstacles:      obstacle.NewManager(s.Geom),
		board:          NewBoard(),
		clock:          core.NewClock(MovementTimer, s.MoveInterval),
		spawnAvailable: true,
		winner:         NoWinner,
		started:        time.Now(),
	}
	m.snakes = NewManager(s.Geom, m.board)

	if s.Walls {
		protected := snake.SpawnPoints(s.Geom)[:s.Players()]
		if !m.obstacles.SetObstacles(obstacle.DefaultWalls(s.Geom), protected) {
			m.log.Debug("corner walls skipped", "grid", fmt.Sprintf("%dx%d", s.Geom.Width, s.Geom.Height))
		}
	}

	for i := 0; i < s.Players(); i++ {
		name := ""
		if i < len(s.Names) {
			name = s.Names[i]
		}
		if _, err := m.snakes.AddSnake(name, nil); err != nil {
			return nil, err
		}

		if i < s.Humans {
			h := control.NewHuman()
			m.humans = append(m.humans, h)
			m.snakes.SetController(i, h)
			continue
		}
		m.snakes.SetController(i, control.NewAI(s.Tier, control.Handles{
			Index:     i,
			Geom:      s.Geom,
			Snakes:    m.snakes,
			Food:      m.food,
			Obstacles: m.obstacles,
		}, m.rng))
	}

	m.log.Debug("match created", "id", m.id, "humans", s.Humans, "ai", s.AI, "tier", s.Tier, "seed", seed)
	return m, nil
}

// ID returns the match identifier.
func (m *Match) ID() string {
	return m.id.String()
}

// Settings returns the settings the match was built with.
func (m *Match) Settings() Settings {
	return m.settings
}

// Press forwards a heading to the human controlling snake player. Presses
// for AI or unknown players are ignored.
func (m *Match) Press(player int, move grid.Move) {
	if player < 0 || player >= len(m.humans) {
		return
	}
	m.humans[player].Press(move)
}

// Advance moves both clocks by elapsed and runs any due movement ticks.
// It returns the number of movement ticks run.
func (m *Match) Advance(elapsed time.Duration) int {
	if m.paused || m.closed || m.over {
		return 0
	}
	m.OnDecayTick(elapsed)

	fires := m.clock.Advance(elapsed)
	ran := 0
	for ; ran < fires && !m.over; ran++ {
		m.OnMovementTick()
	}
	return ran
}

// OnDecayTick runs the food decay clock.
func (m *Match) OnDecayTick(elapsed time.Duration) {
	if m.closed {
		return
	}
	if n := m.food.Advance(elapsed); n > 0 {
		m.log.Debug("food rotted", "count", n)
	}
}

// OnMovementTick runs one simulation step: food upkeep, the snake phases,
// head interactions with obstacles and food, then flake conversion.
func (m *Match) OnMovementTick() {
	if m.over || m.closed {
		return
	}

	m.food.Update(m.rng)
	if m.food.SpawnRequired() && m.spawnAvailable {
		c := m.findSpawnCell()
		if c == grid.NoCell {
			m.spawnAvailable = false
			m.log.Debug("no free cell for food", "tick", m.ticks)
		} else if _, err := m.food.AddFood(c, m.rng); err != nil {
			m.log.Debug("food spawn failed", "cell", c, "err", err)
		}
	}

	m.snakes.Tick()
	m.updateInteractions()
	m.processFlakes()
	m.snakes.Tally()
	m.ticks++

	if m.snakes.IsGameOver() {
		m.finish()
	}
}

// updateInteractions kills snakes that hit an obstacle and feeds snakes
// whose head lies on food.
func (m *Match) updateInteractions() {
	for i := 0; i < m.snakes.Len(); i++ {
		s := m.snakes.at(i)
		if !s.Alive() {
			continue
		}
		head := s.Head()
		if m.obstacles.IsObstacleHere(head) {
			m.snakes.KillSnake(i)
			m.log.Debug("snake hit obstacle", "player", s.Name(), "cell", head)
			continue
		}
		it, ok := m.food.RemoveFood(head)
		if !ok {
			continue
		}
		m.snakes.AlterSnakeSize(i, it.Effect)
		m.snakes.IncrementScore(i, m.settings.ScorePerFood)
		if !s.Alive() {
			m.log.Debug("snake starved", "player", s.Name(), "effect", it.Effect)
		}
	}
}

func (m *Match) processFlakes() {
	for _, o := range m.snakes.ExtractFlakes() {
		m.obstacles.AddObstacle(o)
	}
}

// findSpawnCell returns a random cell free of snakes, obstacles and food,
// or grid.NoCell when the grid is full.
func (m *Match) findSpawnCell() grid.Cell {
	for _, i := range m.rng.Perm(m.settings.Geom.Area()) {
		c := m.settings.Geom.CellAt(i)
		if m.snakes.IsSnakeHere(c) || m.obstacles.IsObstacleHere(c) || m.food.IsFoodHere(c) {
			continue
		}
		return c
	}
	return grid.NoCell
}

func (m *Match) finish() {
	m.over = true
	m.winner = m.snakes.WinnerIndex()
	m.food.Close()

	switch m.winner {
	case Draw:
		m.log.Debug("match over", "id", m.id, "ticks", m.ticks, "result", "draw")
	case NoWinner:
		m.log.Debug("match over", "id", m.id, "ticks", m.ticks, "result", "no winner")
	default:
		s := m.snakes.at(m.winner)
		m.log.Debug("match over", "id", m.id, "ticks", m.ticks, "winner", s.Name(), "score", s.Score())
	}
}

// SetMoveInterval changes the movement cadence.
func (m *Match) SetMoveInterval(d time.Duration) {
	m.clock.SetInterval(d)
}

// MoveInterval returns the movement cadence.
func (m *Match) MoveInterval() time.Duration {
	return m.clock.Interval()
}

// Pause stops both clocks.
func (m *Match) Pause() {
	m.paused = true
	m.clock.Pause()
	m.food.Pause()
}

// Resume restarts both clocks.
func (m *Match) Resume() {
	if m.closed {
		return
	}
	m.paused = false
	m.clock.Resume()
	if !m.over {
		m.food.Resume()
	}
}

// Paused reports whether the match is paused.
func (m *Match) Paused() bool {
	return m.paused
}

// Close stops the clocks and releases every decay timer. A closed match
// never ticks again.
func (m *Match) Close() {
	if m.closed {
		return
	}
	m.closed = true
	m.clock.Pause()
	m.food.Close()
}

// Over reports whether every snake is dead.
func (m *Match) Over() bool {
	return m.over
}

// Winner returns the winning roster index, Draw or NoWinner. It is only
// meaningful once the match is over.
func (m *Match) Winner() int {
	return m.winner
}

// Ticks returns the number of movement ticks run.
func (m *Match) Ticks() uint64 {
	return m.ticks
}

// Geometry returns the grid size.
func (m *Match) Geometry() grid.Geometry {
	return m.settings.Geom
}

// Snakes returns read-only views of the roster.
func (m *Match) Snakes() []snake.View {
	return m.snakes.Snakes()
}

// Food returns the current food items.
func (m *Match) Food() []food.Item {
	return m.food.Items()
}

// Obstacles returns the walls and flakes.
func (m *Match) Obstacles() []obstacle.Obstacle {
	return m.obstacles.Obstacles()
}

// Board returns the scoreboard.
func (m *Match) Board() *Board {
	return m.board
}

// Living returns the number of living snakes.
func (m *Match) Living() int {
	return m.snakes.Living()
}

// BestScore returns the highest score on the roster.
func (m *Match) BestScore() int {
	best := 0
	for _, s := range m.snakes.Snakes() {
		best = core.Max(best, s.Score())
	}
	return best
}
