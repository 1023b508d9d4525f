// Package snakey adapts an arena.Match to the registry.Game interface. The
// platform steps it at the frame rate; the match runs its own movement and
// decay clocks on the elapsed frame time.
package snakey

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flaky-snakey/internal/arena"
	"github.com/vovakirdan/flaky-snakey/internal/config"
	"github.com/vovakirdan/flaky-snakey/internal/control"
	"github.com/vovakirdan/flaky-snakey/internal/core"
	"github.com/vovakirdan/flaky-snakey/internal/grid"
	"github.com/vovakirdan/flaky-snakey/internal/registry"
)

// Mode selects between a regular match and the attract-mode demo.
type Mode string

const (
	ModeMatch Mode = "flaky"
	ModeDemo  Mode = "flaky_demo"
)

// hudHeight is the number of screen rows above the grid.
const hudHeight = 3

// demoRestartDelay is how long a finished demo stays on screen.
const demoRestartDelay = 2 * time.Second

// Package-level settings chosen by the CLI or the setup menu before Reset.
var (
	configPath       string
	difficultyPreset string
	logger           *log.Logger
)

// SetConfigPath sets the config file path used by the next Reset.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset used by the next Reset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = preset
}

// SetLogger sets the logger handed to new matches.
func SetLogger(l *log.Logger) {
	logger = l
}

// Game drives one match at a time.
type Game struct {
	mode       Mode
	cfg        config.SnakeyConfig
	custom     *config.SnakeyConfig
	difficulty *config.DifficultyManager
	match      *arena.Match
	rng        *rand.Rand

	frame    time.Duration
	screenW  int
	screenH  int
	layout   grid.Layout
	tick     uint64
	paused   bool
	tooSmall bool
	overFor  time.Duration
	loadErr  error
}

// New creates a regular match game.
func New() *Game {
	return &Game{mode: ModeMatch}
}

// NewDemo creates the self-playing demo.
func NewDemo() *Game {
	return &Game{mode: ModeDemo}
}

func init() {
	registry.Register(string(ModeMatch), func() registry.Game {
		return New()
	})
	registry.Register(string(ModeDemo), func() registry.Game {
		return NewDemo()
	})
}

// UseConfig sets the configuration for this instance only, taking
// precedence over file loading. It applies from the next Reset.
func (g *Game) UseConfig(cfg config.SnakeyConfig) {
	g.custom = &cfg
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return string(g.mode)
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeDemo {
		return "Flaky Snakey (Demo)"
	}
	return "Flaky Snakey"
}

// Reset loads the configuration and starts a new match.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.frame = frameInterval(cfg.TickRate)
	g.tick = 0
	g.paused = false
	g.overFor = 0

	g.cfg, g.loadErr = g.loadConfig()
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
	g.start(cfg.Seed)
}

func frameInterval(tickRate int) time.Duration {
	if tickRate <= 0 {
		tickRate = 60
	}
	return time.Second / time.Duration(tickRate)
}

// loadConfig resolves the match configuration. Load failures fall back to
// the defaults and are reported through Err.
func (g *Game) loadConfig() (config.SnakeyConfig, error) {
	var (
		cfg config.SnakeyConfig
		err error
	)
	switch {
	case g.custom != nil:
		cfg = *g.custom
		cfg.Normalize()
		err = cfg.Validate()
	default:
		cfg, err = config.LoadSnakey(configPath)
	}
	if err != nil {
		cfg = config.DefaultSnakeyConfig()
	}

	if g.mode == ModeDemo {
		demo := config.DemoSnakeyConfig()
		demo.Grid = cfg.Grid
		demo.Gameplay = cfg.Gameplay
		cfg = demo
	}
	// a per-instance config already carries its own preset
	if difficultyPreset != "" && g.custom == nil {
		config.ApplySnakeyPreset(&cfg, config.DifficultyPreset(difficultyPreset))
	}
	return cfg, err
}

func (g *Game) start(seed int64) {
	if g.match != nil {
		g.match.Close()
	}

	m, err := arena.NewMatch(MatchSettings(g.cfg, g.mode == ModeDemo), seed, logger)
	if err != nil {
		// only reachable with an invalid instance config; the defaults always build
		g.loadErr = err
		g.cfg = config.DefaultSnakeyConfig()
		m, _ = arena.NewMatch(MatchSettings(g.cfg, g.mode == ModeDemo), seed, logger)
	}
	g.match = m
	g.layout = grid.CenteredLayout(m.Geometry(), g.screenW, g.screenH, hudHeight)
	g.tooSmall = !g.layout.Fits(g.screenW, g.screenH)
}

// MatchSettings converts a validated configuration into match settings.
func MatchSettings(cfg config.SnakeyConfig, demo bool) arena.Settings {
	tier, err := control.ParseTier(cfg.Players.Tier)
	if err != nil {
		tier = control.TierGeneric
	}
	return arena.Settings{
		Geom:         grid.NewGeometry(cfg.Grid.Width, cfg.Grid.Height),
		Humans:       cfg.Players.Humans,
		AI:           cfg.Players.AI,
		Tier:         tier,
		Names:        cfg.Players.Names,
		FoodMin:      cfg.Food.Min,
		FoodMax:      cfg.Food.Max,
		ScorePerFood: cfg.Food.ScorePerFood,
		TimerBudget:  cfg.Food.DecayTimers,
		MoveInterval: cfg.MoveInterval(),
		RotInterval:  cfg.RotInterval(),
		Walls:        cfg.Grid.Walls,
		Demo:         demo,
	}
}

// Step advances the match by one frame.
func (g *Game) Step(in core.MultiInputFrame) core.StepResult {
	g.tick++

	if g.match.Over() {
		if in.Has(core.ActionRestart) {
			g.restart()
			return core.StepResult{State: g.State()}
		}
		if g.mode == ModeDemo {
			g.overFor += g.frame
			if g.overFor >= demoRestartDelay {
				g.restart()
			}
		}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.togglePause()
	}
	if g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	g.steer(in)
	if ran := g.match.Advance(g.frame); ran > 0 && g.difficulty.IsEnabled() {
		g.match.SetMoveInterval(g.difficulty.MoveInterval(g.cfg.MoveInterval(), g.match.BestScore(), int(g.match.Ticks())))
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) restart() {
	g.overFor = 0
	g.paused = false
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
	g.start(g.rng.Int63())
}

func (g *Game) togglePause() {
	g.paused = !g.paused
	if g.paused {
		g.match.Pause()
	} else {
		g.match.Resume()
	}
}

// steer forwards the latest steering action of each human seat.
func (g *Game) steer(in core.MultiInputFrame) {
	for p := 0; p < g.cfg.Players.Humans; p++ {
		if mv, ok := actionMove(in.Player(core.PlayerID(p)).Last); ok {
			g.match.Press(p, mv)
		}
	}
}

func actionMove(a core.Action) (grid.Move, bool) {
	switch a {
	case core.ActionUp:
		return grid.Up, true
	case core.ActionDown:
		return grid.Down, true
	case core.ActionLeft:
		return grid.Left, true
	case core.ActionRight:
		return grid.Right, true
	}
	return grid.Null, false
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.match.BestScore(),
		GameOver: g.match.Over(),
		Paused:   g.paused,
	}
}

// Resize adapts the layout to a new screen size without restarting.
func (g *Game) Resize(w, h int) {
	g.screenW, g.screenH = w, h
	g.layout = grid.CenteredLayout(g.match.Geometry(), w, h, hudHeight)
	g.tooSmall = !g.layout.Fits(w, h)
}

// Result returns the finished match summary. Demo matches and matches still
// in progress report false.
func (g *Game) Result() (arena.Result, bool) {
	if g.mode == ModeDemo || !g.match.Over() {
		return arena.Result{}, false
	}
	return g.match.Result(), true
}

// Match exposes the running match.
func (g *Game) Match() *arena.Match {
	return g.match
}

// Config returns the configuration of the running match.
func (g *Game) Config() config.SnakeyConfig {
	return g.cfg
}

// Err reports the configuration error that forced the defaults, if any.
func (g *Game) Err() error {
	return g.loadErr
}

// Close releases the match timers.
func (g *Game) Close() {
	if g.match != nil {
		g.match.Close()
	}
}
