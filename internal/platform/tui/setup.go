package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/flaky-snakey/internal/config"
	"github.com/vovakirdan/flaky-snakey/internal/control"
	"github.com/vovakirdan/flaky-snakey/internal/core"
)

// setupField is one adjustable row of the setup screen.
type setupField int

const (
	fieldHumans setupField = iota
	fieldAI
	fieldTier
	fieldWidth
	fieldHeight
	fieldWalls
	fieldFoodMin
	fieldFoodMax
	fieldSpeed
	fieldPreset
	fieldStart
)

var presets = []config.DifficultyPreset{
	config.DifficultyFixed,
	config.DifficultyEasy,
	config.DifficultyNormal,
	config.DifficultyHard,
}

// SetupModel lets users adjust the match configuration before playing.
type SetupModel struct {
	cfg       config.SnakeyConfig
	preset    int
	cursor    setupField
	width     int
	height    int
	keyMapper *KeyMapper
	err       error
	choosing  bool
	quitting  bool
	back      bool
}

// NewSetupModel creates a setup screen starting from cfg.
func NewSetupModel(cfg config.SnakeyConfig, width, height int) SetupModel {
	preset := 0 // fixed
	if cfg.Difficulty.Enabled {
		preset = 2 // normal
	}
	return SetupModel{
		cfg:       cfg,
		preset:    preset,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(1),
		choosing:  true,
	}
}

// Init initializes the model.
func (m SetupModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m SetupModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < fieldStart {
			m.cursor++
		}
	case MenuActionLeft:
		m.adjust(-1)
	case MenuActionRight:
		m.adjust(1)
	case MenuActionSelect:
		m.cfg.Normalize()
		if m.err = m.cfg.Validate(); m.err != nil {
			return m, nil
		}
		m.choosing = false
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}
	return m, nil
}

// adjust changes the field under the cursor by delta steps.
func (m *SetupModel) adjust(delta int) {
	m.err = nil
	c := &m.cfg
	switch m.cursor {
	case fieldHumans:
		c.Players.Humans = core.Clamp(c.Players.Humans+delta, 0, config.MaxPlayers-c.Players.AI)
	case fieldAI:
		c.Players.AI = core.Clamp(c.Players.AI+delta, 0, config.MaxPlayers-c.Players.Humans)
	case fieldTier:
		c.Players.Tier = string(cycleTier(c.Players.Tier, delta))
	case fieldWidth:
		c.Grid.Width = core.Clamp(c.Grid.Width+delta, config.MinGridSize, config.MaxGridSize)
	case fieldHeight:
		c.Grid.Height = core.Clamp(c.Grid.Height+delta, config.MinGridSize, config.MaxGridSize)
	case fieldWalls:
		c.Grid.Walls = !c.Grid.Walls
	case fieldFoodMin:
		c.Food.Min = core.Clamp(c.Food.Min+delta, 0, c.Food.Max)
	case fieldFoodMax:
		c.Food.Max = core.Clamp(c.Food.Max+delta, c.Food.Min, c.Grid.Width*c.Grid.Height)
	case fieldSpeed:
		// faster is a shorter interval
		ms := c.Gameplay.MoveIntervalMs - 10*delta
		c.Gameplay.MoveIntervalMs = core.Clamp(ms, int(config.MinMoveInterval.Milliseconds()), 1000)
	case fieldPreset:
		m.preset = (m.preset + delta + len(presets)) % len(presets)
		config.ApplySnakeyPreset(c, presets[m.preset])
	}
}

func cycleTier(current string, delta int) control.Tier {
	i := 0
	for j, t := range control.Tiers {
		if string(t) == current {
			i = j
		}
	}
	n := len(control.Tiers)
	return control.Tiers[(i+delta+n)%n]
}

// View renders the setup screen.
func (m SetupModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("MATCH SETUP", m.width)))
	b.WriteString("\n\n")

	for f := fieldHumans; f <= fieldStart; f++ {
		cursor := "  "
		if f == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+m.row(f), m.width))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errStyle.Render(centerText(m.err.Error(), m.width)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Left/Right: Change  |  Enter: Start  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

func (m SetupModel) row(f setupField) string {
	c := m.cfg
	switch f {
	case fieldHumans:
		return fmt.Sprintf("%-14s < %d >", "Humans", c.Players.Humans)
	case fieldAI:
		return fmt.Sprintf("%-14s < %d >", "AI snakes", c.Players.AI)
	case fieldTier:
		return fmt.Sprintf("%-14s < %s >", "AI tier", c.Players.Tier)
	case fieldWidth:
		return fmt.Sprintf("%-14s < %d >", "Grid width", c.Grid.Width)
	case fieldHeight:
		return fmt.Sprintf("%-14s < %d >", "Grid height", c.Grid.Height)
	case fieldWalls:
		walls := "off"
		if c.Grid.Walls {
			walls = "on"
		}
		return fmt.Sprintf("%-14s < %s >", "Corner walls", walls)
	case fieldFoodMin:
		return fmt.Sprintf("%-14s < %d >", "Food min", c.Food.Min)
	case fieldFoodMax:
		return fmt.Sprintf("%-14s < %d >", "Food max", c.Food.Max)
	case fieldSpeed:
		return fmt.Sprintf("%-14s < %dms >", "Move interval", c.Gameplay.MoveIntervalMs)
	case fieldPreset:
		return fmt.Sprintf("%-14s < %s >", "Difficulty", presets[m.preset])
	default:
		return "[ Start ]"
	}
}

// Selected returns the chosen configuration, or nil if still choosing.
func (m SetupModel) Selected() *config.SnakeyConfig {
	if m.choosing {
		return nil
	}
	return &m.cfg
}

// IsQuitting returns true if user wants to quit.
func (m SetupModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m SetupModel) WantsBack() bool {
	return m.back
}

// RunSetup runs the setup screen and returns the chosen configuration, or
// nil when the user backed out.
func RunSetup(cfg config.SnakeyConfig, rc core.RuntimeConfig) (*config.SnakeyConfig, error) {
	p := tea.NewProgram(
		NewSetupModel(cfg, rc.ScreenW, rc.ScreenH),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := finalModel.(SetupModel)
	if !ok || m.IsQuitting() || m.WantsBack() {
		return nil, nil
	}
	return m.Selected(), nil
}
