package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/flaky-snakey/internal/config"
)

func sendKeys(t *testing.T, m SetupModel, msgs ...tea.KeyMsg) SetupModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		if m, ok = next.(SetupModel); !ok {
			t.Fatalf("Update() returned %T", next)
		}
	}
	return m
}

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
)

func TestSetupAdjustPlayers(t *testing.T) {
	cfg := config.DefaultSnakeyConfig() // 1 human, 1 AI
	m := NewSetupModel(cfg, 80, 24)

	// humans cannot push the roster past four seats
	m = sendKeys(t, m, keyRight, keyRight, keyRight, keyRight)
	if got := m.cfg.Players.Humans; got != 3 {
		t.Errorf("humans = %d, expected 3", got)
	}

	m = sendKeys(t, m, keyDown, keyRight)
	if got := m.cfg.Players.AI; got != 1 {
		t.Errorf("AI = %d, expected 1 with a full roster", got)
	}

	m = sendKeys(t, m, keyDown, keyRight)
	if got := m.cfg.Players.Tier; got != "dumb" {
		t.Errorf("tier = %q, expected dumb after generic", got)
	}
	m = sendKeys(t, m, keyLeft, keyLeft)
	if got := m.cfg.Players.Tier; got != "smart" {
		t.Errorf("tier = %q, expected wrap to smart", got)
	}
}

func TestSetupGridClamped(t *testing.T) {
	cfg := config.DefaultSnakeyConfig()
	cfg.Grid.Width = config.MinGridSize
	m := NewSetupModel(cfg, 80, 24)
	m.cursor = fieldWidth

	m = sendKeys(t, m, keyLeft, keyLeft)
	if m.cfg.Grid.Width != config.MinGridSize {
		t.Errorf("width = %d, expected floor %d", m.cfg.Grid.Width, config.MinGridSize)
	}
}

func TestSetupSpeedAndPreset(t *testing.T) {
	cfg := config.DefaultSnakeyConfig()
	cfg.Difficulty.Enabled = false
	m := NewSetupModel(cfg, 80, 24)

	m.cursor = fieldSpeed
	m = sendKeys(t, m, keyRight)
	if got := m.cfg.Gameplay.MoveIntervalMs; got != 90 {
		t.Errorf("move interval = %d, expected 90", got)
	}

	// fixed -> easy
	m.cursor = fieldPreset
	m = sendKeys(t, m, keyRight)
	if got := m.cfg.Gameplay.MoveIntervalMs; got != 150 {
		t.Errorf("easy move interval = %d, expected 150", got)
	}
	if !m.cfg.Difficulty.Enabled {
		t.Error("easy preset should enable progression")
	}
	if !strings.Contains(m.View(), "easy") {
		t.Error("view should show the preset")
	}
}

func TestSetupStart(t *testing.T) {
	m := NewSetupModel(config.DefaultSnakeyConfig(), 80, 24)
	if m.Selected() != nil {
		t.Fatal("nothing selected yet")
	}

	m.cursor = fieldStart
	m = sendKeys(t, m, keyEnter)
	cfg := m.Selected()
	if cfg == nil {
		t.Fatal("Enter should start the match")
	}
	if cfg.Players.Humans != 1 || cfg.Players.AI != 1 {
		t.Errorf("players = %+v", cfg.Players)
	}
}

func TestSetupRejectsEmptyRoster(t *testing.T) {
	cfg := config.DefaultSnakeyConfig()
	cfg.Players.Humans, cfg.Players.AI = 0, 0
	m := NewSetupModel(cfg, 80, 24)

	m = sendKeys(t, m, keyEnter)
	if m.Selected() != nil {
		t.Fatal("an empty roster must not start")
	}
	if m.err == nil {
		t.Error("expected a validation error on screen")
	}
}

func TestSetupBack(t *testing.T) {
	m := NewSetupModel(config.DefaultSnakeyConfig(), 80, 24)
	m = sendKeys(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.WantsBack() || m.Selected() != nil {
		t.Error("Esc should leave without a selection")
	}
}
