package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/flaky-snakey/internal/control"
	"github.com/vovakirdan/flaky-snakey/internal/core"
	"github.com/vovakirdan/flaky-snakey/internal/grid"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	// players is the number of seats whose steering keys are live.
	players int
}

// NewKeyMapper creates a key mapper with steering keys for the given
// number of local players. Player 1 steers with WASD, player 2 with the
// arrows, player 3 with IJKL and player 4 with 8/4/2/6.
func NewKeyMapper(players int) *KeyMapper {
	return &KeyMapper{players: core.Clamp(players, 1, core.MaxPlayers)}
}

// MapKey translates a key message to a player action.
// Returns the action (may be ActionNone) and whether it's a quit request.
// Shared keys are reported for Player1.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (player core.PlayerID, action core.Action, isQuit bool) {
	key := msg.String()

	// Global quit keys
	switch key {
	case "ctrl+c", "q":
		return core.Player1, core.ActionQuit, true
	}

	if p, mv, ok := control.Lookup(key, km.players); ok {
		return core.PlayerID(p), moveAction(mv), false
	}
	// a lone player may also use the arrows
	if km.players == 1 {
		if mv, ok := control.DefaultKeymaps[1][key]; ok {
			return core.Player1, moveAction(mv), false
		}
	}

	switch key {
	case "enter":
		return core.Player1, core.ActionConfirm, false
	case "b", "esc":
		return core.Player1, core.ActionBack, false
	case "p":
		return core.Player1, core.ActionPause, false
	case "r":
		return core.Player1, core.ActionRestart, false
	}

	return core.Player1, core.ActionNone, false
}

func moveAction(m grid.Move) core.Action {
	switch m {
	case grid.Up:
		return core.ActionUp
	case grid.Down:
		return core.ActionDown
	case grid.Left:
		return core.ActionLeft
	case grid.Right:
		return core.ActionRight
	}
	return core.ActionNone
}

// MapKeyToMultiFrame updates a multi-input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToMultiFrame(msg tea.KeyMsg, frame *core.MultiInputFrame) bool {
	player, action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(player, action)
	}
	return isQuit
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "a", "left", "h":
		return MenuActionLeft
	case "d", "right", "l":
		return MenuActionRight
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}
