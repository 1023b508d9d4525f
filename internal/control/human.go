package control

import "github.com/vovakirdan/flaky-snakey/internal/grid"

// Human relays the latest key press. Each press is used for one tick; with
// no press the snake keeps its heading.
type Human struct {
	pending grid.Move
}

// NewHuman creates a human controller with no pending press.
func NewHuman() *Human {
	return &Human{pending: grid.Null}
}

// Press records a requested heading. A later press in the same tick wins.
func (h *Human) Press(m grid.Move) {
	h.pending = m
}

// Move returns and clears the pending press.
func (h *Human) Move() grid.Move {
	m := h.pending
	h.pending = grid.Null
	return m
}

// Keymap maps key names to headings for one player.
type Keymap map[string]grid.Move

// DefaultKeymaps are the four local player layouts: WASD, arrows, IJKL and
// the numeric keypad digits.
var DefaultKeymaps = [4]Keymap{
	{"w": grid.Up, "a": grid.Left, "s": grid.Down, "d": grid.Right},
	{"up": grid.Up, "left": grid.Left, "down": grid.Down, "right": grid.Right},
	{"i": grid.Up, "j": grid.Left, "k": grid.Down, "l": grid.Right},
	{"8": grid.Up, "4": grid.Left, "2": grid.Down, "6": grid.Right},
}

// Lookup finds which player a key belongs to among the first players
// keymaps. It returns false when the key is unbound.
func Lookup(key string, players int) (player int, m grid.Move, ok bool) {
	for p := 0; p < players && p < len(DefaultKeymaps); p++ {
		if m, ok := DefaultKeymaps[p][key]; ok {
			return p, m, true
		}
	}
	return 0, grid.Null, false
}
