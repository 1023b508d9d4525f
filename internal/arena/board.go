package arena

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/flaky-snakey/internal/snake"
)

// ErrSlotRange is returned for a scoreboard index outside [0, 3].
var ErrSlotRange = errors.New("arena: scoreboard slot out of range")

// Scoreboard receives per-player results after every tick.
type Scoreboard interface {
	AddPlayer(i int, name string) error
	UpdateScore(i, score int) error
	SetAlive(i int, alive bool) error
	Name(i int) (string, error)
	Score(i int) (int, error)
}

// Slot is one scoreboard line.
type Slot struct {
	Name   string
	Score  int
	Alive  bool
	Active bool
}

// Board is the in-memory Scoreboard used by the HUD.
type Board struct {
	slots [snake.MaxPlayers]Slot
}

var _ Scoreboard = (*Board)(nil)

// NewBoard creates an empty scoreboard.
func NewBoard() *Board {
	return &Board{}
}

func checkSlot(i int) error {
	if i < 0 || i >= snake.MaxPlayers {
		return fmt.Errorf("arena: slot %d: %w", i, ErrSlotRange)
	}
	return nil
}

// AddPlayer activates slot i for a live player.
func (b *Board) AddPlayer(i int, name string) error {
	if err := checkSlot(i); err != nil {
		return err
	}
	b.slots[i] = Slot{Name: name, Alive: true, Active: true}
	return nil
}

// UpdateScore sets the score shown in slot i.
func (b *Board) UpdateScore(i, score int) error {
	if err := checkSlot(i); err != nil {
		return err
	}
	b.slots[i].Score = score
	return nil
}

// SetAlive sets the alive marker of slot i.
func (b *Board) SetAlive(i int, alive bool) error {
	if err := checkSlot(i); err != nil {
		return err
	}
	b.slots[i].Alive = alive
	return nil
}

// Name returns the player name in slot i.
func (b *Board) Name(i int) (string, error) {
	if err := checkSlot(i); err != nil {
		return "", err
	}
	return b.slots[i].Name, nil
}

// Score returns the score in slot i.
func (b *Board) Score(i int) (int, error) {
	if err := checkSlot(i); err != nil {
		return 0, err
	}
	return b.slots[i].Score, nil
}

// Slots returns the active slots in player order.
func (b *Board) Slots() []Slot {
	var out []Slot
	for _, s := range b.slots {
		if s.Active {
			out = append(out, s)
		}
	}
	return out
}
